package tui

import (
	"fmt"
	"math"
	"path/filepath"
	"strings"

	"doctools/internal/domain/entities"
)

// RenderProgress форматирует статус операции для панели прогресса
func RenderProgress(status entities.ProcessingStatus) string {
	var b strings.Builder

	phase := status.Phase.String()
	if status.Message != "" {
		phase = status.Message
	}
	fmt.Fprintf(&b, "[yellow]⚙️  %s:[white] %s\n\n", status.Operation.Label(), phase)

	if status.CurrentFile != "" {
		fmt.Fprintf(&b, "[yellow]📁 Файл:[white] %s\n", truncateName(filepath.Base(status.CurrentFile), MaxFileNameLength))
		if status.CurrentFileSize > 0 {
			fmt.Fprintf(&b, "[dim]   Размер: %s[white]\n", entities.FormatSize(status.CurrentFileSize))
		}
	}

	fmt.Fprintf(&b, "\n[cyan]📊 Прогресс:[white] %s [cyan]%.1f%%[white]\n\n",
		ProgressBar(status.Progress, ProgressBarWidth), status.Progress)

	fmt.Fprintf(&b, "[green]📈 Файлы:[white] всего [cyan]%d[white], обработано [cyan]%d[white], успешно [green]%d[white]",
		status.TotalFiles, status.ProcessedFiles, status.SuccessfulFiles)
	if status.FailedFiles > 0 {
		fmt.Fprintf(&b, ", ошибок [red]%d[white]", status.FailedFiles)
	}
	if status.SkippedFiles > 0 {
		fmt.Fprintf(&b, ", пропущено [yellow]%d[white]", status.SkippedFiles)
	}
	b.WriteString("\n")

	if status.TotalOriginalSize > 0 {
		fmt.Fprintf(&b, "[green]💾 Размер:[white] %s → %s, сжатие [green]%.1f%%[white], сэкономлено [green]%s[white]\n",
			entities.FormatSize(status.TotalOriginalSize),
			entities.FormatSize(status.TotalCompressedSize),
			status.AverageCompression,
			entities.FormatSize(status.TotalSavedSpace))
	}

	fmt.Fprintf(&b, "[yellow]⏱️  Прошло:[white] %s", status.FormatElapsedTime())
	if !status.IsComplete && status.EstimatedTime > 0 {
		fmt.Fprintf(&b, ", осталось ~%s", status.FormatEstimatedTime())
	}
	b.WriteString("\n\n")

	switch {
	case status.IsComplete && status.Error != nil:
		fmt.Fprintf(&b, "[red]❌ Ошибка: %s[white]\n", escapeError(status.Error))
	case status.IsComplete:
		b.WriteString("[green]✅ Операция завершена[white]\n")
	}
	b.WriteString("\n[yellow]F1[white] / [yellow]ESC[white] - Главное меню\n")

	return b.String()
}

// ProgressBar строит цветную полосу прогресса шириной width символов
func ProgressBar(percent float64, width int) string {
	percent = math.Max(0, math.Min(100, percent))
	filled := int(math.Round(percent * float64(width) / 100))

	color := "green"
	switch {
	case percent < 25:
		color = "red"
	case percent < 50:
		color = "yellow"
	case percent < 75:
		color = "blue"
	}

	return fmt.Sprintf("[%s]%s[gray]%s", color, strings.Repeat("█", filled), strings.Repeat("░", width-filled))
}

// truncateName усекает имя по рунам, добавляя многоточие
func truncateName(name string, limit int) string {
	runes := []rune(name)
	if len(runes) <= limit {
		return name
	}
	return string(runes[:limit-1]) + "…"
}
