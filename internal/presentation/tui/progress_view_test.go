package tui_test

import (
	"errors"
	"strings"
	"testing"

	"doctools/internal/domain/entities"
	"doctools/internal/presentation/tui"
)

func TestProgressBar(t *testing.T) {
	tests := []struct {
		name      string
		percent   float64
		wantColor string
		wantFill  int
	}{
		{"Empty", 0, "red", 0},
		{"Half", 50, "blue", 5},
		{"Full", 100, "green", 10},
		{"Clamped above", 150, "green", 10},
		{"Clamped below", -5, "red", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bar := tui.ProgressBar(tt.percent, 10)
			if !strings.HasPrefix(bar, "["+tt.wantColor+"]") {
				t.Errorf("Expected color %s in %q", tt.wantColor, bar)
			}
			if got := strings.Count(bar, "█"); got != tt.wantFill {
				t.Errorf("Expected %d filled cells, got %d", tt.wantFill, got)
			}
			if got := strings.Count(bar, "█") + strings.Count(bar, "░"); got != 10 {
				t.Errorf("Expected total width 10, got %d", got)
			}
		})
	}
}

func TestRenderProgress(t *testing.T) {
	status := entities.NewProcessingStatus(entities.OpPDFCompress, 4)
	status.SetCurrentFile("/in/report.pdf", 2048)
	status.AddResult(&entities.CompressionResult{OriginalSize: 1000, CompressedSize: 400, SavedSpace: 600, Success: true})

	text := tui.RenderProgress(*status)
	for _, want := range []string{entities.OpPDFCompress.Label(), "report.pdf", "2.0 KiB"} {
		if !strings.Contains(text, want) {
			t.Errorf("Expected progress text to contain %q:\n%s", want, text)
		}
	}

	status.AddSkipped("/in/locked.pdf")
	text = tui.RenderProgress(*status)
	for _, want := range []string{"locked.pdf", "пропущено [yellow]1"} {
		if !strings.Contains(text, want) {
			t.Errorf("Expected progress text to contain %q:\n%s", want, text)
		}
	}
	if strings.Contains(text, "Размер:") {
		t.Errorf("Skipped file must not show another file's size:\n%s", text)
	}
	if strings.Contains(text, "Операция завершена") {
		t.Error("Did not expect completion marker for running operation")
	}

	status.Fail(errors.New("сбой [red]"))
	text = tui.RenderProgress(*status)
	if !strings.Contains(text, "Ошибка") || strings.Contains(text, "сбой [red]") {
		t.Errorf("Expected escaped error in progress text:\n%s", text)
	}
}
