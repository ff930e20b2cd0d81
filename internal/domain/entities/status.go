package entities

import "time"

// ProcessingStatus статус выполнения операции или пакета
type ProcessingStatus struct {
	Operation Operation
	Phase     ProcessingPhase

	// Текущий файл
	CurrentFile     string
	CurrentFileSize int64

	// Счетчики файлов
	TotalFiles      int
	ProcessedFiles  int
	SuccessfulFiles int
	FailedFiles     int
	SkippedFiles    int

	Progress float64

	// Статистика сжатия
	TotalOriginalSize   int64
	TotalCompressedSize int64
	TotalSavedSpace     int64
	AverageCompression  float64

	LastResult *CompressionResult

	StartTime     time.Time
	ElapsedTime   time.Duration
	EstimatedTime time.Duration

	IsComplete bool
	Error      error

	// Сообщение для UI
	Message string
}

// ProcessingPhase фаза обработки
type ProcessingPhase int

const (
	PhaseInitializing ProcessingPhase = iota
	PhaseScanning
	PhaseValidating
	PhaseProcessing
	PhaseSaving
	PhaseCompleted
	PhaseFailed
)

// UIScreen типы экранов UI
type UIScreen int

const (
	UIScreenMenu UIScreen = iota
	UIScreenConfig
	UIScreenOperation
	UIScreenProcessing
	UIScreenHistory
)

// NewProcessingStatus создает новый статус обработки
func NewProcessingStatus(op Operation, totalFiles int) *ProcessingStatus {
	return &ProcessingStatus{
		Operation:  op,
		Phase:      PhaseInitializing,
		TotalFiles: totalFiles,
		StartTime:  time.Now(),
	}
}

// UpdateProgress обновляет прогресс и оценку оставшегося времени
func (ps *ProcessingStatus) UpdateProgress() {
	if ps.TotalFiles > 0 {
		ps.Progress = float64(ps.ProcessedFiles) / float64(ps.TotalFiles) * 100
	}

	ps.ElapsedTime = time.Since(ps.StartTime)

	if ps.ProcessedFiles > 0 && ps.ProcessedFiles < ps.TotalFiles {
		avgTimePerFile := ps.ElapsedTime / time.Duration(ps.ProcessedFiles)
		ps.EstimatedTime = avgTimePerFile * time.Duration(ps.TotalFiles-ps.ProcessedFiles)
	}
}

// AddResult учитывает результат обработки файла
func (ps *ProcessingStatus) AddResult(result *CompressionResult) {
	ps.ProcessedFiles++
	ps.LastResult = result

	if result.Success && result.Error == nil {
		ps.SuccessfulFiles++
		ps.TotalOriginalSize += result.OriginalSize
		ps.TotalCompressedSize += result.CompressedSize
		ps.TotalSavedSpace += result.SavedSpace

		if ps.TotalOriginalSize > 0 {
			ps.AverageCompression = ((float64(ps.TotalOriginalSize) - float64(ps.TotalCompressedSize)) / float64(ps.TotalOriginalSize)) * 100
		}
	} else {
		ps.FailedFiles++
	}

	ps.UpdateProgress()
}

// AddSkipped учитывает файл, не допущенный к обработке.
// Размер текущего файла при этом сбрасывается.
func (ps *ProcessingStatus) AddSkipped(file string) {
	ps.ProcessedFiles++
	ps.SkippedFiles++
	ps.CurrentFile = file
	ps.CurrentFileSize = 0
	ps.UpdateProgress()
}

// SetPhase устанавливает фазу обработки
func (ps *ProcessingStatus) SetPhase(phase ProcessingPhase, message string) {
	ps.Phase = phase
	ps.Message = message
}

// SetCurrentFile устанавливает текущий обрабатываемый файл
func (ps *ProcessingStatus) SetCurrentFile(filePath string, size int64) {
	ps.CurrentFile = filePath
	ps.CurrentFileSize = size
}

// Complete завершает обработку
func (ps *ProcessingStatus) Complete(message string) {
	ps.IsComplete = true
	ps.Phase = PhaseCompleted
	ps.Progress = 100
	ps.ElapsedTime = time.Since(ps.StartTime)
	ps.EstimatedTime = 0
	ps.Message = message
}

// Fail отмечает обработку как неудачную
func (ps *ProcessingStatus) Fail(err error) {
	ps.IsComplete = true
	ps.Phase = PhaseFailed
	ps.Error = err
	ps.ElapsedTime = time.Since(ps.StartTime)
	ps.EstimatedTime = 0
}

func (phase ProcessingPhase) String() string {
	switch phase {
	case PhaseInitializing:
		return "Инициализация"
	case PhaseScanning:
		return "Сканирование файлов"
	case PhaseValidating:
		return "Проверка файлов"
	case PhaseProcessing:
		return "Обработка"
	case PhaseSaving:
		return "Сохранение результата"
	case PhaseCompleted:
		return "Завершено"
	case PhaseFailed:
		return "Ошибка"
	default:
		return "Неизвестно"
	}
}

// FormatElapsedTime форматирует время выполнения
func (ps *ProcessingStatus) FormatElapsedTime() string {
	return formatDuration(ps.ElapsedTime)
}

// FormatEstimatedTime форматирует оставшееся время
func (ps *ProcessingStatus) FormatEstimatedTime() string {
	if ps.EstimatedTime == 0 {
		return "N/A"
	}
	return formatDuration(ps.EstimatedTime)
}

func formatDuration(d time.Duration) string {
	if d < time.Second {
		return "< 1 сек"
	}
	return d.Round(time.Second).String()
}
