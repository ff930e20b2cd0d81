package usecases

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"doctools/internal/domain/entities"
	"doctools/internal/domain/repositories"
)

// BatchCompressUseCase пакетное сжатие файлов директории
type BatchCompressUseCase struct {
	logSink
	validator        *ValidateUseCase
	compressor       *CompressUseCase
	fileRepo         repositories.FileRepository
	progressReporter func(entities.ProcessingStatus)
	retryDelay       time.Duration
}

// NewBatchCompressUseCase создает сценарий пакетного сжатия
func NewBatchCompressUseCase(
	validator *ValidateUseCase,
	compressor *CompressUseCase,
	fileRepo repositories.FileRepository,
	logger repositories.Logger,
) *BatchCompressUseCase {
	return &BatchCompressUseCase{
		logSink:    logSink{logger: logger},
		validator:  validator,
		compressor: compressor,
		fileRepo:   fileRepo,
		retryDelay: 2 * time.Second,
	}
}

// SetProgressReporter устанавливает функцию для отчета о прогрессе
func (uc *BatchCompressUseCase) SetProgressReporter(reporter func(entities.ProcessingStatus)) {
	uc.progressReporter = reporter
}

// reportProgress отправляет обновление прогресса
func (uc *BatchCompressUseCase) reportProgress(status *entities.ProcessingStatus) {
	if uc.progressReporter != nil {
		uc.progressReporter(*status)
	}
}

// batchJob результат обработки одного файла
type batchJob struct {
	file    string
	result  *entities.CompressionResult
	output  string
	skipped bool
	err     error
}

// Execute сжимает все файлы включенных типов из InputDirectory в OutputDirectory,
// сохраняя структуру подпапок. Ошибки отдельных файлов не прерывают пакет.
func (uc *BatchCompressUseCase) Execute(config *entities.Config) (*entities.ProcessingStatus, error) {
	status := entities.NewProcessingStatus(entities.OpPDFCompress, 0)
	status.SetPhase(entities.PhaseInitializing, "Инициализация обработки...")
	uc.reportProgress(status)

	source := config.Workspace.InputDirectory
	target := config.Workspace.OutputDirectory
	tier := config.QualityTier()

	uc.logInfo("╔════════════════════════════════════════════════════════════")
	uc.logInfo("║ Пакетное сжатие")
	uc.logInfo("╠════════════════════════════════════════════════════════════")
	uc.logInfo("║ Исходная директория: %s", source)
	uc.logInfo("║ Целевая директория: %s", target)
	uc.logInfo("║ Уровень сжатия: %s", tier.Label())
	uc.logInfo("║ Параллельных воркеров: %d", config.Processing.ParallelWorkers)
	uc.logInfo("╚════════════════════════════════════════════════════════════")

	types := config.Compression.SupportedBatchTypes()
	if len(types) == 0 {
		err := fmt.Errorf("%w: все типы файлов отключены", entities.ErrNoFilesFound)
		status.Fail(err)
		uc.reportProgress(status)
		return status, err
	}

	status.SetPhase(entities.PhaseScanning, "Сканирование файлов...")
	uc.reportProgress(status)

	files, err := uc.fileRepo.ListFiles(source, types)
	if err != nil {
		status.Fail(err)
		uc.reportProgress(status)
		return status, err
	}
	if len(files) == 0 {
		uc.logWarning("Файлы не найдены в директории: %s", source)
		status.Complete("Файлы не найдены")
		uc.reportProgress(status)
		return status, nil
	}

	status.TotalFiles = len(files)
	uc.logSuccess("Найдено файлов для обработки: %d", len(files))

	status.SetPhase(entities.PhaseProcessing, "Сжатие файлов...")
	uc.reportProgress(status)

	workers := config.Processing.ParallelWorkers
	if workers <= 0 {
		workers = 1
	}

	jobs := make(chan string, len(files))
	results := make(chan batchJob, len(files))

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go uc.worker(jobs, results, &wg, config, tier)
	}

	for _, file := range files {
		jobs <- file
	}
	close(jobs)

	go func() {
		wg.Wait()
		close(results)
	}()

	counter := 0
	for job := range results {
		counter++
		name := filepath.Base(job.file)

		switch {
		case job.skipped:
			status.AddSkipped(job.file)
			uc.logWarning("[%d/%d] — %s: %v", counter, status.TotalFiles, name, job.err)
		case job.err != nil:
			status.AddResult(&entities.CompressionResult{CurrentFile: job.file, Error: job.err})
			uc.logError("[%d/%d] ✗ %s: %v", counter, status.TotalFiles, name, job.err)
		default:
			status.AddResult(job.result)
			status.SetCurrentFile(job.file, job.result.OriginalSize)
			uc.logSuccess("[%d/%d] ✓ %s → %s", counter, status.TotalFiles, name, job.output)
			uc.logInfo("    └─ Размер: %s → %s | Сжатие: %.1f%%",
				entities.FormatSize(job.result.OriginalSize),
				entities.FormatSize(job.result.CompressedSize),
				job.result.CompressionRatio)
		}
		uc.reportProgress(status)
	}

	status.Complete(fmt.Sprintf("Обработано файлов: %d", status.ProcessedFiles))
	uc.reportProgress(status)

	uc.logInfo("╔════════════════════════════════════════════════════════════")
	uc.logInfo("║ Обработка завершена за %s", status.FormatElapsedTime())
	uc.logInfo("║   • Всего: %d", status.TotalFiles)
	uc.logSuccess("║   • Успешно: %d", status.SuccessfulFiles)
	if status.FailedFiles > 0 {
		uc.logError("║   • Ошибок: %d", status.FailedFiles)
	}
	if status.SkippedFiles > 0 {
		uc.logWarning("║   • Пропущено: %d", status.SkippedFiles)
	}
	if status.TotalOriginalSize > 0 {
		uc.logSuccess("║   • Сэкономлено: %s (%.1f%%)",
			entities.FormatSize(status.TotalSavedSpace), status.AverageCompression)
	}
	uc.logInfo("╚════════════════════════════════════════════════════════════")

	return status, nil
}

// worker обрабатывает файлы в отдельной горутине
func (uc *BatchCompressUseCase) worker(
	jobs <-chan string,
	results chan<- batchJob,
	wg *sync.WaitGroup,
	config *entities.Config,
	tier entities.QualityTier,
) {
	defer wg.Done()

	for file := range jobs {
		results <- uc.process(file, config, tier)
	}
}

func (uc *BatchCompressUseCase) process(file string, config *entities.Config, tier entities.QualityTier) batchJob {
	job := batchJob{file: file}

	stat, err := uc.fileRepo.StatUpload(file)
	if err != nil {
		job.err = err
		return job
	}

	op := entities.OpImageCompress
	if stat.ContentType() == entities.MIMETypePDF {
		op = entities.OpPDFCompress
	}
	if err := uc.validator.CheckSize(stat, op); err != nil {
		job.skipped = true
		job.err = err
		return job
	}

	upload, err := uc.fileRepo.ReadUpload(file)
	if err != nil {
		job.err = err
		return job
	}
	doc, err := uc.validator.Admit(upload, op)
	if err != nil {
		job.skipped = true
		job.err = err
		return job
	}

	attempts := max(1, config.Processing.RetryAttempts)
	var outcome *entities.CompressionOutcome
	for attempt := 0; attempt < attempts; attempt++ {
		outcome, err = uc.compressor.Compress(doc, tier)
		if err == nil {
			break
		}
		if attempt < attempts-1 {
			uc.logWarning("Попытка %d/%d для файла %s не удалась: %v", attempt+1, attempts, doc.Name, err)
			time.Sleep(uc.retryDelay)
		}
	}
	if err != nil {
		job.err = err
		return job
	}

	// результат сохраняется под исходным именем с расширением итогового типа
	outputDir := config.Workspace.OutputDirectory
	if rel, err := filepath.Rel(config.Workspace.InputDirectory, filepath.Dir(file)); err == nil {
		outputDir = filepath.Join(outputDir, rel)
	}
	artifact := outcome.Artifact
	artifact.Name = doc.Stem() + extensionFor(artifact.MIMEType)

	job.output, err = uc.fileRepo.SaveArtifact(outputDir, &artifact)
	if err != nil {
		job.err = fmt.Errorf("ошибка сохранения результата: %w", err)
		return job
	}

	result := outcome.Result
	result.CurrentFile = file
	job.result = &result
	return job
}
