package main

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"doctools/internal/domain/entities"
	"doctools/internal/domain/repositories"
	"doctools/internal/infrastructure/pdfengine"
	"doctools/internal/presentation/tui"
	usecases "doctools/internal/usecase"
)

// ApplicationProcessor выполняет запросы TUI через сценарии
type ApplicationProcessor struct {
	engine   *pdfengine.PDFCPUEngine
	codec    repositories.ImageCodec
	fileRepo repositories.FileRepository

	merge   *usecases.MergeUseCase
	split   *usecases.SplitUseCase
	pages   *usecases.PageToolsUseCase
	resize  *usecases.ResizeImageUseCase
	history *usecases.HistoryUseCase

	tuiManager *tui.Manager
	logger     repositories.Logger

	// Graceful shutdown
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewApplicationProcessor создает новый процессор приложения
func NewApplicationProcessor(
	engine *pdfengine.PDFCPUEngine,
	codec repositories.ImageCodec,
	fileRepo repositories.FileRepository,
	history *usecases.HistoryUseCase,
	tuiManager *tui.Manager,
	logger repositories.Logger,
) *ApplicationProcessor {
	ctx, cancel := context.WithCancel(context.Background())

	return &ApplicationProcessor{
		engine:     engine,
		codec:      codec,
		fileRepo:   fileRepo,
		merge:      usecases.NewMergeUseCase(engine, logger),
		split:      usecases.NewSplitUseCase(engine, logger),
		pages:      usecases.NewPageToolsUseCase(engine, logger),
		resize:     usecases.NewResizeImageUseCase(codec, logger),
		history:    history,
		tuiManager: tuiManager,
		logger:     logger,
		ctx:        ctx,
		cancel:     cancel,
	}
}

// validator создает проверку файлов с лимитами из конфигурации
func (p *ApplicationProcessor) validator(cfg *entities.Config) *usecases.ValidateUseCase {
	return usecases.NewValidateUseCase(p.engine, p.codec, cfg.Limits, p.logger)
}

// compressor создает сценарий сжатия с движком из конфигурации
func (p *ApplicationProcessor) compressor(cfg *entities.Config) *usecases.CompressUseCase {
	var pdf repositories.PDFCompressor = pdfengine.NewPDFCPUCompressor(p.engine)

	if cfg.Compression.Engine == entities.EngineUniPDF {
		uni, err := pdfengine.NewUniPDFCompressor(cfg.Compression.UniPDFLicenseKey)
		if err != nil {
			p.logger.Warning("UniPDF недоступен, используется PDFCPU: %v", err)
		} else {
			pdf = uni
		}
	}

	return usecases.NewCompressUseCase(pdf, p.codec, p.logger)
}

// StartProcessing запускает пакетное сжатие входной директории
func (p *ApplicationProcessor) StartProcessing() {
	p.wg.Add(1)
	defer p.wg.Done()

	cfg := p.tuiManager.GetConfig()
	batch := usecases.NewBatchCompressUseCase(p.validator(cfg), p.compressor(cfg), p.fileRepo, p.logger)
	batch.SetProgressReporter(p.tuiManager.SendStatusUpdate)

	status, err := batch.Execute(cfg)
	if err != nil {
		p.logger.Error("Ошибка пакетной обработки: %v", err)
		p.tuiManager.Notify("Пакетное сжатие", err)
		return
	}

	p.tuiManager.Notify(fmt.Sprintf("Пакетное сжатие: успешно %d из %d", status.SuccessfulFiles, status.TotalFiles), nil)
	if status.SuccessfulFiles > 0 {
		p.history.Record(p.ctx, entities.OpPDFCompress, cfg.Workspace.InputDirectory)
	}
}

// HandleRequest выполняет запрос пользователя. Ошибки не выходят за пределы
// процессора: они попадают в журнал и строку состояния.
func (p *ApplicationProcessor) HandleRequest(req tui.Request) {
	p.wg.Add(1)
	defer p.wg.Done()

	cfg := p.tuiManager.GetConfig()
	status := entities.NewProcessingStatus(req.Operation, len(req.Files))

	saved, err := p.execute(cfg, req, status)
	if err != nil {
		p.logger.Error("%s: %v", req.Operation.Label(), err)
		status.Fail(err)
		p.tuiManager.SendStatusUpdate(*status)
		p.tuiManager.Notify(req.Operation.Label(), err)
		return
	}

	if status.ProcessedFiles == 0 {
		status.ProcessedFiles = status.TotalFiles
		status.SuccessfulFiles = status.TotalFiles
	}
	status.Complete(fmt.Sprintf("Сохранено файлов: %d", len(saved)))
	p.tuiManager.SendStatusUpdate(*status)
	p.tuiManager.Notify(fmt.Sprintf("%s: сохранено файлов: %d в %s",
		req.Operation.Label(), len(saved), cfg.Workspace.OutputDirectory), nil)

	p.history.Record(p.ctx, req.Operation, historyName(req.Files))
}

func (p *ApplicationProcessor) execute(cfg *entities.Config, req tui.Request, status *entities.ProcessingStatus) ([]string, error) {
	status.SetPhase(entities.PhaseValidating, "Проверка файлов...")
	p.tuiManager.SendStatusUpdate(*status)

	validator := p.validator(cfg)
	docs := make([]*entities.Document, 0, len(req.Files))
	for _, path := range req.Files {
		stat, err := p.fileRepo.StatUpload(path)
		if err != nil {
			return nil, fmt.Errorf("не удалось прочитать %s: %w", path, err)
		}
		status.SetCurrentFile(path, stat.DeclaredSize())
		if err := validator.CheckSize(stat, req.Operation); err != nil {
			return nil, err
		}

		upload, err := p.fileRepo.ReadUpload(path)
		if err != nil {
			return nil, fmt.Errorf("не удалось прочитать %s: %w", path, err)
		}

		doc, err := validator.Admit(upload, req.Operation)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	if len(docs) == 0 {
		return nil, entities.ErrNoFilesFound
	}

	status.SetPhase(entities.PhaseProcessing, req.Operation.Label())
	p.tuiManager.SendStatusUpdate(*status)

	artifacts, err := p.run(cfg, req, docs, status)
	if err != nil {
		return nil, err
	}

	status.SetPhase(entities.PhaseSaving, "Сохранение результата...")
	p.tuiManager.SendStatusUpdate(*status)

	saved := make([]string, 0, len(artifacts))
	for i := range artifacts {
		path, err := p.fileRepo.SaveArtifact(cfg.Workspace.OutputDirectory, &artifacts[i])
		if err != nil {
			return saved, fmt.Errorf("ошибка сохранения %s: %w", artifacts[i].Name, err)
		}
		p.logger.Info("Сохранено: %s (%s)", path, entities.FormatSize(artifacts[i].Size()))
		saved = append(saved, path)
	}
	return saved, nil
}

// run вызывает сценарий, соответствующий операции запроса
func (p *ApplicationProcessor) run(
	cfg *entities.Config,
	req tui.Request,
	docs []*entities.Document,
	status *entities.ProcessingStatus,
) ([]entities.OutputArtifact, error) {
	doc := docs[0]

	switch req.Operation {
	case entities.OpPDFMerge:
		artifact, err := p.merge.Merge(docs)
		if err != nil {
			return nil, err
		}
		return []entities.OutputArtifact{*artifact}, nil

	case entities.OpPDFSplit:
		sel, err := entities.ParsePageSelection(req.Pages)
		if err != nil {
			return nil, err
		}
		return p.split.Split(doc, sel)

	case entities.OpPDFPages:
		artifact, err := p.runPageAction(req, doc)
		if err != nil {
			return nil, err
		}
		return []entities.OutputArtifact{*artifact}, nil

	case entities.OpPDFCompress, entities.OpImageCompress:
		tier := req.Tier
		if tier == "" {
			tier = cfg.QualityTier()
		}
		outcome, err := p.compressor(cfg).Compress(doc, tier)
		if err != nil {
			return nil, err
		}
		status.AddResult(&outcome.Result)
		return []entities.OutputArtifact{outcome.Artifact}, nil

	case entities.OpImageResize:
		artifact, err := p.resize.Resize(doc, req.Resize)
		if err != nil {
			return nil, err
		}
		return []entities.OutputArtifact{*artifact}, nil
	}

	return nil, fmt.Errorf("неизвестная операция: %s", req.Operation)
}

func (p *ApplicationProcessor) runPageAction(req tui.Request, doc *entities.Document) (*entities.OutputArtifact, error) {
	if req.PageAction == tui.ActionNumber {
		return p.pages.AddPageNumbers(doc, req.Position)
	}

	// пустой выбор для поворота означает все страницы
	sel, err := entities.ParsePageSelection(req.Pages)
	if err != nil {
		return nil, err
	}

	switch req.PageAction {
	case tui.ActionRotate:
		return p.pages.Rotate(doc, sel, req.Degrees)
	case tui.ActionRemove:
		return p.pages.RemovePages(doc, sel)
	case tui.ActionExtract:
		return p.pages.ExtractPages(doc, sel)
	}
	return nil, fmt.Errorf("неизвестное действие: %s", req.PageAction)
}

// Shutdown корректно завершает работу процессора
func (p *ApplicationProcessor) Shutdown() {
	p.cancel()
	p.wg.Wait()
}

func historyName(files []string) string {
	names := make([]string, len(files))
	for i, f := range files {
		names[i] = filepath.Base(f)
	}
	return strings.Join(names, ", ")
}
