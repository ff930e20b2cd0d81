package main

import (
	"context"
	"flag"
	"log"

	"doctools/internal/domain/repositories"
	"doctools/internal/infrastructure/config"
	"doctools/internal/infrastructure/history"
	"doctools/internal/infrastructure/imaging"
	"doctools/internal/infrastructure/logging"
	"doctools/internal/infrastructure/pdfengine"
	infraRepos "doctools/internal/infrastructure/repositories"
	"doctools/internal/presentation/tui"
	usecases "doctools/internal/usecase"
)

func main() {
	configPath := flag.String("config", config.DefaultPath, "путь к файлу конфигурации")
	flag.Parse()

	// Загрузка конфигурации
	configRepo := config.NewRepository()
	appConfig, err := configRepo.Load(*configPath)
	if err != nil {
		log.Fatalf("Ошибка загрузки конфигурации: %v", err)
	}

	// Инициализация базового логгера (в файл)
	fileLogger, err := logging.NewFileLogger(
		appConfig.Output.LogFileName,
		appConfig.Output.LogLevel,
		appConfig.Output.LogMaxSizeMB,
		appConfig.Output.LogToFile,
	)
	if err != nil {
		log.Printf("Предупреждение: не удалось инициализировать логгер: %v", err)
	}

	var baseLogger repositories.Logger = repositories.NopLogger{}
	if fileLogger != nil {
		baseLogger = fileLogger
		defer fileLogger.Close()
	}

	// Инициализация TUI
	tuiManager := tui.NewManager(configRepo, *configPath, appConfig)
	tuiManager.Initialize()

	// Оборачиваем логгер адаптером, чтобы видеть логи в TUI
	logger := tui.NewUILogger(baseLogger, tuiManager)

	// Журнал операций
	var historyRepo repositories.HistoryRepository
	if appConfig.History.Enabled {
		repo, err := history.OpenSQLite(context.Background(), appConfig.History.Database)
		if err != nil {
			logger.Warning("История операций отключена: %v", err)
		} else {
			historyRepo = repo
			defer repo.Close()
		}
	}
	historyUseCase := usecases.NewHistoryUseCase(historyRepo, history.NewXLSXExporter(), appConfig.History.Limit, logger)

	// Инициализация адаптеров
	processor := NewApplicationProcessor(
		pdfengine.NewPDFCPUEngine(),
		imaging.NewCodec(),
		infraRepos.NewFileSystemRepository(),
		historyUseCase,
		tuiManager,
		logger,
	)
	defer processor.Shutdown()

	tuiManager.SetHistoryProvider(historyUseCase)
	tuiManager.SetOnRequest(processor.HandleRequest)
	tuiManager.SetOnStartProcessing(processor.StartProcessing)

	// Запуск TUI
	if err := tuiManager.Run(); err != nil {
		log.Fatalf("Ошибка запуска TUI: %v", err)
	}

	tuiManager.Cleanup()
}
