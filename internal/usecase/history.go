package usecases

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"doctools/internal/domain/entities"
	"doctools/internal/domain/repositories"
)

// HistoryUseCase журнал последних операций
type HistoryUseCase struct {
	logSink
	repo     repositories.HistoryRepository
	exporter repositories.HistoryExporter
	limit    int
	now      func() time.Time
}

// NewHistoryUseCase создает сценарий журнала. repo может быть nil, журнал тогда отключен.
func NewHistoryUseCase(
	repo repositories.HistoryRepository,
	exporter repositories.HistoryExporter,
	limit int,
	logger repositories.Logger,
) *HistoryUseCase {
	if limit <= 0 {
		limit = entities.DefaultHistoryLimit
	}
	return &HistoryUseCase{
		logSink:  logSink{logger: logger},
		repo:     repo,
		exporter: exporter,
		limit:    limit,
		now:      time.Now,
	}
}

// Enabled сообщает, ведется ли журнал
func (uc *HistoryUseCase) Enabled() bool {
	return uc != nil && uc.repo != nil
}

// Record добавляет запись и удаляет лишние. Ошибки только логируются.
func (uc *HistoryUseCase) Record(ctx context.Context, op entities.Operation, filename string) {
	if !uc.Enabled() {
		return
	}

	entry := entities.NewHistoryEntry(op, filename, uc.now())
	if err := uc.repo.Add(ctx, entry); err != nil {
		uc.logWarning("Не удалось записать операцию в журнал: %v", err)
		return
	}
	if err := uc.repo.Prune(ctx, uc.limit); err != nil {
		uc.logWarning("Не удалось очистить старые записи журнала: %v", err)
	}
}

// Recent возвращает последние операции, новые первыми
func (uc *HistoryUseCase) Recent(ctx context.Context) ([]entities.HistoryEntry, error) {
	if !uc.Enabled() {
		return nil, nil
	}
	return uc.repo.Recent(ctx, uc.limit)
}

// Clear очищает журнал
func (uc *HistoryUseCase) Clear(ctx context.Context) error {
	if !uc.Enabled() {
		return nil
	}
	if err := uc.repo.Clear(ctx); err != nil {
		return fmt.Errorf("ошибка очистки журнала: %w", err)
	}
	uc.logInfo("Журнал операций очищен")
	return nil
}

// Export выгружает журнал в файл path
func (uc *HistoryUseCase) Export(ctx context.Context, path string) error {
	entries, err := uc.Recent(ctx)
	if err != nil {
		return fmt.Errorf("ошибка чтения журнала: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := uc.exporter.Export(entries, file); err != nil {
		file.Close()
		return err
	}
	if err := file.Close(); err != nil {
		return err
	}

	uc.logSuccess("Журнал выгружен: %s (записей: %d)", path, len(entries))
	return nil
}
