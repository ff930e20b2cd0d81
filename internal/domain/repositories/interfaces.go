package repositories

import (
	"context"
	"io"

	"doctools/internal/domain/entities"
)

// AppConfigRepository интерфейс для работы с конфигурацией приложения
type AppConfigRepository interface {
	Load(configPath string) (*entities.Config, error)
	Save(configPath string, config *entities.Config) error
}

// PageSource разобранный PDF, из которого извлекаются отдельные страницы
type PageSource interface {
	PageCount() int
	// ExtractPage возвращает одностраничный PDF; page начинается с 1
	ExtractPage(page int) ([]byte, error)
}

// PDFEngine структурные операции над PDF. Все номера страниц начинаются с 1.
type PDFEngine interface {
	Inspect(data []byte) (*entities.DocumentMetadata, error)
	PageCount(data []byte) (int, error)
	Merge(inputs [][]byte) ([]byte, error)
	Open(data []byte) (PageSource, error)
	ExtractPages(data []byte, pages []int) ([]byte, error)
	RemovePages(data []byte, pages []int) ([]byte, error)
	Rotate(data []byte, pages []int, degrees int) ([]byte, error)
	StampPageNumbers(data []byte, position entities.StampPosition) ([]byte, error)
}

// PDFCompressor интерфейс для сжатия PDF с заданным качеством изображений (0..1)
type PDFCompressor interface {
	Name() string
	Compress(data []byte, quality float64, profile entities.TierProfile) ([]byte, error)
}

// ImageCodec декодирование, масштабирование и кодирование растровых изображений
type ImageCodec interface {
	Inspect(data []byte) (*entities.ImageInfo, error)
	// Compress перекодирует изображение и возвращает данные и MIME тип результата
	Compress(data []byte, quality float64) ([]byte, string, error)
	Resize(data []byte, req entities.ResizeRequest) ([]byte, string, error)
}

// FileRepository интерфейс для работы с файловой системой
type FileRepository interface {
	StatUpload(path string) (*entities.Upload, error)
	ReadUpload(path string) (*entities.Upload, error)
	SaveArtifact(directory string, artifact *entities.OutputArtifact) (string, error)
	FileExists(path string) bool
	CreateDirectory(path string) error
	ListFiles(directory string, mimeTypes []string) ([]string, error)
}

// HistoryRepository хранилище журнала операций
type HistoryRepository interface {
	Add(ctx context.Context, entry entities.HistoryEntry) error
	Recent(ctx context.Context, limit int) ([]entities.HistoryEntry, error)
	Prune(ctx context.Context, keep int) error
	Clear(ctx context.Context) error
	Close() error
}

// HistoryExporter выгрузка журнала операций
type HistoryExporter interface {
	Export(entries []entities.HistoryEntry, w io.Writer) error
}
