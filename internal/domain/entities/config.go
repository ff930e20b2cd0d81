package entities

import "fmt"

// Config представляет конфигурацию приложения
type Config struct {
	Workspace   WorkspaceConfig      `yaml:"workspace"`
	Limits      LimitsConfig         `yaml:"limits"`
	Compression AppCompressionConfig `yaml:"compression"`
	Processing  ProcessingConfig     `yaml:"processing"`
	Output      OutputConfig         `yaml:"output"`
	History     HistoryConfig        `yaml:"history"`
}

// WorkspaceConfig рабочие директории
type WorkspaceConfig struct {
	InputDirectory  string `yaml:"input_directory"`
	OutputDirectory string `yaml:"output_directory"`
}

// LimitsConfig максимальные размеры входных файлов в мегабайтах
type LimitsConfig struct {
	ImageBulkMB   int `yaml:"image_bulk_mb"`
	ImageResizeMB int `yaml:"image_resize_mb"`
	PDFMergeMB    int `yaml:"pdf_merge_mb"`
	PDFSplitMB    int `yaml:"pdf_split_mb"`
	PDFCompressMB int `yaml:"pdf_compress_mb"`
	PDFPagesMB    int `yaml:"pdf_pages_mb"`
}

// AppCompressionConfig настройки сжатия приложения
type AppCompressionConfig struct {
	Engine           string `yaml:"engine"` // pdfcpu | unipdf
	Tier             string `yaml:"tier"`
	UniPDFLicenseKey string `yaml:"unipdf_license_key"`
	// Пакетная обработка
	EnablePDF  bool `yaml:"enable_pdf"`
	EnableJPEG bool `yaml:"enable_jpeg"`
	EnablePNG  bool `yaml:"enable_png"`
	EnableWebP bool `yaml:"enable_webp"`
}

// ProcessingConfig настройки обработки
type ProcessingConfig struct {
	ParallelWorkers int `yaml:"parallel_workers"`
	RetryAttempts   int `yaml:"retry_attempts"`
}

// OutputConfig настройки вывода
type OutputConfig struct {
	LogLevel     string `yaml:"log_level"`
	LogToFile    bool   `yaml:"log_to_file"`
	LogFileName  string `yaml:"log_file_name"`
	LogMaxSizeMB int    `yaml:"log_max_size_mb"`
}

// HistoryConfig настройки журнала операций
type HistoryConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Database string `yaml:"database"`
	Limit    int    `yaml:"limit"`
}

// Engines поддерживаемые PDF движки
const (
	EnginePDFCPU = "pdfcpu"
	EngineUniPDF = "unipdf"
)

// Operation операция, для которой проверяется файл
type Operation string

const (
	OpPDFMerge      Operation = "merge"
	OpPDFSplit      Operation = "split"
	OpPDFCompress   Operation = "compress-pdf"
	OpPDFPages      Operation = "pages"
	OpImageCompress Operation = "compress-image"
	OpImageResize   Operation = "resize-image"
)

// Label название операции для UI и журнала
func (op Operation) Label() string {
	switch op {
	case OpPDFMerge:
		return "Объединение PDF"
	case OpPDFSplit:
		return "Разделение PDF"
	case OpPDFCompress:
		return "Сжатие PDF"
	case OpPDFPages:
		return "Работа со страницами PDF"
	case OpImageCompress:
		return "Сжатие изображения"
	case OpImageResize:
		return "Изменение размера изображения"
	default:
		return string(op)
	}
}

const megabyte = 1024 * 1024

// MaxBytes возвращает лимит размера для операции
func (l LimitsConfig) MaxBytes(op Operation) int64 {
	var mb int
	switch op {
	case OpPDFMerge:
		mb = l.PDFMergeMB
	case OpPDFSplit:
		mb = l.PDFSplitMB
	case OpPDFCompress:
		mb = l.PDFCompressMB
	case OpPDFPages:
		mb = l.PDFPagesMB
	case OpImageCompress:
		mb = l.ImageBulkMB
	case OpImageResize:
		mb = l.ImageResizeMB
	}
	return int64(mb) * megabyte
}

// AcceptedTypes возвращает допустимые MIME типы для операции
func AcceptedTypes(op Operation) []string {
	switch op {
	case OpPDFMerge, OpPDFSplit, OpPDFPages:
		return []string{MIMETypePDF}
	case OpPDFCompress:
		return []string{MIMETypePDF, MIMETypeJPEG, MIMETypePNG}
	case OpImageCompress, OpImageResize:
		return []string{MIMETypeJPEG, MIMETypePNG, MIMETypeWebP}
	default:
		return nil
	}
}

// DefaultLimits лимиты по умолчанию
func DefaultLimits() LimitsConfig {
	return LimitsConfig{
		ImageBulkMB:   10,
		ImageResizeMB: 20,
		PDFMergeMB:    50,
		PDFSplitMB:    100,
		PDFCompressMB: 100,
		PDFPagesMB:    100,
	}
}

// Validate проверяет лимиты
func (l LimitsConfig) Validate() error {
	values := map[string]int{
		"image_bulk_mb":   l.ImageBulkMB,
		"image_resize_mb": l.ImageResizeMB,
		"pdf_merge_mb":    l.PDFMergeMB,
		"pdf_split_mb":    l.PDFSplitMB,
		"pdf_compress_mb": l.PDFCompressMB,
		"pdf_pages_mb":    l.PDFPagesMB,
	}
	for name, v := range values {
		if v <= 0 {
			return fmt.Errorf("%w: %s", ErrInvalidLimit, name)
		}
	}
	return nil
}

// Validate проверяет корректность конфигурации сжатия
func (c *AppCompressionConfig) Validate() error {
	if _, err := ParseQualityTier(c.Tier); err != nil {
		return err
	}
	switch c.Engine {
	case EnginePDFCPU:
	case EngineUniPDF:
		if c.UniPDFLicenseKey == "" {
			return ErrLicenseRequired
		}
	default:
		return fmt.Errorf("неизвестный PDF движок: %q", c.Engine)
	}
	return nil
}

// SupportedBatchTypes возвращает MIME типы, включенные для пакетной обработки
func (c *AppCompressionConfig) SupportedBatchTypes() []string {
	var types []string
	if c.EnablePDF {
		types = append(types, MIMETypePDF)
	}
	if c.EnableJPEG {
		types = append(types, MIMETypeJPEG)
	}
	if c.EnablePNG {
		types = append(types, MIMETypePNG)
	}
	if c.EnableWebP {
		types = append(types, MIMETypeWebP)
	}
	return types
}

// Validate проверяет конфигурацию приложения целиком
func (c *Config) Validate() error {
	if err := c.Limits.Validate(); err != nil {
		return err
	}
	if err := c.Compression.Validate(); err != nil {
		return err
	}
	if c.Processing.ParallelWorkers < 1 || c.Processing.ParallelWorkers > 32 {
		return ErrInvalidWorkers
	}
	return nil
}

// QualityTier возвращает уровень сжатия по умолчанию
func (c *Config) QualityTier() QualityTier {
	tier, err := ParseQualityTier(c.Compression.Tier)
	if err != nil {
		return TierBalanced
	}
	return tier
}
