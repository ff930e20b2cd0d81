package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"doctools/internal/domain/entities"
)

// DefaultPath путь к файлу конфигурации по умолчанию
const DefaultPath = "config.yaml"

// Repository реализация репозитория конфигурации
type Repository struct{}

// NewRepository создает новый репозиторий конфигурации
func NewRepository() *Repository {
	return &Repository{}
}

// Load загружает конфигурацию из файла.
// Отсутствующий файл дает конфигурацию по умолчанию, отсутствующие ключи
// сохраняют значения по умолчанию.
func (r *Repository) Load(configPath string) (*entities.Config, error) {
	config := Default()

	data, err := os.ReadFile(configPath)
	if os.IsNotExist(err) {
		return config, nil
	}
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения конфигурации %s: %w", configPath, err)
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("ошибка разбора конфигурации %s: %w", configPath, err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("некорректная конфигурация %s: %w", configPath, err)
	}

	return config, nil
}

// Save сохраняет конфигурацию в файл
func (r *Repository) Save(configPath string, config *entities.Config) error {
	data, err := yaml.Marshal(config)
	if err != nil {
		return err
	}

	return os.WriteFile(configPath, data, 0644)
}

// Default создает конфигурацию по умолчанию
func Default() *entities.Config {
	return &entities.Config{
		Workspace: entities.WorkspaceConfig{
			InputDirectory:  "./input",
			OutputDirectory: "./output",
		},
		Limits: entities.DefaultLimits(),
		Compression: entities.AppCompressionConfig{
			Engine:     entities.EnginePDFCPU,
			Tier:       string(entities.TierBalanced),
			EnablePDF:  true,
			EnableJPEG: true,
			EnablePNG:  true,
			EnableWebP: false,
		},
		Processing: entities.ProcessingConfig{
			ParallelWorkers: 2,
			RetryAttempts:   1,
		},
		Output: entities.OutputConfig{
			LogLevel:     "info",
			LogToFile:    true,
			LogFileName:  "doctools.log",
			LogMaxSizeMB: 10,
		},
		History: entities.HistoryConfig{
			Enabled:  true,
			Database: "history.db",
			Limit:    entities.DefaultHistoryLimit,
		},
	}
}
