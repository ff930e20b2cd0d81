package usecases

import (
	"fmt"
	"slices"

	"doctools/internal/domain/entities"
	"doctools/internal/domain/repositories"
)

// ValidateUseCase проверка загруженных файлов перед обработкой
type ValidateUseCase struct {
	logSink
	engine repositories.PDFEngine
	codec  repositories.ImageCodec
	limits entities.LimitsConfig
}

// NewValidateUseCase создает сценарий проверки файлов
func NewValidateUseCase(
	engine repositories.PDFEngine,
	codec repositories.ImageCodec,
	limits entities.LimitsConfig,
	logger repositories.Logger,
) *ValidateUseCase {
	return &ValidateUseCase{
		logSink: logSink{logger: logger},
		engine:  engine,
		codec:   codec,
		limits:  limits,
	}
}

// Validate проверяет файл для операции op. Порядок проверок:
// размер, тип, структура, шифрование. Размер проверяется до разбора.
func (uc *ValidateUseCase) Validate(upload *entities.Upload, op entities.Operation) entities.ValidationResult {
	if result, ok := uc.checkSize(upload, op); !ok {
		return result
	}

	mimeType := upload.ContentType()
	if !slices.Contains(entities.AcceptedTypes(op), mimeType) {
		if mimeType == "" {
			mimeType = "неизвестный тип"
		}
		return uc.invalid(upload, entities.ErrorKindWrongType, fmt.Errorf("%s", mimeType))
	}

	var (
		meta *entities.DocumentMetadata
		err  error
	)
	if mimeType == entities.MIMETypePDF {
		meta, err = uc.inspectPDF(upload.Data)
	} else {
		meta, err = uc.inspectImage(upload.Data, mimeType)
	}
	if err != nil {
		return uc.invalid(upload, entities.ErrorKindCorrupt, err)
	}

	if meta.IsEncrypted {
		return uc.invalid(upload, entities.ErrorKindEncrypted, nil)
	}

	uc.logDebug("Файл %s допущен: %s, %s, страниц: %d",
		upload.Name, meta.MIMEType, entities.FormatSize(meta.SizeBytes), meta.PageCount)
	return entities.ValidationResult{Details: meta}
}

// CheckSize проверяет только лимит размера и не требует содержимого файла
func (uc *ValidateUseCase) CheckSize(upload *entities.Upload, op entities.Operation) error {
	result, _ := uc.checkSize(upload, op)
	return result.Err
}

func (uc *ValidateUseCase) checkSize(upload *entities.Upload, op entities.Operation) (entities.ValidationResult, bool) {
	limit := uc.limits.MaxBytes(op)
	if limit <= 0 || upload.DeclaredSize() <= limit {
		return entities.ValidationResult{}, true
	}
	return uc.invalid(upload, entities.ErrorKindTooLarge,
		fmt.Errorf("%s > %s", entities.FormatSize(upload.DeclaredSize()), entities.FormatSize(limit))), false
}

// Admit проверяет файл и возвращает документ, готовый к обработке
func (uc *ValidateUseCase) Admit(upload *entities.Upload, op entities.Operation) (*entities.Document, error) {
	result := uc.Validate(upload, op)
	if !result.IsValid() {
		return nil, result.Err
	}
	return &entities.Document{
		Name: upload.Name,
		Data: upload.Data,
		Meta: *result.Details,
	}, nil
}

func (uc *ValidateUseCase) inspectPDF(data []byte) (*entities.DocumentMetadata, error) {
	meta, err := uc.engine.Inspect(data)
	if err != nil {
		return nil, err
	}
	if !meta.IsEncrypted && meta.PageCount < 1 {
		return nil, fmt.Errorf("документ не содержит страниц")
	}
	return meta, nil
}

func (uc *ValidateUseCase) inspectImage(data []byte, mimeType string) (*entities.DocumentMetadata, error) {
	info, err := uc.codec.Inspect(data)
	if err != nil {
		return nil, err
	}
	if info.MIMEType() != mimeType {
		return nil, fmt.Errorf("содержимое %s не соответствует типу %s", info.Format, mimeType)
	}
	return &entities.DocumentMetadata{
		Kind:      entities.KindImage,
		MIMEType:  mimeType,
		SizeBytes: int64(len(data)),
		Width:     info.Width,
		Height:    info.Height,
	}, nil
}

func (uc *ValidateUseCase) invalid(upload *entities.Upload, kind entities.ErrorKind, cause error) entities.ValidationResult {
	err := entities.NewDocumentError(kind, upload.Name, cause)
	uc.logWarning("Файл отклонен: %v", err)
	return entities.ValidationResult{Reason: kind, Err: err}
}
