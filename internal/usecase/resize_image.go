package usecases

import (
	"doctools/internal/domain/entities"
	"doctools/internal/domain/repositories"
)

// ResizeImageUseCase изменение размера и формата изображения
type ResizeImageUseCase struct {
	logSink
	codec repositories.ImageCodec
}

// NewResizeImageUseCase создает сценарий изменения размера
func NewResizeImageUseCase(codec repositories.ImageCodec, logger repositories.Logger) *ResizeImageUseCase {
	return &ResizeImageUseCase{logSink: logSink{logger: logger}, codec: codec}
}

// Resize масштабирует изображение. Недостающий размер вычисляется по пропорциям.
func (uc *ResizeImageUseCase) Resize(doc *entities.Document, req entities.ResizeRequest) (*entities.OutputArtifact, error) {
	normalized, err := req.Normalize(doc.Meta.Width, doc.Meta.Height)
	if err != nil {
		return nil, err
	}

	data, mimeType, err := uc.codec.Resize(doc.Data, normalized)
	if err != nil {
		return nil, entities.NewDocumentError(entities.ErrorKindEncodeFailed, doc.Name, err)
	}

	uc.logSuccess("%s: %dx%d → %dx%d (%s)", doc.Name,
		doc.Meta.Width, doc.Meta.Height, normalized.Width, normalized.Height, normalized.Format)
	return &entities.OutputArtifact{
		Name:     doc.Stem() + "_resized" + extensionFor(mimeType),
		MIMEType: mimeType,
		Data:     data,
	}, nil
}
