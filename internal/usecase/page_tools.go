package usecases

import (
	"fmt"

	"doctools/internal/domain/entities"
	"doctools/internal/domain/repositories"
)

// PageToolsUseCase поворот, удаление, извлечение и нумерация страниц
type PageToolsUseCase struct {
	logSink
	engine repositories.PDFEngine
}

// NewPageToolsUseCase создает сценарий работы со страницами
func NewPageToolsUseCase(engine repositories.PDFEngine, logger repositories.Logger) *PageToolsUseCase {
	return &PageToolsUseCase{logSink: logSink{logger: logger}, engine: engine}
}

// Rotate поворачивает выбранные страницы; пустой выбор означает все страницы
func (uc *PageToolsUseCase) Rotate(doc *entities.Document, sel entities.PageSelection, degrees int) (*entities.OutputArtifact, error) {
	switch degrees {
	case 90, 180, 270, -90:
	default:
		return nil, fmt.Errorf("%w: %d", entities.ErrInvalidRotation, degrees)
	}
	if sel.IsEmpty() {
		sel = entities.AllPages(doc.Meta.PageCount)
	}
	if err := checkSelection(doc, sel); err != nil {
		return nil, err
	}

	data, err := uc.engine.Rotate(doc.Data, sel.Pages(), degrees)
	if err != nil {
		return nil, entities.NewDocumentError(entities.ErrorKindEncodeFailed, doc.Name, err)
	}

	uc.logSuccess("%s: повернуто страниц: %d на %d°", doc.Name, sel.Len(), degrees)
	return uc.artifact(doc, "_rotated", data, doc.Meta.PageCount), nil
}

// RemovePages удаляет выбранные страницы; в документе должна остаться хотя бы одна
func (uc *PageToolsUseCase) RemovePages(doc *entities.Document, sel entities.PageSelection) (*entities.OutputArtifact, error) {
	if err := checkSelection(doc, sel); err != nil {
		return nil, err
	}
	if sel.Len() >= doc.Meta.PageCount {
		return nil, entities.NewDocumentError(entities.ErrorKindPageOutOfRange, doc.Name,
			fmt.Errorf("нельзя удалить все страницы документа"))
	}

	data, err := uc.engine.RemovePages(doc.Data, sel.Pages())
	if err != nil {
		return nil, entities.NewDocumentError(entities.ErrorKindSplitFailed, doc.Name, err)
	}

	remaining := doc.Meta.PageCount - sel.Len()
	uc.logSuccess("%s: удалено страниц: %d, осталось: %d", doc.Name, sel.Len(), remaining)
	return uc.artifact(doc, "_trimmed", data, remaining), nil
}

// ExtractPages собирает выбранные страницы в один документ по возрастанию номера
func (uc *PageToolsUseCase) ExtractPages(doc *entities.Document, sel entities.PageSelection) (*entities.OutputArtifact, error) {
	if err := checkSelection(doc, sel); err != nil {
		return nil, err
	}

	data, err := uc.engine.ExtractPages(doc.Data, sel.Pages())
	if err != nil {
		return nil, entities.NewDocumentError(entities.ErrorKindSplitFailed, doc.Name, err)
	}

	uc.logSuccess("%s: извлечены страницы %s", doc.Name, sel)
	return uc.artifact(doc, "_extract", data, sel.Len()), nil
}

// AddPageNumbers добавляет номера "n / N" на все страницы
func (uc *PageToolsUseCase) AddPageNumbers(doc *entities.Document, position entities.StampPosition) (*entities.OutputArtifact, error) {
	data, err := uc.engine.StampPageNumbers(doc.Data, position)
	if err != nil {
		return nil, entities.NewDocumentError(entities.ErrorKindEncodeFailed, doc.Name, err)
	}

	uc.logSuccess("%s: пронумеровано страниц: %d (%s)", doc.Name, doc.Meta.PageCount, position)
	return uc.artifact(doc, "_numbered", data, doc.Meta.PageCount), nil
}

func (uc *PageToolsUseCase) artifact(doc *entities.Document, suffix string, data []byte, pages int) *entities.OutputArtifact {
	return &entities.OutputArtifact{
		Name:      doc.Stem() + suffix + ".pdf",
		MIMEType:  entities.MIMETypePDF,
		Data:      data,
		PageCount: pages,
	}
}
