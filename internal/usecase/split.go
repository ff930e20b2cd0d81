package usecases

import (
	"fmt"

	"doctools/internal/domain/entities"
	"doctools/internal/domain/repositories"
)

// SplitUseCase разделение PDF на одностраничные документы
type SplitUseCase struct {
	logSink
	engine repositories.PDFEngine
}

// NewSplitUseCase создает сценарий разделения
func NewSplitUseCase(engine repositories.PDFEngine, logger repositories.Logger) *SplitUseCase {
	return &SplitUseCase{logSink: logSink{logger: logger}, engine: engine}
}

// Split извлекает выбранные страницы в отдельные документы по возрастанию номера.
// Все номера проверяются до начала извлечения.
func (uc *SplitUseCase) Split(doc *entities.Document, sel entities.PageSelection) ([]entities.OutputArtifact, error) {
	if err := checkSelection(doc, sel); err != nil {
		return nil, err
	}

	source, err := uc.engine.Open(doc.Data)
	if err != nil {
		return nil, entities.NewDocumentError(entities.ErrorKindSplitFailed, doc.Name, err)
	}

	pages := sel.Pages()
	artifacts := make([]entities.OutputArtifact, 0, len(pages))
	for _, page := range pages {
		data, err := source.ExtractPage(page)
		if err != nil {
			return nil, entities.NewPageError(entities.ErrorKindSplitFailed, doc.Name, page, err)
		}
		artifacts = append(artifacts, entities.OutputArtifact{
			Name:       SplitPageName(doc.Stem(), page),
			MIMEType:   entities.MIMETypePDF,
			Data:       data,
			PageCount:  1,
			SourcePage: page,
		})
	}

	uc.logSuccess("%s: извлечено страниц: %d", doc.Name, len(artifacts))
	return artifacts, nil
}

// SplitPageName имя документа для страницы page
func SplitPageName(stem string, page int) string {
	return fmt.Sprintf("%s_page_%d.pdf", stem, page)
}

// checkSelection проверяет, что выбор не пуст и лежит в [1, PageCount]
func checkSelection(doc *entities.Document, sel entities.PageSelection) error {
	if sel.IsEmpty() {
		return entities.NewDocumentError(entities.ErrorKindPageOutOfRange, doc.Name,
			fmt.Errorf("не выбрано ни одной страницы"))
	}
	if page, bad := sel.FirstOutOfRange(doc.Meta.PageCount); bad {
		return entities.NewPageError(entities.ErrorKindPageOutOfRange, doc.Name, page,
			fmt.Errorf("в документе страниц: %d", doc.Meta.PageCount))
	}
	return nil
}
