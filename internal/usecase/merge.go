package usecases

import (
	"fmt"

	"doctools/internal/domain/entities"
	"doctools/internal/domain/repositories"
)

// MergedFileName имя результата объединения
const MergedFileName = "merged.pdf"

// MergeUseCase объединение PDF документов
type MergeUseCase struct {
	logSink
	engine repositories.PDFEngine
}

// NewMergeUseCase создает сценарий объединения
func NewMergeUseCase(engine repositories.PDFEngine, logger repositories.Logger) *MergeUseCase {
	return &MergeUseCase{logSink: logSink{logger: logger}, engine: engine}
}

// Merge объединяет документы в порядке следования. Частичный результат не возвращается.
func (uc *MergeUseCase) Merge(docs []*entities.Document) (*entities.OutputArtifact, error) {
	if len(docs) < 2 {
		return nil, entities.ErrNotEnoughDocuments
	}

	inputs := make([][]byte, len(docs))
	expectedPages := 0
	for i, doc := range docs {
		inputs[i] = doc.Data
		expectedPages += doc.Meta.PageCount
		uc.logDebug("Объединение: %d. %s (%d стр.)", i+1, doc.Name, doc.Meta.PageCount)
	}

	data, err := uc.engine.Merge(inputs)
	if err != nil {
		return nil, entities.NewDocumentError(entities.ErrorKindMergeFailed, "", err)
	}

	pages, err := uc.engine.PageCount(data)
	if err != nil {
		return nil, entities.NewDocumentError(entities.ErrorKindMergeFailed, MergedFileName, err)
	}
	if pages != expectedPages {
		return nil, entities.NewDocumentError(entities.ErrorKindMergeFailed, MergedFileName,
			fmt.Errorf("ожидалось страниц: %d, получено: %d", expectedPages, pages))
	}

	uc.logSuccess("Объединено документов: %d, страниц: %d", len(docs), pages)
	return &entities.OutputArtifact{
		Name:      MergedFileName,
		MIMEType:  entities.MIMETypePDF,
		Data:      data,
		PageCount: pages,
	}, nil
}
