package pdfengine

import (
	"fmt"

	"doctools/internal/domain/entities"
)

// PDFCPUCompressor сжатие PDF средствами PDFCPU.
// PDFCPU не перекодирует изображения, поэтому качество на результат не влияет:
// выполняется удаление дубликатов объектов и сжатие потоков.
type PDFCPUCompressor struct {
	engine *PDFCPUEngine
}

// NewPDFCPUCompressor создает новый PDFCPU компрессор
func NewPDFCPUCompressor(engine *PDFCPUEngine) *PDFCPUCompressor {
	return &PDFCPUCompressor{engine: engine}
}

// Name название движка
func (p *PDFCPUCompressor) Name() string {
	return entities.EnginePDFCPU
}

// Compress оптимизирует документ
func (p *PDFCPUCompressor) Compress(data []byte, _ float64, _ entities.TierProfile) ([]byte, error) {
	out, err := p.engine.Optimize(data)
	if err != nil {
		return nil, fmt.Errorf("ошибка оптимизации PDFCPU: %w", err)
	}
	return out, nil
}
