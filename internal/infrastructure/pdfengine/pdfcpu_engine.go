package pdfengine

import (
	"bytes"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"sync"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"doctools/internal/domain/entities"
	"doctools/internal/domain/repositories"
)

var disableConfigDir sync.Once

// PDFCPUEngine реализация PDF движка на основе PDFCPU
type PDFCPUEngine struct{}

// NewPDFCPUEngine создает новый PDFCPU движок
func NewPDFCPUEngine() *PDFCPUEngine {
	// PDFCPU не должен создавать каталог конфигурации в домашней директории
	disableConfigDir.Do(api.DisableConfigDir)
	return &PDFCPUEngine{}
}

func (e *PDFCPUEngine) conf() *model.Configuration {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	return conf
}

func (e *PDFCPUEngine) read(data []byte) (*model.Context, error) {
	ctx, err := api.ReadContext(bytes.NewReader(data), e.conf())
	if err != nil {
		return nil, err
	}
	if err := api.ValidateContext(ctx); err != nil {
		return nil, err
	}
	if err := ctx.EnsurePageCount(); err != nil {
		return nil, err
	}
	return ctx, nil
}

// Inspect разбирает документ и возвращает его метаданные.
// Зашифрованный документ возвращается с IsEncrypted=true без ошибки,
// даже если его нельзя открыть без пароля.
func (e *PDFCPUEngine) Inspect(data []byte) (*entities.DocumentMetadata, error) {
	meta := &entities.DocumentMetadata{
		Kind:      entities.KindPDF,
		MIMEType:  entities.MIMETypePDF,
		SizeBytes: int64(len(data)),
	}

	ctx, err := e.read(data)
	if err != nil {
		if hasEncryptEntry(data) {
			meta.IsEncrypted = true
			return meta, nil
		}
		return nil, fmt.Errorf("ошибка разбора PDF: %w", err)
	}

	meta.PageCount = ctx.PageCount
	meta.IsEncrypted = ctx.Encrypt != nil
	meta.Producer = ctx.Producer
	meta.Version = ctx.VersionString()
	return meta, nil
}

// PageCount возвращает количество страниц
func (e *PDFCPUEngine) PageCount(data []byte) (int, error) {
	return api.PageCount(bytes.NewReader(data), e.conf())
}

// Merge объединяет документы в порядке следования
func (e *PDFCPUEngine) Merge(inputs [][]byte) ([]byte, error) {
	readers := make([]io.ReadSeeker, len(inputs))
	for i, in := range inputs {
		readers[i] = bytes.NewReader(in)
	}

	var out bytes.Buffer
	if err := api.MergeRaw(readers, &out, false, e.conf()); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

// Open разбирает документ для последовательного извлечения страниц
func (e *PDFCPUEngine) Open(data []byte) (repositories.PageSource, error) {
	ctx, err := api.ReadValidateAndOptimize(bytes.NewReader(data), e.conf())
	if err != nil {
		return nil, err
	}
	return &pdfcpuPageSource{ctx: ctx}, nil
}

type pdfcpuPageSource struct {
	ctx *model.Context
}

func (s *pdfcpuPageSource) PageCount() int {
	return s.ctx.PageCount
}

func (s *pdfcpuPageSource) ExtractPage(page int) ([]byte, error) {
	r, err := api.ExtractPage(s.ctx, page)
	if err != nil {
		return nil, err
	}
	return io.ReadAll(r)
}

// ExtractPages собирает новый документ из выбранных страниц
func (e *PDFCPUEngine) ExtractPages(data []byte, pages []int) ([]byte, error) {
	var out bytes.Buffer
	if err := api.Trim(bytes.NewReader(data), &out, pageNumbers(pages), e.conf()); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

// RemovePages удаляет выбранные страницы
func (e *PDFCPUEngine) RemovePages(data []byte, pages []int) ([]byte, error) {
	var out bytes.Buffer
	if err := api.RemovePages(bytes.NewReader(data), &out, pageNumbers(pages), e.conf()); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

// Rotate поворачивает выбранные страницы (все, если pages пуст)
func (e *PDFCPUEngine) Rotate(data []byte, pages []int, degrees int) ([]byte, error) {
	var out bytes.Buffer
	if err := api.Rotate(bytes.NewReader(data), &out, degrees, pageNumbers(pages), e.conf()); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

// StampPageNumbers добавляет на каждую страницу надпись "n / N"
func (e *PDFCPUEngine) StampPageNumbers(data []byte, position entities.StampPosition) ([]byte, error) {
	conf := e.conf()
	wm, err := api.TextWatermark("%p / %P", stampDescription(position), true, false, conf.Unit)
	if err != nil {
		return nil, err
	}

	var out bytes.Buffer
	if err := api.AddWatermarks(bytes.NewReader(data), &out, nil, wm, conf); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

func stampDescription(position entities.StampPosition) string {
	pos, offset := "bc", "0 14"
	switch position {
	case entities.StampBottomRight:
		pos, offset = "br", "-24 14"
	case entities.StampTopRight:
		pos, offset = "tr", "-24 -14"
	}
	return fmt.Sprintf(
		"fontname:Helvetica, points:10, position:%s, offset:%s, scalefactor:1 abs, rotation:0, opacity:1, fillcolor:#333333",
		pos, offset,
	)
}

// Optimize выполняет структурную оптимизацию документа
func (e *PDFCPUEngine) Optimize(data []byte) ([]byte, error) {
	var out bytes.Buffer
	if err := api.Optimize(bytes.NewReader(data), &out, e.conf()); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

func pageNumbers(pages []int) []string {
	if len(pages) == 0 {
		return nil
	}
	out := make([]string, len(pages))
	for i, p := range pages {
		out[i] = strconv.Itoa(p)
	}
	return out
}

// encryptEntry ссылка на словарь шифрования: косвенная или прямая
var encryptEntry = regexp.MustCompile(`/Encrypt\s*(\d+\s+\d+\s+R|<<)`)

// maxDictScan предел просмотра словаря в каждую сторону от ключа
const maxDictScan = 4096

// hasEncryptEntry ищет /Encrypt в словаре трейлера (или потока xref)
// документа, который не удалось открыть. Словарь трейлера всегда содержит /Root.
func hasEncryptEntry(data []byte) bool {
	if !bytes.HasPrefix(bytes.TrimLeft(data, "\x00\t\r\n "), []byte("%PDF-")) {
		return false
	}
	for _, loc := range encryptEntry.FindAllIndex(data, -1) {
		dict := enclosingDict(data, loc[0])
		if dict != nil && bytes.Contains(dict, []byte("/Root")) {
			return true
		}
	}
	return false
}

// enclosingDict возвращает словарь << ... >>, внутри которого находится pos
func enclosingDict(data []byte, pos int) []byte {
	start := -1
	depth := 0
	for i := pos - 1; i > 0 && pos-i < maxDictScan; i-- {
		if data[i-1] == '>' && data[i] == '>' {
			depth++
			i--
			continue
		}
		if data[i-1] == '<' && data[i] == '<' {
			if depth == 0 {
				start = i - 1
				break
			}
			depth--
			i--
		}
	}
	if start < 0 {
		return nil
	}

	depth = 0
	for i := start; i+1 < len(data) && i-pos < maxDictScan; i++ {
		switch {
		case data[i] == '<' && data[i+1] == '<':
			depth++
			i++
		case data[i] == '>' && data[i+1] == '>':
			depth--
			i++
			if depth == 0 {
				return data[start : i+1]
			}
		}
	}
	return nil
}
