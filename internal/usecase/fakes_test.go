package usecases_test

import (
	"context"
	"errors"
	"io"
	"sync"

	"doctools/internal/domain/entities"
	"doctools/internal/domain/repositories"
)

var errBoom = errors.New("boom")

// fakeEngine PDF движок с настраиваемыми ответами
type fakeEngine struct {
	mu           sync.Mutex
	meta         *entities.DocumentMetadata
	inspectErr   error
	inspectCalls int
	mergeErr     error
	pageCount    int
	extractErr   map[int]error
	extracted    []int
	lastPages    []int
	lastDegrees  int
}

func (f *fakeEngine) Inspect(data []byte) (*entities.DocumentMetadata, error) {
	f.mu.Lock()
	f.inspectCalls++
	f.mu.Unlock()

	if f.inspectErr != nil {
		return nil, f.inspectErr
	}
	meta := *f.meta
	meta.SizeBytes = int64(len(data))
	return &meta, nil
}

func (f *fakeEngine) PageCount([]byte) (int, error) { return f.pageCount, nil }

func (f *fakeEngine) Merge(inputs [][]byte) ([]byte, error) {
	if f.mergeErr != nil {
		return nil, f.mergeErr
	}
	return []byte("merged"), nil
}

func (f *fakeEngine) Open([]byte) (repositories.PageSource, error) {
	return fakeSource{f}, nil
}

func (f *fakeEngine) ExtractPages(_ []byte, pages []int) ([]byte, error) {
	f.lastPages = pages
	return []byte("extract"), nil
}

func (f *fakeEngine) RemovePages(_ []byte, pages []int) ([]byte, error) {
	f.lastPages = pages
	return []byte("removed"), nil
}

func (f *fakeEngine) Rotate(_ []byte, pages []int, degrees int) ([]byte, error) {
	f.lastPages, f.lastDegrees = pages, degrees
	return []byte("rotated"), nil
}

func (f *fakeEngine) StampPageNumbers([]byte, entities.StampPosition) ([]byte, error) {
	return []byte("numbered"), nil
}

type fakeSource struct{ engine *fakeEngine }

func (s fakeSource) PageCount() int { return s.engine.pageCount }

func (s fakeSource) ExtractPage(page int) ([]byte, error) {
	if err := s.engine.extractErr[page]; err != nil {
		return nil, err
	}
	s.engine.extracted = append(s.engine.extracted, page)
	return []byte{byte(page)}, nil
}

// fakeCompressor возвращает данные размера sizeFor(попытка)
type fakeCompressor struct {
	mu        sync.Mutex
	sizeFor   func(call int) int
	err       error
	qualities []float64
}

func (f *fakeCompressor) Name() string { return "fake" }

func (f *fakeCompressor) Compress(_ []byte, quality float64, _ entities.TierProfile) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.err != nil {
		return nil, f.err
	}
	f.qualities = append(f.qualities, quality)
	return make([]byte, f.sizeFor(len(f.qualities))), nil
}

func (f *fakeCompressor) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.qualities)
}

// fakeCodec кодек изображений с фиксированными ответами
type fakeCodec struct {
	info       *entities.ImageInfo
	inspectErr error
	outMIME    string
	outSize    int
	lastResize entities.ResizeRequest
}

func (f *fakeCodec) Inspect([]byte) (*entities.ImageInfo, error) {
	if f.inspectErr != nil {
		return nil, f.inspectErr
	}
	return f.info, nil
}

func (f *fakeCodec) Compress([]byte, float64) ([]byte, string, error) {
	return make([]byte, f.outSize), f.outMIME, nil
}

func (f *fakeCodec) Resize(_ []byte, req entities.ResizeRequest) ([]byte, string, error) {
	f.lastResize = req
	return make([]byte, f.outSize), f.outMIME, nil
}

// memoryHistory журнал в памяти
type memoryHistory struct {
	entries []entities.HistoryEntry
	addErr  error
}

func (m *memoryHistory) Add(_ context.Context, entry entities.HistoryEntry) error {
	if m.addErr != nil {
		return m.addErr
	}
	m.entries = append([]entities.HistoryEntry{entry}, m.entries...)
	return nil
}

func (m *memoryHistory) Recent(_ context.Context, limit int) ([]entities.HistoryEntry, error) {
	return m.entries[:min(limit, len(m.entries))], nil
}

func (m *memoryHistory) Prune(_ context.Context, keep int) error {
	if len(m.entries) > keep {
		m.entries = m.entries[:keep]
	}
	return nil
}

func (m *memoryHistory) Clear(context.Context) error {
	m.entries = nil
	return nil
}

func (m *memoryHistory) Close() error { return nil }

type countingExporter struct{ exported int }

func (e *countingExporter) Export(entries []entities.HistoryEntry, w io.Writer) error {
	e.exported = len(entries)
	_, err := w.Write([]byte("xlsx"))
	return err
}

func pdfDoc(name string, pages int, size int) *entities.Document {
	return &entities.Document{
		Name: name,
		Data: make([]byte, size),
		Meta: entities.DocumentMetadata{
			Kind:      entities.KindPDF,
			MIMEType:  entities.MIMETypePDF,
			PageCount: pages,
			SizeBytes: int64(size),
		},
	}
}
