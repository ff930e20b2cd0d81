package usecases_test

import (
	"errors"
	"testing"

	"doctools/internal/domain/entities"
	"doctools/internal/infrastructure/pdfengine"
	"doctools/internal/testutil/pdfgen"
	usecases "doctools/internal/usecase"
)

func TestSplitUseCase_Split(t *testing.T) {
	tests := []struct {
		name      string
		pages     int
		selection string
		wantNames []string
	}{
		{"Selected pages", 3, "3,1", []string{"report_page_1.pdf", "report_page_3.pdf"}},
		{"All pages", 2, "1-2", []string{"report_page_1.pdf", "report_page_2.pdf"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine := &fakeEngine{pageCount: tt.pages}
			sel, err := entities.ParsePageSelection(tt.selection)
			if err != nil {
				t.Fatal(err)
			}

			artifacts, err := usecases.NewSplitUseCase(engine, nil).Split(pdfDoc("report.pdf", tt.pages, 10), sel)
			if err != nil {
				t.Fatalf("Split() error: %v", err)
			}
			if len(artifacts) != len(tt.wantNames) {
				t.Fatalf("Expected %d artifacts, got %d", len(tt.wantNames), len(artifacts))
			}
			for i, a := range artifacts {
				if a.Name != tt.wantNames[i] {
					t.Errorf("Artifact %d: expected %s, got %s", i, tt.wantNames[i], a.Name)
				}
				if a.PageCount != 1 || a.MIMEType != entities.MIMETypePDF {
					t.Errorf("Artifact %d: unexpected %d pages, %s", i, a.PageCount, a.MIMEType)
				}
			}
		})
	}
}

func TestSplitUseCase_OutOfRange(t *testing.T) {
	engine := &fakeEngine{pageCount: 3}
	sel := entities.NewPageSelection(1, 5)

	artifacts, err := usecases.NewSplitUseCase(engine, nil).Split(pdfDoc("a.pdf", 3, 10), sel)
	if !errors.Is(err, entities.ErrPageOutOfRange) {
		t.Fatalf("Expected ErrPageOutOfRange, got %v", err)
	}
	if artifacts != nil {
		t.Errorf("Expected no artifacts, got %d", len(artifacts))
	}
	if len(engine.extracted) != 0 {
		t.Errorf("Expected no pages extracted before validation, got %v", engine.extracted)
	}

	var docErr *entities.DocumentError
	if !errors.As(err, &docErr) || docErr.Page != 5 {
		t.Errorf("Expected error for page 5, got %v", err)
	}
}

func TestSplitUseCase_EmptySelection(t *testing.T) {
	_, err := usecases.NewSplitUseCase(&fakeEngine{pageCount: 3}, nil).
		Split(pdfDoc("a.pdf", 3, 10), entities.NewPageSelection())
	if !errors.Is(err, entities.ErrPageOutOfRange) {
		t.Errorf("Expected ErrPageOutOfRange, got %v", err)
	}
}

func TestSplitUseCase_ExtractFailure(t *testing.T) {
	engine := &fakeEngine{pageCount: 3, extractErr: map[int]error{2: errBoom}}

	artifacts, err := usecases.NewSplitUseCase(engine, nil).Split(pdfDoc("a.pdf", 3, 10), entities.AllPages(3))
	if !errors.Is(err, entities.ErrSplitFailed) || !errors.Is(err, errBoom) {
		t.Fatalf("Expected ErrSplitFailed wrapping cause, got %v", err)
	}
	if artifacts != nil {
		t.Errorf("Expected no partial result, got %d artifacts", len(artifacts))
	}
}

func TestSplitUseCase_RealDocument(t *testing.T) {
	engine := pdfengine.NewPDFCPUEngine()
	data := pdfgen.Generate(3)
	doc := &entities.Document{Name: "scan.pdf", Data: data, Meta: entities.DocumentMetadata{PageCount: 3}}

	artifacts, err := usecases.NewSplitUseCase(engine, nil).Split(doc, entities.NewPageSelection(1, 3))
	if err != nil {
		t.Fatalf("Split() error: %v", err)
	}
	for _, a := range artifacts {
		n, err := engine.PageCount(a.Data)
		if err != nil || n != 1 {
			t.Errorf("%s: expected single page, got %d (%v)", a.Name, n, err)
		}
	}
}
