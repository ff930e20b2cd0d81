package usecases_test

import (
	"errors"
	"testing"

	"doctools/internal/domain/entities"
	usecases "doctools/internal/usecase"
)

func newValidator(engine *fakeEngine, codec *fakeCodec) *usecases.ValidateUseCase {
	return usecases.NewValidateUseCase(engine, codec, entities.DefaultLimits(), nil)
}

func TestValidateUseCase_Validate(t *testing.T) {
	const mb = 1024 * 1024

	tests := []struct {
		name     string
		upload   entities.Upload
		op       entities.Operation
		engine   *fakeEngine
		codec    *fakeCodec
		wantKind entities.ErrorKind
	}{
		{
			name:     "Valid PDF",
			upload:   entities.Upload{Name: "a.pdf", Data: []byte("pdf")},
			op:       entities.OpPDFSplit,
			engine:   &fakeEngine{meta: &entities.DocumentMetadata{Kind: entities.KindPDF, MIMEType: entities.MIMETypePDF, PageCount: 3}},
			wantKind: entities.ErrorKindNone,
		},
		{
			name:     "Declared size over limit",
			upload:   entities.Upload{Name: "big.pdf", Size: 120 * mb, Data: []byte("pdf")},
			op:       entities.OpPDFSplit,
			engine:   &fakeEngine{inspectErr: errBoom},
			wantKind: entities.ErrorKindTooLarge,
		},
		{
			name:     "Image over bulk limit",
			upload:   entities.Upload{Name: "a.jpg", Size: 11 * mb},
			op:       entities.OpImageCompress,
			wantKind: entities.ErrorKindTooLarge,
		},
		{
			name:     "Wrong type",
			upload:   entities.Upload{Name: "notes.txt", Data: []byte("hi")},
			op:       entities.OpPDFMerge,
			wantKind: entities.ErrorKindWrongType,
		},
		{
			name:     "Image for PDF operation",
			upload:   entities.Upload{Name: "a.png", Data: []byte("png")},
			op:       entities.OpPDFSplit,
			wantKind: entities.ErrorKindWrongType,
		},
		{
			name:     "Unparseable PDF",
			upload:   entities.Upload{Name: "a.pdf", Data: []byte("garbage")},
			op:       entities.OpPDFSplit,
			engine:   &fakeEngine{inspectErr: errBoom},
			wantKind: entities.ErrorKindCorrupt,
		},
		{
			name:     "PDF without pages",
			upload:   entities.Upload{Name: "a.pdf", Data: []byte("pdf")},
			op:       entities.OpPDFSplit,
			engine:   &fakeEngine{meta: &entities.DocumentMetadata{Kind: entities.KindPDF, MIMEType: entities.MIMETypePDF}},
			wantKind: entities.ErrorKindCorrupt,
		},
		{
			name:     "Encrypted PDF",
			upload:   entities.Upload{Name: "a.pdf", Data: []byte("pdf")},
			op:       entities.OpPDFCompress,
			engine:   &fakeEngine{meta: &entities.DocumentMetadata{Kind: entities.KindPDF, MIMEType: entities.MIMETypePDF, IsEncrypted: true}},
			wantKind: entities.ErrorKindEncrypted,
		},
		{
			name:     "Valid image",
			upload:   entities.Upload{Name: "a.jpg", Data: []byte("jpg")},
			op:       entities.OpImageResize,
			codec:    &fakeCodec{info: &entities.ImageInfo{Format: "jpeg", Width: 10, Height: 10}},
			wantKind: entities.ErrorKindNone,
		},
		{
			name:     "Image content mismatch",
			upload:   entities.Upload{Name: "a.jpg", Data: []byte("png")},
			op:       entities.OpImageCompress,
			codec:    &fakeCodec{info: &entities.ImageInfo{Format: "png", Width: 10, Height: 10}},
			wantKind: entities.ErrorKindCorrupt,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine, codec := tt.engine, tt.codec
			if engine == nil {
				engine = &fakeEngine{inspectErr: errBoom}
			}
			if codec == nil {
				codec = &fakeCodec{inspectErr: errBoom}
			}

			result := newValidator(engine, codec).Validate(&tt.upload, tt.op)
			if result.Reason != tt.wantKind {
				t.Fatalf("Reason = %q, want %q (err: %v)", result.Reason, tt.wantKind, result.Err)
			}
			if tt.wantKind == entities.ErrorKindNone {
				if !result.IsValid() {
					t.Error("Expected valid result")
				}
				return
			}
			if !errors.Is(result.Err, tt.wantKind.Sentinel()) {
				t.Errorf("Expected error to match %v, got %v", tt.wantKind.Sentinel(), result.Err)
			}
		})
	}
}

func TestValidateUseCase_SizeCheckedBeforeParse(t *testing.T) {
	engine := &fakeEngine{meta: &entities.DocumentMetadata{PageCount: 1}}
	upload := entities.Upload{Name: "big.pdf", Size: 120 * 1024 * 1024}

	newValidator(engine, &fakeCodec{}).Validate(&upload, entities.OpPDFSplit)

	if engine.inspectCalls != 0 {
		t.Errorf("Expected no parsing for oversized file, got %d Inspect calls", engine.inspectCalls)
	}
}

func TestValidateUseCase_CheckSize(t *testing.T) {
	validator := newValidator(&fakeEngine{}, &fakeCodec{})

	tests := []struct {
		name    string
		upload  entities.Upload
		op      entities.Operation
		wantErr error
	}{
		{"Over compress limit", entities.Upload{Name: "big.pdf", Size: 120 * 1024 * 1024}, entities.OpPDFCompress, entities.ErrTooLarge},
		{"Within limit", entities.Upload{Name: "ok.pdf", Size: 1024}, entities.OpPDFCompress, nil},
		{"Image bulk limit", entities.Upload{Name: "photo.jpg", Size: 11 * 1024 * 1024}, entities.OpImageCompress, entities.ErrTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.CheckSize(&tt.upload, tt.op)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("Unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestValidateUseCase_Admit(t *testing.T) {
	engine := &fakeEngine{meta: &entities.DocumentMetadata{Kind: entities.KindPDF, MIMEType: entities.MIMETypePDF, PageCount: 2}}
	validator := newValidator(engine, &fakeCodec{})

	doc, err := validator.Admit(&entities.Upload{Name: "a.pdf", Data: []byte("pdf")}, entities.OpPDFSplit)
	if err != nil {
		t.Fatalf("Admit() error: %v", err)
	}
	if doc.Name != "a.pdf" || doc.Meta.PageCount != 2 {
		t.Errorf("Unexpected document %+v", doc)
	}

	if _, err := validator.Admit(&entities.Upload{Name: "a.txt"}, entities.OpPDFSplit); !errors.Is(err, entities.ErrWrongType) {
		t.Errorf("Expected ErrWrongType, got %v", err)
	}
}
