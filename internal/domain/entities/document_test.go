package entities_test

import (
	"errors"
	"testing"

	"doctools/internal/domain/entities"
)

func TestUpload_ContentType(t *testing.T) {
	tests := []struct {
		name   string
		upload entities.Upload
		want   string
	}{
		{"Declared type wins", entities.Upload{Name: "a.bin", MIMEType: "application/pdf"}, entities.MIMETypePDF},
		{"Declared type with params", entities.Upload{Name: "a", MIMEType: "image/PNG; charset=binary"}, entities.MIMETypePNG},
		{"Inferred from extension", entities.Upload{Name: "photo.JPG"}, entities.MIMETypeJPEG},
		{"WebP extension", entities.Upload{Name: "x.webp"}, entities.MIMETypeWebP},
		{"Unknown", entities.Upload{Name: "noext"}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.upload.ContentType(); got != tt.want {
				t.Errorf("ContentType() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestUpload_DeclaredSize(t *testing.T) {
	u := entities.Upload{Data: make([]byte, 10)}
	if got := u.DeclaredSize(); got != 10 {
		t.Errorf("Expected len(Data)=10, got %d", got)
	}

	u.Size = 120 * 1024 * 1024
	if got := u.DeclaredSize(); got != u.Size {
		t.Errorf("Expected declared size %d, got %d", u.Size, got)
	}
}

func TestFileStem(t *testing.T) {
	tests := map[string]string{
		"report.pdf":          "report",
		"/tmp/dir/scan.2.pdf": "scan.2",
		".pdf":                "document",
		"":                    "document",
	}

	for name, want := range tests {
		if got := entities.FileStem(name); got != want {
			t.Errorf("FileStem(%q) = %q, want %q", name, got, want)
		}
	}
}

func TestResizeRequest_Normalize(t *testing.T) {
	tests := []struct {
		name       string
		req        entities.ResizeRequest
		wantWidth  int
		wantHeight int
		wantFormat string
		wantErr    error
	}{
		{"Width only", entities.ResizeRequest{Width: 400}, 400, 300, "jpeg", nil},
		{"Height only", entities.ResizeRequest{Height: 150, Format: "png"}, 200, 150, "png", nil},
		{"Both without aspect", entities.ResizeRequest{Width: 100, Height: 100}, 100, 100, "jpeg", nil},
		{"Both with aspect", entities.ResizeRequest{Width: 100, Height: 100, KeepAspect: true}, 100, 75, "jpeg", nil},
		{"No dimensions", entities.ResizeRequest{}, 0, 0, "", entities.ErrInvalidDimensions},
		{"Negative width", entities.ResizeRequest{Width: -1, Height: 10}, 0, 0, "", entities.ErrInvalidDimensions},
		{"Width over cap", entities.ResizeRequest{Width: 100000, Height: 100000}, 0, 0, "", entities.ErrInvalidDimensions},
		{"Derived height within cap", entities.ResizeRequest{Width: 100, Height: 0}, 100, 75, "jpeg", nil},
		{"Derived width over cap", entities.ResizeRequest{Height: 9000}, 0, 0, "", entities.ErrInvalidDimensions},
		{"At cap", entities.ResizeRequest{Width: entities.MaxResizeSide, Height: 1}, entities.MaxResizeSide, 1, "jpeg", nil},
		{"Unsupported format", entities.ResizeRequest{Width: 10, Format: "gif"}, 0, 0, "", entities.ErrWrongType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.req.Normalize(800, 600)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("Expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if got.Width != tt.wantWidth || got.Height != tt.wantHeight || got.Format != tt.wantFormat {
				t.Errorf("Normalize() = %dx%d %s, want %dx%d %s",
					got.Width, got.Height, got.Format, tt.wantWidth, tt.wantHeight, tt.wantFormat)
			}
			if got.Quality != entities.DefaultResizeQuality {
				t.Errorf("Expected default quality, got %v", got.Quality)
			}
		})
	}
}
