package imaging_test

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"

	"doctools/internal/domain/entities"
	"doctools/internal/infrastructure/imaging"
)

func gradient(width, height int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: uint8(x ^ y), A: 255})
		}
	}
	return img
}

func encodeJPEG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 100}); err != nil {
		t.Fatalf("jpeg.Encode: %v", err)
	}
	return buf.Bytes()
}

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("png.Encode: %v", err)
	}
	return buf.Bytes()
}

func TestCodec_Inspect(t *testing.T) {
	codec := imaging.NewCodec()

	info, err := codec.Inspect(encodePNG(t, gradient(64, 32)))
	if err != nil {
		t.Fatalf("Inspect() error: %v", err)
	}
	if info.Format != "png" || info.Width != 64 || info.Height != 32 {
		t.Errorf("Unexpected info %+v", info)
	}
	if info.MIMEType() != entities.MIMETypePNG {
		t.Errorf("Expected %s, got %s", entities.MIMETypePNG, info.MIMEType())
	}

	if _, err := codec.Inspect([]byte("not an image")); err == nil {
		t.Error("Expected error for garbage input")
	}
}

func TestCodec_CompressJPEG(t *testing.T) {
	codec := imaging.NewCodec()
	source := encodeJPEG(t, gradient(256, 256))

	high, mime, err := codec.Compress(source, 0.9)
	if err != nil {
		t.Fatalf("Compress(0.9) error: %v", err)
	}
	if mime != entities.MIMETypeJPEG {
		t.Errorf("Expected %s, got %s", entities.MIMETypeJPEG, mime)
	}

	low, _, err := codec.Compress(source, 0.1)
	if err != nil {
		t.Fatalf("Compress(0.1) error: %v", err)
	}
	if len(low) >= len(high) {
		t.Errorf("Expected lower quality to be smaller: %d >= %d", len(low), len(high))
	}
}

func TestCodec_CompressPNGDownscales(t *testing.T) {
	codec := imaging.NewCodec()

	out, mime, err := codec.Compress(encodePNG(t, gradient(800, 600)), 0.0)
	if err != nil {
		t.Fatalf("Compress() error: %v", err)
	}
	if mime != entities.MIMETypePNG {
		t.Errorf("Expected %s, got %s", entities.MIMETypePNG, mime)
	}

	info, err := codec.Inspect(out)
	if err != nil {
		t.Fatalf("Inspect() error: %v", err)
	}
	if info.Width != 400 || info.Height != 300 {
		t.Errorf("Expected 400x300, got %dx%d", info.Width, info.Height)
	}
}

func TestCodec_Resize(t *testing.T) {
	codec := imaging.NewCodec()
	source := encodeJPEG(t, gradient(200, 100))

	tests := []struct {
		name       string
		req        entities.ResizeRequest
		wantWidth  int
		wantHeight int
		wantMIME   string
	}{
		{"Width only to JPEG", entities.ResizeRequest{Width: 100}, 100, 50, entities.MIMETypeJPEG},
		{"Exact to PNG", entities.ResizeRequest{Width: 30, Height: 40, Format: "png"}, 30, 40, entities.MIMETypePNG},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, mime, err := codec.Resize(source, tt.req)
			if err != nil {
				t.Fatalf("Resize() error: %v", err)
			}
			if mime != tt.wantMIME {
				t.Errorf("Expected %s, got %s", tt.wantMIME, mime)
			}
			info, err := codec.Inspect(out)
			if err != nil {
				t.Fatalf("Inspect() error: %v", err)
			}
			if info.Width != tt.wantWidth || info.Height != tt.wantHeight {
				t.Errorf("Expected %dx%d, got %dx%d", tt.wantWidth, tt.wantHeight, info.Width, info.Height)
			}
		})
	}

	if _, _, err := codec.Resize(source, entities.ResizeRequest{}); !errors.Is(err, entities.ErrInvalidDimensions) {
		t.Errorf("Expected ErrInvalidDimensions, got %v", err)
	}
}
