package imaging

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"

	"github.com/nfnt/resize"
	_ "golang.org/x/image/webp"

	"doctools/internal/domain/entities"
)

// Маленькие PNG не уменьшаются
const minDownscaleSide = 400

// Codec реализация кодека изображений
type Codec struct{}

// NewCodec создает новый кодек изображений
func NewCodec() *Codec {
	return &Codec{}
}

// Inspect читает заголовок изображения без полного декодирования
func (c *Codec) Inspect(data []byte) (*entities.ImageInfo, error) {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("не удалось прочитать заголовок изображения: %w", err)
	}
	return &entities.ImageInfo{Format: format, Width: cfg.Width, Height: cfg.Height}, nil
}

// Compress перекодирует изображение с качеством quality (0..1).
// JPEG и WebP кодируются в JPEG с качеством quality*100.
// PNG остается без потерь и уменьшается в масштабе 0.5+0.5*quality.
func (c *Codec) Compress(data []byte, quality float64) ([]byte, string, error) {
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, "", fmt.Errorf("не удалось декодировать изображение: %w", err)
	}

	switch format {
	case "png":
		out, err := encodePNG(downscale(img, 0.5+0.5*quality))
		return out, entities.MIMETypePNG, err
	case "jpeg", "webp":
		out, err := encodeJPEG(img, quality)
		return out, entities.MIMETypeJPEG, err
	default:
		return nil, "", fmt.Errorf("%w: %s", entities.ErrWrongType, format)
	}
}

// Resize изменяет размеры изображения и кодирует его в запрошенный формат
func (c *Codec) Resize(data []byte, req entities.ResizeRequest) ([]byte, string, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, "", fmt.Errorf("не удалось декодировать изображение: %w", err)
	}

	bounds := img.Bounds()
	req, err = req.Normalize(bounds.Dx(), bounds.Dy())
	if err != nil {
		return nil, "", err
	}

	resized := resize.Resize(uint(req.Width), uint(req.Height), img, resize.Lanczos3)

	if req.Format == "png" {
		out, err := encodePNG(resized)
		return out, entities.MIMETypePNG, err
	}
	out, err := encodeJPEG(resized, req.Quality)
	return out, entities.MIMETypeJPEG, err
}

func downscale(img image.Image, scaleFactor float64) image.Image {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()

	if scaleFactor >= 1.0 || (width < minDownscaleSide && height < minDownscaleSide) {
		return img
	}

	newWidth := uint(float64(width) * scaleFactor)
	newHeight := uint(float64(height) * scaleFactor)
	if newWidth == 0 || newHeight == 0 {
		return img
	}
	return resize.Resize(newWidth, newHeight, img, resize.Lanczos3)
}

func encodeJPEG(img image.Image, quality float64) ([]byte, error) {
	q := int(quality*100 + 0.5)
	if q < 1 {
		q = 1
	}
	if q > 100 {
		q = 100
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: q}); err != nil {
		return nil, fmt.Errorf("не удалось закодировать JPEG: %w", err)
	}
	return buf.Bytes(), nil
}

func encodePNG(img image.Image) ([]byte, error) {
	encoder := &png.Encoder{CompressionLevel: png.BestCompression}

	var buf bytes.Buffer
	if err := encoder.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("не удалось закодировать PNG: %w", err)
	}
	return buf.Bytes(), nil
}
