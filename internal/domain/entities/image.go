package entities

import "fmt"

// ImageInfo сведения о растровом изображении
type ImageInfo struct {
	Format string // jpeg, png, webp
	Width  int
	Height int
}

// MIMEType возвращает MIME тип формата
func (i *ImageInfo) MIMEType() string {
	switch i.Format {
	case "jpeg":
		return MIMETypeJPEG
	case "png":
		return MIMETypePNG
	case "webp":
		return MIMETypeWebP
	default:
		return ""
	}
}

// DefaultResizeQuality качество JPEG при изменении размера
const DefaultResizeQuality = 0.92

// MaxResizeSide предельная сторона результата изменения размера, px
const MaxResizeSide = 10000

// ResizeRequest параметры изменения размера изображения
type ResizeRequest struct {
	Width      int
	Height     int
	KeepAspect bool
	Quality    float64 // 0..1, 0 - DefaultResizeQuality
	Format     string  // jpeg | png, пусто - jpeg
}

// Normalize заполняет недостающие параметры с учетом исходных размеров
func (r ResizeRequest) Normalize(srcWidth, srcHeight int) (ResizeRequest, error) {
	if srcWidth <= 0 || srcHeight <= 0 {
		return r, ErrInvalidDimensions
	}
	if r.Width < 0 || r.Height < 0 || (r.Width == 0 && r.Height == 0) {
		return r, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, r.Width, r.Height)
	}

	aspect := float64(srcWidth) / float64(srcHeight)
	switch {
	case r.Width == 0:
		r.Width = max(1, int(float64(r.Height)*aspect+0.5))
	case r.Height == 0:
		r.Height = max(1, int(float64(r.Width)/aspect+0.5))
	case r.KeepAspect:
		r.Height = max(1, int(float64(r.Width)/aspect+0.5))
	}
	if r.Width > MaxResizeSide || r.Height > MaxResizeSide {
		return r, fmt.Errorf("%w: %dx%d, максимум %d px", ErrInvalidDimensions, r.Width, r.Height, MaxResizeSide)
	}

	if r.Quality <= 0 || r.Quality > 1 {
		r.Quality = DefaultResizeQuality
	}
	switch r.Format {
	case "", "jpg", "jpeg":
		r.Format = "jpeg"
	case "png":
	default:
		return r, fmt.Errorf("%w: %s", ErrWrongType, r.Format)
	}
	return r, nil
}

// StampPosition положение номера страницы
type StampPosition string

const (
	StampBottomCenter StampPosition = "bottom-center"
	StampBottomRight  StampPosition = "bottom-right"
	StampTopRight     StampPosition = "top-right"
)

// ParseStampPosition разбирает положение, пусто - внизу по центру
func ParseStampPosition(value string) (StampPosition, error) {
	switch StampPosition(value) {
	case "":
		return StampBottomCenter, nil
	case StampBottomCenter, StampBottomRight, StampTopRight:
		return StampPosition(value), nil
	}
	return "", fmt.Errorf("неизвестное положение номера страницы: %q", value)
}
