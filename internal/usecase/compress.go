package usecases

import (
	"math"

	"doctools/internal/domain/entities"
	"doctools/internal/domain/repositories"
)

// Результат должен быть меньше исходного хотя бы на 5%
const minEffectiveRatio = 0.95

// encodeFunc кодирует документ с заданным качеством и возвращает данные и MIME тип
type encodeFunc func(quality float64) ([]byte, string, error)

// CompressUseCase сжатие PDF и изображений с подбором качества
type CompressUseCase struct {
	logSink
	pdf   repositories.PDFCompressor
	codec repositories.ImageCodec
}

// NewCompressUseCase создает сценарий сжатия
func NewCompressUseCase(
	pdf repositories.PDFCompressor,
	codec repositories.ImageCodec,
	logger repositories.Logger,
) *CompressUseCase {
	return &CompressUseCase{
		logSink: logSink{logger: logger},
		pdf:     pdf,
		codec:   codec,
	}
}

// Compress выбирает сжатие по типу документа
func (uc *CompressUseCase) Compress(doc *entities.Document, tier entities.QualityTier) (*entities.CompressionOutcome, error) {
	if doc.Meta.Kind == entities.KindImage {
		return uc.CompressImage(doc, tier)
	}
	return uc.CompressPDF(doc, tier)
}

// CompressPDF сжимает PDF выбранным движком
func (uc *CompressUseCase) CompressPDF(doc *entities.Document, tier entities.QualityTier) (*entities.CompressionOutcome, error) {
	profile, err := tier.Profile()
	if err != nil {
		return nil, err
	}

	uc.logInfo("%s: сжатие PDF (%s, движок %s)", doc.Name, tier, uc.pdf.Name())
	return uc.tune(doc, profile, func(quality float64) ([]byte, string, error) {
		data, err := uc.pdf.Compress(doc.Data, quality, profile)
		return data, entities.MIMETypePDF, err
	})
}

// CompressImage перекодирует изображение
func (uc *CompressUseCase) CompressImage(doc *entities.Document, tier entities.QualityTier) (*entities.CompressionOutcome, error) {
	profile, err := tier.Profile()
	if err != nil {
		return nil, err
	}

	uc.logInfo("%s: сжатие изображения %dx%d (%s)", doc.Name, doc.Meta.Width, doc.Meta.Height, tier)
	return uc.tune(doc, profile, func(quality float64) ([]byte, string, error) {
		return uc.codec.Compress(doc.Data, quality)
	})
}

// tune подбирает качество: не более MaxAttempts кодирований, каждая попытка
// получает новые параметры. Возвращает попытку, ближайшую к цели.
func (uc *CompressUseCase) tune(doc *entities.Document, profile entities.TierProfile, encode encodeFunc) (*entities.CompressionOutcome, error) {
	originalSize := int64(len(doc.Data))
	outcome := &entities.CompressionOutcome{Tier: profile.Tier}

	var (
		bestData []byte
		bestMIME string
		haveBest bool
		prevSize int64 = -1
	)

	params := profile.InitialParams()
	for {
		data, mimeType, err := encode(params.Quality)
		if err != nil {
			return nil, entities.NewDocumentError(entities.ErrorKindEncodeFailed, doc.Name, err)
		}

		size := int64(len(data))
		attempt := entities.CompressionAttempt{Params: params, Size: size, Ratio: ratioOf(size, originalSize)}
		outcome.Attempts = append(outcome.Attempts, attempt)
		uc.logDebug("%s: попытка %d, качество %.2f, коэффициент %.3f",
			doc.Name, params.Attempt, params.Quality, attempt.Ratio)

		if !haveBest || distance(attempt, profile) < distance(outcome.Best, profile) {
			outcome.Best = attempt
			bestData, bestMIME, haveBest = data, mimeType, true
		}

		if profile.Converged(attempt.Ratio) {
			outcome.Converged = true
			break
		}
		if params.Attempt >= profile.MaxAttempts || size == prevSize {
			break
		}

		next := profile.Next(params, attempt.Ratio)
		if next.Quality == params.Quality {
			break
		}
		prevSize = size
		params = next
	}

	artifact := entities.OutputArtifact{
		MIMEType:  bestMIME,
		Data:      bestData,
		PageCount: doc.Meta.PageCount,
	}
	outcome.Effective = float64(outcome.Best.Size) <= minEffectiveRatio*float64(originalSize)
	if !outcome.Effective {
		artifact.MIMEType = doc.Meta.MIMEType
		artifact.Data = doc.Data
		uc.logWarning("%s: сжатие неэффективно, сохранен оригинал", doc.Name)
	}
	artifact.Name = CompressedName(doc.Stem(), artifact.MIMEType)
	outcome.Artifact = artifact

	outcome.Result = entities.CompressionResult{
		CurrentFile:    doc.Name,
		OriginalSize:   originalSize,
		CompressedSize: artifact.Size(),
		Success:        true,
	}
	outcome.Result.CalculateCompressionRatio()

	uc.logSuccess("%s: %s → %s (попыток: %d)", doc.Name,
		entities.FormatSize(originalSize), entities.FormatSize(artifact.Size()), len(outcome.Attempts))
	return outcome, nil
}

// CompressedName имя сжатого документа с расширением по MIME типу
func CompressedName(stem, mimeType string) string {
	return stem + "_compressed" + extensionFor(mimeType)
}

func extensionFor(mimeType string) string {
	switch mimeType {
	case entities.MIMETypePDF:
		return ".pdf"
	case entities.MIMETypeJPEG:
		return ".jpg"
	case entities.MIMETypePNG:
		return ".png"
	case entities.MIMETypeWebP:
		return ".webp"
	default:
		return ""
	}
}

func ratioOf(size, original int64) float64 {
	if original <= 0 {
		return 1
	}
	return float64(size) / float64(original)
}

func distance(a entities.CompressionAttempt, profile entities.TierProfile) float64 {
	return math.Abs(a.Ratio - profile.TargetRatio)
}
