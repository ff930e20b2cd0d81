package entities

import (
	"fmt"
	"math"
	"strings"
)

// QualityTier именованный уровень сжатия
type QualityTier string

const (
	TierLight    QualityTier = "light"
	TierBalanced QualityTier = "balanced"
	TierMaximum  QualityTier = "maximum"
)

// DefaultTolerance допустимое отклонение достигнутого коэффициента от целевого
const DefaultTolerance = 0.1

// TierProfile параметры подбора качества для уровня
type TierProfile struct {
	Tier           QualityTier
	InitialQuality float64 // 0..1
	TargetRatio    float64 // сжатый размер / исходный
	Tolerance      float64
	MaxAttempts    int
	MinQuality     float64
	MaxQuality     float64
	ImageUpperPPI  float64 // для перекодирования изображений внутри PDF
}

var tierProfiles = map[QualityTier]TierProfile{
	TierLight: {
		Tier:           TierLight,
		InitialQuality: 0.8,
		TargetRatio:    0.7,
		Tolerance:      DefaultTolerance,
		MaxAttempts:    3,
		MinQuality:     0.1,
		MaxQuality:     1.0,
		ImageUpperPPI:  200,
	},
	TierBalanced: {
		Tier:           TierBalanced,
		InitialQuality: 0.5,
		TargetRatio:    0.5,
		Tolerance:      DefaultTolerance,
		MaxAttempts:    4,
		MinQuality:     0.1,
		MaxQuality:     1.0,
		ImageUpperPPI:  150,
	},
	TierMaximum: {
		Tier:           TierMaximum,
		InitialQuality: 0.3,
		TargetRatio:    0.3,
		Tolerance:      DefaultTolerance,
		MaxAttempts:    4,
		MinQuality:     0.1,
		MaxQuality:     1.0,
		ImageUpperPPI:  96,
	},
}

// Tiers возвращает уровни в порядке возрастания сжатия
func Tiers() []QualityTier {
	return []QualityTier{TierLight, TierBalanced, TierMaximum}
}

// ParseQualityTier разбирает название уровня
func ParseQualityTier(value string) (QualityTier, error) {
	tier := QualityTier(strings.ToLower(strings.TrimSpace(value)))
	if _, ok := tierProfiles[tier]; !ok {
		return "", fmt.Errorf("%w: %q", ErrInvalidQualityTier, value)
	}
	return tier, nil
}

// Profile возвращает параметры уровня
func (t QualityTier) Profile() (TierProfile, error) {
	profile, ok := tierProfiles[t]
	if !ok {
		return TierProfile{}, fmt.Errorf("%w: %q", ErrInvalidQualityTier, string(t))
	}
	return profile, nil
}

// Label возвращает название уровня для UI
func (t QualityTier) Label() string {
	switch t {
	case TierLight:
		return "Слабое сжатие (высокое качество)"
	case TierBalanced:
		return "Сбалансированное сжатие"
	case TierMaximum:
		return "Максимальное сжатие (низкое качество)"
	default:
		return string(t)
	}
}

// CompressionParams параметры одной попытки кодирования
type CompressionParams struct {
	Attempt int // 1-based
	Quality float64
}

// InitialParams параметры первой попытки
func (p TierProfile) InitialParams() CompressionParams {
	return CompressionParams{Attempt: 1, Quality: p.clamp(p.InitialQuality)}
}

// Converged проверяет попадание коэффициента в целевую полосу
func (p TierProfile) Converged(ratio float64) bool {
	return math.Abs(ratio-p.TargetRatio) <= p.Tolerance
}

// Next вычисляет параметры следующей попытки: quality × (target / achieved),
// ограниченное [MinQuality, MaxQuality]. Исходное значение не изменяется.
func (p TierProfile) Next(current CompressionParams, achievedRatio float64) CompressionParams {
	quality := p.MinQuality
	if achievedRatio > 0 {
		quality = current.Quality * (p.TargetRatio / achievedRatio)
	}
	return CompressionParams{
		Attempt: current.Attempt + 1,
		Quality: p.clamp(quality),
	}
}

func (p TierProfile) clamp(q float64) float64 {
	if q < p.MinQuality {
		return p.MinQuality
	}
	if q > p.MaxQuality {
		return p.MaxQuality
	}
	return q
}

// CompressionAttempt результат одной попытки
type CompressionAttempt struct {
	Params CompressionParams
	Size   int64
	Ratio  float64
}

// CompressionOutcome итог подбора качества
type CompressionOutcome struct {
	Artifact  OutputArtifact
	Tier      QualityTier
	Attempts  []CompressionAttempt
	Best      CompressionAttempt
	Converged bool
	Effective bool // false - возвращен оригинал
	Result    CompressionResult
}
