package pdfengine

import (
	"bytes"
	"fmt"
	"sync"

	"github.com/unidoc/unipdf/v3/common"
	"github.com/unidoc/unipdf/v3/common/license"
	"github.com/unidoc/unipdf/v3/model"
	"github.com/unidoc/unipdf/v3/model/optimize"

	"doctools/internal/domain/entities"
)

// UniPDFCompressor сжатие PDF с перекодированием изображений средствами UniPDF
type UniPDFCompressor struct {
	licenseKey string
	once       sync.Once
	initErr    error
}

// NewUniPDFCompressor создает новый UniPDF компрессор
func NewUniPDFCompressor(licenseKey string) (*UniPDFCompressor, error) {
	if licenseKey == "" {
		return nil, entities.ErrLicenseRequired
	}
	return &UniPDFCompressor{licenseKey: licenseKey}, nil
}

// Name название движка
func (u *UniPDFCompressor) Name() string {
	return entities.EngineUniPDF
}

func (u *UniPDFCompressor) init() error {
	u.once.Do(func() {
		common.SetLogger(common.NewConsoleLogger(common.LogLevelError))
		if err := license.SetMeteredKey(u.licenseKey); err != nil {
			u.initErr = fmt.Errorf("ошибка активации лицензии UniPDF: %w", err)
		}
	})
	return u.initErr
}

// Compress копирует страницы в новый документ, перекодируя изображения
// с качеством quality (0..1) и ограничением разрешения профиля
func (u *UniPDFCompressor) Compress(data []byte, quality float64, profile entities.TierProfile) ([]byte, error) {
	if err := u.init(); err != nil {
		return nil, err
	}

	pdfReader, err := model.NewPdfReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("ошибка открытия документа: %w", err)
	}

	numPages, err := pdfReader.GetNumPages()
	if err != nil {
		return nil, fmt.Errorf("ошибка получения количества страниц: %w", err)
	}

	pdfWriter := model.NewPdfWriter()
	pdfWriter.SetOptimizer(optimize.New(optimize.Options{
		CombineDuplicateDirectObjects:   true,
		CombineIdenticalIndirectObjects: true,
		CombineDuplicateStreams:         true,
		CompressStreams:                 true,
		UseObjectStreams:                true,
		ImageUpperPPI:                   profile.ImageUpperPPI,
		ImageQuality:                    int(quality*100 + 0.5),
	}))

	for i := 1; i <= numPages; i++ {
		page, err := pdfReader.GetPage(i)
		if err != nil {
			return nil, fmt.Errorf("ошибка получения страницы %d: %w", i, err)
		}
		if err := pdfWriter.AddPage(page); err != nil {
			return nil, fmt.Errorf("ошибка добавления страницы %d: %w", i, err)
		}
	}

	var out bytes.Buffer
	if err := pdfWriter.Write(&out); err != nil {
		return nil, fmt.Errorf("ошибка записи документа: %w", err)
	}
	return out.Bytes(), nil
}
