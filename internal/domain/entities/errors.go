package entities

import (
	"errors"
	"fmt"
)

// ErrorKind вид ошибки обработки документа
type ErrorKind string

const (
	ErrorKindNone           ErrorKind = ""
	ErrorKindTooLarge       ErrorKind = "TooLarge"
	ErrorKindWrongType      ErrorKind = "WrongType"
	ErrorKindCorrupt        ErrorKind = "Corrupt"
	ErrorKindEncrypted      ErrorKind = "Encrypted"
	ErrorKindPageOutOfRange ErrorKind = "PageOutOfRange"
	ErrorKindMergeFailed    ErrorKind = "MergeFailed"
	ErrorKindSplitFailed    ErrorKind = "SplitFailed"
	ErrorKindEncodeFailed   ErrorKind = "EncodeFailed"
)

// Доменные ошибки
var (
	ErrTooLarge       = errors.New("файл превышает допустимый размер")
	ErrWrongType      = errors.New("неподдерживаемый тип файла")
	ErrCorrupt        = errors.New("файл поврежден или имеет неверную структуру")
	ErrEncrypted      = errors.New("защищенные паролем документы не поддерживаются")
	ErrPageOutOfRange = errors.New("номер страницы вне диапазона документа")
	ErrMergeFailed    = errors.New("ошибка объединения PDF")
	ErrSplitFailed    = errors.New("ошибка разделения PDF")
	ErrEncodeFailed   = errors.New("ошибка перекодирования")

	ErrNotEnoughDocuments   = errors.New("для объединения нужно минимум 2 документа")
	ErrInvalidRotation      = errors.New("угол поворота должен быть кратен 90")
	ErrInvalidDimensions    = errors.New("неверные размеры изображения")
	ErrInvalidQualityTier   = errors.New("неизвестный уровень сжатия")
	ErrInvalidPageSelection = errors.New("неверный формат выбора страниц")
	ErrLicenseRequired      = errors.New("UniPDF требует лицензионный ключ (UNIDOC_LICENSE_API_KEY)")
	ErrInvalidWorkers       = errors.New("количество воркеров должно быть от 1 до 32")
	ErrInvalidLimit         = errors.New("лимит размера файла должен быть больше нуля")
	ErrDirectoryNotFound    = errors.New("директория не найдена")
	ErrNoFilesFound         = errors.New("файлы для обработки не найдены")
)

var kindSentinels = map[ErrorKind]error{
	ErrorKindTooLarge:       ErrTooLarge,
	ErrorKindWrongType:      ErrWrongType,
	ErrorKindCorrupt:        ErrCorrupt,
	ErrorKindEncrypted:      ErrEncrypted,
	ErrorKindPageOutOfRange: ErrPageOutOfRange,
	ErrorKindMergeFailed:    ErrMergeFailed,
	ErrorKindSplitFailed:    ErrSplitFailed,
	ErrorKindEncodeFailed:   ErrEncodeFailed,
}

// Sentinel возвращает базовую ошибку для вида
func (k ErrorKind) Sentinel() error {
	return kindSentinels[k]
}

// DocumentError ошибка обработки конкретного файла
type DocumentError struct {
	Kind  ErrorKind
	File  string
	Page  int // 1-based, 0 если не относится к странице
	Cause error
}

// NewDocumentError создает ошибку обработки документа
func NewDocumentError(kind ErrorKind, file string, cause error) *DocumentError {
	return &DocumentError{Kind: kind, File: file, Cause: cause}
}

// NewPageError создает ошибку, относящуюся к странице
func NewPageError(kind ErrorKind, file string, page int, cause error) *DocumentError {
	return &DocumentError{Kind: kind, File: file, Page: page, Cause: cause}
}

func (e *DocumentError) Error() string {
	msg := string(e.Kind)
	if sentinel := e.Kind.Sentinel(); sentinel != nil {
		msg = sentinel.Error()
	}
	if e.File != "" {
		msg = fmt.Sprintf("%s: %s", e.File, msg)
	}
	if e.Page > 0 {
		msg = fmt.Sprintf("%s (страница %d)", msg, e.Page)
	}
	if e.Cause != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

func (e *DocumentError) Unwrap() error {
	return e.Cause
}

// Is сопоставляет ошибку с сигнальной ошибкой своего вида
func (e *DocumentError) Is(target error) bool {
	return target != nil && target == e.Kind.Sentinel()
}

// KindOf возвращает вид ошибки или ErrorKindNone
func KindOf(err error) ErrorKind {
	var docErr *DocumentError
	if errors.As(err, &docErr) {
		return docErr.Kind
	}
	for kind, sentinel := range kindSentinels {
		if errors.Is(err, sentinel) {
			return kind
		}
	}
	return ErrorKindNone
}
