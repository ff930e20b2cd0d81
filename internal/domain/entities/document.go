package entities

import (
	"mime"
	"path/filepath"
	"strings"
)

// MIME типы, с которыми работают инструменты
const (
	MIMETypePDF  = "application/pdf"
	MIMETypeJPEG = "image/jpeg"
	MIMETypePNG  = "image/png"
	MIMETypeWebP = "image/webp"
)

// DocumentKind тип загруженного документа
type DocumentKind int

const (
	KindUnknown DocumentKind = iota
	KindPDF
	KindImage
)

func (k DocumentKind) String() string {
	switch k {
	case KindPDF:
		return "PDF"
	case KindImage:
		return "Изображение"
	default:
		return "Неизвестно"
	}
}

// Upload исходный файл, выбранный пользователем
type Upload struct {
	Name     string
	MIMEType string
	Size     int64 // заявленный размер; 0 - взять len(Data)
	Data     []byte
}

// DeclaredSize возвращает размер, по которому проверяется лимит
func (u *Upload) DeclaredSize() int64 {
	if u.Size > 0 {
		return u.Size
	}
	return int64(len(u.Data))
}

// ContentType возвращает заявленный MIME тип либо тип по расширению
func (u *Upload) ContentType() string {
	if u.MIMEType != "" {
		return normalizeMIME(u.MIMEType)
	}
	return MIMETypeByName(u.Name)
}

// MIMETypeByName определяет MIME тип по расширению файла
func MIMETypeByName(name string) string {
	ext := strings.ToLower(filepath.Ext(name))
	switch ext {
	case ".pdf":
		return MIMETypePDF
	case ".jpg", ".jpeg":
		return MIMETypeJPEG
	case ".png":
		return MIMETypePNG
	case ".webp":
		return MIMETypeWebP
	}
	return normalizeMIME(mime.TypeByExtension(ext))
}

func normalizeMIME(value string) string {
	mediaType, _, err := mime.ParseMediaType(value)
	if err != nil {
		return strings.ToLower(strings.TrimSpace(value))
	}
	return mediaType
}

// DocumentMetadata структурные сведения о проверенном документе
type DocumentMetadata struct {
	Kind        DocumentKind
	MIMEType    string
	PageCount   int
	SizeBytes   int64
	IsEncrypted bool
	Producer    string
	Version     string
	Width       int
	Height      int
}

// Document документ, прошедший проверку
type Document struct {
	Name string
	Data []byte
	Meta DocumentMetadata
}

// Stem возвращает имя файла без расширения
func (d *Document) Stem() string {
	return FileStem(d.Name)
}

// FileStem возвращает базовое имя файла без расширения
func FileStem(name string) string {
	base := filepath.Base(name)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	if stem == "" || stem == "." || stem == string(filepath.Separator) {
		return "document"
	}
	return stem
}

// ValidationResult результат проверки загруженного файла
type ValidationResult struct {
	Details *DocumentMetadata
	Reason  ErrorKind
	Err     error
}

// IsValid сообщает, допущен ли файл к обработке
func (r ValidationResult) IsValid() bool {
	return r.Reason == ErrorKindNone && r.Details != nil
}

// Error возвращает текст причины отказа
func (r ValidationResult) Error() string {
	if r.Err != nil {
		return r.Err.Error()
	}
	if sentinel := r.Reason.Sentinel(); sentinel != nil {
		return sentinel.Error()
	}
	return ""
}

// OutputArtifact результат операции, готовый к сохранению
type OutputArtifact struct {
	Name       string
	MIMEType   string
	Data       []byte
	PageCount  int
	SourcePage int // 1-based номер исходной страницы для разделения
}

// Size возвращает размер артефакта в байтах
func (a *OutputArtifact) Size() int64 {
	return int64(len(a.Data))
}
