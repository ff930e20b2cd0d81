package tui

import (
	"strings"

	"doctools/internal/domain/entities"
)

// PageAction действие над страницами PDF
type PageAction string

const (
	ActionRotate  PageAction = "rotate"
	ActionRemove  PageAction = "remove"
	ActionExtract PageAction = "extract"
	ActionNumber  PageAction = "number"
)

// Label название действия для UI
func (a PageAction) Label() string {
	switch a {
	case ActionRotate:
		return "Повернуть"
	case ActionRemove:
		return "Удалить"
	case ActionExtract:
		return "Извлечь в один файл"
	case ActionNumber:
		return "Пронумеровать"
	default:
		return string(a)
	}
}

// PageActions действия в порядке отображения
func PageActions() []PageAction {
	return []PageAction{ActionRotate, ActionRemove, ActionExtract, ActionNumber}
}

// Request запрос пользователя на выполнение операции.
// Все значения формы передаются явно, без общего состояния UI.
type Request struct {
	Operation entities.Operation
	Files     []string

	// Выбор страниц в виде "1,3,5-7"
	Pages string

	Tier entities.QualityTier

	PageAction PageAction
	Degrees    int
	Position   entities.StampPosition

	Resize entities.ResizeRequest
}

// File возвращает первый файл запроса
func (r Request) File() string {
	if len(r.Files) == 0 {
		return ""
	}
	return r.Files[0]
}

// ParseFileList разбирает список путей, разделенных ";" или переводом строки
func ParseFileList(text string) []string {
	fields := strings.FieldsFunc(text, func(r rune) bool {
		return r == ';' || r == '\n'
	})

	files := make([]string, 0, len(fields))
	for _, f := range fields {
		f = strings.Trim(strings.TrimSpace(f), `"'`)
		if f != "" {
			files = append(files, f)
		}
	}
	return files
}
