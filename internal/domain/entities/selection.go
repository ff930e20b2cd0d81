package entities

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// PageSelection множество выбранных страниц (нумерация с 1)
type PageSelection struct {
	pages map[int]struct{}
}

// NewPageSelection создает выбор из перечисленных страниц, дубликаты схлопываются
func NewPageSelection(pages ...int) PageSelection {
	sel := PageSelection{pages: make(map[int]struct{}, len(pages))}
	for _, p := range pages {
		sel.pages[p] = struct{}{}
	}
	return sel
}

// AllPages выбирает страницы 1..n
func AllPages(n int) PageSelection {
	sel := PageSelection{pages: make(map[int]struct{}, n)}
	for p := 1; p <= n; p++ {
		sel.pages[p] = struct{}{}
	}
	return sel
}

// Диапазон длиннее считается опечаткой
const maxRangeSpan = 100000

// ParsePageSelection разбирает строку вида "1,3,5-7"
func ParsePageSelection(input string) (PageSelection, error) {
	sel := NewPageSelection()
	input = strings.TrimSpace(input)
	if input == "" {
		return sel, nil
	}

	for _, part := range strings.Split(input, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		from, to, isRange := strings.Cut(part, "-")
		start, err := strconv.Atoi(strings.TrimSpace(from))
		if err != nil {
			return PageSelection{}, fmt.Errorf("%w: %q", ErrInvalidPageSelection, part)
		}
		end := start
		if isRange {
			end, err = strconv.Atoi(strings.TrimSpace(to))
			if err != nil || end < start || end-start >= maxRangeSpan {
				return PageSelection{}, fmt.Errorf("%w: %q", ErrInvalidPageSelection, part)
			}
		}
		for p := start; p <= end; p++ {
			sel.pages[p] = struct{}{}
		}
	}

	return sel, nil
}

// Len количество выбранных страниц
func (s PageSelection) Len() int {
	return len(s.pages)
}

// IsEmpty сообщает, что ничего не выбрано
func (s PageSelection) IsEmpty() bool {
	return len(s.pages) == 0
}

// Contains проверяет, выбрана ли страница
func (s PageSelection) Contains(page int) bool {
	_, ok := s.pages[page]
	return ok
}

// Pages возвращает страницы по возрастанию
func (s PageSelection) Pages() []int {
	pages := make([]int, 0, len(s.pages))
	for p := range s.pages {
		pages = append(pages, p)
	}
	sort.Ints(pages)
	return pages
}

// FirstOutOfRange возвращает первую (наименьшую) страницу вне [1, pageCount]
func (s PageSelection) FirstOutOfRange(pageCount int) (int, bool) {
	for _, p := range s.Pages() {
		if p < 1 || p > pageCount {
			return p, true
		}
	}
	return 0, false
}

// Strings возвращает номера страниц строками для PDF движка
func (s PageSelection) Strings() []string {
	pages := s.Pages()
	out := make([]string, len(pages))
	for i, p := range pages {
		out[i] = strconv.Itoa(p)
	}
	return out
}

func (s PageSelection) String() string {
	return strings.Join(s.Strings(), ",")
}
