package tui

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rivo/tview"
)

const logBatchSize = 20

// logBatcher копит строки журнала и сбрасывает их в окно пачками
type logBatcher struct {
	in    chan string
	done  chan struct{}
	once  sync.Once
	lines []string
	flush func(text string)
}

func newLogBatcher(flush func(text string)) *logBatcher {
	b := &logBatcher{
		in:    make(chan string, 100),
		done:  make(chan struct{}),
		lines: make([]string, 0, MaxLogBufferSize),
		flush: flush,
	}
	go b.run()
	return b
}

// push добавляет строку без блокировки; при переполнении строка теряется
func (b *logBatcher) push(line string) {
	select {
	case b.in <- line:
	default:
	}
}

func (b *logBatcher) run() {
	ticker := time.NewTicker(LogFlushInterval)
	defer ticker.Stop()

	pending := 0
	for {
		select {
		case line := <-b.in:
			b.lines = append(b.lines, line)
			if pending++; pending >= logBatchSize {
				b.emit()
				pending = 0
			}
		case <-ticker.C:
			if pending > 0 {
				b.emit()
				pending = 0
			}
		case <-b.done:
			if pending > 0 {
				b.emit()
			}
			return
		}
	}
}

func (b *logBatcher) emit() {
	if over := len(b.lines) - MaxLogBufferSize; over > 0 {
		b.lines = append(b.lines[:0], b.lines[over:]...)
	}
	b.flush(strings.Join(b.lines, "\n"))
}

// stop останавливает обработку; повторный вызов безопасен
func (b *logBatcher) stop() {
	b.once.Do(func() { close(b.done) })
}

var levelColors = map[string]string{
	"ERROR":   "red",
	"WARNING": "yellow",
	"SUCCESS": "green",
	"DEBUG":   "gray",
}

// formatLogLine окрашивает уровень и экранирует разметку tview в сообщении
func formatLogLine(level, message string) string {
	level = strings.ToUpper(level)
	color, ok := levelColors[level]
	if !ok {
		color = "white"
	}
	return fmt.Sprintf("[%s]%s:[white] %s", color, level, tview.Escape(message))
}

func escapeError(err error) string {
	return tview.Escape(err.Error())
}
