package tui

import (
	"fmt"

	"doctools/internal/domain/repositories"
)

// LogView приемник сообщений журнала на экране
type LogView interface {
	AddLog(level, message string)
}

// UILogger дублирует сообщения в файловый логгер и в окно журнала
type UILogger struct {
	file repositories.Logger
	view LogView
}

// NewUILogger создает UI логгер. Любой из приемников может быть nil.
func NewUILogger(file repositories.Logger, view LogView) *UILogger {
	return &UILogger{file: file, view: view}
}

func (l *UILogger) emit(level string, toFile func(string, ...interface{}), format string, args ...interface{}) {
	if l.file != nil {
		toFile(format, args...)
	}
	if l.view != nil {
		l.view.AddLog(level, fmt.Sprintf(format, args...))
	}
}

func (l *UILogger) Debug(format string, args ...interface{}) {
	l.emit("DEBUG", l.fileMethod(repositories.Logger.Debug), format, args...)
}

func (l *UILogger) Info(format string, args ...interface{}) {
	l.emit("INFO", l.fileMethod(repositories.Logger.Info), format, args...)
}

func (l *UILogger) Warning(format string, args ...interface{}) {
	l.emit("WARNING", l.fileMethod(repositories.Logger.Warning), format, args...)
}

func (l *UILogger) Error(format string, args ...interface{}) {
	l.emit("ERROR", l.fileMethod(repositories.Logger.Error), format, args...)
}

func (l *UILogger) Success(format string, args ...interface{}) {
	l.emit("SUCCESS", l.fileMethod(repositories.Logger.Success), format, args...)
}

// fileMethod привязывает метод интерфейса к файловому логгеру
func (l *UILogger) fileMethod(method func(repositories.Logger, string, ...interface{})) func(string, ...interface{}) {
	return func(format string, args ...interface{}) {
		method(l.file, format, args...)
	}
}

// Close закрывает файловый логгер
func (l *UILogger) Close() error {
	if l.file == nil {
		return nil
	}
	return l.file.Close()
}
