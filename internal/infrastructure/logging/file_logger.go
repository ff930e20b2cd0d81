package logging

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"sync"
)

// префикс даты log.LstdFlags и перевод строки
const lineOverhead = 21

var levels = map[string]int{
	"debug":   0,
	"info":    1,
	"warning": 2,
	"error":   3,
}

// FileLogger реализация логгера в файл с ротацией по размеру
type FileLogger struct {
	mu       sync.Mutex
	filename string
	file     *os.File
	logger   *log.Logger
	logLevel string
	maxBytes int64
	written  int64
}

// NewFileLogger создает новый файловый логгер. При logToFile=false возвращает nil.
func NewFileLogger(filename, logLevel string, maxSizeMB int, logToFile bool) (*FileLogger, error) {
	if !logToFile {
		return nil, nil
	}

	l := &FileLogger{
		filename: filename,
		logLevel: strings.ToLower(logLevel),
		maxBytes: int64(maxSizeMB) * 1024 * 1024,
	}
	if err := l.open(); err != nil {
		return nil, err
	}
	return l, nil
}

func (l *FileLogger) open() error {
	file, err := os.OpenFile(l.filename, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		return err
	}
	info, err := file.Stat()
	if err != nil {
		file.Close()
		return err
	}

	l.file = file
	l.written = info.Size()
	l.logger = log.New(file, "", log.LstdFlags)
	return nil
}

// rotate переносит текущий файл в <name>.1 и открывает новый.
// Если перенос не удался, запись продолжается в прежний файл без ротации.
// Если файл не удалось открыть заново, логгер отключается.
func (l *FileLogger) rotate() error {
	closeErr := l.file.Close()
	renameErr := os.Rename(l.filename, l.filename+".1")
	if os.IsNotExist(renameErr) {
		renameErr = nil
	}

	if err := l.open(); err != nil {
		l.file = nil
		l.logger = nil
		return err
	}
	if err := errors.Join(closeErr, renameErr); err != nil {
		l.maxBytes = 0
		l.logger.Printf("[WARNING] Ротация лога отключена: %v", err)
	}
	return nil
}

// Debug логирует отладочное сообщение
func (l *FileLogger) Debug(format string, args ...interface{}) {
	l.writeLog("debug", "DEBUG", format, args...)
}

// Info логирует информационное сообщение
func (l *FileLogger) Info(format string, args ...interface{}) {
	l.writeLog("info", "INFO", format, args...)
}

// Warning логирует предупреждение
func (l *FileLogger) Warning(format string, args ...interface{}) {
	l.writeLog("warning", "WARNING", format, args...)
}

// Error логирует ошибку
func (l *FileLogger) Error(format string, args ...interface{}) {
	l.writeLog("error", "ERROR", format, args...)
}

// Success логирует успешное выполнение
func (l *FileLogger) Success(format string, args ...interface{}) {
	l.writeLog("info", "SUCCESS", format, args...)
}

// Close закрывает логгер
func (l *FileLogger) Close() error {
	if l == nil {
		return nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.file != nil {
		err := l.file.Close()
		l.file = nil
		l.logger = nil
		return err
	}
	return nil
}

func (l *FileLogger) writeLog(level, label, format string, args ...interface{}) {
	if l == nil || !l.shouldLog(level) {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.logger == nil {
		return
	}

	line := fmt.Sprintf("[%s] %s", label, fmt.Sprintf(format, args...))
	size := int64(len(line)) + lineOverhead
	if l.maxBytes > 0 && l.written+size > l.maxBytes {
		if err := l.rotate(); err != nil {
			return
		}
	}

	l.logger.Println(line)
	l.written += size
}

// shouldLog проверяет, нужно ли логировать на данном уровне
func (l *FileLogger) shouldLog(level string) bool {
	currentLevel, ok := levels[l.logLevel]
	if !ok {
		currentLevel = 1 // info по умолчанию
	}

	messageLevel, ok := levels[level]
	if !ok {
		return false
	}

	return messageLevel >= currentLevel
}
