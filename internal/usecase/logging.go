package usecases

import "doctools/internal/domain/repositories"

// logSink методы логирования с проверкой на nil
type logSink struct {
	logger repositories.Logger
}

func (s logSink) logDebug(format string, args ...interface{}) {
	if s.logger != nil {
		s.logger.Debug(format, args...)
	}
}

func (s logSink) logInfo(format string, args ...interface{}) {
	if s.logger != nil {
		s.logger.Info(format, args...)
	}
}

func (s logSink) logSuccess(format string, args ...interface{}) {
	if s.logger != nil {
		s.logger.Success(format, args...)
	}
}

func (s logSink) logWarning(format string, args ...interface{}) {
	if s.logger != nil {
		s.logger.Warning(format, args...)
	}
}

func (s logSink) logError(format string, args ...interface{}) {
	if s.logger != nil {
		s.logger.Error(format, args...)
	}
}
