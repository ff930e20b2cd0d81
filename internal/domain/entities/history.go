package entities

import (
	"time"

	"github.com/google/uuid"
)

// DefaultHistoryLimit сколько последних операций хранится в журнале
const DefaultHistoryLimit = 10

// HistoryEntry запись журнала выполненных операций
type HistoryEntry struct {
	ID        uuid.UUID
	Operation Operation
	Filename  string
	Timestamp time.Time
}

// NewHistoryEntry создает запись с новым идентификатором
func NewHistoryEntry(op Operation, filename string, now time.Time) HistoryEntry {
	return HistoryEntry{
		ID:        uuid.New(),
		Operation: op,
		Filename:  filename,
		Timestamp: now.UTC(),
	}
}
