package history

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"doctools/internal/domain/entities"
)

const schema = `
CREATE TABLE IF NOT EXISTS history (
	id        TEXT PRIMARY KEY,
	operation TEXT NOT NULL,
	filename  TEXT NOT NULL,
	created   INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS history_created ON history(created DESC);
`

// SQLiteRepository журнал операций в SQLite
type SQLiteRepository struct {
	db *sql.DB
}

// OpenSQLite открывает (или создает) базу журнала. path ":memory:" дает базу в памяти.
func OpenSQLite(ctx context.Context, path string) (*SQLiteRepository, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("не удалось открыть журнал %s: %w", path, err)
	}
	// одно соединение: база в памяти живет в пределах соединения
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("не удалось создать схему журнала: %w", err)
	}
	return &SQLiteRepository{db: db}, nil
}

// Add добавляет запись
func (r *SQLiteRepository) Add(ctx context.Context, entry entities.HistoryEntry) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO history (id, operation, filename, created) VALUES (?, ?, ?, ?)`,
		entry.ID.String(), string(entry.Operation), entry.Filename, entry.Timestamp.UnixNano(),
	)
	return err
}

// Recent возвращает последние записи, новые первыми
func (r *SQLiteRepository) Recent(ctx context.Context, limit int) ([]entities.HistoryEntry, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, operation, filename, created FROM history ORDER BY created DESC, rowid DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []entities.HistoryEntry
	for rows.Next() {
		var (
			id, op, filename string
			created          int64
		)
		if err := rows.Scan(&id, &op, &filename, &created); err != nil {
			return nil, err
		}
		parsed, err := uuid.Parse(id)
		if err != nil {
			return nil, fmt.Errorf("некорректный идентификатор записи %q: %w", id, err)
		}
		entries = append(entries, entities.HistoryEntry{
			ID:        parsed,
			Operation: entities.Operation(op),
			Filename:  filename,
			Timestamp: time.Unix(0, created).UTC(),
		})
	}
	return entries, rows.Err()
}

// Prune оставляет только keep последних записей
func (r *SQLiteRepository) Prune(ctx context.Context, keep int) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM history WHERE rowid NOT IN (
			SELECT rowid FROM history ORDER BY created DESC, rowid DESC LIMIT ?
		)`,
		keep,
	)
	return err
}

// Clear удаляет все записи
func (r *SQLiteRepository) Clear(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM history`)
	return err
}

// Close закрывает базу
func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}
