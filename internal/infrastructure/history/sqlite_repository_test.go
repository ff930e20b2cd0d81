package history_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"doctools/internal/domain/entities"
	"doctools/internal/infrastructure/history"
)

func openMemory(t *testing.T) *history.SQLiteRepository {
	t.Helper()
	repo, err := history.OpenSQLite(context.Background(), ":memory:")
	if err != nil {
		t.Fatalf("OpenSQLite() error: %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	return repo
}

func seed(t *testing.T, repo *history.SQLiteRepository, n int) []entities.HistoryEntry {
	t.Helper()
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	entries := make([]entities.HistoryEntry, n)
	for i := range entries {
		entries[i] = entities.NewHistoryEntry(entities.OpPDFSplit, "file.pdf", base.Add(time.Duration(i)*time.Minute))
		if err := repo.Add(context.Background(), entries[i]); err != nil {
			t.Fatalf("Add() error: %v", err)
		}
	}
	return entries
}

func TestSQLiteRepository_Recent(t *testing.T) {
	repo := openMemory(t)
	entries := seed(t, repo, 3)

	got, err := repo.Recent(context.Background(), 2)
	if err != nil {
		t.Fatalf("Recent() error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("Expected 2 entries, got %d", len(got))
	}
	if got[0].ID != entries[2].ID || got[1].ID != entries[1].ID {
		t.Errorf("Expected newest first, got %v, %v", got[0].ID, got[1].ID)
	}
	if !got[0].Timestamp.Equal(entries[2].Timestamp) {
		t.Errorf("Timestamp mismatch: %v != %v", got[0].Timestamp, entries[2].Timestamp)
	}
	if got[0].Operation != entities.OpPDFSplit || got[0].Filename != "file.pdf" {
		t.Errorf("Unexpected entry %+v", got[0])
	}
}

func TestSQLiteRepository_Prune(t *testing.T) {
	repo := openMemory(t)
	entries := seed(t, repo, 12)

	if err := repo.Prune(context.Background(), entities.DefaultHistoryLimit); err != nil {
		t.Fatalf("Prune() error: %v", err)
	}

	got, err := repo.Recent(context.Background(), 100)
	if err != nil {
		t.Fatalf("Recent() error: %v", err)
	}
	if len(got) != entities.DefaultHistoryLimit {
		t.Fatalf("Expected %d entries, got %d", entities.DefaultHistoryLimit, len(got))
	}
	if got[len(got)-1].ID != entries[2].ID {
		t.Errorf("Expected oldest kept entry to be #2")
	}
}

func TestSQLiteRepository_Clear(t *testing.T) {
	repo := openMemory(t)
	seed(t, repo, 2)

	if err := repo.Clear(context.Background()); err != nil {
		t.Fatalf("Clear() error: %v", err)
	}
	got, err := repo.Recent(context.Background(), 10)
	if err != nil {
		t.Fatalf("Recent() error: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("Expected empty history, got %d entries", len(got))
	}
}

func TestXLSXExporter_Export(t *testing.T) {
	at := time.Date(2024, 5, 1, 8, 30, 0, 0, time.UTC)
	entries := []entities.HistoryEntry{
		entities.NewHistoryEntry(entities.OpPDFMerge, "a.pdf, b.pdf", at),
	}

	var buf bytes.Buffer
	if err := history.NewXLSXExporter().Export(entries, &buf); err != nil {
		t.Fatalf("Export() error: %v", err)
	}

	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("OpenReader() error: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows("История")
	if err != nil {
		t.Fatalf("GetRows() error: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("Expected header and one row, got %d rows", len(rows))
	}
	want := []string{"2024-05-01 08:30:00", entities.OpPDFMerge.Label(), "a.pdf, b.pdf", entries[0].ID.String()}
	for i, w := range want {
		if rows[1][i] != w {
			t.Errorf("Column %d: expected %q, got %q", i+1, w, rows[1][i])
		}
	}
}
