package tui

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

// HistoryExportName имя файла выгрузки журнала в выходной директории
const HistoryExportName = "history.xlsx"

// createHistoryScreen создает таблицу журнала операций
func (m *Manager) createHistoryScreen() {
	m.historyTable = tview.NewTable().
		SetBorders(false).
		SetSelectable(true, false).
		SetFixed(1, 0)

	m.historyTable.SetBorder(true).
		SetTitle("🕘 История операций (C - очистить, E - выгрузить в XLSX, ESC - меню)").
		SetTitleAlign(tview.AlignCenter)

	m.historyTable.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Rune() {
		case 'c', 'C':
			m.clearHistory()
			return nil
		case 'e', 'E':
			m.exportHistory()
			return nil
		}
		return event
	})
}

// refreshHistory перечитывает журнал в таблицу
func (m *Manager) refreshHistory() {
	m.historyTable.Clear()

	headers := []string{"Время", "Операция", "Файл"}
	for col, h := range headers {
		m.historyTable.SetCell(0, col, tview.NewTableCell(h).
			SetTextColor(tcell.ColorYellow).
			SetSelectable(false).
			SetExpansion(1))
	}

	if m.history == nil || !m.history.Enabled() {
		m.historyTable.SetCell(1, 0, tview.NewTableCell("История отключена в конфигурации").SetSelectable(false))
		return
	}

	entries, err := m.history.Recent(context.Background())
	if err != nil {
		m.setStatus(fmt.Sprintf("[red]✗ Ошибка чтения истории: %v[white]", err))
		return
	}
	if len(entries) == 0 {
		m.historyTable.SetCell(1, 0, tview.NewTableCell("Операций пока не было").SetSelectable(false))
		return
	}

	for i, entry := range entries {
		row := i + 1
		m.historyTable.SetCell(row, 0, tview.NewTableCell(entry.Timestamp.Local().Format("02.01.2006 15:04:05")))
		m.historyTable.SetCell(row, 1, tview.NewTableCell(entry.Operation.Label()))
		m.historyTable.SetCell(row, 2, tview.NewTableCell(tview.Escape(entry.Filename)))
	}
	m.historyTable.Select(1, 0)
}

func (m *Manager) clearHistory() {
	if m.history == nil {
		return
	}
	if err := m.history.Clear(context.Background()); err != nil {
		m.setStatus(fmt.Sprintf("[red]✗ %v[white]", err))
		return
	}
	m.setStatus("[green]✓ История очищена[white]")
	m.refreshHistory()
}

func (m *Manager) exportHistory() {
	if m.history == nil || !m.history.Enabled() {
		return
	}
	cfg := m.GetConfig()
	path := filepath.Join(cfg.Workspace.OutputDirectory, HistoryExportName)

	if err := m.history.Export(context.Background(), path); err != nil {
		m.setStatus(fmt.Sprintf("[red]✗ Ошибка выгрузки истории: %v[white]", err))
		return
	}
	m.setStatus(fmt.Sprintf("[green]✓ История выгружена: %s[white]", path))
}
