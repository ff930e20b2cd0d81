package history

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"doctools/internal/domain/entities"
)

const sheetName = "История"

// XLSXExporter выгружает журнал операций в книгу Excel
type XLSXExporter struct{}

// NewXLSXExporter создает экспортер журнала
func NewXLSXExporter() *XLSXExporter {
	return &XLSXExporter{}
}

// Export записывает журнал в w в формате XLSX
func (e *XLSXExporter) Export(entries []entities.HistoryEntry, w io.Writer) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return err
	}

	headers := []string{"Время (UTC)", "Операция", "Файл", "Идентификатор"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheetName, cell, h)
	}

	for i, entry := range entries {
		row := i + 2
		write := func(col int, v any) {
			cell, _ := excelize.CoordinatesToCellName(col, row)
			_ = f.SetCellValue(sheetName, cell, v)
		}
		write(1, entry.Timestamp.Format("2006-01-02 15:04:05"))
		write(2, entry.Operation.Label())
		write(3, entry.Filename)
		write(4, entry.ID.String())
	}

	_ = f.SetColWidth(sheetName, "A", "A", 20)
	_ = f.SetColWidth(sheetName, "B", "B", 24)
	_ = f.SetColWidth(sheetName, "C", "C", 48)
	_ = f.SetColWidth(sheetName, "D", "D", 38)

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("ошибка записи XLSX: %w", err)
	}
	return nil
}
