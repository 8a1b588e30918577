package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
	"vatreport/pkg/models"
)

const xlsxSheet = "Report"

// XLSXWriter writes an Excel workbook with a single "Report" sheet.
// All cells are written as text so amounts keep their exact decimal form.
type XLSXWriter struct{}

func (XLSXWriter) Extension() string { return "xlsx" }

func (XLSXWriter) Write(w io.Writer, records []models.AccountingRecord) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", xlsxSheet); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	if err := setRow(f, 1, models.RecordHeaders); err != nil {
		return err
	}
	for i := range records {
		if err := setRow(f, i+2, records[i].Values()); err != nil {
			return err
		}
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err == nil {
		lastCol, _ := excelize.ColumnNumberToName(len(models.RecordHeaders))
		_ = f.SetCellStyle(xlsxSheet, "A1", lastCol+"1", bold)
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func setRow(f *excelize.File, row int, values []string) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	cells := make([]interface{}, len(values))
	for i, v := range values {
		cells[i] = v
	}
	if err := f.SetSheetRow(xlsxSheet, cell, &cells); err != nil {
		return fmt.Errorf("failed to write row %d: %w", row, err)
	}
	return nil
}
