// Package export serializes accounting records into report files.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"vatreport/pkg/models"
)

// Writer serializes a complete record set.
type Writer interface {
	// Extension is the file extension without the dot (e.g., "csv").
	Extension() string

	// Write emits a header row followed by one row per record, in order.
	Write(w io.Writer, records []models.AccountingRecord) error
}

// ForFormat returns the writer for a report format name.
func ForFormat(format string) (Writer, error) {
	switch strings.ToLower(format) {
	case "csv", "":
		return CSVWriter{}, nil
	case "xlsx":
		return XLSXWriter{}, nil
	default:
		return nil, fmt.Errorf("unsupported report format: %s", format)
	}
}

// CSVWriter writes comma separated values with a header line.
type CSVWriter struct{}

func (CSVWriter) Extension() string { return "csv" }

func (CSVWriter) Write(w io.Writer, records []models.AccountingRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(models.RecordHeaders); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for i := range records {
		if err := cw.Write(records[i].Values()); err != nil {
			return fmt.Errorf("failed to write CSV row %d: %w", i+1, err)
		}
	}
	cw.Flush()
	return cw.Error()
}
