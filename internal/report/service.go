// Package report turns Printful orders into VAT accounting reports.
//
// A report run walks the orders inside a date window, derives one
// AccountingRecord per order and writes the complete record set to a new
// file in the reports directory. Nothing is written when fetching fails.
//
// Derived fields:
//   - NET: total - vat - tax, two decimals
//   - VAT_RATE_APPLIED: vat / (total - tax - vat), two decimals, 0 when undefined
//   - DEPARTURE_COUNTRY: the single shipment location, or MIXED-1/2/3 for
//     orders shipped from several facilities, UNKNOWN without shipments
package report

import (
	"context"
	"fmt"
	"iter"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"vatreport/internal/export"
	"vatreport/internal/logger"
	"vatreport/internal/metrics"
	"vatreport/pkg/models"
)

// OrderSource yields the orders created inside a window.
type OrderSource interface {
	Orders(ctx context.Context, w models.Window) iter.Seq2[models.Order, error]
}

// Publisher receives a finished record set after the file is written.
type Publisher interface {
	PublishRecords(ctx context.Context, records []models.AccountingRecord) error
}

// ServiceConfig holds configuration for report generation.
type ServiceConfig struct {
	// ReportsDir is where report files are created. Default: ./Accounting_Reports.
	ReportsDir string

	// Writer serializes the records. Default: CSV.
	Writer export.Writer

	// Publisher optionally receives the records as well (e.g., Google Sheets).
	Publisher Publisher
}

// Result describes one generated report.
type Result struct {
	FileName  string        `json:"file_name"`
	Path      string        `json:"path"`
	Records   int           `json:"records"`
	Start     time.Time     `json:"start"`
	End       time.Time     `json:"end"`
	Published bool          `json:"published"`
	Duration  time.Duration `json:"duration"`
}

// Service generates reports. Each Generate call owns its record set and
// output file, so calls do not share mutable state.
type Service struct {
	source      OrderSource
	transformer *Transformer
	writer      export.Writer
	publisher   Publisher
	reportsDir  string
	now         func() time.Time
	log         zerolog.Logger
}

// NewService creates a report service.
func NewService(source OrderSource, transformer *Transformer, cfg ServiceConfig) *Service {
	if cfg.ReportsDir == "" {
		cfg.ReportsDir = "./Accounting_Reports"
	}
	if cfg.Writer == nil {
		cfg.Writer = export.CSVWriter{}
	}
	return &Service{
		source:      source,
		transformer: transformer,
		writer:      cfg.Writer,
		publisher:   cfg.Publisher,
		reportsDir:  cfg.ReportsDir,
		now:         time.Now,
		log:         logger.WithComponent("report"),
	}
}

// Collect fetches and transforms every order inside w, in fetch order.
func (s *Service) Collect(ctx context.Context, w models.Window) ([]models.AccountingRecord, error) {
	const op = "Collect"

	var records []models.AccountingRecord
	for order, err := range s.source.Orders(ctx, w) {
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		records = append(records, s.transformer.Transform(order))
	}
	return records, nil
}

// Generate collects the window's records and writes them to a new report file.
func (s *Service) Generate(ctx context.Context, w models.Window) (*Result, error) {
	const op = "Generate"
	startTime := s.now()

	s.log.Info().
		Time("start", w.Start).
		Time("end", w.End).
		Str("format", s.writer.Extension()).
		Msg("Starting report generation")

	if w.IsEmpty() {
		s.log.Warn().Msg("Start date is after end date, report will be empty")
	}

	records, err := s.Collect(ctx, w)
	if err != nil {
		metrics.ObserveReport(metrics.ResultError, 0, s.now().Sub(startTime))
		s.log.Error().Err(err).Msg("Report generation failed, no file written")
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	fileName := fmt.Sprintf("report_%d.%s", startTime.UnixNano(), s.writer.Extension())
	path := filepath.Join(s.reportsDir, fileName)
	if err := s.writeFile(path, records); err != nil {
		metrics.ObserveReport(metrics.ResultError, 0, s.now().Sub(startTime))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	result := &Result{
		FileName: fileName,
		Path:     path,
		Records:  len(records),
		Start:    w.Start,
		End:      w.End,
	}

	if s.publisher != nil {
		if err := s.publisher.PublishRecords(ctx, records); err != nil {
			s.log.Warn().Err(err).Str("file", fileName).Msg("Failed to publish records, report file was written")
		} else {
			result.Published = true
		}
	}

	result.Duration = s.now().Sub(startTime)
	metrics.ObserveReport(metrics.ResultSuccess, len(records), result.Duration)

	s.log.Info().
		Str("file", path).
		Int("records", len(records)).
		Dur("duration", result.Duration).
		Msg("Report file written successfully")

	return result, nil
}

// writeFile creates path exclusively and writes records into it. A partial
// file is removed on failure.
func (s *Service) writeFile(path string, records []models.AccountingRecord) (err error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create reports directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("failed to create report file: %w", err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("failed to close report file: %w", closeErr)
		}
		if err != nil {
			_ = os.Remove(path)
		}
	}()

	if err := s.writer.Write(f, records); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}
