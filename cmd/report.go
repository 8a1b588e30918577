package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"vatreport/internal/config"
	"vatreport/internal/export"
	"vatreport/internal/logger"
	"vatreport/internal/printful"
	"vatreport/internal/report"
	"vatreport/internal/sheets"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Generate a VAT report for Printful orders in a date range",
	Long: `Fetch every Printful order created inside the date range and write one
report row per order to a new file in the reports directory.

Dates accept 2006-01-02, 02.01.2006 or a full RFC 3339 timestamp. A start
date defaults to the beginning of time, an end date to now. An end given as
a calendar date includes that whole day in REPORT_TIMEZONE.

If fetching fails no file is written.

Required environment variables:
  PRINTFUL_API_KEY - Printful API bearer token

Optional environment variables:
  REPORTS_DIR, REPORT_FORMAT, REPORT_TIMEZONE, EU_COUNTRIES
  GOOGLE_SHEET_URL, GOOGLE_SHEET_WORKSHEET - mirror records into a Google Sheet
  GOOGLE_APPLICATION_CREDENTIALS or GOOGLE_CREDENTIALS - Sheets service account`,
	Example: `  # Report for January 2024
  vatreport report --start-date 2024-01-01 --end-date 2024-01-31

  # Everything up to now, as Excel workbook
  vatreport report --format xlsx

  # JSON summary for scripts
  vatreport report --start-date 01.03.2024 --json`,
	Args: cobra.NoArgs,
	RunE: runReport,
}

func init() {
	rootCmd.AddCommand(reportCmd)

	reportCmd.Flags().String("start-date", "", "First day of the report (default: all orders)")
	reportCmd.Flags().String("end-date", "", "Last day of the report (default: now)")
	reportCmd.Flags().StringP("format", "f", "", "Report format: csv or xlsx (default: REPORT_FORMAT)")
	reportCmd.Flags().StringP("output-dir", "o", "", "Reports directory (default: REPORTS_DIR)")
	reportCmd.Flags().String("sheet", "", "Google Sheet URL to mirror records into (default: GOOGLE_SHEET_URL)")
	reportCmd.Flags().Bool("json", false, "Print the result as JSON")
}

func runReport(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("report-cmd")

	startDate, _ := cmd.Flags().GetString("start-date")
	endDate, _ := cmd.Flags().GetString("end-date")
	format, _ := cmd.Flags().GetString("format")
	outputDir, _ := cmd.Flags().GetString("output-dir")
	sheetURL, _ := cmd.Flags().GetString("sheet")
	jsonOutput, _ := cmd.Flags().GetBool("json")

	cfg, err := config.Load()
	if err != nil {
		return handleReportError(err, log)
	}
	if format != "" {
		cfg.ReportFormat = strings.ToLower(format)
	}
	if outputDir != "" {
		cfg.ReportsDir = outputDir
	}
	if sheetURL != "" {
		cfg.GoogleSheetURL = sheetURL
	}

	window, err := report.ParseWindow(startDate, endDate, cfg.ReportTimezone, time.Now())
	if err != nil {
		return handleReportError(err, log)
	}

	ctx, cancel := createReportContext(log)
	defer cancel()

	service, err := buildReportService(ctx, cfg, log)
	if err != nil {
		return handleReportError(err, log)
	}

	result, err := service.Generate(ctx, window)
	if err != nil {
		return handleReportError(err, log)
	}

	if jsonOutput {
		return outputReportJSON(result)
	}
	outputReportConsole(result)
	return nil
}

// buildReportService wires the Printful client, transformer, writer and
// optional Sheets publisher from cfg.
func buildReportService(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*report.Service, error) {
	client, err := printful.NewClient(printful.ClientConfig{
		BaseURL: cfg.PrintfulAPIURL,
		APIKey:  cfg.PrintfulAPIKey,
		Timeout: cfg.PrintfulHTTPTimeout,
	})
	if err != nil {
		return nil, err
	}

	writer, err := export.ForFormat(cfg.ReportFormat)
	if err != nil {
		return nil, err
	}

	var publisher report.Publisher
	if cfg.GoogleSheetURL != "" {
		sheetsService, err := sheets.NewSheetsService(ctx, cfg.GoogleSheetURL, cfg.GoogleSheetWorksheet)
		if err != nil {
			return nil, err
		}
		log.Info().
			Str("worksheet", cfg.GoogleSheetWorksheet).
			Msg("Google Sheets export enabled")
		publisher = sheetsService
	}

	return report.NewService(
		printful.NewFetcher(client, cfg.PrintfulPageDelay),
		report.NewTransformer(cfg.EUCountries),
		report.ServiceConfig{
			ReportsDir: cfg.ReportsDir,
			Writer:     writer,
			Publisher:  publisher,
		},
	), nil
}

// createReportContext returns a context canceled on SIGINT or SIGTERM
func createReportContext(log zerolog.Logger) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		defer signal.Stop(sigChan)
		select {
		case sig := <-sigChan:
			log.Info().
				Str("signal", sig.String()).
				Msg("Received interrupt signal, canceling")
			cancel()
		case <-ctx.Done():
		}
	}()

	return ctx, cancel
}

// handleReportError provides user-friendly error messages for report failures
func handleReportError(err error, log zerolog.Logger) error {
	log.Error().Err(err).Msg("Report generation failed")

	var fetchErr *printful.FetchFailedError
	switch {
	case errors.Is(err, printful.ErrMissingAPIKey), strings.Contains(err.Error(), "PRINTFUL_API_KEY"):
		return fmt.Errorf("Printful API key not configured. Please set PRINTFUL_API_KEY environment variable")
	case errors.As(err, &fetchErr):
		if fetchErr.StatusCode == http.StatusUnauthorized || fetchErr.StatusCode == http.StatusForbidden {
			return fmt.Errorf("%s. Please check your PRINTFUL_API_KEY", fetchErr.Error())
		}
		return fmt.Errorf("%s, no report written", fetchErr.Error())
	case errors.Is(err, printful.ErrInvalidResponse):
		return fmt.Errorf("Printful returned an unexpected response, no report written")
	case errors.Is(err, report.ErrInvalidDate):
		return fmt.Errorf("invalid date: use YYYY-MM-DD or DD.MM.YYYY")
	case errors.Is(err, context.Canceled):
		return fmt.Errorf("report generation canceled, no report written")
	default:
		return fmt.Errorf("report generation failed: %w", err)
	}
}

// outputReportJSON prints the result as JSON
func outputReportJSON(result *report.Result) error {
	jsonData, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to create JSON output: %w", err)
	}

	fmt.Println(string(jsonData))
	return nil
}

// outputReportConsole prints a short summary of the generated report
func outputReportConsole(result *report.Result) {
	fmt.Println(strings.Repeat("=", 60))
	fmt.Println("                    VAT REPORT")
	fmt.Println(strings.Repeat("=", 60))

	start := "beginning"
	if !result.Start.IsZero() {
		start = result.Start.Format("2006-01-02")
	}
	fmt.Printf("Period:   %s to %s\n", start, result.End.Format("2006-01-02"))
	fmt.Printf("Orders:   %d\n", result.Records)
	fmt.Printf("File:     %s\n", result.Path)
	if result.Published {
		fmt.Println("Sheet:    records appended to Google Sheet")
	}
	fmt.Printf("Duration: %s\n", result.Duration.Round(time.Millisecond))
}
