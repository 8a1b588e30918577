package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"vatreport/internal/logger"
)

// DefaultEUCountries lists EU member states by ISO 3166 alpha-2 code.
// Greece appears as both EL (EU VAT usage) and GR.
var DefaultEUCountries = []string{
	"AT", "BE", "BG", "HR", "CY", "CZ", "DK", "EE", "FI", "FR", "DE", "EL", "GR", "HU",
	"IE", "IT", "LV", "LT", "LU", "MT", "NL", "PL", "PT", "RO", "SK", "SI", "ES", "SE",
}

type Config struct {
	// Printful API Configuration
	PrintfulAPIKey      string
	PrintfulAPIURL      string
	PrintfulPageDelay   time.Duration
	PrintfulHTTPTimeout time.Duration

	// Web Form Configuration
	Port int

	// Report Configuration
	ReportsDir     string
	ReportFormat   string
	ReportTimezone *time.Location
	EUCountries    []string

	// Optional: Google Sheets Export
	GoogleSheetURL       string
	GoogleSheetWorksheet string

	// Logging Configuration
	LogLevel      string
	LogFormat     string
	LogTimeFormat string
	LogOutput     string
}

func Load() (*Config, error) {
	config := &Config{
		PrintfulAPIKey:       getEnv("PRINTFUL_API_KEY", ""),
		PrintfulAPIURL:       getEnv("PRINTFUL_API_URL", "https://api.printful.com"),
		ReportsDir:           getEnv("REPORTS_DIR", "./Accounting_Reports"),
		ReportFormat:         strings.ToLower(getEnv("REPORT_FORMAT", "csv")),
		EUCountries:          getEnvList("EU_COUNTRIES", DefaultEUCountries),
		GoogleSheetURL:       getEnv("GOOGLE_SHEET_URL", ""),
		GoogleSheetWorksheet: getEnv("GOOGLE_SHEET_WORKSHEET", "VAT_Report"),
		LogLevel:             getEnv("LOG_LEVEL", "info"),
		LogFormat:            getEnv("LOG_FORMAT", "console"),
		LogTimeFormat:        getEnv("LOG_TIME_FORMAT", "2006-01-02T15:04:05Z07:00"),
		LogOutput:            getEnv("LOG_OUTPUT", "stdout"),
	}

	var err error
	if config.PrintfulPageDelay, err = time.ParseDuration(getEnv("PRINTFUL_PAGE_DELAY", "100ms")); err != nil {
		return nil, fmt.Errorf("invalid PRINTFUL_PAGE_DELAY: %w", err)
	}
	if config.PrintfulHTTPTimeout, err = time.ParseDuration(getEnv("PRINTFUL_HTTP_TIMEOUT", "30s")); err != nil {
		return nil, fmt.Errorf("invalid PRINTFUL_HTTP_TIMEOUT: %w", err)
	}
	if config.Port, err = strconv.Atoi(getEnv("PORT", "3003")); err != nil {
		return nil, fmt.Errorf("invalid PORT: %w", err)
	}
	if config.ReportTimezone, err = time.LoadLocation(getEnv("REPORT_TIMEZONE", "UTC")); err != nil {
		return nil, fmt.Errorf("invalid REPORT_TIMEZONE: %w", err)
	}

	if err := config.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return config, nil
}

func (c *Config) validate() error {
	if c.PrintfulAPIKey == "" {
		return fmt.Errorf("PRINTFUL_API_KEY is required")
	}
	if c.ReportFormat != "csv" && c.ReportFormat != "xlsx" {
		return fmt.Errorf("REPORT_FORMAT must be csv or xlsx, got %q", c.ReportFormat)
	}
	if c.PrintfulPageDelay < 0 {
		return fmt.Errorf("PRINTFUL_PAGE_DELAY must not be negative")
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("PORT out of range: %d", c.Port)
	}
	return nil
}

// GetLoggerConfig returns a logger configuration from the main config
func (c *Config) GetLoggerConfig() logger.LogConfig {
	return logger.LogConfig{
		Level:      c.LogLevel,
		Format:     c.LogFormat,
		TimeFormat: c.LogTimeFormat,
		Output:     c.LogOutput,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var list []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.ToUpper(strings.TrimSpace(part)); part != "" {
			list = append(list, part)
		}
	}
	return list
}
