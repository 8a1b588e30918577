package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PRINTFUL_API_KEY", "secret")
	t.Setenv("EU_COUNTRIES", "")
	t.Setenv("PORT", "")
	t.Setenv("REPORT_FORMAT", "")
	t.Setenv("PRINTFUL_PAGE_DELAY", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != 3003 {
		t.Errorf("Port = %d, want 3003", cfg.Port)
	}
	if cfg.PrintfulPageDelay != 100*time.Millisecond {
		t.Errorf("PrintfulPageDelay = %v, want 100ms", cfg.PrintfulPageDelay)
	}
	if cfg.ReportFormat != "csv" {
		t.Errorf("ReportFormat = %q, want csv", cfg.ReportFormat)
	}
	if len(cfg.EUCountries) != len(DefaultEUCountries) {
		t.Errorf("EUCountries has %d entries, want %d", len(cfg.EUCountries), len(DefaultEUCountries))
	}
}

func TestLoadMissingAPIKey(t *testing.T) {
	t.Setenv("PRINTFUL_API_KEY", "")

	if _, err := Load(); err == nil {
		t.Fatal("expected error without PRINTFUL_API_KEY")
	}
}

func TestLoadCountryOverride(t *testing.T) {
	t.Setenv("PRINTFUL_API_KEY", "secret")
	t.Setenv("EU_COUNTRIES", " de, fr ,,at")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	want := []string{"DE", "FR", "AT"}
	if len(cfg.EUCountries) != len(want) {
		t.Fatalf("EUCountries = %v, want %v", cfg.EUCountries, want)
	}
	for i := range want {
		if cfg.EUCountries[i] != want[i] {
			t.Errorf("EUCountries[%d] = %q, want %q", i, cfg.EUCountries[i], want[i])
		}
	}
}

func TestLoadRejectsUnknownFormat(t *testing.T) {
	t.Setenv("PRINTFUL_API_KEY", "secret")
	t.Setenv("REPORT_FORMAT", "pdf")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for unsupported REPORT_FORMAT")
	}
}
