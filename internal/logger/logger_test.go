package logger

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestSetupJSONFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vatreport.log")
	t.Cleanup(func() { _ = Setup(DefaultConfig()) })

	err := Setup(LogConfig{Level: "debug", Format: "json", TimeFormat: "2006-01-02", Output: path})
	if err != nil {
		t.Fatalf("Setup: %v", err)
	}
	if zerolog.GlobalLevel() != zerolog.DebugLevel {
		t.Errorf("level = %v, want debug", zerolog.GlobalLevel())
	}

	reportLog := WithComponent("report")
	reportLog.Debug().Str("file", "report_1.csv").Msg("written")
	reqLog := WithRequestID("req-1")
	reqLog.Info().Msg("handled")

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d log lines, want 2:\n%s", len(lines), data)
	}

	var first, second map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &first); err != nil {
		t.Fatal(err)
	}
	if err := json.Unmarshal([]byte(lines[1]), &second); err != nil {
		t.Fatal(err)
	}
	if first["component"] != "report" || first["file"] != "report_1.csv" {
		t.Errorf("first line = %v", first)
	}
	if second["request_id"] != "req-1" {
		t.Errorf("second line = %v", second)
	}
}

func TestSetupRejectsUnknownLevel(t *testing.T) {
	if err := Setup(LogConfig{Level: "loud"}); err == nil {
		t.Fatal("expected error for unknown level")
	}
}
