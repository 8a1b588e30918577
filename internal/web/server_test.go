package web

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"vatreport/internal/printful"
	"vatreport/internal/report"
	"vatreport/pkg/models"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeGenerator struct {
	window models.Window
	result *report.Result
	err    error
}

func (g *fakeGenerator) Generate(_ context.Context, w models.Window) (*report.Result, error) {
	g.window = w
	return g.result, g.err
}

func serve(t *testing.T, h *Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	NewRouter(h).ServeHTTP(rec, req)
	return rec
}

func TestWelcome(t *testing.T) {
	rec := serve(t, NewHandler(&fakeGenerator{}, time.UTC, ""), "/")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, `action="/getPrintfulOrders"`) {
		t.Error("form missing from welcome page")
	}
	if strings.Contains(body, "Report generated") {
		t.Error("empty form should not show a report")
	}
	if rec.Header().Get(requestIDHeader) == "" {
		t.Error("missing request ID header")
	}
}

func TestGetPrintfulOrders(t *testing.T) {
	gen := &fakeGenerator{result: &report.Result{FileName: "report_42.csv", Records: 7}}
	h := NewHandler(gen, time.UTC, "")

	rec := serve(t, h, "/getPrintfulOrders?startDate=2024-01-01&endDate=2024-01-31")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "report_42.csv") {
		t.Error("confirmation does not name the report file")
	}
	wantStart := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	wantEnd := time.Date(2024, 1, 31, 23, 59, 59, 999999999, time.UTC)
	if !gen.window.Start.Equal(wantStart) || !gen.window.End.Equal(wantEnd) {
		t.Errorf("window = %v..%v", gen.window.Start, gen.window.End)
	}
}

func TestGetPrintfulOrdersDefaults(t *testing.T) {
	gen := &fakeGenerator{result: &report.Result{FileName: "report_1.csv"}}
	h := NewHandler(gen, time.UTC, "")
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	h.now = func() time.Time { return now }

	rec := serve(t, h, "/getPrintfulOrders")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !gen.window.Start.IsZero() || !gen.window.End.Equal(now) {
		t.Errorf("window = %v..%v, want epoch..now", gen.window.Start, gen.window.End)
	}
}

func TestGetPrintfulOrdersErrors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		query      string
		wantStatus int
		wantBody   string
	}{
		{
			name:       "fetch failed",
			err:        fmt.Errorf("Generate: Collect: %w", &printful.FetchFailedError{StatusCode: 401}),
			wantStatus: http.StatusInternalServerError,
			wantBody:   "An error occurred: failed to retrieve orders. Error Code: 401",
		},
		{
			name:       "invalid response",
			err:        printful.NewAPIError("ListOrders", printful.ErrInvalidResponse, "missing paging"),
			wantStatus: http.StatusInternalServerError,
			wantBody:   "An error occurred: invalid response from API",
		},
		{
			name:       "bad date",
			query:      "?startDate=someday",
			wantStatus: http.StatusBadRequest,
			wantBody:   "An error occurred: ",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(&fakeGenerator{err: tt.err}, time.UTC, "")
			rec := serve(t, h, "/getPrintfulOrders"+tt.query)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if !strings.HasPrefix(rec.Body.String(), tt.wantBody) {
				t.Errorf("body = %q, want prefix %q", rec.Body.String(), tt.wantBody)
			}
		})
	}
}

func TestReportDownload(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "report_1.csv"), []byte("a,b\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	rec := serve(t, NewHandler(&fakeGenerator{}, time.UTC, dir), "/reports/report_1.csv")

	if rec.Code != http.StatusOK || rec.Body.String() != "a,b\n" {
		t.Errorf("status = %d body = %q", rec.Code, rec.Body.String())
	}
}

func TestHealth(t *testing.T) {
	rec := serve(t, NewHandler(&fakeGenerator{}, time.UTC, ""), "/health")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "OK") {
		t.Errorf("status = %d body = %q", rec.Code, rec.Body.String())
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- Run(ctx, "127.0.0.1:0", http.NotFoundHandler())
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
