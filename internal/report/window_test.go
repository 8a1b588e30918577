package report

import (
	"errors"
	"testing"
	"time"
)

func TestParseWindow(t *testing.T) {
	now := time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC)
	berlin, err := time.LoadLocation("Europe/Berlin")
	if err != nil {
		t.Skipf("tzdata unavailable: %v", err)
	}

	tests := []struct {
		name       string
		start, end string
		loc        *time.Location
		wantStart  time.Time
		wantEnd    time.Time
	}{
		{
			name:    "defaults",
			loc:     time.UTC,
			wantEnd: now,
		},
		{
			name:      "iso dates",
			start:     "2024-01-01",
			end:       "2024-01-31",
			loc:       time.UTC,
			wantStart: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			wantEnd:   time.Date(2024, 1, 31, 23, 59, 59, 999999999, time.UTC),
		},
		{
			name:      "german dates",
			start:     "01.02.2024",
			end:       "29.02.2024",
			loc:       time.UTC,
			wantStart: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
			wantEnd:   time.Date(2024, 2, 29, 23, 59, 59, 999999999, time.UTC),
		},
		{
			name:      "end instant kept",
			start:     "March 1, 2024",
			end:       "2024-03-02T12:00:00Z",
			loc:       time.UTC,
			wantStart: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
			wantEnd:   time.Date(2024, 3, 2, 12, 0, 0, 0, time.UTC),
		},
		{
			name:      "local zone",
			start:     "2024-04-01",
			end:       "2024-04-01",
			loc:       berlin,
			wantStart: time.Date(2024, 4, 1, 0, 0, 0, 0, berlin),
			wantEnd:   time.Date(2024, 4, 1, 23, 59, 59, 999999999, berlin),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, err := ParseWindow(tt.start, tt.end, tt.loc, now)
			if err != nil {
				t.Fatalf("ParseWindow: %v", err)
			}
			if !w.Start.Equal(tt.wantStart) {
				t.Errorf("Start = %v, want %v", w.Start, tt.wantStart)
			}
			if !w.End.Equal(tt.wantEnd) {
				t.Errorf("End = %v, want %v", w.End, tt.wantEnd)
			}
		})
	}
}

func TestParseWindowInvalid(t *testing.T) {
	_, err := ParseWindow("yesterday", "", time.UTC, time.Now())
	if !errors.Is(err, ErrInvalidDate) {
		t.Fatalf("err = %v, want ErrInvalidDate", err)
	}
}

func TestWindowBounds(t *testing.T) {
	w, err := ParseWindow("2024-01-01", "2024-01-01", time.UTC, time.Now())
	if err != nil {
		t.Fatal(err)
	}
	first := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC).Unix()
	last := time.Date(2024, 1, 1, 23, 59, 59, 0, time.UTC).Unix()

	if !w.Contains(first) || !w.Contains(last) {
		t.Error("window should include both ends of the day")
	}
	if w.Contains(first-1) || !w.Precedes(first-1) {
		t.Error("second before start should precede the window")
	}
	if w.Contains(last + 1) {
		t.Error("next day should be outside the window")
	}

	inverted, _ := ParseWindow("2024-02-01", "2024-01-01", time.UTC, time.Now())
	if !inverted.IsEmpty() {
		t.Error("start after end should be empty")
	}
}
