package report

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"vatreport/pkg/models"
)

// ErrInvalidDate is returned when a start or end date cannot be parsed.
var ErrInvalidDate = errors.New("invalid date")

// Calendar-date layouts accepted from the form and the CLI.
var dateLayouts = []string{
	"2006-01-02",
	"02.01.2006",
	"01/02/2006",
	"Jan 2, 2006",
	"January 2, 2006",
	"2 Jan 2006",
	"2 January 2006",
}

// Instant layouts; an end given this way is used as is.
var instantLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
}

// ParseWindow builds a report window from optional date strings. Calendar
// dates are read in loc; an end date covers its whole day. An empty start
// means the unix epoch and an empty end means now.
func ParseWindow(start, end string, loc *time.Location, now time.Time) (models.Window, error) {
	if loc == nil {
		loc = time.UTC
	}
	var w models.Window

	if start = strings.TrimSpace(start); start != "" {
		t, _, err := parseDate(start, loc)
		if err != nil {
			return models.Window{}, fmt.Errorf("start date %q: %w", start, err)
		}
		w.Start = t
	}

	if end = strings.TrimSpace(end); end == "" {
		w.End = now
	} else {
		t, isDate, err := parseDate(end, loc)
		if err != nil {
			return models.Window{}, fmt.Errorf("end date %q: %w", end, err)
		}
		if isDate {
			t = t.AddDate(0, 0, 1).Add(-time.Nanosecond)
		}
		w.End = t
	}

	return w, nil
}

// parseDate reports whether value was a calendar date (true) or an instant.
func parseDate(value string, loc *time.Location) (time.Time, bool, error) {
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, value, loc); err == nil {
			return t, true, nil
		}
	}
	for _, layout := range instantLayouts {
		if t, err := time.ParseInLocation(layout, value, loc); err == nil {
			return t, false, nil
		}
	}
	return time.Time{}, false, ErrInvalidDate
}
