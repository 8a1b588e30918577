package models

import "time"

// Window is the inclusive creation-time range of a report
type Window struct {
	Start time.Time // Inclusive lower bound; zero time means the unix epoch
	End   time.Time // Inclusive upper bound
}

// Contains reports whether a unix timestamp (seconds) lies inside the window
func (w Window) Contains(unix int64) bool {
	return unix >= w.startUnix() && unix <= w.End.Unix()
}

// Precedes reports whether a unix timestamp is older than the window start
func (w Window) Precedes(unix int64) bool {
	return unix < w.startUnix()
}

// IsEmpty reports whether no timestamp can satisfy the window
func (w Window) IsEmpty() bool {
	return w.startUnix() > w.End.Unix()
}

func (w Window) startUnix() int64 {
	if w.Start.IsZero() {
		return 0
	}
	return w.Start.Unix()
}
