package recorder

import "time"

// FetchEvent describes one provider fetch and how it was served.
type FetchEvent struct {
	Ticker   string
	Start    time.Time
	End      time.Time
	Strategy string // "cache", "download", "history"
	Bars     int
	Elapsed  time.Duration
	Err      string // empty on success
}

// Recorder persists fetch history for later inspection.
type Recorder interface {
	RecordFetch(evt *FetchEvent) error
	Close() error
}
