package provider

import (
	"fmt"
	"time"
)

// NoDataError means neither retrieval strategy produced any usable rows for
// the ticker and range. Callers can skip the ticker and move on.
type NoDataError struct {
	Ticker string
	Start  time.Time
	End    time.Time
}

func (e *NoDataError) Error() string {
	return fmt.Sprintf("no data for %s between %s and %s",
		e.Ticker, e.Start.Format("2006-01-02"), e.End.Format("2006-01-02"))
}

// UpstreamError means the upstream source failed at the transport or parse
// level, as opposed to legitimately having nothing. Failed fetches are not
// cached, so a later call retries upstream.
type UpstreamError struct {
	Ticker string
	Err    error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream failure for %s: %v", e.Ticker, e.Err)
}

func (e *UpstreamError) Unwrap() error { return e.Err }
