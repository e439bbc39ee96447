package recorder

import (
	"path/filepath"
	"testing"
	"time"
)

func TestSQLiteRecorder_RecordFetch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")
	r, err := NewSQLiteRecorder(path)
	if err != nil {
		t.Fatalf("NewSQLiteRecorder: %v", err)
	}
	defer r.Close()

	evt := &FetchEvent{
		Ticker:   "AAPL",
		Start:    time.Date(2023, time.January, 1, 0, 0, 0, 0, time.UTC),
		End:      time.Date(2023, time.December, 31, 0, 0, 0, 0, time.UTC),
		Strategy: "download",
		Bars:     250,
		Elapsed:  120 * time.Millisecond,
	}
	if err := r.RecordFetch(evt); err != nil {
		t.Fatalf("RecordFetch: %v", err)
	}

	var count int
	if err := r.db.QueryRow(`SELECT COUNT(*) FROM fetch_log WHERE ticker = ?`, "AAPL").Scan(&count); err != nil {
		t.Fatalf("query: %v", err)
	}
	if count != 1 {
		t.Errorf("fetch_log rows = %d, want 1", count)
	}
}

func TestSQLiteRecorder_RecordsFailures(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")
	r, err := NewSQLiteRecorder(path)
	if err != nil {
		t.Fatalf("NewSQLiteRecorder: %v", err)
	}
	defer r.Close()

	evt := &FetchEvent{Ticker: "ZZZQQQINVALID", Strategy: "history", Err: "no data"}
	if err := r.RecordFetch(evt); err != nil {
		t.Fatalf("RecordFetch: %v", err)
	}

	var errText string
	if err := r.db.QueryRow(`SELECT error FROM fetch_log WHERE ticker = ?`, "ZZZQQQINVALID").Scan(&errText); err != nil {
		t.Fatalf("query: %v", err)
	}
	if errText != "no data" {
		t.Errorf("error column = %q, want %q", errText, "no data")
	}
}
