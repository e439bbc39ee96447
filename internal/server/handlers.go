package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"MarketLens/internal/dashboard"
	"MarketLens/internal/metrics"
	"MarketLens/internal/provider"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleBenchmarks(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, dashboard.Benchmarks())
}

func (s *Server) handleTimeline(w http.ResponseWriter, r *http.Request) {
	start, end, err := dateRange(r)
	if err != nil {
		writeError(w, err)
		return
	}
	req := dashboard.TimelineRequest{
		Ticker: r.URL.Query().Get("ticker"),
		Start:  start,
		End:    end,
	}

	s.mu.Lock()
	result, err := s.svc.Timeline(r.Context(), s.nav, req)
	s.mu.Unlock()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleStatistics(w http.ResponseWriter, r *http.Request) {
	start, end, err := dateRange(r)
	if err != nil {
		writeError(w, err)
		return
	}
	req := dashboard.StatisticsRequest{
		Ticker: r.URL.Query().Get("ticker"),
		Start:  start,
		End:    end,
	}

	s.mu.Lock()
	result, err := s.svc.Statistics(r.Context(), s.nav, req)
	s.mu.Unlock()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleComparison(w http.ResponseWriter, r *http.Request) {
	start, end, err := dateRange(r)
	if err != nil {
		writeError(w, err)
		return
	}
	req := dashboard.ComparisonRequest{Start: start, End: end}
	if raw := r.URL.Query().Get("tickers"); raw != "" {
		req.Tickers = strings.Split(raw, ",")
	}

	s.mu.Lock()
	result, err := s.svc.Comparison(r.Context(), s.nav, req)
	s.mu.Unlock()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleTechnical(w http.ResponseWriter, r *http.Request) {
	start, end, err := dateRange(r)
	if err != nil {
		writeError(w, err)
		return
	}
	req := dashboard.TechnicalRequest{
		Ticker:    r.URL.Query().Get("ticker"),
		Start:     start,
		End:       end,
		Bollinger: true,
	}
	for param, dst := range map[string]*int{
		"short": &req.ShortWindow,
		"long":  &req.LongWindow,
		"rsi":   &req.RSIWindow,
	} {
		if err := intParam(r, param, dst); err != nil {
			writeError(w, err)
			return
		}
	}
	if raw := r.URL.Query().Get("bollinger"); raw != "" {
		b, err := strconv.ParseBool(raw)
		if err != nil {
			writeError(w, &dashboard.InvalidRequestError{Reason: "bollinger must be a boolean"})
			return
		}
		req.Bollinger = b
	}

	s.mu.Lock()
	result, err := s.svc.Technical(r.Context(), s.nav, req)
	s.mu.Unlock()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleExplorer(w http.ResponseWriter, r *http.Request) {
	start, end, err := dateRange(r)
	if err != nil {
		writeError(w, err)
		return
	}
	req := dashboard.ExplorerRequest{
		Symbol:     r.URL.Query().Get("symbol"),
		Start:      start,
		End:        end,
		OverlaySPY: true,
	}
	if raw := r.URL.Query().Get("overlay"); raw != "" {
		b, err := strconv.ParseBool(raw)
		if err != nil {
			writeError(w, &dashboard.InvalidRequestError{Reason: "overlay must be a boolean"})
			return
		}
		req.OverlaySPY = b
	}

	s.mu.Lock()
	result, err := s.svc.Explorer(r.Context(), s.nav, req)
	s.mu.Unlock()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// dateRange parses optional start/end query params in 2006-01-02 form.
func dateRange(r *http.Request) (start, end time.Time, err error) {
	parse := func(name string) (time.Time, error) {
		raw := r.URL.Query().Get(name)
		if raw == "" {
			return time.Time{}, nil
		}
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return time.Time{}, &dashboard.InvalidRequestError{
				Reason: fmt.Sprintf("%s must be a YYYY-MM-DD date", name),
			}
		}
		return t, nil
	}
	if start, err = parse("start"); err != nil {
		return
	}
	end, err = parse("end")
	return
}

func intParam(r *http.Request, name string, dst *int) error {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return &dashboard.InvalidRequestError{Reason: name + " must be an integer"}
	}
	*dst = n
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("[ERROR] encode response: %v", err)
	}
}

// writeError maps domain errors onto HTTP statuses: bad parameters are 400,
// missing data 404, too-short series 422, upstream failures 502.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError

	var invalid *dashboard.InvalidRequestError
	var noData *provider.NoDataError
	var upstream *provider.UpstreamError
	switch {
	case errors.As(err, &invalid):
		status = http.StatusBadRequest
	case errors.As(err, &noData), errors.Is(err, dashboard.ErrNoComparableData):
		status = http.StatusNotFound
	case errors.Is(err, metrics.ErrInsufficientData):
		status = http.StatusUnprocessableEntity
	case errors.As(err, &upstream):
		status = http.StatusBadGateway
	}

	if status == http.StatusInternalServerError {
		log.Printf("[ERROR] request failed: %v", err)
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
