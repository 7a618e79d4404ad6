package server

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/sunplan/sunplan/pkg/log"
)

func (s *Server) handleHistoryForecasts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	start, end, err := parseTimeRange(r)
	if err != nil {
		writeJSONError(w, "invalid time range: "+err.Error(), http.StatusBadRequest)
		return
	}

	recs, err := s.storage.GetForecastHistory(ctx, start, end)
	if err != nil {
		log.Ctx(ctx).ErrorContext(ctx, "failed to get forecast history", slog.Any("error", err))
		writeJSONError(w, "failed to get forecast history", http.StatusInternalServerError)
		return
	}

	writeJSON(w, recs)
}

func (s *Server) handleHistoryAdvice(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	start, end, err := parseTimeRange(r)
	if err != nil {
		writeJSONError(w, "invalid time range: "+err.Error(), http.StatusBadRequest)
		return
	}

	recs, err := s.storage.GetAdviceHistory(ctx, start, end)
	if err != nil {
		log.Ctx(ctx).ErrorContext(ctx, "failed to get advice history", slog.Any("error", err))
		writeJSONError(w, "failed to get advice history", http.StatusInternalServerError)
		return
	}

	writeJSON(w, recs)
}

func parseTimeRange(r *http.Request) (time.Time, time.Time, error) {
	startStr := r.URL.Query().Get("start")
	endStr := r.URL.Query().Get("end")

	// either bound may be omitted: end defaults to now, start to 24 hours
	// before end
	end := time.Now()
	if endStr != "" {
		var err error
		end, err = time.Parse(time.RFC3339, endStr)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid end time: %w", err)
		}
	}

	start := end.Add(-24 * time.Hour)
	if startStr != "" {
		var err error
		start, err = time.Parse(time.RFC3339, startStr)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid start time: %w", err)
		}
	}

	if end.Before(start) {
		return time.Time{}, time.Time{}, fmt.Errorf("start time must be before end time")
	}

	if end.Sub(start) > 7*24*time.Hour {
		return time.Time{}, time.Time{}, fmt.Errorf("time range cannot exceed 7 days")
	}

	return start, end, nil
}
