package server

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/sunplan/sunplan/pkg/log"
	"github.com/sunplan/sunplan/pkg/types"
)

type forecastRequest struct {
	Day    types.DayForecast         `json:"day"`
	Config types.SystemConfiguration `json:"config"`
}

func (s *Server) handleForecast(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req forecastRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	fc := s.calculator.Calculate(ctx, req.Day, req.Config)

	// history writes are best effort, a failed insert never blocks the response
	rec := types.ForecastRecord{TS: time.Now(), Forecast: fc}
	if err := s.storage.InsertForecast(ctx, rec); err != nil {
		log.Ctx(ctx).ErrorContext(ctx, "failed to store forecast", slog.Any("error", err))
	}

	writeJSON(w, fc)
}
