package server

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/sunplan/sunplan/pkg/advisor"
	"github.com/sunplan/sunplan/pkg/log"
	"github.com/sunplan/sunplan/pkg/types"
)

func (s *Server) handleAdvice(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req types.AdviceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	adv := s.advisor.Advise(ctx, req)

	adviceType := req.Type
	if adviceType == "" {
		adviceType = types.AdviceTypeToday
	}
	rec := types.AdviceRecord{TS: time.Now(), Type: adviceType, Advice: adv}
	if err := s.storage.InsertAdvice(ctx, rec); err != nil {
		log.Ctx(ctx).ErrorContext(ctx, "failed to store advice", slog.Any("error", err))
	}

	writeJSON(w, adv)
}

func (s *Server) handlePlan(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req advisor.DailyPlanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	plan := s.advisor.BuildDailyPlan(ctx, req)

	now := time.Now()
	for _, rec := range []types.AdviceRecord{
		{TS: now, Type: types.AdviceTypeToday, Advice: plan.Today},
		{TS: now, Type: types.AdviceTypeOvernight, Advice: plan.Overnight},
	} {
		if err := s.storage.InsertAdvice(ctx, rec); err != nil {
			log.Ctx(ctx).ErrorContext(ctx, "failed to store advice",
				slog.String("adviceType", string(rec.Type)), slog.Any("error", err))
		}
	}

	writeJSON(w, plan)
}
