package advisor

import (
	"context"

	"github.com/sunplan/sunplan/pkg/types"
)

// DailyPlanRequest bundles the inputs for one recomputation cycle: today's
// forecast planned from the current hour and tomorrow's forecast planned from
// midnight.
type DailyPlanRequest struct {
	TodayForecast    types.CalculatedForecast `json:"todayForecast"`
	TomorrowForecast types.CalculatedForecast `json:"tomorrowForecast"`

	Config               types.SystemConfiguration `json:"config"`
	Tariffs              []types.TariffPeriod      `json:"tariffs"`
	BatteryLevelKWH      float64                   `json:"currentBatteryLevelKWh"`
	HourlyConsumptionKWH []float64                 `json:"hourlyConsumptionProfile"`
	CurrentHour          int                       `json:"currentHour"`
	EV                   types.EVChargeNeed        `json:"evChargeNeed"`

	PreferredOvernightBatterySOC float64 `json:"preferredOvernightBatteryChargePercent"`
}

// DailyPlan pairs the two advices produced per cycle.
type DailyPlan struct {
	Today     types.ChargingAdvice `json:"today"`
	Overnight types.ChargingAdvice `json:"overnight"`
}

// BuildDailyPlan runs the simulator twice, once per advice type. It owns no
// algorithmic logic of its own; callers that only need one window can call
// Advise directly.
func (a *Advisor) BuildDailyPlan(ctx context.Context, req DailyPlanRequest) DailyPlan {
	base := types.AdviceRequest{
		Config:                       req.Config,
		Tariffs:                      req.Tariffs,
		BatteryLevelKWH:              req.BatteryLevelKWH,
		HourlyConsumptionKWH:         req.HourlyConsumptionKWH,
		EV:                           req.EV,
		PreferredOvernightBatterySOC: req.PreferredOvernightBatterySOC,
	}

	today := base
	today.Forecast = req.TodayForecast
	today.Type = types.AdviceTypeToday
	today.CurrentHour = req.CurrentHour

	overnight := base
	overnight.Forecast = req.TomorrowForecast
	overnight.Type = types.AdviceTypeOvernight

	return DailyPlan{
		Today:     a.Advise(ctx, today),
		Overnight: a.Advise(ctx, overnight),
	}
}
