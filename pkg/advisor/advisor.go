package advisor

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	"github.com/sunplan/sunplan/pkg/log"
	"github.com/sunplan/sunplan/pkg/types"
)

const planningHours = 24

// Advisor runs the hour-by-hour charging simulation and turns the outcome
// into an actionable recommendation. It is stateless; every call receives a
// full input snapshot and returns a fresh advice.
type Advisor struct{}

// New creates a new Advisor.
func New() *Advisor {
	return &Advisor{}
}

// Advise simulates the 24-hour planning window described by the request and
// recommends when to draw from the grid. Missing preconditions short-circuit
// with an explanatory reason instead of a partial simulation.
func (a *Advisor) Advise(ctx context.Context, req types.AdviceRequest) types.ChargingAdvice {
	if req.Config.BatteryCapacityKWH <= 0 {
		return types.ChargingAdvice{
			Reason:    "A battery capacity must be configured before charging advice can be produced.",
			ErrorKind: types.ErrorKindMissingBatteryCapacity,
		}
	}

	if req.Forecast.Failed() || len(req.Forecast.Hourly) == 0 {
		adv := types.ChargingAdvice{
			Reason:    "No usable generation forecast is available.",
			ErrorKind: types.ErrorKindForecastUnavailable,
		}
		if req.Forecast.Failed() {
			adv.Details = fmt.Sprintf("forecast error: %s", req.Forecast.ErrorKind)
		} else {
			adv.Details = "forecast has no hourly data"
		}
		return adv
	}

	st := a.simulate(ctx, req)
	return a.synthesize(ctx, req, st)
}

// simHour captures the energy state at the end of one simulated hour.
type simHour struct {
	AbsHour    int
	Hour       int
	NetKWH     float64
	BatteryKWH float64
}

// simState is the running state of one simulation pass.
type simState struct {
	planningStart int

	batteryKWH      float64
	startBatteryKWH float64
	targetKWH       float64

	remainingEVKWH       float64
	gridChargeBatteryKWH float64
	gridChargeEVKWH      float64
	costPence            float64

	// absolute hour indices (planning start + offset, not wrapped) at which
	// grid charging was scheduled, for the window summaries
	batteryChargeHours []int
	evChargeHours      []int

	hours []simHour
}

// simulate executes the greedy single-pass energy balance. Within each hour
// the EV is served first (solar surplus, then battery, then grid), the
// battery absorbs whatever net energy remains, and a cheap-tariff battery
// top-up runs last. Earlier hours are never revisited.
func (a *Advisor) simulate(ctx context.Context, req types.AdviceRequest) simState {
	capacity := req.Config.BatteryCapacityKWH

	st := simState{
		batteryKWH:     clampF(req.BatteryLevelKWH, 0, capacity),
		remainingEVKWH: math.Max(0, req.EV.ChargeRequiredKWH),
		targetKWH:      capacity * clampF(req.PreferredOvernightBatterySOC, 0, 100) / 100.0,
		hours:          make([]simHour, 0, planningHours),
	}
	st.startBatteryKWH = st.batteryKWH
	if req.Type == types.AdviceTypeToday {
		st.planningStart = clampHour(req.CurrentHour)
	}

	evRate := req.EV.MaxChargeRateKWH
	battRate := req.Config.EffectiveBatteryChargeRate()

	// the top-up budget is the shortfall measured against the starting level;
	// consumption drawn later in the window is not re-bought
	batteryNeedKWH := math.Max(0, st.targetKWH-st.startBatteryKWH)

	evDeadline := clampHour(req.EV.ChargeByHour)
	if req.Type == types.AdviceTypeOvernight && evDeadline <= 6 {
		// an early-morning deadline in an overnight plan means tomorrow
		// morning, not an hour that already passed
		evDeadline += planningHours
	}

	log.Ctx(ctx).DebugContext(ctx, "simulation starting",
		slog.Int("planningStart", st.planningStart),
		slog.Float64("batteryKWH", st.batteryKWH),
		slog.Float64("targetKWH", st.targetKWH),
		slog.Float64("remainingEVKWH", st.remainingEVKWH),
		slog.Int("evDeadline", evDeadline))

	for i := 0; i < planningHours; i++ {
		abs := st.planningStart + i
		hour := abs % planningHours

		net := req.Forecast.SolarKWHAt(hour) - req.ConsumptionKWHAt(hour)

		// EV first: solar surplus, then battery, sharing one hourly budget
		evBudget := 0.0
		if st.remainingEVKWH > 0 && abs < evDeadline && evRate > 0 {
			evBudget = evRate

			fromSolar := math.Min(math.Min(st.remainingEVKWH, evBudget), math.Max(0, net))
			net -= fromSolar
			st.remainingEVKWH -= fromSolar
			evBudget -= fromSolar

			fromBattery := math.Min(math.Min(st.remainingEVKWH, evBudget), st.batteryKWH)
			st.batteryKWH -= fromBattery
			st.remainingEVKWH -= fromBattery
			evBudget -= fromBattery
		}

		// battery absorbs the remaining surplus or covers the deficit
		st.batteryKWH = clampF(st.batteryKWH+net, 0, capacity)

		cheapPeriod, cheapNow := types.CheapPeriodAt(hour, req.Tariffs)

		// EV grid charging: cheap hours always qualify; outside them only a
		// forced overnight charge that would otherwise miss the deadline
		if st.remainingEVKWH > 0 && abs < evDeadline && evBudget > 0 {
			hoursLeft := evDeadline - abs
			forced := st.remainingEVKWH > float64(hoursLeft-1)*evRate
			if cheapNow || (forced && req.Type == types.AdviceTypeOvernight) {
				amt := math.Min(st.remainingEVKWH, evBudget)
				st.gridChargeEVKWH += amt
				st.remainingEVKWH -= amt
				st.costPence += amt * types.RateAt(hour, req.Tariffs)
				st.evChargeHours = append(st.evChargeHours, abs)
			}
		}

		// battery top-up: never forced outside cheap periods
		if batteryNeedKWH > 0 && st.batteryKWH < st.targetKWH && cheapNow {
			amt := math.Min(math.Min(batteryNeedKWH, battRate), capacity-st.batteryKWH)
			if amt > 0 {
				st.batteryKWH += amt
				batteryNeedKWH -= amt
				st.gridChargeBatteryKWH += amt
				st.costPence += amt * cheapPeriod.Rate()
				st.batteryChargeHours = append(st.batteryChargeHours, abs)
			}
		}

		st.hours = append(st.hours, simHour{
			AbsHour:    abs,
			Hour:       hour,
			NetKWH:     net,
			BatteryKWH: st.batteryKWH,
		})
	}

	return st
}

// synthesize turns the simulation outcome into a recommendation.
func (a *Advisor) synthesize(ctx context.Context, req types.AdviceRequest, st simState) types.ChargingAdvice {
	adv := types.ChargingAdvice{}
	capacity := req.Config.BatteryCapacityKWH

	// surplus over the whole day, independent of the recommendation branch
	var surplus float64
	for h := 0; h < planningHours; h++ {
		surplus += req.Forecast.SolarKWHAt(h) - req.ConsumptionKWHAt(h)
	}
	savings := round2(math.Max(0, surplus))
	adv.PotentialSavingsKWH = &savings

	if st.gridChargeBatteryKWH > 0 {
		needed := round2(st.gridChargeBatteryKWH)
		adv.ChargeNeededKWH = &needed
		adv.ChargeWindow = formatChargeWindow(st.batteryChargeHours)
	}
	if st.costPence > 0 {
		cost := round2(st.costPence)
		adv.ChargeCostPence = &cost
	}

	switch req.Type {
	case types.AdviceTypeOvernight:
		if st.gridChargeBatteryKWH > 0 || st.gridChargeEVKWH > 0 {
			adv.RecommendChargeLater = true
			adv.Reason = fmt.Sprintf(
				"Overnight grid charging recommended: %.1f kWh to bring the battery to its %.0f%% target and %.1f kWh for the EV.",
				st.gridChargeBatteryKWH, clampF(req.PreferredOvernightBatterySOC, 0, 100), st.gridChargeEVKWH)
		} else {
			adv.Reason = "Solar and stored energy cover tomorrow's needs; no overnight grid charging required."
		}
	default:
		_, cheapNow := types.CheapPeriodAt(st.planningStart, req.Tariffs)
		switch {
		case cheapNow && st.startBatteryKWH < st.targetKWH/2 && st.startBatteryKWH < 0.7*capacity:
			adv.RecommendChargeNow = true
			adv.Reason = fmt.Sprintf(
				"A cheap tariff is active now and the battery is well below target (%.1f of %.1f kWh). Top up from the grid immediately.",
				st.startBatteryKWH, st.targetKWH)
		case st.startBatteryKWH < 0.3*capacity:
			adv.RecommendChargeLater = true
			adv.Reason = fmt.Sprintf(
				"Battery is critically low (%.1f kWh, under 30%% of capacity). Charge during the next cheap period.",
				st.startBatteryKWH)
		default:
			adv.Reason = "Battery level is sufficient for the rest of the day."
		}
	}

	// EV recommendation is derived independently of the battery branch
	if req.EV.ChargeRequiredKWH > 0 {
		switch {
		case st.gridChargeEVKWH == 0 && st.remainingEVKWH <= 1e-9:
			adv.EVRecommendation = "EV charging needs are covered by solar and battery; no grid charging required."
		case req.Type == types.AdviceTypeToday && containsHour(st.evChargeHours, st.planningStart):
			adv.EVRecommendation = fmt.Sprintf(
				"Plug the EV in now; %.1f kWh of grid charging is scheduled starting this hour.",
				st.gridChargeEVKWH)
			adv.EVChargeWindow = formatChargeWindow(st.evChargeHours)
		case len(st.evChargeHours) > 0:
			adv.EVRecommendation = fmt.Sprintf(
				"Charge the EV from the grid later (%.1f kWh planned).", st.gridChargeEVKWH)
			adv.EVChargeWindow = formatChargeWindow(st.evChargeHours)
		default:
			adv.EVRecommendation = fmt.Sprintf(
				"The EV cannot be fully charged by %02d:00 with the current tariffs; %.1f kWh would remain.",
				clampHour(req.EV.ChargeByHour), st.remainingEVKWH)
		}
	}

	log.Ctx(ctx).DebugContext(ctx, "advice synthesized",
		slog.Bool("recommendChargeNow", adv.RecommendChargeNow),
		slog.Bool("recommendChargeLater", adv.RecommendChargeLater),
		slog.Float64("gridChargeBatteryKWH", st.gridChargeBatteryKWH),
		slog.Float64("gridChargeEVKWH", st.gridChargeEVKWH),
		slog.Float64("costPence", st.costPence))

	return adv
}

func containsHour(hours []int, h int) bool {
	for _, v := range hours {
		if v == h {
			return true
		}
	}
	return false
}

func clampF(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampHour(h int) int {
	if h < 0 {
		return 0
	}
	if h > 23 {
		return 23
	}
	return h
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
