package forecast

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	"github.com/sunplan/sunplan/pkg/log"
	"github.com/sunplan/sunplan/pkg/types"
)

const (
	// idealPeakSunHours is the clear-sky baseline a manual forecast scales.
	idealPeakSunHours = 5.0

	// neutralFallbackFactor is applied when neither forecast variant carries
	// enough data to estimate sun hours.
	neutralFallbackFactor = 0.5

	hoursPerDay = 24
)

// Calculator turns a day's forecast input and the system configuration into
// an hourly generation curve and a daily total. It is stateless and every
// call produces a fresh result.
type Calculator struct{}

// NewCalculator creates a new Calculator.
func NewCalculator() *Calculator {
	return &Calculator{}
}

// Calculate estimates the day's generation. Failures are signaled via the
// forecast's ErrorKind field rather than an error return so that a bad
// configuration still yields a renderable (zeroed) result.
func (c *Calculator) Calculate(ctx context.Context, day types.DayForecast, cfg types.SystemConfiguration) types.CalculatedForecast {
	out := types.CalculatedForecast{
		Date:           day.Date,
		ConditionLabel: conditionLabel(day),
	}

	// errors keep an empty (not nil) curve so clients always see an array
	if cfg.TotalSystemKWP <= 0 {
		log.Ctx(ctx).DebugContext(ctx, "no usable system power configured",
			slog.Float64("totalSystemKWp", cfg.TotalSystemKWP))
		out.ErrorKind = types.ErrorKindMissingSystemPower
		out.Hourly = []types.HourlyGeneration{}
		return out
	}

	sunriseMin, sunsetMin, err := daylightWindow(day)
	if err != nil || sunsetMin <= sunriseMin {
		log.Ctx(ctx).DebugContext(ctx, "invalid daylight window",
			slog.Int("sunriseMin", sunriseMin),
			slog.Int("sunsetMin", sunsetMin),
			slog.Any("error", err))
		out.ErrorKind = types.ErrorKindInvalidDaylightWindow
		out.Hourly = []types.HourlyGeneration{}
		return out
	}

	sunHours := c.effectivePeakSunHours(ctx, day, cfg)

	daily := cfg.TotalSystemKWP * sunHours * cfg.EffectiveOrientationFactor() * cfg.EffectiveSystemEfficiency()
	if daily < 0 {
		daily = 0
	}
	// round the daily total first and distribute the rounded value so the
	// hourly curve sums to it within a watt-hour
	daily = round2(daily)

	out.DailyTotalKWH = daily
	out.Hourly = distribute(daily, float64(sunriseMin)/60.0, float64(sunsetMin-sunriseMin)/60.0)
	return out
}

// effectivePeakSunHours converts the forecast into hours-equivalent of peak
// sunlight. Telemetry with a measured sunshine duration is trusted directly
// (refined by the reported condition); manual forecasts scale the clear-sky
// baseline; anything else gets a conservative neutral estimate.
func (c *Calculator) effectivePeakSunHours(ctx context.Context, day types.DayForecast, cfg types.SystemConfiguration) float64 {
	switch day.Source {
	case types.ForecastSourceTelemetry:
		if day.SunshineDurationSeconds != nil {
			actual := *day.SunshineDurationSeconds / 3600.0
			cond := ClassifyConditionCode(day.ConditionCode)
			return actual * refinementFactor(cond)
		}
	case types.ForecastSourceManual:
		return idealPeakSunHours * cfg.MonthlyFactor(day.Date.Month()) * conditionFactor(day.Condition)
	}
	log.Ctx(ctx).DebugContext(ctx, "forecast source carries no sun-hours data, using neutral estimate",
		slog.String("source", string(day.Source)))
	return idealPeakSunHours * neutralFallbackFactor
}

// daylightWindow returns sunrise and sunset as minutes since midnight.
func daylightWindow(day types.DayForecast) (int, int, error) {
	switch day.Source {
	case types.ForecastSourceManual:
		return parseClockWindow(day.Sunrise, day.Sunset)
	case types.ForecastSourceTelemetry:
		return timestampWindow(day)
	}
	// unknown tag: accept whichever variant's fields were populated
	if day.Sunrise != "" || day.Sunset != "" {
		return parseClockWindow(day.Sunrise, day.Sunset)
	}
	return timestampWindow(day)
}

func parseClockWindow(sunrise, sunset string) (int, int, error) {
	riseMin, err := types.ParseClockTime(sunrise)
	if err != nil {
		return 0, 0, fmt.Errorf("sunrise: %w", err)
	}
	setMin, err := types.ParseClockTime(sunset)
	if err != nil {
		return 0, 0, fmt.Errorf("sunset: %w", err)
	}
	return riseMin, setMin, nil
}

func timestampWindow(day types.DayForecast) (int, int, error) {
	if day.SunriseAt.IsZero() || day.SunsetAt.IsZero() {
		return 0, 0, fmt.Errorf("missing sunrise/sunset timestamps")
	}
	riseMin := day.SunriseAt.Hour()*60 + day.SunriseAt.Minute()
	setMin := day.SunsetAt.Hour()*60 + day.SunsetAt.Minute()
	return riseMin, setMin, nil
}

func conditionLabel(day types.DayForecast) string {
	if day.Source == types.ForecastSourceTelemetry {
		return ClassifyConditionCode(day.ConditionCode).Label()
	}
	return day.Condition.Label()
}

// distribute spreads the daily total across the 24 hours with a bell-shaped
// weight centered on solar noon. Hours outside the daylight window get zero.
func distribute(dailyKWH, sunriseHour, daylightHours float64) []types.HourlyGeneration {
	hours := make([]types.HourlyGeneration, hoursPerDay)
	weights := make([]float64, hoursPerDay)
	solarNoon := sunriseHour + daylightHours/2.0
	sunsetHour := sunriseHour + daylightHours

	var sum float64
	for h := 0; h < hoursPerDay; h++ {
		hours[h].Time = fmt.Sprintf("%02d:00", h)
		// only hours at least partially inside [sunrise, sunset)
		if float64(h+1) <= sunriseHour || float64(h) >= sunsetHour {
			continue
		}
		w := 1.0 - math.Abs(float64(h)+0.5-solarNoon)/(daylightHours/2.0)
		if w <= 0 {
			continue
		}
		weights[h] = math.Pow(w, 1.5)
		sum += weights[h]
	}

	if sum < 1e-9 || dailyKWH <= 0 {
		// degenerate daylight window, leave every hour at zero
		return hours
	}

	for h := range hours {
		hours[h].GenerationWH = round3(weights[h] / sum * dailyKWH * 1000.0)
	}
	return hours
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
