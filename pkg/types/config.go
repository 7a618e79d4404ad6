package types

import "time"

// ForecastSource identifies which variant of DayForecast drives a calculation.
type ForecastSource string

const (
	ForecastSourceTelemetry ForecastSource = "telemetry"
	ForecastSourceManual    ForecastSource = "manual"
)

const (
	// DefaultSystemEfficiency is the derating factor assumed when the
	// configuration does not carry one.
	DefaultSystemEfficiency = 0.85

	minSystemEfficiency = 0.1
	maxSystemEfficiency = 1.0
)

// SystemConfiguration describes the static solar/battery installation. It is
// owned by the settings UI and treated as a read-only snapshot per call; out
// of range values are clamped, never rejected.
type SystemConfiguration struct {
	TotalSystemKWP    float64 `json:"totalSystemKWp"`
	SystemEfficiency  float64 `json:"systemEfficiency"`
	OrientationFactor float64 `json:"orientationFactor"`
	// MonthlyGenerationFactors holds one seasonal derate per calendar month.
	// It is only consulted for manual forecasts; missing or non-positive
	// entries count as 1.0.
	MonthlyGenerationFactors []float64 `json:"monthlyGenerationFactors,omitempty"`
	// BatteryCapacityKWH of 0 means no battery subsystem is installed.
	BatteryCapacityKWH float64 `json:"batteryCapacityKWh"`
	// BatteryMaxChargeRateKWH caps grid charging per simulated hour. Zero
	// defaults to the full capacity.
	BatteryMaxChargeRateKWH float64 `json:"batteryMaxChargeRateKWh,omitempty"`
	ForecastSource          ForecastSource `json:"forecastSource"`
}

// EffectiveSystemEfficiency returns the derating factor clamped to
// [0.1, 1.0], defaulting when unset.
func (c SystemConfiguration) EffectiveSystemEfficiency() float64 {
	if c.SystemEfficiency == 0 {
		return DefaultSystemEfficiency
	}
	if c.SystemEfficiency < minSystemEfficiency {
		return minSystemEfficiency
	}
	if c.SystemEfficiency > maxSystemEfficiency {
		return maxSystemEfficiency
	}
	return c.SystemEfficiency
}

// EffectiveOrientationFactor returns the orientation multiplier, assuming the
// south-facing optimum when unset.
func (c SystemConfiguration) EffectiveOrientationFactor() float64 {
	if c.OrientationFactor <= 0 {
		return 1.0
	}
	return c.OrientationFactor
}

// MonthlyFactor returns the seasonal generation factor for the month.
func (c SystemConfiguration) MonthlyFactor(month time.Month) float64 {
	idx := int(month) - 1
	if idx < 0 || idx >= len(c.MonthlyGenerationFactors) {
		return 1.0
	}
	if f := c.MonthlyGenerationFactors[idx]; f > 0 {
		return f
	}
	return 1.0
}

// EffectiveBatteryChargeRate returns the per-hour grid charge ceiling,
// defaulting to the full battery capacity.
func (c SystemConfiguration) EffectiveBatteryChargeRate() float64 {
	if c.BatteryMaxChargeRateKWH > 0 {
		return c.BatteryMaxChargeRateKWH
	}
	return c.BatteryCapacityKWH
}
