package types

import "time"

// Condition buckets a day's weather for generation estimates.
type Condition string

const (
	ConditionSunny        Condition = "sunny"
	ConditionPartlyCloudy Condition = "partly_cloudy"
	ConditionCloudy       Condition = "cloudy"
	ConditionOvercast     Condition = "overcast"
	ConditionRainy        Condition = "rainy"
)

// Label returns the human-readable name of the condition.
func (c Condition) Label() string {
	switch c {
	case ConditionSunny:
		return "Sunny"
	case ConditionPartlyCloudy:
		return "Partly Cloudy"
	case ConditionCloudy:
		return "Cloudy"
	case ConditionOvercast:
		return "Overcast"
	case ConditionRainy:
		return "Rainy"
	}
	return "Unknown"
}

// DayForecast is the variant input to the calculator. Source is the
// discriminant: manual forecasts carry Sunrise/Sunset clock strings and a
// Condition, telemetry forecasts carry timestamps, an optional sunshine
// duration and a numeric provider condition code.
type DayForecast struct {
	Source ForecastSource `json:"source"`
	Date   time.Time      `json:"date"`

	// Manual fields.
	Sunrise   string    `json:"sunrise,omitempty"` // "HH:MM"
	Sunset    string    `json:"sunset,omitempty"`  // "HH:MM"
	Condition Condition `json:"condition,omitempty"`

	// Telemetry fields.
	SunriseAt               time.Time `json:"sunriseAt,omitzero"`
	SunsetAt                time.Time `json:"sunsetAt,omitzero"`
	SunshineDurationSeconds *float64  `json:"sunshineDurationSeconds,omitempty"`
	ConditionCode           int       `json:"conditionCode,omitempty"`
}

// ForecastErrorKind classifies why a calculation produced no usable output.
type ForecastErrorKind string

const (
	ErrorKindMissingSystemPower    ForecastErrorKind = "missingSystemPower"
	ErrorKindInvalidDaylightWindow ForecastErrorKind = "invalidDaylightWindow"
)

// HourlyGeneration is one hour of estimated generation.
type HourlyGeneration struct {
	Time         string  `json:"time"` // "HH:00"
	GenerationWH float64 `json:"estimatedGenerationWh"`
}

// CalculatedForecast is the calculator's output. It is produced fresh on
// every call and never mutated. When ErrorKind is empty, Hourly holds exactly
// 24 entries in ascending hour order summing to DailyTotalKWH within rounding
// tolerance; on error Hourly is empty and DailyTotalKWH is zero.
type CalculatedForecast struct {
	Date           time.Time          `json:"date"`
	ConditionLabel string             `json:"weatherConditionLabel"`
	DailyTotalKWH  float64            `json:"dailyTotalGenerationKWh"`
	Hourly         []HourlyGeneration `json:"hourlyForecast"`
	ErrorKind      ForecastErrorKind  `json:"errorKind,omitempty"`
}

// Failed reports whether the forecast carries an upstream error.
func (f CalculatedForecast) Failed() bool {
	return f.ErrorKind != ""
}

// SolarKWHAt returns the estimated generation for the wall-clock hour in kWh.
func (f CalculatedForecast) SolarKWHAt(hour int) float64 {
	if hour < 0 || hour >= len(f.Hourly) {
		return 0
	}
	return f.Hourly[hour].GenerationWH / 1000.0
}

// ForecastRecord is a stored calculation result.
type ForecastRecord struct {
	TS       time.Time          `json:"ts"`
	Forecast CalculatedForecast `json:"forecast"`
}
