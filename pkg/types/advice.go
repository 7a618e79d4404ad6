package types

import "time"

// AdviceType selects the planning window for the simulator.
type AdviceType string

const (
	// AdviceTypeToday plans the 24 hours starting at the current hour.
	AdviceTypeToday AdviceType = "today"
	// AdviceTypeOvernight plans the 24 hours starting at midnight, usually
	// against tomorrow's forecast.
	AdviceTypeOvernight AdviceType = "overnight"
)

// EVChargeNeed describes an outstanding electric-vehicle charging
// requirement. It is transient per request.
type EVChargeNeed struct {
	ChargeRequiredKWH float64 `json:"chargeRequiredKWh"`
	// ChargeByHour is the wall-clock hour (0-23) the charge must be done by.
	ChargeByHour     int     `json:"chargeByHour"`
	MaxChargeRateKWH float64 `json:"maxChargeRateKWh"`
}

// AdviceRequest is the full input snapshot for one simulation run. It is
// assembled fresh by the caller on every invocation and never persisted.
type AdviceRequest struct {
	Forecast CalculatedForecast  `json:"forecast"`
	Config   SystemConfiguration `json:"config"`
	Tariffs  []TariffPeriod      `json:"tariffs"`
	// BatteryLevelKWH is clamped to [0, BatteryCapacityKWH].
	BatteryLevelKWH float64 `json:"currentBatteryLevelKWh"`
	// HourlyConsumptionKWH holds expected home consumption per wall-clock
	// hour; 24 entries, missing hours count as zero.
	HourlyConsumptionKWH []float64    `json:"hourlyConsumptionProfile"`
	CurrentHour          int          `json:"currentHour"`
	EV                   EVChargeNeed `json:"evChargeNeed"`
	Type                 AdviceType   `json:"adviceType"`
	// PreferredOvernightBatterySOC is the target state of charge (0-100).
	PreferredOvernightBatterySOC float64 `json:"preferredOvernightBatteryChargePercent"`
}

// ConsumptionKWHAt returns the expected consumption for the wall-clock hour.
func (r AdviceRequest) ConsumptionKWHAt(hour int) float64 {
	if hour < 0 || hour >= len(r.HourlyConsumptionKWH) {
		return 0
	}
	return r.HourlyConsumptionKWH[hour]
}

// AdviceErrorKind classifies why the simulator short-circuited.
type AdviceErrorKind string

const (
	ErrorKindMissingBatteryCapacity AdviceErrorKind = "missingBatteryCapacity"
	ErrorKindForecastUnavailable    AdviceErrorKind = "forecastUnavailable"
)

// ChargingAdvice is the simulator's output. Optional numeric fields are nil
// when the simulation found nothing to report for them.
type ChargingAdvice struct {
	RecommendChargeNow   bool   `json:"recommendChargeNow"`
	RecommendChargeLater bool   `json:"recommendChargeLater"`
	Reason               string `json:"reason"`
	Details              string `json:"details,omitempty"`

	// ChargeNeededKWH is the battery grid-charge estimate.
	ChargeNeededKWH *float64 `json:"chargeNeededKWh,omitempty"`
	// ChargeWindow is a human time range like "00:00 - 05:00 (Today)".
	ChargeWindow        string   `json:"chargeWindow,omitempty"`
	PotentialSavingsKWH *float64 `json:"potentialSavingsKWh,omitempty"`
	EVRecommendation    string   `json:"evRecommendation,omitempty"`
	EVChargeWindow      string   `json:"evChargeWindow,omitempty"`
	ChargeCostPence     *float64 `json:"chargeCostPence,omitempty"`

	ErrorKind AdviceErrorKind `json:"errorKind,omitempty"`
}

// AdviceRecord is a stored simulation result.
type AdviceRecord struct {
	TS     time.Time      `json:"ts"`
	Type   AdviceType     `json:"adviceType"`
	Advice ChargingAdvice `json:"advice"`
}
