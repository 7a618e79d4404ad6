package types

// DefaultRatePencePerKWH is charged for grid energy when the matched tariff
// period does not carry a rate.
const DefaultRatePencePerKWH = 28.0

// TariffPeriod is a user-defined time window of grid pricing. Periods whose
// start is numerically after their end wrap past midnight.
type TariffPeriod struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	StartTime string  `json:"startTime"` // "HH:MM"
	EndTime   string  `json:"endTime"`   // "HH:MM"
	Cheap     bool    `json:"isCheap"`
	// RatePencePerKWH of 0 means unset; see Rate.
	RatePencePerKWH float64 `json:"ratePencePerKWh,omitempty"`
}

// ContainsHour reports whether the wall-clock hour falls inside the period.
// The start is inclusive and the end exclusive; a period with start > end
// covers [start, midnight) and [midnight, end).
func (p TariffPeriod) ContainsHour(hour int) (bool, error) {
	start, err := ParseClockTime(p.StartTime)
	if err != nil {
		return false, err
	}
	end, err := ParseClockTime(p.EndTime)
	if err != nil {
		return false, err
	}
	m := hour * 60
	if start <= end {
		return m >= start && m < end, nil
	}
	return m >= start || m < end, nil
}

// Rate returns the period's pence-per-kWh rate, falling back to
// DefaultRatePencePerKWH when unset.
func (p TariffPeriod) Rate() float64 {
	if p.RatePencePerKWH > 0 {
		return p.RatePencePerKWH
	}
	return DefaultRatePencePerKWH
}

// CheapPeriodAt returns the cheap period covering the hour. Overlapping cheap
// periods resolve to the lowest set rate; a period without a rate sorts after
// any period with one, so the result does not depend on insertion order.
// Periods with unparsable times are skipped.
func CheapPeriodAt(hour int, periods []TariffPeriod) (TariffPeriod, bool) {
	var best TariffPeriod
	var found bool
	for _, p := range periods {
		if !p.Cheap {
			continue
		}
		ok, err := p.ContainsHour(hour)
		if err != nil || !ok {
			continue
		}
		if !found || cheaperThan(p, best) {
			best = p
			found = true
		}
	}
	return best, found
}

func cheaperThan(a, b TariffPeriod) bool {
	if a.RatePencePerKWH == 0 {
		return false
	}
	if b.RatePencePerKWH == 0 {
		return true
	}
	return a.RatePencePerKWH < b.RatePencePerKWH
}

// RateAt returns the pence-per-kWh grid rate for the hour: the cheapest
// matching cheap period if any, otherwise the first matching period,
// otherwise DefaultRatePencePerKWH.
func RateAt(hour int, periods []TariffPeriod) float64 {
	if p, ok := CheapPeriodAt(hour, periods); ok {
		return p.Rate()
	}
	for _, p := range periods {
		if ok, err := p.ContainsHour(hour); err == nil && ok {
			return p.Rate()
		}
	}
	return DefaultRatePencePerKWH
}
