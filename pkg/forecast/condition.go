package forecast

import "github.com/sunplan/sunplan/pkg/types"

// ClassifyConditionCode buckets a telemetry provider's WMO-style weather code
// into the condition categories the calculator works with. Unknown codes are
// treated as cloudy rather than failing the calculation.
func ClassifyConditionCode(code int) types.Condition {
	switch {
	case code <= 1:
		// 0 clear sky, 1 mainly clear
		return types.ConditionSunny
	case code == 2:
		return types.ConditionPartlyCloudy
	case code == 3:
		return types.ConditionOvercast
	case code == 45 || code == 48:
		// fog
		return types.ConditionCloudy
	case code >= 51 && code <= 67:
		// drizzle and rain
		return types.ConditionRainy
	case code >= 71 && code <= 77:
		// snow attenuates like rain for generation purposes
		return types.ConditionRainy
	case code >= 80:
		// showers and thunderstorms
		return types.ConditionRainy
	}
	return types.ConditionCloudy
}

// refinementFactor scales a measured sunshine duration by how much of that
// sunshine was likely at usable intensity.
func refinementFactor(c types.Condition) float64 {
	switch c {
	case types.ConditionRainy:
		return 0.4
	case types.ConditionOvercast:
		return 0.6
	case types.ConditionCloudy:
		return 0.8
	}
	return 1.0
}

// conditionFactor scales the ideal peak sun hours for a manually entered
// condition.
func conditionFactor(c types.Condition) float64 {
	switch c {
	case types.ConditionSunny:
		return 1.0
	case types.ConditionPartlyCloudy:
		return 0.75
	case types.ConditionCloudy:
		return 0.5
	case types.ConditionOvercast:
		return 0.25
	case types.ConditionRainy:
		return 0.15
	}
	return 0.6
}
