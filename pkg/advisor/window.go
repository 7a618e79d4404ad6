package advisor

import (
	"fmt"
	"sort"

	"github.com/sunplan/sunplan/pkg/types"
)

// formatChargeWindow collapses the recorded charging hours into a human time
// range from the start of the first hour to the end of the last, labeled with
// the day the window begins on. Hours are absolute indices counted from the
// planning start, so an overnight EV deadline pushed past midnight lands on
// "Tomorrow".
func formatChargeWindow(hours []int) string {
	if len(hours) == 0 {
		return ""
	}
	sorted := append([]int(nil), hours...)
	sort.Ints(sorted)

	first := sorted[0]
	last := sorted[len(sorted)-1]
	return fmt.Sprintf("%s - %s (%s)",
		types.FormatClockMinutes((first%24)*60),
		types.FormatClockMinutes(((last+1)%24)*60),
		dayLabel(first))
}

func dayLabel(absHour int) string {
	switch {
	case absHour < 24:
		return "Today"
	case absHour < 48:
		return "Tomorrow"
	default:
		return "Day After Tomorrow"
	}
}
