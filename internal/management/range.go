package management

import (
	"time"

	"github.com/Adprivat/praxislabor/internal/timeutil"
)

const dateLayout = "2006-01-02"

// DetermineRange resolves a period selector into concrete bounds.
// "month" and "year" are rolling 30- and 365-day windows ending at the
// upper bound, "custom" honours from, anything else falls back to the
// trailing 7 days. Unparseable dates are ignored rather than rejected.
func DetermineRange(period, from, to string, now time.Time) (time.Time, time.Time) {
	upper := timeutil.EndOfDay(now)
	if to != "" {
		if parsed, err := time.Parse(dateLayout, to); err == nil {
			upper = timeutil.EndOfDay(parsed)
		}
	}

	var lower time.Time
	switch {
	case period == "month":
		lower = timeutil.StartOfDay(upper.AddDate(0, 0, -29))
	case period == "year":
		lower = timeutil.StartOfDay(upper.AddDate(0, 0, -364))
	case period == "custom" && from != "":
		parsed, err := time.Parse(dateLayout, from)
		if err != nil {
			lower = timeutil.StartOfDay(upper.AddDate(0, 0, -6))
		} else {
			lower = timeutil.StartOfDay(parsed)
		}
	default:
		lower = timeutil.StartOfDay(upper.AddDate(0, 0, -6))
	}

	if lower.After(upper) {
		lower, upper = timeutil.StartOfDay(upper), timeutil.EndOfDay(lower)
	}

	return lower, upper
}
