package core

import "time"

const (
	Weekly    Frequency = "weekly"
	Monthly   Frequency = "monthly"
	Quarterly Frequency = "quarterly"
	Yearly    Frequency = "yearly"
)

// Frequency is the billing period of a standing order.
type Frequency string

func (f Frequency) IsValid() bool {
	switch f {
	case Weekly, Monthly, Quarterly, Yearly:
		return true
	default:
		return false
	}
}

// monthsPer returns the period length in months, or 0 for week-based periods.
func (f Frequency) monthsPer() int {
	switch f {
	case Monthly, "":
		return 1
	case Quarterly:
		return 3
	case Yearly:
		return 12
	default:
		return 0
	}
}

// PeriodsElapsed counts the full billing periods between start and asOf.
// A period ending on a day that does not exist in the target month ends on
// that month's last day. An empty frequency is treated as monthly.
func PeriodsElapsed(start, asOf time.Time, f Frequency) int {
	start, asOf = Day(start), Day(asOf)
	if !asOf.After(start) {
		return 0
	}
	if f == Weekly {
		return int(asOf.Sub(start).Hours()/24) / 7
	}
	step := f.monthsPer()
	if step == 0 {
		return 0
	}

	months := (asOf.Year()-start.Year())*12 + int(asOf.Month()) - int(start.Month())
	n := months / step
	for n > 0 && addMonthsClamped(start, n*step).After(asOf) {
		n--
	}
	return n
}

// addMonthsClamped adds months to t keeping the day of month, clamped to the
// last day of the resulting month.
func addMonthsClamped(t time.Time, months int) time.Time {
	first := time.Date(t.Year(), t.Month()+time.Month(months), 1, 0, 0, 0, 0, time.UTC)
	lastDay := first.AddDate(0, 1, -1).Day()
	day := t.Day()
	if day > lastDay {
		day = lastDay
	}
	return time.Date(first.Year(), first.Month(), day, 0, 0, 0, 0, time.UTC)
}
