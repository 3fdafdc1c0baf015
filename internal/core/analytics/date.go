package analytics

import "time"

// GetDateRangeAt returns the calendar window of period around now. Windows
// use now's location, so pass a time in the business timezone. Unknown
// periods fall back to today.
func GetDateRangeAt(period Period, now time.Time) *DateRange {
	var start, end time.Time

	switch period {
	case PeriodThisWeek:
		// Start of week (Monday)
		weekday := int(now.Weekday())
		if weekday == 0 {
			weekday = 7 // Sunday = 7
		}
		start = startOfDay(now.AddDate(0, 0, -weekday+1))
		end = now

	case PeriodThisMonth:
		start = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		end = now

	default:
		start = startOfDay(now)
		end = endOfDay(now)
	}

	return &DateRange{Start: start, End: end}
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func endOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 999999999, t.Location())
}
