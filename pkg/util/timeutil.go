package util

import "time"

// DateLayout is the wire format for calendar dates.
const DateLayout = "2006-01-02"

// NowUTC exposes time.Now for deterministic testing.
func NowUTC() time.Time {
	return time.Now().UTC()
}

// Today formats the current local date the way the date field expects it.
func Today(now func() time.Time) string {
	if now == nil {
		now = time.Now
	}
	return now().Format(DateLayout)
}
