package utils

import "time"

// PrettyDate formats a time for user-facing notifications.
func PrettyDate(t time.Time) string {
	return t.Format("Mon, 02 Jan 2006 15:04")
}

// NextBusinessDay returns the next weekday after t, skipping Saturday and
// Sunday.
func NextBusinessDay(t time.Time) time.Time {
	next := t.AddDate(0, 0, 1)
	for next.Weekday() == time.Saturday || next.Weekday() == time.Sunday {
		next = next.AddDate(0, 0, 1)
	}
	return next
}
