package civiltime

import "time"

// Submission window, inclusive civil hours (20:00:00 through 23:59:59).
const (
	WindowStartHour = 20
	WindowEndHour   = 23
)

// IsWindowOpen reports whether attendance may be submitted at t.
func IsWindowOpen(t time.Time) bool {
	return HourInWindow(Resolve(t).Hour)
}

// HourInWindow reports whether a civil hour falls inside the window.
func HourInWindow(hour int) bool {
	return hour >= WindowStartHour && hour <= WindowEndHour
}
