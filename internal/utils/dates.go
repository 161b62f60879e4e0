package utils

import "time"

// DateLayout is the wire format for check-in/check-out dates.
const DateLayout = "2006-01-02"

// ParseDate parses a YYYY-MM-DD string into a UTC midnight time.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}

// Nights returns the whole-day count between check-in and
// check-out. The range is half-open, so a stay [Jan 10, Jan 13)
// is 3 nights. Inputs are expected at date precision; callers
// validate checkOut > checkIn before pricing.
func Nights(checkIn, checkOut time.Time) int {
	return int(checkOut.Sub(checkIn).Hours() / 24)
}

// Today returns the current date truncated to UTC midnight, the
// reference point for arrival/departure windows and occupancy.
func Today() time.Time {
	now := time.Now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}
