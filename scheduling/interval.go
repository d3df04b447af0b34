package scheduling

import (
	"time"
)

const (
	dateLayout = "2006-01-02"
	hhmmLayout = "15:04"
)

// Overlaps reports whether the half-open intervals [s1,e1) and [s2,e2)
// intersect. Touching endpoints do not conflict.
func Overlaps(s1, e1, s2, e2 time.Time) bool {
	return s1.Before(e2) && s2.Before(e1)
}

// ParseDate parses a "YYYY-MM-DD" calendar date in the given location.
func ParseDate(date string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(dateLayout, date, loc)
}

// CombineDateTime builds the absolute timestamp for a "HH:MM" local time on
// the given calendar date.
func CombineDateTime(date, hhmm string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(dateLayout+" "+hhmmLayout, date+" "+hhmm, loc)
}

// DayBounds returns the half-open interval [dayStart, dayEnd) covering the
// calendar date in the given location.
func DayBounds(date string, loc *time.Location) (time.Time, time.Time, error) {
	start, err := ParseDate(date, loc)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return start, start.AddDate(0, 0, 1), nil
}
