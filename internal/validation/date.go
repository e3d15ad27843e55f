package validation

import "time"

// DateLayout is the HTML date input format used for min/max bounds.
const DateLayout = "2006-01-02"

// TodayDate returns the local calendar date as YYYY-MM-DD.
func TodayDate() string {
	return DateOn(time.Now())
}

// DateOn formats t's wall-clock date in its own location as YYYY-MM-DD.
func DateOn(t time.Time) string {
	return t.Format(DateLayout)
}
