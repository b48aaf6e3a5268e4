// utils/dates.go
package utils

import "time"

func BeginningOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}

// ParseLocalDateTime combines a calendar date ("2006-01-02"), a time of day
// ("15:04") and an IANA zone name into a UTC instant. An empty zone means UTC.
func ParseLocalDateTime(date, timeOfDay, timezone string) (time.Time, error) {
	if timezone == "" {
		timezone = "UTC"
	}
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return time.Time{}, err
	}
	t, err := time.ParseInLocation("2006-01-02 15:04", date+" "+timeOfDay, loc)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}
