package shared

import "time"

const dateLayout = "2006-01-02"

// ParseDate parses a calendar date. Leave accounting works in date-only
// precision, so RFC3339 timestamps are accepted but truncated to midnight.
func ParseDate(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	if day, err := time.Parse(dateLayout, value); err == nil {
		return day, nil
	}
	ts, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(ts.Year(), ts.Month(), ts.Day(), 0, 0, 0, 0, ts.Location()), nil
}
