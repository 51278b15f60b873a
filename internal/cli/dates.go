package cli

import (
	"fmt"
	"strings"
	"time"
)

// parseDay parses a YYYY-MM-DD or RFC3339 flag value. Date-only values are
// midnight in loc; an empty value yields fallback.
func parseDay(val string, loc *time.Location, fallback time.Time) (time.Time, error) {
	val = strings.TrimSpace(val)
	if val == "" {
		return fallback, nil
	}
	if d, err := time.ParseInLocation(time.DateOnly, val, loc); err == nil {
		return d, nil
	}
	if t, err := time.Parse(time.RFC3339, val); err == nil {
		return t.In(loc), nil
	}
	return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD or RFC3339", val)
}

// parseClock accepts an optional HH:MM wall clock value.
func parseClock(val string) (string, error) {
	val = strings.TrimSpace(val)
	if val == "" {
		return "", nil
	}
	t, err := time.Parse("15:04", val)
	if err != nil {
		return "", fmt.Errorf("invalid time %q, expected HH:MM", val)
	}
	return t.Format("15:04"), nil
}

// timeNow is replaced in tests.
var timeNow = time.Now
