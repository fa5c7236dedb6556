package parser

import (
	"fmt"
	"time"
)

// ComposeTimestamp builds an absolute UTC instant from broken-down
// components. The components must form a real calendar date/time: a day of
// 31 in a 30-day month, or an out-of-range time field, yields
// ErrInvalidTimestamp rather than a normalized neighbor date.
func ComposeTimestamp(year int, month time.Month, day, hour, minute, second int) (time.Time, error) {
	if year <= 0 || month < time.January || month > time.December {
		return time.Time{}, fmt.Errorf(
			"%w: year=%d month=%d", ErrInvalidTimestamp, year, int(month))
	}

	// time.Date normalizes out-of-range components (Nov 31 becomes
	// Dec 1), so validity is checked by round-tripping the fields.
	t := time.Date(year, month, day, hour, minute, second, 0, time.UTC)
	if t.Year() != year || t.Month() != month || t.Day() != day ||
		t.Hour() != hour || t.Minute() != minute || t.Second() != second {
		return time.Time{}, fmt.Errorf(
			"%w: %04d-%02d-%02d %02d:%02d:%02d",
			ErrInvalidTimestamp, year, int(month), day, hour, minute, second)
	}

	return t, nil
}
