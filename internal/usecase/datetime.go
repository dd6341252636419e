package usecase

import (
	"errors"
	"strings"
	"time"
)

var ErrInvalidDatetime = errors.New("invalid datetime, use YYYY-MM-DDTHH:MM[:SS]")

var naiveLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02T15:04:05.999999",
}

// parseNaiveDatetime reads a clinic-local timestamp without zone information.
// The result carries the wall clock in UTC, which is how timestamp columns round-trip.
func parseNaiveDatetime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range naiveLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, ErrInvalidDatetime
}

// wallClock drops the zone of t, keeping its local reading at second precision.
func wallClock(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), 0, time.UTC)
}
