package entity

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"time"
)

// ClockTime is a naive time of day stored as seconds since midnight
type ClockTime int

const secondsPerDay = 24 * 60 * 60

var ErrInvalidClockTime = errors.New("invalid time format, use HH:MM")

var clockLayouts = []string{"15:04", "15:04:05", "15:04:05.999999"}

// NewClockTime builds a ClockTime from hour, minute and second.
func NewClockTime(hour, minute, second int) ClockTime {
	return ClockTime(hour*3600 + minute*60 + second)
}

// ClockOf extracts the time of day of t in its own location.
func ClockOf(t time.Time) ClockTime {
	return NewClockTime(t.Hour(), t.Minute(), t.Second())
}

// ParseClockTime parses "HH:MM" or "HH:MM:SS".
func ParseClockTime(s string) (ClockTime, error) {
	for _, layout := range clockLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return ClockOf(t), nil
		}
	}
	return 0, ErrInvalidClockTime
}

func (c ClockTime) Hour() int   { return int(c) / 3600 }
func (c ClockTime) Minute() int { return int(c) % 3600 / 60 }
func (c ClockTime) Second() int { return int(c) % 60 }

// IsValid reports whether c lies within a single day
func (c ClockTime) IsValid() bool {
	return c >= 0 && c < secondsPerDay
}

// On combines the clock time with the calendar date of day, keeping day's location.
func (c ClockTime) On(day time.Time) time.Time {
	y, m, d := day.Date()
	return time.Date(y, m, d, c.Hour(), c.Minute(), c.Second(), 0, day.Location())
}

func (c ClockTime) String() string {
	if c.Second() != 0 {
		return fmt.Sprintf("%02d:%02d:%02d", c.Hour(), c.Minute(), c.Second())
	}
	return fmt.Sprintf("%02d:%02d", c.Hour(), c.Minute())
}

func (c ClockTime) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

func (c *ClockTime) UnmarshalText(text []byte) error {
	parsed, err := ParseClockTime(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// Value implements driver.Valuer for PostgreSQL time columns
func (c ClockTime) Value() (driver.Value, error) {
	return fmt.Sprintf("%02d:%02d:%02d", c.Hour(), c.Minute(), c.Second()), nil
}

// Scan implements sql.Scanner
func (c *ClockTime) Scan(value interface{}) error {
	switch v := value.(type) {
	case time.Time:
		*c = ClockOf(v)
		return nil
	case string:
		return c.UnmarshalText([]byte(v))
	case []byte:
		return c.UnmarshalText(v)
	default:
		return fmt.Errorf("failed to scan clock time from %T", value)
	}
}

// NullClockTime is an optional ClockTime, used for the lunch break bounds
type NullClockTime struct {
	Clock ClockTime
	Valid bool
}

// SomeClock wraps c as a present value.
func SomeClock(c ClockTime) NullClockTime {
	return NullClockTime{Clock: c, Valid: true}
}

func (n NullClockTime) Value() (driver.Value, error) {
	if !n.Valid {
		return nil, nil
	}
	return n.Clock.Value()
}

func (n *NullClockTime) Scan(value interface{}) error {
	if value == nil {
		n.Clock, n.Valid = 0, false
		return nil
	}
	n.Valid = true
	return n.Clock.Scan(value)
}

func (n NullClockTime) MarshalJSON() ([]byte, error) {
	if !n.Valid {
		return []byte("null"), nil
	}
	return []byte(`"` + n.Clock.String() + `"`), nil
}

func (n *NullClockTime) UnmarshalJSON(data []byte) error {
	s := string(data)
	if s == "null" || s == `""` {
		n.Clock, n.Valid = 0, false
		return nil
	}
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return ErrInvalidClockTime
	}
	if err := n.Clock.UnmarshalText([]byte(s[1 : len(s)-1])); err != nil {
		return err
	}
	n.Valid = true
	return nil
}
