package entity

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"strings"
	"time"
)

// Weekday indexes the days of the week starting at Monday = 0
type Weekday int

const (
	Monday Weekday = iota
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

// DaysPerWeek is the size of the circular weekday index space
const DaysPerWeek = 7

var ErrInvalidWeekday = errors.New("invalid weekday")

var weekdayNames = [DaysPerWeek]string{
	"monday",
	"tuesday",
	"wednesday",
	"thursday",
	"friday",
	"saturday",
	"sunday",
}

// WeekdayOf returns the Monday-based weekday of t.
func WeekdayOf(t time.Time) Weekday {
	return Weekday((int(t.Weekday()) + 6) % DaysPerWeek)
}

// ParseWeekday accepts a lowercase/uppercase day name ("monday") or its three letter prefix ("mon").
func ParseWeekday(s string) (Weekday, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return 0, ErrInvalidWeekday
	}
	for i, name := range weekdayNames {
		if s == name || (len(s) == 3 && strings.HasPrefix(name, s)) {
			return Weekday(i), nil
		}
	}
	return 0, ErrInvalidWeekday
}

// IsValid reports whether d is one of the seven days
func (d Weekday) IsValid() bool {
	return d >= Monday && d <= Sunday
}

// Add moves n days forward (or backward) around the week.
func (d Weekday) Add(n int) Weekday {
	return Weekday(((int(d)+n)%DaysPerWeek + DaysPerWeek) % DaysPerWeek)
}

func (d Weekday) String() string {
	if !d.IsValid() {
		return "unknown"
	}
	return weekdayNames[d]
}

func (d Weekday) MarshalText() ([]byte, error) {
	if !d.IsValid() {
		return nil, ErrInvalidWeekday
	}
	return []byte(d.String()), nil
}

func (d *Weekday) UnmarshalText(text []byte) error {
	parsed, err := ParseWeekday(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Value stores the weekday as its integer index
func (d Weekday) Value() (driver.Value, error) {
	if !d.IsValid() {
		return nil, ErrInvalidWeekday
	}
	return int64(d), nil
}

// Scan implements sql.Scanner
func (d *Weekday) Scan(value interface{}) error {
	switch v := value.(type) {
	case int64:
		*d = Weekday(v)
	case int32:
		*d = Weekday(v)
	case int16:
		*d = Weekday(v)
	default:
		return fmt.Errorf("failed to scan weekday from %T", value)
	}
	if !d.IsValid() {
		return ErrInvalidWeekday
	}
	return nil
}
