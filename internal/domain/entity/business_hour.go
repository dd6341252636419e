package entity

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrInvalidBusinessHours = errors.New("business hours must satisfy opening <= lunch start <= lunch end <= closing")

// BusinessHour is one doctor's working hours for one weekday, optionally split by a lunch break.
// A doctor has at most one BusinessHour per weekday.
type BusinessHour struct {
	ID             int           `gorm:"primaryKey;autoIncrement" json:"id"`
	DoctorID       uuid.UUID     `gorm:"type:uuid;not null;uniqueIndex:idx_business_hours_doctor_day" json:"doctor_id"`
	Day            Weekday       `gorm:"column:day;type:smallint;not null;uniqueIndex:idx_business_hours_doctor_day" json:"day"`
	OpeningTime    ClockTime     `gorm:"type:time;not null" json:"opening_time"`
	ClosingTime    ClockTime     `gorm:"type:time;not null" json:"closing_time"`
	LunchStartTime NullClockTime `gorm:"type:time" json:"lunch_start_time"`
	LunchEndTime   NullClockTime `gorm:"type:time" json:"lunch_end_time"`
	CreatedAt      time.Time     `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time     `gorm:"autoUpdateTime" json:"updated_at"`
}

func (BusinessHour) TableName() string {
	return "business_hours"
}

// Session is an interval of clock time during which the doctor sees patients
type Session struct {
	Start ClockTime
	End   ClockTime
}

// Contains reports whether c lies within the session, bounds included.
func (s Session) Contains(c ClockTime) bool {
	return c >= s.Start && c <= s.End
}

// Covers reports whether t falls within the session on t's own date, compared
// at full precision so a fraction past End is outside.
func (s Session) Covers(t time.Time) bool {
	return !t.Before(s.Start.On(t)) && !t.After(s.End.On(t))
}

// HasLunch reports whether the day is split by a lunch break
func (h *BusinessHour) HasLunch() bool {
	return h.LunchStartTime.Valid
}

// FirstSession runs from opening to lunch start, or the whole day without lunch.
func (h *BusinessHour) FirstSession() Session {
	if h.HasLunch() {
		return Session{Start: h.OpeningTime, End: h.LunchStartTime.Clock}
	}
	return Session{Start: h.OpeningTime, End: h.ClosingTime}
}

// SecondSession runs from lunch end to closing, or equals FirstSession without lunch.
func (h *BusinessHour) SecondSession() Session {
	if h.HasLunch() {
		return Session{Start: h.LunchEndTime.Clock, End: h.ClosingTime}
	}
	return h.FirstSession()
}

// LunchRange returns the lunch break; ok is false when there is none.
func (h *BusinessHour) LunchRange() (lunch Session, ok bool) {
	if !h.HasLunch() {
		return Session{}, false
	}
	return Session{Start: h.LunchStartTime.Clock, End: h.LunchEndTime.Clock}, true
}

// Validate checks the ordering invariants of the entry.
func (h *BusinessHour) Validate() error {
	if !h.Day.IsValid() {
		return ErrInvalidWeekday
	}
	if !h.OpeningTime.IsValid() || !h.ClosingTime.IsValid() {
		return ErrInvalidClockTime
	}
	if h.OpeningTime > h.ClosingTime {
		return ErrInvalidBusinessHours
	}
	if h.LunchStartTime.Valid != h.LunchEndTime.Valid {
		return ErrInvalidBusinessHours
	}
	if h.HasLunch() {
		start, end := h.LunchStartTime.Clock, h.LunchEndTime.Clock
		if h.OpeningTime > start || start > end || end > h.ClosingTime {
			return ErrInvalidBusinessHours
		}
	}
	return nil
}
