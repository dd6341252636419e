package service

import (
	"errors"
	"time"

	"go-clinic-booking/internal/domain/entity"
)

var (
	ErrDesiredTimeInPast    = errors.New("desired datetime must be in the future")
	ErrNoBusinessHours      = errors.New("doctor has no business hours on that day")
	ErrOutsideBusinessHours = errors.New("desired time is outside the doctor's business hours")
)

// AvailabilityChecker decides whether a desired timestamp falls inside a
// doctor's working sessions.
type AvailabilityChecker struct{}

func NewAvailabilityChecker() *AvailabilityChecker {
	return &AvailabilityChecker{}
}

// Check returns the reason the request's desired time is not bookable, or nil.
// Any rejection marks the request refused.
func (c *AvailabilityChecker) Check(schedule entity.WeeklySchedule, request *entity.TreatmentRequest, now time.Time) error {
	err := c.check(schedule, request.DesiredDatetime, now)
	if err != nil {
		request.Refuse()
	}
	return err
}

// IsAvailable is Check without the reason.
func (c *AvailabilityChecker) IsAvailable(schedule entity.WeeklySchedule, request *entity.TreatmentRequest, now time.Time) bool {
	return c.Check(schedule, request, now) == nil
}

// InSession reports whether clock lies in either session of the entry, bounds included.
func (c *AvailabilityChecker) InSession(entry *entity.BusinessHour, clock entity.ClockTime) bool {
	return entry.FirstSession().Contains(clock) || entry.SecondSession().Contains(clock)
}

// InSessionAt is InSession at full precision: a timestamp any fraction past a
// session end is outside it.
func (c *AvailabilityChecker) InSessionAt(entry *entity.BusinessHour, at time.Time) bool {
	return entry.FirstSession().Covers(at) || entry.SecondSession().Covers(at)
}

func (c *AvailabilityChecker) check(schedule entity.WeeklySchedule, desired, now time.Time) error {
	if !desired.After(now) {
		return ErrDesiredTimeInPast
	}

	entry, ok := schedule.EntryFor(entity.WeekdayOf(desired))
	if !ok {
		return ErrNoBusinessHours
	}

	if !c.InSessionAt(entry, desired) {
		return ErrOutsideBusinessHours
	}
	return nil
}
