package service

import (
	"time"

	"go-clinic-booking/internal/domain/entity"
)

// ExpirationWindows are the grace periods added to each deadline rule.
type ExpirationWindows struct {
	InSession   time.Duration
	Lunch       time.Duration
	NextOpening time.Duration
}

func DefaultExpirationWindows() ExpirationWindows {
	return ExpirationWindows{
		InSession:   20 * time.Minute,
		Lunch:       15 * time.Minute,
		NextOpening: 15 * time.Minute,
	}
}

// ExpirationEngine computes when a pending request stops being acceptable.
type ExpirationEngine struct {
	availability *AvailabilityChecker
	windows      ExpirationWindows
}

func NewExpirationEngine(availability *AvailabilityChecker, windows ExpirationWindows) *ExpirationEngine {
	return &ExpirationEngine{
		availability: availability,
		windows:      windows,
	}
}

// Deadline derives the acceptance deadline from the creation timestamp:
//   - created inside a session: created + in-session window
//   - created during lunch: lunch end that day + lunch window
//   - otherwise: opening of the next scheduled day + next-opening window
//
// A doctor without any business hours yields created itself.
func (e *ExpirationEngine) Deadline(schedule entity.WeeklySchedule, created time.Time) time.Time {
	day := entity.WeekdayOf(created)
	clock := entity.ClockOf(created)

	if entry, ok := schedule.EntryFor(day); ok {
		if e.availability.InSession(entry, clock) {
			return created.Add(e.windows.InSession)
		}
		if lunch, ok := entry.LunchRange(); ok && clock >= lunch.Start && clock < lunch.End {
			return lunch.End.On(created).Add(e.windows.Lunch)
		}
	}

	next, offset, ok := schedule.NextEntryAfter(day)
	if !ok {
		return created
	}
	return next.OpeningTime.On(created).AddDate(0, 0, offset).Add(e.windows.NextOpening)
}

// IsExpired evaluates the request against now. The deadline is computed on the
// first call and reused afterwards; overdue requests are marked expired, and a
// request whose desired time is no longer available is marked refused.
func (e *ExpirationEngine) IsExpired(schedule entity.WeeklySchedule, request *entity.TreatmentRequest, now time.Time) bool {
	if request.IsExpired() {
		return true
	}

	if !e.availability.IsAvailable(schedule, request, now) {
		return true
	}

	if request.ExpiredDatetime == nil {
		deadline := e.Deadline(schedule, request.CreatedAt)
		request.ExpiredDatetime = &deadline
	}

	if !request.ExpiredDatetime.After(now) {
		request.Expire()
		return true
	}
	return false
}
