package usecase

import (
	"context"
	"testing"
	"time"

	"go-clinic-booking/internal/delivery/dto"
	"go-clinic-booking/internal/domain/entity"
	"go-clinic-booking/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 2024-03-11 is a Monday.
var mondayTen = time.Date(2024, 3, 11, 10, 0, 0, 0, time.UTC)

type requestFixture struct {
	uc       *treatmentRequestUsecase
	requests *fakeRequestRepo
	hours    *fakeHourRepo
	audit    *fakeAuditService
	doctor   entity.Doctor
	patient  entity.Patient
	now      time.Time
}

func newRequestFixture(t *testing.T, persistRefused bool) *requestFixture {
	t.Helper()

	doctor := entity.Doctor{ID: uuid.New(), Name: "Dr. Kim"}
	patient := entity.Patient{ID: uuid.New(), Name: "Lee"}
	hours := newFakeHourRepo(entity.BusinessHour{
		DoctorID:    doctor.ID,
		Day:         entity.Monday,
		OpeningTime: entity.NewClockTime(9, 0, 0),
		ClosingTime: entity.NewClockTime(19, 0, 0),
	})

	f := &requestFixture{
		requests: newFakeRequestRepo(),
		hours:    hours,
		audit:    &fakeAuditService{},
		doctor:   doctor,
		patient:  patient,
		now:      mondayTen,
	}

	availability := service.NewAvailabilityChecker()
	f.uc = NewTreatmentRequestUsecase(
		nil,
		quietLogger(),
		f.requests,
		newFakeDoctorRepo(doctor),
		newFakePatientRepo(patient),
		&fakeScheduleLoader{hours: hours},
		availability,
		service.NewExpirationEngine(availability, service.DefaultExpirationWindows()),
		f.audit,
		persistRefused,
	).(*treatmentRequestUsecase)
	f.uc.now = func() time.Time { return f.now }

	return f
}

func (f *requestFixture) create(t *testing.T, desired string) *dto.TreatmentRequestResponse {
	t.Helper()
	resp, err := f.uc.CreateRequest(context.Background(), &dto.CreateTreatmentRequestRequest{
		PatientID:       f.patient.ID,
		DoctorID:        f.doctor.ID,
		DesiredDatetime: desired,
	})
	require.NoError(t, err)
	return resp
}

func TestCreateRequest_PersistsPending(t *testing.T) {
	f := newRequestFixture(t, false)

	resp := f.create(t, "2024-03-11T15:00")

	assert.Equal(t, "pending", resp.Status)
	assert.Equal(t, "2024-03-11T15:00:00", resp.DesiredDatetime)
	assert.Equal(t, "2024-03-11T10:00:00", resp.CreatedAt)
	assert.Nil(t, resp.ExpiredDatetime)
	require.NotNil(t, resp.Patient)
	assert.Equal(t, "Lee", resp.Patient.Name)

	stored := f.requests.rows[resp.ID]
	assert.Equal(t, entity.RequestStatusPending, stored.Status)
	assert.Equal(t, []string{entity.AuditActionRequestCreate}, f.audit.actions)
}

func TestCreateRequest_Rejections(t *testing.T) {
	tests := []struct {
		name    string
		desired string
		wantErr error
	}{
		{name: "in the past", desired: "2024-03-11T09:30", wantErr: service.ErrDesiredTimeInPast},
		{name: "exactly now", desired: "2024-03-11T10:00:00", wantErr: service.ErrDesiredTimeInPast},
		{name: "no hours that day", desired: "2024-03-12T10:00", wantErr: service.ErrNoBusinessHours},
		{name: "after closing", desired: "2024-03-11T19:30", wantErr: service.ErrOutsideBusinessHours},
		{name: "half a second after closing", desired: "2024-03-11T19:00:00.5", wantErr: service.ErrOutsideBusinessHours},
		{name: "garbage", desired: "next monday", wantErr: ErrInvalidDatetime},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newRequestFixture(t, false)

			_, err := f.uc.CreateRequest(context.Background(), &dto.CreateTreatmentRequestRequest{
				PatientID:       f.patient.ID,
				DoctorID:        f.doctor.ID,
				DesiredDatetime: tt.desired,
			})

			assert.ErrorIs(t, err, tt.wantErr)
			assert.Empty(t, f.requests.rows)
		})
	}
}

func TestCreateRequest_PersistRefusedPolicy(t *testing.T) {
	f := newRequestFixture(t, true)

	_, err := f.uc.CreateRequest(context.Background(), &dto.CreateTreatmentRequestRequest{
		PatientID:       f.patient.ID,
		DoctorID:        f.doctor.ID,
		DesiredDatetime: "2024-03-11T20:00",
	})
	require.ErrorIs(t, err, service.ErrOutsideBusinessHours)

	require.Len(t, f.requests.rows, 1)
	for _, row := range f.requests.rows {
		assert.Equal(t, entity.RequestStatusRefused, row.Status)
	}
	assert.Equal(t, []string{entity.AuditActionRequestRefuse}, f.audit.actions)
}

func TestCreateRequest_UnknownParties(t *testing.T) {
	f := newRequestFixture(t, false)

	_, err := f.uc.CreateRequest(context.Background(), &dto.CreateTreatmentRequestRequest{
		PatientID:       f.patient.ID,
		DoctorID:        uuid.New(),
		DesiredDatetime: "2024-03-11T15:00",
	})
	assert.ErrorIs(t, err, ErrDoctorNotFound)

	_, err = f.uc.CreateRequest(context.Background(), &dto.CreateTreatmentRequestRequest{
		PatientID:       uuid.New(),
		DoctorID:        f.doctor.ID,
		DesiredDatetime: "2024-03-11T15:00",
	})
	assert.ErrorIs(t, err, ErrPatientNotFound)
}

func TestAcceptRequest_WithinDeadline(t *testing.T) {
	f := newRequestFixture(t, false)
	created := f.create(t, "2024-03-11T15:00")

	f.now = mondayTen.Add(19 * time.Minute)
	resp, err := f.uc.AcceptRequest(context.Background(), created.ID)
	require.NoError(t, err)

	assert.Equal(t, "accepted", resp.Status)
	require.NotNil(t, resp.ExpiredDatetime)
	assert.Equal(t, "2024-03-11T10:20:00", *resp.ExpiredDatetime)
	assert.Equal(t, entity.RequestStatusAccepted, f.requests.rows[created.ID].Status)
}

func TestAcceptRequest_AfterDeadlineExpires(t *testing.T) {
	f := newRequestFixture(t, false)
	created := f.create(t, "2024-03-11T15:00")

	f.now = mondayTen.Add(20 * time.Minute)
	_, err := f.uc.AcceptRequest(context.Background(), created.ID)
	require.ErrorIs(t, err, ErrRequestExpired)

	stored := f.requests.rows[created.ID]
	assert.Equal(t, entity.RequestStatusExpired, stored.Status)
	require.NotNil(t, stored.ExpiredDatetime)
	assert.Equal(t, mondayTen.Add(20*time.Minute), *stored.ExpiredDatetime)
	assert.Contains(t, f.audit.actions, entity.AuditActionRequestExpire)
}

func TestAcceptRequest_TerminalStatesNeverTransition(t *testing.T) {
	f := newRequestFixture(t, false)
	accepted := f.create(t, "2024-03-11T15:00")
	expired := f.create(t, "2024-03-11T16:00")

	_, err := f.uc.AcceptRequest(context.Background(), accepted.ID)
	require.NoError(t, err)

	f.now = mondayTen.Add(time.Hour)
	_, err = f.uc.AcceptRequest(context.Background(), expired.ID)
	require.ErrorIs(t, err, ErrRequestExpired)

	updates := f.requests.updates

	_, err = f.uc.AcceptRequest(context.Background(), accepted.ID)
	assert.ErrorIs(t, err, ErrRequestNotPending)
	_, err = f.uc.AcceptRequest(context.Background(), expired.ID)
	assert.ErrorIs(t, err, ErrRequestExpired)

	assert.Equal(t, updates, f.requests.updates)
	assert.Equal(t, entity.RequestStatusAccepted, f.requests.rows[accepted.ID].Status)
	assert.Equal(t, entity.RequestStatusExpired, f.requests.rows[expired.ID].Status)
}

func TestAcceptRequest_LostAvailabilityIsRefused(t *testing.T) {
	f := newRequestFixture(t, false)
	created := f.create(t, "2024-03-11T15:00")

	// Monday hours are removed before staff get to the request.
	for id := range f.hours.rows {
		delete(f.hours.rows, id)
	}

	_, err := f.uc.AcceptRequest(context.Background(), created.ID)
	require.ErrorIs(t, err, ErrRequestExpired)
	assert.Equal(t, entity.RequestStatusRefused, f.requests.rows[created.ID].Status)
}

func TestAcceptRequest_ConcurrentWriterWins(t *testing.T) {
	f := newRequestFixture(t, false)
	created := f.create(t, "2024-03-11T15:00")

	f.requests.beforeUpdate = func() {
		row := f.requests.rows[created.ID]
		row.Status = entity.RequestStatusAccepted
		f.requests.rows[created.ID] = row
	}

	_, err := f.uc.AcceptRequest(context.Background(), created.ID)
	assert.ErrorIs(t, err, ErrRequestNotPending)
}

func TestAcceptRequest_NotFound(t *testing.T) {
	f := newRequestFixture(t, false)

	_, err := f.uc.AcceptRequest(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrRequestNotFound)
}

func TestGetRequest_EvaluatesLazily(t *testing.T) {
	f := newRequestFixture(t, false)
	created := f.create(t, "2024-03-11T15:00")

	f.now = mondayTen.Add(5 * time.Minute)
	resp, err := f.uc.GetRequest(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, "pending", resp.Status)
	require.NotNil(t, f.requests.rows[created.ID].ExpiredDatetime)
	assert.Equal(t, mondayTen.Add(20*time.Minute), *f.requests.rows[created.ID].ExpiredDatetime)

	f.now = mondayTen.Add(30 * time.Minute)
	resp, err = f.uc.GetRequest(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, "expired", resp.Status)
	assert.Equal(t, entity.RequestStatusExpired, f.requests.rows[created.ID].Status)
}

func TestListRequests_DoctorFilterHidesAccepted(t *testing.T) {
	f := newRequestFixture(t, false)
	accepted := f.create(t, "2024-03-11T15:00")
	f.now = f.now.Add(time.Second)
	pending := f.create(t, "2024-03-11T16:00")

	_, err := f.uc.AcceptRequest(context.Background(), accepted.ID)
	require.NoError(t, err)

	all, err := f.uc.ListRequests(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, 2, all.Total)

	byDoctor, err := f.uc.ListRequests(context.Background(), &dto.TreatmentRequestFilter{DoctorID: &f.doctor.ID})
	require.NoError(t, err)
	require.Equal(t, 1, byDoctor.Total)
	assert.Equal(t, pending.ID, byDoctor.Requests[0].ID)
}

func TestParseNaiveDatetime(t *testing.T) {
	for _, in := range []string{"2024-03-11T15:04", "2024-03-11T15:04:00", "2024-03-11 15:04", " 2024-03-11T15:04:00 "} {
		got, err := parseNaiveDatetime(in)
		require.NoError(t, err, in)
		assert.Equal(t, time.Date(2024, 3, 11, 15, 4, 0, 0, time.UTC), got)
	}

	_, err := parseNaiveDatetime("2024-03-11")
	assert.ErrorIs(t, err, ErrInvalidDatetime)
}

func TestWallClockKeepsLocalReading(t *testing.T) {
	zone := time.FixedZone("WIB", 7*60*60)
	in := time.Date(2024, 3, 11, 10, 0, 5, 999, zone)

	assert.Equal(t, time.Date(2024, 3, 11, 10, 0, 5, 0, time.UTC), wallClock(in))
}
