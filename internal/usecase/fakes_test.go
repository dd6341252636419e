package usecase

import (
	"context"
	"io"
	"sort"
	"time"

	"go-clinic-booking/internal/domain/entity"
	"go-clinic-booking/pkg/jwt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

// ---- treatment requests ----

type fakeRequestRepo struct {
	rows         map[uuid.UUID]entity.TreatmentRequest
	beforeUpdate func()
	updates      int
}

func newFakeRequestRepo() *fakeRequestRepo {
	return &fakeRequestRepo{rows: make(map[uuid.UUID]entity.TreatmentRequest)}
}

func (r *fakeRequestRepo) Create(ctx context.Context, db *gorm.DB, request *entity.TreatmentRequest) error {
	if request.ID == uuid.Nil {
		request.ID = uuid.New()
	}
	stored := *request
	stored.Patient, stored.Doctor = nil, nil
	r.rows[request.ID] = stored
	return nil
}

func (r *fakeRequestRepo) FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.TreatmentRequest, error) {
	row, ok := r.rows[id]
	if !ok {
		return nil, nil
	}
	return &row, nil
}

func (r *fakeRequestRepo) FindAll(ctx context.Context, db *gorm.DB, filter *entity.RequestFilter) ([]entity.TreatmentRequest, error) {
	var out []entity.TreatmentRequest
	for _, row := range r.rows {
		if filter != nil && filter.DoctorID != nil && (row.DoctorID == nil || *row.DoctorID != *filter.DoctorID) {
			continue
		}
		excluded := false
		if filter != nil {
			for _, s := range filter.ExcludeStatuses {
				if row.Status == s {
					excluded = true
				}
			}
		}
		if !excluded {
			out = append(out, row)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *fakeRequestRepo) UpdateEvaluation(ctx context.Context, db *gorm.DB, request *entity.TreatmentRequest, from entity.RequestStatus) (int64, error) {
	if r.beforeUpdate != nil {
		r.beforeUpdate()
	}
	row, ok := r.rows[request.ID]
	if !ok || row.Status != from {
		return 0, nil
	}
	row.Status = request.Status
	row.ExpiredDatetime = request.ExpiredDatetime
	r.rows[request.ID] = row
	r.updates++
	return 1, nil
}

// ---- doctors ----

type fakeDoctorRepo struct {
	rows map[uuid.UUID]entity.Doctor
}

func newFakeDoctorRepo(doctors ...entity.Doctor) *fakeDoctorRepo {
	r := &fakeDoctorRepo{rows: make(map[uuid.UUID]entity.Doctor)}
	for _, d := range doctors {
		r.rows[d.ID] = d
	}
	return r
}

func (r *fakeDoctorRepo) Create(ctx context.Context, db *gorm.DB, doctor *entity.Doctor) error {
	if doctor.ID == uuid.Nil {
		doctor.ID = uuid.New()
	}
	r.rows[doctor.ID] = *doctor
	return nil
}

func (r *fakeDoctorRepo) FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.Doctor, error) {
	d, ok := r.rows[id]
	if !ok {
		return nil, nil
	}
	return &d, nil
}

func (r *fakeDoctorRepo) FindAll(ctx context.Context, db *gorm.DB) ([]entity.Doctor, error) {
	out := make([]entity.Doctor, 0, len(r.rows))
	for _, d := range r.rows {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *fakeDoctorRepo) FindOnDay(ctx context.Context, db *gorm.DB, day entity.Weekday) ([]entity.Doctor, error) {
	var out []entity.Doctor
	for _, d := range r.rows {
		for _, h := range d.Hours {
			if h.Day == day {
				out = append(out, d)
				break
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *fakeDoctorRepo) Update(ctx context.Context, db *gorm.DB, doctor *entity.Doctor) error {
	r.rows[doctor.ID] = *doctor
	return nil
}

func (r *fakeDoctorRepo) Delete(ctx context.Context, db *gorm.DB, id uuid.UUID) (int64, error) {
	if _, ok := r.rows[id]; !ok {
		return 0, nil
	}
	delete(r.rows, id)
	return 1, nil
}

// ---- patients ----

type fakePatientRepo struct {
	rows map[uuid.UUID]entity.Patient
}

func newFakePatientRepo(patients ...entity.Patient) *fakePatientRepo {
	r := &fakePatientRepo{rows: make(map[uuid.UUID]entity.Patient)}
	for _, p := range patients {
		r.rows[p.ID] = p
	}
	return r
}

func (r *fakePatientRepo) Create(ctx context.Context, db *gorm.DB, patient *entity.Patient) error {
	if patient.ID == uuid.Nil {
		patient.ID = uuid.New()
	}
	r.rows[patient.ID] = *patient
	return nil
}

func (r *fakePatientRepo) FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.Patient, error) {
	p, ok := r.rows[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (r *fakePatientRepo) FindAll(ctx context.Context, db *gorm.DB) ([]entity.Patient, error) {
	out := make([]entity.Patient, 0, len(r.rows))
	for _, p := range r.rows {
		out = append(out, p)
	}
	return out, nil
}

func (r *fakePatientRepo) Delete(ctx context.Context, db *gorm.DB, id uuid.UUID) (int64, error) {
	if _, ok := r.rows[id]; !ok {
		return 0, nil
	}
	delete(r.rows, id)
	return 1, nil
}

// ---- business hours ----

type fakeHourRepo struct {
	rows   map[int]entity.BusinessHour
	nextID int
}

func newFakeHourRepo(hours ...entity.BusinessHour) *fakeHourRepo {
	r := &fakeHourRepo{rows: make(map[int]entity.BusinessHour)}
	for _, h := range hours {
		_ = r.Create(context.Background(), nil, &h)
	}
	return r
}

func (r *fakeHourRepo) Create(ctx context.Context, db *gorm.DB, hour *entity.BusinessHour) error {
	r.nextID++
	hour.ID = r.nextID
	r.rows[hour.ID] = *hour
	return nil
}

func (r *fakeHourRepo) FindByID(ctx context.Context, db *gorm.DB, id int) (*entity.BusinessHour, error) {
	h, ok := r.rows[id]
	if !ok {
		return nil, nil
	}
	return &h, nil
}

func (r *fakeHourRepo) FindByDoctorID(ctx context.Context, db *gorm.DB, doctorID uuid.UUID) ([]entity.BusinessHour, error) {
	var out []entity.BusinessHour
	for _, h := range r.rows {
		if h.DoctorID == doctorID {
			out = append(out, h)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Day < out[j].Day })
	return out, nil
}

func (r *fakeHourRepo) FindByDoctorAndDay(ctx context.Context, db *gorm.DB, doctorID uuid.UUID, day entity.Weekday) (*entity.BusinessHour, error) {
	for _, h := range r.rows {
		if h.DoctorID == doctorID && h.Day == day {
			return &h, nil
		}
	}
	return nil, nil
}

func (r *fakeHourRepo) Update(ctx context.Context, db *gorm.DB, hour *entity.BusinessHour) error {
	r.rows[hour.ID] = *hour
	return nil
}

func (r *fakeHourRepo) Delete(ctx context.Context, db *gorm.DB, id int) (int64, error) {
	if _, ok := r.rows[id]; !ok {
		return 0, nil
	}
	delete(r.rows, id)
	return 1, nil
}

// fakeScheduleLoader reads straight from the hour repo and counts invalidations.
type fakeScheduleLoader struct {
	hours       *fakeHourRepo
	invalidated []uuid.UUID
}

func (l *fakeScheduleLoader) Load(ctx context.Context, doctorID uuid.UUID) (entity.WeeklySchedule, error) {
	hours, err := l.hours.FindByDoctorID(ctx, nil, doctorID)
	if err != nil {
		return entity.WeeklySchedule{}, err
	}
	return entity.NewWeeklySchedule(hours), nil
}

func (l *fakeScheduleLoader) Invalidate(ctx context.Context, doctorID uuid.UUID) {
	l.invalidated = append(l.invalidated, doctorID)
}

// ---- users ----

type fakeUserRepo struct {
	rows map[uuid.UUID]entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{rows: make(map[uuid.UUID]entity.User)}
}

func (r *fakeUserRepo) Create(ctx context.Context, db *gorm.DB, user *entity.User) error {
	for _, u := range r.rows {
		if u.Email == user.Email {
			return &pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"}
		}
	}
	user.ID = uuid.New()
	r.rows[user.ID] = *user
	return nil
}

func (r *fakeUserRepo) FindByEmail(ctx context.Context, db *gorm.DB, email string) (*entity.User, error) {
	for _, u := range r.rows {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.User, error) {
	u, ok := r.rows[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

// ---- audit ----

type fakeAuditService struct {
	actions []string
}

func (s *fakeAuditService) LogCreate(ctx context.Context, tx *gorm.DB, userID *uuid.UUID, action string, entityName string, entityID string, newValue interface{}) error {
	s.actions = append(s.actions, action)
	return nil
}

func (s *fakeAuditService) LogUpdate(ctx context.Context, tx *gorm.DB, userID *uuid.UUID, action string, entityName string, entityID string, oldValue, newValue interface{}) error {
	s.actions = append(s.actions, action)
	return nil
}

func (s *fakeAuditService) LogDelete(ctx context.Context, tx *gorm.DB, userID *uuid.UUID, action string, entityName string, entityID string, oldValue interface{}) error {
	s.actions = append(s.actions, action)
	return nil
}

type fakeAuditRepo struct {
	rows map[int64]entity.AuditLog
}

func (r *fakeAuditRepo) Create(ctx context.Context, db *gorm.DB, log *entity.AuditLog) error {
	log.ID = int64(len(r.rows) + 1)
	r.rows[log.ID] = *log
	return nil
}

func (r *fakeAuditRepo) FindAll(ctx context.Context, db *gorm.DB) ([]entity.AuditLog, error) {
	out := make([]entity.AuditLog, 0, len(r.rows))
	for _, l := range r.rows {
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (r *fakeAuditRepo) FindByID(ctx context.Context, db *gorm.DB, id int64) (*entity.AuditLog, error) {
	l, ok := r.rows[id]
	if !ok {
		return nil, nil
	}
	return &l, nil
}

// ---- tokens ----

type fakeTokenStore struct {
	keys map[string]time.Duration
}

func newFakeTokenStore() *fakeTokenStore {
	return &fakeTokenStore{keys: make(map[string]time.Duration)}
}

func storeKey(userID uuid.UUID, tokenType jwt.TokenType, tokenID string) string {
	return string(tokenType) + ":" + userID.String() + ":" + tokenID
}

func (s *fakeTokenStore) Store(ctx context.Context, userID uuid.UUID, tokenType jwt.TokenType, tokenID string, ttl time.Duration) error {
	s.keys[storeKey(userID, tokenType, tokenID)] = ttl
	return nil
}

func (s *fakeTokenStore) Exists(ctx context.Context, userID uuid.UUID, tokenType jwt.TokenType, tokenID string) (bool, error) {
	_, ok := s.keys[storeKey(userID, tokenType, tokenID)]
	return ok, nil
}

func (s *fakeTokenStore) Revoke(ctx context.Context, userID uuid.UUID, tokenType jwt.TokenType, tokenID string) error {
	delete(s.keys, storeKey(userID, tokenType, tokenID))
	return nil
}
