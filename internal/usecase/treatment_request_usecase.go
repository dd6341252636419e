package usecase

import (
	"context"
	"errors"
	"time"

	"go-clinic-booking/internal/converter"
	"go-clinic-booking/internal/delivery/dto"
	"go-clinic-booking/internal/delivery/http/middleware"
	"go-clinic-booking/internal/domain/entity"
	"go-clinic-booking/internal/domain/repository"
	"go-clinic-booking/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrRequestNotFound   = errors.New("treatment request not found")
	ErrRequestExpired    = errors.New("treatment request has expired")
	ErrRequestNotPending = errors.New("treatment request is no longer pending")
)

const auditEntityTreatmentRequest = "treatment_request"

type TreatmentRequestUsecase interface {
	CreateRequest(ctx context.Context, req *dto.CreateTreatmentRequestRequest) (*dto.TreatmentRequestResponse, error)
	AcceptRequest(ctx context.Context, id uuid.UUID) (*dto.TreatmentRequestResponse, error)
	GetRequest(ctx context.Context, id uuid.UUID) (*dto.TreatmentRequestResponse, error)
	ListRequests(ctx context.Context, filter *dto.TreatmentRequestFilter) (*dto.TreatmentRequestListResponse, error)
}

type treatmentRequestUsecase struct {
	db             *gorm.DB
	log            *logrus.Logger
	requestRepo    repository.TreatmentRequestRepository
	doctorRepo     repository.DoctorRepository
	patientRepo    repository.PatientRepository
	schedules      service.ScheduleLoader
	availability   *service.AvailabilityChecker
	engine         *service.ExpirationEngine
	auditService   service.AuditService
	persistRefused bool
	now            func() time.Time
}

func NewTreatmentRequestUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	requestRepo repository.TreatmentRequestRepository,
	doctorRepo repository.DoctorRepository,
	patientRepo repository.PatientRepository,
	schedules service.ScheduleLoader,
	availability *service.AvailabilityChecker,
	engine *service.ExpirationEngine,
	auditService service.AuditService,
	persistRefused bool,
) TreatmentRequestUsecase {
	return &treatmentRequestUsecase{
		db:             db,
		log:            log,
		requestRepo:    requestRepo,
		doctorRepo:     doctorRepo,
		patientRepo:    patientRepo,
		schedules:      schedules,
		availability:   availability,
		engine:         engine,
		auditService:   auditService,
		persistRefused: persistRefused,
		now:            time.Now,
	}
}

func (u *treatmentRequestUsecase) clock() time.Time {
	return wallClock(u.now())
}

// CreateRequest books a doctor for the desired time.
//
// Flow:
// 1. Parse the desired datetime and resolve doctor and patient
// 2. Check the desired time against the doctor's weekly schedule
// 3. Persist as pending, or reject (optionally persisting the refused row)
func (u *treatmentRequestUsecase) CreateRequest(ctx context.Context, req *dto.CreateTreatmentRequestRequest) (*dto.TreatmentRequestResponse, error) {
	desired, err := parseNaiveDatetime(req.DesiredDatetime)
	if err != nil {
		return nil, err
	}

	doctor, err := u.doctorRepo.FindByID(ctx, u.db, req.DoctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor %s: %+v", req.DoctorID, err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	patient, err := u.patientRepo.FindByID(ctx, u.db, req.PatientID)
	if err != nil {
		u.log.Warnf("Failed to find patient %s: %+v", req.PatientID, err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}

	schedule, err := u.schedules.Load(ctx, doctor.ID)
	if err != nil {
		return nil, err
	}

	now := u.clock()
	request := &entity.TreatmentRequest{
		PatientID:       &patient.ID,
		DoctorID:        &doctor.ID,
		DesiredDatetime: desired,
		Status:          entity.RequestStatusPending,
		CreatedAt:       now,
	}

	if reason := u.availability.Check(schedule, request, now); reason != nil {
		u.log.Infof("Treatment request refused: doctor=%s, desired=%s, reason=%v", doctor.ID, desired.Format(converter.NaiveDatetimeLayout), reason)
		if u.persistRefused {
			if err := u.requestRepo.Create(ctx, u.db, request); err != nil {
				u.log.Warnf("Failed to store refused treatment request: %+v", err)
				return nil, err
			}
			u.audit(ctx, entity.AuditActionRequestRefuse, request, nil)
		}
		return nil, reason
	}

	if err := u.requestRepo.Create(ctx, u.db, request); err != nil {
		u.log.Warnf("Failed to create treatment request: %+v", err)
		return nil, err
	}
	u.audit(ctx, entity.AuditActionRequestCreate, request, nil)

	request.Patient = patient
	u.log.Infof("Treatment request created: id=%s, doctor=%s, desired=%s", request.ID, doctor.ID, desired.Format(converter.NaiveDatetimeLayout))
	return converter.TreatmentRequestToResponse(request), nil
}

// AcceptRequest moves a pending request to accepted unless it is overdue.
// Overdue requests are persisted as evaluated and reported as expired.
func (u *treatmentRequestUsecase) AcceptRequest(ctx context.Context, id uuid.UUID) (*dto.TreatmentRequestResponse, error) {
	request, err := u.requestRepo.FindByID(ctx, u.db, id)
	if err != nil {
		u.log.Warnf("Failed to find treatment request %s: %+v", id, err)
		return nil, err
	}
	if request == nil {
		return nil, ErrRequestNotFound
	}

	if request.IsExpired() {
		return nil, ErrRequestExpired
	}
	if !request.IsPending() {
		return nil, ErrRequestNotPending
	}

	schedule, err := u.scheduleFor(ctx, request)
	if err != nil {
		return nil, err
	}

	if u.engine.IsExpired(schedule, request, u.clock()) {
		if err := u.persistEvaluation(ctx, request); err != nil {
			return nil, err
		}
		return nil, ErrRequestExpired
	}

	request.Accept()
	rows, err := u.requestRepo.UpdateEvaluation(ctx, u.db, request, entity.RequestStatusPending)
	if err != nil {
		u.log.Warnf("Failed to accept treatment request %s: %+v", id, err)
		return nil, err
	}
	if rows == 0 {
		return nil, ErrRequestNotPending
	}
	u.audit(ctx, entity.AuditActionRequestAccept, request, entity.RequestStatusPending)

	u.log.Infof("Treatment request accepted: id=%s", id)
	return converter.TreatmentRequestToResponse(request), nil
}

// GetRequest returns the request after bringing a pending one up to date.
func (u *treatmentRequestUsecase) GetRequest(ctx context.Context, id uuid.UUID) (*dto.TreatmentRequestResponse, error) {
	request, err := u.requestRepo.FindByID(ctx, u.db, id)
	if err != nil {
		u.log.Warnf("Failed to find treatment request %s: %+v", id, err)
		return nil, err
	}
	if request == nil {
		return nil, ErrRequestNotFound
	}

	u.refresh(ctx, request, nil)
	return converter.TreatmentRequestToResponse(request), nil
}

// ListRequests lists requests. Filtering by doctor hides accepted ones.
func (u *treatmentRequestUsecase) ListRequests(ctx context.Context, filter *dto.TreatmentRequestFilter) (*dto.TreatmentRequestListResponse, error) {
	query := &entity.RequestFilter{}
	if filter != nil && filter.DoctorID != nil {
		query.DoctorID = filter.DoctorID
		query.ExcludeStatuses = []entity.RequestStatus{entity.RequestStatusAccepted}
	}

	requests, err := u.requestRepo.FindAll(ctx, u.db, query)
	if err != nil {
		u.log.Warnf("Failed to find treatment requests: %+v", err)
		return nil, err
	}

	loaded := make(map[uuid.UUID]entity.WeeklySchedule)
	for i := range requests {
		u.refresh(ctx, &requests[i], loaded)
	}

	return &dto.TreatmentRequestListResponse{
		Requests: converter.TreatmentRequestsToResponses(requests),
		Total:    len(requests),
	}, nil
}

// refresh evaluates a pending request and persists whatever changed. Failures
// are logged and the stored state is served.
func (u *treatmentRequestUsecase) refresh(ctx context.Context, request *entity.TreatmentRequest, loaded map[uuid.UUID]entity.WeeklySchedule) {
	if !request.IsPending() {
		return
	}

	var schedule entity.WeeklySchedule
	if cached, ok := loaded[doctorKey(request)]; ok {
		schedule = cached
	} else {
		s, err := u.scheduleFor(ctx, request)
		if err != nil {
			return
		}
		schedule = s
		if loaded != nil {
			loaded[doctorKey(request)] = s
		}
	}

	hadExpiry := request.ExpiredDatetime != nil
	u.engine.IsExpired(schedule, request, u.clock())
	if request.IsPending() && hadExpiry {
		return
	}

	_ = u.persistEvaluation(ctx, request)
}

// persistEvaluation writes the evaluated status and expiry while the stored row is still pending.
func (u *treatmentRequestUsecase) persistEvaluation(ctx context.Context, request *entity.TreatmentRequest) error {
	rows, err := u.requestRepo.UpdateEvaluation(ctx, u.db, request, entity.RequestStatusPending)
	if err != nil {
		u.log.Warnf("Failed to persist evaluation of treatment request %s: %+v", request.ID, err)
		return err
	}
	if rows == 0 {
		u.log.Debugf("Treatment request %s changed concurrently, evaluation not stored", request.ID)
		return nil
	}

	switch request.Status {
	case entity.RequestStatusExpired:
		u.audit(ctx, entity.AuditActionRequestExpire, request, entity.RequestStatusPending)
		u.log.Infof("Treatment request expired: id=%s", request.ID)
	case entity.RequestStatusRefused:
		u.audit(ctx, entity.AuditActionRequestRefuse, request, entity.RequestStatusPending)
		u.log.Infof("Treatment request refused on evaluation: id=%s", request.ID)
	}
	return nil
}

func (u *treatmentRequestUsecase) scheduleFor(ctx context.Context, request *entity.TreatmentRequest) (entity.WeeklySchedule, error) {
	// The doctor was deleted; nothing can be available any more.
	if request.DoctorID == nil {
		return entity.NewWeeklySchedule(nil), nil
	}
	return u.schedules.Load(ctx, *request.DoctorID)
}

func doctorKey(request *entity.TreatmentRequest) uuid.UUID {
	if request.DoctorID == nil {
		return uuid.Nil
	}
	return *request.DoctorID
}

// audit records a transition. Audit failures never fail the request.
func (u *treatmentRequestUsecase) audit(ctx context.Context, action string, request *entity.TreatmentRequest, from interface{}) {
	newValue := map[string]interface{}{
		"status":           request.Status,
		"desired_datetime": request.DesiredDatetime.Format(converter.NaiveDatetimeLayout),
	}
	if request.ExpiredDatetime != nil {
		newValue["expired_datetime"] = request.ExpiredDatetime.Format(converter.NaiveDatetimeLayout)
	}

	var err error
	if from == nil {
		err = u.auditService.LogCreate(ctx, u.db, actorFrom(ctx), action, auditEntityTreatmentRequest, request.ID.String(), newValue)
	} else {
		err = u.auditService.LogUpdate(ctx, u.db, actorFrom(ctx), action, auditEntityTreatmentRequest, request.ID.String(),
			map[string]interface{}{"status": from}, newValue)
	}
	if err != nil {
		u.log.Warnf("Failed to audit %s for treatment request %s (non-fatal): %+v", action, request.ID, err)
	}
}

// actorFrom returns the signed-in user, if any
func actorFrom(ctx context.Context) *uuid.UUID {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil
	}
	return &userID
}
