package usecase

import (
	"context"
	"errors"
	"strconv"

	"go-clinic-booking/internal/converter"
	"go-clinic-booking/internal/delivery/dto"
	"go-clinic-booking/internal/domain/entity"
	"go-clinic-booking/internal/domain/repository"
	"go-clinic-booking/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrBusinessHourNotFound = errors.New("business hour not found")
	ErrBusinessHourExists   = errors.New("doctor already has business hours on that day")

	ErrInvalidTimeFormat    = entity.ErrInvalidClockTime
	ErrInvalidWeekday       = entity.ErrInvalidWeekday
	ErrInvalidBusinessHours = entity.ErrInvalidBusinessHours
)

const auditEntityBusinessHour = "business_hour"

type BusinessHourUsecase interface {
	CreateBusinessHour(ctx context.Context, req *dto.CreateBusinessHourRequest) (*dto.BusinessHourResponse, error)
	GetBusinessHour(ctx context.Context, id int) (*dto.BusinessHourResponse, error)
	GetDoctorBusinessHours(ctx context.Context, doctorID uuid.UUID) (*dto.BusinessHourListResponse, error)
	UpdateBusinessHour(ctx context.Context, id int, req *dto.UpdateBusinessHourRequest) (*dto.BusinessHourResponse, error)
	DeleteBusinessHour(ctx context.Context, id int) error
}

type businessHourUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	hourRepo     repository.BusinessHourRepository
	doctorRepo   repository.DoctorRepository
	schedules    service.ScheduleLoader
	auditService service.AuditService
}

func NewBusinessHourUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	hourRepo repository.BusinessHourRepository,
	doctorRepo repository.DoctorRepository,
	schedules service.ScheduleLoader,
	auditService service.AuditService,
) BusinessHourUsecase {
	return &businessHourUsecase{
		db:           db,
		log:          log,
		hourRepo:     hourRepo,
		doctorRepo:   doctorRepo,
		schedules:    schedules,
		auditService: auditService,
	}
}

// CreateBusinessHour adds the hours of one weekday to a doctor's schedule.
// A doctor has at most one entry per weekday.
func (u *businessHourUsecase) CreateBusinessHour(ctx context.Context, req *dto.CreateBusinessHourRequest) (*dto.BusinessHourResponse, error) {
	hour := &entity.BusinessHour{DoctorID: req.DoctorID}
	if err := applyHours(hour, req.Day, req.OpeningTime, req.ClosingTime, req.LunchStartTime, req.LunchEndTime); err != nil {
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

	existing, err := u.hourRepo.FindByDoctorAndDay(ctx, u.db, req.DoctorID, hour.Day)
	if err != nil {
		u.log.Warnf("Failed to check business hours of doctor %s on %s: %+v", req.DoctorID, hour.Day, err)
		return nil, err
	}
	if existing != nil {
		return nil, ErrBusinessHourExists
	}

	if err := u.hourRepo.Create(ctx, u.db, hour); err != nil {
		if isDuplicateKeyError(err, "doctor_day") {
			return nil, ErrBusinessHourExists
		}
		if isForeignKeyError(err, "doctor") {
			return nil, ErrDoctorNotFound
		}
		u.log.Warnf("Failed to create business hour: %+v", err)
		return nil, err
	}

	u.schedules.Invalidate(ctx, hour.DoctorID)
	if err := u.auditService.LogCreate(ctx, u.db, actorFrom(ctx), entity.AuditActionBusinessHourCreate, auditEntityBusinessHour, strconv.Itoa(hour.ID), converter.BusinessHourToResponse(hour)); err != nil {
		u.log.Warnf("Failed to audit business hour create (non-fatal): %+v", err)
	}

	u.log.Infof("Business hour created: id=%d, doctor=%s, day=%s", hour.ID, hour.DoctorID, hour.Day)
	return converter.BusinessHourToResponse(hour), nil
}

func (u *businessHourUsecase) GetBusinessHour(ctx context.Context, id int) (*dto.BusinessHourResponse, error) {
	hour, err := u.hourRepo.FindByID(ctx, u.db, id)
	if err != nil {
		u.log.Warnf("Failed to find business hour %d: %+v", id, err)
		return nil, err
	}
	if hour == nil {
		return nil, ErrBusinessHourNotFound
	}

	return converter.BusinessHourToResponse(hour), nil
}

// GetDoctorBusinessHours returns the doctor's week ordered monday first.
func (u *businessHourUsecase) GetDoctorBusinessHours(ctx context.Context, doctorID uuid.UUID) (*dto.BusinessHourListResponse, error) {
	doctor, err := u.doctorRepo.FindByID(ctx, u.db, doctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor %s: %+v", doctorID, err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	schedule, err := u.schedules.Load(ctx, doctorID)
	if err != nil {
		return nil, err
	}
	hours := schedule.Entries()

	return &dto.BusinessHourListResponse{
		BusinessHours: converter.BusinessHoursToResponses(hours),
		Total:         len(hours),
	}, nil
}

func (u *businessHourUsecase) UpdateBusinessHour(ctx context.Context, id int, req *dto.UpdateBusinessHourRequest) (*dto.BusinessHourResponse, error) {
	hour, err := u.hourRepo.FindByID(ctx, u.db, id)
	if err != nil {
		u.log.Warnf("Failed to find business hour %d: %+v", id, err)
		return nil, err
	}
	if hour == nil {
		return nil, ErrBusinessHourNotFound
	}

	old := converter.BusinessHourToResponse(hour)
	if err := applyHours(hour, req.Day, req.OpeningTime, req.ClosingTime, req.LunchStartTime, req.LunchEndTime); err != nil {
		return nil, err
	}

	if hour.Day.String() != old.Day {
		other, err := u.hourRepo.FindByDoctorAndDay(ctx, u.db, hour.DoctorID, hour.Day)
		if err != nil {
			u.log.Warnf("Failed to check business hours of doctor %s on %s: %+v", hour.DoctorID, hour.Day, err)
			return nil, err
		}
		if other != nil && other.ID != hour.ID {
			return nil, ErrBusinessHourExists
		}
	}

	if err := u.hourRepo.Update(ctx, u.db, hour); err != nil {
		if isDuplicateKeyError(err, "doctor_day") {
			return nil, ErrBusinessHourExists
		}
		u.log.Warnf("Failed to update business hour %d: %+v", id, err)
		return nil, err
	}

	u.schedules.Invalidate(ctx, hour.DoctorID)
	updated := converter.BusinessHourToResponse(hour)
	if err := u.auditService.LogUpdate(ctx, u.db, actorFrom(ctx), entity.AuditActionBusinessHourUpdate, auditEntityBusinessHour, strconv.Itoa(id), old, updated); err != nil {
		u.log.Warnf("Failed to audit business hour update (non-fatal): %+v", err)
	}

	return updated, nil
}

func (u *businessHourUsecase) DeleteBusinessHour(ctx context.Context, id int) error {
	hour, err := u.hourRepo.FindByID(ctx, u.db, id)
	if err != nil {
		u.log.Warnf("Failed to find business hour %d: %+v", id, err)
		return err
	}
	if hour == nil {
		return ErrBusinessHourNotFound
	}

	rows, err := u.hourRepo.Delete(ctx, u.db, id)
	if err != nil {
		u.log.Warnf("Failed to delete business hour %d: %+v", id, err)
		return err
	}
	if rows == 0 {
		return ErrBusinessHourNotFound
	}

	u.schedules.Invalidate(ctx, hour.DoctorID)
	if err := u.auditService.LogDelete(ctx, u.db, actorFrom(ctx), entity.AuditActionBusinessHourDelete, auditEntityBusinessHour, strconv.Itoa(id), converter.BusinessHourToResponse(hour)); err != nil {
		u.log.Warnf("Failed to audit business hour delete (non-fatal): %+v", err)
	}

	return nil
}

// applyHours parses the textual fields into hour and validates the result.
// Empty lunch fields clear the lunch break.
func applyHours(hour *entity.BusinessHour, day, opening, closing, lunchStart, lunchEnd string) error {
	weekday, err := entity.ParseWeekday(day)
	if err != nil {
		return ErrInvalidWeekday
	}

	openAt, err := entity.ParseClockTime(opening)
	if err != nil {
		return ErrInvalidTimeFormat
	}
	closeAt, err := entity.ParseClockTime(closing)
	if err != nil {
		return ErrInvalidTimeFormat
	}

	var start, end entity.NullClockTime
	if lunchStart != "" {
		c, err := entity.ParseClockTime(lunchStart)
		if err != nil {
			return ErrInvalidTimeFormat
		}
		start = entity.SomeClock(c)
	}
	if lunchEnd != "" {
		c, err := entity.ParseClockTime(lunchEnd)
		if err != nil {
			return ErrInvalidTimeFormat
		}
		end = entity.SomeClock(c)
	}

	hour.Day = weekday
	hour.OpeningTime = openAt
	hour.ClosingTime = closeAt
	hour.LunchStartTime = start
	hour.LunchEndTime = end

	return hour.Validate()
}
