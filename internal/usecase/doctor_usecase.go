package usecase

import (
	"context"
	"errors"

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
	ErrDoctorNotFound         = errors.New("doctor not found")
	ErrInvalidConsultationFee = errors.New("consultation fee must not be negative")
)

const auditEntityDoctor = "doctor"

type DoctorUsecase interface {
	CreateDoctor(ctx context.Context, req *dto.CreateDoctorRequest) (*dto.DoctorResponse, error)
	GetDoctor(ctx context.Context, id uuid.UUID) (*dto.DoctorResponse, error)
	GetAllDoctors(ctx context.Context, filter *dto.DoctorFilter) (*dto.DoctorListResponse, error)
	UpdateDoctor(ctx context.Context, id uuid.UUID, req *dto.UpdateDoctorRequest) (*dto.DoctorResponse, error)
	DeleteDoctor(ctx context.Context, id uuid.UUID) error
}

type doctorUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	doctorRepo   repository.DoctorRepository
	availability *service.AvailabilityChecker
	schedules    service.ScheduleLoader
	auditService service.AuditService
}

func NewDoctorUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	doctorRepo repository.DoctorRepository,
	availability *service.AvailabilityChecker,
	schedules service.ScheduleLoader,
	auditService service.AuditService,
) DoctorUsecase {
	return &doctorUsecase{
		db:           db,
		log:          log,
		doctorRepo:   doctorRepo,
		availability: availability,
		schedules:    schedules,
		auditService: auditService,
	}
}

func (u *doctorUsecase) CreateDoctor(ctx context.Context, req *dto.CreateDoctorRequest) (*dto.DoctorResponse, error) {
	if req.ConsultationFee.IsNegative() {
		return nil, ErrInvalidConsultationFee
	}

	doctor := &entity.Doctor{
		Name:            req.Name,
		Specialization:  req.Specialization,
		HospitalName:    req.HospitalName,
		ConsultationFee: req.ConsultationFee.Round(2),
	}

	if err := u.doctorRepo.Create(ctx, u.db, doctor); err != nil {
		u.log.Warnf("Failed to create doctor: %+v", err)
		return nil, err
	}

	if err := u.auditService.LogCreate(ctx, u.db, actorFrom(ctx), entity.AuditActionDoctorCreate, auditEntityDoctor, doctor.ID.String(), doctor); err != nil {
		u.log.Warnf("Failed to audit doctor create (non-fatal): %+v", err)
	}

	return converter.DoctorToResponse(doctor), nil
}

func (u *doctorUsecase) GetDoctor(ctx context.Context, id uuid.UUID) (*dto.DoctorResponse, error) {
	doctor, err := u.doctorRepo.FindByID(ctx, u.db, id)
	if err != nil {
		u.log.Warnf("Failed to find doctor %s: %+v", id, err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	return converter.DoctorToResponse(doctor), nil
}

// GetAllDoctors lists doctors. With a time filter, only doctors whose sessions
// on that weekday contain that time of day are returned.
func (u *doctorUsecase) GetAllDoctors(ctx context.Context, filter *dto.DoctorFilter) (*dto.DoctorListResponse, error) {
	if filter == nil || filter.Time == "" {
		doctors, err := u.doctorRepo.FindAll(ctx, u.db)
		if err != nil {
			u.log.Warnf("Failed to find all doctors: %+v", err)
			return nil, err
		}
		return &dto.DoctorListResponse{
			Doctors: converter.DoctorsToResponses(doctors),
			Total:   len(doctors),
		}, nil
	}

	at, err := parseNaiveDatetime(filter.Time)
	if err != nil {
		return nil, err
	}
	day := entity.WeekdayOf(at)

	candidates, err := u.doctorRepo.FindOnDay(ctx, u.db, day)
	if err != nil {
		u.log.Warnf("Failed to find doctors working on %s: %+v", day, err)
		return nil, err
	}

	doctors := make([]entity.Doctor, 0, len(candidates))
	for _, doctor := range candidates {
		entry, ok := entity.NewWeeklySchedule(doctor.Hours).EntryFor(day)
		if ok && u.availability.InSessionAt(entry, at) {
			doctors = append(doctors, doctor)
		}
	}

	return &dto.DoctorListResponse{
		Doctors: converter.DoctorsToResponses(doctors),
		Total:   len(doctors),
	}, nil
}

func (u *doctorUsecase) UpdateDoctor(ctx context.Context, id uuid.UUID, req *dto.UpdateDoctorRequest) (*dto.DoctorResponse, error) {
	doctor, err := u.doctorRepo.FindByID(ctx, u.db, id)
	if err != nil {
		u.log.Warnf("Failed to find doctor %s: %+v", id, err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	old := *doctor
	old.Hours = nil

	if req.Name != nil {
		doctor.Name = *req.Name
	}
	if req.Specialization != nil {
		doctor.Specialization = *req.Specialization
	}
	if req.HospitalName != nil {
		doctor.HospitalName = *req.HospitalName
	}
	if req.ConsultationFee != nil {
		if req.ConsultationFee.IsNegative() {
			return nil, ErrInvalidConsultationFee
		}
		doctor.ConsultationFee = req.ConsultationFee.Round(2)
	}

	if err := u.doctorRepo.Update(ctx, u.db, doctor); err != nil {
		u.log.Warnf("Failed to update doctor %s: %+v", id, err)
		return nil, err
	}

	updated := *doctor
	updated.Hours = nil
	if err := u.auditService.LogUpdate(ctx, u.db, actorFrom(ctx), entity.AuditActionDoctorUpdate, auditEntityDoctor, id.String(), old, updated); err != nil {
		u.log.Warnf("Failed to audit doctor update (non-fatal): %+v", err)
	}

	return converter.DoctorToResponse(doctor), nil
}

// DeleteDoctor removes the doctor with its business hours; its treatment
// requests keep existing without a doctor.
func (u *doctorUsecase) DeleteDoctor(ctx context.Context, id uuid.UUID) error {
	doctor, err := u.doctorRepo.FindByID(ctx, u.db, id)
	if err != nil {
		u.log.Warnf("Failed to find doctor %s: %+v", id, err)
		return err
	}
	if doctor == nil {
		return ErrDoctorNotFound
	}

	rows, err := u.doctorRepo.Delete(ctx, u.db, id)
	if err != nil {
		u.log.Warnf("Failed to delete doctor %s: %+v", id, err)
		return err
	}
	if rows == 0 {
		return ErrDoctorNotFound
	}

	u.schedules.Invalidate(ctx, id)

	doctor.Hours = nil
	if err := u.auditService.LogDelete(ctx, u.db, actorFrom(ctx), entity.AuditActionDoctorDelete, auditEntityDoctor, id.String(), doctor); err != nil {
		u.log.Warnf("Failed to audit doctor delete (non-fatal): %+v", err)
	}

	u.log.Infof("Doctor deleted: id=%s", id)
	return nil
}
