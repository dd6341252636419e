package repository

import (
	"context"
	"errors"

	"go-clinic-booking/internal/domain/entity"
	domainRepo "go-clinic-booking/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type treatmentRequestRepository struct{}

func NewTreatmentRequestRepository() domainRepo.TreatmentRequestRepository {
	return &treatmentRequestRepository{}
}

func (r *treatmentRequestRepository) Create(ctx context.Context, db *gorm.DB, request *entity.TreatmentRequest) error {
	return db.WithContext(ctx).Omit("Patient", "Doctor").Create(request).Error
}

func (r *treatmentRequestRepository) FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.TreatmentRequest, error) {
	var request entity.TreatmentRequest
	err := db.WithContext(ctx).Preload("Patient").Preload("Doctor").Where("id = ?", id).First(&request).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &request, nil
}

func (r *treatmentRequestRepository) FindAll(ctx context.Context, db *gorm.DB, filter *entity.RequestFilter) ([]entity.TreatmentRequest, error) {
	var requests []entity.TreatmentRequest
	query := db.WithContext(ctx).Preload("Patient")

	if filter != nil {
		if filter.DoctorID != nil {
			query = query.Where("doctor_id = ?", *filter.DoctorID)
		}
		if filter.PatientID != nil {
			query = query.Where("patient_id = ?", *filter.PatientID)
		}
		if len(filter.ExcludeStatuses) > 0 {
			query = query.Where("status NOT IN ?", filter.ExcludeStatuses)
		}
	}

	err := query.Order("created_at ASC").Find(&requests).Error
	if err != nil {
		return nil, err
	}
	return requests, nil
}

// UpdateEvaluation atomically persists the evaluated status and expiry ONLY if the stored
// status still matches from. Returns affected rows: 1 = success, 0 = lost the race.
func (r *treatmentRequestRepository) UpdateEvaluation(ctx context.Context, db *gorm.DB, request *entity.TreatmentRequest, from entity.RequestStatus) (int64, error) {
	result := db.WithContext(ctx).Model(&entity.TreatmentRequest{}).
		Where("id = ? AND status = ?", request.ID, from).
		Updates(map[string]interface{}{
			"status":           request.Status,
			"expired_datetime": request.ExpiredDatetime,
		})
	return result.RowsAffected, result.Error
}
