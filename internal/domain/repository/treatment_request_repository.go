package repository

import (
	"context"

	"go-clinic-booking/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TreatmentRequestRepository interface {
	Create(ctx context.Context, db *gorm.DB, request *entity.TreatmentRequest) error
	FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.TreatmentRequest, error)
	FindAll(ctx context.Context, db *gorm.DB, filter *entity.RequestFilter) ([]entity.TreatmentRequest, error)
	// UpdateEvaluation writes status and expiry only while the stored status still equals from.
	// Returns affected rows: 0 means another writer moved the request first.
	UpdateEvaluation(ctx context.Context, db *gorm.DB, request *entity.TreatmentRequest, from entity.RequestStatus) (int64, error)
}
