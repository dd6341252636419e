package repository

import (
	"context"

	"go-clinic-booking/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BusinessHourRepository interface {
	Create(ctx context.Context, db *gorm.DB, hour *entity.BusinessHour) error
	FindByID(ctx context.Context, db *gorm.DB, id int) (*entity.BusinessHour, error)
	FindByDoctorID(ctx context.Context, db *gorm.DB, doctorID uuid.UUID) ([]entity.BusinessHour, error)
	FindByDoctorAndDay(ctx context.Context, db *gorm.DB, doctorID uuid.UUID, day entity.Weekday) (*entity.BusinessHour, error)
	Update(ctx context.Context, db *gorm.DB, hour *entity.BusinessHour) error
	Delete(ctx context.Context, db *gorm.DB, id int) (int64, error)
}
