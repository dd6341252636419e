package repository

import (
	"context"
	"errors"

	"go-clinic-booking/internal/domain/entity"
	domainRepo "go-clinic-booking/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type businessHourRepository struct{}

func NewBusinessHourRepository() domainRepo.BusinessHourRepository {
	return &businessHourRepository{}
}

func (r *businessHourRepository) Create(ctx context.Context, db *gorm.DB, hour *entity.BusinessHour) error {
	return db.WithContext(ctx).Create(hour).Error
}

func (r *businessHourRepository) FindByID(ctx context.Context, db *gorm.DB, id int) (*entity.BusinessHour, error) {
	var hour entity.BusinessHour
	err := db.WithContext(ctx).Where("id = ?", id).First(&hour).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &hour, nil
}

func (r *businessHourRepository) FindByDoctorID(ctx context.Context, db *gorm.DB, doctorID uuid.UUID) ([]entity.BusinessHour, error) {
	var hours []entity.BusinessHour
	err := db.WithContext(ctx).Where("doctor_id = ?", doctorID).Order("day ASC").Find(&hours).Error
	if err != nil {
		return nil, err
	}
	return hours, nil
}

func (r *businessHourRepository) FindByDoctorAndDay(ctx context.Context, db *gorm.DB, doctorID uuid.UUID, day entity.Weekday) (*entity.BusinessHour, error) {
	var hour entity.BusinessHour
	err := db.WithContext(ctx).Where("doctor_id = ? AND day = ?", doctorID, day).First(&hour).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &hour, nil
}

func (r *businessHourRepository) Update(ctx context.Context, db *gorm.DB, hour *entity.BusinessHour) error {
	return db.WithContext(ctx).Save(hour).Error
}

func (r *businessHourRepository) Delete(ctx context.Context, db *gorm.DB, id int) (int64, error) {
	result := db.WithContext(ctx).Where("id = ?", id).Delete(&entity.BusinessHour{})
	return result.RowsAffected, result.Error
}
