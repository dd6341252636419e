package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Doctor owns its weekly business hours
type Doctor struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Name            string          `gorm:"type:varchar(200);not null;index" json:"name"`
	Specialization  string          `gorm:"type:varchar(100);index" json:"specialization,omitempty"`
	HospitalName    string          `gorm:"type:varchar(200)" json:"hospital_name,omitempty"`
	ConsultationFee decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"consultation_fee"`
	CreatedAt       time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time       `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Hours []BusinessHour `gorm:"foreignKey:DoctorID" json:"business_hours,omitempty"`
}

func (Doctor) TableName() string {
	return "doctors"
}
