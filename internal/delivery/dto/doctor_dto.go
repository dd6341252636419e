package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Request DTOs

type CreateDoctorRequest struct {
	Name            string          `json:"name" validate:"required,min=2,max=200"`
	Specialization  string          `json:"specialization" validate:"omitempty,max=100"`
	HospitalName    string          `json:"hospital_name" validate:"omitempty,max=200"`
	ConsultationFee decimal.Decimal `json:"consultation_fee"`
}

type UpdateDoctorRequest struct {
	Name            *string          `json:"name" validate:"omitempty,min=2,max=200"`
	Specialization  *string          `json:"specialization" validate:"omitempty,max=100"`
	HospitalName    *string          `json:"hospital_name" validate:"omitempty,max=200"`
	ConsultationFee *decimal.Decimal `json:"consultation_fee"`
}

// DoctorFilter narrows the doctor list. Time is a naive datetime; when set only
// doctors in session at that instant are returned.
type DoctorFilter struct {
	Time string
}

// Response DTOs

type DoctorResponse struct {
	ID              uuid.UUID              `json:"id"`
	Name            string                 `json:"name"`
	Specialization  string                 `json:"specialization,omitempty"`
	HospitalName    string                 `json:"hospital_name,omitempty"`
	ConsultationFee decimal.Decimal        `json:"consultation_fee"`
	BusinessHours   []BusinessHourResponse `json:"business_hours"`
	CreatedAt       time.Time              `json:"created_at"`
	UpdatedAt       time.Time              `json:"updated_at"`
}

type DoctorListResponse struct {
	Doctors []DoctorResponse `json:"doctors"`
	Total   int              `json:"total"`
}
