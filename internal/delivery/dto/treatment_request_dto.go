package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type CreateTreatmentRequestRequest struct {
	PatientID       uuid.UUID `json:"patient_id" validate:"required"`
	DoctorID        uuid.UUID `json:"doctor_id" validate:"required"`
	DesiredDatetime string    `json:"desired_datetime" validate:"required"` // Format: YYYY-MM-DDTHH:MM[:SS], clinic local time
}

// TreatmentRequestFilter narrows the request list
type TreatmentRequestFilter struct {
	DoctorID *uuid.UUID
}

// Response DTOs

type TreatmentRequestResponse struct {
	ID              uuid.UUID        `json:"id"`
	PatientID       *uuid.UUID       `json:"patient_id"`
	DoctorID        *uuid.UUID       `json:"doctor_id"`
	Patient         *PatientResponse `json:"patient,omitempty"`
	DesiredDatetime string           `json:"desired_datetime"`
	ExpiredDatetime *string          `json:"expired_datetime"`
	Status          string           `json:"status"`
	CreatedAt       string           `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`
}

type TreatmentRequestListResponse struct {
	Requests []TreatmentRequestResponse `json:"requests"`
	Total    int                        `json:"total"`
}
