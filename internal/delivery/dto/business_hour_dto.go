package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type CreateBusinessHourRequest struct {
	DoctorID       uuid.UUID `json:"doctor_id" validate:"required"`
	Day            string    `json:"day" validate:"required,weekday"`
	OpeningTime    string    `json:"opening_time" validate:"required,clock"` // Format: HH:MM
	ClosingTime    string    `json:"closing_time" validate:"required,clock"` // Format: HH:MM
	LunchStartTime string    `json:"lunch_start_time" validate:"omitempty,clock"`
	LunchEndTime   string    `json:"lunch_end_time" validate:"required_with=LunchStartTime,omitempty,clock"`
}

// UpdateBusinessHourRequest replaces the hours of an existing entry. The doctor
// cannot change; an empty lunch pair removes the lunch break.
type UpdateBusinessHourRequest struct {
	Day            string `json:"day" validate:"required,weekday"`
	OpeningTime    string `json:"opening_time" validate:"required,clock"`
	ClosingTime    string `json:"closing_time" validate:"required,clock"`
	LunchStartTime string `json:"lunch_start_time" validate:"omitempty,clock"`
	LunchEndTime   string `json:"lunch_end_time" validate:"required_with=LunchStartTime,omitempty,clock"`
}

// Response DTOs

type BusinessHourResponse struct {
	ID             int       `json:"id"`
	DoctorID       uuid.UUID `json:"doctor_id"`
	Day            string    `json:"day"`
	OpeningTime    string    `json:"opening_time"`
	ClosingTime    string    `json:"closing_time"`
	LunchStartTime *string   `json:"lunch_start_time"`
	LunchEndTime   *string   `json:"lunch_end_time"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type BusinessHourListResponse struct {
	BusinessHours []BusinessHourResponse `json:"business_hours"`
	Total         int                    `json:"total"`
}
