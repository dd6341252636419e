package entity

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// RequestStatus represents the status of a treatment request
type RequestStatus string

const (
	RequestStatusPending  RequestStatus = "pending"
	RequestStatusAccepted RequestStatus = "accepted"
	RequestStatusRefused  RequestStatus = "refused"
	RequestStatusExpired  RequestStatus = "expired"
)

var ErrInvalidRequestStatus = errors.New("invalid request status")

// ParseRequestStatus validates s against the closed set of statuses.
func ParseRequestStatus(s string) (RequestStatus, error) {
	status := RequestStatus(s)
	if !status.IsValid() {
		return "", ErrInvalidRequestStatus
	}
	return status, nil
}

func (s RequestStatus) IsValid() bool {
	switch s {
	case RequestStatusPending, RequestStatusAccepted, RequestStatusRefused, RequestStatusExpired:
		return true
	}
	return false
}

// IsTerminal reports whether no further transition is allowed
func (s RequestStatus) IsTerminal() bool {
	return s != RequestStatusPending
}

func (s RequestStatus) Value() (driver.Value, error) {
	if !s.IsValid() {
		return nil, ErrInvalidRequestStatus
	}
	return string(s), nil
}

func (s *RequestStatus) Scan(value interface{}) error {
	var raw string
	switch v := value.(type) {
	case string:
		raw = v
	case []byte:
		raw = string(v)
	default:
		return fmt.Errorf("failed to scan request status from %T", value)
	}
	parsed, err := ParseRequestStatus(raw)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// TreatmentRequest is one patient's attempt to book a doctor for a desired time.
// Patient and doctor are references only; deleting either nulls the column.
type TreatmentRequest struct {
	ID              uuid.UUID     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	PatientID       *uuid.UUID    `gorm:"type:uuid;index" json:"patient_id"`
	DoctorID        *uuid.UUID    `gorm:"type:uuid;index" json:"doctor_id"`
	DesiredDatetime time.Time     `gorm:"type:timestamp;not null" json:"desired_datetime"`
	ExpiredDatetime *time.Time    `gorm:"type:timestamp" json:"expired_datetime,omitempty"`
	Status          RequestStatus `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	CreatedAt       time.Time     `gorm:"type:timestamp;not null" json:"created_at"`
	UpdatedAt       time.Time     `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Patient *Patient `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
	Doctor  *Doctor  `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
}

func (TreatmentRequest) TableName() string {
	return "treatment_requests"
}

// IsPending checks if the request still awaits a decision
func (r *TreatmentRequest) IsPending() bool {
	return r.Status == RequestStatusPending
}

// IsAccepted checks if the request was accepted
func (r *TreatmentRequest) IsAccepted() bool {
	return r.Status == RequestStatusAccepted
}

// IsExpired checks the stored status only; the deadline is evaluated by the expiration engine.
func (r *TreatmentRequest) IsExpired() bool {
	return r.Status == RequestStatusExpired
}

// Accept moves a pending request to accepted
func (r *TreatmentRequest) Accept() {
	r.Status = RequestStatusAccepted
}

// Refuse marks the request refused
func (r *TreatmentRequest) Refuse() {
	r.Status = RequestStatusRefused
}

// Expire marks the request expired
func (r *TreatmentRequest) Expire() {
	r.Status = RequestStatusExpired
}
