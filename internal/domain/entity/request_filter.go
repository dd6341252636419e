package entity

import "github.com/google/uuid"

// RequestFilter is a domain-level filter for listing treatment requests.
// Used by repository layer to avoid coupling with delivery DTOs.
type RequestFilter struct {
	DoctorID        *uuid.UUID
	PatientID       *uuid.UUID
	ExcludeStatuses []RequestStatus
}
