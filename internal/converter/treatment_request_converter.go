package converter

import (
	"go-clinic-booking/internal/delivery/dto"
	"go-clinic-booking/internal/domain/entity"
)

// NaiveDatetimeLayout renders clinic-local timestamps without a zone
const NaiveDatetimeLayout = "2006-01-02T15:04:05"

// TreatmentRequestToResponse converts a TreatmentRequest entity to TreatmentRequestResponse DTO
func TreatmentRequestToResponse(request *entity.TreatmentRequest) *dto.TreatmentRequestResponse {
	if request == nil {
		return nil
	}

	response := &dto.TreatmentRequestResponse{
		ID:              request.ID,
		PatientID:       request.PatientID,
		DoctorID:        request.DoctorID,
		Patient:         PatientToResponse(request.Patient),
		DesiredDatetime: request.DesiredDatetime.Format(NaiveDatetimeLayout),
		Status:          string(request.Status),
		CreatedAt:       request.CreatedAt.Format(NaiveDatetimeLayout),
		UpdatedAt:       request.UpdatedAt,
	}

	if request.ExpiredDatetime != nil {
		expired := request.ExpiredDatetime.Format(NaiveDatetimeLayout)
		response.ExpiredDatetime = &expired
	}

	return response
}

func TreatmentRequestsToResponses(requests []entity.TreatmentRequest) []dto.TreatmentRequestResponse {
	responses := make([]dto.TreatmentRequestResponse, len(requests))
	for i := range requests {
		responses[i] = *TreatmentRequestToResponse(&requests[i])
	}
	return responses
}
