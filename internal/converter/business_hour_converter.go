package converter

import (
	"go-clinic-booking/internal/delivery/dto"
	"go-clinic-booking/internal/domain/entity"
)

func nullClockString(c entity.NullClockTime) *string {
	if !c.Valid {
		return nil
	}
	s := c.Clock.String()
	return &s
}

// BusinessHourToResponse converts a BusinessHour entity to BusinessHourResponse DTO
func BusinessHourToResponse(hour *entity.BusinessHour) *dto.BusinessHourResponse {
	if hour == nil {
		return nil
	}

	return &dto.BusinessHourResponse{
		ID:             hour.ID,
		DoctorID:       hour.DoctorID,
		Day:            hour.Day.String(),
		OpeningTime:    hour.OpeningTime.String(),
		ClosingTime:    hour.ClosingTime.String(),
		LunchStartTime: nullClockString(hour.LunchStartTime),
		LunchEndTime:   nullClockString(hour.LunchEndTime),
		CreatedAt:      hour.CreatedAt,
		UpdatedAt:      hour.UpdatedAt,
	}
}

// BusinessHoursToResponses keeps the input order
func BusinessHoursToResponses(hours []entity.BusinessHour) []dto.BusinessHourResponse {
	responses := make([]dto.BusinessHourResponse, len(hours))
	for i := range hours {
		responses[i] = *BusinessHourToResponse(&hours[i])
	}
	return responses
}
