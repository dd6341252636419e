package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"go-clinic-booking/internal/delivery/dto"
	"go-clinic-booking/internal/usecase"
	"go-clinic-booking/pkg/response"
	"go-clinic-booking/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type BusinessHourHandler struct {
	businessHourUsecase usecase.BusinessHourUsecase
	validator           *validator.CustomValidator
}

func NewBusinessHourHandler(businessHourUsecase usecase.BusinessHourUsecase, validator *validator.CustomValidator) *BusinessHourHandler {
	return &BusinessHourHandler{
		businessHourUsecase: businessHourUsecase,
		validator:           validator,
	}
}

// writeBusinessHourError maps the errors shared by create and update
func writeBusinessHourError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, usecase.ErrInvalidWeekday),
		errors.Is(err, usecase.ErrInvalidTimeFormat),
		errors.Is(err, usecase.ErrInvalidBusinessHours):
		response.BadRequest(w, err.Error())
	case errors.Is(err, usecase.ErrBusinessHourNotFound):
		response.NotFound(w, "Business hour not found")
	case errors.Is(err, usecase.ErrDoctorNotFound):
		response.NotFound(w, "Doctor not found")
	case errors.Is(err, usecase.ErrBusinessHourExists):
		response.Conflict(w, "Doctor already has business hours on that day")
	default:
		response.InternalServerError(w, fallback)
	}
}

func (h *BusinessHourHandler) CreateBusinessHour(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateBusinessHourRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	hour, err := h.businessHourUsecase.CreateBusinessHour(r.Context(), &req)
	if err != nil {
		writeBusinessHourError(w, err, "Failed to create business hour")
		return
	}

	response.Success(w, http.StatusCreated, "Business hour created successfully", hour)
}

func (h *BusinessHourHandler) GetBusinessHour(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid business hour ID", nil)
		return
	}

	hour, err := h.businessHourUsecase.GetBusinessHour(r.Context(), id)
	if err != nil {
		writeBusinessHourError(w, err, "Failed to get business hour")
		return
	}

	response.Success(w, http.StatusOK, "Business hour retrieved successfully", hour)
}

func (h *BusinessHourHandler) GetDoctorBusinessHours(w http.ResponseWriter, r *http.Request) {
	doctorID, err := uuid.Parse(mux.Vars(r)["doctorId"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid doctor ID", nil)
		return
	}

	hours, err := h.businessHourUsecase.GetDoctorBusinessHours(r.Context(), doctorID)
	if err != nil {
		writeBusinessHourError(w, err, "Failed to get business hours")
		return
	}

	response.Success(w, http.StatusOK, "Business hours retrieved successfully", hours)
}

func (h *BusinessHourHandler) UpdateBusinessHour(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid business hour ID", nil)
		return
	}

	var req dto.UpdateBusinessHourRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	hour, err := h.businessHourUsecase.UpdateBusinessHour(r.Context(), id, &req)
	if err != nil {
		writeBusinessHourError(w, err, "Failed to update business hour")
		return
	}

	response.Success(w, http.StatusOK, "Business hour updated successfully", hour)
}

func (h *BusinessHourHandler) DeleteBusinessHour(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid business hour ID", nil)
		return
	}

	if err := h.businessHourUsecase.DeleteBusinessHour(r.Context(), id); err != nil {
		writeBusinessHourError(w, err, "Failed to delete business hour")
		return
	}

	response.Success(w, http.StatusOK, "Business hour deleted successfully", nil)
}
