package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"go-clinic-booking/internal/delivery/dto"
	"go-clinic-booking/internal/service"
	"go-clinic-booking/internal/usecase"
	"go-clinic-booking/pkg/response"
	"go-clinic-booking/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type TreatmentRequestHandler struct {
	requestUsecase usecase.TreatmentRequestUsecase
	validator      *validator.CustomValidator
}

func NewTreatmentRequestHandler(requestUsecase usecase.TreatmentRequestUsecase, validator *validator.CustomValidator) *TreatmentRequestHandler {
	return &TreatmentRequestHandler{
		requestUsecase: requestUsecase,
		validator:      validator,
	}
}

func (h *TreatmentRequestHandler) CreateRequest(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateTreatmentRequestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	request, err := h.requestUsecase.CreateRequest(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrInvalidDatetime),
			errors.Is(err, service.ErrDesiredTimeInPast),
			errors.Is(err, service.ErrNoBusinessHours),
			errors.Is(err, service.ErrOutsideBusinessHours):
			response.BadRequest(w, err.Error())
		case errors.Is(err, usecase.ErrDoctorNotFound):
			response.NotFound(w, "Doctor not found")
		case errors.Is(err, usecase.ErrPatientNotFound):
			response.NotFound(w, "Patient not found")
		default:
			response.InternalServerError(w, "Failed to create treatment request")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Treatment request created successfully", request)
}

// AcceptRequest answers 400 when the request ran out of time, 409 when it was
// already decided.
func (h *TreatmentRequestHandler) AcceptRequest(w http.ResponseWriter, r *http.Request) {
	requestID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid treatment request ID", nil)
		return
	}

	request, err := h.requestUsecase.AcceptRequest(r.Context(), requestID)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrRequestNotFound):
			response.NotFound(w, "Treatment request not found")
		case errors.Is(err, usecase.ErrRequestExpired):
			response.BadRequest(w, "Treatment request has expired")
		case errors.Is(err, usecase.ErrRequestNotPending):
			response.Conflict(w, "Treatment request is no longer pending")
		default:
			response.InternalServerError(w, "Failed to accept treatment request")
		}
		return
	}

	response.Success(w, http.StatusOK, "Treatment request accepted successfully", request)
}

func (h *TreatmentRequestHandler) GetRequest(w http.ResponseWriter, r *http.Request) {
	requestID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid treatment request ID", nil)
		return
	}

	request, err := h.requestUsecase.GetRequest(r.Context(), requestID)
	if err != nil {
		if errors.Is(err, usecase.ErrRequestNotFound) {
			response.NotFound(w, "Treatment request not found")
			return
		}
		response.InternalServerError(w, "Failed to get treatment request")
		return
	}

	response.Success(w, http.StatusOK, "Treatment request retrieved successfully", request)
}

func (h *TreatmentRequestHandler) ListRequests(w http.ResponseWriter, r *http.Request) {
	filter := &dto.TreatmentRequestFilter{}
	if raw := r.URL.Query().Get("doctor_id"); raw != "" {
		doctorID, err := uuid.Parse(raw)
		if err != nil {
			response.Error(w, http.StatusBadRequest, "Invalid doctor ID", nil)
			return
		}
		filter.DoctorID = &doctorID
	}

	requests, err := h.requestUsecase.ListRequests(r.Context(), filter)
	if err != nil {
		response.InternalServerError(w, "Failed to get treatment requests")
		return
	}

	response.Success(w, http.StatusOK, "Treatment requests retrieved successfully", requests)
}
