package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"go-practice-management/internal/delivery/dto"
	"go-practice-management/internal/domain/entity"
	"go-practice-management/internal/usecase"
	"go-practice-management/pkg/response"
	"go-practice-management/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type SessionHandler struct {
	sessionUsecase usecase.SessionUsecase
	validator      *validator.CustomValidator
}

func NewSessionHandler(sessionUsecase usecase.SessionUsecase, validator *validator.CustomValidator) *SessionHandler {
	return &SessionHandler{
		sessionUsecase: sessionUsecase,
		validator:      validator,
	}
}

func (h *SessionHandler) ScheduleSession(w http.ResponseWriter, r *http.Request) {
	var req dto.ScheduleSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	session, err := h.sessionUsecase.ScheduleSession(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrPatientNotFound):
			response.NotFound(w, "Patient not found")
		case errors.Is(err, usecase.ErrNegativePrice), errors.Is(err, usecase.ErrPriceTooHigh):
			response.Error(w, http.StatusBadRequest, err.Error(), nil)
		default:
			response.InternalServerError(w, "Failed to schedule session")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Session scheduled successfully", session)
}

func (h *SessionHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	sessionID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid session ID", nil)
		return
	}

	session, err := h.sessionUsecase.GetSession(r.Context(), sessionID)
	if err != nil {
		if errors.Is(err, usecase.ErrSessionNotFound) {
			response.NotFound(w, "Session not found")
			return
		}
		response.InternalServerError(w, "Failed to get session")
		return
	}

	response.Success(w, http.StatusOK, "Session retrieved successfully", session)
}

func (h *SessionHandler) ListSessions(w http.ResponseWriter, r *http.Request) {
	filter := entity.SessionFilter{Limit: 50}

	query := r.URL.Query()
	if patientID := query.Get("patient_id"); patientID != "" {
		filter.PatientID = &patientID
	}
	if rawStatus := query.Get("status"); rawStatus != "" {
		status := entity.SessionStatus(rawStatus)
		if !status.Valid() {
			response.Error(w, http.StatusBadRequest, "Unknown session status", nil)
			return
		}
		filter.Status = &status
	}
	if rawFrom := query.Get("start_date"); rawFrom != "" {
		from, err := time.Parse("2006-01-02", rawFrom)
		if err != nil {
			response.Error(w, http.StatusBadRequest, "Invalid start_date, use YYYY-MM-DD", nil)
			return
		}
		filter.From = &from
	}
	if rawTo := query.Get("end_date"); rawTo != "" {
		to, err := time.Parse("2006-01-02", rawTo)
		if err != nil {
			response.Error(w, http.StatusBadRequest, "Invalid end_date, use YYYY-MM-DD", nil)
			return
		}
		// end_date is inclusive
		toEnd := to.Add(24 * time.Hour)
		filter.To = &toEnd
	}
	if rawLimit := query.Get("limit"); rawLimit != "" {
		if limit, err := strconv.Atoi(rawLimit); err == nil && limit > 0 {
			filter.Limit = limit
		}
	}
	if rawOffset := query.Get("offset"); rawOffset != "" {
		if offset, err := strconv.Atoi(rawOffset); err == nil && offset > 0 {
			filter.Offset = offset
		}
	}

	sessions, err := h.sessionUsecase.ListSessions(r.Context(), filter)
	if err != nil {
		response.InternalServerError(w, "Failed to list sessions")
		return
	}

	response.Success(w, http.StatusOK, "Sessions retrieved successfully", sessions)
}

func (h *SessionHandler) UpdateSession(w http.ResponseWriter, r *http.Request) {
	sessionID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid session ID", nil)
		return
	}

	var req dto.UpdateSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	session, err := h.sessionUsecase.UpdateSession(r.Context(), sessionID, &req)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrSessionNotFound):
			response.NotFound(w, "Session not found")
		case errors.Is(err, usecase.ErrSessionNotEditable):
			response.Conflict(w, "Session is in a terminal state and cannot be edited", nil)
		case errors.Is(err, usecase.ErrNegativePrice), errors.Is(err, usecase.ErrPriceTooHigh):
			response.Error(w, http.StatusBadRequest, err.Error(), nil)
		default:
			response.InternalServerError(w, "Failed to update session")
		}
		return
	}

	response.Success(w, http.StatusOK, "Session updated successfully", session)
}

func (h *SessionHandler) TransitionStatus(w http.ResponseWriter, r *http.Request) {
	sessionID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid session ID", nil)
		return
	}

	var req dto.TransitionSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	result, err := h.sessionUsecase.TransitionSession(r.Context(), sessionID, entity.SessionStatus(req.Status), req.Note)
	if err != nil {
		var invalidTransition *usecase.InvalidTransitionError
		switch {
		case errors.Is(err, usecase.ErrSessionNotFound):
			response.NotFound(w, "Session not found")
		case errors.Is(err, usecase.ErrUnknownStatus):
			response.Error(w, http.StatusBadRequest, "Unknown session status", nil)
		case errors.As(err, &invalidTransition):
			response.Conflict(w, "Invalid status transition", map[string]string{
				"current":   string(invalidTransition.Current),
				"requested": string(invalidTransition.Requested),
			})
		case errors.Is(err, usecase.ErrTransitionConflict):
			response.Conflict(w, "Session was modified concurrently, retry the request", nil)
		default:
			response.InternalServerError(w, "Failed to transition session")
		}
		return
	}

	response.Success(w, http.StatusOK, "Session status updated successfully", result)
}
