package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"go-practice-management/internal/domain/entity"
	"go-practice-management/internal/usecase"
	"go-practice-management/pkg/response"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type FinancialHandler struct {
	financialUsecase usecase.FinancialUsecase
}

func NewFinancialHandler(financialUsecase usecase.FinancialUsecase) *FinancialHandler {
	return &FinancialHandler{
		financialUsecase: financialUsecase,
	}
}

func (h *FinancialHandler) GetReport(w http.ResponseWriter, r *http.Request) {
	start, end, err := parsePeriodQuery(r)
	if err != nil {
		response.Error(w, http.StatusBadRequest, err.Error(), nil)
		return
	}

	var statusFilter []entity.EntryStatus
	if rawStatus := r.URL.Query().Get("status"); rawStatus != "" {
		for _, raw := range strings.Split(rawStatus, ",") {
			status := entity.EntryStatus(strings.TrimSpace(raw))
			if !status.Valid() {
				response.Error(w, http.StatusBadRequest, "Unknown entry status", nil)
				return
			}
			statusFilter = append(statusFilter, status)
		}
	}

	report, err := h.financialUsecase.Report(r.Context(), start, end, statusFilter)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrInvalidPeriod), errors.Is(err, usecase.ErrPeriodTooLarge):
			response.Error(w, http.StatusBadRequest, err.Error(), nil)
		default:
			response.InternalServerError(w, "Failed to generate report")
		}
		return
	}

	response.Success(w, http.StatusOK, "Report generated successfully", report)
}

func (h *FinancialHandler) ListEntries(w http.ResponseWriter, r *http.Request) {
	filter := entity.EntryFilter{Limit: 50}

	query := r.URL.Query()
	if patientID := query.Get("patient_id"); patientID != "" {
		filter.PatientID = &patientID
	}
	if rawStatus := query.Get("status"); rawStatus != "" {
		status := entity.EntryStatus(rawStatus)
		if !status.Valid() {
			response.Error(w, http.StatusBadRequest, "Unknown entry status", nil)
			return
		}
		filter.Statuses = []entity.EntryStatus{status}
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

	entries, err := h.financialUsecase.ListEntries(r.Context(), filter)
	if err != nil {
		response.InternalServerError(w, "Failed to list entries")
		return
	}

	response.Success(w, http.StatusOK, "Entries retrieved successfully", entries)
}

func (h *FinancialHandler) GetEntry(w http.ResponseWriter, r *http.Request) {
	entryID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid entry ID", nil)
		return
	}

	entry, err := h.financialUsecase.GetEntry(r.Context(), entryID)
	if err != nil {
		if errors.Is(err, usecase.ErrEntryNotFound) {
			response.NotFound(w, "Financial entry not found")
			return
		}
		response.InternalServerError(w, "Failed to get entry")
		return
	}

	response.Success(w, http.StatusOK, "Entry retrieved successfully", entry)
}

func (h *FinancialHandler) PayEntry(w http.ResponseWriter, r *http.Request) {
	entryID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid entry ID", nil)
		return
	}

	entry, err := h.financialUsecase.MarkEntryPaid(r.Context(), entryID)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrEntryNotFound):
			response.NotFound(w, "Financial entry not found")
		case errors.Is(err, usecase.ErrEntryAlreadyPaid):
			response.Conflict(w, "Entry is already paid", nil)
		default:
			response.InternalServerError(w, "Failed to record payment")
		}
		return
	}

	response.Success(w, http.StatusOK, "Payment recorded successfully", entry)
}

func (h *FinancialHandler) UnpayEntry(w http.ResponseWriter, r *http.Request) {
	entryID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid entry ID", nil)
		return
	}

	entry, err := h.financialUsecase.MarkEntryPending(r.Context(), entryID)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrEntryNotFound):
			response.NotFound(w, "Financial entry not found")
		case errors.Is(err, usecase.ErrEntryAlreadyPending):
			response.Conflict(w, "Entry is already pending", nil)
		default:
			response.InternalServerError(w, "Failed to revert payment")
		}
		return
	}

	response.Success(w, http.StatusOK, "Payment reverted successfully", entry)
}
