package handler

import (
	"errors"
	"net/http"

	"go-practice-management/internal/usecase"
	"go-practice-management/pkg/response"
)

type DashboardHandler struct {
	dashboardUsecase usecase.DashboardUsecase
}

func NewDashboardHandler(dashboardUsecase usecase.DashboardUsecase) *DashboardHandler {
	return &DashboardHandler{
		dashboardUsecase: dashboardUsecase,
	}
}

func (h *DashboardHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	start, end, err := parsePeriodQuery(r)
	if err != nil {
		response.Error(w, http.StatusBadRequest, err.Error(), nil)
		return
	}

	summary, err := h.dashboardUsecase.Summary(r.Context(), start, end)
	if err != nil {
		var subquery *usecase.SubqueryError
		switch {
		case errors.Is(err, usecase.ErrInvalidPeriod), errors.Is(err, usecase.ErrPeriodTooLarge):
			response.Error(w, http.StatusBadRequest, err.Error(), nil)
		case errors.As(err, &subquery):
			response.Error(w, http.StatusInternalServerError, "Dashboard summary failed", map[string]string{
				"failed_subquery": subquery.Query,
			})
		default:
			response.InternalServerError(w, "Failed to build dashboard summary")
		}
		return
	}

	response.Success(w, http.StatusOK, "Dashboard summary retrieved successfully", summary)
}
