package handler

import (
	"net/http"

	"stats-impact-backend/internal/delivery/http/middleware"
	"stats-impact-backend/internal/usecase"
	"stats-impact-backend/pkg/response"
)

type StatsHandler struct {
	statsUsecase usecase.StatsUsecase
}

func NewStatsHandler(statsUsecase usecase.StatsUsecase) *StatsHandler {
	return &StatsHandler{statsUsecase: statsUsecase}
}

// Dashboard handles the statistics dashboard payload
// @Summary Statistics dashboard
// @Description Get volume, frequency, transversality, demography and occupancy statistics for a filtered period
// @Tags Stats
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /stats-impact [get]
func (h *StatsHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.CallerFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	dashboard, err := h.statsUsecase.Dashboard(r.Context(), caller, r.URL.Query())
	if err != nil {
		response.InternalServerError(w, "Failed to compute statistics")
		return
	}

	response.Success(w, http.StatusOK, "Statistics retrieved successfully", dashboard)
}

// Magato handles the cross-tab view
// @Summary Cross-tab statistics
// @Description Get the macro synthesis or the participant/session attendance matrix
// @Tags Stats
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /stats-impact/magatomatique [get]
func (h *StatsHandler) Magato(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.CallerFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	result, err := h.statsUsecase.Magato(r.Context(), caller, r.URL.Query())
	if err != nil {
		response.InternalServerError(w, "Failed to compute cross-tab")
		return
	}

	response.Success(w, http.StatusOK, "Cross-tab retrieved successfully", result)
}

// Secteurs lists the sectors available to the caller
// @Summary List sectors
// @Tags Stats
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response
// @Router /stats-impact/secteurs [get]
func (h *StatsHandler) Secteurs(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.CallerFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	secteurs, err := h.statsUsecase.Secteurs(r.Context(), caller)
	if err != nil {
		response.InternalServerError(w, "Failed to list secteurs")
		return
	}

	response.Success(w, http.StatusOK, "Secteurs retrieved successfully", secteurs)
}

// AvailableYears lists years carrying sessions within the caller's scope
// @Summary List available years
// @Tags Stats
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response
// @Router /stats-impact/years [get]
func (h *StatsHandler) AvailableYears(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.CallerFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	years, err := h.statsUsecase.AvailableYears(r.Context(), caller)
	if err != nil {
		response.InternalServerError(w, "Failed to list years")
		return
	}

	response.Success(w, http.StatusOK, "Years retrieved successfully", years)
}
