package handler

import (
	"net/http"
	"strings"

	"stats-impact-backend/internal/delivery/http/middleware"
	"stats-impact-backend/internal/usecase"
	"stats-impact-backend/pkg/export"
	"stats-impact-backend/pkg/response"
)

type ExportHandler struct {
	exportUsecase usecase.ExportUsecase
}

func NewExportHandler(exportUsecase usecase.ExportUsecase) *ExportHandler {
	return &ExportHandler{exportUsecase: exportUsecase}
}

// Fields lists the selectable CSV columns
// @Summary List export columns
// @Tags Export
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response
// @Router /stats-impact/export/fields [get]
func (h *ExportHandler) Fields(w http.ResponseWriter, r *http.Request) {
	response.Success(w, http.StatusOK, "Export fields retrieved successfully", h.exportUsecase.FieldGroups())
}

// PresencesCSV streams the presence-level CSV export
// @Summary Presence CSV export
// @Description Download the filtered presences as a semicolon-delimited CSV with the requested columns
// @Tags Export
// @Security BearerAuth
// @Produce text/csv
// @Success 200
// @Failure 401 {object} response.Response
// @Router /stats-impact/magatomatique.csv [get]
func (h *ExportHandler) PresencesCSV(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.CallerFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	rows, err := h.exportUsecase.PresencesCSV(r.Context(), caller, userID, r.URL.Query())
	if err != nil {
		response.InternalServerError(w, "Failed to build export")
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename=magatomatique_export.csv`)
	w.WriteHeader(http.StatusOK)
	export.WriteCSV(w, rows)
}

// Magato serves the cross-tab workbook
// @Summary Cross-tab workbook export
// @Description Build the cross-tab workbook, flat or one sheet per atelier depending on export_mode
// @Tags Export
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /stats-impact/magatomatique.xlsx [get]
func (h *ExportHandler) Magato(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.CallerFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	var (
		wb  *export.Workbook
		err error
	)
	switch strings.ToLower(strings.TrimSpace(r.URL.Query().Get("export_mode"))) {
	case "per_atelier", "per-atelier", "atelier":
		wb, err = h.exportUsecase.PerAtelierWorkbook(r.Context(), caller, userID, r.URL.Query())
	default:
		wb, err = h.exportUsecase.MagatoWorkbook(r.Context(), caller, userID, r.URL.Query())
	}
	if err != nil {
		switch err {
		case usecase.ErrForbidden:
			response.Forbidden(w, "Requested scope is outside your sector")
		default:
			response.InternalServerError(w, "Failed to build export")
		}
		return
	}

	response.Success(w, http.StatusOK, "Export built successfully", wb)
}
