package handler

import (
	"net/http"
	"strconv"

	"stats-impact-backend/internal/delivery/http/middleware"
	"stats-impact-backend/internal/usecase"
	"stats-impact-backend/pkg/response"

	"github.com/gorilla/mux"
)

type PedagogieHandler struct {
	pedagogieUsecase usecase.PedagogieUsecase
}

func NewPedagogieHandler(pedagogieUsecase usecase.PedagogieUsecase) *PedagogieHandler {
	return &PedagogieHandler{pedagogieUsecase: pedagogieUsecase}
}

// Projets lists the pedagogical projects in scope
// @Summary List projects
// @Tags Pedagogie
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response
// @Router /stats/pedagogie/projets [get]
func (h *PedagogieHandler) Projets(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.CallerFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	projets, err := h.pedagogieUsecase.Projets(r.Context(), caller)
	if err != nil {
		response.InternalServerError(w, "Failed to list projets")
		return
	}

	response.Success(w, http.StatusOK, "Projets retrieved successfully", projets)
}

// ProjetSynthese rolls up one project's objective trees
// @Summary Project objective synthesis
// @Tags Pedagogie
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /stats/pedagogie/projets/{id} [get]
func (h *PedagogieHandler) ProjetSynthese(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.CallerFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil || id <= 0 {
		response.Error(w, http.StatusBadRequest, "Invalid projet ID", nil)
		return
	}

	synthese, err := h.pedagogieUsecase.ProjetSynthese(r.Context(), caller, id)
	if err != nil {
		switch err {
		case usecase.ErrProjetNotFound:
			response.NotFound(w, "Projet not found")
		case usecase.ErrForbidden:
			response.Forbidden(w, "Projet is outside your sector")
		default:
			response.InternalServerError(w, "Failed to compute synthesis")
		}
		return
	}

	response.Success(w, http.StatusOK, "Synthesis retrieved successfully", synthese)
}

// AtelierSynthese rolls up one workshop's objective trees
// @Summary Workshop objective synthesis
// @Tags Pedagogie
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /stats/pedagogie/ateliers/{id} [get]
func (h *PedagogieHandler) AtelierSynthese(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.CallerFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil || id <= 0 {
		response.Error(w, http.StatusBadRequest, "Invalid atelier ID", nil)
		return
	}

	synthese, err := h.pedagogieUsecase.AtelierSynthese(r.Context(), caller, id)
	if err != nil {
		switch err {
		case usecase.ErrAtelierNotFound:
			response.NotFound(w, "Atelier not found")
		case usecase.ErrForbidden:
			response.Forbidden(w, "Atelier is outside your sector")
		default:
			response.InternalServerError(w, "Failed to compute synthesis")
		}
		return
	}

	response.Success(w, http.StatusOK, "Synthesis retrieved successfully", synthese)
}

// BilanParticipant lists one participant's validated competencies
// @Summary Participant competency report
// @Tags Pedagogie
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /stats/pedagogie/participants/{id}/bilan [get]
func (h *PedagogieHandler) BilanParticipant(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.CallerFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil || id <= 0 {
		response.Error(w, http.StatusBadRequest, "Invalid participant ID", nil)
		return
	}

	bilan, err := h.pedagogieUsecase.BilanParticipant(r.Context(), caller, id)
	if err != nil {
		switch err {
		case usecase.ErrForbidden:
			response.Forbidden(w, "Participant is outside your sector")
		default:
			response.InternalServerError(w, "Failed to build report")
		}
		return
	}

	response.Success(w, http.StatusOK, "Report retrieved successfully", bilan)
}
