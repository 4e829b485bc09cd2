package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"stats-impact-backend/internal/delivery/dto"
	"stats-impact-backend/internal/delivery/http/middleware"
	"stats-impact-backend/internal/usecase"
	"stats-impact-backend/pkg/response"
	"stats-impact-backend/pkg/validator"

	"github.com/gorilla/mux"
)

type ParticipantHandler struct {
	participantUsecase usecase.ParticipantUsecase
	validator          *validator.CustomValidator
}

func NewParticipantHandler(participantUsecase usecase.ParticipantUsecase, validator *validator.CustomValidator) *ParticipantHandler {
	return &ParticipantHandler{
		participantUsecase: participantUsecase,
		validator:          validator,
	}
}

// GetQuartiers lists the selectable neighborhoods
// @Summary List quartiers
// @Tags Participants
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response
// @Router /participants/quartiers [get]
func (h *ParticipantHandler) GetQuartiers(w http.ResponseWriter, r *http.Request) {
	quartiers, err := h.participantUsecase.Quartiers(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to list quartiers")
		return
	}

	response.Success(w, http.StatusOK, "Quartiers retrieved successfully", quartiers)
}

// GetParticipant handles reading one participant
// @Summary Get participant
// @Tags Participants
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /participants/{id} [get]
func (h *ParticipantHandler) GetParticipant(w http.ResponseWriter, r *http.Request) {
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

	participant, err := h.participantUsecase.GetByID(r.Context(), caller, id)
	if err != nil {
		switch err {
		case usecase.ErrParticipantNotFound:
			response.NotFound(w, "Participant not found")
		case usecase.ErrForbidden:
			response.Forbidden(w, "Participant is outside your sector")
		default:
			response.InternalServerError(w, "Failed to get participant")
		}
		return
	}

	response.Success(w, http.StatusOK, "Participant retrieved successfully", participant)
}

// UpdateParticipant handles editing a participant's identity fields
// @Summary Update participant
// @Tags Participants
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.UpdateParticipantRequest true "Update Participant Request"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /participants/{id} [put]
func (h *ParticipantHandler) UpdateParticipant(w http.ResponseWriter, r *http.Request) {
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

	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil || id <= 0 {
		response.Error(w, http.StatusBadRequest, "Invalid participant ID", nil)
		return
	}

	var req dto.UpdateParticipantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	participant, err := h.participantUsecase.Update(r.Context(), caller, userID, id, &req)
	if err != nil {
		switch err {
		case usecase.ErrParticipantNotFound:
			response.NotFound(w, "Participant not found")
		case usecase.ErrForbidden:
			response.Forbidden(w, "Participant is outside your sector")
		case usecase.ErrQuartierNotFound:
			response.Error(w, http.StatusBadRequest, "Quartier not found", nil)
		default:
			response.InternalServerError(w, "Failed to update participant")
		}
		return
	}

	response.Success(w, http.StatusOK, "Participant updated successfully", participant)
}

// DeleteParticipant handles purging a participant and their presences
// @Summary Delete participant
// @Tags Participants
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /participants/{id} [delete]
func (h *ParticipantHandler) DeleteParticipant(w http.ResponseWriter, r *http.Request) {
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

	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil || id <= 0 {
		response.Error(w, http.StatusBadRequest, "Invalid participant ID", nil)
		return
	}

	if err := h.participantUsecase.Delete(r.Context(), caller, userID, id); err != nil {
		switch err {
		case usecase.ErrParticipantNotFound:
			response.NotFound(w, "Participant not found")
		case usecase.ErrForbidden:
			response.Forbidden(w, "Participant has presences outside your sector")
		default:
			response.InternalServerError(w, "Failed to delete participant")
		}
		return
	}

	response.Success(w, http.StatusOK, "Participant deleted successfully", nil)
}
