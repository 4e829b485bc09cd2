package converter

import (
	"stats-impact-backend/internal/delivery/dto"
	"stats-impact-backend/internal/domain/entity"
)

// ParticipantToResponse converts a Participant entity to ParticipantResponse DTO
func ParticipantToResponse(participant *entity.Participant) *dto.ParticipantResponse {
	if participant == nil {
		return nil
	}

	quartier := ""
	if participant.Quartier != nil {
		quartier = participant.Quartier.Nom
	}

	return &dto.ParticipantResponse{
		ID:            participant.ID,
		Nom:           participant.Nom,
		Prenom:        participant.Prenom,
		Email:         participant.Email,
		Telephone:     participant.Telephone,
		Ville:         participant.Ville,
		Genre:         participant.Genre,
		TypePublic:    participant.EffectiveTypePublic(),
		DateNaissance: participant.DateNaissance,
		Quartier:      quartier,
		CreatedAt:     participant.CreatedAt,
		UpdatedAt:     participant.UpdatedAt,
	}
}
