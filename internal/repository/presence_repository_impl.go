package repository

import (
	"stats-impact-backend/internal/domain/entity"
	domainRepo "stats-impact-backend/internal/domain/repository"

	"gorm.io/gorm"
)

type presenceRepository struct{}

func NewPresenceRepository() domainRepo.PresenceRepository {
	return &presenceRepository{}
}

func (r *presenceRepository) FindAll(db *gorm.DB) ([]entity.PresenceActivite, error) {
	var presences []entity.PresenceActivite
	err := db.Find(&presences).Error
	if err != nil {
		return nil, err
	}
	return presences, nil
}

// DistinctSecteursForParticipant lists the sectors a participant has attended
// in, via the session each presence belongs to.
func (r *presenceRepository) DistinctSecteursForParticipant(db *gorm.DB, participantID int) ([]string, error) {
	var secteurs []string
	err := db.Model(&entity.PresenceActivite{}).
		Joins("JOIN sessions_activite ON sessions_activite.id = presences_activite.session_id").
		Where("presences_activite.participant_id = ? AND sessions_activite.secteur <> ''", participantID).
		Distinct("sessions_activite.secteur").
		Pluck("sessions_activite.secteur", &secteurs).Error
	if err != nil {
		return nil, err
	}
	return secteurs, nil
}

func (r *presenceRepository) DeleteByParticipantID(db *gorm.DB, participantID int) error {
	return db.Where("participant_id = ?", participantID).
		Delete(&entity.PresenceActivite{}).Error
}
