package repository

import (
	"stats-impact-backend/internal/domain/entity"
	domainRepo "stats-impact-backend/internal/domain/repository"

	"gorm.io/gorm"
)

type evaluationRepository struct{}

func NewEvaluationRepository() domainRepo.EvaluationRepository {
	return &evaluationRepository{}
}

func (r *evaluationRepository) FindValidated(db *gorm.DB) ([]entity.Evaluation, error) {
	var evaluations []entity.Evaluation
	err := db.Where("etat >= ?", entity.EtatValide).Find(&evaluations).Error
	if err != nil {
		return nil, err
	}
	return evaluations, nil
}

func (r *evaluationRepository) BilanByParticipantID(db *gorm.DB, participantID int) ([]domainRepo.BilanRow, error) {
	var rows []domainRepo.BilanRow
	err := db.Model(&entity.Evaluation{}).
		Select(`evaluations.participant_id,
			referentiels.nom AS referentiel,
			competences.code AS competence_code,
			competences.nom AS competence_nom,
			evaluations.date_evaluation,
			ateliers_activite.nom AS atelier_nom`).
		Joins("JOIN competences ON competences.id = evaluations.competence_id").
		Joins("JOIN referentiels ON referentiels.id = competences.referentiel_id").
		Joins("LEFT JOIN sessions_activite ON sessions_activite.id = evaluations.session_id").
		Joins("LEFT JOIN ateliers_activite ON ateliers_activite.id = sessions_activite.atelier_id").
		Where("evaluations.participant_id = ? AND evaluations.etat >= ?", participantID, entity.EtatValide).
		Order("referentiels.nom ASC, competences.code ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
