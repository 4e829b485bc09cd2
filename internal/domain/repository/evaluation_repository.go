package repository

import (
	"time"

	"stats-impact-backend/internal/domain/entity"

	"gorm.io/gorm"
)

// BilanRow is one validated competency evaluation joined with its
// referential and the workshop the session belongs to.
type BilanRow struct {
	ParticipantID  int        `json:"participant_id"`
	Referentiel    string     `json:"referentiel"`
	CompetenceCode string     `json:"competence_code"`
	CompetenceNom  string     `json:"competence_nom"`
	DateEvaluation *time.Time `json:"date_evaluation,omitempty"`
	AtelierNom     string     `json:"atelier_nom"`
}

type EvaluationRepository interface {
	FindValidated(db *gorm.DB) ([]entity.Evaluation, error)
	BilanByParticipantID(db *gorm.DB, participantID int) ([]BilanRow, error)
}
