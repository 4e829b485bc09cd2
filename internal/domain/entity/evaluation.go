package entity

import "time"

// EtatValide is the threshold state: a competency evaluation counts as
// validated from this state upward.
const EtatValide = 2

type Evaluation struct {
	ID             int        `gorm:"primaryKey;autoIncrement" json:"id"`
	ParticipantID  int        `gorm:"not null;index" json:"participant_id"`
	SessionID      *int       `gorm:"index" json:"session_id,omitempty"`
	CompetenceID   int        `gorm:"not null;index" json:"competence_id"`
	Etat           int        `gorm:"not null;default:0" json:"etat"`
	DateEvaluation *time.Time `gorm:"type:date" json:"date_evaluation,omitempty"`

	// Relationships
	Participant Participant `gorm:"foreignKey:ParticipantID" json:"participant,omitempty"`
	Competence  Competence  `gorm:"foreignKey:CompetenceID" json:"competence,omitempty"`
}

func (Evaluation) TableName() string {
	return "evaluations"
}

func (e *Evaluation) Validated() bool {
	return e.Etat >= EtatValide
}
