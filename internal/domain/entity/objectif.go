package entity

import "time"

// Objective types. General and specific objectives aggregate their children;
// operational objectives point at a session and a set of competencies.
const (
	ObjectifTypeGeneral      = "general"
	ObjectifTypeSpecifique   = "specifique"
	ObjectifTypeOperationnel = "operationnel"
)

type Objectif struct {
	ID              int       `gorm:"primaryKey;autoIncrement" json:"id"`
	ProjetID        *int      `gorm:"index" json:"projet_id,omitempty"`
	AtelierID       *int      `gorm:"index" json:"atelier_id,omitempty"`
	ParentID        *int      `gorm:"index" json:"parent_id,omitempty"`
	Type            string    `gorm:"type:varchar(30);not null" json:"type"`
	Libelle         string    `gorm:"type:varchar(255);not null" json:"libelle"`
	SeuilValidation float64   `gorm:"not null;default:0" json:"seuil_validation"`
	SessionID       *int      `gorm:"index" json:"session_id,omitempty"`
	CreatedAt       time.Time `gorm:"autoCreateTime;index" json:"created_at"`

	// Relationships
	Enfants     []Objectif   `gorm:"foreignKey:ParentID" json:"enfants,omitempty"`
	Competences []Competence `gorm:"many2many:objectif_competences" json:"competences,omitempty"`
}

func (Objectif) TableName() string {
	return "objectifs"
}
