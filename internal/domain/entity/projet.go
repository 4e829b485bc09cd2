package entity

import "time"

// Projet groups general objectives for the pedagogical reporting path.
type Projet struct {
	ID        int       `gorm:"primaryKey;autoIncrement" json:"id"`
	Nom       string    `gorm:"type:varchar(255);not null" json:"nom"`
	Secteur   string    `gorm:"type:varchar(100);not null;index" json:"secteur"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`

	// Relationships
	Objectifs []Objectif `gorm:"foreignKey:ProjetID" json:"objectifs,omitempty"`
}

func (Projet) TableName() string {
	return "projets"
}
