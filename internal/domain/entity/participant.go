package entity

import "time"

// TypePublicDefault is assumed when a participant has no public category.
const TypePublicDefault = "H"

type Participant struct {
	ID            int        `gorm:"primaryKey;autoIncrement" json:"id"`
	Nom           string     `gorm:"type:varchar(255);not null;index" json:"nom"`
	Prenom        string     `gorm:"type:varchar(255);index" json:"prenom"`
	Email         string     `gorm:"type:varchar(255)" json:"email,omitempty"`
	Telephone     string     `gorm:"type:varchar(50)" json:"telephone,omitempty"`
	Ville         string     `gorm:"type:varchar(255)" json:"ville,omitempty"`
	Genre         string     `gorm:"type:varchar(30)" json:"genre,omitempty"`
	TypePublic    string     `gorm:"type:varchar(10)" json:"type_public,omitempty"`
	DateNaissance *time.Time `gorm:"type:date" json:"date_naissance,omitempty"`
	QuartierID    *int       `gorm:"index" json:"quartier_id,omitempty"`
	CreatedAt     time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time  `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Quartier  *Quartier          `gorm:"foreignKey:QuartierID" json:"quartier,omitempty"`
	Presences []PresenceActivite `gorm:"foreignKey:ParticipantID" json:"presences,omitempty"`
}

func (Participant) TableName() string {
	return "participants"
}

// EffectiveTypePublic falls back to the default category when unset.
func (p *Participant) EffectiveTypePublic() string {
	if p.TypePublic == "" {
		return TypePublicDefault
	}
	return p.TypePublic
}
