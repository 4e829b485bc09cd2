package entity

import "time"

// Session types: a session is either an individual appointment (RDV) or a
// collective session. The two variants carry their date/time in different
// columns; the RDV columns win when present.
const (
	SessionTypeRDV       = "rdv"
	SessionTypeCollectif = "collectif"
)

type SessionActivite struct {
	ID           int        `gorm:"primaryKey;autoIncrement" json:"id"`
	AtelierID    int        `gorm:"not null;index" json:"atelier_id"`
	SessionType  string     `gorm:"type:varchar(50)" json:"session_type,omitempty"`
	Statut       string     `gorm:"type:varchar(50)" json:"statut,omitempty"`
	Secteur      string     `gorm:"type:varchar(100);index" json:"secteur,omitempty"`
	DateSession  *time.Time `gorm:"type:date;index" json:"date_session,omitempty"`
	HeureDebut   string     `gorm:"type:varchar(5)" json:"heure_debut,omitempty"`
	HeureFin     string     `gorm:"type:varchar(5)" json:"heure_fin,omitempty"`
	RDVDate      *time.Time `gorm:"column:rdv_date;type:date;index" json:"rdv_date,omitempty"`
	RDVDebut     string     `gorm:"column:rdv_debut;type:varchar(5)" json:"rdv_debut,omitempty"`
	RDVFin       string     `gorm:"column:rdv_fin;type:varchar(5)" json:"rdv_fin,omitempty"`
	DureeMinutes int        `json:"duree_minutes,omitempty"`
	CreatedAt    time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time  `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Atelier   Atelier            `gorm:"foreignKey:AtelierID" json:"atelier,omitempty"`
	Presences []PresenceActivite `gorm:"foreignKey:SessionID" json:"presences,omitempty"`
}

func (SessionActivite) TableName() string {
	return "sessions_activite"
}

// EffectiveDate returns the RDV date when set, the collective session date
// otherwise. May be nil for draft sessions.
func (s *SessionActivite) EffectiveDate() *time.Time {
	if s.RDVDate != nil {
		return s.RDVDate
	}
	return s.DateSession
}

func (s *SessionActivite) EffectiveDebut() string {
	if s.RDVDebut != "" {
		return s.RDVDebut
	}
	return s.HeureDebut
}

func (s *SessionActivite) EffectiveFin() string {
	if s.RDVFin != "" {
		return s.RDVFin
	}
	return s.HeureFin
}
