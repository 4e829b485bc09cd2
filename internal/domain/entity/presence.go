package entity

import "time"

// PresenceActivite records one participant attending one session (émargement).
// The schema does not enforce uniqueness on (participant, session); the
// aggregation engine deduplicates where uniqueness matters.
type PresenceActivite struct {
	ID            int       `gorm:"primaryKey;autoIncrement" json:"id"`
	ParticipantID int       `gorm:"not null;index" json:"participant_id"`
	SessionID     int       `gorm:"not null;index" json:"session_id"`
	Motif         string    `gorm:"type:varchar(255)" json:"motif,omitempty"`
	MotifAutre    string    `gorm:"type:varchar(255)" json:"motif_autre,omitempty"`
	SignaturePath string    `gorm:"type:text" json:"-"`
	CreatedAt     time.Time `gorm:"autoCreateTime;index" json:"created_at"`

	// Relationships
	Participant Participant     `gorm:"foreignKey:ParticipantID" json:"participant,omitempty"`
	Session     SessionActivite `gorm:"foreignKey:SessionID" json:"session,omitempty"`
}

func (PresenceActivite) TableName() string {
	return "presences_activite"
}
