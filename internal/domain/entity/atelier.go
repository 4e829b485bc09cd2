package entity

import "time"

// Atelier is a workshop offering under which sessions run. Soft-deleted
// ateliers are excluded from every aggregation.
type Atelier struct {
	ID          int       `gorm:"primaryKey;autoIncrement" json:"id"`
	Nom         string    `gorm:"type:varchar(255);not null" json:"nom"`
	Secteur     string    `gorm:"type:varchar(100);not null;index" json:"secteur"`
	TypeAtelier string    `gorm:"type:varchar(100)" json:"type_atelier,omitempty"`
	IsDeleted   bool      `gorm:"not null;default:false;index" json:"is_deleted"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Sessions []SessionActivite `gorm:"foreignKey:AtelierID" json:"sessions,omitempty"`
}

func (Atelier) TableName() string {
	return "ateliers_activite"
}
