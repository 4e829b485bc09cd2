package entity

// AtelierCapaciteMois is the configured monthly capacity of a workshop,
// used by the occupancy statistic as the denominator.
type AtelierCapaciteMois struct {
	ID        int `gorm:"primaryKey;autoIncrement" json:"id"`
	AtelierID int `gorm:"not null;index:idx_capacite_atelier_mois,unique" json:"atelier_id"`
	Annee     int `gorm:"not null;index:idx_capacite_atelier_mois,unique" json:"annee"`
	Mois      int `gorm:"not null;index:idx_capacite_atelier_mois,unique" json:"mois"`
	Capacite  int `gorm:"not null;default:0" json:"capacite"`

	// Relationships
	Atelier Atelier `gorm:"foreignKey:AtelierID" json:"atelier,omitempty"`
}

func (AtelierCapaciteMois) TableName() string {
	return "atelier_capacites_mois"
}
