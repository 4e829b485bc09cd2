package entity

type Referentiel struct {
	ID  int    `gorm:"primaryKey;autoIncrement" json:"id"`
	Nom string `gorm:"type:varchar(255);not null" json:"nom"`

	// Relationships
	Competences []Competence `gorm:"foreignKey:ReferentielID" json:"competences,omitempty"`
}

func (Referentiel) TableName() string {
	return "referentiels"
}

type Competence struct {
	ID            int    `gorm:"primaryKey;autoIncrement" json:"id"`
	ReferentielID int    `gorm:"not null;index" json:"referentiel_id"`
	Code          string `gorm:"type:varchar(50);not null" json:"code"`
	Nom           string `gorm:"type:varchar(255);not null" json:"nom"`

	// Relationships
	Referentiel Referentiel `gorm:"foreignKey:ReferentielID" json:"referentiel,omitempty"`
}

func (Competence) TableName() string {
	return "competences"
}
