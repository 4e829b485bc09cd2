package entity

type Quartier struct {
	ID  int    `gorm:"primaryKey;autoIncrement" json:"id"`
	Nom string `gorm:"type:varchar(255);not null" json:"nom"`
}

func (Quartier) TableName() string {
	return "quartiers"
}
