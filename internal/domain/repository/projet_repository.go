package repository

import (
	"stats-impact-backend/internal/domain/entity"

	"gorm.io/gorm"
)

type ProjetRepository interface {
	FindAll(db *gorm.DB, secteur string) ([]entity.Projet, error)
	FindByID(db *gorm.DB, id int) (*entity.Projet, error)
}
