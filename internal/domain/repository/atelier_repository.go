package repository

import (
	"stats-impact-backend/internal/domain/entity"

	"gorm.io/gorm"
)

type AtelierRepository interface {
	FindAllActive(db *gorm.DB) ([]entity.Atelier, error)
	FindByID(db *gorm.DB, id int) (*entity.Atelier, error)
	DistinctSecteurs(db *gorm.DB) ([]string, error)
}
