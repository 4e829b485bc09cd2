package repository

import (
	"stats-impact-backend/internal/domain/entity"

	"gorm.io/gorm"
)

type CapaciteRepository interface {
	FindAll(db *gorm.DB) ([]entity.AtelierCapaciteMois, error)
}
