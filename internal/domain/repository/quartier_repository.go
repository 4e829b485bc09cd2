package repository

import (
	"stats-impact-backend/internal/domain/entity"

	"gorm.io/gorm"
)

type QuartierRepository interface {
	FindAll(db *gorm.DB) ([]entity.Quartier, error)
}
