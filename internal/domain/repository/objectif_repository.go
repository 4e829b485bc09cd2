package repository

import (
	"stats-impact-backend/internal/domain/entity"

	"gorm.io/gorm"
)

type ObjectifRepository interface {
	FindByProjetID(db *gorm.DB, projetID int) ([]entity.Objectif, error)
	FindByAtelierID(db *gorm.DB, atelierID int) ([]entity.Objectif, error)
}
