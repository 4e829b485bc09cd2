package repository

import (
	"stats-impact-backend/internal/domain/entity"

	"gorm.io/gorm"
)

type SessionRepository interface {
	FindAll(db *gorm.DB) ([]entity.SessionActivite, error)
	DistinctYears(db *gorm.DB, secteur string) ([]int, error)
}
