package repository

import (
	"stats-impact-backend/internal/domain/entity"
	domainRepo "stats-impact-backend/internal/domain/repository"

	"gorm.io/gorm"
)

type capaciteRepository struct{}

func NewCapaciteRepository() domainRepo.CapaciteRepository {
	return &capaciteRepository{}
}

func (r *capaciteRepository) FindAll(db *gorm.DB) ([]entity.AtelierCapaciteMois, error) {
	var capacites []entity.AtelierCapaciteMois
	err := db.Order("annee ASC, mois ASC").Find(&capacites).Error
	if err != nil {
		return nil, err
	}
	return capacites, nil
}
