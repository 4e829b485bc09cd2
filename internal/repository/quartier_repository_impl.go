package repository

import (
	"stats-impact-backend/internal/domain/entity"
	domainRepo "stats-impact-backend/internal/domain/repository"

	"gorm.io/gorm"
)

type quartierRepository struct{}

func NewQuartierRepository() domainRepo.QuartierRepository {
	return &quartierRepository{}
}

func (r *quartierRepository) FindAll(db *gorm.DB) ([]entity.Quartier, error) {
	var quartiers []entity.Quartier
	err := db.Order("nom ASC").Find(&quartiers).Error
	if err != nil {
		return nil, err
	}
	return quartiers, nil
}
