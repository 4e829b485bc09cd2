package repository

import (
	"errors"

	"stats-impact-backend/internal/domain/entity"
	domainRepo "stats-impact-backend/internal/domain/repository"

	"gorm.io/gorm"
)

type atelierRepository struct{}

func NewAtelierRepository() domainRepo.AtelierRepository {
	return &atelierRepository{}
}

func (r *atelierRepository) FindAllActive(db *gorm.DB) ([]entity.Atelier, error) {
	var ateliers []entity.Atelier
	err := db.Where("is_deleted = ?", false).
		Order("secteur ASC, nom ASC").
		Find(&ateliers).Error
	if err != nil {
		return nil, err
	}
	return ateliers, nil
}

func (r *atelierRepository) FindByID(db *gorm.DB, id int) (*entity.Atelier, error) {
	var atelier entity.Atelier
	err := db.Where("id = ?", id).First(&atelier).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &atelier, nil
}

func (r *atelierRepository) DistinctSecteurs(db *gorm.DB) ([]string, error) {
	var secteurs []string
	err := db.Model(&entity.Atelier{}).
		Where("is_deleted = ? AND secteur <> ''", false).
		Distinct("secteur").
		Order("secteur ASC").
		Pluck("secteur", &secteurs).Error
	if err != nil {
		return nil, err
	}
	return secteurs, nil
}
