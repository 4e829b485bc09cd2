package repository

import (
	"stats-impact-backend/internal/domain/entity"
	domainRepo "stats-impact-backend/internal/domain/repository"

	"gorm.io/gorm"
)

type objectifRepository struct{}

func NewObjectifRepository() domainRepo.ObjectifRepository {
	return &objectifRepository{}
}

// The hierarchy is at most three levels deep: general objectives hold
// specific ones, which hold operational ones.
func preloadTree(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Competences").
		Preload("Enfants.Competences").
		Preload("Enfants.Enfants.Competences")
}

func (r *objectifRepository) FindByProjetID(db *gorm.DB, projetID int) ([]entity.Objectif, error) {
	var objectifs []entity.Objectif
	err := preloadTree(db).
		Where("projet_id = ? AND parent_id IS NULL", projetID).
		Order("created_at ASC").
		Find(&objectifs).Error
	if err != nil {
		return nil, err
	}
	return objectifs, nil
}

func (r *objectifRepository) FindByAtelierID(db *gorm.DB, atelierID int) ([]entity.Objectif, error) {
	var objectifs []entity.Objectif
	err := preloadTree(db).
		Where("atelier_id = ? AND parent_id IS NULL", atelierID).
		Order("created_at ASC").
		Find(&objectifs).Error
	if err != nil {
		return nil, err
	}
	return objectifs, nil
}
