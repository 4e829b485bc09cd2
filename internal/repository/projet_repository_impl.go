package repository

import (
	"errors"

	"stats-impact-backend/internal/domain/entity"
	domainRepo "stats-impact-backend/internal/domain/repository"

	"gorm.io/gorm"
)

type projetRepository struct{}

func NewProjetRepository() domainRepo.ProjetRepository {
	return &projetRepository{}
}

func (r *projetRepository) FindAll(db *gorm.DB, secteur string) ([]entity.Projet, error) {
	var projets []entity.Projet
	query := db.Order("nom ASC")
	if secteur != "" {
		query = query.Where("secteur = ?", secteur)
	}
	err := query.Find(&projets).Error
	if err != nil {
		return nil, err
	}
	return projets, nil
}

func (r *projetRepository) FindByID(db *gorm.DB, id int) (*entity.Projet, error) {
	var projet entity.Projet
	err := db.Where("id = ?", id).First(&projet).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &projet, nil
}
