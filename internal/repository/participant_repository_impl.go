package repository

import (
	"errors"

	"stats-impact-backend/internal/domain/entity"
	domainRepo "stats-impact-backend/internal/domain/repository"

	"gorm.io/gorm"
)

type participantRepository struct{}

func NewParticipantRepository() domainRepo.ParticipantRepository {
	return &participantRepository{}
}

func (r *participantRepository) FindAll(db *gorm.DB) ([]entity.Participant, error) {
	var participants []entity.Participant
	err := db.Preload("Quartier").Find(&participants).Error
	if err != nil {
		return nil, err
	}
	return participants, nil
}

func (r *participantRepository) FindByID(db *gorm.DB, id int) (*entity.Participant, error) {
	var participant entity.Participant
	err := db.Preload("Quartier").Where("id = ?", id).First(&participant).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &participant, nil
}

func (r *participantRepository) Update(db *gorm.DB, participant *entity.Participant) error {
	return db.Save(participant).Error
}

func (r *participantRepository) Delete(db *gorm.DB, participant *entity.Participant) error {
	return db.Delete(participant).Error
}
