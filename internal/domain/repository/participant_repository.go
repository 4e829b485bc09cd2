package repository

import (
	"stats-impact-backend/internal/domain/entity"

	"gorm.io/gorm"
)

type ParticipantRepository interface {
	FindAll(db *gorm.DB) ([]entity.Participant, error)
	FindByID(db *gorm.DB, id int) (*entity.Participant, error)
	Update(db *gorm.DB, participant *entity.Participant) error
	Delete(db *gorm.DB, participant *entity.Participant) error
}
