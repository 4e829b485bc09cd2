package repository

import (
	"stats-impact-backend/internal/domain/entity"

	"gorm.io/gorm"
)

type PresenceRepository interface {
	FindAll(db *gorm.DB) ([]entity.PresenceActivite, error)
	DistinctSecteursForParticipant(db *gorm.DB, participantID int) ([]string, error)
	DeleteByParticipantID(db *gorm.DB, participantID int) error
}
