package repository

import (
	"stats-impact-backend/internal/domain/entity"
	domainRepo "stats-impact-backend/internal/domain/repository"

	"gorm.io/gorm"
)

type sessionRepository struct{}

func NewSessionRepository() domainRepo.SessionRepository {
	return &sessionRepository{}
}

func (r *sessionRepository) FindAll(db *gorm.DB) ([]entity.SessionActivite, error) {
	var sessions []entity.SessionActivite
	err := db.Find(&sessions).Error
	if err != nil {
		return nil, err
	}
	return sessions, nil
}

// DistinctYears lists years that carry at least one dated session, optionally
// restricted to one sector. RDV dates take precedence over collective dates.
func (r *sessionRepository) DistinctYears(db *gorm.DB, secteur string) ([]int, error) {
	var years []int
	query := db.Model(&entity.SessionActivite{}).
		Select("DISTINCT EXTRACT(YEAR FROM COALESCE(rdv_date, date_session))::int AS annee").
		Where("COALESCE(rdv_date, date_session) IS NOT NULL")
	if secteur != "" {
		query = query.Where("secteur = ?", secteur)
	}
	err := query.Order("annee DESC").Pluck("annee", &years).Error
	if err != nil {
		return nil, err
	}
	return years, nil
}
