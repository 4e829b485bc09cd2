package usecase

import (
	"context"

	"stats-impact-backend/internal/converter"
	"stats-impact-backend/internal/domain/repository"
	"stats-impact-backend/internal/stats"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// snapshotLoader pulls the four aggregation tables out of Postgres and hands
// the engine its read model. Shared by the dashboard, export and pedagogy
// usecases.
type snapshotLoader struct {
	db              *gorm.DB
	log             *logrus.Logger
	atelierRepo     repository.AtelierRepository
	sessionRepo     repository.SessionRepository
	presenceRepo    repository.PresenceRepository
	participantRepo repository.ParticipantRepository
}

func (l *snapshotLoader) load(ctx context.Context) (*stats.Snapshot, error) {
	db := l.db.WithContext(ctx)

	ateliers, err := l.atelierRepo.FindAllActive(db)
	if err != nil {
		l.log.Warnf("Failed to load ateliers: %+v", err)
		return nil, err
	}

	sessions, err := l.sessionRepo.FindAll(db)
	if err != nil {
		l.log.Warnf("Failed to load sessions: %+v", err)
		return nil, err
	}

	presences, err := l.presenceRepo.FindAll(db)
	if err != nil {
		l.log.Warnf("Failed to load presences: %+v", err)
		return nil, err
	}

	participants, err := l.participantRepo.FindAll(db)
	if err != nil {
		l.log.Warnf("Failed to load participants: %+v", err)
		return nil, err
	}

	return converter.BuildSnapshot(ateliers, sessions, presences, participants), nil
}
