package usecase

import (
	"context"
	"errors"
	"strconv"
	"time"

	"stats-impact-backend/internal/converter"
	"stats-impact-backend/internal/delivery/dto"
	"stats-impact-backend/internal/domain/entity"
	"stats-impact-backend/internal/domain/repository"
	"stats-impact-backend/internal/service"
	"stats-impact-backend/internal/stats"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrParticipantNotFound = errors.New("participant not found")
	ErrQuartierNotFound    = errors.New("quartier not found")
)

type ParticipantUsecase interface {
	GetByID(ctx context.Context, caller stats.Caller, id int) (*dto.ParticipantResponse, error)
	Update(ctx context.Context, caller stats.Caller, userID uuid.UUID, id int, req *dto.UpdateParticipantRequest) (*dto.ParticipantResponse, error)
	Delete(ctx context.Context, caller stats.Caller, userID uuid.UUID, id int) error
	Quartiers(ctx context.Context) ([]entity.Quartier, error)
}

type participantUsecase struct {
	db              *gorm.DB
	log             *logrus.Logger
	participantRepo repository.ParticipantRepository
	presenceRepo    repository.PresenceRepository
	quartierRepo    repository.QuartierRepository
	auditService    service.AuditService
	cache           *service.StatsCacheService
}

func NewParticipantUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	participantRepo repository.ParticipantRepository,
	presenceRepo repository.PresenceRepository,
	quartierRepo repository.QuartierRepository,
	auditService service.AuditService,
	cache *service.StatsCacheService,
) ParticipantUsecase {
	return &participantUsecase{
		db:              db,
		log:             log,
		participantRepo: participantRepo,
		presenceRepo:    presenceRepo,
		quartierRepo:    quartierRepo,
		auditService:    auditService,
		cache:           cache,
	}
}

func (u *participantUsecase) GetByID(ctx context.Context, caller stats.Caller, id int) (*dto.ParticipantResponse, error) {
	db := u.db.WithContext(ctx)

	participant, err := u.participantRepo.FindByID(db, id)
	if err != nil {
		u.log.Warnf("Failed to find participant: %+v", err)
		return nil, err
	}
	if participant == nil {
		return nil, ErrParticipantNotFound
	}

	if err := u.checkAccess(db, caller, id); err != nil {
		return nil, err
	}

	return converter.ParticipantToResponse(participant), nil
}

func (u *participantUsecase) Update(ctx context.Context, caller stats.Caller, userID uuid.UUID, id int, req *dto.UpdateParticipantRequest) (*dto.ParticipantResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	participant, err := u.participantRepo.FindByID(tx, id)
	if err != nil {
		u.log.Warnf("Failed to find participant: %+v", err)
		return nil, err
	}
	if participant == nil {
		return nil, ErrParticipantNotFound
	}

	if err := u.checkAccess(tx, caller, id); err != nil {
		return nil, err
	}

	oldValue := converter.ParticipantToResponse(participant)

	participant.Nom = req.Nom
	participant.Prenom = req.Prenom
	participant.Email = req.Email
	participant.Telephone = req.Telephone
	participant.Ville = req.Ville
	participant.Genre = req.Genre
	participant.TypePublic = req.TypePublic
	participant.QuartierID = req.QuartierID
	if req.DateNaissance != "" {
		dob, err := time.Parse("2006-01-02", req.DateNaissance)
		if err == nil {
			participant.DateNaissance = &dob
		}
	} else {
		participant.DateNaissance = nil
	}

	if err := u.participantRepo.Update(tx, participant); err != nil {
		if isForeignKeyError(err, "quartier") {
			return nil, ErrQuartierNotFound
		}
		u.log.Warnf("Failed to update participant: %+v", err)
		return nil, err
	}

	if err := u.auditService.LogUpdate(ctx, tx, &userID, entity.AuditActionParticipantUpdate,
		"participant", strconv.Itoa(id), oldValue, req); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	u.cache.InvalidateDashboard(ctx)

	// Reload so the quartier relationship reflects the new assignment
	updated, err := u.participantRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil || updated == nil {
		return converter.ParticipantToResponse(participant), nil
	}
	return converter.ParticipantToResponse(updated), nil
}

// Delete purges a participant and their presences. A sector-restricted caller
// may only do this when every presence of the participant sits in their own
// sector.
func (u *participantUsecase) Delete(ctx context.Context, caller stats.Caller, userID uuid.UUID, id int) error {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	participant, err := u.participantRepo.FindByID(tx, id)
	if err != nil {
		u.log.Warnf("Failed to find participant: %+v", err)
		return err
	}
	if participant == nil {
		return ErrParticipantNotFound
	}

	secteurs, err := u.presenceRepo.DistinctSecteursForParticipant(tx, id)
	if err != nil {
		u.log.Warnf("Failed to list participant secteurs: %+v", err)
		return err
	}
	if !stats.CanDeleteParticipant(secteurs, caller) {
		return ErrForbidden
	}

	oldValue := converter.ParticipantToResponse(participant)

	if err := u.presenceRepo.DeleteByParticipantID(tx, id); err != nil {
		u.log.Warnf("Failed to delete presences: %+v", err)
		return err
	}

	if err := u.participantRepo.Delete(tx, participant); err != nil {
		u.log.Warnf("Failed to delete participant: %+v", err)
		return err
	}

	if err := u.auditService.LogDelete(ctx, tx, &userID, entity.AuditActionParticipantDelete,
		"participant", strconv.Itoa(id), oldValue); err != nil {
		return err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}

	u.cache.InvalidateDashboard(ctx)

	return nil
}

// Quartiers lists the neighborhoods selectable on the participant edit form.
func (u *participantUsecase) Quartiers(ctx context.Context) ([]entity.Quartier, error) {
	quartiers, err := u.quartierRepo.FindAll(u.db.WithContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to list quartiers: %+v", err)
		return nil, err
	}
	return quartiers, nil
}

// checkAccess enforces the roster rule: without participants:view_all a
// caller only reaches participants whose presences touch their own sector.
// Participants without any presence are reachable by everyone who got here.
func (u *participantUsecase) checkAccess(db *gorm.DB, caller stats.Caller, id int) error {
	if caller.Can(stats.CapParticipantsViewAll) {
		return nil
	}

	secteurs, err := u.presenceRepo.DistinctSecteursForParticipant(db, id)
	if err != nil {
		u.log.Warnf("Failed to list participant secteurs: %+v", err)
		return err
	}
	if len(secteurs) == 0 {
		return nil
	}
	for _, s := range secteurs {
		if s == caller.SecteurAssigne {
			return nil
		}
	}
	return ErrForbidden
}
