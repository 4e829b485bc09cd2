package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"stats-impact-backend/internal/converter"
	"stats-impact-backend/internal/delivery/dto"
	"stats-impact-backend/internal/domain/repository"
	"stats-impact-backend/internal/service"
	"stats-impact-backend/internal/stats"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// ErrForbidden marks a request for data outside the caller's scope.
var ErrForbidden = errors.New("forbidden")

type StatsUsecase interface {
	Dashboard(ctx context.Context, caller stats.Caller, query url.Values) (*dto.DashboardResponse, error)
	Magato(ctx context.Context, caller stats.Caller, query url.Values) (*dto.MagatoResponse, error)
	Secteurs(ctx context.Context, caller stats.Caller) (*dto.SecteurListResponse, error)
	AvailableYears(ctx context.Context, caller stats.Caller) (*dto.YearListResponse, error)
}

type statsUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	loader       snapshotLoader
	atelierRepo  repository.AtelierRepository
	sessionRepo  repository.SessionRepository
	capaciteRepo repository.CapaciteRepository
	cache        *service.StatsCacheService
}

func NewStatsUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	atelierRepo repository.AtelierRepository,
	sessionRepo repository.SessionRepository,
	presenceRepo repository.PresenceRepository,
	participantRepo repository.ParticipantRepository,
	capaciteRepo repository.CapaciteRepository,
	cache *service.StatsCacheService,
) StatsUsecase {
	return &statsUsecase{
		db:  db,
		log: log,
		loader: snapshotLoader{
			db:              db,
			log:             log,
			atelierRepo:     atelierRepo,
			sessionRepo:     sessionRepo,
			presenceRepo:    presenceRepo,
			participantRepo: participantRepo,
		},
		atelierRepo:  atelierRepo,
		sessionRepo:  sessionRepo,
		capaciteRepo: capaciteRepo,
		cache:        cache,
	}
}

// Dashboard computes the full statistics payload for the normalized filter.
// An open date range defaults to the current calendar year. Results are
// cached per effective scope.
func (u *statsUsecase) Dashboard(ctx context.Context, caller stats.Caller, query url.Values) (*dto.DashboardResponse, error) {
	f := stats.Normalize(query, stats.DashboardLimits)
	f = f.DefaultToYear(time.Now())
	f = stats.ApplyScope(f, caller)

	cacheKey := u.cache.DashboardKey(f)
	var cached dto.DashboardResponse
	if u.cache.Get(ctx, cacheKey, &cached) {
		return &cached, nil
	}

	snap, err := u.loader.load(ctx)
	if err != nil {
		return nil, err
	}

	capacites, err := u.capaciteRepo.FindAll(u.db.WithContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to load capacities: %+v", err)
		return nil, err
	}

	resp := &dto.DashboardResponse{
		Periode:        periodeOf(f),
		Volume:         stats.VolumeActivity(snap, f),
		Frequentation:  stats.ParticipationFrequency(snap, f),
		Transversalite: stats.Transversalite(snap, f),
		Demographie:    stats.Demography(snap, f, time.Now()),
		Occupation:     stats.Occupancy(snap, f, converter.CapacitesToMap(capacites)),
	}

	u.cache.Set(ctx, cacheKey, resp)

	return resp, nil
}

// Magato computes the cross-tab view: the macro tables or the
// participant/session presence matrix, depending on the requested view.
func (u *statsUsecase) Magato(ctx context.Context, caller stats.Caller, query url.Values) (*dto.MagatoResponse, error) {
	f := stats.Normalize(query, stats.DashboardLimits)
	f = f.DefaultToYear(time.Now())

	snap, err := u.loader.load(ctx)
	if err != nil {
		return nil, err
	}

	result := stats.Magato(snap, f, caller)
	return magatoToResponse(result), nil
}

// Secteurs lists the sectors the caller may filter on. A sector-restricted
// user only ever sees their own.
func (u *statsUsecase) Secteurs(ctx context.Context, caller stats.Caller) (*dto.SecteurListResponse, error) {
	if !caller.Can(stats.CapAllSecteurs) && caller.SecteurAssigne != "" {
		return &dto.SecteurListResponse{Secteurs: []string{caller.SecteurAssigne}}, nil
	}

	secteurs, err := u.atelierRepo.DistinctSecteurs(u.db.WithContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to list secteurs: %+v", err)
		return nil, err
	}
	return &dto.SecteurListResponse{Secteurs: secteurs}, nil
}

// AvailableYears lists years carrying dated sessions within the caller's
// scope, most recent first.
func (u *statsUsecase) AvailableYears(ctx context.Context, caller stats.Caller) (*dto.YearListResponse, error) {
	secteur := stats.EffectiveSecteur(stats.Filter{}, caller)
	years, err := u.sessionRepo.DistinctYears(u.db.WithContext(ctx), secteur)
	if err != nil {
		u.log.Warnf("Failed to list session years: %+v", err)
		return nil, err
	}
	return &dto.YearListResponse{Years: years}, nil
}

func periodeOf(f stats.Filter) dto.PeriodeResponse {
	p := dto.PeriodeResponse{Secteur: f.Secteur}
	if f.DateFrom != nil {
		p.DateFrom = f.DateFrom.Format("2006-01-02")
	}
	if f.DateTo != nil {
		p.DateTo = f.DateTo.Format("2006-01-02")
	}
	return p
}

func magatoToResponse(result stats.MagatoResult) *dto.MagatoResponse {
	resp := &dto.MagatoResponse{
		View:               result.View,
		Restricted:         result.Restricted,
		Macro:              result.Macro,
		Participants:       result.Participants,
		Sessions:           result.Sessions,
		SessionsCapped:     result.SessionsCapped,
		ParticipantsCapped: result.ParticipantsCapped,
	}
	if len(result.Matrix) > 0 {
		resp.Matrix = make(map[string]bool, len(result.Matrix))
		for key, present := range result.Matrix {
			resp.Matrix[matrixCellKey(key)] = present
		}
	}
	return resp
}

// matrixCellKey flattens a matrix cell to its "pid_sid" wire form.
func matrixCellKey(k stats.MatrixKey) string {
	return fmt.Sprintf("%d_%d", k.ParticipantID, k.SessionID)
}
