package usecase

import (
	"context"
	"errors"

	"stats-impact-backend/internal/converter"
	"stats-impact-backend/internal/delivery/dto"
	"stats-impact-backend/internal/domain/entity"
	"stats-impact-backend/internal/domain/repository"
	"stats-impact-backend/internal/stats"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrProjetNotFound  = errors.New("projet not found")
	ErrAtelierNotFound = errors.New("atelier not found")
)

type PedagogieUsecase interface {
	Projets(ctx context.Context, caller stats.Caller) ([]entity.Projet, error)
	ProjetSynthese(ctx context.Context, caller stats.Caller, projetID int) (*dto.ProjetSyntheseResponse, error)
	AtelierSynthese(ctx context.Context, caller stats.Caller, atelierID int) (*dto.AtelierSyntheseResponse, error)
	BilanParticipant(ctx context.Context, caller stats.Caller, participantID int) (*dto.BilanParticipantResponse, error)
}

type pedagogieUsecase struct {
	db             *gorm.DB
	log            *logrus.Logger
	projetRepo     repository.ProjetRepository
	atelierRepo    repository.AtelierRepository
	objectifRepo   repository.ObjectifRepository
	evaluationRepo repository.EvaluationRepository
	presenceRepo   repository.PresenceRepository
}

func NewPedagogieUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	projetRepo repository.ProjetRepository,
	atelierRepo repository.AtelierRepository,
	objectifRepo repository.ObjectifRepository,
	evaluationRepo repository.EvaluationRepository,
	presenceRepo repository.PresenceRepository,
) PedagogieUsecase {
	return &pedagogieUsecase{
		db:             db,
		log:            log,
		projetRepo:     projetRepo,
		atelierRepo:    atelierRepo,
		objectifRepo:   objectifRepo,
		evaluationRepo: evaluationRepo,
		presenceRepo:   presenceRepo,
	}
}

// Projets lists the pedagogical projects within the caller's scope.
func (u *pedagogieUsecase) Projets(ctx context.Context, caller stats.Caller) ([]entity.Projet, error) {
	secteur := stats.EffectiveSecteur(stats.Filter{}, caller)
	projets, err := u.projetRepo.FindAll(u.db.WithContext(ctx), secteur)
	if err != nil {
		u.log.Warnf("Failed to list projets: %+v", err)
		return nil, err
	}
	return projets, nil
}

// ProjetSynthese rolls up every objective tree of a project.
func (u *pedagogieUsecase) ProjetSynthese(ctx context.Context, caller stats.Caller, projetID int) (*dto.ProjetSyntheseResponse, error) {
	db := u.db.WithContext(ctx)

	projet, err := u.projetRepo.FindByID(db, projetID)
	if err != nil {
		u.log.Warnf("Failed to find projet: %+v", err)
		return nil, err
	}
	if projet == nil {
		return nil, ErrProjetNotFound
	}
	if !inScope(caller, projet.Secteur) {
		return nil, ErrForbidden
	}

	objectifs, err := u.objectifRepo.FindByProjetID(db, projetID)
	if err != nil {
		u.log.Warnf("Failed to load objectifs: %+v", err)
		return nil, err
	}

	results, err := u.rollUp(ctx, objectifs)
	if err != nil {
		return nil, err
	}

	return &dto.ProjetSyntheseResponse{
		ProjetID:  projet.ID,
		Nom:       projet.Nom,
		Secteur:   projet.Secteur,
		Objectifs: results,
	}, nil
}

// AtelierSynthese rolls up the objective trees attached directly to a workshop.
func (u *pedagogieUsecase) AtelierSynthese(ctx context.Context, caller stats.Caller, atelierID int) (*dto.AtelierSyntheseResponse, error) {
	db := u.db.WithContext(ctx)

	atelier, err := u.atelierRepo.FindByID(db, atelierID)
	if err != nil {
		u.log.Warnf("Failed to find atelier: %+v", err)
		return nil, err
	}
	if atelier == nil || atelier.IsDeleted {
		return nil, ErrAtelierNotFound
	}
	if !inScope(caller, atelier.Secteur) {
		return nil, ErrForbidden
	}

	objectifs, err := u.objectifRepo.FindByAtelierID(db, atelierID)
	if err != nil {
		u.log.Warnf("Failed to load objectifs: %+v", err)
		return nil, err
	}

	results, err := u.rollUp(ctx, objectifs)
	if err != nil {
		return nil, err
	}

	return &dto.AtelierSyntheseResponse{
		AtelierID: atelier.ID,
		Nom:       atelier.Nom,
		Secteur:   atelier.Secteur,
		Objectifs: results,
	}, nil
}

// BilanParticipant lists the validated competencies of one participant,
// grouped by referential.
func (u *pedagogieUsecase) BilanParticipant(ctx context.Context, caller stats.Caller, participantID int) (*dto.BilanParticipantResponse, error) {
	db := u.db.WithContext(ctx)

	if !caller.Can(stats.CapParticipantsViewAll) {
		secteurs, err := u.presenceRepo.DistinctSecteursForParticipant(db, participantID)
		if err != nil {
			u.log.Warnf("Failed to list participant secteurs: %+v", err)
			return nil, err
		}
		accessible := len(secteurs) == 0
		for _, s := range secteurs {
			if s == caller.SecteurAssigne {
				accessible = true
				break
			}
		}
		if !accessible {
			return nil, ErrForbidden
		}
	}

	rows, err := u.evaluationRepo.BilanByParticipantID(db, participantID)
	if err != nil {
		u.log.Warnf("Failed to load bilan rows: %+v", err)
		return nil, err
	}

	resp := &dto.BilanParticipantResponse{ParticipantID: participantID}
	for _, row := range rows {
		n := len(resp.Referentiels)
		if n == 0 || resp.Referentiels[n-1].Referentiel != row.Referentiel {
			resp.Referentiels = append(resp.Referentiels, dto.BilanReferentielResponse{
				Referentiel: row.Referentiel,
			})
			n++
		}
		ref := &resp.Referentiels[n-1]
		ref.Competences = append(ref.Competences, dto.BilanCompetenceResponse{
			Code:           row.CompetenceCode,
			Nom:            row.CompetenceNom,
			DateEvaluation: row.DateEvaluation,
			Atelier:        row.AtelierNom,
		})
	}
	return resp, nil
}

// rollUp computes a result for every node of the given objective trees.
func (u *pedagogieUsecase) rollUp(ctx context.Context, objectifs []entity.Objectif) ([]dto.ObjectifResponse, error) {
	db := u.db.WithContext(ctx)

	presenceRows, err := u.presenceRepo.FindAll(db)
	if err != nil {
		u.log.Warnf("Failed to load presences: %+v", err)
		return nil, err
	}
	presences := make([]stats.Presence, 0, len(presenceRows))
	for _, p := range presenceRows {
		presences = append(presences, stats.Presence{
			ID:            p.ID,
			ParticipantID: p.ParticipantID,
			SessionID:     p.SessionID,
		})
	}

	evaluations, err := u.evaluationRepo.FindValidated(db)
	if err != nil {
		u.log.Warnf("Failed to load evaluations: %+v", err)
		return nil, err
	}
	validated := converter.EvaluationsToSet(evaluations)

	out := make([]dto.ObjectifResponse, 0, len(objectifs))
	for i := range objectifs {
		node, err := u.rollUpNode(&objectifs[i], presences, validated)
		if err != nil {
			return nil, err
		}
		out = append(out, node)
	}
	return out, nil
}

func (u *pedagogieUsecase) rollUpNode(o *entity.Objectif, presences []stats.Presence, validated stats.EvaluationSet) (dto.ObjectifResponse, error) {
	result, err := stats.ObjectiveSuccess(converter.ObjectifToTree(o), presences, validated)
	if err != nil {
		u.log.Warnf("Failed to roll up objectif %d: %+v", o.ID, err)
		return dto.ObjectifResponse{}, err
	}

	node := dto.ObjectifResponse{
		ID:       o.ID,
		Type:     o.Type,
		Libelle:  o.Libelle,
		Resultat: result,
	}
	for i := range o.Enfants {
		child, err := u.rollUpNode(&o.Enfants[i], presences, validated)
		if err != nil {
			return dto.ObjectifResponse{}, err
		}
		node.Enfants = append(node.Enfants, child)
	}
	return node, nil
}

// inScope reports whether the caller may read data belonging to a sector.
func inScope(caller stats.Caller, secteur string) bool {
	if caller.Can(stats.CapAllSecteurs) {
		return true
	}
	return caller.SecteurAssigne == "" || caller.SecteurAssigne == secteur
}
