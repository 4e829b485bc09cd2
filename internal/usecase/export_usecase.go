package usecase

import (
	"context"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"stats-impact-backend/internal/converter"
	"stats-impact-backend/internal/delivery/dto"
	"stats-impact-backend/internal/domain/entity"
	"stats-impact-backend/internal/domain/repository"
	"stats-impact-backend/internal/service"
	"stats-impact-backend/internal/stats"
	"stats-impact-backend/pkg/export"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type ExportUsecase interface {
	FieldGroups() *dto.ExportFieldsResponse
	PresencesCSV(ctx context.Context, caller stats.Caller, userID uuid.UUID, query url.Values) ([][]string, error)
	MagatoWorkbook(ctx context.Context, caller stats.Caller, userID uuid.UUID, query url.Values) (*export.Workbook, error)
	PerAtelierWorkbook(ctx context.Context, caller stats.Caller, userID uuid.UUID, query url.Values) (*export.Workbook, error)
}

type exportUsecase struct {
	db              *gorm.DB
	log             *logrus.Logger
	loader          snapshotLoader
	atelierRepo     repository.AtelierRepository
	sessionRepo     repository.SessionRepository
	presenceRepo    repository.PresenceRepository
	participantRepo repository.ParticipantRepository
	auditService    service.AuditService
}

func NewExportUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	atelierRepo repository.AtelierRepository,
	sessionRepo repository.SessionRepository,
	presenceRepo repository.PresenceRepository,
	participantRepo repository.ParticipantRepository,
	auditService service.AuditService,
) ExportUsecase {
	return &exportUsecase{
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
		atelierRepo:     atelierRepo,
		sessionRepo:     sessionRepo,
		presenceRepo:    presenceRepo,
		participantRepo: participantRepo,
		auditService:    auditService,
	}
}

// FieldGroups describes the selectable CSV columns for the export form.
func (u *exportUsecase) FieldGroups() *dto.ExportFieldsResponse {
	resp := &dto.ExportFieldsResponse{
		DefaultFields: append([]string(nil), defaultExportFields...),
	}
	for _, g := range exportFieldGroups {
		group := dto.ExportFieldGroupResponse{Label: g.Label}
		for _, f := range g.Fields {
			group.Fields = append(group.Fields, dto.ExportFieldResponse{Key: f.Key, Label: f.Label})
		}
		resp.Groups = append(resp.Groups, group)
	}
	return resp
}

// PresencesCSV builds the presence-level export: one row per presence in
// scope, with the requested columns. Rows come out ordered by session date
// then participant name.
func (u *exportUsecase) PresencesCSV(ctx context.Context, caller stats.Caller, userID uuid.UUID, query url.Values) ([][]string, error) {
	f := stats.Normalize(query, stats.ExportLimits)
	f = stats.ApplyScope(f, caller)

	fields := resolveExportFields(query["fields"])

	data, err := u.loadEntities(ctx)
	if err != nil {
		return nil, err
	}

	snap := converter.BuildSnapshot(data.ateliers, data.sessions, data.presences, data.participants)
	sessions := snap.SessionsInScope(f)

	rows := [][]string{make([]string, 0, len(fields))}
	for _, field := range fields {
		rows[0] = append(rows[0], field.Label)
	}

	presencesBySession := make(map[int][]*entity.PresenceActivite, len(sessions))
	for i := range data.presences {
		p := &data.presences[i]
		presencesBySession[p.SessionID] = append(presencesBySession[p.SessionID], p)
	}

	for _, sess := range sessions {
		sessionEntity := data.sessionByID[sess.ID]
		atelierEntity := data.atelierByID[sess.AtelierID]
		if sessionEntity == nil || atelierEntity == nil {
			continue
		}

		sessionRows := make([]exportRow, 0, len(presencesBySession[sess.ID]))
		for _, pr := range presencesBySession[sess.ID] {
			participant := data.participantByID[pr.ParticipantID]
			if participant == nil {
				continue
			}
			if !participantMatches(participant, f.ParticipantQuery) {
				continue
			}
			sessionRows = append(sessionRows, exportRow{
				Presence:    pr,
				Participant: participant,
				Session:     sessionEntity,
				Atelier:     atelierEntity,
			})
		}
		sort.Slice(sessionRows, func(i, j int) bool {
			if sessionRows[i].Participant.Nom != sessionRows[j].Participant.Nom {
				return sessionRows[i].Participant.Nom < sessionRows[j].Participant.Nom
			}
			return sessionRows[i].Participant.Prenom < sessionRows[j].Participant.Prenom
		})

		for _, r := range sessionRows {
			row := make([]string, 0, len(fields))
			for _, field := range fields {
				row = append(row, field.Value(r))
			}
			rows = append(rows, row)
		}
	}

	u.auditService.LogAction(ctx, u.db.WithContext(ctx), &userID, entity.AuditActionExportCSV, entity.JSON{
		"secteur":   f.Secteur,
		"date_from": fmtAuditDate(f.DateFrom),
		"date_to":   fmtAuditDate(f.DateTo),
		"nb_rows":   len(rows) - 1,
	})

	return rows, nil
}

// MagatoWorkbook builds the flat cross-tab workbook: a macro synthesis, the
// participant roster and, in matrix view, the attendance matrix plus its
// row-per-participation listing. Cross-sector probing aborts the export.
func (u *exportUsecase) MagatoWorkbook(ctx context.Context, caller stats.Caller, userID uuid.UUID, query url.Values) (*export.Workbook, error) {
	f := stats.Normalize(query, stats.ExportLimits)

	snap, err := u.loader.load(ctx)
	if err != nil {
		return nil, err
	}

	result := stats.Magato(snap, f, caller)
	if result.Restricted {
		return nil, ErrForbidden
	}

	wb := &export.Workbook{}

	synthese := wb.AddSheet("Synthese")
	synthese.Append("Synthèse par secteur")
	synthese.Append("Secteur", "Nb sessions", "Nb présences", "Participants uniques")
	if result.Macro != nil {
		for _, r := range result.Macro.BySecteur {
			synthese.Append(r.Secteur, strconv.Itoa(r.NbSessions), strconv.Itoa(r.NbPresences), strconv.Itoa(r.NbParticipantsUniques))
		}
	}
	synthese.Append()
	synthese.Append("Synthèse par atelier")
	synthese.Append("Secteur", "Atelier", "Nb sessions", "Nb présences", "Participants uniques")
	if result.Macro != nil {
		for _, r := range result.Macro.ByAtelier {
			synthese.Append(r.Secteur, r.AtelierNom, strconv.Itoa(r.NbSessions), strconv.Itoa(r.NbPresences), strconv.Itoa(r.NbParticipantsUniques))
		}
	}

	if len(result.Participants) > 0 {
		roster := wb.AddSheet("Participants")
		roster.Append("Participants (dans le périmètre filtré)")
		roster.Append("Nom", "Prénom", "Ville", "Quartier", "Nb présences", "1ère venue", "Dernière venue")
		for _, p := range result.Participants {
			roster.Append(p.Nom, p.Prenom, p.Ville, p.Quartier, strconv.Itoa(p.NbPresences),
				fmtAuditDate(p.FirstDate), fmtAuditDate(p.LastDate))
		}
	}

	if result.View == stats.ViewMatrix && len(result.Sessions) > 0 && len(result.Participants) > 0 {
		matrice := wb.AddSheet("Matrice")
		header := []string{"Nom", "Prénom"}
		for _, s := range result.Sessions {
			header = append(header, s.Atelier+" · "+s.Label)
		}
		matrice.Append(header...)

		for _, p := range result.Participants {
			row := []string{p.Nom, p.Prenom}
			for _, s := range result.Sessions {
				if result.Matrix[stats.MatrixKey{ParticipantID: p.ID, SessionID: s.ID}] {
					row = append(row, "1")
				} else {
					row = append(row, "")
				}
			}
			matrice.Append(row...)
		}

		participations := wb.AddSheet("Participations")
		participations.Append("Nom", "Prénom", "Atelier", "Secteur", "Date session", "ID session")
		for _, p := range result.Participants {
			for _, s := range result.Sessions {
				if result.Matrix[stats.MatrixKey{ParticipantID: p.ID, SessionID: s.ID}] {
					participations.Append(p.Nom, p.Prenom, s.Atelier, s.Secteur, fmtAuditDate(s.Date), strconv.Itoa(s.ID))
				}
			}
		}
	}

	u.logMagatoExport(ctx, userID, f, "flat")

	return wb, nil
}

// PerAtelierWorkbook builds the yearly export in the historic spreadsheet
// shape: a synthesis sheet and one attendance-matrix sheet per atelier.
func (u *exportUsecase) PerAtelierWorkbook(ctx context.Context, caller stats.Caller, userID uuid.UUID, query url.Values) (*export.Workbook, error) {
	f := stats.Normalize(query, stats.ExportLimits)

	snap, err := u.loader.load(ctx)
	if err != nil {
		return nil, err
	}

	// The macro table already carries the per-atelier figures, including the
	// new/recurring split, with zero rows for ateliers without sessions.
	result := stats.Magato(snap, f, caller)
	if result.Restricted {
		return nil, ErrForbidden
	}
	scoped := stats.ApplyScope(f, caller)

	wb := &export.Workbook{}

	synthese := wb.AddSheet("Synthese")
	synthese.Append("Export annuel : 1 feuille par atelier")
	synthese.Append("Secteur", "Atelier", "Nb sessions", "Nb présences", "Participants uniques", "Nouveaux", "Récurrents")
	if result.Macro != nil {
		for _, r := range result.Macro.ByAtelier {
			synthese.Append(r.Secteur, r.AtelierNom, strconv.Itoa(r.NbSessions), strconv.Itoa(r.NbPresences),
				strconv.Itoa(r.NbParticipantsUniques), strconv.Itoa(r.Nouveaux), strconv.Itoa(r.Recurrents))
		}
	}

	for _, at := range snap.AteliersInScope(scoped) {
		atelierFilter := scoped
		atelierFilter.AtelierID = at.ID
		sessions := snap.SessionsInScope(atelierFilter)
		if len(sessions) == 0 {
			continue
		}

		sheet := wb.AddSheet(at.Nom)
		sheet.Append(at.Secteur + " — " + at.Nom)

		header := []string{"Nom", "Prénom"}
		for _, s := range sessions {
			if s.Date != nil {
				header = append(header, s.Date.Format("02/01/2006"))
			} else {
				header = append(header, "Sans date")
			}
		}
		sheet.Append(header...)

		presences := snap.PresencesInScope(sessions)
		present := make(map[stats.MatrixKey]bool, len(presences))
		pidSet := make(map[int]bool)
		for _, pr := range presences {
			present[stats.MatrixKey{ParticipantID: pr.ParticipantID, SessionID: pr.SessionID}] = true
			pidSet[pr.ParticipantID] = true
		}

		participants := make([]stats.Participant, 0, len(pidSet))
		for pid := range pidSet {
			participants = append(participants, snap.Participants[pid])
		}
		sort.Slice(participants, func(i, j int) bool {
			if participants[i].Nom != participants[j].Nom {
				return participants[i].Nom < participants[j].Nom
			}
			return participants[i].Prenom < participants[j].Prenom
		})

		for _, p := range participants {
			row := []string{p.Nom, p.Prenom}
			for _, s := range sessions {
				if present[stats.MatrixKey{ParticipantID: p.ID, SessionID: s.ID}] {
					row = append(row, "1")
				} else {
					row = append(row, "")
				}
			}
			sheet.Append(row...)
		}
	}

	u.logMagatoExport(ctx, userID, scoped, "per_atelier")

	return wb, nil
}

type exportEntities struct {
	ateliers        []entity.Atelier
	sessions        []entity.SessionActivite
	presences       []entity.PresenceActivite
	participants    []entity.Participant
	sessionByID     map[int]*entity.SessionActivite
	atelierByID     map[int]*entity.Atelier
	participantByID map[int]*entity.Participant
}

func (u *exportUsecase) loadEntities(ctx context.Context) (*exportEntities, error) {
	db := u.db.WithContext(ctx)

	ateliers, err := u.atelierRepo.FindAllActive(db)
	if err != nil {
		u.log.Warnf("Failed to load ateliers: %+v", err)
		return nil, err
	}
	sessions, err := u.sessionRepo.FindAll(db)
	if err != nil {
		u.log.Warnf("Failed to load sessions: %+v", err)
		return nil, err
	}
	presences, err := u.presenceRepo.FindAll(db)
	if err != nil {
		u.log.Warnf("Failed to load presences: %+v", err)
		return nil, err
	}
	participants, err := u.participantRepo.FindAll(db)
	if err != nil {
		u.log.Warnf("Failed to load participants: %+v", err)
		return nil, err
	}

	data := &exportEntities{
		ateliers:        ateliers,
		sessions:        sessions,
		presences:       presences,
		participants:    participants,
		sessionByID:     make(map[int]*entity.SessionActivite, len(sessions)),
		atelierByID:     make(map[int]*entity.Atelier, len(ateliers)),
		participantByID: make(map[int]*entity.Participant, len(participants)),
	}
	for i := range sessions {
		data.sessionByID[sessions[i].ID] = &data.sessions[i]
	}
	for i := range ateliers {
		data.atelierByID[ateliers[i].ID] = &data.ateliers[i]
	}
	for i := range participants {
		data.participantByID[participants[i].ID] = &data.participants[i]
	}
	return data, nil
}

func (u *exportUsecase) logMagatoExport(ctx context.Context, userID uuid.UUID, f stats.Filter, mode string) {
	u.auditService.LogAction(ctx, u.db.WithContext(ctx), &userID, entity.AuditActionExportMagato, entity.JSON{
		"mode":      mode,
		"secteur":   f.Secteur,
		"date_from": fmtAuditDate(f.DateFrom),
		"date_to":   fmtAuditDate(f.DateTo),
	})
}

func fmtAuditDate(d *time.Time) string {
	if d == nil {
		return ""
	}
	return d.Format("2006-01-02")
}

func participantMatches(p *entity.Participant, q string) bool {
	if q == "" {
		return true
	}
	q = strings.ToLower(q)
	return strings.Contains(strings.ToLower(p.Nom), q) ||
		strings.Contains(strings.ToLower(p.Prenom), q)
}
