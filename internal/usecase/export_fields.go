package usecase

import (
	"strconv"
	"time"

	"stats-impact-backend/internal/domain/entity"
)

// exportRow is the join context a CSV column getter reads from: one presence
// with its participant, session and atelier.
type exportRow struct {
	Presence    *entity.PresenceActivite
	Participant *entity.Participant
	Session     *entity.SessionActivite
	Atelier     *entity.Atelier
}

type exportField struct {
	Key   string
	Label string
	Value func(r exportRow) string
}

type exportFieldGroup struct {
	Label  string
	Fields []exportField
}

func fmtExportDate(d *time.Time) string {
	if d == nil {
		return ""
	}
	return d.Format("2006-01-02")
}

func fmtExportDateTime(d time.Time) string {
	if d.IsZero() {
		return ""
	}
	return d.Format("2006-01-02 15:04")
}

// exportFieldGroups is the column registry of the presence CSV export,
// grouped the way the export form presents them.
var exportFieldGroups = []exportFieldGroup{
	{
		Label: "Participant",
		Fields: []exportField{
			{"participant_id", "ID participant", func(r exportRow) string { return strconv.Itoa(r.Participant.ID) }},
			{"participant_nom", "Nom", func(r exportRow) string { return r.Participant.Nom }},
			{"participant_prenom", "Prénom", func(r exportRow) string { return r.Participant.Prenom }},
			{"participant_email", "Email", func(r exportRow) string { return r.Participant.Email }},
			{"participant_telephone", "Téléphone", func(r exportRow) string { return r.Participant.Telephone }},
			{"participant_ville", "Ville", func(r exportRow) string { return r.Participant.Ville }},
			{"participant_quartier", "Quartier", func(r exportRow) string {
				if r.Participant.Quartier != nil {
					return r.Participant.Quartier.Nom
				}
				return ""
			}},
			{"participant_genre", "Genre", func(r exportRow) string { return r.Participant.Genre }},
			{"participant_type_public", "Type public", func(r exportRow) string { return r.Participant.TypePublic }},
			{"participant_date_naissance", "Date naissance", func(r exportRow) string { return fmtExportDate(r.Participant.DateNaissance) }},
		},
	},
	{
		Label: "Session",
		Fields: []exportField{
			{"session_id", "ID session", func(r exportRow) string { return strconv.Itoa(r.Session.ID) }},
			{"session_date", "Date session", func(r exportRow) string { return fmtExportDate(r.Session.EffectiveDate()) }},
			{"session_type", "Type session", func(r exportRow) string { return r.Session.SessionType }},
			{"session_statut", "Statut session", func(r exportRow) string { return r.Session.Statut }},
			{"session_heure_debut", "Heure début", func(r exportRow) string { return r.Session.EffectiveDebut() }},
			{"session_heure_fin", "Heure fin", func(r exportRow) string { return r.Session.EffectiveFin() }},
			{"session_duree_minutes", "Durée (minutes)", func(r exportRow) string {
				if r.Session.DureeMinutes == 0 {
					return ""
				}
				return strconv.Itoa(r.Session.DureeMinutes)
			}},
		},
	},
	{
		Label: "Atelier",
		Fields: []exportField{
			{"atelier_id", "ID atelier", func(r exportRow) string { return strconv.Itoa(r.Atelier.ID) }},
			{"atelier_nom", "Nom atelier", func(r exportRow) string { return r.Atelier.Nom }},
			{"atelier_secteur", "Secteur atelier", func(r exportRow) string { return r.Atelier.Secteur }},
			{"atelier_type", "Type atelier", func(r exportRow) string { return r.Atelier.TypeAtelier }},
		},
	},
	{
		Label: "Présence",
		Fields: []exportField{
			{"presence_id", "ID présence", func(r exportRow) string { return strconv.Itoa(r.Presence.ID) }},
			{"presence_motif", "Motif", func(r exportRow) string { return r.Presence.Motif }},
			{"presence_motif_autre", "Motif autre", func(r exportRow) string { return r.Presence.MotifAutre }},
			{"presence_created_at", "Date d'émargement", func(r exportRow) string { return fmtExportDateTime(r.Presence.CreatedAt) }},
		},
	},
}

var defaultExportFields = []string{
	"participant_nom",
	"participant_prenom",
	"atelier_nom",
	"atelier_secteur",
	"session_date",
	"session_type",
}

var exportFieldMap = func() map[string]exportField {
	m := make(map[string]exportField)
	for _, g := range exportFieldGroups {
		for _, f := range g.Fields {
			m[f.Key] = f
		}
	}
	return m
}()

// resolveExportFields keeps the known keys in request order and falls back
// to the default selection when nothing usable was asked for.
func resolveExportFields(requested []string) []exportField {
	keys := make([]string, 0, len(requested))
	for _, k := range requested {
		if _, ok := exportFieldMap[k]; ok {
			keys = append(keys, k)
		}
	}
	if len(keys) == 0 {
		keys = defaultExportFields
	}

	fields := make([]exportField, 0, len(keys))
	for _, k := range keys {
		fields = append(fields, exportFieldMap[k])
	}
	return fields
}
