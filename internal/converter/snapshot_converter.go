package converter

import (
	"stats-impact-backend/internal/domain/entity"
	"stats-impact-backend/internal/stats"
)

// BuildSnapshot maps persisted rows into the aggregation engine's read model.
// The RDV-over-collective date override is resolved here so the engine only
// ever sees one effective date per session.
func BuildSnapshot(
	ateliers []entity.Atelier,
	sessions []entity.SessionActivite,
	presences []entity.PresenceActivite,
	participants []entity.Participant,
) *stats.Snapshot {
	snap := &stats.Snapshot{
		Ateliers:     make([]stats.Atelier, 0, len(ateliers)),
		Sessions:     make([]stats.Session, 0, len(sessions)),
		Presences:    make([]stats.Presence, 0, len(presences)),
		Participants: make(map[int]stats.Participant, len(participants)),
	}

	for _, a := range ateliers {
		snap.Ateliers = append(snap.Ateliers, stats.Atelier{
			ID:        a.ID,
			Nom:       a.Nom,
			Secteur:   a.Secteur,
			IsDeleted: a.IsDeleted,
		})
	}

	for i := range sessions {
		s := &sessions[i]
		snap.Sessions = append(snap.Sessions, stats.Session{
			ID:        s.ID,
			AtelierID: s.AtelierID,
			Date:      s.EffectiveDate(),
		})
	}

	for _, p := range presences {
		snap.Presences = append(snap.Presences, stats.Presence{
			ID:            p.ID,
			ParticipantID: p.ParticipantID,
			SessionID:     p.SessionID,
		})
	}

	for i := range participants {
		p := &participants[i]
		quartier := ""
		if p.Quartier != nil {
			quartier = p.Quartier.Nom
		}
		snap.Participants[p.ID] = stats.Participant{
			ID:            p.ID,
			Nom:           p.Nom,
			Prenom:        p.Prenom,
			Ville:         p.Ville,
			Quartier:      quartier,
			Genre:         p.Genre,
			TypePublic:    p.TypePublic,
			DateNaissance: p.DateNaissance,
		}
	}

	return snap
}

// CapacitesToMap keys monthly workshop capacities for the occupancy statistic.
func CapacitesToMap(capacites []entity.AtelierCapaciteMois) map[stats.CapacityKey]int {
	out := make(map[stats.CapacityKey]int, len(capacites))
	for _, c := range capacites {
		out[stats.CapacityKey{AtelierID: c.AtelierID, Annee: c.Annee, Mois: c.Mois}] = c.Capacite
	}
	return out
}
