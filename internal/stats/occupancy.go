package stats

import "sort"

// CapacityKey identifies the configured capacity of one atelier-month.
type CapacityKey struct {
	AtelierID int
	Annee     int
	Mois      int
}

// OccupancyRow is the utilization of one atelier over one month: presences
// against the configured monthly capacity.
type OccupancyRow struct {
	AtelierID   int     `json:"atelier_id"`
	Atelier     string  `json:"atelier"`
	Secteur     string  `json:"secteur"`
	Annee       int     `json:"annee"`
	Mois        int     `json:"mois"`
	NbSessions  int     `json:"nb_sessions"`
	NbPresences int     `json:"nb_presences"`
	Capacite    int     `json:"capacite"`
	Taux        float64 `json:"taux"`
}

type OccupancyStats struct {
	Rows        []OccupancyRow `json:"rows"`
	TauxGlobal  float64        `json:"taux_global"`
	NbPresences int            `json:"nb_presences"`
	Capacite    int            `json:"capacite"`
}

// Occupancy crosses in-scope sessions with the capacity configuration. A
// month without configured capacity yields a zero rate, never a division
// error. Sessions without a date are skipped, they belong to no month.
func Occupancy(s *Snapshot, f Filter, capacites map[CapacityKey]int) OccupancyStats {
	sessions := s.scopedSessions(f)
	presences := s.presencesFor(sessions)
	ateliers := s.atelierIndex()

	type monthAgg struct {
		sessions  int
		presences int
	}
	sessionKey := make(map[int]CapacityKey, len(sessions))
	agg := make(map[CapacityKey]*monthAgg)
	for _, sess := range sessions {
		if sess.Date == nil {
			continue
		}
		key := CapacityKey{AtelierID: sess.AtelierID, Annee: sess.Date.Year(), Mois: int(sess.Date.Month())}
		sessionKey[sess.ID] = key
		a := agg[key]
		if a == nil {
			a = &monthAgg{}
			agg[key] = a
		}
		a.sessions++
	}
	for _, pr := range presences {
		if a := agg[sessionKey[pr.SessionID]]; a != nil {
			a.presences++
		}
	}

	out := OccupancyStats{}
	for key, a := range agg {
		cap := capacites[key]
		at := ateliers[key.AtelierID]
		out.Rows = append(out.Rows, OccupancyRow{
			AtelierID:   key.AtelierID,
			Atelier:     at.Nom,
			Secteur:     at.Secteur,
			Annee:       key.Annee,
			Mois:        key.Mois,
			NbSessions:  a.sessions,
			NbPresences: a.presences,
			Capacite:    cap,
			Taux:        pct(a.presences, cap),
		})
		out.NbPresences += a.presences
		out.Capacite += cap
	}
	out.TauxGlobal = pct(out.NbPresences, out.Capacite)

	sort.Slice(out.Rows, func(i, j int) bool {
		a, b := out.Rows[i], out.Rows[j]
		if a.Annee != b.Annee {
			return a.Annee < b.Annee
		}
		if a.Mois != b.Mois {
			return a.Mois < b.Mois
		}
		if a.Secteur != b.Secteur {
			return a.Secteur < b.Secteur
		}
		return a.Atelier < b.Atelier
	})
	return out
}
