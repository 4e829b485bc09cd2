package stats

import (
	"sort"
	"strings"
	"time"
)

// Snapshot is the read-only view of the data the engine aggregates over.
// Sessions carry their effective date (RDV date overriding the collective
// session date); resolving that override belongs to the loader.
type Snapshot struct {
	Ateliers     []Atelier
	Sessions     []Session
	Presences    []Presence
	Participants map[int]Participant
}

type Atelier struct {
	ID        int
	Nom       string
	Secteur   string
	IsDeleted bool
}

type Session struct {
	ID        int
	AtelierID int
	Date      *time.Time
}

type Presence struct {
	ID            int
	ParticipantID int
	SessionID     int
}

type Participant struct {
	ID            int
	Nom           string
	Prenom        string
	Ville         string
	Quartier      string
	Genre         string
	TypePublic    string
	DateNaissance *time.Time
}

// atelierIndex maps live (non-deleted) ateliers by id.
func (s *Snapshot) atelierIndex() map[int]Atelier {
	idx := make(map[int]Atelier, len(s.Ateliers))
	for _, a := range s.Ateliers {
		if a.IsDeleted {
			continue
		}
		idx[a.ID] = a
	}
	return idx
}

// scopedAteliers returns live ateliers matching the filter's sector and
// atelier constraints, sorted by secteur then nom. Ateliers without sessions
// in period are deliberately part of the result.
func (s *Snapshot) scopedAteliers(f Filter) []Atelier {
	var out []Atelier
	for _, a := range s.Ateliers {
		if a.IsDeleted {
			continue
		}
		if f.Secteur != "" && a.Secteur != f.Secteur {
			continue
		}
		if f.AtelierID != 0 && a.ID != f.AtelierID {
			continue
		}
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Secteur != out[j].Secteur {
			return out[i].Secteur < out[j].Secteur
		}
		return out[i].Nom < out[j].Nom
	})
	return out
}

// scopedSessions applies the shared filtering contract: live atelier, sector
// match, effective date inside the inclusive range. Sessions without a date
// are out of scope when any bound is set. Result is ordered by date then id.
func (s *Snapshot) scopedSessions(f Filter) []Session {
	ateliers := s.atelierIndex()
	var out []Session
	for _, sess := range s.Sessions {
		a, ok := ateliers[sess.AtelierID]
		if !ok {
			continue
		}
		if f.Secteur != "" && a.Secteur != f.Secteur {
			continue
		}
		if f.AtelierID != 0 && sess.AtelierID != f.AtelierID {
			continue
		}
		if !dateInRange(sess.Date, f.DateFrom, f.DateTo) {
			continue
		}
		out = append(out, sess)
	}
	sort.Slice(out, func(i, j int) bool {
		di, dj := out[i].Date, out[j].Date
		switch {
		case di == nil && dj != nil:
			return true
		case di != nil && dj == nil:
			return false
		case di != nil && dj != nil && !di.Equal(*dj):
			return di.Before(*dj)
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// SessionsInScope exposes the shared session filtering contract to the
// export sinks: live atelier, sector match, date range, ordered by date
// then id.
func (s *Snapshot) SessionsInScope(f Filter) []Session {
	return s.scopedSessions(f)
}

// PresencesInScope returns the presences attached to the sessions in scope.
func (s *Snapshot) PresencesInScope(sessions []Session) []Presence {
	return s.presencesFor(sessions)
}

// AteliersInScope exposes the atelier scoping to the export sinks:
// live ateliers in the filter's sector, sorted by secteur then nom,
// including those without sessions in period.
func (s *Snapshot) AteliersInScope(f Filter) []Atelier {
	return s.scopedAteliers(f)
}

// presencesFor returns the presences attached to the given sessions.
func (s *Snapshot) presencesFor(sessions []Session) []Presence {
	ids := make(map[int]bool, len(sessions))
	for _, sess := range sessions {
		ids[sess.ID] = true
	}
	var out []Presence
	for _, p := range s.Presences {
		if ids[p.SessionID] {
			out = append(out, p)
		}
	}
	return out
}

func dateInRange(d, from, to *time.Time) bool {
	if from == nil && to == nil {
		return true
	}
	if d == nil {
		return false
	}
	if from != nil && d.Before(*from) {
		return false
	}
	if to != nil && d.After(*to) {
		return false
	}
	return true
}

// matchesQuery is the participant search predicate: case-insensitive
// substring over nom and prénom.
func (p Participant) matchesQuery(q string) bool {
	if q == "" {
		return true
	}
	q = strings.ToLower(q)
	return strings.Contains(strings.ToLower(p.Nom), q) ||
		strings.Contains(strings.ToLower(p.Prenom), q)
}

// pct is the engine-wide ratio rule: percentages in [0,100], zero when the
// denominator is zero.
func pct(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(part) / float64(total) * 100
}
