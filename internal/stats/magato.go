package stats

import (
	"sort"
	"time"
)

// MacroSecteurRow is one line of the per-sector synthesis.
type MacroSecteurRow struct {
	Secteur               string `json:"secteur"`
	NbSessions            int    `json:"nb_sessions"`
	NbPresences           int    `json:"nb_presences"`
	NbParticipantsUniques int    `json:"nb_participants_uniques"`
}

// MacroAtelierRow is one line of the per-atelier synthesis. Nouveaux and
// Recurrents are independent predicates over the atelier's presence history:
// a single-visit participant whose visit is in range counts as nouveau
// without being récurrent, and both can hold at once.
type MacroAtelierRow struct {
	AtelierID             int    `json:"atelier_id"`
	Secteur               string `json:"secteur"`
	AtelierNom            string `json:"atelier_nom"`
	NbSessions            int    `json:"nb_sessions"`
	NbPresences           int    `json:"nb_presences"`
	NbParticipantsUniques int    `json:"nb_participants_uniques"`
	Nouveaux              int    `json:"nouveaux"`
	Recurrents            int    `json:"recurrents"`
}

type MagatoMacro struct {
	BySecteur []MacroSecteurRow `json:"by_secteur"`
	ByAtelier []MacroAtelierRow `json:"by_atelier"`
}

// ParticipantRow is one roster line: a distinct participant with at least one
// in-scope presence, with their visit count and first/last visit dates.
type ParticipantRow struct {
	ID          int        `json:"id"`
	Nom         string     `json:"nom"`
	Prenom      string     `json:"prenom"`
	Ville       string     `json:"ville"`
	Quartier    string     `json:"quartier"`
	NbPresences int        `json:"nb_presences"`
	FirstDate   *time.Time `json:"first_date,omitempty"`
	LastDate    *time.Time `json:"last_date,omitempty"`
}

// MatrixSession is one bounded matrix column.
type MatrixSession struct {
	ID      int        `json:"id"`
	Atelier string     `json:"atelier"`
	Secteur string     `json:"secteur"`
	Label   string     `json:"label"`
	Date    *time.Time `json:"date,omitempty"`
}

type MatrixKey struct {
	ParticipantID int
	SessionID     int
}

// MagatoResult is the cross-tab aggregation. When Restricted is set there is
// no payload and callers must refuse to render or export. Capped flags tell
// the caller the matrix was truncated rather than silently wrong.
type MagatoResult struct {
	View               View               `json:"view"`
	Restricted         bool               `json:"restricted"`
	Macro              *MagatoMacro       `json:"macro,omitempty"`
	Participants       []ParticipantRow   `json:"participants,omitempty"`
	Sessions           []MatrixSession    `json:"sessions,omitempty"`
	Matrix             map[MatrixKey]bool `json:"-"`
	SessionsCapped     bool               `json:"sessions_capped"`
	ParticipantsCapped bool               `json:"participants_capped"`
}

// Participants computes the roster for the filtered scope, honoring the
// participant search query, ordered by nom then prénom.
func Participants(s *Snapshot, f Filter) []ParticipantRow {
	sessions := s.scopedSessions(f)
	presences := s.presencesFor(sessions)

	dates := make(map[int]*time.Time, len(sessions))
	for _, sess := range sessions {
		dates[sess.ID] = sess.Date
	}

	rows := make(map[int]*ParticipantRow)
	for _, pr := range presences {
		part, ok := s.Participants[pr.ParticipantID]
		if !ok || !part.matchesQuery(f.ParticipantQuery) {
			continue
		}
		row := rows[pr.ParticipantID]
		if row == nil {
			row = &ParticipantRow{
				ID:       part.ID,
				Nom:      part.Nom,
				Prenom:   part.Prenom,
				Ville:    part.Ville,
				Quartier: part.Quartier,
			}
			rows[pr.ParticipantID] = row
		}
		row.NbPresences++
		if d := dates[pr.SessionID]; d != nil {
			if row.FirstDate == nil || d.Before(*row.FirstDate) {
				row.FirstDate = d
			}
			if row.LastDate == nil || d.After(*row.LastDate) {
				row.LastDate = d
			}
		}
	}

	out := make([]ParticipantRow, 0, len(rows))
	for _, r := range rows {
		out = append(out, *r)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Nom != out[j].Nom {
			return out[i].Nom < out[j].Nom
		}
		if out[i].Prenom != out[j].Prenom {
			return out[i].Prenom < out[j].Prenom
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// Magato computes the cross-tab view: the macro synthesis always, the
// bounded attendance matrix when the filter asks for it. The filter must
// already be scoped; the caller is passed again to detect cross-sector
// probing, which yields a restricted result instead of data.
func Magato(s *Snapshot, f Filter, c Caller) MagatoResult {
	if ProbesOtherSecteur(f, c) {
		return MagatoResult{View: f.View, Restricted: true}
	}
	scoped := ApplyScope(f, c)

	res := MagatoResult{View: scoped.View}
	res.Macro = computeMacro(s, scoped)
	res.Participants = Participants(s, scoped)

	if scoped.View != ViewMatrix {
		return res
	}

	sessions := s.scopedSessions(scoped)
	if len(sessions) > scoped.MaxSessions {
		// keep the most recent ones; scopedSessions is date asc, id asc
		sessions = sessions[len(sessions)-scoped.MaxSessions:]
		res.SessionsCapped = true
	}
	if len(res.Participants) > scoped.MaxParticipants {
		res.Participants = res.Participants[:scoped.MaxParticipants]
		res.ParticipantsCapped = true
	}

	ateliers := s.atelierIndex()
	res.Sessions = make([]MatrixSession, 0, len(sessions))
	kept := make(map[int]bool, len(sessions))
	for _, sess := range sessions {
		a := ateliers[sess.AtelierID]
		label := "Sans date"
		if sess.Date != nil {
			label = sess.Date.Format("02/01/2006")
		}
		res.Sessions = append(res.Sessions, MatrixSession{
			ID:      sess.ID,
			Atelier: a.Nom,
			Secteur: a.Secteur,
			Label:   label,
			Date:    sess.Date,
		})
		kept[sess.ID] = true
	}

	keptParticipants := make(map[int]bool, len(res.Participants))
	for _, p := range res.Participants {
		keptParticipants[p.ID] = true
	}

	// Cells exist only for kept (participant, session) pairs backed by a
	// real presence; truncation never fabricates one.
	res.Matrix = make(map[MatrixKey]bool)
	for _, pr := range s.presencesFor(sessions) {
		if kept[pr.SessionID] && keptParticipants[pr.ParticipantID] {
			res.Matrix[MatrixKey{ParticipantID: pr.ParticipantID, SessionID: pr.SessionID}] = true
		}
	}
	return res
}

func computeMacro(s *Snapshot, f Filter) *MagatoMacro {
	ateliers := s.scopedAteliers(f)
	sessions := s.scopedSessions(f)
	presences := s.presencesFor(sessions)

	sessionAtelier := make(map[int]int, len(sessions))
	sessionsPerAtelier := make(map[int]int)
	for _, sess := range sessions {
		sessionAtelier[sess.ID] = sess.AtelierID
		sessionsPerAtelier[sess.AtelierID]++
	}

	presPerAtelier := make(map[int]int)
	uniquesPerAtelier := make(map[int]map[int]bool)
	for _, pr := range presences {
		aid := sessionAtelier[pr.SessionID]
		presPerAtelier[aid]++
		if uniquesPerAtelier[aid] == nil {
			uniquesPerAtelier[aid] = make(map[int]bool)
		}
		uniquesPerAtelier[aid][pr.ParticipantID] = true
	}

	nouveaux, recurrents := newAndRecurring(s, f, ateliers)

	macro := &MagatoMacro{}
	secteurSessions := make(map[string]int)
	secteurPresences := make(map[string]int)
	secteurUniques := make(map[string]map[int]bool)
	var secteurOrder []string

	for _, a := range ateliers {
		if _, seen := secteurUniques[a.Secteur]; !seen {
			secteurUniques[a.Secteur] = make(map[int]bool)
			secteurOrder = append(secteurOrder, a.Secteur)
		}
		secteurSessions[a.Secteur] += sessionsPerAtelier[a.ID]
		secteurPresences[a.Secteur] += presPerAtelier[a.ID]
		for pid := range uniquesPerAtelier[a.ID] {
			secteurUniques[a.Secteur][pid] = true
		}

		// every atelier in scope appears, with zeros when it had no session
		macro.ByAtelier = append(macro.ByAtelier, MacroAtelierRow{
			AtelierID:             a.ID,
			Secteur:               a.Secteur,
			AtelierNom:            a.Nom,
			NbSessions:            sessionsPerAtelier[a.ID],
			NbPresences:           presPerAtelier[a.ID],
			NbParticipantsUniques: len(uniquesPerAtelier[a.ID]),
			Nouveaux:              nouveaux[a.ID],
			Recurrents:            recurrents[a.ID],
		})
	}

	for _, sec := range secteurOrder {
		macro.BySecteur = append(macro.BySecteur, MacroSecteurRow{
			Secteur:               sec,
			NbSessions:            secteurSessions[sec],
			NbPresences:           secteurPresences[sec],
			NbParticipantsUniques: len(secteurUniques[sec]),
		})
	}
	return macro
}

// newAndRecurring computes the nouveaux/récurrents counters per atelier over
// the atelier's full presence history: récurrent means two or more presences
// ever, nouveau means the very first presence falls inside the filtered
// range (only meaningful when both bounds are set).
func newAndRecurring(s *Snapshot, f Filter, ateliers []Atelier) (map[int]int, map[int]int) {
	inScope := make(map[int]bool, len(ateliers))
	for _, a := range ateliers {
		inScope[a.ID] = true
	}

	sessionInfo := make(map[int]Session, len(s.Sessions))
	for _, sess := range s.Sessions {
		if inScope[sess.AtelierID] {
			sessionInfo[sess.ID] = sess
		}
	}

	type history struct {
		count int
		first *time.Time
	}
	perAtelier := make(map[int]map[int]*history)
	for _, pr := range s.Presences {
		sess, ok := sessionInfo[pr.SessionID]
		if !ok {
			continue
		}
		m := perAtelier[sess.AtelierID]
		if m == nil {
			m = make(map[int]*history)
			perAtelier[sess.AtelierID] = m
		}
		h := m[pr.ParticipantID]
		if h == nil {
			h = &history{}
			m[pr.ParticipantID] = h
		}
		h.count++
		if sess.Date != nil && (h.first == nil || sess.Date.Before(*h.first)) {
			h.first = sess.Date
		}
	}

	nouveaux := make(map[int]int)
	recurrents := make(map[int]int)
	for aid, m := range perAtelier {
		for _, h := range m {
			if h.count >= 2 {
				recurrents[aid]++
			}
			if f.DateFrom != nil && f.DateTo != nil && h.first != nil &&
				!h.first.Before(*f.DateFrom) && !h.first.After(*f.DateTo) {
				nouveaux[aid]++
			}
		}
	}
	return nouveaux, recurrents
}
