package stats

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func allSecteursCaller() Caller {
	return caller("", CapStatsView, CapStatsViewAll, CapAllSecteurs)
}

func TestParticipants(t *testing.T) {
	t.Parallel()

	s := testSnapshot()

	t.Run("roster with visit counts and first/last dates", func(t *testing.T) {
		rows := Participants(s, year2024())

		require.Len(t, rows, 3)
		// ordered by nom
		require.Equal(t, "Durand", rows[0].Nom)
		require.Equal(t, "Martin", rows[1].Nom)
		require.Equal(t, "Petit", rows[2].Nom)

		x := rows[0]
		require.Equal(t, 2, x.NbPresences)
		require.Equal(t, "2024-01-05", x.FirstDate.Format("2006-01-02"))
		require.Equal(t, "2024-02-10", x.LastDate.Format("2006-01-02"))
	})

	t.Run("search query filters by nom or prénom", func(t *testing.T) {
		f := year2024()
		f.ParticipantQuery = "dur"
		rows := Participants(s, f)

		require.Len(t, rows, 1)
		require.Equal(t, 10, rows[0].ID)

		f.ParticipantQuery = "ZOE"
		rows = Participants(s, f)
		require.Len(t, rows, 1)
		require.Equal(t, 12, rows[0].ID)
	})
}

func TestMagatoMacro(t *testing.T) {
	t.Parallel()

	s := testSnapshot()
	res := Magato(s, year2024(), allSecteursCaller())

	require.False(t, res.Restricted)
	require.NotNil(t, res.Macro)

	t.Run("by_atelier keeps zero-session ateliers", func(t *testing.T) {
		rows := res.Macro.ByAtelier
		require.Len(t, rows, 3, "deleted atelier excluded, empty atelier kept")

		byName := map[string]MacroAtelierRow{}
		for _, r := range rows {
			byName[r.AtelierNom] = r
		}

		a := byName["Atelier A"]
		require.Equal(t, 2, a.NbSessions)
		require.Equal(t, 3, a.NbPresences)
		require.Equal(t, 2, a.NbParticipantsUniques)

		b := byName["Atelier B"]
		require.Zero(t, b.NbSessions)
		require.Zero(t, b.NbPresences)
		require.Zero(t, b.NbParticipantsUniques)
	})

	t.Run("by_secteur aggregates ateliers", func(t *testing.T) {
		rows := res.Macro.BySecteur
		require.Len(t, rows, 2)
		require.Equal(t, MacroSecteurRow{Secteur: "Nord", NbSessions: 2, NbPresences: 3, NbParticipantsUniques: 2}, rows[0])
		require.Equal(t, MacroSecteurRow{Secteur: "Sud", NbSessions: 1, NbPresences: 1, NbParticipantsUniques: 1}, rows[1])
	})

	t.Run("uniques never exceed presences", func(t *testing.T) {
		for _, r := range res.Macro.ByAtelier {
			require.LessOrEqual(t, r.NbParticipantsUniques, r.NbPresences)
		}
		for _, r := range res.Macro.BySecteur {
			require.LessOrEqual(t, r.NbParticipantsUniques, r.NbPresences)
		}
	})
}

func TestMagatoNouveauxRecurrents(t *testing.T) {
	t.Parallel()

	s := testSnapshot()
	res := Magato(s, year2024(), allSecteursCaller())

	byName := map[string]MacroAtelierRow{}
	for _, r := range res.Macro.ByAtelier {
		byName[r.AtelierNom] = r
	}

	a := byName["Atelier A"]
	// Participant 10: two visits in 2024, first ever 2024-01-05 -> both
	// nouveau and récurrent, the dual count is intentional.
	// Participant 11: one visit, in range -> nouveau only.
	// Participant 13: one visit in 2023 -> neither, first visit out of range.
	require.Equal(t, 2, a.Nouveaux)
	require.Equal(t, 1, a.Recurrents)

	c := byName["Atelier C"]
	require.Equal(t, 1, c.Nouveaux)
	require.Zero(t, c.Recurrents)
}

func TestMagatoMatrix(t *testing.T) {
	t.Parallel()

	s := testSnapshot()

	t.Run("cells only for real presences", func(t *testing.T) {
		f := year2024()
		f.View = ViewMatrix
		res := Magato(s, f, allSecteursCaller())

		require.False(t, res.SessionsCapped)
		require.False(t, res.ParticipantsCapped)
		require.Len(t, res.Sessions, 3)
		require.Len(t, res.Participants, 3)

		require.True(t, res.Matrix[MatrixKey{ParticipantID: 10, SessionID: 1}])
		require.True(t, res.Matrix[MatrixKey{ParticipantID: 10, SessionID: 2}])
		require.True(t, res.Matrix[MatrixKey{ParticipantID: 11, SessionID: 1}])
		require.False(t, res.Matrix[MatrixKey{ParticipantID: 11, SessionID: 2}])
		require.Len(t, res.Matrix, 4)
	})

	t.Run("session cap keeps the most recent and fabricates nothing", func(t *testing.T) {
		f := year2024()
		f.View = ViewMatrix
		f.MaxSessions = 5 // clamp floor
		s2 := testSnapshot()
		// six 2024 sessions on atelier A so the cap bites
		for i := 0; i < 4; i++ {
			day := d("2024-05-01").AddDate(0, 0, i)
			s2.Sessions = append(s2.Sessions, Session{ID: 10 + i, AtelierID: 1, Date: &day})
		}

		res := Magato(s2, f, allSecteursCaller())

		require.True(t, res.SessionsCapped)
		require.Len(t, res.Sessions, 5)
		// the oldest in-range session (id 1, 2024-01-05) was dropped
		for _, sess := range res.Sessions {
			require.NotEqual(t, 1, sess.ID)
		}
		// no cell may reference a truncated-out session
		for key := range res.Matrix {
			require.NotEqual(t, 1, key.SessionID)
		}
	})

	t.Run("participant cap truncates the roster", func(t *testing.T) {
		f := year2024()
		f.View = ViewMatrix
		f.MaxParticipants = 20 // clamp floor
		s2 := testSnapshot()
		for i := 0; i < 25; i++ {
			pid := 100 + i
			s2.Participants[pid] = Participant{ID: pid, Nom: "Zz", Prenom: string(rune('a' + i))}
			s2.Presences = append(s2.Presences, Presence{ID: 100 + i, ParticipantID: pid, SessionID: 1})
		}

		res := Magato(s2, f, allSecteursCaller())

		require.True(t, res.ParticipantsCapped)
		require.Len(t, res.Participants, 20)
		kept := map[int]bool{}
		for _, p := range res.Participants {
			kept[p.ID] = true
		}
		for key := range res.Matrix {
			require.True(t, kept[key.ParticipantID], "cell for a truncated-out participant")
		}
	})
}

func TestMagatoRestricted(t *testing.T) {
	t.Parallel()

	s := testSnapshot()

	t.Run("cross-sector probing yields no payload", func(t *testing.T) {
		f := year2024()
		f.Secteur = "Sud"
		res := Magato(s, f, caller("Nord", CapStatsView))

		require.True(t, res.Restricted)
		require.Nil(t, res.Macro)
		require.Empty(t, res.Participants)
	})

	t.Run("restricted caller is scoped to their own sector", func(t *testing.T) {
		res := Magato(s, year2024(), caller("Nord", CapStatsView))

		require.False(t, res.Restricted)
		require.Len(t, res.Macro.BySecteur, 1)
		require.Equal(t, "Nord", res.Macro.BySecteur[0].Secteur)
	})
}
