package stats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func d(value string) *time.Time {
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		panic(err)
	}
	return &t
}

// testSnapshot covers the interesting shapes: a Nord atelier with activity,
// a Nord atelier without any session, a Sud atelier, and a soft-deleted
// atelier whose session must never count.
func testSnapshot() *Snapshot {
	return &Snapshot{
		Ateliers: []Atelier{
			{ID: 1, Nom: "Atelier A", Secteur: "Nord"},
			{ID: 2, Nom: "Atelier B", Secteur: "Nord"},
			{ID: 3, Nom: "Atelier C", Secteur: "Sud"},
			{ID: 4, Nom: "Atelier D", Secteur: "Nord", IsDeleted: true},
		},
		Sessions: []Session{
			{ID: 1, AtelierID: 1, Date: d("2024-01-05")},
			{ID: 2, AtelierID: 1, Date: d("2024-02-10")},
			{ID: 3, AtelierID: 3, Date: d("2024-03-01")},
			{ID: 4, AtelierID: 4, Date: d("2024-01-20")},
			{ID: 5, AtelierID: 1, Date: d("2023-11-02")},
		},
		Presences: []Presence{
			{ID: 1, ParticipantID: 10, SessionID: 1},
			{ID: 2, ParticipantID: 10, SessionID: 2},
			{ID: 3, ParticipantID: 11, SessionID: 1},
			{ID: 4, ParticipantID: 12, SessionID: 3},
			{ID: 5, ParticipantID: 11, SessionID: 4},
			{ID: 6, ParticipantID: 13, SessionID: 5},
		},
		Participants: map[int]Participant{
			10: {ID: 10, Nom: "Durand", Prenom: "Xavier", Ville: "Lille", Quartier: "Centre", Genre: "M", TypePublic: "A", DateNaissance: d("1990-05-01")},
			11: {ID: 11, Nom: "Martin", Prenom: "Yasmina", Ville: "Lille", Genre: "F"},
			12: {ID: 12, Nom: "Petit", Prenom: "Zoe", Ville: "Marseille", Genre: "F", DateNaissance: d("2010-09-15")},
			13: {ID: 13, Nom: "Bernard", Prenom: "Ana", Ville: "Lille", Genre: "F", DateNaissance: d("1958-02-20")},
		},
	}
}

func year2024() Filter {
	return Filter{
		DateFrom:        d("2024-01-01"),
		DateTo:          d("2024-12-31"),
		MaxSessions:     40,
		MaxParticipants: 250,
		View:            ViewMacro,
	}
}

func TestVolumeActivity(t *testing.T) {
	t.Parallel()

	s := testSnapshot()

	t.Run("buckets by month and excludes deleted ateliers", func(t *testing.T) {
		v := VolumeActivity(s, year2024())

		// session 4 (deleted atelier) and session 5 (2023) are out
		require.Equal(t, 3, v.TotalSessions)
		require.Equal(t, 4, v.TotalPresences)
		require.Len(t, v.Buckets, 3)
		require.Equal(t, VolumeBucket{Month: "2024-01", NbSessions: 1, NbPresences: 2}, v.Buckets[0])
		require.Equal(t, VolumeBucket{Month: "2024-02", NbSessions: 1, NbPresences: 1}, v.Buckets[1])
		require.Equal(t, VolumeBucket{Month: "2024-03", NbSessions: 1, NbPresences: 1}, v.Buckets[2])
	})

	t.Run("sector filter narrows the scope", func(t *testing.T) {
		f := year2024()
		f.Secteur = "Sud"
		v := VolumeActivity(s, f)

		require.Equal(t, 1, v.TotalSessions)
		require.Equal(t, 1, v.TotalPresences)
	})

	t.Run("open range counts everything live", func(t *testing.T) {
		v := VolumeActivity(s, Filter{})

		require.Equal(t, 4, v.TotalSessions)
		require.Equal(t, 5, v.TotalPresences)
	})
}

func TestParticipationFrequency(t *testing.T) {
	t.Parallel()

	s := testSnapshot()
	freq := ParticipationFrequency(s, year2024())

	// X came twice, Y and Z once each
	require.Equal(t, 3, freq.TotalParticipants)
	require.Equal(t, 2, freq.Buckets[0].Count)
	require.Equal(t, 1, freq.Buckets[1].Count)
	require.InDelta(t, 66.66, freq.Buckets[0].Pct, 0.01)
	require.InDelta(t, 4.0/3.0, freq.AvgPresences, 1e-9)

	t.Run("empty scope yields zeros, not errors", func(t *testing.T) {
		f := year2024()
		f.Secteur = "Ouest"
		empty := ParticipationFrequency(s, f)

		require.Zero(t, empty.TotalParticipants)
		require.Zero(t, empty.AvgPresences)
		for _, b := range empty.Buckets {
			require.Zero(t, b.Pct)
		}
	})
}

func TestTransversalite(t *testing.T) {
	t.Parallel()

	s := testSnapshot()

	// widen atelier A's reach: participant 10 also visits atelier C
	s.Presences = append(s.Presences, Presence{ID: 7, ParticipantID: 10, SessionID: 3})

	tr := Transversalite(s, year2024())

	require.Equal(t, 3, tr.TotalParticipants)
	require.Equal(t, 2, tr.Buckets[0].Count, "single-atelier participants")
	require.Equal(t, 1, tr.Buckets[1].Count, "two-atelier participants")
	require.InDelta(t, 33.33, tr.MultiAtelierPct, 0.01)
	require.InDelta(t, 33.33, tr.MultiSecteurPct, 0.01)
}

func TestDemography(t *testing.T) {
	t.Parallel()

	s := testSnapshot()
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	demo := Demography(s, year2024(), now)

	require.Equal(t, 3, demo.Total)

	genres := map[string]int{}
	for _, b := range demo.ParGenre {
		genres[b.Label] = b.Count
	}
	require.Equal(t, map[string]int{"M": 1, "F": 2}, genres)

	types := map[string]int{}
	for _, b := range demo.ParTypePublic {
		types[b.Label] = b.Count
	}
	require.Equal(t, 2, types["H"], "missing type_public defaults to H")
	require.Equal(t, 1, types["A"])

	ages := map[string]int{}
	for _, b := range demo.ParAge {
		ages[b.Label] = b.Count
	}
	// ages at the filter's upper bound (2024-12-31): 34, unknown, 14
	require.Equal(t, 1, ages["26-40"])
	require.Equal(t, 1, ages["12-17"])
	require.Equal(t, 1, ages["Inconnu"])

	t.Run("unique participants never exceed presences", func(t *testing.T) {
		v := VolumeActivity(s, year2024())
		require.LessOrEqual(t, demo.Total, v.TotalPresences)
	})
}

func TestAgeBucket(t *testing.T) {
	t.Parallel()

	ref := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	require.Equal(t, "Inconnu", ageBucket(nil, ref))
	require.Equal(t, "Inconnu", ageBucket(d("2030-01-01"), ref))
	require.Equal(t, "-12", ageBucket(d("2015-01-01"), ref))
	require.Equal(t, "12-17", ageBucket(d("2010-01-01"), ref))
	require.Equal(t, "18-25", ageBucket(d("2000-01-01"), ref))
	require.Equal(t, "26-40", ageBucket(d("1990-01-01"), ref))
	require.Equal(t, "41-59", ageBucket(d("1970-01-01"), ref))
	require.Equal(t, "60+", ageBucket(d("1960-01-01"), ref))
	// birthday not yet reached this year
	require.Equal(t, "12-17", ageBucket(d("2006-07-01"), ref))
}
