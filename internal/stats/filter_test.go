package stats

import (
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	t.Parallel()

	t.Run("defaults on empty input", func(t *testing.T) {
		f := Normalize(url.Values{}, DashboardLimits)

		require.Nil(t, f.DateFrom)
		require.Nil(t, f.DateTo)
		require.Empty(t, f.Secteur)
		require.Zero(t, f.AtelierID)
		require.Equal(t, ViewMacro, f.View)
		require.Equal(t, 40, f.MaxSessions)
		require.Equal(t, 250, f.MaxParticipants)
	})

	t.Run("parses dates and swaps reversed bounds", func(t *testing.T) {
		f := Normalize(url.Values{
			"date_from": {"2024-12-31"},
			"date_to":   {"2024-01-01"},
		}, DashboardLimits)

		require.NotNil(t, f.DateFrom)
		require.NotNil(t, f.DateTo)
		require.Equal(t, "2024-01-01", f.DateFrom.Format("2006-01-02"))
		require.Equal(t, "2024-12-31", f.DateTo.Format("2006-01-02"))
		require.False(t, f.DateFrom.After(*f.DateTo))
	})

	t.Run("malformed dates degrade to nil", func(t *testing.T) {
		f := Normalize(url.Values{
			"date_from": {"31/12/2024"},
			"date_to":   {"not-a-date"},
		}, DashboardLimits)

		require.Nil(t, f.DateFrom)
		require.Nil(t, f.DateTo)
	})

	t.Run("unknown view falls back to macro", func(t *testing.T) {
		f := Normalize(url.Values{"view": {"pivot"}}, DashboardLimits)
		require.Equal(t, ViewMacro, f.View)

		f = Normalize(url.Values{"magato_view": {"matrix"}}, DashboardLimits)
		require.Equal(t, ViewMatrix, f.View)
	})

	t.Run("caps are clamped on the export path", func(t *testing.T) {
		cases := []struct {
			rawSessions     string
			rawParticipants string
			wantSessions    int
			wantPart        int
		}{
			{"-10", "-1", 5, 20},
			{"0", "0", 5, 20},
			{"999999", "999999", 400, 5000},
			{"50", "300", 50, 300},
			{"abc", "xyz", 40, 250},
			{"", "", 40, 250},
		}
		for _, tc := range cases {
			f := Normalize(url.Values{
				"max_sessions":     {tc.rawSessions},
				"max_participants": {tc.rawParticipants},
			}, ExportLimits)

			require.Equal(t, tc.wantSessions, f.MaxSessions, "max_sessions for %q", tc.rawSessions)
			require.Equal(t, tc.wantPart, f.MaxParticipants, "max_participants for %q", tc.rawParticipants)
			require.GreaterOrEqual(t, f.MaxSessions, 5)
			require.LessOrEqual(t, f.MaxSessions, 400)
			require.GreaterOrEqual(t, f.MaxParticipants, 20)
			require.LessOrEqual(t, f.MaxParticipants, 5000)
		}
	})

	t.Run("atelier id and participant query", func(t *testing.T) {
		f := Normalize(url.Values{
			"atelier_id":    {"12"},
			"participant_q": {"  dupont "},
		}, DashboardLimits)

		require.Equal(t, 12, f.AtelierID)
		require.Equal(t, "dupont", f.ParticipantQuery)

		f = Normalize(url.Values{"atelier_id": {"zero"}}, DashboardLimits)
		require.Zero(t, f.AtelierID)
	})
}

func TestDefaultToYear(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC)

	t.Run("fills an open range with the current year", func(t *testing.T) {
		f := Filter{}.DefaultToYear(now)

		require.Equal(t, "2024-01-01", f.DateFrom.Format("2006-01-02"))
		require.Equal(t, "2024-12-31", f.DateTo.Format("2006-01-02"))
	})

	t.Run("keeps a half-open range untouched", func(t *testing.T) {
		from := time.Date(2023, 3, 1, 0, 0, 0, 0, time.UTC)
		f := Filter{DateFrom: &from}.DefaultToYear(now)

		require.Equal(t, &from, f.DateFrom)
		require.Nil(t, f.DateTo)
	})
}
