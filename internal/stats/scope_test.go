package stats

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func caller(secteur string, caps ...string) Caller {
	m := make(map[string]bool, len(caps))
	for _, c := range caps {
		m[c] = true
	}
	return Caller{Capabilities: m, SecteurAssigne: secteur}
}

func TestEffectiveSecteur(t *testing.T) {
	t.Parallel()

	t.Run("all-sector holder keeps the requested value", func(t *testing.T) {
		c := caller("Nord", CapStatsView, CapAllSecteurs)

		require.Equal(t, "Sud", EffectiveSecteur(Filter{Secteur: "Sud"}, c))
		require.Empty(t, EffectiveSecteur(Filter{}, c))
	})

	t.Run("restricted caller is pinned to their sector", func(t *testing.T) {
		c := caller("Nord", CapStatsView)

		require.Equal(t, "Nord", EffectiveSecteur(Filter{Secteur: "Sud"}, c))
		require.Equal(t, "Nord", EffectiveSecteur(Filter{}, c))
	})

	t.Run("restricted caller without assignment keeps the request", func(t *testing.T) {
		c := caller("", CapStatsView)

		require.Equal(t, "Sud", EffectiveSecteur(Filter{Secteur: "Sud"}, c))
	})
}

func TestProbesOtherSecteur(t *testing.T) {
	t.Parallel()

	require.True(t, ProbesOtherSecteur(Filter{Secteur: "Sud"}, caller("Nord", CapStatsView)))
	require.False(t, ProbesOtherSecteur(Filter{Secteur: "Nord"}, caller("Nord", CapStatsView)))
	require.False(t, ProbesOtherSecteur(Filter{}, caller("Nord", CapStatsView)))
	require.False(t, ProbesOtherSecteur(Filter{Secteur: "Sud"}, caller("Nord", CapAllSecteurs)))
}

func TestCanDeleteParticipant(t *testing.T) {
	t.Parallel()

	t.Run("view_all holder may always delete", func(t *testing.T) {
		c := caller("Nord", CapParticipantsViewAll)
		require.True(t, CanDeleteParticipant([]string{"Sud", "Est"}, c))
	})

	t.Run("restricted caller needs single-sector history", func(t *testing.T) {
		c := caller("Nord")

		require.True(t, CanDeleteParticipant(nil, c), "no presences at all")
		require.True(t, CanDeleteParticipant([]string{"Nord"}, c))
		require.True(t, CanDeleteParticipant([]string{"Nord", ""}, c), "blank sectors ignored")
		require.False(t, CanDeleteParticipant([]string{"Sud"}, c))
		require.False(t, CanDeleteParticipant([]string{"Nord", "Sud"}, c))
	})
}
