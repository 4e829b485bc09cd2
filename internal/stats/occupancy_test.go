package stats

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOccupancy(t *testing.T) {
	t.Parallel()

	s := testSnapshot()
	capacites := map[CapacityKey]int{
		{AtelierID: 1, Annee: 2024, Mois: 1}: 10,
		{AtelierID: 1, Annee: 2024, Mois: 2}: 4,
	}

	occ := Occupancy(s, year2024(), capacites)

	require.Len(t, occ.Rows, 3)

	jan := occ.Rows[0]
	require.Equal(t, 1, jan.Mois)
	require.Equal(t, 1, jan.NbSessions)
	require.Equal(t, 2, jan.NbPresences)
	require.Equal(t, 10, jan.Capacite)
	require.InDelta(t, 20.0, jan.Taux, 1e-9)

	feb := occ.Rows[1]
	require.Equal(t, 4, feb.Capacite)
	require.InDelta(t, 25.0, feb.Taux, 1e-9)

	t.Run("missing capacity means zero rate, not an error", func(t *testing.T) {
		mar := occ.Rows[2]
		require.Equal(t, "Atelier C", mar.Atelier)
		require.Zero(t, mar.Capacite)
		require.Zero(t, mar.Taux)
	})

	t.Run("global rate over configured capacity", func(t *testing.T) {
		require.Equal(t, 4, occ.NbPresences)
		require.Equal(t, 14, occ.Capacite)
		require.InDelta(t, 100.0*4.0/14.0, occ.TauxGlobal, 1e-9)
	})
}
