package converter

import (
	"testing"
	"time"

	"stats-impact-backend/internal/domain/entity"
	"stats-impact-backend/internal/stats"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildSnapshot(t *testing.T) {
	t.Parallel()

	collective := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)
	rdv := time.Date(2024, time.March, 8, 0, 0, 0, 0, time.UTC)

	ateliers := []entity.Atelier{
		{ID: 1, Nom: "Informatique", Secteur: "Nord", IsDeleted: false},
		{ID: 2, Nom: "Cuisine", Secteur: "Sud", IsDeleted: true},
	}
	sessions := []entity.SessionActivite{
		{ID: 10, AtelierID: 1, DateSession: &collective},
		{ID: 11, AtelierID: 1, DateSession: &collective, RDVDate: &rdv},
		{ID: 12, AtelierID: 2},
	}
	presences := []entity.PresenceActivite{
		{ID: 100, ParticipantID: 3, SessionID: 10},
	}
	participants := []entity.Participant{
		{ID: 3, Nom: "Durand", Prenom: "Alice", Quartier: &entity.Quartier{Nom: "Centre"}},
		{ID: 4, Nom: "Martin"},
	}

	snap := BuildSnapshot(ateliers, sessions, presences, participants)

	require.Len(t, snap.Ateliers, 2)
	assert.True(t, snap.Ateliers[1].IsDeleted)

	require.Len(t, snap.Sessions, 3)
	assert.Equal(t, &collective, snap.Sessions[0].Date, "collective date passes through")
	assert.Equal(t, &rdv, snap.Sessions[1].Date, "rdv date wins over the collective one")
	assert.Nil(t, snap.Sessions[2].Date, "draft sessions stay undated")

	require.Len(t, snap.Presences, 1)
	assert.Equal(t, 3, snap.Presences[0].ParticipantID)

	require.Len(t, snap.Participants, 2)
	assert.Equal(t, "Centre", snap.Participants[3].Quartier)
	assert.Equal(t, "", snap.Participants[4].Quartier)
}

func TestCapacitesToMap(t *testing.T) {
	t.Parallel()

	capacites := []entity.AtelierCapaciteMois{
		{AtelierID: 1, Annee: 2024, Mois: 3, Capacite: 12},
		{AtelierID: 1, Annee: 2024, Mois: 4, Capacite: 15},
	}

	m := CapacitesToMap(capacites)

	require.Len(t, m, 2)
	assert.Equal(t, 12, m[stats.CapacityKey{AtelierID: 1, Annee: 2024, Mois: 3}])
	assert.Equal(t, 15, m[stats.CapacityKey{AtelierID: 1, Annee: 2024, Mois: 4}])
}
