package usecase

import (
	"testing"
	"time"

	"stats-impact-backend/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleExportRow() exportRow {
	dob := time.Date(1990, time.March, 15, 0, 0, 0, 0, time.UTC)
	rdv := time.Date(2024, time.February, 10, 0, 0, 0, 0, time.UTC)
	collective := time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC)

	return exportRow{
		Presence: &entity.PresenceActivite{
			ID:        7,
			Motif:     "suivi",
			CreatedAt: time.Date(2024, time.February, 10, 14, 30, 0, 0, time.UTC),
		},
		Participant: &entity.Participant{
			ID:            3,
			Nom:           "Durand",
			Prenom:        "Alice",
			Ville:         "Roubaix",
			DateNaissance: &dob,
			Quartier:      &entity.Quartier{Nom: "Centre"},
		},
		Session: &entity.SessionActivite{
			ID:          12,
			SessionType: entity.SessionTypeRDV,
			DateSession: &collective,
			RDVDate:     &rdv,
			HeureDebut:  "09:00",
			RDVDebut:    "10:30",
		},
		Atelier: &entity.Atelier{
			ID:      5,
			Nom:     "Informatique",
			Secteur: "Nord",
		},
	}
}

func TestResolveExportFields(t *testing.T) {
	t.Parallel()

	t.Run("empty request falls back to defaults", func(t *testing.T) {
		t.Parallel()

		fields := resolveExportFields(nil)
		require.Len(t, fields, len(defaultExportFields))
		for i, f := range fields {
			assert.Equal(t, defaultExportFields[i], f.Key)
		}
	})

	t.Run("unknown keys are dropped", func(t *testing.T) {
		t.Parallel()

		fields := resolveExportFields([]string{"participant_nom", "bogus", "atelier_secteur"})
		require.Len(t, fields, 2)
		assert.Equal(t, "participant_nom", fields[0].Key)
		assert.Equal(t, "atelier_secteur", fields[1].Key)
	})

	t.Run("only unknown keys falls back to defaults", func(t *testing.T) {
		t.Parallel()

		fields := resolveExportFields([]string{"bogus", "nope"})
		require.Len(t, fields, len(defaultExportFields))
	})

	t.Run("request order is preserved", func(t *testing.T) {
		t.Parallel()

		fields := resolveExportFields([]string{"session_date", "participant_nom"})
		require.Len(t, fields, 2)
		assert.Equal(t, "session_date", fields[0].Key)
		assert.Equal(t, "participant_nom", fields[1].Key)
	})
}

func TestExportFieldGetters(t *testing.T) {
	t.Parallel()

	row := sampleExportRow()

	t.Run("rdv columns override collective ones", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "2024-02-10", exportFieldMap["session_date"].Value(row))
		assert.Equal(t, "10:30", exportFieldMap["session_heure_debut"].Value(row))
	})

	t.Run("quartier resolves through the relation", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "Centre", exportFieldMap["participant_quartier"].Value(row))

		noQuartier := row
		bare := *row.Participant
		bare.Quartier = nil
		noQuartier.Participant = &bare
		assert.Equal(t, "", exportFieldMap["participant_quartier"].Value(noQuartier))
	})

	t.Run("dates and timestamps are machine formatted", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "1990-03-15", exportFieldMap["participant_date_naissance"].Value(row))
		assert.Equal(t, "2024-02-10 14:30", exportFieldMap["presence_created_at"].Value(row))
	})

	t.Run("zero duration renders empty", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "", exportFieldMap["session_duree_minutes"].Value(row))
	})

	t.Run("ids render as integers", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "3", exportFieldMap["participant_id"].Value(row))
		assert.Equal(t, "12", exportFieldMap["session_id"].Value(row))
		assert.Equal(t, "5", exportFieldMap["atelier_id"].Value(row))
		assert.Equal(t, "7", exportFieldMap["presence_id"].Value(row))
	})
}

func TestExportFieldGroupsRegistry(t *testing.T) {
	t.Parallel()

	t.Run("every default field is registered", func(t *testing.T) {
		t.Parallel()

		for _, key := range defaultExportFields {
			_, ok := exportFieldMap[key]
			assert.True(t, ok, "default field %s missing from registry", key)
		}
	})

	t.Run("keys are unique across groups", func(t *testing.T) {
		t.Parallel()

		total := 0
		for _, g := range exportFieldGroups {
			total += len(g.Fields)
		}
		assert.Equal(t, total, len(exportFieldMap))
	})
}
