package converter

import (
	"testing"

	"stats-impact-backend/internal/domain/entity"
	"stats-impact-backend/internal/stats"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func TestObjectifToTree(t *testing.T) {
	t.Parallel()

	root := &entity.Objectif{
		ID:              1,
		Type:            entity.ObjectifTypeGeneral,
		SeuilValidation: 50,
		Enfants: []entity.Objectif{
			{
				ID:              2,
				Type:            entity.ObjectifTypeOperationnel,
				SeuilValidation: 80,
				SessionID:       intPtr(42),
				Competences: []entity.Competence{
					{ID: 7},
					{ID: 8},
				},
			},
		},
	}

	tree := ObjectifToTree(root)

	require.NotNil(t, tree)
	assert.Equal(t, 1, tree.ID)
	assert.Equal(t, 0, tree.SessionID, "composite node has no session")
	require.Len(t, tree.Enfants, 1)

	leaf := tree.Enfants[0]
	assert.Equal(t, stats.ObjectiveTypeOperationnel, leaf.Type)
	assert.Equal(t, 42, leaf.SessionID)
	assert.Equal(t, []int{7, 8}, leaf.CompetenceIDs)
	assert.Equal(t, 80.0, leaf.SeuilValidation)
}

func TestObjectifToTreeNil(t *testing.T) {
	t.Parallel()

	assert.Nil(t, ObjectifToTree(nil))
}

func TestEvaluationsToSet(t *testing.T) {
	t.Parallel()

	evaluations := []entity.Evaluation{
		{ID: 1, ParticipantID: 3, SessionID: intPtr(42), CompetenceID: 7, Etat: entity.EtatValide},
		{ID: 2, ParticipantID: 3, SessionID: intPtr(42), CompetenceID: 8, Etat: entity.EtatValide - 1},
		{ID: 3, ParticipantID: 4, SessionID: nil, CompetenceID: 7, Etat: entity.EtatValide},
	}

	set := EvaluationsToSet(evaluations)

	require.Len(t, set, 2)

	_, ok := set[stats.EvalKey{ParticipantID: 3, SessionID: 42, CompetenceID: 7}]
	assert.True(t, ok)

	_, ok = set[stats.EvalKey{ParticipantID: 3, SessionID: 42, CompetenceID: 8}]
	assert.False(t, ok, "non validated evaluations are skipped")

	_, ok = set[stats.EvalKey{ParticipantID: 4, SessionID: 0, CompetenceID: 7}]
	assert.True(t, ok, "sessionless evaluations key to session 0")
}
