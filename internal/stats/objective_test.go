package stats

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func validatedSet(keys ...EvalKey) EvaluationSet {
	set := make(EvaluationSet, len(keys))
	for _, k := range keys {
		set[k] = struct{}{}
	}
	return set
}

func TestObjectiveSuccessOperational(t *testing.T) {
	t.Parallel()

	presences := []Presence{
		{ID: 1, ParticipantID: 10, SessionID: 1},
		{ID: 2, ParticipantID: 11, SessionID: 1},
		{ID: 3, ParticipantID: 11, SessionID: 1}, // duplicate émargement
		{ID: 4, ParticipantID: 12, SessionID: 2}, // other session
	}

	t.Run("all-or-nothing per participant", func(t *testing.T) {
		obj := &Objective{
			ID:              1,
			Type:            ObjectiveTypeOperationnel,
			SessionID:       1,
			SeuilValidation: 50,
			CompetenceIDs:   []int{100, 101},
		}
		// participant 10 validated both, participant 11 only one
		evals := validatedSet(
			EvalKey{ParticipantID: 10, SessionID: 1, CompetenceID: 100},
			EvalKey{ParticipantID: 10, SessionID: 1, CompetenceID: 101},
			EvalKey{ParticipantID: 11, SessionID: 1, CompetenceID: 100},
		)

		res, err := ObjectiveSuccess(obj, presences, evals)

		require.NoError(t, err)
		require.Equal(t, 2, res.Total, "duplicate presences deduplicated")
		require.Equal(t, 1, res.Success)
		require.InDelta(t, 50.0, res.Ratio, 1e-9)
		require.True(t, res.Validated)
	})

	t.Run("zero presences is defined behavior", func(t *testing.T) {
		obj := &Objective{ID: 2, Type: ObjectiveTypeOperationnel, SessionID: 99, SeuilValidation: 60, CompetenceIDs: []int{100}}

		res, err := ObjectiveSuccess(obj, presences, validatedSet())

		require.NoError(t, err)
		require.Zero(t, res.Total)
		require.Zero(t, res.Ratio)
		require.False(t, res.Validated)
	})

	t.Run("zero threshold validates an empty objective", func(t *testing.T) {
		obj := &Objective{ID: 3, Type: ObjectiveTypeOperationnel, SessionID: 99, SeuilValidation: 0, CompetenceIDs: []int{100}}

		res, err := ObjectiveSuccess(obj, presences, validatedSet())

		require.NoError(t, err)
		require.True(t, res.Validated, "0 >= 0")
	})

	t.Run("no competency set scores zero", func(t *testing.T) {
		obj := &Objective{ID: 4, Type: ObjectiveTypeOperationnel, SessionID: 1, SeuilValidation: 10}

		res, err := ObjectiveSuccess(obj, presences, validatedSet())

		require.NoError(t, err)
		require.Zero(t, res.Total)
		require.Zero(t, res.Ratio)
		require.False(t, res.Validated)
	})
}

func TestObjectiveSuccessComposite(t *testing.T) {
	t.Parallel()

	presences := []Presence{
		{ID: 1, ParticipantID: 10, SessionID: 1},
		{ID: 2, ParticipantID: 11, SessionID: 2},
	}
	evals := validatedSet(
		EvalKey{ParticipantID: 10, SessionID: 1, CompetenceID: 100},
	)

	op := func(id, sessionID int, seuil float64) *Objective {
		return &Objective{
			ID:              id,
			Type:            ObjectiveTypeOperationnel,
			SessionID:       sessionID,
			SeuilValidation: seuil,
			CompetenceIDs:   []int{100},
		}
	}

	t.Run("rolls children up", func(t *testing.T) {
		root := &Objective{
			ID:              10,
			Type:            "general",
			SeuilValidation: 50,
			Enfants: []*Objective{
				op(11, 1, 100), // 1/1 validated
				op(12, 2, 100), // 0/1 not validated
			},
		}

		res, err := ObjectiveSuccess(root, presences, evals)

		require.NoError(t, err)
		require.Equal(t, 2, res.Total)
		require.Equal(t, 1, res.Success)
		require.InDelta(t, 50.0, res.Ratio, 1e-9)
		require.True(t, res.Validated)
	})

	t.Run("no children means nothing to validate", func(t *testing.T) {
		root := &Objective{ID: 20, Type: "specifique", SeuilValidation: 0}

		res, err := ObjectiveSuccess(root, presences, evals)

		require.NoError(t, err)
		require.Equal(t, ObjectiveResult{}, res)
	})

	t.Run("cycle fails fast", func(t *testing.T) {
		a := &Objective{ID: 30, Type: "general", SeuilValidation: 50}
		b := &Objective{ID: 31, Type: "specifique", SeuilValidation: 50}
		a.Enfants = []*Objective{b}
		b.Enfants = []*Objective{a}

		_, err := ObjectiveSuccess(a, presences, evals)

		require.ErrorIs(t, err, ErrObjectiveCycle)
	})

	t.Run("nested tree", func(t *testing.T) {
		root := &Objective{
			ID:              40,
			Type:            "general",
			SeuilValidation: 100,
			Enfants: []*Objective{
				{
					ID:              41,
					Type:            "specifique",
					SeuilValidation: 50,
					Enfants:         []*Objective{op(42, 1, 100), op(43, 2, 100)},
				},
			},
		}

		res, err := ObjectiveSuccess(root, presences, evals)

		require.NoError(t, err)
		require.Equal(t, 1, res.Total)
		require.Equal(t, 1, res.Success)
		require.True(t, res.Validated)
	})
}
