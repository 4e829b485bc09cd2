package converter

import (
	"stats-impact-backend/internal/domain/entity"
	"stats-impact-backend/internal/stats"
)

// ObjectifToTree converts one persisted objective with its preloaded children
// and competencies into the engine's tree node.
func ObjectifToTree(o *entity.Objectif) *stats.Objective {
	if o == nil {
		return nil
	}

	node := &stats.Objective{
		ID:              o.ID,
		Type:            o.Type,
		SeuilValidation: o.SeuilValidation,
	}
	if o.SessionID != nil {
		node.SessionID = *o.SessionID
	}
	for _, c := range o.Competences {
		node.CompetenceIDs = append(node.CompetenceIDs, c.ID)
	}
	for i := range o.Enfants {
		node.Enfants = append(node.Enfants, ObjectifToTree(&o.Enfants[i]))
	}
	return node
}

// ObjectifsToTrees converts a slice of root objectives.
func ObjectifsToTrees(objectifs []entity.Objectif) []*stats.Objective {
	trees := make([]*stats.Objective, 0, len(objectifs))
	for i := range objectifs {
		trees = append(trees, ObjectifToTree(&objectifs[i]))
	}
	return trees
}

// EvaluationsToSet indexes validated evaluations for the roll-up. Evaluations
// without a session resolve to session 0 and never match an operational node.
func EvaluationsToSet(evaluations []entity.Evaluation) stats.EvaluationSet {
	set := make(stats.EvaluationSet, len(evaluations))
	for _, e := range evaluations {
		if !e.Validated() {
			continue
		}
		sessionID := 0
		if e.SessionID != nil {
			sessionID = *e.SessionID
		}
		set[stats.EvalKey{
			ParticipantID: e.ParticipantID,
			SessionID:     sessionID,
			CompetenceID:  e.CompetenceID,
		}] = struct{}{}
	}
	return set
}
