package stats

import "errors"

// ErrObjectiveCycle reports a malformed objective tree. The tree is supposed
// to be acyclic by construction; walking one that is not fails fast instead
// of recursing forever.
var ErrObjectiveCycle = errors.New("objective tree contains a cycle")

// Objective is one node of the learning-objective tree. Operational
// objectives (SessionID != 0) score participants against their competency
// set; the other types aggregate their children.
type Objective struct {
	ID              int
	Type            string
	SessionID       int
	SeuilValidation float64
	CompetenceIDs   []int
	Enfants         []*Objective
}

const ObjectiveTypeOperationnel = "operationnel"

// ObjectiveResult is the roll-up of one node: success over total, the ratio
// as a percentage, and whether the ratio reaches the validation threshold.
type ObjectiveResult struct {
	Ratio     float64 `json:"ratio"`
	Validated bool    `json:"validated"`
	Total     int     `json:"total"`
	Success   int     `json:"success"`
}

// EvalKey identifies one validated competency evaluation.
type EvalKey struct {
	ParticipantID int
	SessionID     int
	CompetenceID  int
}

// EvaluationSet holds the validated (etat >= 2) evaluations.
type EvaluationSet map[EvalKey]struct{}

// ObjectiveSuccess rolls an objective tree up.
//
// Operational node: total is the distinct participants present at the
// node's session; success those of them with a validated evaluation for
// every competency of the node (all or nothing, no partial credit).
// Composite node: total is the child count, success the validated children.
// Either way ratio is success/total as a percentage (0 over an empty total)
// and validated compares the ratio to the node's threshold.
func ObjectiveSuccess(obj *Objective, presences []Presence, validated EvaluationSet) (ObjectiveResult, error) {
	return objectiveWalk(obj, presences, validated, map[int]bool{})
}

func objectiveWalk(obj *Objective, presences []Presence, validated EvaluationSet, visited map[int]bool) (ObjectiveResult, error) {
	if obj == nil {
		return ObjectiveResult{}, nil
	}
	if visited[obj.ID] {
		return ObjectiveResult{}, ErrObjectiveCycle
	}
	visited[obj.ID] = true

	if obj.Type == ObjectiveTypeOperationnel && obj.SessionID != 0 {
		return operationalResult(obj, presences, validated), nil
	}

	if len(obj.Enfants) == 0 {
		return ObjectiveResult{}, nil
	}

	total := len(obj.Enfants)
	success := 0
	for _, child := range obj.Enfants {
		res, err := objectiveWalk(child, presences, validated, visited)
		if err != nil {
			return ObjectiveResult{}, err
		}
		if res.Validated {
			success++
		}
	}
	ratio := pct(success, total)
	return ObjectiveResult{
		Ratio:     ratio,
		Validated: ratio >= obj.SeuilValidation,
		Total:     total,
		Success:   success,
	}, nil
}

func operationalResult(obj *Objective, presences []Presence, validated EvaluationSet) ObjectiveResult {
	if len(obj.CompetenceIDs) == 0 {
		return ObjectiveResult{Validated: 0 >= obj.SeuilValidation}
	}

	present := make(map[int]bool)
	for _, pr := range presences {
		if pr.SessionID == obj.SessionID {
			present[pr.ParticipantID] = true
		}
	}

	total := len(present)
	success := 0
	for pid := range present {
		all := true
		for _, cid := range obj.CompetenceIDs {
			if _, ok := validated[EvalKey{ParticipantID: pid, SessionID: obj.SessionID, CompetenceID: cid}]; !ok {
				all = false
				break
			}
		}
		if all {
			success++
		}
	}

	ratio := pct(success, total)
	return ObjectiveResult{
		Ratio:     ratio,
		Validated: ratio >= obj.SeuilValidation,
		Total:     total,
		Success:   success,
	}
}
