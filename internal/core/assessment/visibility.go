package assessment

import (
	"github.com/example/talentflow/internal/errs"
)

// VisibleQuestions returns the ids of the questions that are visible for the
// given responses.
//
// A question without a conditional is always visible. A conditional question
// is visible only when its dependency is visible, answered, and the answer
// satisfies the condition. An absent or empty answer, a hidden dependency or
// an unknown dependency id all leave the question hidden. The result depends
// only on the arguments.
func VisibleQuestions(a Assessment, r Responses) map[string]bool {
	ev := &evaluator{
		index:   a.Index(),
		answers: r,
		memo:    make(map[string]bool),
		active:  make(map[string]bool),
	}

	visible := make(map[string]bool)
	for _, q := range a.Questions() {
		if ev.visible(q.ID) {
			visible[q.ID] = true
		}
	}
	return visible
}

// VisibleIDs returns the visible question ids in definition order.
func VisibleIDs(a Assessment, r Responses) []string {
	set := VisibleQuestions(a, r)
	ids := make([]string, 0, len(set))
	for _, q := range a.Questions() {
		if set[q.ID] {
			ids = append(ids, q.ID)
			delete(set, q.ID)
		}
	}
	return ids
}

type evaluator struct {
	index   map[string]Question
	answers Responses
	memo    map[string]bool
	active  map[string]bool
}

func (e *evaluator) visible(id string) bool {
	if v, ok := e.memo[id]; ok {
		return v
	}
	// A cycle can only reach here for definitions that were never checked;
	// treat the loop as unresolved.
	if e.active[id] {
		return false
	}
	e.active[id] = true
	v := e.resolve(id)
	delete(e.active, id)
	e.memo[id] = v
	return v
}

func (e *evaluator) resolve(id string) bool {
	q, ok := e.index[id]
	if !ok {
		return false
	}
	c := q.Conditional
	if c == nil {
		return true
	}
	if _, ok := e.index[c.DependsOn]; !ok {
		return false
	}
	if !e.visible(c.DependsOn) {
		return false
	}
	answer := e.answers[c.DependsOn]
	if answer.IsEmpty() {
		return false
	}
	return Holds(*c, answer)
}

// Holds evaluates a conditional clause against a present answer.
func Holds(c Conditional, answer Answer) bool {
	switch c.Condition {
	case CondEquals:
		return answer.Equal(c.Value)
	case CondNotEquals:
		return !answer.Equal(c.Value)
	case CondContains:
		return answer.Contains(c.Value.String())
	}
	return false
}

// DetectCycles returns a CyclicConditionalError naming the first dependency
// loop found in definition order, or nil.
func DetectCycles(a Assessment) error {
	index := a.Index()
	done := make(map[string]bool)

	for _, q := range a.Questions() {
		if done[q.ID] {
			continue
		}
		pos := make(map[string]int)
		var path []string
		id := q.ID
		for {
			if done[id] {
				break
			}
			if at, seen := pos[id]; seen {
				cycle := append(append([]string{}, path[at:]...), id)
				return errs.NewCyclicConditionalError(cycle)
			}
			pos[id] = len(path)
			path = append(path, id)

			next, ok := index[id]
			if !ok || next.Conditional == nil {
				break
			}
			id = next.Conditional.DependsOn
		}
		for _, p := range path {
			done[p] = true
		}
	}
	return nil
}
