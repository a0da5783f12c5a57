package checking

import (
	"lacheck/state"
	"lacheck/valueset"
)

// A function evaluated on the view of a slot.
// It returns the failures found in the view. No failures means that the predicate holds.
type Predicate func(sv state.SlotView) []Failure

// A named property of lattice agreement
type Property struct {
	Name string
	Pred Predicate
}

// Check that cond holds for all processes that decided at the slot.
//
// cond is called in increasing order of process id.
// It returns a failure and false if the condition is broken for the process.
// Returns the failures of all processes.
func ForAllDeciders(sv state.SlotView, cond func(id int, decided valueset.ValueSet) (Failure, bool)) []Failure {
	failures := []Failure{}
	for _, id := range sv.Deciders() {
		if f, ok := cond(id, sv.Decisions[id]); !ok {
			if len(f.Processes) == 0 {
				f.Processes = []int{id}
			}
			failures = append(failures, f)
		}
	}
	return failures
}
