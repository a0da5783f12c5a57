package state

import (
	"fmt"

	"lacheck/trace"
	"lacheck/valueset"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// The global view of one slot of the execution
type SlotView struct {
	Slot int

	// A map storing the proposal of every process that proposed at the slot.
	//
	// The map stores (id, proposal) combination.
	Proposals map[int]valueset.ValueSet

	// A map storing the decision of every process that decided at the slot.
	//
	// The map stores (id, decision) combination.
	// Processes that crashed before deciding at the slot are not represented.
	Decisions map[int]valueset.ValueSet

	// The union of all proposals at the slot
	UnionProposals valueset.ValueSet
}

// Aggregate the traces of all processes into the view of a single slot
func Aggregate(slot int, proposals, decisions map[int]trace.Trace) SlotView {
	sv := SlotView{
		Slot:           slot,
		Proposals:      make(map[int]valueset.ValueSet),
		Decisions:      make(map[int]valueset.ValueSet),
		UnionProposals: valueset.New(),
	}
	for id, t := range proposals {
		if prop, ok := t.At(slot); ok {
			sv.Proposals[id] = prop
			sv.UnionProposals = sv.UnionProposals.Union(prop)
		}
	}
	for id, t := range decisions {
		if dec, ok := t.At(slot); ok {
			sv.Decisions[id] = dec
		}
	}
	return sv
}

// Returns true if at least one process decided at the slot
func (sv SlotView) HasDecisions() bool {
	return len(sv.Decisions) > 0
}

// Returns the ids of the processes that decided at the slot in increasing order
func (sv SlotView) Deciders() []int {
	ids := maps.Keys(sv.Decisions)
	slices.Sort(ids)
	return ids
}

// Returns the proposal of the process at the slot.
// A process without a proposal at the slot proposed the empty set.
func (sv SlotView) Proposal(id int) valueset.ValueSet {
	if prop, ok := sv.Proposals[id]; ok {
		return prop
	}
	return valueset.New()
}

func (sv SlotView) String() string {
	return fmt.Sprintf("Slot: %v\t Proposals: %v\t Decisions: %v\t Union: %v", sv.Slot, sv.Proposals, sv.Decisions, sv.UnionProposals)
}

// Returns the number of slots that every process has proposed for.
//
// This is the minimum length of the traces. Returns 0 if there are no traces.
func CommonLength(traces map[int]trace.Trace) int {
	if len(traces) == 0 {
		return 0
	}
	min := -1
	for _, t := range traces {
		if min == -1 || len(t) < min {
			min = len(t)
		}
	}
	return min
}
