package checking

import (
	"fmt"

	"lacheck/state"
	"lacheck/valueset"
)

const (
	ConsistencyName   = "Consistency"
	ValidityName      = "Validity"
	SelfInclusionName = "Self-Inclusion"
)

// Every pair of decisions at the slot is comparable under subset order.
//
// All pairs are compared since decisions are not ordered by anything but the subset relation itself.
// Reports the first incomparable pair in increasing order of process id.
var Consistency = Property{
	Name: ConsistencyName,
	Pred: func(sv state.SlotView) []Failure {
		ids := sv.Deciders()
		for i := 0; i < len(ids); i++ {
			for j := i + 1; j < len(ids); j++ {
				a, b := sv.Decisions[ids[i]], sv.Decisions[ids[j]]
				if !a.Comparable(b) {
					return []Failure{{
						Processes:   []int{ids[i], ids[j]},
						Sets:        []valueset.ValueSet{a, b},
						Description: fmt.Sprintf("Incomparable sets found: %v vs %v", a, b),
					}}
				}
			}
		}
		return nil
	},
}

// Every decision is a subset of the union of the proposals at the slot.
var Validity = Property{
	Name: ValidityName,
	Pred: func(sv state.SlotView) []Failure {
		return ForAllDeciders(sv, func(id int, decided valueset.ValueSet) (Failure, bool) {
			if decided.IsSubset(sv.UnionProposals) {
				return Failure{}, true
			}
			extra := decided.Difference(sv.UnionProposals)
			return Failure{
				Sets:        []valueset.ValueSet{decided},
				Elements:    extra,
				Description: fmt.Sprintf("Decided value contains extra elements %v", extra),
			}, false
		})
	},
}

// The proposal of a process is a subset of its own decision.
// A process that did not propose at the slot satisfies the property.
var SelfInclusion = Property{
	Name: SelfInclusionName,
	Pred: func(sv state.SlotView) []Failure {
		return ForAllDeciders(sv, func(id int, decided valueset.ValueSet) (Failure, bool) {
			proposed := sv.Proposal(id)
			if proposed.IsSubset(decided) {
				return Failure{}, true
			}
			missing := proposed.Difference(decided)
			return Failure{
				Sets:        []valueset.ValueSet{proposed, decided},
				Elements:    missing,
				Description: fmt.Sprintf("Proposal %v not in decision %v. Missing %v", proposed, decided, missing),
			}, false
		})
	},
}

// The three properties defining lattice agreement
func LatticeAgreement() []Property {
	return []Property{Consistency, Validity, SelfInclusion}
}
