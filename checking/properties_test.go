package checking

import (
	"testing"

	"lacheck/state"
	"lacheck/valueset"

	"golang.org/x/exp/slices"
)

func TestConsistency(t *testing.T) {
	for i, test := range consistencyTest {
		failures := Consistency.Pred(view(nil, test.decisions))
		if len(failures) != len(test.expected) {
			t.Errorf("Test %v: Unexpected number of failures. Got %v. Expected %v", i, len(failures), len(test.expected))
			continue
		}
		for j, f := range failures {
			if !slices.Equal(f.Processes, test.expected[j]) {
				t.Errorf("Test %v: Unexpected processes in failure. Got %v. Expected %v", i, f.Processes, test.expected[j])
			}
			if len(f.Sets) != 2 {
				t.Errorf("Test %v: Expected both offending sets in failure. Got %v", i, f.Sets)
			}
		}
	}
}

func TestValidity(t *testing.T) {
	for i, test := range validityTest {
		failures := Validity.Pred(view(test.proposals, test.decisions))
		checkElements(t, i, failures, test.expected)
	}
}

func TestSelfInclusion(t *testing.T) {
	for i, test := range selfInclusionTest {
		failures := SelfInclusion.Pred(view(test.proposals, test.decisions))
		checkElements(t, i, failures, test.expected)
	}
}

// expected maps the id of each failing process to the reported elements
func checkElements(t *testing.T, i int, failures []Failure, expected map[int]valueset.ValueSet) {
	t.Helper()
	if len(failures) != len(expected) {
		t.Errorf("Test %v: Unexpected number of failures. Got %v. Expected %v", i, failures, len(expected))
		return
	}
	for _, f := range failures {
		if len(f.Processes) != 1 {
			t.Errorf("Test %v: Expected a single process in failure. Got %v", i, f.Processes)
			continue
		}
		elements, ok := expected[f.Processes[0]]
		if !ok {
			t.Errorf("Test %v: Unexpected failure for process %v", i, f.Processes[0])
			continue
		}
		if !f.Elements.Equal(elements) {
			t.Errorf("Test %v: Unexpected elements for process %v. Got %v. Expected %v", i, f.Processes[0], f.Elements, elements)
		}
	}
}

func view(proposals, decisions map[int]valueset.ValueSet) state.SlotView {
	sv := state.SlotView{
		Proposals:      map[int]valueset.ValueSet{},
		Decisions:      map[int]valueset.ValueSet{},
		UnionProposals: valueset.New(),
	}
	for id, prop := range proposals {
		sv.Proposals[id] = prop
		sv.UnionProposals = sv.UnionProposals.Union(prop)
	}
	for id, dec := range decisions {
		sv.Decisions[id] = dec
	}
	return sv
}

var consistencyTest = []struct {
	decisions map[int]valueset.ValueSet
	expected  [][]int
}{
	{
		decisions: map[int]valueset.ValueSet{1: valueset.New(1, 2), 2: valueset.New(2, 3)},
		expected:  [][]int{{1, 2}},
	},
	{
		decisions: map[int]valueset.ValueSet{1: valueset.New(1), 2: valueset.New(1, 2), 3: valueset.New(1, 2, 3)},
		expected:  [][]int{},
	},
	{
		decisions: map[int]valueset.ValueSet{1: valueset.New(1, 2)},
		expected:  [][]int{},
	},
	{
		// Only the first incomparable pair is reported
		decisions: map[int]valueset.ValueSet{1: valueset.New(1, 2), 2: valueset.New(1, 3), 3: valueset.New(1, 2)},
		expected:  [][]int{{1, 2}},
	},
	{
		decisions: map[int]valueset.ValueSet{1: valueset.New(), 4: valueset.New(5), 7: valueset.New(5, 6), 9: valueset.New(6)},
		expected:  [][]int{{4, 9}},
	},
}

var validityTest = []struct {
	proposals map[int]valueset.ValueSet
	decisions map[int]valueset.ValueSet
	expected  map[int]valueset.ValueSet
}{
	{
		proposals: map[int]valueset.ValueSet{1: valueset.New(1), 2: valueset.New(2)},
		decisions: map[int]valueset.ValueSet{1: valueset.New(1, 2), 2: valueset.New(1, 2)},
		expected:  map[int]valueset.ValueSet{},
	},
	{
		proposals: map[int]valueset.ValueSet{1: valueset.New(1), 2: valueset.New(2)},
		decisions: map[int]valueset.ValueSet{1: valueset.New(1, 2, 9), 2: valueset.New(1)},
		expected:  map[int]valueset.ValueSet{1: valueset.New(9)},
	},
	{
		proposals: map[int]valueset.ValueSet{},
		decisions: map[int]valueset.ValueSet{1: valueset.New(3), 2: valueset.New()},
		expected:  map[int]valueset.ValueSet{1: valueset.New(3)},
	},
}

var selfInclusionTest = []struct {
	proposals map[int]valueset.ValueSet
	decisions map[int]valueset.ValueSet
	expected  map[int]valueset.ValueSet
}{
	{
		proposals: map[int]valueset.ValueSet{1: valueset.New(1), 2: valueset.New(2)},
		decisions: map[int]valueset.ValueSet{1: valueset.New(1, 2), 2: valueset.New(1, 2)},
		expected:  map[int]valueset.ValueSet{},
	},
	{
		proposals: map[int]valueset.ValueSet{1: valueset.New(1, 4), 2: valueset.New(2)},
		decisions: map[int]valueset.ValueSet{1: valueset.New(1, 2), 2: valueset.New(1, 2)},
		expected:  map[int]valueset.ValueSet{1: valueset.New(4)},
	},
	{
		// A process without a proposal is vacuously included
		proposals: map[int]valueset.ValueSet{1: valueset.New(1)},
		decisions: map[int]valueset.ValueSet{1: valueset.New(1), 2: valueset.New(1)},
		expected:  map[int]valueset.ValueSet{},
	},
}
