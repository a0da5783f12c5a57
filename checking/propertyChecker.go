package checking

import (
	"fmt"
	"strconv"
	"strings"

	"lacheck/state"
	"lacheck/valueset"
)

// A violation of a property at one slot
type Failure struct {
	Slot     int    `json:"slot" yaml:"slot"`
	Property string `json:"property" yaml:"property"`
	// The ids of the offending processes
	Processes []int `json:"processes" yaml:"processes"`
	// The offending sets, verbatim
	Sets []valueset.ValueSet `json:"sets" yaml:"sets"`
	// The extra elements of a Validity failure or the missing elements of a Self-Inclusion failure
	Elements    valueset.ValueSet `json:"elements,omitempty" yaml:"elements,omitempty"`
	Description string            `json:"description" yaml:"description"`
}

func (f Failure) String() string {
	return fmt.Sprintf("Slot %v: %v (PID %v): %v", f.Slot, f.Property, f.ProcessList(), f.Description)
}

// ProcessList renders the offending process ids as "1, 2"
func (f Failure) ProcessList() string {
	ids := make([]string, len(f.Processes))
	for i, id := range f.Processes {
		ids[i] = strconv.Itoa(id)
	}
	return strings.Join(ids, ", ")
}

// The outcome of one property at one slot
type Outcome struct {
	Property string `json:"property" yaml:"property"`
	Passed   bool   `json:"passed" yaml:"passed"`
}

// The result of checking one slot
type SlotResult struct {
	Slot int `json:"slot" yaml:"slot"`
	// Number of processes that decided at the slot
	Decisions int `json:"decisions" yaml:"decisions"`
	// True if no process decided at the slot. No properties are checked for a skipped slot.
	Skipped  bool      `json:"skipped" yaml:"skipped"`
	Outcomes []Outcome `json:"outcomes,omitempty" yaml:"outcomes,omitempty"`
	Failures []Failure `json:"failures,omitempty" yaml:"failures,omitempty"`
}

func (sr SlotResult) Passed() bool {
	return len(sr.Failures) == 0
}

type PropertyChecker struct {
	// The properties checked on every slot.
	// A property that is broken returns one or more failures describing the violation.
	properties []Property
}

func NewPropertyChecker(properties ...Property) *PropertyChecker {
	return &PropertyChecker{
		properties: properties,
	}
}

// Check all properties on the view of a slot.
//
// All properties are evaluated, even if some of them fail.
// The slot is skipped if no process decided at it.
func (pc *PropertyChecker) Check(sv state.SlotView) SlotResult {
	result := SlotResult{
		Slot:      sv.Slot,
		Decisions: len(sv.Decisions),
	}
	if !sv.HasDecisions() {
		result.Skipped = true
		return result
	}
	for _, prop := range pc.properties {
		failures := prop.Pred(sv)
		for _, f := range failures {
			f.Slot = sv.Slot
			f.Property = prop.Name
			result.Failures = append(result.Failures, f)
		}
		result.Outcomes = append(result.Outcomes, Outcome{Property: prop.Name, Passed: len(failures) == 0})
	}
	return result
}
