package checking

import (
	"bytes"
	"fmt"
	"text/tabwriter"
)

// The accumulated result of checking a run
type Verdict struct {
	// True if all properties hold on all slots. False otherwise
	Passed       bool         `json:"passed" yaml:"passed"`
	NumProcesses int          `json:"num_processes" yaml:"num_processes"`
	Slots        []SlotResult `json:"slots" yaml:"slots"`
	Failures     []Failure    `json:"failures" yaml:"failures"`
}

// Create a verdict for a run with the given number of processes.
// A verdict without slots has passed.
func NewVerdict(numProcesses int) Verdict {
	return Verdict{
		Passed:       true,
		NumProcesses: numProcesses,
		Slots:        []SlotResult{},
		Failures:     []Failure{},
	}
}

// Merge returns a verdict that also accounts for the result of the slot.
//
// The returned verdict may share storage with v. Earlier results seen through v are not changed,
// but only the returned verdict should be merged further.
func (v Verdict) Merge(sr SlotResult) Verdict {
	v.Passed = v.Passed && sr.Passed()
	v.Slots = append(v.Slots, sr)
	v.Failures = append(v.Failures, sr.Failures...)
	return v
}

// Number of slots that were checked, including skipped slots
func (v Verdict) NumSlots() int {
	return len(v.Slots)
}

// Generate a response
// Returns two parameters, result, and description.
// Result is true if all properties hold, false otherwise.
// If result is false the description lists every failure.
func (v Verdict) Response() (bool, string) {
	if v.Passed {
		return true, "All checks passed"
	}
	var buffer bytes.Buffer
	wrt := tabwriter.NewWriter(&buffer, 4, 4, 0, ' ', 0)
	out := fmt.Sprintf("Properties broken. %v failures: \n", len(v.Failures))
	for _, f := range v.Failures {
		fmt.Fprintf(wrt, "-> %v \n", f)
	}
	wrt.Flush()
	out += buffer.String()
	return false, out
}

var _ CheckerResponse = Verdict{}

// Export the failures of the run
func (v Verdict) Export() []Failure {
	failures := make([]Failure, len(v.Failures))
	copy(failures, v.Failures)
	return failures
}
