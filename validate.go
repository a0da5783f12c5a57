package lacheck

import (
	"errors"
	"fmt"
	"log"

	"lacheck/checking"
	"lacheck/config"
	"lacheck/state"
	"lacheck/trace"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

var (
	// Returned when the processes have no common slot to check
	ErrNoProposals = errors.New("lacheck: no proposals found")
	// Returned when the number of processes is not positive
	ErrNoProcesses = errors.New("lacheck: no processes to check")
)

// Validate checks that the recorded traces of processes 1..numProcesses form a valid lattice agreement run.
//
// Loads the proposals of every process and fails if one of them is missing.
// Loads the decisions of every process. A process without decisions crashed and is not an error.
// Checks every slot that all processes proposed for. Slots where no process decided are skipped.
// Returns a fatal error before checking if the traces can not be loaded or there are no slots to check.
// Property violations do not stop the check and are reported in the verdict.
//
// See the ValidateOptions for a full overview of possible options.
func Validate(proposals trace.ProposalSource, decisions trace.DecisionSource, numProcesses int, opts ...ValidateOption) (checking.Verdict, error) {
	var (
		properties     = checking.LatticeAgreement()
		logger         = log.Default()
		warnDivergence = true
	)

	for _, opt := range opts {
		switch t := opt.(type) {
		case config.PropertyOption:
			properties = t.Properties
		case config.LoggerOption:
			if t.Logger != nil {
				logger = t.Logger
			}
		case config.DivergenceWarningOption:
			warnDivergence = t.Enabled
		}
	}

	if numProcesses < 1 {
		return checking.Verdict{}, fmt.Errorf("%w: %v", ErrNoProcesses, numProcesses)
	}

	proposalTraces := make(map[int]trace.Trace, numProcesses)
	for id := 1; id <= numProcesses; id++ {
		t, err := proposals.LoadProposals(id)
		if err != nil {
			return checking.Verdict{}, fmt.Errorf("lacheck: loading proposals of process %v: %w", id, err)
		}
		proposalTraces[id] = t
	}

	decisionTraces := make(map[int]trace.Trace, numProcesses)
	for id := 1; id <= numProcesses; id++ {
		t, err := decisions.LoadDecisions(id)
		if err != nil {
			return checking.Verdict{}, fmt.Errorf("lacheck: loading decisions of process %v: %w", id, err)
		}
		decisionTraces[id] = t
	}

	numSlots := state.CommonLength(proposalTraces)
	if numSlots == 0 {
		return checking.Verdict{}, ErrNoProposals
	}
	if warnDivergence {
		warnDivergentTraces(logger, proposalTraces, numSlots)
	}
	logger.Printf("Checking %v slots across %v processes.", numSlots, numProcesses)

	pc := checking.NewPropertyChecker(properties...)
	verdict := checking.NewVerdict(numProcesses)
	for slot := 0; slot < numSlots; slot++ {
		result := pc.Check(state.Aggregate(slot, proposalTraces, decisionTraces))
		if result.Skipped {
			logger.Printf("Slot %v: No decisions found.", slot)
		}
		verdict = verdict.Merge(result)
	}
	return verdict, nil
}

// Log the processes whose proposals reach beyond the checked slots
func warnDivergentTraces(logger *log.Logger, traces map[int]trace.Trace, numSlots int) {
	ids := maps.Keys(traces)
	slices.Sort(ids)
	for _, id := range ids {
		if n := len(traces[id]); n > numSlots {
			logger.Printf("Warning: process %v proposed for %v slots. Only the first %v are checked.", id, n, numSlots)
		}
	}
}

type ValidateOption interface {
	ValidateOpt()
}

// Replace the checked properties
func WithProperties(properties ...checking.Property) ValidateOption {
	return config.PropertyOption{Properties: properties}
}

// Use the logger for informational notes and warnings
func WithLogger(logger *log.Logger) ValidateOption {
	return config.LoggerOption{Logger: logger}
}

// Enable or disable the warning about proposal traces of different lengths
func WithDivergenceWarning(enabled bool) ValidateOption {
	return config.DivergenceWarningOption{Enabled: enabled}
}
