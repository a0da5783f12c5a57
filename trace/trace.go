package trace

import (
	"errors"

	"lacheck/valueset"
)

var (
	// Returned when no configuration exists for a process.
	// Without the proposals of every process the checked slot range can not be determined.
	ErrConfigMissing = errors.New("trace: configuration missing")
)

// A Trace is an ordered sequence of value sets, one per slot.
type Trace []valueset.ValueSet

// Returns the value set at the slot and true, or nil and false if the trace does not reach the slot
func (t Trace) At(slot int) (valueset.ValueSet, bool) {
	if slot < 0 || slot >= len(t) {
		return nil, false
	}
	return t[slot], true
}

// Provides the proposals of a process.
type ProposalSource interface {
	// Load the proposal trace of the process.
	//
	// Returns an error wrapping ErrConfigMissing if no configuration exists for the process.
	LoadProposals(id int) (Trace, error)
}

// Provides the decisions of a process.
type DecisionSource interface {
	// Load the decision trace of the process.
	//
	// A process without recorded output has an empty trace. This is not an error.
	// An error is only returned if the recorded output can not be read.
	LoadDecisions(id int) (Trace, error)
}

// Memory stores traces in memory. It implements both ProposalSource and DecisionSource.
type Memory struct {
	Proposals map[int]Trace
	Decisions map[int]Trace
}

func NewMemory() *Memory {
	return &Memory{
		Proposals: make(map[int]Trace),
		Decisions: make(map[int]Trace),
	}
}

// Propose appends a proposal to the trace of the process
func (m *Memory) Propose(id int, values ...int) *Memory {
	m.Proposals[id] = append(m.Proposals[id], valueset.New(values...))
	return m
}

// Decide appends a decision to the trace of the process
func (m *Memory) Decide(id int, values ...int) *Memory {
	m.Decisions[id] = append(m.Decisions[id], valueset.New(values...))
	return m
}

func (m *Memory) LoadProposals(id int) (Trace, error) {
	t, ok := m.Proposals[id]
	if !ok {
		return nil, ErrConfigMissing
	}
	return t, nil
}

func (m *Memory) LoadDecisions(id int) (Trace, error) {
	return m.Decisions[id], nil
}

// Collect loads the traces of processes 1..numProcesses into memory.
//
// Processes without configuration are left out of the proposals, so loading them from the returned Memory fails with ErrConfigMissing.
func Collect(proposals ProposalSource, decisions DecisionSource, numProcesses int) (*Memory, error) {
	m := NewMemory()
	for id := 1; id <= numProcesses; id++ {
		t, err := proposals.LoadProposals(id)
		if errors.Is(err, ErrConfigMissing) {
			continue
		}
		if err != nil {
			return nil, err
		}
		m.Proposals[id] = t
	}
	for id := 1; id <= numProcesses; id++ {
		t, err := decisions.LoadDecisions(id)
		if err != nil {
			return nil, err
		}
		m.Decisions[id] = t
	}
	return m, nil
}
