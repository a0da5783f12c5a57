package trace

import (
	"bytes"
	"errors"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestConfigDir(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, ConfigFileName(1), "3 1\n1\n1 2\n")

	var buffer bytes.Buffer
	cd := NewConfigDir(dir, log.New(&buffer, "", 0))
	proposals, err := cd.LoadProposals(1)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(proposals) != 2 {
		t.Errorf("Expected 2 proposals. Got %v", len(proposals))
	}
	if !strings.Contains(buffer.String(), "announces 3 proposals but contains 2") {
		t.Errorf("Expected a warning about the header count. Got %q", buffer.String())
	}

	_, err = cd.LoadProposals(2)
	if !errors.Is(err, ErrConfigMissing) {
		t.Errorf("Expected ErrConfigMissing. Got %v", err)
	}
}

func TestConfigDirMalformed(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, ConfigFileName(1), "1\na b\n")
	_, err := NewConfigDir(dir, nil).LoadProposals(1)
	if err == nil || errors.Is(err, ErrConfigMissing) {
		t.Errorf("Expected parse error. Got %v", err)
	}
}

func TestOutputDir(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, OutputFileName(1), "1 2\n1 2 3\n")

	od := NewOutputDir(dir)
	decisions, err := od.LoadDecisions(1)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(decisions) != 2 || decisions[1].String() != "{1 2 3}" {
		t.Errorf("Unexpected decisions: %v", decisions)
	}

	// A missing output is a crashed process
	decisions, err = od.LoadDecisions(2)
	if err != nil {
		t.Errorf("Expected no error for missing output. Got %v", err)
	}
	if len(decisions) != 0 {
		t.Errorf("Expected empty trace. Got %v", decisions)
	}
}

func TestMemory(t *testing.T) {
	m := NewMemory().Propose(1, 1).Propose(1, 1, 2).Decide(1, 1)
	proposals, err := m.LoadProposals(1)
	if err != nil || len(proposals) != 2 {
		t.Errorf("Unexpected proposals %v, err %v", proposals, err)
	}
	if _, err := m.LoadProposals(2); !errors.Is(err, ErrConfigMissing) {
		t.Errorf("Expected ErrConfigMissing. Got %v", err)
	}
	decisions, err := m.LoadDecisions(3)
	if err != nil || len(decisions) != 0 {
		t.Errorf("Expected empty decisions for process without output. Got %v, err %v", decisions, err)
	}
	if _, ok := proposals.At(2); ok {
		t.Errorf("Expected slot 2 to be outside the trace")
	}
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
		t.Fatalf("Error while setting up test: %v", err)
	}
}

func TestCollect(t *testing.T) {
	configDir, outputDir := t.TempDir(), t.TempDir()
	writeFile(t, configDir, ConfigFileName(1), "1\n1 2\n")
	writeFile(t, outputDir, OutputFileName(1), "1 2\n")

	m, err := Collect(NewConfigDir(configDir, nil), NewOutputDir(outputDir), 2)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(m.Proposals[1]) != 1 || len(m.Decisions[1]) != 1 {
		t.Errorf("Unexpected traces for process 1: %v %v", m.Proposals[1], m.Decisions[1])
	}
	if _, err := m.LoadProposals(2); !errors.Is(err, ErrConfigMissing) {
		t.Errorf("Expected ErrConfigMissing for process 2. Got %v", err)
	}
	if len(m.Decisions[2]) != 0 {
		t.Errorf("Expected no decisions for process 2. Got %v", m.Decisions[2])
	}
}
