package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"lacheck/checking"

	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"
)

var ErrUnknownFormat = errors.New("report: unknown format")

// A Reporter writes a verdict in some format
type Reporter interface {
	Report(w io.Writer, v checking.Verdict) error
}

// Returns the reporter for the format. Known formats are text, json and yaml.
func New(format string) (Reporter, error) {
	switch format {
	case "text":
		return Text{}, nil
	case "json":
		return JSON{}, nil
	case "yaml":
		return YAML{}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
}

// Text writes a human readable report.
// Colors are used if w is a terminal.
type Text struct{}

func (Text) Report(w io.Writer, v checking.Verdict) error {
	r := lipgloss.NewRenderer(w)
	pass := r.NewStyle().Bold(true).Foreground(lipgloss.Color("#5FD75F"))
	fail := r.NewStyle().Bold(true).Foreground(lipgloss.Color("#FF6B6B"))
	note := r.NewStyle().Foreground(lipgloss.Color("#AAAAAA"))

	out := fmt.Sprintf("Checking %v slots across %v processes.\n\n", v.NumSlots(), v.NumProcesses)
	for _, sr := range v.Slots {
		if sr.Skipped {
			out += note.Render(fmt.Sprintf("Slot %v: No decisions found.", sr.Slot)) + "\n"
			continue
		}
		out += fmt.Sprintf("Slot %v: Checking %v decisions.\n", sr.Slot, sr.Decisions)
		for _, o := range sr.Outcomes {
			if o.Passed {
				out += fmt.Sprintf("  %v %v\n", pass.Render("[PASS]"), o.Property)
			}
		}
		for _, f := range sr.Failures {
			out += fmt.Sprintf("  %v %v (PID %v): %v\n", fail.Render("[FAIL]"), f.Property, f.ProcessList(), f.Description)
		}
	}
	if v.Passed {
		out += "\n" + pass.Render("SUCCESS: All checks passed!") + "\n"
	} else {
		out += "\n" + fail.Render("FAILURE: Some checks failed.") + "\n"
	}
	_, err := io.WriteString(w, out)
	return err
}

// JSON writes the verdict as an indented JSON document
type JSON struct{}

func (JSON) Report(w io.Writer, v checking.Verdict) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// YAML writes the verdict as a YAML document
type YAML struct{}

func (YAML) Report(w io.Writer, v checking.Verdict) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}
