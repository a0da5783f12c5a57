package trace

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"lacheck/valueset"
)

const maxLineLength = 16 * 1024 * 1024

// The first non-empty line of a configuration.
type Header struct {
	// The number of proposals announced by the configuration
	Count int
	// Additional header values. They are kept but never used when checking.
	Reserved []int
}

// ParseConfig reads a lattice agreement configuration.
//
// The first non-empty line is the header. Every following non-empty line is one proposal, in slot order.
// An empty configuration returns an empty trace and a zero header.
func ParseConfig(r io.Reader) (Header, Trace, error) {
	var (
		header    Header
		proposals = Trace{}
		seen      bool
	)
	err := scanLines(r, func(lineNo int, line string) error {
		if strings.TrimSpace(line) == "" {
			return nil
		}
		values, err := parseInts(line)
		if err != nil {
			return fmt.Errorf("trace: line %v: %w", lineNo, err)
		}
		if !seen {
			seen = true
			if len(values) == 0 {
				return fmt.Errorf("trace: line %v: empty header", lineNo)
			}
			header.Count = values[0]
			header.Reserved = values[1:]
			return nil
		}
		proposals = append(proposals, valueset.New(values...))
		return nil
	})
	if err != nil {
		return Header{}, nil, err
	}
	return header, proposals, nil
}

// ParseOutput reads the recorded output of a process.
//
// Every line is one decision, in slot order. A blank line is an empty decision.
func ParseOutput(r io.Reader) (Trace, error) {
	decisions := Trace{}
	err := scanLines(r, func(lineNo int, line string) error {
		values, err := parseInts(line)
		if err != nil {
			return fmt.Errorf("trace: line %v: %w", lineNo, err)
		}
		decisions = append(decisions, valueset.New(values...))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return decisions, nil
}

func scanLines(r io.Reader, f func(int, string) error) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineLength)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		if err := f(lineNo, scanner.Text()); err != nil {
			return err
		}
	}
	return scanner.Err()
}

func parseInts(line string) ([]int, error) {
	fields := strings.Fields(line)
	values := make([]int, 0, len(fields))
	for _, field := range fields {
		v, err := strconv.Atoi(field)
		if err != nil {
			return nil, err
		}
		values = append(values, v)
	}
	return values, nil
}
