package trace

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
)

// Name of the configuration file of a process
func ConfigFileName(id int) string {
	return fmt.Sprintf("lattice-agreement-%v.config", id)
}

// Name of the output file of a process
func OutputFileName(id int) string {
	return fmt.Sprintf("%v.output", id)
}

// ConfigDir loads proposals from a directory of lattice-agreement-<id>.config files
type ConfigDir struct {
	Dir    string
	Logger *log.Logger
}

func NewConfigDir(dir string, logger *log.Logger) ConfigDir {
	if logger == nil {
		logger = log.Default()
	}
	return ConfigDir{Dir: dir, Logger: logger}
}

func (cd ConfigDir) LoadProposals(id int) (Trace, error) {
	path := filepath.Join(cd.Dir, ConfigFileName(id))
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %v", ErrConfigMissing, path)
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()

	header, proposals, err := ParseConfig(f)
	if err != nil {
		return nil, fmt.Errorf("%v: %w", path, err)
	}
	if header.Count != len(proposals) && cd.Logger != nil {
		cd.Logger.Printf("Warning: %v announces %v proposals but contains %v", path, header.Count, len(proposals))
	}
	return proposals, nil
}

// OutputDir loads decisions from a directory of <id>.output files
type OutputDir struct {
	Dir string
}

func NewOutputDir(dir string) OutputDir {
	return OutputDir{Dir: dir}
}

func (od OutputDir) LoadDecisions(id int) (Trace, error) {
	path := filepath.Join(od.Dir, OutputFileName(id))
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		// The process crashed or never decided
		return Trace{}, nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()

	decisions, err := ParseOutput(f)
	if err != nil {
		return nil, fmt.Errorf("%v: %w", path, err)
	}
	return decisions, nil
}
