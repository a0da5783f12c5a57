package config

import (
	"log"

	"lacheck/checking"
)

// Configures the properties that are checked on every slot.
//
// Default value is the three properties of lattice agreement.
type PropertyOption struct {
	Properties []checking.Property
}

func (po PropertyOption) ValidateOpt() {}

// Configures the logger used for informational notes and warnings.
//
// Default value is log.Default().
type LoggerOption struct {
	Logger *log.Logger
}

func (lo LoggerOption) ValidateOpt() {}

// Configures whether a warning is logged when the proposal traces have different lengths.
//
// Default value is enabled.
type DivergenceWarningOption struct {
	Enabled bool
}

func (dwo DivergenceWarningOption) ValidateOpt() {}
