package project

import (
	"fmt"
	"strings"
)

// SweepType enumerates the supported frequency sweep kinds.
type SweepType string

const (
	SweepLinear      SweepType = "linear"
	SweepExponential SweepType = "exponential"
	SweepSingle      SweepType = "single"
	SweepList        SweepType = "list"
	SweepDC          SweepType = "dc"
	SweepABS         SweepType = "abs"
	SweepABSMin      SweepType = "abs_min"
	SweepABSMax      SweepType = "abs_max"
)

// FrequencySweep describes one sweep to add to the analysis. Which fields
// are required depends on the type:
//
//	linear:      F1, F2 and exactly one of FStep or NPoints
//	exponential: F1, F2, NPoints
//	single:      F1
//	list:        Frequencies
//	dc:          F1 optional (kHz); computed by Sonnet when zero
//	abs:         F1, F2
//	abs_min:     SParameter, F1, F2
//	abs_max:     SParameter, F1, F2
//
// Frequencies are in the project's frequency unit.
type FrequencySweep struct {
	Type        SweepType
	F1, F2      float64
	NPoints     int
	FStep       float64
	Frequencies []float64
	SParameter  string // e.g. "S21"
}

// AddFrequencySweep formats the sweep and appends it to the frequency
// section. All added sweeps are computed when the project runs a frequency
// analysis.
func (c *Config) AddFrequencySweep(s FrequencySweep) error {
	line, err := formatSweep(s)
	if err != nil {
		return err
	}
	addLine(&c.Frequency.Sweeps, line)
	return nil
}

// ClearFrequencySweeps removes all added frequency sweeps.
func (c *Config) ClearFrequencySweeps() {
	c.Frequency.Sweeps = ""
}

// ClearParameterSweeps removes all added parameter sweeps.
func (c *Config) ClearParameterSweeps() {
	c.ParameterSweep.ParameterSweep = ""
}

// ClearOptimizations removes all added optimization parameters and goals.
func (c *Config) ClearOptimizations() {
	c.Optimization.OptimizationParameters = ""
	c.Optimization.OptimizationGoals = ""
}

func formatSweep(s FrequencySweep) (string, error) {
	switch s.Type {
	case SweepLinear:
		if s.F1 == 0 && s.F2 == 0 {
			return "", fmt.Errorf("%w: linear sweep needs F1 and F2", ErrInvalidSweep)
		}
		switch {
		case s.FStep != 0 && s.NPoints == 0:
			return fmt.Sprintf(sweepFormat, s.F1, s.F2, s.FStep), nil
		case s.FStep == 0 && s.NPoints != 0:
			return fmt.Sprintf(lsweepFormat, s.F1, s.F2, s.NPoints), nil
		default:
			return "", fmt.Errorf("%w: linear sweep needs exactly one of FStep or NPoints", ErrInvalidSweep)
		}
	case SweepExponential:
		if s.NPoints == 0 {
			return "", fmt.Errorf("%w: exponential sweep needs NPoints", ErrInvalidSweep)
		}
		return fmt.Sprintf(esweepFormat, s.F1, s.F2, s.NPoints), nil
	case SweepSingle:
		return fmt.Sprintf(stepFormat, s.F1), nil
	case SweepList:
		if len(s.Frequencies) == 0 {
			return "", fmt.Errorf("%w: list sweep needs Frequencies", ErrInvalidSweep)
		}
		parts := make([]string, len(s.Frequencies))
		for i, f := range s.Frequencies {
			parts[i] = fmt.Sprintf("%g", f)
		}
		return fmt.Sprintf(listFormat, strings.Join(parts, " ")), nil
	case SweepDC:
		if s.F1 == 0 {
			return "DC_FREQ AUTO", nil
		}
		return fmt.Sprintf(dcFormat, "MAN", s.F1), nil
	case SweepABS:
		return fmt.Sprintf(absFormat, s.F1, s.F2), nil
	case SweepABSMin:
		if s.SParameter == "" {
			return "", fmt.Errorf("%w: abs_min sweep needs SParameter", ErrInvalidSweep)
		}
		return fmt.Sprintf(absMinFormat, s.SParameter, s.F1, s.F2), nil
	case SweepABSMax:
		if s.SParameter == "" {
			return "", fmt.Errorf("%w: abs_max sweep needs SParameter", ErrInvalidSweep)
		}
		return fmt.Sprintf(absMaxFormat, s.SParameter, s.F1, s.F2), nil
	}
	return "", fmt.Errorf("%w: unknown sweep type %q", ErrInvalidSweep, s.Type)
}

// HasSweeps reports whether any frequency sweep, parameter sweep, or
// optimization goal has been added.
func (c *Config) HasSweeps() bool {
	return c.Frequency.Sweeps != "" ||
		c.ParameterSweep.ParameterSweep != "" ||
		c.Optimization.OptimizationGoals != ""
}
