package project

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
)

// AnalysisType selects which sweep set a run computes.
type AnalysisType string

const (
	AnalysisFrequency AnalysisType = "frequency"
	AnalysisParameter AnalysisType = "parameter"
	AnalysisOptimize  AnalysisType = "optimize"
)

var analysisSweepTypes = map[AnalysisType]string{
	AnalysisFrequency: "STD",
	AnalysisParameter: "VARSWP",
	AnalysisOptimize:  "OPTIMIZE",
}

// LocateSonnet records the Sonnet installation directory in the
// configuration. The directory must contain the em binary under bin/.
func (c *Config) LocateSonnet(dir, version, licenseID string) error {
	em := filepath.Join(dir, "bin", "em")
	if _, err := os.Stat(em); err != nil {
		return fmt.Errorf("project: no em binary at %s: %w", em, err)
	}
	c.Sonnet.SonnetPath = dir
	c.Sonnet.Version = version
	c.Sonnet.LicenseID = licenseID
	return nil
}

// RunOptions tunes a simulator invocation.
type RunOptions struct {
	// Options are command line options passed to em. Empty means "-v",
	// which streams analysis progress.
	Options string

	// ExternalFrequencyFile, when set, overrides the sweeps in the project
	// file with frequencies read from this file.
	ExternalFrequencyFile string
}

// Run invokes the em simulator on the last written project file and blocks
// until it finishes. Simulator output is streamed to the logger line by
// line. The project file must have been written and the Sonnet installation
// located first.
func (p *Project) Run(ctx context.Context, analysis AnalysisType, opts RunOptions) error {
	sweepType, ok := analysisSweepTypes[analysis]
	if !ok {
		return fmt.Errorf("%w: unknown analysis type %q", ErrInvalidSweep, analysis)
	}
	if !p.Config.HasSweeps() {
		return fmt.Errorf("%w: no sweeps added", ErrNotConfigured)
	}
	if p.FilePath == "" {
		return fmt.Errorf("%w: project file not written", ErrNotConfigured)
	}
	if p.Config.Sonnet.SonnetPath == "" {
		return fmt.Errorf("%w: Sonnet installation not located", ErrNotConfigured)
	}
	p.Config.Control.SweepType = sweepType

	options := opts.Options
	if options == "" {
		options = "-v"
	}
	args := []string{options, p.FilePath}
	if opts.ExternalFrequencyFile != "" {
		args = append(args, opts.ExternalFrequencyFile)
	}

	em := filepath.Join(p.Config.Sonnet.SonnetPath, "bin", "em")
	cmd := exec.CommandContext(ctx, em, args...)
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("project: open simulator output: %w", err)
	}
	cmd.Stderr = cmd.Stdout

	p.logger.Info("starting simulation", "analysis", analysis, "project", p.FilePath)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("project: start em: %w", err)
	}
	scanner := bufio.NewScanner(stdout)
	for scanner.Scan() {
		p.logger.Info("em", "line", scanner.Text())
	}
	if err := cmd.Wait(); err != nil {
		return fmt.Errorf("project: em failed: %w", err)
	}
	p.logger.Info("simulation finished", "project", p.FilePath)
	return nil
}
