package project

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestGeometryProjectRender(t *testing.T) {
	p, err := NewGeometryProject(nil, nil)
	if err != nil {
		t.Fatalf("NewGeometryProject: %v", err)
	}
	p.SetupBox(500, 400, 100, 80)
	if err := p.AddReferencePlane("left", ReferencePlaneFixed, 50); err != nil {
		t.Fatalf("AddReferencePlane: %v", err)
	}
	if err := p.Config.AddFrequencySweep(FrequencySweep{Type: SweepABS, F1: 1, F2: 20}); err != nil {
		t.Fatalf("AddFrequencySweep: %v", err)
	}

	content, err := p.Render()
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	for _, want := range []string{
		"FTYP SONPROJ 18",
		"HEADER",
		"END HEADER",
		"DIM",
		"FREQ GHZ",
		"BOX 1 500 400 200 160 20 0",
		"DRP1 left FIX 50",
		"ABS_ENTRY 1 20",
		"END GEO",
		"END FREQ",
		"END CONTROL",
		"END OPT",
		"END VARSWP",
		"END FILEOUT",
		"END SUBDIV",
		"END QSG",
		"END SMDFILES",
		"END TRANSLATOR",
	} {
		if !strings.Contains(content, want) {
			t.Errorf("rendered project missing %q", want)
		}
	}
	for _, absent := range []string{"VAR\n", "CKT"} {
		if strings.Contains(content, absent) {
			t.Errorf("geometry project contains netlist block %q", absent)
		}
	}
}

func TestNetlistProjectRender(t *testing.T) {
	p, err := NewNetlistProject(nil, nil)
	if err != nil {
		t.Fatalf("NewNetlistProject: %v", err)
	}
	p.Config.ParameterNetlist.Parameters = "VALUE L1 1.2"
	p.Config.Circuit.Elements = "IND 1 2 L=L1"

	content, err := p.Render()
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	for _, want := range []string{
		"FTYP SONNETPRJ 18",
		"VALUE L1 1.2",
		"END VAR",
		"IND 1 2 L=L1",
		"END CKT",
	} {
		if !strings.Contains(content, want) {
			t.Errorf("rendered netlist missing %q", want)
		}
	}
	for _, absent := range []string{"GEO\n", "SUBDIV"} {
		if strings.Contains(content, absent) {
			t.Errorf("netlist project contains geometry block %q", absent)
		}
	}
}

func TestWriteProjectFile(t *testing.T) {
	p, err := NewGeometryProject(nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "filter.son")
	if err := p.WriteProjectFile(path); err != nil {
		t.Fatalf("WriteProjectFile: %v", err)
	}
	if p.FilePath != path {
		t.Errorf("FilePath = %q, want %q", p.FilePath, path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(data), "FTYP SONPROJ") {
		t.Errorf("file does not start with the project preamble: %q", string(data[:20]))
	}
}

func TestAddReferencePlaneInvalid(t *testing.T) {
	p, err := NewGeometryProject(nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	if err := p.AddReferencePlane("center", ReferencePlaneFixed, 10); err == nil {
		t.Error("expected error for bad position")
	}
	if err := p.AddReferencePlane("left", ReferencePlaneLinked, 0); err == nil {
		t.Error("expected error for linked plane")
	}
	if p.Config.Geometry.ReferencePlanes != "" {
		t.Errorf("invalid plane was recorded: %q", p.Config.Geometry.ReferencePlanes)
	}
}

func TestDefineGeneralMetal(t *testing.T) {
	p, err := NewGeometryProject(nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	p.DefineGeneralMetal("Copper", GeneralMetal{RDC: 0.004, RRF: 3e-7})
	want := `MET "Copper" 1 GEN 0.004 3e-07 0 0`
	if !strings.Contains(p.Config.Geometry.Metals, want) {
		t.Errorf("metals = %q, missing %q", p.Config.Geometry.Metals, want)
	}
}

func TestDefineFreeSpaceCover(t *testing.T) {
	p, err := NewGeometryProject(nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	p.DefineFreeSpaceCover(true, false)
	if !strings.Contains(p.Config.Geometry.Metals, `TMET "Free Space" 0 FREESPACE`) {
		t.Errorf("metals = %q, missing free space top cover", p.Config.Geometry.Metals)
	}
	if strings.Contains(p.Config.Geometry.Metals, "BMET") {
		t.Errorf("bottom cover added unexpectedly: %q", p.Config.Geometry.Metals)
	}
}

func TestRunNotConfigured(t *testing.T) {
	p, err := NewGeometryProject(nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()

	if err := p.Run(ctx, AnalysisFrequency, RunOptions{}); !errors.Is(err, ErrNotConfigured) {
		t.Errorf("run without sweeps: err = %v, want ErrNotConfigured", err)
	}

	if err := p.Config.AddFrequencySweep(FrequencySweep{Type: SweepSingle, F1: 2.4}); err != nil {
		t.Fatal(err)
	}
	if err := p.Run(ctx, AnalysisFrequency, RunOptions{}); !errors.Is(err, ErrNotConfigured) {
		t.Errorf("run without project file: err = %v, want ErrNotConfigured", err)
	}

	if err := p.WriteProjectFile(filepath.Join(t.TempDir(), "p.son")); err != nil {
		t.Fatal(err)
	}
	if err := p.Run(ctx, AnalysisFrequency, RunOptions{}); !errors.Is(err, ErrNotConfigured) {
		t.Errorf("run without Sonnet path: err = %v, want ErrNotConfigured", err)
	}
}

func TestRunUnknownAnalysis(t *testing.T) {
	p, err := NewGeometryProject(nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	if err := p.Run(context.Background(), "fourier", RunOptions{}); !errors.Is(err, ErrInvalidSweep) {
		t.Errorf("err = %v, want ErrInvalidSweep", err)
	}
}

func TestLocateSonnet(t *testing.T) {
	cfg, err := DefaultConfig()
	if err != nil {
		t.Fatal(err)
	}

	if err := cfg.LocateSonnet(t.TempDir(), "18.52", "ABC123"); err == nil {
		t.Error("expected error for directory without em binary")
	}

	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "bin"), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "bin", "em"), []byte("#!/bin/sh\n"), 0755); err != nil {
		t.Fatal(err)
	}
	if err := cfg.LocateSonnet(dir, "18.52", "ABC123"); err != nil {
		t.Fatalf("LocateSonnet: %v", err)
	}
	if cfg.Sonnet.SonnetPath != dir || cfg.Sonnet.LicenseID != "ABC123" {
		t.Errorf("sonnet section = %+v", cfg.Sonnet)
	}
}
