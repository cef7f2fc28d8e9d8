package project

import (
	"errors"
	"strings"
	"testing"
)

func TestFormatSweep(t *testing.T) {
	tests := []struct {
		name  string
		sweep FrequencySweep
		want  string
	}{
		{"linear step", FrequencySweep{Type: SweepLinear, F1: 1, F2: 10, FStep: 0.5}, "SWEEP 1 10 0.5"},
		{"linear points", FrequencySweep{Type: SweepLinear, F1: 1, F2: 10, NPoints: 19}, "LSWEEP 1 10 19"},
		{"exponential", FrequencySweep{Type: SweepExponential, F1: 0.1, F2: 100, NPoints: 30}, "ESWEEP 0.1 100 30"},
		{"single", FrequencySweep{Type: SweepSingle, F1: 2.4}, "STEP 2.4"},
		{"list", FrequencySweep{Type: SweepList, Frequencies: []float64{1, 2.5, 5}}, "LIST 1 2.5 5"},
		{"dc auto", FrequencySweep{Type: SweepDC}, "DC_FREQ AUTO"},
		{"dc manual", FrequencySweep{Type: SweepDC, F1: 100}, "DC_FREQ MAN 100"},
		{"abs", FrequencySweep{Type: SweepABS, F1: 1, F2: 20}, "ABS_ENTRY 1 20"},
		{"abs min", FrequencySweep{Type: SweepABSMin, SParameter: "S21", F1: 1, F2: 20}, "ABS_FMIN NET= S21 1 20"},
		{"abs max", FrequencySweep{Type: SweepABSMax, SParameter: "S11", F1: 1, F2: 20}, "ABS_FMAX NET= S11 1 20"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := formatSweep(tt.sweep)
			if err != nil {
				t.Fatalf("formatSweep: %v", err)
			}
			if got != tt.want {
				t.Errorf("formatSweep = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFormatSweepInvalid(t *testing.T) {
	tests := []struct {
		name  string
		sweep FrequencySweep
	}{
		{"unknown type", FrequencySweep{Type: "quadratic"}},
		{"linear both step and points", FrequencySweep{Type: SweepLinear, F1: 1, F2: 10, FStep: 0.5, NPoints: 19}},
		{"linear neither step nor points", FrequencySweep{Type: SweepLinear, F1: 1, F2: 10}},
		{"linear no bounds", FrequencySweep{Type: SweepLinear, FStep: 0.5}},
		{"exponential no points", FrequencySweep{Type: SweepExponential, F1: 1, F2: 10}},
		{"empty list", FrequencySweep{Type: SweepList}},
		{"abs min no parameter", FrequencySweep{Type: SweepABSMin, F1: 1, F2: 20}},
		{"abs max no parameter", FrequencySweep{Type: SweepABSMax, F1: 1, F2: 20}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := formatSweep(tt.sweep); !errors.Is(err, ErrInvalidSweep) {
				t.Fatalf("err = %v, want ErrInvalidSweep", err)
			}
		})
	}
}

func TestAddFrequencySweep(t *testing.T) {
	cfg, err := DefaultConfig()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.HasSweeps() {
		t.Fatal("default config reports sweeps")
	}
	if err := cfg.AddFrequencySweep(FrequencySweep{Type: SweepSingle, F1: 2.4}); err != nil {
		t.Fatalf("AddFrequencySweep: %v", err)
	}
	if err := cfg.AddFrequencySweep(FrequencySweep{Type: SweepABS, F1: 1, F2: 20}); err != nil {
		t.Fatalf("AddFrequencySweep: %v", err)
	}
	want := "STEP 2.4\nABS_ENTRY 1 20"
	if cfg.Frequency.Sweeps != want {
		t.Errorf("sweeps = %q, want %q", cfg.Frequency.Sweeps, want)
	}
	if !cfg.HasSweeps() {
		t.Error("HasSweeps = false after adding sweeps")
	}

	cfg.ClearFrequencySweeps()
	if cfg.Frequency.Sweeps != "" || cfg.HasSweeps() {
		t.Error("ClearFrequencySweeps left state behind")
	}
}

func TestAddFrequencySweepRejectsInvalid(t *testing.T) {
	cfg, err := DefaultConfig()
	if err != nil {
		t.Fatal(err)
	}
	if err := cfg.AddFrequencySweep(FrequencySweep{Type: SweepList}); !errors.Is(err, ErrInvalidSweep) {
		t.Fatalf("err = %v, want ErrInvalidSweep", err)
	}
	if cfg.Frequency.Sweeps != "" {
		t.Errorf("invalid sweep was recorded: %q", cfg.Frequency.Sweeps)
	}
}

func TestAddOutputFile(t *testing.T) {
	cfg, err := DefaultConfig()
	if err != nil {
		t.Fatal(err)
	}
	err = cfg.AddOutputFile(OutputFileSpec{
		Type:          OutputTouchstone,
		Deembed:       true,
		IncludeABS:    true,
		ParameterForm: "DB",
		HighPrecision: true,
		OutputFolder:  "results",
	})
	if err != nil {
		t.Fatalf("AddOutputFile: %v", err)
	}
	want := "FILE TS D Y $BASENAME NC 15 S DB R 50"
	if cfg.OutputFile.ResponseData != want {
		t.Errorf("response data = %q, want %q", cfg.OutputFile.ResponseData, want)
	}
	if cfg.OutputFile.OutputFolder != "results" {
		t.Errorf("output folder = %q, want results", cfg.OutputFile.OutputFolder)
	}
}

func TestAddOutputFileDefaults(t *testing.T) {
	cfg, err := DefaultConfig()
	if err != nil {
		t.Fatal(err)
	}
	if err := cfg.AddOutputFile(OutputFileSpec{Type: OutputCSV, FileName: "run1.csv"}); err != nil {
		t.Fatalf("AddOutputFile: %v", err)
	}
	want := "FILE CSV ND N run1.csv NC 8 S RI R 50"
	if cfg.OutputFile.ResponseData != want {
		t.Errorf("response data = %q, want %q", cfg.OutputFile.ResponseData, want)
	}
}

func TestAddOutputFileInvalid(t *testing.T) {
	tests := []struct {
		name string
		spec OutputFileSpec
	}{
		{"unknown type", OutputFileSpec{Type: "spreadsheet"}},
		{"bad parameter type", OutputFileSpec{Type: OutputCSV, ParameterType: "T"}},
		{"bad parameter form", OutputFileSpec{Type: OutputCSV, ParameterForm: "POLAR"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := DefaultConfig()
			if err != nil {
				t.Fatal(err)
			}
			if err := cfg.AddOutputFile(tt.spec); !errors.Is(err, ErrInvalidOutput) {
				t.Fatalf("err = %v, want ErrInvalidOutput", err)
			}
		})
	}
}

func TestSweepDocOrder(t *testing.T) {
	// Sweep lines keep insertion order so the project file is deterministic.
	cfg, err := DefaultConfig()
	if err != nil {
		t.Fatal(err)
	}
	for _, f := range []float64{5, 3, 8} {
		if err := cfg.AddFrequencySweep(FrequencySweep{Type: SweepSingle, F1: f}); err != nil {
			t.Fatal(err)
		}
	}
	lines := strings.Split(cfg.Frequency.Sweeps, "\n")
	want := []string{"STEP 5", "STEP 3", "STEP 8"}
	for i, w := range want {
		if lines[i] != w {
			t.Errorf("line %d = %q, want %q", i, lines[i], w)
		}
	}
}
