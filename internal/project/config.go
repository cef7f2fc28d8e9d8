// Package project builds Sonnet project files from a YAML-backed
// configuration, manages frequency sweeps and output-file requests, and
// invokes the external em simulator.
package project

import (
	_ "embed"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

//go:embed default_configuration.yaml
var defaultConfiguration []byte

// Config holds the full project state. The section set is closed: loading a
// YAML file with a section outside this list fails with ErrUnknownSection
// (yaml strict decoding enforces it).
type Config struct {
	Sonnet             SonnetSection             `yaml:"sonnet"`
	Dimensions         DimensionsSection         `yaml:"dimensions"`
	Frequency          FrequencySection          `yaml:"frequency"`
	Geometry           GeometrySection           `yaml:"geometry"`
	Control            ControlSection            `yaml:"control"`
	Optimization       OptimizationSection       `yaml:"optimization"`
	ParameterSweep     ParameterSweepSection     `yaml:"parameter_sweep"`
	OutputFile         OutputFileSection         `yaml:"output_file"`
	ParameterNetlist   ParameterNetlistSection   `yaml:"parameter_netlist"`
	Circuit            CircuitSection            `yaml:"circuit"`
	Subdivider         SubdividerSection         `yaml:"subdivider"`
	QuickStartGuide    QuickStartGuideSection    `yaml:"quick_start_guide"`
	ComponentDataFiles ComponentDataFilesSection `yaml:"component_data_files"`
	Translators        TranslatorsSection        `yaml:"translators"`
}

// SonnetSection identifies the Sonnet installation and stamps the project.
type SonnetSection struct {
	Version    string `yaml:"version"`
	Date       string `yaml:"date"`
	SonnetPath string `yaml:"sonnet_path"`
	LicenseID  string `yaml:"license_id"`
}

// DimensionsSection sets the project-level units.
type DimensionsSection struct {
	FrequencyUnit   string `yaml:"frequency_unit"`
	AngleUnit       string `yaml:"angle_unit"`
	ResistanceUnit  string `yaml:"resistance_unit"`
	CapacitanceUnit string `yaml:"capacitance_unit"`
	LengthUnit      string `yaml:"length_unit"`
	InductanceUnit  string `yaml:"inductance_unit"`
}

// FrequencySection accumulates formatted sweep lines.
type FrequencySection struct {
	Sweeps string `yaml:"sweeps"`
}

// GeometrySection holds the simulation box and the accumulated geometry
// block fragments.
type GeometrySection struct {
	BoxWidthX       float64 `yaml:"box_width_x"`
	BoxWidthY       float64 `yaml:"box_width_y"`
	XCells2         int     `yaml:"x_cells2"` // twice the cell count, Sonnet convention
	YCells2         int     `yaml:"y_cells2"`
	NLevels         int     `yaml:"n_levels"`
	Metals          string  `yaml:"metals"`
	Dielectrics     string  `yaml:"dielectrics"`
	ReferencePlanes string  `yaml:"reference_planes"`
	Ports           string  `yaml:"ports"`
	Polygons        string  `yaml:"polygons"`
}

// ControlSection selects the analysis mode.
type ControlSection struct {
	SweepType            string `yaml:"sweep_type"`
	Speed                int    `yaml:"speed"`
	CacheABS             int    `yaml:"cache_abs"`
	SubsectionsPerLambda int    `yaml:"subsections_per_lambda"`
}

// OptimizationSection accumulates optimization parameters and goals.
type OptimizationSection struct {
	OptimizationParameters string `yaml:"optimization_parameters"`
	OptimizationGoals      string `yaml:"optimization_goals"`
	MaxIterations          int    `yaml:"max_iterations"`
}

// ParameterSweepSection accumulates parameter-sweep definitions.
type ParameterSweepSection struct {
	ParameterSweep string `yaml:"parameter_sweep"`
}

// OutputFileSection accumulates response-data output requests.
type OutputFileSection struct {
	OutputFolder string `yaml:"output_folder"`
	ResponseData string `yaml:"response_data"`
}

// ParameterNetlistSection holds netlist parameter definitions.
type ParameterNetlistSection struct {
	Parameters string `yaml:"parameters"`
}

// CircuitSection holds netlist circuit elements.
type CircuitSection struct {
	Elements string `yaml:"elements"`
}

// SubdividerSection holds subdivider settings.
type SubdividerSection struct {
	Settings string `yaml:"settings"`
}

// QuickStartGuideSection records the guide state written into the file.
type QuickStartGuideSection struct {
	Version string `yaml:"version"`
	Status  string `yaml:"status"`
}

// ComponentDataFilesSection lists component data files.
type ComponentDataFilesSection struct {
	Files string `yaml:"files"`
}

// TranslatorsSection holds translator settings.
type TranslatorsSection struct {
	Settings string `yaml:"settings"`
}

// DefaultConfig returns the built-in default configuration.
func DefaultConfig() (*Config, error) {
	return decode(defaultConfiguration)
}

// LoadConfig reads a project configuration from a YAML file. Sections
// outside the recognized set fail with ErrUnknownSection.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("project: read config %s: %w", path, err)
	}
	cfg, err := decode(data)
	if err != nil {
		return nil, fmt.Errorf("%w (%s)", err, path)
	}
	return cfg, nil
}

func decode(data []byte) (*Config, error) {
	cfg := &Config{}
	var raw map[string]yaml.Node
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("project: parse config: %w", err)
	}
	for section := range raw {
		if !recognizedSections[section] {
			return nil, fmt.Errorf("%w: %q", ErrUnknownSection, section)
		}
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("project: parse config: %w", err)
	}
	if cfg.Sonnet.Date == "" {
		cfg.Sonnet.Date = timestamp()
	}
	return cfg, nil
}

var recognizedSections = map[string]bool{
	"sonnet": true, "dimensions": true, "frequency": true, "geometry": true,
	"control": true, "optimization": true, "parameter_sweep": true,
	"output_file": true, "parameter_netlist": true, "circuit": true,
	"subdivider": true, "quick_start_guide": true,
	"component_data_files": true, "translators": true,
}

// Save writes the configuration back to a YAML file, refreshing the date
// stamp.
func (c *Config) Save(path string) error {
	c.Sonnet.Date = timestamp()
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("project: marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("project: save config %s: %w", path, err)
	}
	return nil
}

func timestamp() string {
	return time.Now().Format("01/02/2006 15:04:05")
}

// addLine appends to a newline-separated accumulator field.
func addLine(field *string, addition string) {
	if *field == "" {
		*field = addition
		return
	}
	*field += "\n" + addition
}
