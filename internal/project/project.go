package project

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"text/template"
)

// Project is the shared state of geometry and netlist projects: the
// configuration being edited and the path of the last written project file.
// Embed it; construct a GeometryProject or NetlistProject.
type Project struct {
	Config   *Config
	FilePath string // last written Sonnet project file

	logger *slog.Logger
}

func newProject(cfg *Config, logger *slog.Logger) Project {
	if logger == nil {
		logger = slog.Default()
	}
	return Project{Config: cfg, logger: logger.With("component", "project")}
}

// render executes the block templates in order against the configuration.
// Emission is a pure function of the configuration; nothing is mutated.
func render(cfg *Config, blocks []*template.Template) (string, error) {
	var buf bytes.Buffer
	for _, block := range blocks {
		if err := block.Execute(&buf, cfg); err != nil {
			return "", fmt.Errorf("project: render %s block: %w", block.Name(), err)
		}
	}
	return buf.String(), nil
}

func (p *Project) writeFile(path, content string) error {
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("project: write %s: %w", path, err)
	}
	p.FilePath = path
	p.logger.Debug("project file saved", "path", path)
	return nil
}

// OutputFileType enumerates the supported response-data formats.
type OutputFileType string

const (
	OutputTouchstone  OutputFileType = "touchstone"
	OutputTouchstone2 OutputFileType = "touchstone2"
	OutputDatabank    OutputFileType = "databank"
	OutputSCompact    OutputFileType = "scompact"
	OutputCSV         OutputFileType = "csv"
	OutputCadence     OutputFileType = "cadence"
	OutputMDIF        OutputFileType = "mdif"
	OutputMDIFEBridge OutputFileType = "mdif_ebridge"
)

var outputFileCodes = map[OutputFileType]string{
	OutputTouchstone:  "TS",
	OutputTouchstone2: "TOUCH2",
	OutputDatabank:    "DATA_BANK",
	OutputSCompact:    "SC",
	OutputCSV:         "CSV",
	OutputCadence:     "CADANCE", // Sonnet's spelling
	OutputMDIF:        "MDIF",
	OutputMDIFEBridge: "EBMDIF",
}

// OutputFileSpec describes one response-data file request.
type OutputFileSpec struct {
	Type OutputFileType

	// FileName defaults to the project base name.
	FileName string

	// OutputFolder, when set, overrides the section's output folder. It can
	// only hold one value per project; the last request wins.
	OutputFolder string

	// ParameterType is "S", "Y", or "Z". Empty means "S".
	ParameterType string

	// ParameterForm is "RI", "MA", or "DB". Empty means "RI".
	ParameterForm string

	Deembed         bool
	IncludeABS      bool
	IncludeComments bool
	HighPrecision   bool
}

// AddOutputFile adds a response-data output request to the project.
func (c *Config) AddOutputFile(spec OutputFileSpec) error {
	code, ok := outputFileCodes[spec.Type]
	if !ok {
		return fmt.Errorf("%w: file type %q", ErrInvalidOutput, spec.Type)
	}
	paramType := spec.ParameterType
	if paramType == "" {
		paramType = "S"
	}
	if paramType != "S" && paramType != "Y" && paramType != "Z" {
		return fmt.Errorf("%w: parameter type %q", ErrInvalidOutput, spec.ParameterType)
	}
	paramForm := spec.ParameterForm
	if paramForm == "" {
		paramForm = "RI"
	}
	if paramForm != "RI" && paramForm != "MA" && paramForm != "DB" {
		return fmt.Errorf("%w: parameter form %q", ErrInvalidOutput, spec.ParameterForm)
	}

	deembed := "ND"
	if spec.Deembed {
		deembed = "D"
	}
	includeABS := "N"
	if spec.IncludeABS {
		includeABS = "Y"
	}
	comments := "NC"
	if spec.IncludeComments {
		comments = "IC"
	}
	precision := 8
	if spec.HighPrecision {
		precision = 15
	}
	fileName := spec.FileName
	if fileName == "" {
		fileName = "$BASENAME"
	}
	if spec.OutputFolder != "" {
		c.OutputFile.OutputFolder = spec.OutputFolder
	}

	addLine(&c.OutputFile.ResponseData, fmt.Sprintf(responseDataFormat,
		code, deembed, includeABS, fileName, comments, precision,
		paramType, paramForm, "R 50"))
	return nil
}
