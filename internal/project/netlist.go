package project

import (
	"log/slog"
	"text/template"
)

// NetlistProject creates and manipulates a Sonnet netlist project.
type NetlistProject struct {
	Project
}

// NewNetlistProject wraps a configuration as a netlist project. A nil
// config starts from the built-in defaults; a nil logger uses slog.Default.
func NewNetlistProject(cfg *Config, logger *slog.Logger) (*NetlistProject, error) {
	if cfg == nil {
		var err error
		if cfg, err = DefaultConfig(); err != nil {
			return nil, err
		}
	}
	return &NetlistProject{Project: newProject(cfg, logger)}, nil
}

var netlistBlocks = []*template.Template{
	netlistPreamble,
	headerBlock,
	dimensionsBlock,
	frequencyBlock,
	controlBlock,
	optimizationBlock,
	parameterSweepBlock,
	outputFileBlock,
	parameterNetlistBlock,
	circuitBlock,
	quickStartGuideBlock,
	componentDataFilesBlock,
	translatorsBlock,
}

// Render converts the current project state into Sonnet netlist file syntax.
func (p *NetlistProject) Render() (string, error) {
	return render(p.Config, netlistBlocks)
}

// WriteProjectFile renders the project and saves it where the simulator can
// pick it up.
func (p *NetlistProject) WriteProjectFile(path string) error {
	content, err := p.Render()
	if err != nil {
		return err
	}
	return p.writeFile(path, content)
}
