package project

import (
	"fmt"
	"log/slog"
	"text/template"
)

// GeometryProject creates and manipulates a Sonnet geometry project.
type GeometryProject struct {
	Project
}

// NewGeometryProject wraps a configuration as a geometry project. A nil
// config starts from the built-in defaults; a nil logger uses slog.Default.
func NewGeometryProject(cfg *Config, logger *slog.Logger) (*GeometryProject, error) {
	if cfg == nil {
		var err error
		if cfg, err = DefaultConfig(); err != nil {
			return nil, err
		}
	}
	return &GeometryProject{Project: newProject(cfg, logger)}, nil
}

var geometryBlocks = []*template.Template{
	geometryPreamble,
	headerBlock,
	dimensionsBlock,
	geometryBlock,
	frequencyBlock,
	controlBlock,
	optimizationBlock,
	parameterSweepBlock,
	outputFileBlock,
	subdividerBlock,
	quickStartGuideBlock,
	componentDataFilesBlock,
	translatorsBlock,
}

// Render converts the current project state into Sonnet file syntax.
func (p *GeometryProject) Render() (string, error) {
	return render(p.Config, geometryBlocks)
}

// WriteProjectFile renders the project and saves it where the simulator can
// pick it up.
func (p *GeometryProject) WriteProjectFile(path string) error {
	content, err := p.Render()
	if err != nil {
		return err
	}
	return p.writeFile(path, content)
}

// SetupBox sets the simulation box size and cell spacing. Cell counts are
// doubled on write, following the Sonnet file convention.
func (p *GeometryProject) SetupBox(boxWidthX, boxWidthY float64, xCells, yCells int) {
	p.Config.Geometry.BoxWidthX = boxWidthX
	p.Config.Geometry.BoxWidthY = boxWidthY
	p.Config.Geometry.XCells2 = 2 * xCells
	p.Config.Geometry.YCells2 = 2 * yCells
}

// ReferencePlaneType selects how a reference plane's position is fixed.
type ReferencePlaneType string

const (
	ReferencePlaneFixed  ReferencePlaneType = "FIX"
	ReferencePlaneLinked ReferencePlaneType = "LINK"
)

var referencePlanePositions = map[string]bool{
	"left": true, "right": true, "top": true, "bottom": true,
}

// AddReferencePlane adds a reference plane extending from one box wall.
// Only fixed planes are supported; they need an explicit length.
func (p *GeometryProject) AddReferencePlane(position string, planeType ReferencePlaneType, length float64) error {
	if !referencePlanePositions[position] {
		return fmt.Errorf("project: position must be left, right, top, or bottom, got %q", position)
	}
	switch planeType {
	case ReferencePlaneFixed:
		addLine(&p.Config.Geometry.ReferencePlanes,
			fmt.Sprintf(referencePlaneFormat, position, planeType, length))
		return nil
	case ReferencePlaneLinked:
		return fmt.Errorf("project: linked reference planes are not supported")
	}
	return fmt.Errorf("project: plane type must be fixed or linked, got %q", planeType)
}

// GeneralMetal holds the loss parameters of Sonnet's general metal model.
// Zero values mean a lossless term.
type GeneralMetal struct {
	RDC float64 // DC resistance, Ohms/sq
	RRF float64 // skin effect coefficient, Ohms/sqrt(Hz)/sq
	XDC float64 // DC reactance, Ohms/sq
	LS  float64 // surface inductance, pH/sq
}

// DefineGeneralMetal defines a general-model metal usable on circuit levels.
func (p *GeometryProject) DefineGeneralMetal(name string, m GeneralMetal) {
	metals := &p.Config.Geometry.Metals
	patternID := countLines(*metals)
	addLine(metals, fmt.Sprintf(generalMetalFormat, "MET", name, patternID, m.RDC, m.RRF, m.XDC, m.LS))
}

// DefineFreeSpaceCover sets the box top and/or bottom cover to free space.
func (p *GeometryProject) DefineFreeSpaceCover(top, bottom bool) {
	metals := &p.Config.Geometry.Metals
	if top {
		addLine(metals, fmt.Sprintf(freeSpaceMetalFormat, "TMET"))
	}
	if bottom {
		addLine(metals, fmt.Sprintf(freeSpaceMetalFormat, "BMET"))
	}
}

func countLines(s string) int {
	if s == "" {
		return 0
	}
	n := 1
	for _, r := range s {
		if r == '\n' {
			n++
		}
	}
	return n
}
