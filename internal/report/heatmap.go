// Package report renders current-density grids into PNG plots and assembles
// PDF reports from them.
package report

import (
	"bytes"
	"fmt"
	"image/color"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/majid-mohammad/gosonnet/internal/density"
)

// PlotOptions configures the rendered drive condition and colour scale.
type PlotOptions struct {
	// PowerDBm rescales the samples to the given input power. Nil keeps the
	// file's native drive condition.
	PowerDBm *float64

	// ImpedanceOhms is the input port impedance; 0 selects the 50 ohm
	// default. Ignored when PowerDBm is nil.
	ImpedanceOhms float64

	// Scale is the power-law exponent for the colour-bar tick spacing.
	// 2 weights the ticks toward the quadratic response of a detector.
	// 0 means linear.
	Scale float64
}

// densityGrid adapts a current-density grid to plotter.GridXYZ. Axes are
// stored ascending; rows/columns are flipped at construction if the file
// stored them descending.
type densityGrid struct {
	x, y []float64
	z    [][]float64
}

func (g *densityGrid) Dims() (c, r int)   { return len(g.x), len(g.y) }
func (g *densityGrid) X(c int) float64    { return g.x[c] }
func (g *densityGrid) Y(r int) float64    { return g.y[r] }
func (g *densityGrid) Z(c, r int) float64 { return g.z[r][c] }

func newDensityGrid(x, y []float64, values [][]float64) *densityGrid {
	g := &densityGrid{
		x: append([]float64(nil), x...),
		y: append([]float64(nil), y...),
		z: make([][]float64, len(values)),
	}
	for i, row := range values {
		g.z[i] = append([]float64(nil), row...)
	}
	if len(g.x) > 1 && g.x[len(g.x)-1] < g.x[0] {
		reverse(g.x)
		for _, row := range g.z {
			reverse(row)
		}
	}
	if len(g.y) > 1 && g.y[len(g.y)-1] < g.y[0] {
		reverse(g.y)
		for i, j := 0, len(g.z)-1; i < j; i, j = i+1, j-1 {
			g.z[i], g.z[j] = g.z[j], g.z[i]
		}
	}
	return g
}

func reverse(s []float64) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}

// CreateHeatmap renders the current-density grid as a heatmap PNG. The plot
// range is the pixel-edge bounding box, so boundary cells are drawn at full
// width instead of being clipped at their centres.
func CreateHeatmap(doc *density.Document, opts PlotOptions) ([]byte, error) {
	values, err := densityValues(doc, opts)
	if err != nil {
		return nil, err
	}
	h, err := doc.Header()
	if err != nil {
		return nil, err
	}
	g, err := doc.Grid()
	if err != nil {
		return nil, err
	}

	grid := newDensityGrid(g.X, g.Y, values)
	min, max := gridRange(grid.z)
	if min == max {
		max = min + 1
	}

	cm := moreland.ExtendedBlackBody()
	cm.SetMin(min)
	cm.SetMax(max)

	hm := plotter.NewHeatMap(grid, cm.Palette(255))
	hm.Min = min
	hm.Max = max
	hm.NaN = color.Gray{Y: 200}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("Current density, %.4g GHz, level %s", h.FrequencyHz/1e9, h.LevelString)
	p.X.Label.Text = fmt.Sprintf("position [%s]", h.PositionUnitLabel)
	p.Y.Label.Text = fmt.Sprintf("position [%s]", h.PositionUnitLabel)
	p.Add(hm)

	xEdges := density.EdgeCoordinates(grid.x, h.DX)
	yEdges := density.EdgeCoordinates(grid.y, h.DY)
	p.X.Min, p.X.Max = xEdges[0], xEdges[len(xEdges)-1]
	p.Y.Min, p.Y.Max = yEdges[0], yEdges[len(yEdges)-1]

	return renderPNG(p, vg.Points(640), vg.Points(480))
}

// CreateColorBar renders a horizontal colour bar PNG matching CreateHeatmap,
// with tick values spaced by the power-law scale from the options.
func CreateColorBar(doc *density.Document, opts PlotOptions) ([]byte, error) {
	values, err := densityValues(doc, opts)
	if err != nil {
		return nil, err
	}
	h, err := doc.Header()
	if err != nil {
		return nil, err
	}

	min, max := gridRange(values)
	if min == max {
		max = min + 1
	}
	scale := opts.Scale
	if scale == 0 {
		scale = 1
	}

	cm := moreland.ExtendedBlackBody()
	cm.SetMin(min)
	cm.SetMax(max)

	p := plot.New()
	p.Add(&plotter.ColorBar{ColorMap: cm})
	p.HideY()
	p.X.Label.Text = fmt.Sprintf("current [%s]", h.CurrentUnitLabel)
	p.X.Padding = 0

	ticks := density.PowerScaleTicks(min, max, scale)
	marks := make([]plot.Tick, len(ticks))
	for i, t := range ticks {
		marks[i] = plot.Tick{Value: t, Label: fmt.Sprintf("%g", t)}
	}
	p.X.Tick.Marker = plot.ConstantTicks(marks)

	return renderPNG(p, vg.Points(640), vg.Points(80))
}

func densityValues(doc *density.Document, opts PlotOptions) ([][]float64, error) {
	if opts.PowerDBm != nil {
		return doc.CurrentDensityAtPower(*opts.PowerDBm, opts.ImpedanceOhms)
	}
	return doc.CurrentDensity()
}

func gridRange(values [][]float64) (min, max float64) {
	min, max = math.Inf(1), math.Inf(-1)
	for _, row := range values {
		for _, v := range row {
			if math.IsNaN(v) {
				continue
			}
			if v < min {
				min = v
			}
			if v > max {
				max = v
			}
		}
	}
	return min, max
}

func renderPNG(p *plot.Plot, w, h vg.Length) ([]byte, error) {
	writer, err := p.WriterTo(w, h, "png")
	if err != nil {
		return nil, fmt.Errorf("report: create png writer: %w", err)
	}
	buf := new(bytes.Buffer)
	if _, err := writer.WriteTo(buf); err != nil {
		return nil, fmt.Errorf("report: render png: %w", err)
	}
	return buf.Bytes(), nil
}
