package report

import (
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/majid-mohammad/gosonnet/internal/density"
)

// CreateProfilePlot renders the current density along a horizontal cut at
// the given y position. Points between grid rows are evaluated through the
// document's bilinear interpolant. A nonzero threshold draws a dashed
// reference line, e.g. a critical-current limit.
func CreateProfilePlot(doc *density.Document, opts PlotOptions, yCut, threshold float64) ([]byte, error) {
	h, err := doc.Header()
	if err != nil {
		return nil, err
	}
	x, err := doc.XAxis()
	if err != nil {
		return nil, err
	}
	f, err := doc.CurrentDensityInterpolant(density.InterpolantOptions{
		PowerDBm:      opts.PowerDBm,
		ImpedanceOhms: opts.ImpedanceOhms,
	})
	if err != nil {
		return nil, err
	}

	pts := make(plotter.XYs, len(x))
	for i, xi := range x {
		v, err := f.At(xi, yCut)
		if err != nil {
			return nil, err
		}
		pts[i] = plotter.XY{X: xi, Y: v}
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("Current density profile at y = %g %s", yCut, h.PositionUnitLabel)
	p.X.Label.Text = fmt.Sprintf("x position [%s]", h.PositionUnitLabel)
	p.Y.Label.Text = fmt.Sprintf("current [%s]", h.CurrentUnitLabel)
	p.Add(plotter.NewGrid())

	line, err := plotter.NewLine(pts)
	if err != nil {
		return nil, fmt.Errorf("report: profile line: %w", err)
	}
	line.Color = color.RGBA{B: 200, A: 255}
	p.Add(line)
	p.Legend.Add("profile", line)

	if threshold != 0 {
		limit, err := plotter.NewLine(plotter.XYs{
			{X: x[0], Y: threshold},
			{X: x[len(x)-1], Y: threshold},
		})
		if err != nil {
			return nil, fmt.Errorf("report: threshold line: %w", err)
		}
		limit.Color = color.RGBA{R: 255, A: 255}
		limit.LineStyle.Dashes = []vg.Length{vg.Points(5), vg.Points(5)}
		p.Add(limit)
		p.Legend.Add(fmt.Sprintf("%g %s limit", threshold, h.CurrentUnitLabel), limit)
	}

	return renderPNG(p, vg.Points(640), vg.Points(320))
}
