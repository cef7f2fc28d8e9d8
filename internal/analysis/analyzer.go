// Package analysis derives summary statistics and hotspot rankings from a
// parsed current-density grid. It consumes the density package's matrices
// and feeds the report layer.
package analysis

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/majid-mohammad/gosonnet/internal/density"
)

// Options selects the drive condition under which the grid is analyzed.
type Options struct {
	// PowerDBm rescales the samples to the given input power before
	// analysis. Nil keeps the file's native drive condition.
	PowerDBm *float64

	// ImpedanceOhms is the input port impedance; 0 selects the 50 ohm
	// default. Ignored when PowerDBm is nil.
	ImpedanceOhms float64

	// HotspotCount is how many ranked cells to keep. 0 keeps 10.
	HotspotCount int
}

// Summarize computes grid-wide statistics for a current-density document.
func Summarize(doc *density.Document, opts Options) (*GridStats, error) {
	values, err := documentValues(doc, opts)
	if err != nil {
		return nil, err
	}
	x, err := doc.XAxis()
	if err != nil {
		return nil, err
	}
	y, err := doc.YAxis()
	if err != nil {
		return nil, err
	}

	stats := &GridStats{
		Min:  math.Inf(1),
		Max:  math.Inf(-1),
		Rows: len(y),
		Cols: len(x),
	}
	flat := make([]float64, 0, len(x)*len(y))
	for i, row := range values {
		for j, v := range row {
			if math.IsNaN(v) {
				stats.MissingCells++
				continue
			}
			flat = append(flat, v)
			if v < stats.Min {
				stats.Min = v
			}
			if v > stats.Max {
				stats.Max = v
				stats.PeakX, stats.PeakY = x[j], y[i]
			}
		}
	}
	if len(flat) == 0 {
		return nil, fmt.Errorf("analysis: grid contains no valid samples")
	}
	stats.Mean = stat.Mean(flat, nil)
	stats.StdDev = stat.StdDev(flat, nil)
	return stats, nil
}

// FractionAbove reports the fraction of valid samples strictly above the
// threshold, e.g. how much of the metal carries hotspot-level current.
func FractionAbove(doc *density.Document, opts Options, threshold float64) (float64, error) {
	values, err := documentValues(doc, opts)
	if err != nil {
		return 0, err
	}
	var above, valid int
	for _, row := range values {
		for _, v := range row {
			if math.IsNaN(v) {
				continue
			}
			valid++
			if v > threshold {
				above++
			}
		}
	}
	if valid == 0 {
		return 0, fmt.Errorf("analysis: grid contains no valid samples")
	}
	return float64(above) / float64(valid), nil
}

// RankHotspots returns the highest-current cells in descending order.
func RankHotspots(doc *density.Document, opts Options) ([]Hotspot, error) {
	values, err := documentValues(doc, opts)
	if err != nil {
		return nil, err
	}
	x, err := doc.XAxis()
	if err != nil {
		return nil, err
	}
	y, err := doc.YAxis()
	if err != nil {
		return nil, err
	}

	n := opts.HotspotCount
	if n <= 0 {
		n = 10
	}

	cells := make([]Hotspot, 0, len(x)*len(y))
	for i, row := range values {
		for j, v := range row {
			if math.IsNaN(v) {
				continue
			}
			cells = append(cells, Hotspot{X: x[j], Y: y[i], Value: v})
		}
	}
	sort.SliceStable(cells, func(a, b int) bool {
		return cells[a].Value > cells[b].Value
	})
	if len(cells) > n {
		cells = cells[:n]
	}
	return cells, nil
}

func documentValues(doc *density.Document, opts Options) ([][]float64, error) {
	if opts.PowerDBm != nil {
		return doc.CurrentDensityAtPower(*opts.PowerDBm, opts.ImpedanceOhms)
	}
	return doc.CurrentDensity()
}
