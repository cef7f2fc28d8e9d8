package density

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// EdgeCoordinates converts cell-centre coordinates into the pixel-edge
// coordinates needed to draw a density map. The step direction follows the
// sign of the last interval, so descending axes produce descending edges.
// For n centres, n+1 edges are returned.
func EdgeCoordinates(centers []float64, step float64) []float64 {
	n := len(centers)
	if n == 0 {
		return nil
	}
	s := 1.0
	if n >= 2 && centers[n-1] < centers[n-2] {
		s = -1.0
	}
	edges := make([]float64, n+1)
	for i, c := range centers {
		edges[i] = c - step/2*s
	}
	edges[n] = centers[n-1] + step/2*s
	return edges
}

// PowerScaleTicks returns ten colour-bar tick values spaced evenly in
// value^scale, rounded to a precision derived from the second tick's order
// of magnitude. If rounding pushes the final tick above max, it is clamped
// down to one rounding unit below max so the bar never labels a value that
// does not occur.
func PowerScaleTicks(min, max, scale float64) []float64 {
	ticks := make([]float64, 10)
	floats.Span(ticks, math.Pow(min, scale), math.Pow(max, scale))
	for i, t := range ticks {
		ticks[i] = math.Pow(t, 1/scale)
	}
	if !(ticks[1] > 0) {
		return ticks // no finite magnitude to round to
	}
	precision := -int(math.Floor(math.Log10(ticks[1]))) + 1
	for i, t := range ticks {
		ticks[i] = roundTo(t, precision)
	}
	if ticks[9] > max {
		ticks[9] = roundTo(max-math.Pow(10, -float64(precision)), precision)
	}
	return ticks
}

func roundTo(v float64, decimals int) float64 {
	p := math.Pow(10, float64(decimals))
	return math.Round(v*p) / p
}
