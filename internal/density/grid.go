package density

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// missingMarker is the label Sonnet writes in the corner cell of the data
// section. It is treated as a missing value, like an empty cell.
const missingMarker = "X Position ->"

// Grid holds the parsed data section of a current-density export.
// Values[i][j] is the sample at (X[j], Y[i]). The axes are monotonic in the
// direction they appear in the source, which is not necessarily ascending.
type Grid struct {
	X      []float64
	Y      []float64
	Values [][]float64
}

// parseGrid converts the CSV rows after the header into a Grid. The first
// row carries the x axis from column 1, the first column carries the y axis
// from row 1, and cell [0][0] is a sentinel. Sonnet writes one more column
// than there is valid data, so the final column is always dropped.
func parseGrid(rows [][]string) (*Grid, error) {
	if len(rows) < 2 {
		return nil, fmt.Errorf("density: data section has %d rows, need at least 2", len(rows))
	}

	matrix := make([][]float64, len(rows))
	for i, row := range rows {
		if len(row) < 2 {
			return nil, fmt.Errorf("density: data row %d has %d cells, need at least 2", i, len(row))
		}
		vals := make([]float64, len(row)-1) // trailing artifact column dropped
		for j := range vals {
			vals[j] = parseCell(row[j])
		}
		matrix[i] = vals
	}

	cols := len(matrix[0])
	for i, row := range matrix {
		if len(row) != cols {
			return nil, fmt.Errorf("density: data row %d has %d columns, expected %d", i, len(row), cols)
		}
	}
	if cols < 2 {
		return nil, fmt.Errorf("density: data section has no value columns")
	}

	g := &Grid{
		X:      matrix[0][1:],
		Y:      make([]float64, len(matrix)-1),
		Values: make([][]float64, len(matrix)-1),
	}
	for i, row := range matrix[1:] {
		g.Y[i] = row[0]
		g.Values[i] = row[1:]
	}
	return g, nil
}

// parseCell mirrors numpy.genfromtxt: empty cells, the corner marker, and
// unparseable text all become NaN.
func parseCell(cell string) float64 {
	cell = strings.TrimSpace(cell)
	if cell == "" || cell == missingMarker {
		return math.NaN()
	}
	v, err := strconv.ParseFloat(cell, 64)
	if err != nil {
		return math.NaN()
	}
	return v
}

// Rows and Cols report the shape of the value matrix.
func (g *Grid) Rows() int { return len(g.Y) }
func (g *Grid) Cols() int { return len(g.X) }

// trim keeps only the axis entries inside the inclusive bounds and re-slices
// the value matrix to match, preserving the Values[i][j] <-> (X[j], Y[i])
// correspondence. The grid is modified in place.
func (g *Grid) trim(xMin, xMax, yMin, yMax float64) {
	keepX := make([]int, 0, len(g.X))
	for j, x := range g.X {
		if x >= xMin && x <= xMax {
			keepX = append(keepX, j)
		}
	}
	keepY := make([]int, 0, len(g.Y))
	for i, y := range g.Y {
		if y >= yMin && y <= yMax {
			keepY = append(keepY, i)
		}
	}

	x := make([]float64, len(keepX))
	for n, j := range keepX {
		x[n] = g.X[j]
	}
	y := make([]float64, len(keepY))
	values := make([][]float64, len(keepY))
	for m, i := range keepY {
		y[m] = g.Y[i]
		row := make([]float64, len(keepX))
		for n, j := range keepX {
			row[n] = g.Values[i][j]
		}
		values[m] = row
	}

	g.X, g.Y, g.Values = x, y, values
}

// clone returns a fully independent copy of the grid.
func (g *Grid) clone() *Grid {
	c := &Grid{
		X:      append([]float64(nil), g.X...),
		Y:      append([]float64(nil), g.Y...),
		Values: make([][]float64, len(g.Values)),
	}
	for i, row := range g.Values {
		c.Values[i] = append([]float64(nil), row...)
	}
	return c
}
