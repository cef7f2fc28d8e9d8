package density

import (
	"fmt"
	"sort"
)

// InterpolantOptions configures CurrentDensityInterpolant.
type InterpolantOptions struct {
	// PowerDBm rescales the samples as in CurrentDensityAtPower before the
	// interpolant is built. Nil keeps the file's native drive condition.
	PowerDBm *float64

	// ImpedanceOhms is the input port impedance. 0 selects DefaultImpedance.
	// Ignored when PowerDBm is nil.
	ImpedanceOhms float64

	// Bounded makes evaluation outside the grid's bounding box fail with
	// ErrOutOfDomain. The default allows linear extrapolation, matching the
	// behavior of the file's producer tooling.
	Bounded bool
}

// Interpolant is a bilinear interpolating function over the current-density
// grid. It holds its own copy of the samples, so later trims on the source
// document do not affect it.
type Interpolant struct {
	x, y    []float64 // ascending
	z       [][]float64
	bounded bool
}

// CurrentDensityInterpolant builds a bilinear interpolant over
// (x, y) -> current density. Axes stored in descending order in the file
// are handled transparently.
func (d *Document) CurrentDensityInterpolant(opts InterpolantOptions) (*Interpolant, error) {
	g, err := d.Grid()
	if err != nil {
		return nil, err
	}
	if g.Cols() < 2 || g.Rows() < 2 {
		return nil, fmt.Errorf("%w: interpolation needs at least a 2x2 grid, have %dx%d",
			ErrInvalidArgument, g.Rows(), g.Cols())
	}

	var z [][]float64
	if opts.PowerDBm != nil {
		if z, err = d.CurrentDensityAtPower(*opts.PowerDBm, opts.ImpedanceOhms); err != nil {
			return nil, err
		}
	} else {
		z = g.clone().Values
	}

	f := &Interpolant{
		x:       append([]float64(nil), g.X...),
		y:       append([]float64(nil), g.Y...),
		z:       z,
		bounded: opts.Bounded,
	}
	if f.x[len(f.x)-1] < f.x[0] {
		reverse(f.x)
		for _, row := range f.z {
			reverse(row)
		}
	}
	if f.y[len(f.y)-1] < f.y[0] {
		reverse(f.y)
		reverseRows(f.z)
	}
	if !sort.Float64sAreSorted(f.x) || !sort.Float64sAreSorted(f.y) {
		return nil, fmt.Errorf("%w: grid axes are not monotonic", ErrInvalidArgument)
	}
	return f, nil
}

// At evaluates the interpolant. Outside the grid's bounding box it either
// extrapolates linearly from the nearest cell or, when bounded, returns
// ErrOutOfDomain.
func (f *Interpolant) At(x, y float64) (float64, error) {
	if f.bounded {
		if x < f.x[0] || x > f.x[len(f.x)-1] || y < f.y[0] || y > f.y[len(f.y)-1] {
			return 0, fmt.Errorf("%w: (%g, %g)", ErrOutOfDomain, x, y)
		}
	}

	j, tx := segment(f.x, x)
	i, ty := segment(f.y, y)

	z00 := f.z[i][j]
	z01 := f.z[i][j+1]
	z10 := f.z[i+1][j]
	z11 := f.z[i+1][j+1]
	top := z00 + tx*(z01-z00)
	bottom := z10 + tx*(z11-z10)
	return top + ty*(bottom-top), nil
}

// segment picks the cell interval used for v and the (unclamped) fractional
// position within it. Points outside the axis use the nearest edge interval,
// which yields linear extrapolation.
func segment(axis []float64, v float64) (int, float64) {
	i := sort.SearchFloat64s(axis, v) - 1
	if i < 0 {
		i = 0
	}
	if i > len(axis)-2 {
		i = len(axis) - 2
	}
	return i, (v - axis[i]) / (axis[i+1] - axis[i])
}

func reverse(s []float64) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}

func reverseRows(m [][]float64) {
	for i, j := 0, len(m)-1; i < j; i, j = i+1, j-1 {
		m[i], m[j] = m[j], m[i]
	}
}
