// Package density parses Sonnet current-density CSV exports and exposes
// typed access to the header metadata and the sampled 2-D grid, along with
// unit-aware rescaling, spatial trimming, and interpolation.
//
// A Document is bound to one file. Header and data are parsed lazily on
// first use and never re-read afterwards; a failed parse leaves the document
// unloaded so a later access can retry. A fully loaded Header is safe for
// concurrent reads. Trim mutates the grid and concurrent trims on the same
// document must be serialized by the caller.
package density

import (
	"encoding/csv"
	"fmt"
	"math"
	"os"

	"gonum.org/v1/gonum/floats"
)

// DefaultImpedance is the port impedance assumed when none is given.
const DefaultImpedance = 50.0

// Document is a current-density export bound to a file path. The header is
// shared between shallow copies and read-only after load; the grid is owned
// and mutable through Trim.
type Document struct {
	Path string

	header *Header
	grid   *Grid
}

// Open binds a document to a file. With eager set, both the header and the
// data section are parsed immediately; otherwise parsing is deferred until
// the first accessor that needs it.
func Open(path string, eager bool) (*Document, error) {
	d := &Document{Path: path}
	if eager {
		if err := d.loadHeader(); err != nil {
			return nil, err
		}
		if err := d.loadGrid(); err != nil {
			return nil, err
		}
	}
	return d, nil
}

// Header returns the parsed header block, loading it on first use.
func (d *Document) Header() (*Header, error) {
	if d.header == nil {
		if err := d.loadHeader(); err != nil {
			return nil, err
		}
	}
	return d.header, nil
}

// Grid returns the parsed data grid, loading it on first use.
func (d *Document) Grid() (*Grid, error) {
	if d.grid == nil {
		if err := d.loadGrid(); err != nil {
			return nil, err
		}
	}
	return d.grid, nil
}

// Invalidate drops the cached header and grid so the next access re-reads
// the file.
func (d *Document) Invalidate() {
	d.header = nil
	d.grid = nil
}

// XAxis returns the x positions corresponding to the value columns.
func (d *Document) XAxis() ([]float64, error) {
	g, err := d.Grid()
	if err != nil {
		return nil, err
	}
	return g.X, nil
}

// YAxis returns the y positions corresponding to the value rows.
func (d *Document) YAxis() ([]float64, error) {
	g, err := d.Grid()
	if err != nil {
		return nil, err
	}
	return g.Y, nil
}

// DriveVoltage returns the drive voltage in volts for the given port.
func (d *Document) DriveVoltage(port int) (float64, error) {
	h, err := d.Header()
	if err != nil {
		return 0, err
	}
	return h.DriveVoltage(port)
}

// DrivePhase returns the drive phase in degrees for the given port.
func (d *Document) DrivePhase(port int) (float64, error) {
	h, err := d.Header()
	if err != nil {
		return 0, err
	}
	return h.DrivePhase(port)
}

// CurrentDensity returns the RMS current-density matrix exactly as recorded
// in the file, in units of the header's current unit.
func (d *Document) CurrentDensity() ([][]float64, error) {
	g, err := d.Grid()
	if err != nil {
		return nil, err
	}
	return g.Values, nil
}

// CurrentDensityAtPower returns the current-density matrix rescaled as if
// the input port had been driven at powerDBm into impedanceOhms. The native
// drive power is derived from the largest drive voltage over all ports,
// which may not make sense when more than one port has a nonzero input.
// An impedanceOhms of 0 selects DefaultImpedance. The returned matrix is a
// new allocation; the document's grid is not modified.
func (d *Document) CurrentDensityAtPower(powerDBm, impedanceOhms float64) ([][]float64, error) {
	g, err := d.Grid()
	if err != nil {
		return nil, err
	}
	scale, err := d.powerScale(powerDBm, impedanceOhms)
	if err != nil {
		return nil, err
	}

	out := make([][]float64, len(g.Values))
	for i, row := range g.Values {
		scaled := make([]float64, len(row))
		for j, v := range row {
			scaled[j] = v * scale
		}
		out[i] = scaled
	}
	return out, nil
}

// powerScale converts a requested dBm drive into a multiplicative factor on
// the file's native current density.
func (d *Document) powerScale(powerDBm, impedanceOhms float64) (float64, error) {
	h, err := d.Header()
	if err != nil {
		return 0, err
	}
	if impedanceOhms == 0 {
		impedanceOhms = DefaultImpedance
	}
	if impedanceOhms < 0 {
		return 0, fmt.Errorf("%w: impedance must be positive, got %g", ErrInvalidArgument, impedanceOhms)
	}
	if len(h.Ports) == 0 {
		return 0, fmt.Errorf("%w: no ports in header", ErrMalformedHeader)
	}

	voltages := make([]float64, len(h.Ports))
	for i, p := range h.Ports {
		voltages[i] = p.DriveVoltage
	}
	nativeWatts := math.Pow(floats.Max(voltages), 2) / impedanceOhms / 2
	requestedWatts := 1e-3 * math.Pow(10, powerDBm/10)
	return math.Sqrt(requestedWatts / nativeWatts), nil
}

// TrimBounds selects an inclusive sub-rectangle of the grid. Nil fields are
// unbounded on that side.
type TrimBounds struct {
	XMin, XMax *float64
	YMin, YMax *float64
}

// Bound is a convenience for building TrimBounds literals.
func Bound(v float64) *float64 { return &v }

// Trim removes data outside the given inclusive bounds, mutating the
// document's grid in place. At least one bound must be set. Callers that
// need the original afterwards should DeepCopy first; a shallow Copy shares
// the grid and sees the trim.
func (d *Document) Trim(b TrimBounds) error {
	if b.XMin == nil && b.XMax == nil && b.YMin == nil && b.YMax == nil {
		return fmt.Errorf("%w: one of XMin, XMax, YMin, or YMax must be set", ErrInvalidArgument)
	}
	g, err := d.Grid()
	if err != nil {
		return err
	}

	bound := func(p *float64, def float64) float64 {
		if p == nil {
			return def
		}
		return *p
	}
	g.trim(
		bound(b.XMin, math.Inf(-1)), bound(b.XMax, math.Inf(1)),
		bound(b.YMin, math.Inf(-1)), bound(b.YMax, math.Inf(1)),
	)
	return nil
}

// Copy returns a shallow copy sharing this document's header and grid.
// Because the grid is shared, trimming the copy also trims the original.
func (d *Document) Copy() *Document {
	c := *d
	return &c
}

// DeepCopy returns a fully independent copy of the document.
func (d *Document) DeepCopy() *Document {
	c := &Document{Path: d.Path}
	if d.header != nil {
		h := *d.header
		h.Ports = append([]Port(nil), d.header.Ports...)
		c.header = &h
	}
	if d.grid != nil {
		c.grid = d.grid.clone()
	}
	return c
}

// loadHeader reads and parses the 9-line header block. On failure the
// document keeps its unloaded state so the access can be retried.
func (d *Document) loadHeader() error {
	rows, err := d.readRows()
	if err != nil {
		return err
	}
	h, err := parseHeader(rows)
	if err != nil {
		return err
	}
	d.header = h
	return nil
}

// loadGrid reads and parses the data section after the header block.
func (d *Document) loadGrid() error {
	rows, err := d.readRows()
	if err != nil {
		return err
	}
	if len(rows) <= headerLines {
		return fmt.Errorf("density: %q has no data section", d.Path)
	}
	g, err := parseGrid(rows[headerLines:])
	if err != nil {
		return err
	}
	d.grid = g
	return nil
}

// readRows reads the whole file as CSV rows. The file handle is released on
// every exit path, including parse failure.
func (d *Document) readRows() ([][]string, error) {
	file, err := os.Open(d.Path)
	if err != nil {
		return nil, fmt.Errorf("density: open %s: %w", d.Path, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1 // header rows have varying widths
	reader.TrimLeadingSpace = true
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("density: read %s: %w", d.Path, err)
	}
	return rows, nil
}
