package density

import (
	"fmt"
	"strconv"
	"strings"
)

// headerLines is the fixed size of the metadata block at the top of a
// Sonnet current-density CSV export.
const headerLines = 9

// Port holds the excitation parameters recorded for one simulation port.
type Port struct {
	Number       int
	DriveVoltage float64 // volts
	DrivePhase   float64 // degrees
}

// Header is the typed view of the 9-line metadata block. A *Header only
// exists fully parsed; there is no partially loaded state.
type Header struct {
	FormatVersion        string
	SourceFilePath       string
	SourceFileName       string
	SourceToolVersion    string
	FrequencyHz          float64
	Ports                []Port // header order
	LevelString          string // e.g. "1", "2a"; letters mark thick-metal sub-layers
	LevelID              int
	PositionUnitLabel    string
	PositionUnitToMeters float64
	DX                   float64 // x grid step, position units
	DY                   float64 // y grid step, position units
	Area                 float64
	AreaUnitLabel        string
	CurrentUnitLabel     string
}

// PortNumbers returns the port numbers in header order.
func (h *Header) PortNumbers() []int {
	nums := make([]int, len(h.Ports))
	for i, p := range h.Ports {
		nums[i] = p.Number
	}
	return nums
}

// DriveVoltage returns the drive voltage in volts for the given port.
func (h *Header) DriveVoltage(port int) (float64, error) {
	for _, p := range h.Ports {
		if p.Number == port {
			return p.DriveVoltage, nil
		}
	}
	return 0, &InvalidPortError{Port: port, Ports: h.PortNumbers()}
}

// DrivePhase returns the drive phase in degrees for the given port.
func (h *Header) DrivePhase(port int) (float64, error) {
	for _, p := range h.Ports {
		if p.Number == port {
			return p.DrivePhase, nil
		}
	}
	return 0, &InvalidPortError{Port: port, Ports: h.PortNumbers()}
}

// parseHeader converts the first nine CSV rows of a current-density export
// into a Header. It fails with ErrMalformedHeader on any structural or
// numeric problem, naming the field that could not be read.
func parseHeader(rows [][]string) (*Header, error) {
	if len(rows) < headerLines {
		return nil, fmt.Errorf("%w: expected %d header lines, got %d", ErrMalformedHeader, headerLines, len(rows))
	}

	h := &Header{}
	var err error

	if h.FormatVersion, err = headerCell(rows, 0, 0, "format version"); err != nil {
		return nil, err
	}
	if h.SourceFilePath, err = headerCell(rows, 0, 2, "source file path"); err != nil {
		return nil, err
	}
	if h.SourceToolVersion, err = headerCell(rows, 1, 1, "sonnet version"); err != nil {
		return nil, err
	}
	if h.SourceFileName, err = headerCell(rows, 1, 3, "source file name"); err != nil {
		return nil, err
	}
	if h.FrequencyHz, err = headerFloat(rows, 2, 1, "frequency"); err != nil {
		return nil, err
	}
	if h.Ports, err = parsePorts(rows[3]); err != nil {
		return nil, err
	}
	if h.LevelString, err = headerCell(rows, 4, 1, "level string"); err != nil {
		return nil, err
	}
	levelID, err := headerFloat(rows, 4, 2, "level id")
	if err != nil {
		return nil, err
	}
	h.LevelID = int(levelID)
	label, err := headerCell(rows, 5, 1, "position unit")
	if err != nil {
		return nil, err
	}
	h.PositionUnitLabel = normalizeUnit(label)
	if h.PositionUnitToMeters, err = headerFloat(rows, 5, 2, "position unit value"); err != nil {
		return nil, err
	}
	if h.DX, err = headerFloat(rows, 6, 1, "dx"); err != nil {
		return nil, err
	}
	if h.DY, err = headerFloat(rows, 6, 4, "dy"); err != nil {
		return nil, err
	}
	if h.Area, err = headerFloat(rows, 6, 9, "area"); err != nil {
		return nil, err
	}
	if h.AreaUnitLabel, err = headerCell(rows, 6, 10, "area unit"); err != nil {
		return nil, err
	}
	if label, err = headerCell(rows, 7, 2, "current unit"); err != nil {
		return nil, err
	}
	h.CurrentUnitLabel = normalizeUnit(label)
	// row 8 is reserved and ignored

	return h, nil
}

// parsePorts scans the fourth header row for "Port N" markers. The drive
// voltage sits two cells after the marker and the phase four cells after.
func parsePorts(row []string) ([]Port, error) {
	var ports []Port
	seen := make(map[int]bool)
	for i, cell := range row {
		cell = strings.TrimSpace(cell)
		if !strings.HasPrefix(cell, "Port ") || len(cell) <= 5 {
			continue
		}
		num, err := strconv.Atoi(strings.TrimSpace(cell[5:]))
		if err != nil {
			return nil, fmt.Errorf("%w: field port number: cannot parse %q", ErrMalformedHeader, cell)
		}
		if seen[num] {
			return nil, fmt.Errorf("%w: duplicate port %d", ErrMalformedHeader, num)
		}
		seen[num] = true
		if i+4 >= len(row) {
			return nil, fmt.Errorf("%w: truncated drive parameters for port %d", ErrMalformedHeader, num)
		}
		voltage, err := strconv.ParseFloat(strings.TrimSpace(row[i+2]), 64)
		if err != nil {
			return nil, fmt.Errorf("%w: field drive voltage (port %d): cannot parse %q", ErrMalformedHeader, num, row[i+2])
		}
		phase, err := strconv.ParseFloat(strings.TrimSpace(row[i+4]), 64)
		if err != nil {
			return nil, fmt.Errorf("%w: field drive phase (port %d): cannot parse %q", ErrMalformedHeader, num, row[i+4])
		}
		ports = append(ports, Port{Number: num, DriveVoltage: voltage, DrivePhase: phase})
	}
	return ports, nil
}

// normalizeUnit maps Sonnet's unit spellings onto conventional symbols.
// Unrecognized labels pass through unchanged.
func normalizeUnit(label string) string {
	switch label {
	case "UM":
		return "µm"
	case "Amps/Meter":
		return "A/m"
	}
	return label
}

func headerCell(rows [][]string, row, col int, field string) (string, error) {
	if row >= len(rows) || col >= len(rows[row]) {
		return "", fmt.Errorf("%w: field %s: missing cell [%d][%d]", ErrMalformedHeader, field, row, col)
	}
	return strings.TrimSpace(rows[row][col]), nil
}

func headerFloat(rows [][]string, row, col int, field string) (float64, error) {
	cell, err := headerCell(rows, row, col, field)
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseFloat(cell, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: field %s: cannot parse %q", ErrMalformedHeader, field, cell)
	}
	return v, nil
}
