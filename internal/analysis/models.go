package analysis

// GridStats summarizes one current-density grid under a chosen drive
// condition. Units follow the file header's current unit.
type GridStats struct {
	Min    float64
	Max    float64
	Mean   float64
	StdDev float64

	// PeakX and PeakY locate the maximum sample in position units.
	PeakX float64
	PeakY float64

	Rows         int
	Cols         int
	MissingCells int // NaN samples excluded from the statistics
}

// Hotspot is one ranked grid cell.
type Hotspot struct {
	X     float64
	Y     float64
	Value float64
}
