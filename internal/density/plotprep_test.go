package density

import (
	"math"
	"testing"
)

func TestEdgeCoordinates(t *testing.T) {
	tests := []struct {
		name    string
		centers []float64
		step    float64
		want    []float64
	}{
		{
			name:    "ascending",
			centers: []float64{1, 2, 3},
			step:    1,
			want:    []float64{0.5, 1.5, 2.5, 3.5},
		},
		{
			name:    "descending",
			centers: []float64{3, 2, 1},
			step:    1,
			want:    []float64{3.5, 2.5, 1.5, 0.5},
		},
		{
			name:    "single centre",
			centers: []float64{4},
			step:    2,
			want:    []float64{3, 5},
		},
		{
			name:    "empty",
			centers: nil,
			step:    1,
			want:    nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EdgeCoordinates(tt.centers, tt.step)
			if len(got) != len(tt.want) {
				t.Fatalf("EdgeCoordinates() = %v, want %v", got, tt.want)
			}
			for i := range got {
				if math.Abs(got[i]-tt.want[i]) > 1e-12 {
					t.Fatalf("EdgeCoordinates() = %v, want %v", got, tt.want)
				}
			}
		})
	}
}

func TestPowerScaleTicks(t *testing.T) {
	ticks := PowerScaleTicks(0.01, 9.87, 1)
	if len(ticks) != 10 {
		t.Fatalf("got %d ticks, want 10", len(ticks))
	}

	for i := 1; i < len(ticks); i++ {
		if ticks[i] <= ticks[i-1] {
			t.Errorf("ticks not monotonically increasing at %d: %v", i, ticks)
		}
	}
	if ticks[9] > 9.87 {
		t.Errorf("last tick %g exceeds the data maximum 9.87", ticks[9])
	}

	// Second tick near 1.1 puts the rounding precision at one decimal.
	for i, tick := range ticks {
		if math.Abs(tick-roundTo(tick, 1)) > 1e-12 {
			t.Errorf("tick %d = %g is not rounded to 1 decimal", i, tick)
		}
	}
}

func TestPowerScaleTicksQuadratic(t *testing.T) {
	ticks := PowerScaleTicks(0.1, 4, 2)
	if len(ticks) != 10 {
		t.Fatalf("got %d ticks, want 10", len(ticks))
	}
	for i := 1; i < len(ticks); i++ {
		if ticks[i] <= ticks[i-1] {
			t.Fatalf("ticks not monotonically increasing: %v", ticks)
		}
	}
	if ticks[9] > 4 {
		t.Errorf("last tick %g exceeds the data maximum 4", ticks[9])
	}
	if ticks[0] < 0.1-1e-9 && ticks[0] != roundTo(ticks[0], 1) {
		t.Errorf("first tick %g unexpected", ticks[0])
	}
}
