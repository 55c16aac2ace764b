package telemetry

import (
	"math"
	"testing"
)

func TestPercentile(t *testing.T) {
	tests := []struct {
		name   string
		sorted []float64
		p      float64
		want   float64
	}{
		{"empty slice", []float64{}, 0.5, 0},
		{"single element", []float64{5.0}, 0.5, 5.0},
		{"p0", []float64{1, 2, 3, 4, 5}, 0.0, 1.0},
		{"p100", []float64{1, 2, 3, 4, 5}, 1.0, 5.0},
		{"p50 odd", []float64{1, 2, 3, 4, 5}, 0.5, 3.0},
		{"p50 even", []float64{1, 2, 3, 4}, 0.5, 2.5},
		{"p10", []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, 0.1, 1.9},
		{"p90", []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, 0.9, 9.1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Percentile(tt.sorted, tt.p)
			if math.Abs(got-tt.want) > 0.001 {
				t.Errorf("Percentile(%v, %v) = %v, want %v", tt.sorted, tt.p, got, tt.want)
			}
		})
	}
}

func TestComputeDistribution(t *testing.T) {
	values := []float64{10, 9, 8, 7, 6, 5, 4, 3, 2, 1}
	d := ComputeDistribution(values)

	checks := []struct {
		name      string
		got, want float64
	}{
		{"mean", d.Mean, 5.5},
		{"std", d.Std, math.Sqrt(82.5 / 9)},
		{"p10", d.P10, 1.9},
		{"p50", d.P50, 5.5},
		{"p90", d.P90, 9.1},
		{"max", d.Max, 10},
	}
	for _, c := range checks {
		if math.Abs(c.got-c.want) > 1e-9 {
			t.Errorf("%s = %v, want %v", c.name, c.got, c.want)
		}
	}

	if values[0] != 10 {
		t.Error("ComputeDistribution reordered its input")
	}
}

func TestComputeDistributionSmall(t *testing.T) {
	if d := ComputeDistribution(nil); d != (Distribution{}) {
		t.Errorf("empty sample = %+v, want zero value", d)
	}

	d := ComputeDistribution([]float64{42})
	if d.Mean != 42 || d.Std != 0 || d.P50 != 42 || d.Max != 42 {
		t.Errorf("single sample = %+v", d)
	}
	if math.IsNaN(d.Std) {
		t.Error("std of a single value must not be NaN")
	}
}

func TestWindowStatsTotals(t *testing.T) {
	s := WindowStats{BirthsSpawned: 2, BirthsCloned: 3, BirthsMutated: 4, DeathsEaten: 5, DeathsStarved: 6}
	if s.Births() != 9 {
		t.Errorf("Births() = %d, want 9", s.Births())
	}
	if s.Deaths() != 11 {
		t.Errorf("Deaths() = %d, want 11", s.Deaths())
	}
}
