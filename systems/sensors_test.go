package systems

import (
	"math"
	"testing"

	"github.com/pthm-cable/neurosoup/config"
)

func init() {
	config.MustInit("")
}

// sameBearing compares normalized bearings; -1 and +1 both mean straight behind.
func sameBearing(got, want float32) bool {
	d := math.Abs(float64(got - want))
	return d < 1e-6 || math.Abs(d-2) < 1e-6
}

func TestSenseCornerSeesBorder(t *testing.T) {
	p := SenseParamsFrom(config.Cfg())

	// The left edge wins the corner tie, so its normal (west) is the bearing.
	tests := []struct {
		name    string
		heading float32
		want    float32
	}{
		{"facing east", 0, 1},
		{"facing west", math.Pi, 0},
		{"facing south", math.Pi / 2, -0.5},
		{"facing north", -math.Pi / 2, 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			targets := []Target{{X: 0, Y: 0, Size: 30, Heading: tt.heading, Alive: true}}
			got := Sense(targets, 0, p)

			if got.InverseDistance != 1 {
				t.Errorf("InverseDistance = %v, want 1 at the corner", got.InverseDistance)
			}
			if got.RelativeSize != -1 {
				t.Errorf("RelativeSize = %v, want -1 against an arena-sized border", got.RelativeSize)
			}
			if !sameBearing(got.Bearing, tt.want) {
				t.Errorf("Bearing = %v, want %v", got.Bearing, tt.want)
			}
		})
	}
}

func TestSenseWallBearingFromNormal(t *testing.T) {
	p := SenseParamsFrom(config.Cfg())

	tests := []struct {
		name    string
		x, y    float32
		heading float32
		want    float32
	}{
		{"touching left, facing away", 0, 300, 0, 1},
		{"near left, facing away", 1, 300, 0, 1},
		{"touching left, facing it", 0, 300, math.Pi, 0},
		{"touching left, facing south", 0, 300, math.Pi / 2, -0.5},
		{"touching top, facing east", 300, 0, 0, 0.5},
		{"near top, facing east", 300, 1, 0, 0.5},
		{"touching top, facing it", 300, 0, -math.Pi / 2, 0},
		{"touching right, facing it", 570, 300, 0, 0},
		{"touching bottom, facing east", 300, 570, 0, -0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			targets := []Target{{X: tt.x, Y: tt.y, Size: 30, Heading: tt.heading, Alive: true}}
			got := Sense(targets, 0, p)
			if !sameBearing(got.Bearing, tt.want) {
				t.Errorf("Bearing = %v, want %v", got.Bearing, tt.want)
			}
			if got.RelativeSize != -1 {
				t.Errorf("RelativeSize = %v, want -1 against a border", got.RelativeSize)
			}
		})
	}
}

func TestSensePrefersCloseAgentOverBorder(t *testing.T) {
	p := SenseParamsFrom(config.Cfg())
	targets := []Target{
		{X: 300, Y: 300, Size: 50, Heading: 0, Alive: true},
		{X: 310, Y: 300, Size: 20, Alive: true}, // 10 units east
		{X: 100, Y: 100, Size: 200, Alive: true},
	}

	got := Sense(targets, 0, p)
	if got.RelativeSize != 1 {
		t.Errorf("RelativeSize = %v, want 1 (50 vs 20)", got.RelativeSize)
	}
	if got.Bearing != 0 {
		t.Errorf("Bearing = %v, want 0 for a target straight ahead", got.Bearing)
	}
	want := proximity(p.ArenaSize, 10, 0) / p.MaxProximity
	if math.Abs(float64(got.InverseDistance)-want) > 1e-6 {
		t.Errorf("InverseDistance = %v, want %v", got.InverseDistance, want)
	}
}

func TestSenseIgnoresDeadAndTinyTargets(t *testing.T) {
	p := SenseParamsFrom(config.Cfg())
	p.MinTargetSize = 10

	targets := []Target{
		{X: 300, Y: 300, Size: 50, Heading: 0, Alive: true},
		{X: 305, Y: 300, Size: 40, Alive: false},
		{X: 300, Y: 305, Size: 5, Alive: true},
	}
	got := Sense(targets, 0, p)

	// Only borders remain, all 300 away; the border is arena-sized.
	if got.RelativeSize != -1 {
		t.Errorf("RelativeSize = %v, want -1 (border)", got.RelativeSize)
	}
	want := proximity(p.ArenaSize, 300, 0) / p.MaxProximity
	if math.Abs(float64(got.InverseDistance)-want) > 1e-6 {
		t.Errorf("InverseDistance = %v, want %v", got.InverseDistance, want)
	}
}

func TestRelativeSize(t *testing.T) {
	tests := []struct {
		self, target float64
		want         float32
	}{
		{100, 50, 1},
		{50, 100, -1},
		{100, 95, 0},
		{95, 100, 0},
		{110, 100, 0}, // exactly 1.1x is inside the band
		{111, 100, 1},
	}
	for _, tt := range tests {
		if got := relativeSize(tt.self, tt.target, 1.1); got != tt.want {
			t.Errorf("relativeSize(%v, %v) = %v, want %v", tt.self, tt.target, got, tt.want)
		}
	}
}

func TestBearingWraps(t *testing.T) {
	p := SenseParamsFrom(config.Cfg())
	// Target due west; heading slightly south of east-facing reverse.
	targets := []Target{
		{X: 300, Y: 300, Size: 50, Heading: -3, Alive: true},
		{X: 290, Y: 300, Size: 50, Alive: true},
	}
	got := Sense(targets, 0, p)

	// -3 - pi wraps to 2pi - 3 - pi = pi - 3
	want := float32((math.Pi - 3) / math.Pi)
	if math.Abs(float64(got.Bearing-want)) > 1e-5 {
		t.Errorf("Bearing = %v, want %v", got.Bearing, want)
	}
	if got.Bearing < -1 || got.Bearing > 1 {
		t.Errorf("Bearing %v outside [-1, 1]", got.Bearing)
	}
}
