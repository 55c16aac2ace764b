package systems

import (
	"math"
	"testing"

	"github.com/pthm-cable/neurosoup/components"
	"github.com/pthm-cable/neurosoup/config"
)

func TestMove(t *testing.T) {
	p := PhysicsParamsFrom(config.Cfg())

	tests := []struct {
		name        string
		heading     float32
		mov, rot    float32
		wantHeading float64
		wantX       float64
		wantY       float64
	}{
		{"straight east", 0, 1, 0, 0, 301, 300},
		{"reverse", 0, -1, 0, 0, 299, 300},
		{"turn only", 0, 0, 1, 0.1 * math.Pi, 300, 300},
		{"turn then move", 0, 1, 5, 0.5 * math.Pi, 300, 301},
		{"wraps past pi", 3, 0, 1, 3 + 0.1*math.Pi - 2*math.Pi, 300, 300},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pos := components.Position{X: 300, Y: 300}
			body := components.Body{Size: 20, Heading: tt.heading, Mov: tt.mov, Rot: tt.rot}

			Move(&pos, &body, p)

			if math.Abs(float64(body.Heading)-tt.wantHeading) > 1e-5 {
				t.Errorf("heading = %v, want %v", body.Heading, tt.wantHeading)
			}
			if math.Abs(float64(pos.X)-tt.wantX) > 1e-4 || math.Abs(float64(pos.Y)-tt.wantY) > 1e-4 {
				t.Errorf("pos = (%v, %v), want (%v, %v)", pos.X, pos.Y, tt.wantX, tt.wantY)
			}
			if body.Heading < -math.Pi || body.Heading > math.Pi {
				t.Errorf("heading %v not normalized", body.Heading)
			}
		})
	}
}

func TestClampToArena(t *testing.T) {
	tests := []struct {
		name       string
		x, y, size float32
		wantX      float32
		wantY      float32
	}{
		{"inside", 100, 100, 20, 100, 100},
		{"negative", -5, -10, 20, 0, 0},
		{"past far edge", 590, 600, 20, 580, 580},
		{"larger than arena", 50, 50, 700, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pos := components.Position{X: tt.x, Y: tt.y}
			ClampToArena(&pos, tt.size, 600)
			if pos.X != tt.wantX || pos.Y != tt.wantY {
				t.Errorf("pos = (%v, %v), want (%v, %v)", pos.X, pos.Y, tt.wantX, tt.wantY)
			}
		})
	}
}

func TestNormalizeAngle(t *testing.T) {
	for _, a := range []float64{0, 1, -1, math.Pi - 0.01, 4, -4, 10, -10, 100} {
		got := normalizeAngle(a)
		if got < -math.Pi || got > math.Pi {
			t.Errorf("normalizeAngle(%v) = %v out of range", a, got)
		}
		if math.Abs(math.Sin(got)-math.Sin(a)) > 1e-9 || math.Abs(math.Cos(got)-math.Cos(a)) > 1e-9 {
			t.Errorf("normalizeAngle(%v) = %v changed direction", a, got)
		}
	}
}
