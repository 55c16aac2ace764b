package camera

import (
	"math"
	"testing"
)

func TestNewFitsArena(t *testing.T) {
	cam := New(600, 600, 300)

	if cam.X != 150 || cam.Y != 150 {
		t.Errorf("expected camera at (150, 150), got (%f, %f)", cam.X, cam.Y)
	}
	if cam.Zoom != 2 {
		t.Errorf("expected zoom 2, got %f", cam.Zoom)
	}

	// Arena corners land on viewport corners
	sx, sy := cam.WorldToScreen(0, 0)
	if math.Abs(float64(sx)) > 0.01 || math.Abs(float64(sy)) > 0.01 {
		t.Errorf("arena origin at (%f, %f), want (0, 0)", sx, sy)
	}
	sx, sy = cam.WorldToScreen(300, 300)
	if math.Abs(float64(sx-600)) > 0.01 || math.Abs(float64(sy-600)) > 0.01 {
		t.Errorf("arena far corner at (%f, %f), want (600, 600)", sx, sy)
	}
}

func TestScreenToWorldRoundtrip(t *testing.T) {
	cam := New(600, 600, 600)
	cam.ZoomAt(200, 400, 3)

	testCases := []struct{ sx, sy float32 }{
		{300, 300},
		{0, 0},
		{590, 10},
	}

	for _, tc := range testCases {
		wx, wy := cam.ScreenToWorld(tc.sx, tc.sy)
		sx, sy := cam.WorldToScreen(wx, wy)
		if math.Abs(float64(sx-tc.sx)) > 0.01 || math.Abs(float64(sy-tc.sy)) > 0.01 {
			t.Errorf("roundtrip failed: (%f,%f) -> (%f,%f) -> (%f,%f)",
				tc.sx, tc.sy, wx, wy, sx, sy)
		}
	}
}

func TestZoomAtKeepsPointFixed(t *testing.T) {
	cam := New(600, 600, 600)
	wx, wy := cam.ScreenToWorld(300, 300)

	cam.ZoomAt(300, 300, 2)

	nx, ny := cam.ScreenToWorld(300, 300)
	if math.Abs(float64(nx-wx)) > 0.01 || math.Abs(float64(ny-wy)) > 0.01 {
		t.Errorf("point under cursor moved from (%f,%f) to (%f,%f)", wx, wy, nx, ny)
	}
}

func TestPanClampsToArena(t *testing.T) {
	cam := New(600, 600, 600)
	cam.SetZoom(2) // view covers 300x300 arena units

	cam.Pan(-10000, -10000)
	if cam.X != 150 || cam.Y != 150 {
		t.Errorf("expected center clamped to (150, 150), got (%f, %f)", cam.X, cam.Y)
	}

	cam.Pan(10000, 10000)
	if cam.X != 450 || cam.Y != 450 {
		t.Errorf("expected center clamped to (450, 450), got (%f, %f)", cam.X, cam.Y)
	}
}

func TestPanIgnoredWhenFullyZoomedOut(t *testing.T) {
	cam := New(600, 600, 600)
	cam.Pan(100, -50)
	if cam.X != 300 || cam.Y != 300 {
		t.Errorf("whole arena in view, center should stay (300, 300), got (%f, %f)", cam.X, cam.Y)
	}
}

func TestZoomClamp(t *testing.T) {
	cam := New(600, 600, 600)

	cam.SetZoom(0.1)
	if cam.Zoom != 1 {
		t.Errorf("expected zoom clamped to 1, got %f", cam.Zoom)
	}

	cam.SetZoom(100)
	if cam.Zoom != maxZoomFactor {
		t.Errorf("expected zoom clamped to %d, got %f", maxZoomFactor, cam.Zoom)
	}
}

func TestNonSquareViewport(t *testing.T) {
	cam := New(800, 600, 600)

	if cam.MinZoom != 1 {
		t.Errorf("expected MinZoom 1 (fit the shorter side), got %f", cam.MinZoom)
	}
	// Wider than the arena horizontally: X stays centred
	cam.Pan(500, 0)
	if cam.X != 300 {
		t.Errorf("expected X centred at 300, got %f", cam.X)
	}
}

func TestIsVisible(t *testing.T) {
	cam := New(600, 600, 600)
	cam.ZoomAt(0, 0, 4) // view covers [0, 150] on both axes

	tests := []struct {
		name       string
		x, y, size float32
		want       bool
	}{
		{"inside", 50, 50, 10, true},
		{"far away", 400, 400, 10, false},
		{"overlapping edge", 140, 140, 30, true},
		{"just outside", 151, 20, 5, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cam.IsVisible(tt.x, tt.y, tt.size); got != tt.want {
				t.Errorf("IsVisible(%v, %v, %v) = %v, want %v", tt.x, tt.y, tt.size, got, tt.want)
			}
		})
	}
}

func TestInViewport(t *testing.T) {
	cam := New(600, 600, 600)
	if !cam.InViewport(0, 599) {
		t.Error("edge pixel should be inside")
	}
	if cam.InViewport(600, 10) || cam.InViewport(-1, 10) {
		t.Error("points beyond the viewport should be outside")
	}
}

func TestReset(t *testing.T) {
	cam := New(600, 600, 600)
	cam.ZoomAt(100, 100, 3)
	cam.Pan(50, 50)

	cam.Reset()

	if cam.X != 300 || cam.Y != 300 {
		t.Errorf("expected position (300, 300), got (%f, %f)", cam.X, cam.Y)
	}
	if cam.Zoom != cam.MinZoom {
		t.Errorf("expected zoom %f, got %f", cam.MinZoom, cam.Zoom)
	}
}
