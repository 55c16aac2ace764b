package systems

import (
	"math"

	"github.com/pthm-cable/neurosoup/config"
)

// Target is the read-only view of an agent used while sensing.
type Target struct {
	X, Y    float32
	Size    float32
	Heading float32
	Alive   bool
}

// Perception is what an agent writes into its input neurons.
type Perception struct {
	RelativeSize    float32 // +1 bigger than target, -1 smaller, 0 comparable
	InverseDistance float32 // proximity metric over its maximum, in [0, 1]
	Bearing         float32 // heading minus bearing to target, over pi
}

// SenseParams holds sensing constants.
type SenseParams struct {
	ArenaSize     float64
	MaxProximity  float64
	SizeRatio     float64
	MinTargetSize float64
}

// SenseParamsFrom reads sensing constants from cfg.
func SenseParamsFrom(cfg *config.Config) SenseParams {
	return SenseParams{
		ArenaSize:     cfg.Arena.Size,
		MaxProximity:  cfg.Derived.MaxProximity,
		SizeRatio:     cfg.Sensors.SizeRatio,
		MinTargetSize: cfg.Sensors.MinTargetSize,
	}
}

// proximity is (A-|dx|)^4 + (A-|dy|)^4: larger means closer.
func proximity(arena, dx, dy float64) float64 {
	px := arena - math.Abs(dx)
	py := arena - math.Abs(dy)
	px *= px
	py *= py
	return px*px + py*py
}

// Sense finds the nearest candidate for targets[self] among every other
// living target and the four arena edges. An edge is measured at the agent's
// projection onto it, lies in the direction of its outward normal and counts
// as a target of arena size.
func Sense(targets []Target, self int, p SenseParams) Perception {
	me := targets[self]
	mx, my := float64(me.X), float64(me.Y)

	bestScore := -1.0
	var bx, by, bsize, bnormal float64
	bestEdge := false
	consider := func(x, y, size float64, edge bool, normal float64) {
		score := proximity(p.ArenaSize, x-mx, y-my)
		if score > bestScore {
			bestScore = score
			bx, by, bsize = x, y, size
			bestEdge, bnormal = edge, normal
		}
	}

	for i, t := range targets {
		if i == self || !t.Alive || float64(t.Size) < p.MinTargetSize {
			continue
		}
		consider(float64(t.X), float64(t.Y), float64(t.Size), false, 0)
	}

	a := p.ArenaSize
	consider(0, my, a, true, math.Pi)
	consider(a, my, a, true, 0)
	consider(mx, 0, a, true, -math.Pi/2)
	consider(mx, a, a, true, math.Pi/2)

	// An edge lies along its outward normal. Its projection coincides with
	// the agent's own position while the agent touches it.
	bearing := bnormal
	if !bestEdge {
		bearing = math.Atan2(by-my, bx-mx)
	}
	diff := normalizeAngle(float64(me.Heading) - bearing)

	return Perception{
		RelativeSize:    relativeSize(float64(me.Size), bsize, p.SizeRatio),
		InverseDistance: float32(bestScore / p.MaxProximity),
		Bearing:         float32(diff / math.Pi),
	}
}

// relativeSize is the ternary comparison with a hysteresis band of ratio.
func relativeSize(self, target, ratio float64) float32 {
	switch {
	case self > target*ratio:
		return 1
	case target > self*ratio:
		return -1
	default:
		return 0
	}
}
