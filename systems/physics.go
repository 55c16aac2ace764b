// Package systems contains the per-agent rules applied each tick.
package systems

import (
	"math"

	"github.com/pthm-cable/neurosoup/components"
	"github.com/pthm-cable/neurosoup/config"
)

// PhysicsParams holds movement constants.
type PhysicsParams struct {
	MovSpeed  float64
	RotSpeed  float64
	ArenaSize float32
}

// PhysicsParamsFrom reads movement constants from cfg.
func PhysicsParamsFrom(cfg *config.Config) PhysicsParams {
	return PhysicsParams{
		MovSpeed:  cfg.Physics.MovSpeed,
		RotSpeed:  cfg.Physics.RotSpeed,
		ArenaSize: cfg.Derived.ArenaSize32,
	}
}

// Move turns by body.Rot, advances by body.Mov along the new heading and
// keeps the box inside the arena.
func Move(pos *components.Position, body *components.Body, p PhysicsParams) {
	heading := float64(body.Heading) + float64(body.Rot)*p.RotSpeed*math.Pi
	heading = normalizeAngle(heading)
	body.Heading = float32(heading)

	step := float64(body.Mov) * p.MovSpeed
	pos.X += float32(math.Cos(heading) * step)
	pos.Y += float32(math.Sin(heading) * step)

	ClampToArena(pos, body.Size, p.ArenaSize)
}

// ClampToArena keeps a box of side size within [0, arena] on both axes.
func ClampToArena(pos *components.Position, size, arena float32) {
	limit := max(arena-size, 0)
	pos.X = clampFloat(pos.X, 0, limit)
	pos.Y = clampFloat(pos.Y, 0, limit)
}
