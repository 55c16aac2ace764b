package systems

import (
	"math"

	"github.com/pthm-cable/neurosoup/components"
	"github.com/pthm-cable/neurosoup/config"
)

// EnergyParams holds the size-decay constants.
type EnergyParams struct {
	DecayBase float64
	MovCost   float64
	RotCost   float64
}

// EnergyParamsFrom reads size-decay constants from cfg.
func EnergyParamsFrom(cfg *config.Config) EnergyParams {
	return EnergyParams{
		DecayBase: cfg.Energy.DecayBase,
		MovCost:   cfg.Energy.MovCost,
		RotCost:   cfg.Energy.RotCost,
	}
}

// EnergyFactor is the per-tick size multiplier: resting costs one decay step,
// moving and turning add to the exponent.
func EnergyFactor(mov, rot float32, p EnergyParams) float64 {
	exp := 1 + math.Abs(float64(mov))*p.MovCost + math.Abs(float64(rot))*p.RotCost
	return math.Pow(p.DecayBase, exp)
}

// ApplyEnergyCost shrinks the body around its center and returns the size lost.
func ApplyEnergyCost(pos *components.Position, body *components.Body, p EnergyParams) float32 {
	old := body.Size
	body.Resize(pos, float32(float64(old)*EnergyFactor(body.Mov, body.Rot, p)))
	return old - body.Size
}
