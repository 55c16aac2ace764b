package game

import (
	"math/rand"

	"github.com/pthm-cable/neurosoup/components"
	"github.com/pthm-cable/neurosoup/config"
	"github.com/pthm-cable/neurosoup/neural"
)

// neuralParamsFrom reads brain construction bounds from cfg.
func neuralParamsFrom(cfg *config.Config) neural.Params {
	return neural.Params{
		InitialMutations: cfg.Neural.InitialMutations,
		ResetGeneration:  cfg.Neural.ResetGeneration,
		MaxInitDecay:     cfg.Neural.MaxInitDecay,
		MaxInitThreshold: cfg.Neural.MaxInitThreshold,
		MinRateGene:      cfg.Mutation.MinRateGene,
		MaxInitRateGene:  cfg.Mutation.MaxInitRateGene,
	}
}

// plusMinusOne returns -1 or +1 with equal probability.
func plusMinusOne(rng *rand.Rand) int {
	if rng.Intn(2) == 0 {
		return -1
	}
	return 1
}

// driftColor moves each channel by up to drift in either direction.
func driftColor(rng *rand.Rand, c components.Color, drift int) components.Color {
	if drift <= 0 {
		return c
	}
	shift := func(v uint8) uint8 {
		n := int(v) + rng.Intn(2*drift+1) - drift
		return uint8(min(max(n, 0), 255))
	}
	return components.Color{R: shift(c.R), G: shift(c.G), B: shift(c.B)}
}
