package main

import (
	"math"

	"github.com/pthm-cable/neurosoup/config"
)

// ParamSpec defines a single optimizable parameter.
type ParamSpec struct {
	Name    string  // Human-readable name
	Path    string  // Config path for logging
	Min     float64 // Lower bound
	Max     float64 // Upper bound
	Default float64 // Default value
	Integer bool    // Rounded before it reaches the config
}

// ParamVector holds the set of all optimizable parameters.
type ParamVector struct {
	Specs []ParamSpec
}

// NewParamVector creates the standard set of optimizable parameters.
func NewParamVector() *ParamVector {
	return &ParamVector{
		Specs: []ParamSpec{
			// Energy
			{Name: "decay_base", Path: "energy.decay_base", Min: 0.995, Max: 0.9999, Default: 0.999},
			{Name: "mov_cost", Path: "energy.mov_cost", Min: 0, Max: 2, Default: 0.5},
			{Name: "rot_cost", Path: "energy.rot_cost", Min: 0, Max: 1, Default: 0.125},
			// Reproduction
			{Name: "split_size", Path: "reproduction.split_size", Min: 30, Max: 150, Default: 60},
			{Name: "child_size", Path: "reproduction.child_size", Min: 5, Max: 40, Default: 20},
			{Name: "clone_chance", Path: "reproduction.clone_chance", Min: 0, Max: 1, Default: 0.5},
			// Population
			{Name: "spawn_size", Path: "population.spawn_size", Min: 10, Max: 60, Default: 30},
			{Name: "inverse_spawn_rate", Path: "population.inverse_spawn_rate", Min: 2, Max: 200, Default: 20, Integer: true},
			// Collision
			{Name: "overlap_fraction", Path: "collision.overlap_fraction", Min: 0.5, Max: 1, Default: 0.9},
			{Name: "absorb_ratio", Path: "collision.size_ratio", Min: 1, Max: 1.5, Default: 1.1},
			// Neural
			{Name: "initial_mutations", Path: "neural.initial_mutations", Min: 0, Max: 10, Default: 3, Integer: true},
		},
	}
}

// Dim returns the number of parameters.
func (pv *ParamVector) Dim() int {
	return len(pv.Specs)
}

// DefaultVector returns the default parameter values as a slice.
func (pv *ParamVector) DefaultVector() []float64 {
	v := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		v[i] = spec.Default
	}
	return v
}

// Normalize converts raw parameter values to [0,1] range.
func (pv *ParamVector) Normalize(raw []float64) []float64 {
	normalized := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		normalized[i] = (raw[i] - spec.Min) / (spec.Max - spec.Min)
	}
	return normalized
}

// Denormalize converts [0,1] values back to raw parameter values.
func (pv *ParamVector) Denormalize(normalized []float64) []float64 {
	raw := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		raw[i] = spec.Min + normalized[i]*(spec.Max-spec.Min)
	}
	return raw
}

// Clamp ensures all values are within bounds, rounding integer parameters.
func (pv *ParamVector) Clamp(v []float64) []float64 {
	clamped := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		val := min(max(v[i], spec.Min), spec.Max)
		if spec.Integer {
			val = math.Round(val)
		}
		clamped[i] = val
	}
	return clamped
}

// ApplyToConfig applies parameter values to a Config struct.
// Order must match Specs order.
func (pv *ParamVector) ApplyToConfig(cfg *config.Config, values []float64) {
	clamped := pv.Clamp(values)
	i := 0
	next := func() float64 {
		v := clamped[i]
		i++
		return v
	}

	cfg.Energy.DecayBase = next()
	cfg.Energy.MovCost = next()
	cfg.Energy.RotCost = next()

	cfg.Reproduction.SplitSize = next()
	cfg.Reproduction.ChildSize = next()
	cfg.Reproduction.CloneChance = next()

	cfg.Population.SpawnSize = next()
	cfg.Population.InverseSpawnRate = int(next())

	cfg.Collision.OverlapFraction = next()
	cfg.Collision.SizeRatio = next()

	cfg.Neural.InitialMutations = int(next())

	// A child as large as the split threshold would split forever.
	if cfg.Reproduction.ChildSize >= cfg.Reproduction.SplitSize {
		cfg.Reproduction.ChildSize = cfg.Reproduction.SplitSize / 2
	}
}

// ExtractFromConfig extracts current parameter values from a Config struct.
func (pv *ParamVector) ExtractFromConfig(cfg *config.Config) []float64 {
	return []float64{
		cfg.Energy.DecayBase,
		cfg.Energy.MovCost,
		cfg.Energy.RotCost,
		cfg.Reproduction.SplitSize,
		cfg.Reproduction.ChildSize,
		cfg.Reproduction.CloneChance,
		cfg.Population.SpawnSize,
		float64(cfg.Population.InverseSpawnRate),
		cfg.Collision.OverlapFraction,
		cfg.Collision.SizeRatio,
		float64(cfg.Neural.InitialMutations),
	}
}
