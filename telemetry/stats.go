package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for a window of ticks.
type WindowStats struct {
	RunID           string `csv:"run_id"`
	WindowStartTick int32  `csv:"-"`
	WindowEndTick   int32  `csv:"window_end"`

	// Population at window end
	Population int `csv:"population"`
	Lineages   int `csv:"lineages"`

	// Events during window
	BirthsSpawned int     `csv:"births_spawned"`
	BirthsCloned  int     `csv:"births_cloned"`
	BirthsMutated int     `csv:"births_mutated"`
	DeathsEaten   int     `csv:"deaths_eaten"`
	DeathsStarved int     `csv:"deaths_starved"`
	MassAbsorbed  float64 `csv:"mass_absorbed"` // total size of absorbed agents
	MassDecayed   float64 `csv:"mass_decayed"`  // total size lost to the energy cost

	// Distributions sampled at window end
	Size        Distribution `csv:"size"`
	Generation  Distribution `csv:"gen"`
	Hidden      Distribution `csv:"hidden"`
	Connections Distribution `csv:"conn"`
}

// Distribution summarises a sample.
type Distribution struct {
	Mean float64 `csv:"mean"`
	Std  float64 `csv:"std"`
	P10  float64 `csv:"p10"`
	P50  float64 `csv:"p50"`
	P90  float64 `csv:"p90"`
	Max  float64 `csv:"max"`
}

// Percentile calculates the p-th percentile of a sorted slice.
// p should be in [0, 1]. Returns 0 if slice is empty.
func Percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if p <= 0 {
		return sorted[0]
	}
	if p >= 1 {
		return sorted[n-1]
	}

	// Linear interpolation
	idx := p * float64(n-1)
	lo := int(idx)
	hi := lo + 1
	if hi >= n {
		return sorted[n-1]
	}

	frac := idx - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

// ComputeDistribution calculates mean, sample standard deviation, percentiles
// and maximum. The input is not modified.
func ComputeDistribution(values []float64) Distribution {
	n := len(values)
	if n == 0 {
		return Distribution{}
	}

	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	var d Distribution
	if n == 1 {
		d.Mean = sorted[0]
	} else {
		d.Mean, d.Std = stat.MeanStdDev(sorted, nil)
	}
	d.P10 = Percentile(sorted, 0.10)
	d.P50 = Percentile(sorted, 0.50)
	d.P90 = Percentile(sorted, 0.90)
	d.Max = floats.Max(sorted)
	return d
}

func (d Distribution) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Float64("mean", d.Mean),
		slog.Float64("std", d.Std),
		slog.Float64("p10", d.P10),
		slog.Float64("p50", d.P50),
		slog.Float64("p90", d.P90),
		slog.Float64("max", d.Max),
	)
}

// Births returns the total number of births in the window.
func (s WindowStats) Births() int {
	return s.BirthsSpawned + s.BirthsCloned + s.BirthsMutated
}

// Deaths returns the total number of deaths in the window.
func (s WindowStats) Deaths() int {
	return s.DeathsEaten + s.DeathsStarved
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("run_id", s.RunID),
		slog.Int("window_start", int(s.WindowStartTick)),
		slog.Int("window_end", int(s.WindowEndTick)),
		slog.Int("population", s.Population),
		slog.Int("lineages", s.Lineages),
		slog.Int("births_spawned", s.BirthsSpawned),
		slog.Int("births_cloned", s.BirthsCloned),
		slog.Int("births_mutated", s.BirthsMutated),
		slog.Int("deaths_eaten", s.DeathsEaten),
		slog.Int("deaths_starved", s.DeathsStarved),
		slog.Float64("mass_absorbed", s.MassAbsorbed),
		slog.Float64("mass_decayed", s.MassDecayed),
		slog.Any("size", s.Size),
		slog.Any("generation", s.Generation),
		slog.Any("hidden", s.Hidden),
		slog.Any("connections", s.Connections),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats",
		"window_end", s.WindowEndTick,
		"population", s.Population,
		"lineages", s.Lineages,
		"births", s.Births(),
		"births_mutated", s.BirthsMutated,
		"deaths_eaten", s.DeathsEaten,
		"deaths_starved", s.DeathsStarved,
		"size_mean", s.Size.Mean,
		"size_max", s.Size.Max,
		"gen_mean", s.Generation.Mean,
		"gen_max", s.Generation.Max,
		"hidden_mean", s.Hidden.Mean,
		"conn_mean", s.Connections.Mean,
	)
}
