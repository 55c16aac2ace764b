package main

import (
	"math"
	"sync"

	"github.com/pthm-cable/neurosoup/config"
	"github.com/pthm-cable/neurosoup/game"
	"github.com/pthm-cable/neurosoup/telemetry"
)

// FitnessEvaluator runs headless simulations and computes fitness.
// Evaluate is safe to call from one goroutine at a time; the seeds of one
// evaluation run concurrently.
type FitnessEvaluator struct {
	params      *ParamVector
	maxTicks    int32
	seeds       []int64
	baseConfig  *config.Config
	statsWindow int
}

// NewFitnessEvaluator creates a new evaluator.
func NewFitnessEvaluator(params *ParamVector, maxTicks int32, seeds []int64, baseCfg *config.Config) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:      params,
		maxTicks:    maxTicks,
		seeds:       seeds,
		baseConfig:  baseCfg,
		statsWindow: baseCfg.Telemetry.StatsWindow,
	}
}

// Random spawning never lets the arena empty for good, so a run counts as
// collapsed once the population stays below minViablePop for graceTicks.
const (
	minViablePop = 5
	graceTicks   = 3000
	warmupTicks  = 500
)

// runResult holds the results from a single simulation run.
type runResult struct {
	survivalTicks int32                   // ticks before collapse (or maxTicks if survived)
	maxGeneration int                     // deepest lineage at the end of the run
	windowStats   []telemetry.WindowStats // collected via StatsCallback each window
}

// Evaluation is one parameter vector's outcome averaged over the seeds.
type Evaluation struct {
	Fitness       float64 // lower is better
	Quality       float64
	SurvivalTicks float64
	MaxGeneration float64
}

// Evaluate runs every seed concurrently and averages the results.
func (fe *FitnessEvaluator) Evaluate(x []float64) Evaluation {
	results := make([]Evaluation, len(fe.seeds))
	var wg sync.WaitGroup

	for i, seed := range fe.seeds {
		wg.Add(1)
		go func(idx int, s int64) {
			defer wg.Done()
			run := fe.runSimulation(x, s)
			quality := computeQuality(run.windowStats, run.maxGeneration)
			results[idx] = Evaluation{
				Fitness:       computeFitness(run.survivalTicks, quality),
				Quality:       quality,
				SurvivalTicks: float64(run.survivalTicks),
				MaxGeneration: float64(run.maxGeneration),
			}
		}(i, seed)
	}
	wg.Wait()

	return averageEvaluations(results)
}

// averageEvaluations is the field-wise mean of evals.
func averageEvaluations(evals []Evaluation) Evaluation {
	var avg Evaluation
	if len(evals) == 0 {
		return avg
	}
	for _, e := range evals {
		avg.Fitness += e.Fitness
		avg.Quality += e.Quality
		avg.SurvivalTicks += e.SurvivalTicks
		avg.MaxGeneration += e.MaxGeneration
	}
	n := float64(len(evals))
	avg.Fitness /= n
	avg.Quality /= n
	avg.SurvivalTicks /= n
	avg.MaxGeneration /= n
	return avg
}

// runSimulation executes a single headless simulation run.
// Runs until collapse or maxTicks, whichever comes first.
func (fe *FitnessEvaluator) runSimulation(x []float64, seed int64) *runResult {
	cfg := fe.baseConfig.Clone()
	fe.params.ApplyToConfig(cfg, x)

	result := &runResult{survivalTicks: fe.maxTicks}

	g := game.NewGameWithOptions(game.Options{
		Seed:           seed,
		Headless:       true,
		StatsWindow:    fe.statsWindow,
		StepsPerUpdate: 1,
		Config:         cfg,
		StatsCallback: func(stats telemetry.WindowStats) {
			result.windowStats = append(result.windowStats, stats)
		},
	})
	defer g.Unload()

	var belowTicks int32
	for g.Tick() < fe.maxTicks {
		g.UpdateHeadless()

		if g.Tick() < warmupTicks {
			continue
		}
		if g.Count() < minViablePop {
			belowTicks++
		} else {
			belowTicks = 0
		}
		if belowTicks >= graceTicks {
			result.survivalTicks = g.Tick()
			break
		}
	}

	result.maxGeneration = g.MaxGeneration()
	return result
}

// computeFitness calculates the scalar fitness (lower = better).
// Formula: -(survivalTicks × (1.0 + quality))
// Survival dominates; quality up to doubles it so configs that survive
// equally long are ranked by how much the population evolves.
func computeFitness(survivalTicks int32, quality float64) float64 {
	return -(float64(survivalTicks) * (1.0 + quality))
}

// Quality component weights.
const (
	qualityWeightSplitting = 0.35
	qualityWeightDepth     = 0.30
	qualityWeightStability = 0.20
	qualityWeightLineages  = 0.15

	qualityWarmupWindows = 2  // skip first N windows (warmup)
	depthScale           = 50 // generations for ~63% of the depth score
)

// computeQuality computes evolutionary quality ∈ [0, 1] from window stats.
func computeQuality(windows []telemetry.WindowStats, maxGeneration int) float64 {
	if len(windows) <= qualityWarmupWindows {
		return 0
	}
	valid := windows[qualityWarmupWindows:]

	var splitBirths, spawnBirths int
	var lineageSum float64
	counts := make([]float64, 0, len(valid))

	for _, w := range valid {
		splitBirths += w.BirthsCloned + w.BirthsMutated
		spawnBirths += w.BirthsSpawned
		counts = append(counts, float64(w.Population))
		if w.Population > 0 {
			// Fewer lineages per agent means some founders are out-competing the rest.
			lineageSum += 1 - float64(w.Lineages)/float64(w.Population)
		}
	}

	// 1. Self-sustaining reproduction: share of births that came from splits
	splitScore := 0.0
	if total := splitBirths + spawnBirths; total > 0 {
		splitScore = float64(splitBirths) / float64(total)
	}

	// 2. Lineage depth
	depthScore := 1 - math.Exp(-float64(maxGeneration)/depthScale)

	// 3. Population stability (CV across valid windows)
	stabilityScore := 0.0
	if len(counts) >= 2 {
		c := cv(counts)
		stabilityScore = math.Exp(-c * c)
	}

	// 4. Lineage dominance
	lineageScore := lineageSum / float64(len(valid))

	quality := qualityWeightSplitting*splitScore +
		qualityWeightDepth*depthScore +
		qualityWeightStability*stabilityScore +
		qualityWeightLineages*lineageScore

	return clamp01(quality)
}

// cv computes the coefficient of variation (std/mean) for a slice of values.
func cv(values []float64) float64 {
	n := float64(len(values))
	if n == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	mean := sum / n
	if mean == 0 {
		return 0
	}
	var sqDiff float64
	for _, v := range values {
		d := v - mean
		sqDiff += d * d
	}
	return math.Sqrt(sqDiff/n) / mean
}

// clamp01 clamps x to [0, 1].
func clamp01(x float64) float64 {
	return min(max(x, 0), 1)
}
