// Package main searches for ecology constants under which split-born
// lineages sustain themselves and evolve, using CMA-ES over headless runs.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"time"

	"gonum.org/v1/gonum/optimize"

	"github.com/pthm-cable/neurosoup/config"
)

type options struct {
	configPath string
	outputDir  string
	maxTicks   int
	seeds      int
	maxEvals   int
	population int
	stepSize   float64
}

func main() {
	var opts options
	flag.StringVar(&opts.configPath, "config", "", "Base config YAML file (empty = use defaults)")
	flag.StringVar(&opts.outputDir, "output", "", "Output directory for results")
	flag.IntVar(&opts.maxTicks, "max-ticks", 100000, "Maximum simulation duration in ticks (cap)")
	flag.IntVar(&opts.seeds, "seeds", 3, "Number of seeds per evaluation")
	flag.IntVar(&opts.maxEvals, "max-evals", 200, "Maximum number of evaluations")
	flag.IntVar(&opts.population, "population", 0, "CMA-ES population size (0 = 4 + 3 ln(dim))")
	flag.Float64Var(&opts.stepSize, "step", 0.3, "Initial CMA-ES step size in normalized units")
	flag.Parse()

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	if err := run(opts); err != nil {
		slog.Error("optimization failed", "error", err)
		os.Exit(1)
	}
}

func run(opts options) error {
	if opts.outputDir == "" {
		return errors.New("-output is required")
	}
	if opts.seeds < 1 {
		return fmt.Errorf("-seeds must be >= 1, got %d", opts.seeds)
	}
	if err := os.MkdirAll(opts.outputDir, 0755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	if err := config.Init(opts.configPath); err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	baseCfg := config.Cfg()

	params := NewParamVector()
	evaluator := NewFitnessEvaluator(params, int32(opts.maxTicks), evalSeeds(opts.seeds), baseCfg)

	evals, err := newEvalLog(filepath.Join(opts.outputDir, "optimize_log.csv"), params.Specs)
	if err != nil {
		return err
	}
	defer func() {
		if err := evals.Close(); err != nil {
			slog.Warn("failed to close eval log", "error", err)
		}
	}()

	dim := params.Dim()
	popSize := opts.population
	if popSize == 0 {
		popSize = 4 + int(3.0*math.Log(float64(dim)))
	}

	start := time.Now()
	problem := optimize.Problem{
		Func: func(x []float64) float64 {
			raw := params.Denormalize(x)
			e := evaluator.Evaluate(raw)

			improved, err := evals.Record(e, params.Clamp(raw))
			if err != nil {
				slog.Warn("failed to write eval log", "error", err)
			}
			logProgress(evals, e, improved, opts.maxEvals, time.Since(start))
			return e.Fitness
		},
	}

	slog.Info("starting CMA-ES",
		"params", dim,
		"population", popSize,
		"max_evals", opts.maxEvals,
		"seeds", opts.seeds,
		"max_ticks", opts.maxTicks,
	)

	// Start from the base config so -config doubles as a warm start.
	initX := params.Normalize(params.ExtractFromConfig(baseCfg))
	settings := &optimize.Settings{FuncEvaluations: opts.maxEvals}
	method := &optimize.CmaEsChol{InitStepSize: opts.stepSize, Population: popSize}

	result, err := optimize.Minimize(problem, initX, settings, method)
	if err != nil {
		slog.Warn("optimization ended early", "error", err)
	}

	// The best evaluation may come from any generation, not just the final mean.
	best, bestParams, ok := evals.Best()
	if !ok {
		if result == nil {
			return errors.New("no evaluations completed")
		}
		bestParams = params.Clamp(params.Denormalize(result.X))
	}

	attrs := make([]any, 0, 2*dim)
	for i, spec := range params.Specs {
		attrs = append(attrs, spec.Path, bestParams[i])
	}
	slog.Info("optimization complete",
		"evals", evals.Count(),
		"elapsed", time.Since(start).Round(time.Second).String(),
		"best_fitness", best.Fitness,
		slog.Group("best", attrs...),
	)

	bestCfg := baseCfg.Clone()
	params.ApplyToConfig(bestCfg, bestParams)
	if err := bestCfg.Validate(); err != nil {
		return fmt.Errorf("best config invalid: %w", err)
	}

	configOut := filepath.Join(opts.outputDir, "best_config.yaml")
	if err := bestCfg.WriteYAML(configOut); err != nil {
		return fmt.Errorf("writing best config: %w", err)
	}
	slog.Info("best config saved", "path", configOut)
	return nil
}

// evalSeeds returns n fixed, well-separated seeds so every candidate faces
// the same worlds.
func evalSeeds(n int) []int64 {
	seeds := make([]int64, n)
	for i := range seeds {
		seeds[i] = int64(i*1000 + 42)
	}
	return seeds
}

func logProgress(evals *evalLog, e Evaluation, improved bool, maxEvals int, elapsed time.Duration) {
	n := evals.Count()
	remaining := time.Duration(maxEvals-n) * (elapsed / time.Duration(n))
	best, _, _ := evals.Best()
	slog.Info("evaluation",
		"n", n,
		"of", maxEvals,
		"survival_ticks", math.Round(e.SurvivalTicks),
		"quality", e.Quality,
		"max_generation", e.MaxGeneration,
		"fitness", e.Fitness,
		"best", best.Fitness,
		"improved", improved,
		"elapsed", elapsed.Round(time.Second).String(),
		"eta", remaining.Round(time.Second).String(),
	)
}
