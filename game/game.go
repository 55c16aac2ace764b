// Package game owns the simulation context: the agent population, the tick
// loop and the optional raylib viewer.
package game

import (
	"log/slog"
	"math/rand"

	"github.com/google/uuid"
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/neurosoup/camera"
	"github.com/pthm-cable/neurosoup/components"
	"github.com/pthm-cable/neurosoup/config"
	"github.com/pthm-cable/neurosoup/inspector"
	"github.com/pthm-cable/neurosoup/neural"
	"github.com/pthm-cable/neurosoup/systems"
	"github.com/pthm-cable/neurosoup/telemetry"
	"github.com/pthm-cable/neurosoup/ui"
)

// Options configures game initialization.
type Options struct {
	Seed           int64
	Headless       bool
	LogStats       bool
	StatsWindow    int    // ticks per stats window; 0 uses telemetry.stats_window
	OutputDir      string // CSV and config output; empty disables file output
	StepsPerUpdate int

	// InverseSpawnRate is what Update and UpdateHeadless pass to Step.
	// 0 uses population.inverse_spawn_rate.
	InverseSpawnRate int

	// Config overrides the global config. Used by the optimizer, which runs
	// several games with different parameters at once.
	Config *config.Config

	StatsCallback func(telemetry.WindowStats)
}

// Game holds the complete simulation state.
type Game struct {
	world *ecs.World
	rng   *rand.Rand
	cfg   *config.Config

	agentMapper *ecs.Map3[components.Position, components.Body, components.Organism]
	agentFilter *ecs.Filter3[components.Position, components.Body, components.Organism]
	posMap      *ecs.Map1[components.Position]
	bodyMap     *ecs.Map1[components.Body]
	orgMap      *ecs.Map1[components.Organism]

	// Brains keyed by organism ID.
	brains map[uint32]*neural.Brain

	// Living agents ascending by size, rebuilt at the end of every tick.
	order []ecs.Entity

	parallel *parallelState

	neuralParams  neural.Params
	senseParams   systems.SenseParams
	physicsParams systems.PhysicsParams
	energyParams  systems.EnergyParams
	collisions    *systems.CollisionResolver

	tick             int32
	nextID           uint32
	paused           bool
	headless         bool
	stepsPerUpdate   int
	inverseSpawnRate int

	// Telemetry
	runID            string
	rngSeed          int64
	collector        *telemetry.Collector
	lifetimeTracker  *telemetry.LifetimeTracker
	bookmarkDetector *telemetry.BookmarkDetector
	perfCollector    *telemetry.PerfCollector
	outputManager    *telemetry.OutputManager
	sample           telemetry.PopulationSample
	logStats         bool
	statsCallback    func(telemetry.WindowStats)

	// Viewer, nil when headless
	inspector *inspector.Inspector
	controls  *ui.ControlPanel
	hud       *ui.HUD
	camera    *camera.Camera
}

// NewGameWithOptions creates a game and seeds its initial population.
func NewGameWithOptions(opts Options) *Game {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Cfg()
	}

	world := ecs.NewWorld()

	stepsPerUpdate := opts.StepsPerUpdate
	if stepsPerUpdate < 1 {
		stepsPerUpdate = 1
	}
	spawnRate := opts.InverseSpawnRate
	if spawnRate < 1 {
		spawnRate = cfg.Population.InverseSpawnRate
	}
	statsWindow := opts.StatsWindow
	if statsWindow <= 0 {
		statsWindow = cfg.Telemetry.StatsWindow
	}

	runID := uuid.New().String()

	g := &Game{
		world:  world,
		rng:    rand.New(rand.NewSource(opts.Seed)),
		cfg:    cfg,
		brains: make(map[uint32]*neural.Brain),

		agentMapper: ecs.NewMap3[components.Position, components.Body, components.Organism](world),
		agentFilter: ecs.NewFilter3[components.Position, components.Body, components.Organism](world),
		posMap:      ecs.NewMap1[components.Position](world),
		bodyMap:     ecs.NewMap1[components.Body](world),
		orgMap:      ecs.NewMap1[components.Organism](world),

		parallel: newParallelState(),

		neuralParams:  neuralParamsFrom(cfg),
		senseParams:   systems.SenseParamsFrom(cfg),
		physicsParams: systems.PhysicsParamsFrom(cfg),
		energyParams:  systems.EnergyParamsFrom(cfg),
		collisions:    systems.NewCollisionResolver(systems.CollisionParamsFrom(cfg)),

		headless:         opts.Headless,
		stepsPerUpdate:   stepsPerUpdate,
		inverseSpawnRate: spawnRate,

		runID:            runID,
		rngSeed:          opts.Seed,
		collector:        telemetry.NewCollector(runID, statsWindow),
		lifetimeTracker:  telemetry.NewLifetimeTracker(),
		bookmarkDetector: telemetry.NewBookmarkDetector(cfg.Telemetry.BookmarkHistorySize, cfg.Bookmarks),
		perfCollector:    telemetry.NewPerfCollector(cfg.Telemetry.PerfCollectorWindow),
		logStats:         opts.LogStats,
		statsCallback:    opts.StatsCallback,
	}

	if opts.OutputDir != "" {
		om, err := telemetry.NewOutputManager(opts.OutputDir)
		if err != nil {
			slog.Error("failed to create output manager", "error", err)
		} else {
			g.outputManager = om
			if err := om.WriteConfig(cfg); err != nil {
				slog.Error("failed to write config", "error", err)
			}
		}
	}

	if !opts.Headless {
		arenaPx := int32(cfg.Screen.Height)
		g.camera = camera.New(float32(arenaPx), float32(arenaPx), cfg.Derived.ArenaSize32)
		g.controls = ui.NewControlPanel(arenaPx, 0, int32(cfg.Screen.PanelWidth))
		g.hud = ui.NewHUD(arenaPx, ui.ControlPanelHeight, int32(cfg.Screen.PanelWidth))
		g.inspector = inspector.NewInspector(arenaPx, ui.ControlPanelHeight+ui.HUDHeight,
			int32(cfg.Screen.PanelWidth), int32(cfg.Screen.Height)-ui.ControlPanelHeight-ui.HUDHeight)
	}

	g.spawnInitialPopulation()
	g.rebuildOrder()

	slog.Info("simulation started", "run_id", g.runID, "seed", g.rngSeed, "population", len(g.order))

	return g
}

// Step advances the simulation by one tick. Each tick a random agent is
// spawned with probability 1/inverseSpawnRate.
func (g *Game) Step(inverseSpawnRate int) {
	if inverseSpawnRate < 1 {
		panic("game: inverse spawn rate must be >= 1")
	}
	g.simulationStep(inverseSpawnRate)
}

// UpdateHeadless runs stepsPerUpdate ticks without input or rendering.
func (g *Game) UpdateHeadless() {
	for i := 0; i < g.stepsPerUpdate; i++ {
		g.Step(g.inverseSpawnRate)
	}
}

// Update handles input and runs the ticks for one frame.
func (g *Game) Update() {
	g.perfCollector.RecordFrame()
	g.handleInput()

	if g.paused {
		return
	}
	for i := 0; i < g.stepsPerUpdate; i++ {
		g.Step(g.inverseSpawnRate)
	}
}

// Unload stops workers and closes output files.
func (g *Game) Unload() {
	g.stopParallelWorkers()
	if g.outputManager != nil {
		if err := g.outputManager.Close(); err != nil {
			slog.Error("failed to close output", "error", err)
		}
	}
}

// Tick returns the number of completed ticks.
func (g *Game) Tick() int32 {
	return g.tick
}

// RunID identifies this run in logs and telemetry rows.
func (g *Game) RunID() string {
	return g.runID
}

// Count returns the number of living agents.
func (g *Game) Count() int {
	return len(g.order)
}

// Paused reports whether the viewer has paused the simulation.
func (g *Game) Paused() bool {
	return g.paused
}

// MaxGeneration returns the highest brain generation among living agents.
func (g *Game) MaxGeneration() int {
	best := 0
	for _, e := range g.order {
		if b, ok := g.brains[g.orgMap.Get(e).ID]; ok && b.Generation > best {
			best = b.Generation
		}
	}
	return best
}
