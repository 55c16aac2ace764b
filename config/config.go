// Package config provides configuration loading and access for the simulation.
package config

import (
	_ "embed"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all simulation configuration parameters.
type Config struct {
	Screen       ScreenConfig       `yaml:"screen"`
	Arena        ArenaConfig        `yaml:"arena"`
	Physics      PhysicsConfig      `yaml:"physics"`
	Energy       EnergyConfig       `yaml:"energy"`
	Population   PopulationConfig   `yaml:"population"`
	Reproduction ReproductionConfig `yaml:"reproduction"`
	Collision    CollisionConfig    `yaml:"collision"`
	Sensors      SensorsConfig      `yaml:"sensors"`
	Neural       NeuralConfig       `yaml:"neural"`
	Mutation     MutationConfig     `yaml:"mutation"`
	Telemetry    TelemetryConfig    `yaml:"telemetry"`
	Bookmarks    BookmarksConfig    `yaml:"bookmarks"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width      int `yaml:"width"`
	Height     int `yaml:"height"`
	TargetFPS  int `yaml:"target_fps"`
	PanelWidth int `yaml:"panel_width"` // Right-hand control/inspector column
}

// ArenaConfig holds the square arena dimensions.
type ArenaConfig struct {
	Size float64 `yaml:"size"`
}

// PhysicsConfig holds movement parameters.
type PhysicsConfig struct {
	MovSpeed float64 `yaml:"mov_speed"` // Arena units per tick at full forward drive
	RotSpeed float64 `yaml:"rot_speed"` // Fraction of pi turned per tick at full turn drive
}

// EnergyConfig holds the size-as-energy economy.
// size *= decay_base ^ (1 + |mov|*mov_cost + |rot|*rot_cost)
type EnergyConfig struct {
	DecayBase     float64 `yaml:"decay_base"`
	MovCost       float64 `yaml:"mov_cost"`
	RotCost       float64 `yaml:"rot_cost"`
	MinViableSize float64 `yaml:"min_viable_size"` // Agents below this are culled
}

// PopulationConfig holds population management parameters.
type PopulationConfig struct {
	Initial          int     `yaml:"initial"`
	InverseSpawnRate int     `yaml:"inverse_spawn_rate"` // One random agent per N ticks on average
	SpawnSize        float64 `yaml:"spawn_size"`
}

// ReproductionConfig holds splitting parameters.
type ReproductionConfig struct {
	SplitSize   float64 `yaml:"split_size"`   // Parents must exceed this size to split
	ChildSize   float64 `yaml:"child_size"`   // Size of every split-born child
	CloneChance float64 `yaml:"clone_chance"` // Probability a child is an exact copy
	ChildGap    float64 `yaml:"child_gap"`    // Spacing between parent and child boxes
}

// CollisionConfig holds absorption rules.
type CollisionConfig struct {
	OverlapFraction float64 `yaml:"overlap_fraction"` // Overlap must exceed this share of the smaller box
	SizeRatio       float64 `yaml:"size_ratio"`       // Absorber must be larger by this factor
}

// SensorsConfig holds perception parameters.
type SensorsConfig struct {
	SizeRatio     float64 `yaml:"size_ratio"`      // Band for the ternary relative-size signal
	MinTargetSize float64 `yaml:"min_target_size"` // Agents smaller than this are invisible
}

// NeuralConfig holds brain construction parameters.
type NeuralConfig struct {
	InitialMutations int  `yaml:"initial_mutations"` // Mutation passes applied to a random brain
	MaxInitDecay     int  `yaml:"max_init_decay"`
	MaxInitThreshold int  `yaml:"max_init_threshold"`
	ResetGeneration  bool `yaml:"reset_generation"` // Random brains restart at generation 0
}

// MutationConfig holds genome mutation bounds.
type MutationConfig struct {
	MinRateGene      int `yaml:"min_rate_gene"`
	MaxInitRateGene  int `yaml:"max_init_rate_gene"`
	MinSplitGene     int `yaml:"min_split_gene"`
	MaxInitSplitGene int `yaml:"max_init_split_gene"`
	ColorDrift       int `yaml:"color_drift"`
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow         int `yaml:"stats_window"` // Ticks per stats window
	BookmarkHistorySize int `yaml:"bookmark_history_size"`
	PerfCollectorWindow int `yaml:"perf_collector_window"`
}

// BookmarksConfig holds bookmark detection thresholds.
type BookmarksConfig struct {
	PopulationCrash     PopulationCrashConfig     `yaml:"population_crash"`
	GenerationMilestone GenerationMilestoneConfig `yaml:"generation_milestone"`
	Giant               GiantConfig               `yaml:"giant"`
}

// PopulationCrashConfig holds population crash detection parameters.
type PopulationCrashConfig struct {
	DropPercent float64 `yaml:"drop_percent"`
	MinDrop     int     `yaml:"min_drop"`
}

// GenerationMilestoneConfig fires a bookmark each time max generation crosses a multiple of Every.
type GenerationMilestoneConfig struct {
	Every int `yaml:"every"`
}

// GiantConfig fires when the largest agent first exceeds MinSize.
type GiantConfig struct {
	MinSize float64 `yaml:"min_size"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	ArenaSize32  float32 // Arena.Size as float32
	MaxProximity float64 // 2 * size^4, the largest value of the sensing metric
	ScreenW32    float32
	ScreenH32    float32
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.computeDerived()

	return cfg, nil
}

// Validate rejects values that would make a probability draw or a size rule meaningless.
func (c *Config) Validate() error {
	switch {
	case c.Arena.Size <= 0:
		return fmt.Errorf("arena.size must be positive, got %v", c.Arena.Size)
	case c.Population.InverseSpawnRate < 1:
		return fmt.Errorf("population.inverse_spawn_rate must be >= 1, got %d", c.Population.InverseSpawnRate)
	case c.Energy.DecayBase <= 0 || c.Energy.DecayBase > 1:
		return fmt.Errorf("energy.decay_base must be in (0, 1], got %v", c.Energy.DecayBase)
	case c.Reproduction.ChildSize >= c.Reproduction.SplitSize:
		return fmt.Errorf("reproduction.child_size (%v) must be below split_size (%v)",
			c.Reproduction.ChildSize, c.Reproduction.SplitSize)
	case c.Mutation.MinRateGene < 1 || c.Mutation.MaxInitRateGene < c.Mutation.MinRateGene:
		return fmt.Errorf("mutation rate gene bounds invalid: min %d max %d",
			c.Mutation.MinRateGene, c.Mutation.MaxInitRateGene)
	case c.Mutation.MinSplitGene < 1 || c.Mutation.MaxInitSplitGene < c.Mutation.MinSplitGene:
		return fmt.Errorf("mutation split gene bounds invalid: min %d max %d",
			c.Mutation.MinSplitGene, c.Mutation.MaxInitSplitGene)
	}
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.ArenaSize32 = float32(c.Arena.Size)
	c.Derived.MaxProximity = 2 * math.Pow(c.Arena.Size, 4)
	c.Derived.ScreenW32 = float32(c.Screen.Width)
	c.Derived.ScreenH32 = float32(c.Screen.Height)
}

// Clone returns a deep copy, recomputing derived values.
func (c *Config) Clone() *Config {
	cp := *c
	cp.computeDerived()
	return &cp
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
