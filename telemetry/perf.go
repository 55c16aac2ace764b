package telemetry

import (
	"log/slog"
	"slices"
	"time"
)

// Phase is one stage of the simulation step.
type Phase uint8

// Phases in tick order.
const (
	PhaseReproduction Phase = iota
	PhaseBehavior           // sense, think, move, pay energy
	PhaseCollision
	PhaseCleanup
	PhaseSort
	PhaseTelemetry
	NumPhases
)

var phaseNames = [NumPhases]string{
	"reproduction", "behavior", "collision", "cleanup", "sort", "telemetry",
}

func (p Phase) String() string {
	if p >= NumPhases {
		return "unknown"
	}
	return phaseNames[p]
}

// noPhase marks a tick with no phase started yet.
const noPhase = NumPhases

// PerfSample holds timing data for a single tick.
type PerfSample struct {
	TickDuration time.Duration
	Phases       [NumPhases]time.Duration
	Agents       int // population when the tick ended
}

// PerfCollector keeps a ring of the last windowSize tick samples.
type PerfCollector struct {
	windowSize  int
	samples     []PerfSample
	writeIndex  int
	sampleCount int

	current    PerfSample
	tickStart  time.Time
	phaseStart time.Time
	lastPhase  Phase

	// Frame timing (for graphics mode)
	lastFrameTime time.Time
	frameDuration time.Duration

	scratch []float64
}

// NewPerfCollector creates a collector averaging over windowSize ticks.
func NewPerfCollector(windowSize int) *PerfCollector {
	if windowSize < 1 {
		windowSize = 60
	}
	return &PerfCollector{
		windowSize: windowSize,
		samples:    make([]PerfSample, windowSize),
		lastPhase:  noPhase,
		scratch:    make([]float64, 0, windowSize),
	}
}

// StartTick begins timing a new simulation tick.
func (p *PerfCollector) StartTick() {
	p.tickStart = time.Now()
	p.current = PerfSample{}
	p.lastPhase = noPhase
}

// StartPhase closes the running phase, if any, and starts timing phase.
func (p *PerfCollector) StartPhase(phase Phase) {
	now := time.Now()
	p.closePhase(now)
	p.phaseStart = now
	p.lastPhase = phase
}

func (p *PerfCollector) closePhase(now time.Time) {
	if p.lastPhase < NumPhases {
		p.current.Phases[p.lastPhase] += now.Sub(p.phaseStart)
	}
}

// EndTick finishes the tick and records it with the current population.
func (p *PerfCollector) EndTick(agents int) {
	now := time.Now()
	p.closePhase(now)
	p.lastPhase = noPhase

	p.current.TickDuration = now.Sub(p.tickStart)
	p.current.Agents = agents

	p.samples[p.writeIndex] = p.current
	p.writeIndex = (p.writeIndex + 1) % p.windowSize
	if p.sampleCount < p.windowSize {
		p.sampleCount++
	}
}

// RecordFrame records frame timing for graphics mode.
func (p *PerfCollector) RecordFrame() {
	now := time.Now()
	if !p.lastFrameTime.IsZero() {
		p.frameDuration = now.Sub(p.lastFrameTime)
	}
	p.lastFrameTime = now
}

// PerfStats holds aggregated performance statistics.
type PerfStats struct {
	AvgTickDuration time.Duration
	MinTickDuration time.Duration
	MaxTickDuration time.Duration
	P95TickDuration time.Duration

	// Phase breakdown: average duration and share of the average tick
	PhaseAvg [NumPhases]time.Duration
	PhasePct [NumPhases]float64

	TicksPerSecond float64
	// AgentTicksPerSecond is agents stepped per wall-clock second, the
	// throughput figure that stays comparable as the population changes.
	AgentTicksPerSecond float64
	AvgAgents           float64

	// Frame timing (graphics mode)
	FrameDuration time.Duration
	FPS           float64
}

// Stats aggregates the samples in the current window.
func (p *PerfCollector) Stats() PerfStats {
	stats := PerfStats{FrameDuration: p.frameDuration}
	if p.frameDuration > 0 {
		stats.FPS = float64(time.Second) / float64(p.frameDuration)
	}
	if p.sampleCount == 0 {
		return stats
	}

	var total time.Duration
	var phaseSum [NumPhases]time.Duration
	agents := 0
	ticks := p.scratch[:0]

	for i := 0; i < p.sampleCount; i++ {
		s := &p.samples[i]
		total += s.TickDuration
		agents += s.Agents
		ticks = append(ticks, float64(s.TickDuration))
		for ph, d := range s.Phases {
			phaseSum[ph] += d
		}
	}
	p.scratch = ticks

	slices.Sort(ticks)
	n := time.Duration(p.sampleCount)
	stats.AvgTickDuration = total / n
	stats.MinTickDuration = time.Duration(ticks[0])
	stats.MaxTickDuration = time.Duration(ticks[len(ticks)-1])
	stats.P95TickDuration = time.Duration(Percentile(ticks, 0.95))
	stats.AvgAgents = float64(agents) / float64(p.sampleCount)

	for ph := range phaseSum {
		stats.PhaseAvg[ph] = phaseSum[ph] / n
		if stats.AvgTickDuration > 0 {
			stats.PhasePct[ph] = float64(stats.PhaseAvg[ph]) / float64(stats.AvgTickDuration) * 100
		}
	}

	if total > 0 {
		stats.TicksPerSecond = float64(time.Second) / float64(stats.AvgTickDuration)
		stats.AgentTicksPerSecond = float64(agents) * float64(time.Second) / float64(total)
	}
	return stats
}

// LogStats logs performance statistics, leaving out negligible phases.
func (s PerfStats) LogStats() {
	attrs := []any{
		"avg_tick_us", s.AvgTickDuration.Microseconds(),
		"p95_tick_us", s.P95TickDuration.Microseconds(),
		"max_tick_us", s.MaxTickDuration.Microseconds(),
		"ticks_per_sec", int(s.TicksPerSecond),
		"agent_ticks_per_sec", int(s.AgentTicksPerSecond),
	}
	if s.FPS > 0 {
		attrs = append(attrs, "fps", int(s.FPS))
	}
	for ph := Phase(0); ph < NumPhases; ph++ {
		if pct := s.PhasePct[ph]; pct > 0.1 {
			attrs = append(attrs, ph.String()+"_pct", float64(int(pct*10))/10)
		}
	}

	slog.Info("perf", attrs...)
}

// LogValue implements slog.LogValuer for structured logging.
func (s PerfStats) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.Int64("avg_tick_us", s.AvgTickDuration.Microseconds()),
		slog.Int64("min_tick_us", s.MinTickDuration.Microseconds()),
		slog.Int64("max_tick_us", s.MaxTickDuration.Microseconds()),
		slog.Int64("p95_tick_us", s.P95TickDuration.Microseconds()),
		slog.Float64("ticks_per_sec", s.TicksPerSecond),
		slog.Float64("agent_ticks_per_sec", s.AgentTicksPerSecond),
	}
	if s.FPS > 0 {
		attrs = append(attrs, slog.Float64("fps", s.FPS))
	}
	for ph := Phase(0); ph < NumPhases; ph++ {
		attrs = append(attrs, slog.Float64(ph.String()+"_pct", s.PhasePct[ph]))
	}
	return slog.GroupValue(attrs...)
}

// PerfStatsCSV is a flat struct for CSV export of performance stats.
type PerfStatsCSV struct {
	RunID            string  `csv:"run_id"`
	WindowEnd        int32   `csv:"window_end"`
	AvgTickUS        int64   `csv:"avg_tick_us"`
	P95TickUS        int64   `csv:"p95_tick_us"`
	MaxTickUS        int64   `csv:"max_tick_us"`
	TicksPerSec      float64 `csv:"ticks_per_sec"`
	AgentTicksPerSec float64 `csv:"agent_ticks_per_sec"`
	AvgAgents        float64 `csv:"avg_agents"`
	FPS              float64 `csv:"fps"`
	ReproductionPct  float64 `csv:"reproduction_pct"`
	BehaviorPct      float64 `csv:"behavior_pct"`
	CollisionPct     float64 `csv:"collision_pct"`
	CleanupPct       float64 `csv:"cleanup_pct"`
	SortPct          float64 `csv:"sort_pct"`
	TelemetryPct     float64 `csv:"telemetry_pct"`
}

// ToCSV converts PerfStats to a flat CSV-friendly struct.
func (s PerfStats) ToCSV(runID string, windowEnd int32) PerfStatsCSV {
	return PerfStatsCSV{
		RunID:            runID,
		WindowEnd:        windowEnd,
		AvgTickUS:        s.AvgTickDuration.Microseconds(),
		P95TickUS:        s.P95TickDuration.Microseconds(),
		MaxTickUS:        s.MaxTickDuration.Microseconds(),
		TicksPerSec:      s.TicksPerSecond,
		AgentTicksPerSec: s.AgentTicksPerSecond,
		AvgAgents:        s.AvgAgents,
		FPS:              s.FPS,
		ReproductionPct:  s.PhasePct[PhaseReproduction],
		BehaviorPct:      s.PhasePct[PhaseBehavior],
		CollisionPct:     s.PhasePct[PhaseCollision],
		CleanupPct:       s.PhasePct[PhaseCleanup],
		SortPct:          s.PhasePct[PhaseSort],
		TelemetryPct:     s.PhasePct[PhaseTelemetry],
	}
}
