package telemetry

// Collector accumulates events within windows of ticks and produces WindowStats.
type Collector struct {
	runID               string
	windowDurationTicks int32

	// Current window tracking
	windowStartTick int32

	// Event counters for current window
	births       [3]int
	deaths       [2]int
	massAbsorbed float64
	massDecayed  float64
}

// PopulationSample is the per-agent state sampled at the end of a window.
type PopulationSample struct {
	Sizes       []float64
	Generations []float64
	Hidden      []float64
	Connections []float64
	Lineages    int
}

// Reset empties the sample, keeping its backing arrays.
func (s *PopulationSample) Reset() {
	s.Sizes = s.Sizes[:0]
	s.Generations = s.Generations[:0]
	s.Hidden = s.Hidden[:0]
	s.Connections = s.Connections[:0]
	s.Lineages = 0
}

// NewCollector creates a stats collector that flushes every windowTicks ticks.
func NewCollector(runID string, windowTicks int) *Collector {
	if windowTicks < 1 {
		windowTicks = 1
	}
	return &Collector{
		runID:               runID,
		windowDurationTicks: int32(windowTicks),
	}
}

// RecordBirth records a birth event.
func (c *Collector) RecordBirth(kind BirthKind) {
	c.births[kind]++
}

// RecordDeath records a death event.
func (c *Collector) RecordDeath(cause DeathCause) {
	c.deaths[cause]++
}

// RecordAbsorption records the size of an absorbed agent.
func (c *Collector) RecordAbsorption(size float32) {
	c.massAbsorbed += float64(size)
}

// RecordDecay records size lost to the per-tick energy cost.
func (c *Collector) RecordDecay(lost float32) {
	c.massDecayed += float64(lost)
}

// ShouldFlush returns true if enough ticks have passed to flush the window.
func (c *Collector) ShouldFlush(currentTick int32) bool {
	return currentTick-c.windowStartTick >= c.windowDurationTicks
}

// Flush produces a WindowStats and resets counters for the next window.
func (c *Collector) Flush(currentTick int32, sample *PopulationSample) WindowStats {
	stats := WindowStats{
		RunID:           c.runID,
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   currentTick,

		Population: len(sample.Sizes),
		Lineages:   sample.Lineages,

		BirthsSpawned: c.births[BirthSpawned],
		BirthsCloned:  c.births[BirthCloned],
		BirthsMutated: c.births[BirthMutated],
		DeathsEaten:   c.deaths[DeathEaten],
		DeathsStarved: c.deaths[DeathStarved],
		MassAbsorbed:  c.massAbsorbed,
		MassDecayed:   c.massDecayed,

		Size:        ComputeDistribution(sample.Sizes),
		Generation:  ComputeDistribution(sample.Generations),
		Hidden:      ComputeDistribution(sample.Hidden),
		Connections: ComputeDistribution(sample.Connections),
	}

	// Reset for next window
	c.windowStartTick = currentTick
	c.births = [3]int{}
	c.deaths = [2]int{}
	c.massAbsorbed = 0
	c.massDecayed = 0

	return stats
}

// WindowDurationTicks returns the number of ticks per window.
func (c *Collector) WindowDurationTicks() int32 {
	return c.windowDurationTicks
}
