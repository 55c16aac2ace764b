package telemetry

// LifetimeStats tracks per-agent statistics over its lifetime.
type LifetimeStats struct {
	BirthTick int32
	LineageID uint32
	Birth     BirthKind

	Children    int
	Absorptions int
	PeakSize    float32
}

// Age returns the number of ticks the agent has been alive at tick.
func (s *LifetimeStats) Age(tick int32) int32 {
	return tick - s.BirthTick
}

// LifetimeTracker manages per-agent lifetime statistics.
type LifetimeTracker struct {
	stats map[uint32]*LifetimeStats
}

// NewLifetimeTracker creates a new lifetime tracker.
func NewLifetimeTracker() *LifetimeTracker {
	return &LifetimeTracker{
		stats: make(map[uint32]*LifetimeStats),
	}
}

// Register creates lifetime stats for a new agent.
func (lt *LifetimeTracker) Register(id uint32, birthTick int32, lineageID uint32, kind BirthKind, size float32) {
	lt.stats[id] = &LifetimeStats{
		BirthTick: birthTick,
		LineageID: lineageID,
		Birth:     kind,
		PeakSize:  size,
	}
}

// Get returns the lifetime stats for an agent, or nil if not found.
func (lt *LifetimeTracker) Get(id uint32) *LifetimeStats {
	return lt.stats[id]
}

// Remove removes an agent's stats and returns them.
func (lt *LifetimeTracker) Remove(id uint32) *LifetimeStats {
	stats := lt.stats[id]
	delete(lt.stats, id)
	return stats
}

// RecordChild increments children count.
func (lt *LifetimeTracker) RecordChild(parentID uint32) {
	if s := lt.stats[parentID]; s != nil {
		s.Children++
	}
}

// RecordAbsorption increments the absorber's meal count.
func (lt *LifetimeTracker) RecordAbsorption(id uint32) {
	if s := lt.stats[id]; s != nil {
		s.Absorptions++
	}
}

// UpdateSize tracks peak size.
func (lt *LifetimeTracker) UpdateSize(id uint32, size float32) {
	if s := lt.stats[id]; s != nil && size > s.PeakSize {
		s.PeakSize = size
	}
}

// Count returns the number of tracked agents.
func (lt *LifetimeTracker) Count() int {
	return len(lt.stats)
}

// ActiveLineageCount returns the number of distinct founders among living agents.
func (lt *LifetimeTracker) ActiveLineageCount() int {
	seen := make(map[uint32]struct{})
	for _, s := range lt.stats {
		seen[s.LineageID] = struct{}{}
	}
	return len(seen)
}

// LifetimeRecord is one finished life as written to lifetimes.csv.
type LifetimeRecord struct {
	RunID       string  `csv:"run_id"`
	ID          uint32  `csv:"id"`
	LineageID   uint32  `csv:"lineage"`
	Birth       string  `csv:"birth"`
	BirthTick   int32   `csv:"birth_tick"`
	DeathTick   int32   `csv:"death_tick"`
	Age         int32   `csv:"age"`
	Cause       string  `csv:"cause"`
	Children    int     `csv:"children"`
	Absorptions int     `csv:"absorptions"`
	PeakSize    float32 `csv:"peak_size"`
}

// Record closes out the stats of agent id, which died at deathTick.
func (s *LifetimeStats) Record(runID string, id uint32, deathTick int32, cause DeathCause) LifetimeRecord {
	return LifetimeRecord{
		RunID:       runID,
		ID:          id,
		LineageID:   s.LineageID,
		Birth:       s.Birth.String(),
		BirthTick:   s.BirthTick,
		DeathTick:   deathTick,
		Age:         s.Age(deathTick),
		Cause:       cause.String(),
		Children:    s.Children,
		Absorptions: s.Absorptions,
		PeakSize:    s.PeakSize,
	}
}
