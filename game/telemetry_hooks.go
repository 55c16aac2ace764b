package game

import (
	"log/slog"

	"github.com/pthm-cable/neurosoup/telemetry"
)

// flushTelemetry checks if the stats window should be flushed and handles bookmarks.
func (g *Game) flushTelemetry() {
	if !g.collector.ShouldFlush(g.tick) {
		return
	}

	g.samplePopulation()

	stats := g.collector.Flush(g.tick, &g.sample)
	perfStats := g.perfCollector.Stats()

	if g.statsCallback != nil {
		g.statsCallback(stats)
	}

	if g.logStats {
		stats.LogStats()
		perfStats.LogStats()
	}

	if g.outputManager != nil {
		if err := g.outputManager.WriteTelemetry(stats); err != nil {
			slog.Warn("failed to write telemetry", "error", err)
		}
		if err := g.outputManager.WritePerf(perfStats, g.runID, stats.WindowEndTick); err != nil {
			slog.Warn("failed to write perf", "error", err)
		}
		if err := g.outputManager.FlushLifetimes(); err != nil {
			slog.Warn("failed to write lifetimes", "error", err)
		}
	}

	for _, bm := range g.bookmarkDetector.Check(stats) {
		if g.logStats {
			bm.LogBookmark()
		}
		if g.outputManager != nil {
			if err := g.outputManager.WriteBookmark(bm); err != nil {
				slog.Warn("failed to write bookmark", "error", err)
			}
		}
	}
}

// samplePopulation fills the reusable population sample from living agents.
func (g *Game) samplePopulation() {
	s := &g.sample
	s.Reset()

	for _, e := range g.order {
		body := g.bodyMap.Get(e)
		org := g.orgMap.Get(e)
		s.Sizes = append(s.Sizes, float64(body.Size))

		brain, ok := g.brains[org.ID]
		if !ok {
			continue
		}
		s.Generations = append(s.Generations, float64(brain.Generation))
		s.Hidden = append(s.Hidden, float64(len(brain.Hidden)))
		s.Connections = append(s.Connections, float64(brain.NumConnections()))
	}
	s.Lineages = g.lifetimeTracker.ActiveLineageCount()
}

// LifetimeStats returns the tracked lifetime of a living agent, or nil.
func (g *Game) LifetimeStats(id uint32) *telemetry.LifetimeStats {
	return g.lifetimeTracker.Get(id)
}
