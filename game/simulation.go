package game

import (
	"github.com/pthm-cable/neurosoup/systems"
	"github.com/pthm-cable/neurosoup/telemetry"
)

// simulationStep runs a single tick.
func (g *Game) simulationStep(inverseSpawnRate int) {
	g.perfCollector.StartTick()

	// 1. Random spawn and at most one split
	g.perfCollector.StartPhase(telemetry.PhaseReproduction)
	g.updateReproduction(inverseSpawnRate)

	// 2. Sense, think, move and pay the energy cost
	g.perfCollector.StartPhase(telemetry.PhaseBehavior)
	g.updateBehaviorAndPhysics()

	// 3. Absorb overlapping smaller agents
	g.perfCollector.StartPhase(telemetry.PhaseCollision)
	g.updateCollisions()

	// 4. Remove eaten and starved agents
	g.perfCollector.StartPhase(telemetry.PhaseCleanup)
	g.cleanupDead()

	// 5. Size order for the next tick's split scan and for drawing
	g.perfCollector.StartPhase(telemetry.PhaseSort)
	g.rebuildOrder()

	g.tick++

	g.perfCollector.StartPhase(telemetry.PhaseTelemetry)
	g.flushTelemetry()

	g.perfCollector.EndTick(len(g.order))
}

// updateCollisions resolves absorptions between the agents that took part in
// this tick's behavior phase, in the same order.
func (g *Game) updateCollisions() {
	snaps := g.parallel.snapshots
	colliders := g.parallel.colliders[:0]
	for i := range snaps {
		pos, body, org := g.agentMapper.Get(snaps[i].Entity)
		colliders = append(colliders, systems.Collider{Pos: pos, Body: body, Org: org})
	}
	g.parallel.colliders = colliders

	arena := g.cfg.Derived.ArenaSize32
	for _, ev := range g.collisions.Resolve(colliders) {
		absorber := colliders[ev.Absorber]
		// Growth is centered, so a big absorber near an edge can poke out.
		systems.ClampToArena(absorber.Pos, absorber.Body.Size, arena)
		g.collector.RecordAbsorption(ev.AbsorbedSize)
		g.lifetimeTracker.RecordAbsorption(absorber.Org.ID)
		g.lifetimeTracker.UpdateSize(absorber.Org.ID, absorber.Body.Size)
	}
}
