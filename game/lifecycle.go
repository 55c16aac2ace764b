package game

import (
	"cmp"
	"math"
	"slices"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/neurosoup/components"
	"github.com/pthm-cable/neurosoup/neural"
	"github.com/pthm-cable/neurosoup/systems"
	"github.com/pthm-cable/neurosoup/telemetry"
)

// spawnInitialPopulation creates the starting agents.
func (g *Game) spawnInitialPopulation() {
	for i := 0; i < g.cfg.Population.Initial; i++ {
		g.spawnRandom()
	}
}

// spawnRandom adds an agent with a fresh random brain somewhere in the arena.
// It founds a new lineage.
func (g *Game) spawnRandom() ecs.Entity {
	cfg := g.cfg
	size := float32(cfg.Population.SpawnSize)
	limit := max(cfg.Derived.ArenaSize32-size, 0)

	id := g.nextID
	g.nextID++

	pos := components.Position{X: g.rng.Float32() * limit, Y: g.rng.Float32() * limit}
	body := components.Body{
		Size:    size,
		Heading: (g.rng.Float32()*2 - 1) * math.Pi,
		Color: components.Color{
			R: uint8(g.rng.Intn(256)),
			G: uint8(g.rng.Intn(256)),
			B: uint8(g.rng.Intn(256)),
		},
	}
	minGene, maxGene := cfg.Mutation.MinSplitGene, cfg.Mutation.MaxInitSplitGene
	org := components.Organism{
		ID:        id,
		Alive:     true,
		SplitGene: minGene + g.rng.Intn(maxGene-minGene+1),
		LineageID: id,
		BirthTick: g.tick,
	}

	g.brains[id] = neural.NewRandomBrain(g.rng, g.neuralParams)
	entity := g.agentMapper.NewEntity(&pos, &body, &org)

	g.lifetimeTracker.Register(id, g.tick, id, telemetry.BirthSpawned, size)
	g.collector.RecordBirth(telemetry.BirthSpawned)

	return entity
}

// updateReproduction runs the random spawn draw, then lets at most one agent
// split: the first in size order that is above the split size and wins a draw
// of size/(split_size*split_gene).
func (g *Game) updateReproduction(inverseSpawnRate int) {
	if g.rng.Intn(inverseSpawnRate) == 0 {
		g.spawnRandom()
	}

	splitSize := g.cfg.Reproduction.SplitSize
	for _, e := range g.order {
		if !g.world.Alive(e) {
			continue
		}
		pos, body, org := g.agentMapper.Get(e)
		if !org.Alive || float64(body.Size) <= splitSize {
			continue
		}
		if g.rng.Float64() >= float64(body.Size)/(splitSize*float64(org.SplitGene)) {
			continue
		}
		g.split(pos, body, org)
		return
	}
}

// split shrinks the parent by the child's area and places the child directly
// behind it. The child is an exact clone with probability clone_chance,
// otherwise a mutated copy.
func (g *Game) split(pos *components.Position, body *components.Body, org *components.Organism) {
	cfg := g.cfg
	parentBrain, ok := g.brains[org.ID]
	if !ok {
		return
	}
	parentID := org.ID
	childSize := float32(cfg.Reproduction.ChildSize)

	body.Resize(pos, systems.SplitSize(body.Size, childSize))

	childBrain := parentBrain.Clone()
	childBody := components.Body{Size: childSize, Heading: body.Heading, Color: body.Color}
	childOrg := components.Organism{
		Alive:     true,
		SplitGene: org.SplitGene,
		LineageID: org.LineageID,
		BirthTick: g.tick,
	}

	kind := telemetry.BirthCloned
	if g.rng.Float64() >= cfg.Reproduction.CloneChance {
		kind = telemetry.BirthMutated
		childBrain.Mutate(g.rng, g.neuralParams)
		childOrg.SplitGene = max(childOrg.SplitGene+plusMinusOne(g.rng), cfg.Mutation.MinSplitGene)
		childBody.Color = driftColor(g.rng, childBody.Color, cfg.Mutation.ColorDrift)
	}

	childPos := childPosition(*pos, body.Size, childSize, body.Heading, float32(cfg.Reproduction.ChildGap))
	systems.ClampToArena(&childPos, childSize, cfg.Derived.ArenaSize32)

	// Component pointers are invalid once the child entity exists.
	childOrg.ID = g.nextID
	g.nextID++
	g.brains[childOrg.ID] = childBrain
	g.agentMapper.NewEntity(&childPos, &childBody, &childOrg)

	g.lifetimeTracker.Register(childOrg.ID, g.tick, childOrg.LineageID, kind, childSize)
	g.lifetimeTracker.RecordChild(parentID)
	g.collector.RecordBirth(kind)
}

// childPosition returns the top-left corner of a child box whose center sits
// behind the parent's center along -heading, far enough that the boxes do
// not overlap before clamping.
func childPosition(parent components.Position, parentSize, childSize, heading, gap float32) components.Position {
	cx, cy := components.Bounds(parent, parentSize).Center()
	dist := float64((parentSize+childSize)/2)*math.Sqrt2 + float64(gap)
	h := float64(heading)
	x := float64(cx) - math.Cos(h)*dist
	y := float64(cy) - math.Sin(h)*dist
	return components.Position{X: float32(x) - childSize/2, Y: float32(y) - childSize/2}
}

// cleanupDead removes agents that were eaten or fell below the viable size.
func (g *Game) cleanupDead() {
	minSize := float32(g.cfg.Energy.MinViableSize)

	type deadInfo struct {
		entity ecs.Entity
		id     uint32
		cause  telemetry.DeathCause
	}
	var toRemove []deadInfo

	query := g.agentFilter.Query()
	for query.Next() {
		_, body, org := query.Get()
		switch {
		case !org.Alive:
			toRemove = append(toRemove, deadInfo{query.Entity(), org.ID, telemetry.DeathEaten})
		case body.Size < minSize:
			toRemove = append(toRemove, deadInfo{query.Entity(), org.ID, telemetry.DeathStarved})
		}
	}

	for _, dead := range toRemove {
		g.collector.RecordDeath(dead.cause)
		if ls := g.lifetimeTracker.Remove(dead.id); ls != nil && g.outputManager != nil {
			g.outputManager.RecordLifetime(ls.Record(g.runID, dead.id, g.tick, dead.cause))
		}
		delete(g.brains, dead.id)
		g.world.RemoveEntity(dead.entity)
	}
}

// rebuildOrder lists living agents ascending by size. Ties keep ID order so
// the result does not depend on storage layout.
func (g *Game) rebuildOrder() {
	g.order = g.order[:0]
	query := g.agentFilter.Query()
	for query.Next() {
		g.order = append(g.order, query.Entity())
	}
	slices.SortFunc(g.order, func(a, b ecs.Entity) int {
		if c := cmp.Compare(g.bodyMap.Get(a).Size, g.bodyMap.Get(b).Size); c != 0 {
			return c
		}
		return cmp.Compare(g.orgMap.Get(a).ID, g.orgMap.Get(b).ID)
	})
}
