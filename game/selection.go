package game

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/neurosoup/components"
)

// AgentView is the read-only render view of one agent.
type AgentView struct {
	ID    uint32
	Color components.Color
	X, Y  float32 // top-left corner
	Size  float32
}

// Population returns every living agent ascending by size, so drawing in
// order leaves larger agents on top.
func (g *Game) Population() []AgentView {
	views := make([]AgentView, 0, len(g.order))
	for _, e := range g.order {
		pos, body, org := g.agentMapper.Get(e)
		views = append(views, AgentView{
			ID:    org.ID,
			Color: body.Color,
			X:     pos.X,
			Y:     pos.Y,
			Size:  body.Size,
		})
	}
	return views
}

// agentAt returns the first agent in size order whose box contains (x, y).
func (g *Game) agentAt(x, y float32) (ecs.Entity, bool) {
	for _, e := range g.order {
		pos, body, _ := g.agentMapper.Get(e)
		if components.Bounds(*pos, body.Size).Contains(x, y) {
			return e, true
		}
	}
	return ecs.Entity{}, false
}

// AgentIDAt returns the ID of the first agent whose box contains (x, y).
func (g *Game) AgentIDAt(x, y float32) (uint32, bool) {
	e, ok := g.agentAt(x, y)
	if !ok {
		return 0, false
	}
	return g.orgMap.Get(e).ID, true
}

// DescribeBrainAt dumps the brain of the first agent whose box contains
// (x, y). It reports false when no agent is there.
func (g *Game) DescribeBrainAt(x, y float32) (string, bool) {
	id, ok := g.AgentIDAt(x, y)
	if !ok {
		return "", false
	}
	brain, ok := g.brains[id]
	if !ok {
		return "", false
	}
	return brain.Describe(), true
}

// findByID returns the living agent with the given organism ID.
func (g *Game) findByID(id uint32) (ecs.Entity, bool) {
	for _, e := range g.order {
		if g.orgMap.Get(e).ID == id {
			return e, true
		}
	}
	return ecs.Entity{}, false
}
