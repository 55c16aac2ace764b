package game

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/neurosoup/components"
	"github.com/pthm-cable/neurosoup/inspector"
	"github.com/pthm-cable/neurosoup/ui"
)

var (
	colorBackground = rl.Color{R: 12, G: 14, B: 20, A: 255}
	colorArenaEdge  = rl.Color{R: 70, G: 70, B: 80, A: 255}
	colorHeading    = rl.Color{R: 0, G: 0, B: 0, A: 140}
)

// Draw renders the arena, the agents and the side panel.
func (g *Game) Draw() {
	if g.headless {
		return
	}
	rl.BeginDrawing()
	rl.ClearBackground(colorBackground)

	cam := g.camera
	rl.BeginScissorMode(0, 0, int32(cam.ViewportW), int32(cam.ViewportH))
	x0, y0 := cam.WorldToScreen(0, 0)
	arenaPx := g.cfg.Derived.ArenaSize32 * cam.Zoom
	rl.DrawRectangleLinesEx(rl.Rectangle{X: x0, Y: y0, Width: arenaPx, Height: arenaPx}, 1, colorArenaEdge)

	g.drawAgents()
	g.drawSelectionIndicator()
	rl.EndScissorMode()

	g.drawPanel()

	rl.EndDrawing()
}

// drawAgents draws agents in ascending size order so larger ones end up on top.
func (g *Game) drawAgents() {
	cam := g.camera
	for _, e := range g.order {
		pos, body, _ := g.agentMapper.Get(e)
		if !cam.IsVisible(pos.X, pos.Y, body.Size) {
			continue
		}
		x, y := cam.WorldToScreen(pos.X, pos.Y)
		s := body.Size * cam.Zoom
		rl.DrawRectangleV(rl.Vector2{X: x, Y: y}, rl.Vector2{X: s, Y: s}, toRaylib(body.Color))

		cx, cy := x+s/2, y+s/2
		h := float64(body.Heading)
		rl.DrawLineV(
			rl.Vector2{X: cx, Y: cy},
			rl.Vector2{X: cx + float32(math.Cos(h))*s/2, Y: cy + float32(math.Sin(h))*s/2},
			colorHeading,
		)
	}
}

// drawSelectionIndicator outlines the inspected agent.
func (g *Game) drawSelectionIndicator() {
	id, ok := g.inspector.Selected()
	if !ok {
		return
	}
	e, ok := g.findByID(id)
	if !ok {
		return
	}
	pos, body, _ := g.agentMapper.Get(e)
	x, y := g.camera.WorldToScreen(pos.X, pos.Y)
	s := body.Size * g.camera.Zoom
	r := rl.Rectangle{X: x - 3, Y: y - 3, Width: s + 6, Height: s + 6}
	rl.DrawRectangleLinesEx(r, 2, rl.Yellow)
}

// drawPanel renders the controls, HUD and inspector column.
func (g *Game) drawPanel() {
	state, step := g.controls.Draw(ui.ControlState{
		Paused:           g.paused,
		StepsPerUpdate:   g.stepsPerUpdate,
		InverseSpawnRate: g.inverseSpawnRate,
	})
	g.paused = state.Paused
	g.stepsPerUpdate = min(max(state.StepsPerUpdate, 1), ui.MaxStepsPerUpdate)
	g.inverseSpawnRate = max(state.InverseSpawnRate, 1)
	if step && g.paused {
		g.Step(g.inverseSpawnRate)
	}

	var largest float32
	if n := len(g.order); n > 0 {
		largest = g.bodyMap.Get(g.order[n-1]).Size
	}
	g.hud.Draw(ui.HUDData{
		Tick:             g.tick,
		Population:       len(g.order),
		Lineages:         g.lifetimeTracker.ActiveLineageCount(),
		MaxGeneration:    g.MaxGeneration(),
		Largest:          largest,
		StepsPerUpdate:   g.stepsPerUpdate,
		InverseSpawnRate: g.inverseSpawnRate,
		FPS:              rl.GetFPS(),
		Paused:           g.paused,
	})

	g.inspector.Draw(g.selection())
}

// selection gathers the inspected agent's state, or nil when nothing is
// selected or the agent has died.
func (g *Game) selection() *inspector.Selection {
	id, ok := g.inspector.Selected()
	if !ok {
		return nil
	}
	e, ok := g.findByID(id)
	if !ok {
		g.inspector.Deselect()
		return nil
	}
	pos, body, org := g.agentMapper.Get(e)
	return &inspector.Selection{
		Position: *pos,
		Body:     *body,
		Organism: *org,
		Brain:    g.brains[id],
		Lifetime: g.lifetimeTracker.Get(id),
		Tick:     g.tick,
	}
}

func toRaylib(c components.Color) rl.Color {
	return rl.Color{R: c.R, G: c.G, B: c.B, A: 255}
}
