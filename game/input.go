package game

import (
	"log/slog"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/neurosoup/ui"
)

// handleInput processes keyboard and mouse input.
func (g *Game) handleInput() {
	if rl.IsKeyPressed(rl.KeySpace) {
		g.paused = !g.paused
	}

	// Steps-per-update control with < > keys (comma and period)
	if rl.IsKeyPressed(rl.KeyComma) && g.stepsPerUpdate > 1 {
		g.stepsPerUpdate--
	}
	if rl.IsKeyPressed(rl.KeyPeriod) && g.stepsPerUpdate < ui.MaxStepsPerUpdate {
		g.stepsPerUpdate++
	}

	if g.inspector == nil {
		return
	}

	g.handleCameraInput()

	if rl.IsMouseButtonPressed(rl.MouseButtonRight) {
		g.inspector.Deselect()
		return
	}

	mouse := rl.GetMousePosition()
	x, y, inArena := g.screenToArena(mouse.X, mouse.Y)
	if !inArena {
		return
	}

	if rl.IsMouseButtonPressed(rl.MouseButtonLeft) {
		if id, ok := g.AgentIDAt(x, y); ok {
			g.inspector.Select(id)
		} else {
			g.inspector.Deselect()
		}
	}

	// B dumps the brain under the cursor to the log.
	if rl.IsKeyPressed(rl.KeyB) {
		if dump, ok := g.DescribeBrainAt(x, y); ok {
			id, _ := g.AgentIDAt(x, y)
			slog.Info("brain", "id", id, "tick", g.tick, "dump", dump)
		}
	}
}

// handleCameraInput processes camera pan/zoom controls.
func (g *Game) handleCameraInput() {
	// Screen pixels per frame; Pan divides by zoom
	panSpeed := float32(8.0)

	// Arrow key panning
	if rl.IsKeyDown(rl.KeyRight) {
		g.camera.Pan(panSpeed, 0)
	}
	if rl.IsKeyDown(rl.KeyLeft) {
		g.camera.Pan(-panSpeed, 0)
	}
	if rl.IsKeyDown(rl.KeyDown) {
		g.camera.Pan(0, panSpeed)
	}
	if rl.IsKeyDown(rl.KeyUp) {
		g.camera.Pan(0, -panSpeed)
	}

	// Middle-drag panning
	if rl.IsMouseButtonDown(rl.MouseButtonMiddle) {
		d := rl.GetMouseDelta()
		g.camera.Pan(-d.X, -d.Y)
	}

	// Wheel zooms toward the cursor when it is over the arena
	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		mouse := rl.GetMousePosition()
		if g.camera.InViewport(mouse.X, mouse.Y) {
			g.camera.ZoomAt(mouse.X, mouse.Y, 1+wheel*0.1)
		}
	}

	// Keyboard zoom with +/- (= and - keys)
	if rl.IsKeyPressed(rl.KeyEqual) {
		g.camera.ZoomBy(1.25)
	}
	if rl.IsKeyPressed(rl.KeyMinus) {
		g.camera.ZoomBy(0.8)
	}

	// Home key to reset camera
	if rl.IsKeyPressed(rl.KeyHome) {
		g.camera.Reset()
	}
}

// screenToArena converts window pixels to arena units.
func (g *Game) screenToArena(sx, sy float32) (x, y float32, ok bool) {
	if !g.camera.InViewport(sx, sy) {
		return 0, 0, false
	}
	x, y = g.camera.ScreenToWorld(sx, sy)
	arena := g.cfg.Derived.ArenaSize32
	return x, y, x >= 0 && y >= 0 && x <= arena && y <= arena
}
