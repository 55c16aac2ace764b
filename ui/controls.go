package ui

import (
	"fmt"
	"math"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// ControlPanelHeight is the vertical space the control panel occupies.
const ControlPanelHeight int32 = 190

// Slider bounds.
const (
	MaxStepsPerUpdate = 10
	MaxSpawnRate      = 1000
)

// ControlState is the part of the simulation the control panel edits.
type ControlState struct {
	Paused           bool
	StepsPerUpdate   int
	InverseSpawnRate int
}

// ControlPanel renders raygui controls for pausing, stepping, speed and
// the random spawn rate.
type ControlPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
}

// NewControlPanel creates a control panel at (x, y).
func NewControlPanel(x, y, width int32) *ControlPanel {
	return &ControlPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
	}
}

// Draw renders the panel and returns the state after this frame's input,
// plus whether a single step was requested.
func (c *ControlPanel) Draw(state ControlState) (ControlState, bool) {
	r := c.renderer
	pad := r.Theme.Padding
	c.renderer.DrawPanel(c.x, c.y, c.width, ControlPanelHeight)

	px := float32(c.x + pad)
	py := float32(c.y + pad)
	inner := float32(c.width - 2*pad)

	rl.DrawText("Controls", int32(px), int32(py), 16, rl.White)
	py += 26

	step := false
	half := (inner - 10) / 2
	if gui.Button(rl.Rectangle{X: px, Y: py, Width: half, Height: 26}, toggleText(state.Paused, "Resume", "Pause")) {
		state.Paused = !state.Paused
	}
	if gui.Button(rl.Rectangle{X: px + half + 10, Y: py, Width: half, Height: 26}, "Step") {
		step = true
		state.Paused = true
	}
	py += 38

	// Speed slider
	rl.DrawText(fmt.Sprintf("Steps per frame: %d", state.StepsPerUpdate), int32(px), int32(py), r.Theme.FontSize, r.Theme.LabelColor)
	py += 16
	speed := gui.SliderBar(
		rl.Rectangle{X: px + 20, Y: py, Width: inner - 40, Height: 18},
		"1", fmt.Sprint(MaxStepsPerUpdate),
		float32(state.StepsPerUpdate), 1, MaxStepsPerUpdate,
	)
	state.StepsPerUpdate = int(math.Round(float64(speed)))
	py += 30

	// Spawn rate slider, logarithmic so small rates stay reachable
	rl.DrawText(fmt.Sprintf("Spawn 1 per %d ticks", state.InverseSpawnRate), int32(px), int32(py), r.Theme.FontSize, r.Theme.LabelColor)
	py += 16
	pos := gui.SliderBar(
		rl.Rectangle{X: px + 20, Y: py, Width: inner - 40, Height: 18},
		"1", fmt.Sprint(MaxSpawnRate),
		SliderFromSpawnRate(state.InverseSpawnRate), 0, 1,
	)
	state.InverseSpawnRate = SpawnRateFromSlider(pos)
	py += 28

	rl.DrawText("space pause  , . speed  B log brain", int32(px), int32(py), 10, rl.Gray)
	rl.DrawText("wheel zoom  arrows pan  Home reset", int32(px), int32(py)+12, 10, rl.Gray)

	return state, step
}

// SpawnRateFromSlider maps a slider position in [0, 1] onto [1, MaxSpawnRate]
// on a log scale.
func SpawnRateFromSlider(pos float32) int {
	pos = min(max(pos, 0), 1)
	rate := math.Round(math.Exp(float64(pos) * math.Log(MaxSpawnRate)))
	return min(max(int(rate), 1), MaxSpawnRate)
}

// SliderFromSpawnRate is the inverse of SpawnRateFromSlider.
func SliderFromSpawnRate(rate int) float32 {
	rate = min(max(rate, 1), MaxSpawnRate)
	return float32(math.Log(float64(rate)) / math.Log(MaxSpawnRate))
}

func toggleText(on bool, onText, offText string) string {
	if on {
		return onText
	}
	return offText
}
