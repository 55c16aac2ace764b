package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// HUDHeight is the vertical space the HUD occupies.
const HUDHeight int32 = 150

// HUDData holds all the data needed to render the HUD.
type HUDData struct {
	Tick             int32
	Population       int
	Lineages         int
	MaxGeneration    int
	Largest          float32
	StepsPerUpdate   int
	InverseSpawnRate int
	FPS              int32
	Paused           bool
}

// HUDLine is one label/value row.
type HUDLine struct {
	Label string
	Value string
}

// Lines formats the data as display rows.
func (d HUDData) Lines() []HUDLine {
	status := "running"
	if d.Paused {
		status = "PAUSED"
	}
	return []HUDLine{
		{"Status", status},
		{"Tick", fmt.Sprint(d.Tick)},
		{"Agents", fmt.Sprint(d.Population)},
		{"Lineages", fmt.Sprint(d.Lineages)},
		{"Max gen", fmt.Sprint(d.MaxGeneration)},
		{"Largest", fmt.Sprintf("%.1f", d.Largest)},
		{"Speed", fmt.Sprintf("%dx @ %d fps", d.StepsPerUpdate, d.FPS)},
	}
}

// HUD renders the simulation summary below the controls.
type HUD struct {
	renderer *Renderer
	x, y     int32
	width    int32
}

// NewHUD creates a HUD at (x, y).
func NewHUD(x, y, width int32) *HUD {
	return &HUD{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
	}
}

// Draw renders the HUD.
func (h *HUD) Draw(data HUDData) {
	r := h.renderer
	r.DrawPanel(h.x, h.y, h.width, HUDHeight)

	x := h.x + r.Theme.Padding
	y := r.DrawSectionHeader(x, h.y+r.Theme.Padding, "Soup")
	for _, line := range data.Lines() {
		var color rl.Color
		if line.Label == "Status" && data.Paused {
			color = rl.Yellow
		}
		y = r.DrawRow(x, y, line.Label, line.Value, color)
	}
}
