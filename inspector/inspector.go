// Package inspector renders details of a single selected agent: its
// components, lifetime record and brain.
package inspector

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/neurosoup/components"
	"github.com/pthm-cable/neurosoup/neural"
	"github.com/pthm-cable/neurosoup/telemetry"
)

const (
	PanelPadding = 10
	HeaderHeight = 30
)

// Panel colors
var (
	ColorPanelBg     = rl.Color{R: 30, G: 30, B: 35, A: 240}
	ColorPanelHeader = rl.Color{R: 45, G: 45, B: 55, A: 255}
	ColorPanelBorder = rl.Color{R: 70, G: 70, B: 80, A: 255}
	ColorHeaderText  = rl.Color{R: 255, G: 255, B: 255, A: 255}
	ColorSection     = rl.Color{R: 50, G: 50, B: 60, A: 255}
	ColorSectionText = rl.Color{R: 200, G: 200, B: 220, A: 255}
)

// Selection is a copy of everything the panel shows about one agent.
type Selection struct {
	Position components.Position
	Body     components.Body
	Organism components.Organism
	Brain    *neural.Brain
	Lifetime *telemetry.LifetimeStats
	Tick     int32
}

// Inspector tracks the selected agent and draws its panel.
type Inspector struct {
	selected    uint32
	hasSelected bool

	x, y          int32
	width, height int32
}

// NewInspector creates an inspector occupying the given rectangle.
func NewInspector(x, y, width, height int32) *Inspector {
	return &Inspector{x: x, y: y, width: width, height: height}
}

// Select marks an agent ID for inspection.
func (ins *Inspector) Select(id uint32) {
	ins.selected = id
	ins.hasSelected = true
}

// Deselect clears the selection.
func (ins *Inspector) Deselect() {
	ins.hasSelected = false
	ins.selected = 0
}

// Selected returns the selected agent ID, if any.
func (ins *Inspector) Selected() (uint32, bool) {
	return ins.selected, ins.hasSelected
}

// Draw renders the panel. A nil selection draws a hint instead.
func (ins *Inspector) Draw(sel *Selection) {
	rl.DrawRectangle(ins.x, ins.y, ins.width, ins.height, ColorPanelBg)
	rl.DrawRectangleLinesEx(
		rl.Rectangle{X: float32(ins.x), Y: float32(ins.y), Width: float32(ins.width), Height: float32(ins.height)},
		1,
		ColorPanelBorder,
	)
	rl.DrawRectangle(ins.x, ins.y, ins.width, HeaderHeight, ColorPanelHeader)
	rl.DrawText("INSPECTOR", ins.x+PanelPadding, ins.y+7, 16, ColorHeaderText)

	x := ins.x + PanelPadding
	y := ins.y + HeaderHeight + PanelPadding

	if sel == nil {
		rl.DrawText("Click an agent to inspect it", x, y, 14, ColorTextDim)
		return
	}

	rl.DrawText(fmt.Sprintf("Agent #%d", sel.Organism.ID), x, y, 16, ColorHeaderText)
	y += 24

	y += DrawLabel(x, y, "Position", fmt.Sprintf("(%.0f, %.0f)", sel.Position.X, sel.Position.Y), nil)
	for _, f := range ExtractFields(sel.Body) {
		y += DrawField(x, y, f)
	}
	for _, f := range ExtractFields(sel.Organism) {
		y += DrawField(x, y, f)
	}

	if lt := sel.Lifetime; lt != nil {
		y += 4
		ins.drawSectionHeader(x, y, "Lifetime")
		y += 22
		y += DrawLabel(x, y, "Age", lt.Age(sel.Tick), nil)
		y += DrawLabel(x, y, "Origin", lt.Birth.String(), nil)
		y += DrawLabel(x, y, "Children", lt.Children, nil)
		y += DrawLabel(x, y, "Meals", lt.Absorptions, nil)
		y += DrawLabel(x, y, "Peak size", lt.PeakSize, nil)
	}

	if sel.Brain == nil {
		return
	}
	y += 4
	ins.drawSectionHeader(x, y, "Brain")
	y += 22
	rl.DrawText(
		fmt.Sprintf("gen %d  hidden %d  links %d", sel.Brain.Generation, len(sel.Brain.Hidden), sel.Brain.NumConnections()),
		x, y, 14, ColorText,
	)
	y += 22

	// Leave room for input labels on the left and output labels on the right.
	netX := x + 40
	netW := ins.width - 2*PanelPadding - 80
	netH := ins.y + ins.height - PanelPadding - y
	if netH > 40 {
		DrawNetworkDiagram(netX, y, netW, netH, sel.Brain)
	}
}

func (ins *Inspector) drawSectionHeader(x, y int32, title string) {
	rl.DrawRectangle(x-2, y-2, ins.width-2*PanelPadding+4, 18, ColorSection)
	rl.DrawText(title, x+2, y, 14, ColorSectionText)
}
