// Package ui draws the viewer's side panel: simulation controls and the HUD.
package ui

import rl "github.com/gen2brain/raylib-go/raylib"

// Theme is the side panel's palette and metrics.
type Theme struct {
	PanelBg, PanelBorder   rl.Color
	SectionHeader          rl.Color
	LabelColor, ValueColor rl.Color

	Padding, LineHeight, LabelWidth int32
	FontSize, HeaderFontSize        int32
}

// DefaultTheme matches the arena's dark background.
func DefaultTheme() Theme {
	return Theme{
		PanelBg:        rl.Color{R: 16, G: 18, B: 26, A: 255},
		PanelBorder:    rl.Color{R: 70, G: 70, B: 80, A: 255},
		SectionHeader:  rl.Color{R: 240, G: 200, B: 90, A: 255},
		LabelColor:     rl.Color{R: 150, G: 150, B: 160, A: 255},
		ValueColor:     rl.Color{R: 225, G: 225, B: 230, A: 255},
		Padding:        10,
		LineHeight:     16,
		LabelWidth:     90,
		FontSize:       12,
		HeaderFontSize: 14,
	}
}

// Renderer draws side-panel primitives in one theme.
type Renderer struct {
	Theme Theme
}

// NewRenderer creates a renderer with the default theme.
func NewRenderer() *Renderer {
	return &Renderer{Theme: DefaultTheme()}
}

// DrawPanel fills a panel and outlines it.
func (r *Renderer) DrawPanel(x, y, width, height int32) {
	rl.DrawRectangle(x, y, width, height, r.Theme.PanelBg)
	rl.DrawRectangleLines(x, y, width, height, r.Theme.PanelBorder)
}

// DrawSectionHeader draws title and returns the y of the next row.
func (r *Renderer) DrawSectionHeader(x, y int32, title string) int32 {
	rl.DrawText(title, x, y, r.Theme.HeaderFontSize, r.Theme.SectionHeader)
	return y + r.Theme.LineHeight + 2
}

// DrawRow draws "label:" and value in two columns and returns the y of the
// next row. A zero color uses the theme's value color.
func (r *Renderer) DrawRow(x, y int32, label, value string, color rl.Color) int32 {
	if color == (rl.Color{}) {
		color = r.Theme.ValueColor
	}
	rl.DrawText(label+":", x, y, r.Theme.FontSize, r.Theme.LabelColor)
	rl.DrawText(value, x+r.Theme.LabelWidth, y, r.Theme.FontSize, color)
	return y + r.Theme.LineHeight
}
