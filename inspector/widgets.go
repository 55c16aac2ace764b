package inspector

import (
	"fmt"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Widget colors
var (
	ColorBarBg       = rl.Color{R: 40, G: 40, B: 40, A: 255}
	ColorBarFill     = rl.Color{R: 100, G: 180, B: 100, A: 255}
	ColorBarNeg      = rl.Color{R: 100, G: 120, B: 200, A: 255}
	ColorBarMid      = rl.Color{R: 90, G: 90, B: 90, A: 255}
	ColorText        = rl.Color{R: 220, G: 220, B: 220, A: 255}
	ColorTextDim     = rl.Color{R: 150, G: 150, B: 150, A: 255}
	ColorAngleBg     = rl.Color{R: 50, G: 50, B: 60, A: 255}
	ColorAngleNeedle = rl.Color{R: 255, G: 200, B: 100, A: 255}
	ColorBoolOn      = rl.Color{R: 100, G: 200, B: 100, A: 255}
	ColorBoolOff     = rl.Color{R: 80, G: 80, B: 80, A: 255}
)

const (
	barWidth  = int32(140)
	barHeight = int32(14)
	valueX    = int32(90)
)

// DrawLabel renders a text value.
func DrawLabel(x, y int32, name string, value any, options TagOptions) int32 {
	rl.DrawText(name, x, y, 14, ColorTextDim)
	rl.DrawText(FormatValue(value, options["fmt"]), x+valueX, y, 14, ColorText)
	return 18
}

// BarSpan returns the filled part of a bar as fractions of its width.
// Centered bars fill outward from the middle.
func BarSpan(value, lo, hi float32) (start, end float32) {
	if hi <= lo {
		return 0, 0
	}
	t := (value - lo) / (hi - lo)
	t = min(max(t, 0), 1)
	if lo >= 0 {
		return 0, t
	}
	zero := -lo / (hi - lo)
	return min(zero, t), max(zero, t)
}

// DrawBar renders a horizontal bar.
func DrawBar(x, y int32, name string, value float32, options TagOptions) int32 {
	lo, hi := options.Range()
	start, end := BarSpan(value, lo, hi)

	rl.DrawText(name, x, y, 14, ColorTextDim)

	barX := x + valueX
	rl.DrawRectangle(barX, y, barWidth, barHeight, ColorBarBg)

	fill := ColorBarFill
	if value < 0 {
		fill = ColorBarNeg
	}
	fx := barX + int32(float32(barWidth)*start)
	fw := int32(float32(barWidth) * (end - start))
	rl.DrawRectangle(fx, y, fw, barHeight, fill)

	if lo < 0 {
		mid := barX + barWidth/2
		rl.DrawLine(mid, y, mid, y+barHeight, ColorBarMid)
	}

	rl.DrawText(fmt.Sprintf("%.2f", value), barX+barWidth+5, y, 14, ColorTextDim)

	return 18
}

// DrawAngle renders a compass-style angle indicator.
func DrawAngle(x, y int32, name string, radians float32) int32 {
	size := int32(40)
	centerX := x + valueX + size/2
	centerY := y + size/2

	rl.DrawText(name, x, y+size/2-7, 14, ColorTextDim)

	rl.DrawCircle(centerX, centerY, float32(size/2), ColorAngleBg)
	rl.DrawCircleLines(centerX, centerY, float32(size/2), ColorTextDim)

	needleLen := float32(size/2 - 4)
	endX := float32(centerX) + needleLen*float32(math.Cos(float64(radians)))
	endY := float32(centerY) + needleLen*float32(math.Sin(float64(radians)))
	rl.DrawLineEx(
		rl.Vector2{X: float32(centerX), Y: float32(centerY)},
		rl.Vector2{X: endX, Y: endY},
		2,
		ColorAngleNeedle,
	)

	degrees := radians * 180 / math.Pi
	rl.DrawText(fmt.Sprintf("%.0f deg", degrees), centerX+size/2+5, y+size/2-7, 14, ColorTextDim)

	return size + 4
}

// DrawBool renders an on/off indicator.
func DrawBool(x, y int32, name string, value bool) int32 {
	rl.DrawText(name, x, y, 14, ColorTextDim)

	indicatorX := x + valueX
	indicatorSize := int32(14)

	color := ColorBoolOff
	text := "no"
	if value {
		color = ColorBoolOn
		text = "yes"
	}

	rl.DrawRectangle(indicatorX, y, indicatorSize, indicatorSize, color)
	rl.DrawText(text, indicatorX+indicatorSize+5, y, 14, color)

	return 18
}

// DrawField renders a field using its widget type and returns the height used.
func DrawField(x, y int32, field Field) int32 {
	switch field.Widget {
	case WidgetBar:
		if v, ok := floatValue(field.Value); ok {
			return DrawBar(x, y, field.Name, v, field.Options)
		}
	case WidgetAngle:
		if v, ok := floatValue(field.Value); ok {
			return DrawAngle(x, y, field.Name, v)
		}
	case WidgetBool:
		if v, ok := field.Value.(bool); ok {
			return DrawBool(x, y, field.Name, v)
		}
	}
	return DrawLabel(x, y, field.Name, field.Value, field.Options)
}
