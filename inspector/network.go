package inspector

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/neurosoup/neural"
)

// Input and output labels, indexed by neural slot.
var (
	InputLabels  = [neural.NumInputs]string{"Size", "Dist", "Bear"}
	OutputLabels = [neural.NumOutputs]string{"Mov", "Rot"}
)

// NetworkColors for activation visualization.
var (
	ColorNodeInactive = rl.Color{R: 60, G: 60, B: 60, A: 255}
	ColorNodeBorder   = rl.Color{R: 100, G: 100, B: 100, A: 255}
	ColorEdgePositive = rl.Color{R: 200, G: 80, B: 80, A: 100}
	ColorEdgeNegative = rl.Color{R: 80, G: 80, B: 200, A: 100}
	ColorLabelDim     = rl.Color{R: 120, G: 120, B: 120, A: 255}
)

const (
	nodeRadius     = float32(5)
	minNodeSpacing = float32(14)
)

// NetworkLayout holds screen positions for every neuron of a brain.
type NetworkLayout struct {
	Inputs  []rl.Vector2
	Hidden  []rl.Vector2
	Outputs []rl.Vector2
}

// Position returns the screen position of the neuron named by ref.
func (l *NetworkLayout) Position(ref neural.NeuronRef) rl.Vector2 {
	switch ref.Layer {
	case neural.LayerInput:
		return l.Inputs[ref.Index]
	case neural.LayerOutput:
		return l.Outputs[ref.Index]
	default:
		return l.Hidden[ref.Index]
	}
}

// LayoutNetwork places inputs in the left column, outputs in the right
// column and hidden neurons in as many middle columns as they need.
func LayoutNetwork(b *neural.Brain, x, y, width, height int32) NetworkLayout {
	left := float32(x) + nodeRadius
	right := float32(x+width) - nodeRadius
	top := float32(y) + nodeRadius
	span := float32(height) - 2*nodeRadius

	l := NetworkLayout{
		Inputs:  columnPositions(neural.NumInputs, left, top, span),
		Outputs: columnPositions(neural.NumOutputs, right, top, span),
	}

	n := len(b.Hidden)
	if n == 0 {
		return l
	}
	perCol := max(1, int(span/minNodeSpacing)+1)
	cols := (n + perCol - 1) / perCol

	// Hidden columns share the middle third.
	midLeft := left + (right-left)/3
	midRight := left + 2*(right-left)/3
	l.Hidden = make([]rl.Vector2, 0, n)
	for c := 0; c < cols; c++ {
		cx := (midLeft + midRight) / 2
		if cols > 1 {
			cx = midLeft + (midRight-midLeft)*float32(c)/float32(cols-1)
		}
		count := min(perCol, n-c*perCol)
		l.Hidden = append(l.Hidden, columnPositions(count, cx, top, span)...)
	}
	return l
}

// columnPositions spaces n nodes evenly down a column, centred when n is 1.
func columnPositions(n int, cx, top, span float32) []rl.Vector2 {
	out := make([]rl.Vector2, n)
	for i := range out {
		cy := top + span/2
		if n > 1 {
			cy = top + span*float32(i)/float32(n-1)
		}
		out[i] = rl.Vector2{X: cx, Y: cy}
	}
	return out
}

// DrawNetworkDiagram renders the brain's neurons and connections. Nodes are
// coloured by how close their excitation is to firing.
func DrawNetworkDiagram(x, y, width, height int32, b *neural.Brain) {
	if b == nil {
		rl.DrawText("No network data", x+10, y+10, 14, ColorLabelDim)
		return
	}

	layout := LayoutNetwork(b, x, y, width, height)

	drawEdges := func(from rl.Vector2, n *neural.Neuron) {
		for _, c := range n.Outgoing {
			if c.Weight == 0 {
				continue
			}
			drawEdge(from, layout.Position(b.DestRef(c.Dest)), c.Weight)
		}
	}
	for i := range b.Inputs {
		drawEdges(layout.Inputs[i], &b.Inputs[i])
	}
	for i := range b.Hidden {
		drawEdges(layout.Hidden[i], &b.Hidden[i])
	}
	for i := range b.Outputs {
		drawEdges(layout.Outputs[i], &b.Outputs[i])
	}

	for i, p := range layout.Inputs {
		drawNode(p, nodeRadius, charge(&b.Inputs[i]))
		w := rl.MeasureText(InputLabels[i], 10)
		rl.DrawText(InputLabels[i], int32(p.X-nodeRadius)-w-4, int32(p.Y)-5, 10, ColorLabelDim)
	}
	for i, p := range layout.Hidden {
		drawNode(p, nodeRadius-1, charge(&b.Hidden[i]))
	}
	for i, p := range layout.Outputs {
		drawNode(p, nodeRadius+2, charge(&b.Outputs[i]))
		rl.DrawText(OutputLabels[i], int32(p.X+nodeRadius+6), int32(p.Y)-5, 10, ColorLabelDim)
	}
}

// charge is excitation relative to the firing threshold, in [-1, 1].
func charge(n *neural.Neuron) float32 {
	if n.FireThreshold == 0 {
		return 0
	}
	return min(max(n.Excitation/n.FireThreshold, -1), 1)
}

func drawNode(pos rl.Vector2, radius, activation float32) {
	rl.DrawCircleV(pos, radius, activationColor(activation))
	rl.DrawCircleLinesV(pos, radius, ColorNodeBorder)
}

func drawEdge(from, to rl.Vector2, weight float32) {
	mag := absFloat(weight)
	thickness := min(max(mag*0.5, 0.5), 3)

	color := ColorEdgePositive
	if weight < 0 {
		color = ColorEdgeNegative
	}
	color.A = uint8(min(40+int(mag*20), 150))

	rl.DrawLineEx(from, to, thickness, color)
}

// activationColor returns a color based on activation value.
// Negative = blue, Zero = gray, Positive = red.
func activationColor(activation float32) rl.Color {
	if activation == 0 {
		return ColorNodeInactive
	}
	if activation > 0 {
		t := min(activation, 1)
		return rl.Color{R: uint8(60 + t*195), G: uint8(60 - t*30), B: uint8(60 - t*30), A: 255}
	}
	t := min(-activation, 1)
	return rl.Color{R: uint8(60 - t*30), G: uint8(60 - t*30), B: uint8(60 + t*195), A: 255}
}

func absFloat(x float32) float32 {
	return float32(math.Abs(float64(x)))
}
