package neural

import (
	"fmt"
	"math/rand"
	"strings"
)

// Brain dimensions.
const (
	NumInputs  = 3
	NumOutputs = 2
)

// Input slots.
const (
	InputRelativeSize = iota
	InputInverseDistance
	InputBearing
)

// Output slots.
const (
	OutputMov = iota
	OutputRot
)

var inputNames = [NumInputs]string{"relative size", "inverse distance", "bearing"}
var outputNames = [NumOutputs]string{"mov", "rot"}

// Layer identifies which array a neuron lives in.
type Layer uint8

const (
	LayerInput Layer = iota
	LayerHidden
	LayerOutput
)

func (l Layer) String() string {
	switch l {
	case LayerInput:
		return "input"
	case LayerHidden:
		return "hidden"
	default:
		return "output"
	}
}

// NeuronRef names a neuron by layer and index within that layer.
type NeuronRef struct {
	Layer Layer
	Index int
}

// DeliveryFunc observes a connection being delivered during propagation.
type DeliveryFunc func(src NeuronRef, c Connection)

// Brain is a variable-topology spiking network with fixed inputs and outputs.
type Brain struct {
	Inputs     [NumInputs]Neuron
	Outputs    [NumOutputs]Neuron
	Hidden     []Neuron
	Generation int
}

// NewRandomBrain builds a brain whose inputs and outputs each own one random
// connection, then applies p.InitialMutations mutation passes.
func NewRandomBrain(rng *rand.Rand, p Params) *Brain {
	b := &Brain{}
	for i := range b.Inputs {
		b.Inputs[i] = newRandomNeuron(rng, p)
		b.Inputs[i].Outgoing = []Connection{randomConnection(rng, NumOutputs)}
	}
	for i := range b.Outputs {
		b.Outputs[i] = newRandomNeuron(rng, p)
		b.Outputs[i].Outgoing = []Connection{randomConnection(rng, NumOutputs)}
	}

	for i := 0; i < p.InitialMutations; i++ {
		b.Mutate(rng, p)
	}
	if p.ResetGeneration {
		b.Generation = 0
	}
	return b
}

// NumDestinations returns the size of the destination index space.
func (b *Brain) NumDestinations() int {
	return NumOutputs + len(b.Hidden)
}

// NumNeurons returns the total neuron count across all layers.
func (b *Brain) NumNeurons() int {
	return NumInputs + NumOutputs + len(b.Hidden)
}

// NumConnections returns the total connection count.
func (b *Brain) NumConnections() int {
	total := 0
	b.eachNeuron(func(_ NeuronRef, n *Neuron) {
		total += len(n.Outgoing)
	})
	return total
}

// Neuron returns the neuron named by ref.
func (b *Brain) Neuron(ref NeuronRef) *Neuron {
	switch ref.Layer {
	case LayerInput:
		return &b.Inputs[ref.Index]
	case LayerOutput:
		return &b.Outputs[ref.Index]
	default:
		return &b.Hidden[ref.Index]
	}
}

// DestRef maps a destination index to the neuron it names.
func (b *Brain) DestRef(dest int) NeuronRef {
	if dest < 0 || dest >= b.NumDestinations() {
		panic(fmt.Sprintf("neural: destination %d out of range [0, %d)", dest, b.NumDestinations()))
	}
	if dest < NumOutputs {
		return NeuronRef{Layer: LayerOutput, Index: dest}
	}
	return NeuronRef{Layer: LayerHidden, Index: dest - NumOutputs}
}

// neuronAt maps a flat index over inputs, hidden, then outputs.
func (b *Brain) neuronAt(i int) *Neuron {
	if i < NumInputs {
		return &b.Inputs[i]
	}
	i -= NumInputs
	if i < len(b.Hidden) {
		return &b.Hidden[i]
	}
	return &b.Outputs[i-len(b.Hidden)]
}

// eachNeuron visits inputs, hidden, then outputs.
func (b *Brain) eachNeuron(fn func(ref NeuronRef, n *Neuron)) {
	for i := range b.Inputs {
		fn(NeuronRef{LayerInput, i}, &b.Inputs[i])
	}
	for i := range b.Hidden {
		fn(NeuronRef{LayerHidden, i}, &b.Hidden[i])
	}
	for i := range b.Outputs {
		fn(NeuronRef{LayerOutput, i}, &b.Outputs[i])
	}
}

// SetInputs writes a perception into the input neurons.
func (b *Brain) SetInputs(relativeSize, inverseDistance, bearing float32) {
	b.Inputs[InputRelativeSize].Excitation = relativeSize
	b.Inputs[InputInverseDistance].Excitation = inverseDistance
	b.Inputs[InputBearing].Excitation = bearing
}

// Propagate runs one forward pass and returns the output neurons.
func (b *Brain) Propagate() *[NumOutputs]Neuron {
	return b.PropagateTraced(nil)
}

// PropagateTraced is Propagate with an optional observer called for every
// delivered connection.
//
// Order: outputs decay, inputs fire, then hidden neurons in index order.
// A hidden neuron is processed only if something processed before it this
// pass delivered to it.
func (b *Brain) PropagateTraced(trace DeliveryFunc) *[NumOutputs]Neuron {
	for i := range b.Outputs {
		b.Outputs[i].Decay()
		b.Outputs[i].Reachable = false
	}
	for i := range b.Hidden {
		b.Hidden[i].Reachable = false
	}

	for i := range b.Inputs {
		n := &b.Inputs[i]
		n.Reachable = true
		if n.Fires() {
			b.fire(NeuronRef{LayerInput, i}, n, trace)
		}
	}

	for i := range b.Hidden {
		n := &b.Hidden[i]
		if !n.Reachable {
			continue
		}
		if n.Fires() {
			b.fire(NeuronRef{LayerHidden, i}, n, trace)
		}
		n.Decay()
	}

	return &b.Outputs
}

// fire delivers every outgoing connection of n. The impulse uses the
// excitation n had when it fired, even if n feeds itself.
func (b *Brain) fire(ref NeuronRef, n *Neuron, trace DeliveryFunc) {
	excitation := n.Excitation
	for _, c := range n.Outgoing {
		dst := b.Neuron(b.DestRef(c.Dest))
		dst.Excitation += c.Impulse(excitation)
		dst.Reachable = true
		if trace != nil {
			trace(ref, c)
		}
	}
}

// Drives reads both outputs clamped to [-1, 1].
func (b *Brain) Drives() (mov, rot float32) {
	return clampUnit(b.Outputs[OutputMov].Drive()), clampUnit(b.Outputs[OutputRot].Drive())
}

func clampUnit(v float32) float32 {
	return min(max(v, -1), 1)
}

// Clone returns a deep copy.
func (b *Brain) Clone() *Brain {
	cp := &Brain{Generation: b.Generation}
	for i := range b.Inputs {
		cp.Inputs[i] = b.Inputs[i].clone()
	}
	for i := range b.Outputs {
		cp.Outputs[i] = b.Outputs[i].clone()
	}
	if b.Hidden != nil {
		cp.Hidden = make([]Neuron, len(b.Hidden))
		for i := range b.Hidden {
			cp.Hidden[i] = b.Hidden[i].clone()
		}
	}
	return cp
}

// Describe returns a human-readable dump of the network.
func (b *Brain) Describe() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "generation %d, %d hidden, %d connections\n",
		b.Generation, len(b.Hidden), b.NumConnections())

	b.eachNeuron(func(ref NeuronRef, n *Neuron) {
		fmt.Fprintf(&sb, "%s: excitation %.2f threshold %.0f decay %.0f rate 1/%d\n",
			b.label(ref), n.Excitation, n.FireThreshold, n.DecayRate, n.MutationRate)
		for _, c := range n.Outgoing {
			mode := ""
			if c.Scaled {
				mode = " scaled"
			}
			fmt.Fprintf(&sb, "  -> %s %+.1f%s\n", b.label(b.DestRef(c.Dest)), c.Weight, mode)
		}
	})
	return sb.String()
}

func (b *Brain) label(ref NeuronRef) string {
	switch ref.Layer {
	case LayerInput:
		return fmt.Sprintf("input %d (%s)", ref.Index, inputNames[ref.Index])
	case LayerOutput:
		return fmt.Sprintf("output %d (%s)", ref.Index, outputNames[ref.Index])
	default:
		return fmt.Sprintf("hidden %d", ref.Index)
	}
}
