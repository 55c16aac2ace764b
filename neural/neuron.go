// Package neural provides the spiking-style brains that drive agents.
//
// A brain is a directed graph of threshold neurons stored as flat arrays.
// Connections address their destination through a single index space:
// [0, NumOutputs) are output neurons, [NumOutputs, NumOutputs+len(Hidden))
// are hidden neurons. Inputs are never a destination.
package neural

import (
	"math"
	"math/rand"
)

// Connection is a weighted edge to a destination neuron.
type Connection struct {
	Dest   int
	Weight float32
	// Scaled connections deliver weight*excitation instead of a fixed weight.
	Scaled bool
}

// Impulse returns what this connection delivers when its source fires
// with the given excitation.
func (c Connection) Impulse(excitation float32) float32 {
	if c.Scaled {
		return c.Weight * excitation
	}
	return c.Weight
}

// isDead reports whether the weight rounds to zero at one decimal.
func (c Connection) isDead() bool {
	return math.Round(float64(c.Weight)*10) == 0
}

// Neuron is one excitable unit and its outgoing connections.
type Neuron struct {
	Excitation    float32
	DecayRate     float32
	FireThreshold float32
	Outgoing      []Connection

	// Reachable is rebuilt on every propagation pass.
	Reachable bool

	// MutationRate is a heritable gene: each mutation pass touches this
	// neuron with probability 1/MutationRate.
	MutationRate int
}

// Fires reports whether the neuron is at or above its threshold.
func (n *Neuron) Fires() bool {
	return n.Excitation >= n.FireThreshold
}

// Decay moves excitation toward zero by DecayRate without crossing it.
func (n *Neuron) Decay() {
	switch {
	case n.Excitation > 0:
		n.Excitation = max(n.Excitation-n.DecayRate, 0)
	case n.Excitation < 0:
		n.Excitation = min(n.Excitation+n.DecayRate, 0)
	}
}

// Drive reads an output neuron: zero unless it fires, otherwise the sum of
// its connections' impulses.
func (n *Neuron) Drive() float32 {
	if !n.Fires() {
		return 0
	}
	var sum float32
	for _, c := range n.Outgoing {
		sum += c.Impulse(n.Excitation)
	}
	return sum
}

// clone returns a copy that shares no connection storage with n.
func (n *Neuron) clone() Neuron {
	cp := *n
	cp.Outgoing = append([]Connection(nil), n.Outgoing...)
	return cp
}

// randomConnection draws a ±1 connection into [0, numDest).
func randomConnection(rng *rand.Rand, numDest int) Connection {
	w := float32(1)
	if rng.Intn(2) == 0 {
		w = -1
	}
	return Connection{
		Dest:   rng.Intn(numDest),
		Weight: w,
		Scaled: rng.Intn(2) == 0,
	}
}

// newRandomNeuron returns a neuron with random parameters and no connections.
func newRandomNeuron(rng *rand.Rand, p Params) Neuron {
	return Neuron{
		DecayRate:     float32(rng.Intn(p.MaxInitDecay + 1)),
		FireThreshold: float32(rng.Intn(p.MaxInitThreshold + 1)),
		MutationRate:  p.MinRateGene + rng.Intn(p.MaxInitRateGene-p.MinRateGene+1),
	}
}

// plusMinusOne returns +1 or -1 with equal probability.
func plusMinusOne(rng *rand.Rand) int {
	if rng.Intn(2) == 0 {
		return -1
	}
	return 1
}
