package neural

import (
	"math"
	"math/rand"
)

// pending tallies structural growth requested while mutating neurons.
type pending struct {
	neurons     int
	connections int
}

// Mutate perturbs parameters and topology and increments Generation.
//
// Each neuron mutates with probability 1/MutationRate. Growth requested by
// connections is tallied and applied afterwards; hidden neurons left without
// connections are then removed, and inputs or outputs left without
// connections are re-seeded.
func (b *Brain) Mutate(rng *rand.Rand, p Params) {
	var pend pending
	numDest := b.NumDestinations()
	b.eachNeuron(func(_ NeuronRef, n *Neuron) {
		n.mutate(rng, p, numDest, &pend)
	})

	for i := 0; i < pend.neurons; i++ {
		n := newRandomNeuron(rng, p)
		b.Hidden = append(b.Hidden, n)
		last := &b.Hidden[len(b.Hidden)-1]
		last.Outgoing = []Connection{randomConnection(rng, b.NumDestinations())}
	}

	for i := 0; i < pend.connections; i++ {
		src := b.neuronAt(rng.Intn(b.NumNeurons()))
		src.Outgoing = append(src.Outgoing, randomConnection(rng, b.NumDestinations()))
	}

	b.collectGarbage()
	b.reseed(rng)
	b.Generation++
}

func (n *Neuron) mutate(rng *rand.Rand, p Params, numDest int, pend *pending) {
	if oneIn(rng, n.MutationRate) {
		n.MutationRate = max(n.MutationRate+plusMinusOne(rng), p.MinRateGene)
		n.DecayRate = max(n.DecayRate+float32(plusMinusOne(rng)), 0)
		n.FireThreshold = max(n.FireThreshold+float32(plusMinusOne(rng)), 0)

		for i := range n.Outgoing {
			if !oneIn(rng, n.MutationRate) {
				continue
			}
			switch rng.Intn(3) {
			case 0:
				n.Outgoing[i].perturb(rng)
			case 1:
				pend.connections++
			default:
				pend.neurons++
			}
		}
	}

	n.prune()

	// A pending neuron is spent re-seeding this one instead.
	if len(n.Outgoing) == 0 && pend.neurons > 0 {
		pend.neurons--
		n.Outgoing = append(n.Outgoing, randomConnection(rng, numDest))
	}

	n.Excitation = 0
	n.Reachable = false
}

// oneIn reports a 1-in-n draw; n below 1 always succeeds.
func oneIn(rng *rand.Rand, n int) bool {
	if n <= 1 {
		return true
	}
	return rng.Intn(n) == 0
}

// perturb flips the sign or moves the magnitude by one. Flips get rarer as
// the magnitude grows: P(flip) = 1/(1+|w|).
func (c *Connection) perturb(rng *rand.Rand) {
	mag := float32(math.Abs(float64(c.Weight)))
	if rng.Float32()*(1+mag) < 1 {
		c.Weight = -c.Weight
		return
	}
	mag = max(mag+float32(plusMinusOne(rng)), 0)
	if c.Weight < 0 {
		c.Weight = -mag
	} else {
		c.Weight = mag
	}
}

// prune drops connections whose weight rounds to zero.
func (n *Neuron) prune() {
	kept := n.Outgoing[:0]
	for _, c := range n.Outgoing {
		if !c.isDead() {
			kept = append(kept, c)
		}
	}
	n.Outgoing = kept
}

// collectGarbage removes hidden neurons without outgoing connections until
// none remain. Connections into a removed neuron are dropped and later
// destinations shift down by one.
func (b *Brain) collectGarbage() {
	for {
		victim := -1
		for i := range b.Hidden {
			if len(b.Hidden[i].Outgoing) == 0 {
				victim = i
				break
			}
		}
		if victim < 0 {
			return
		}
		b.removeHidden(victim)
	}
}

func (b *Brain) removeHidden(h int) {
	dest := NumOutputs + h
	b.Hidden = append(b.Hidden[:h], b.Hidden[h+1:]...)

	b.eachNeuron(func(_ NeuronRef, n *Neuron) {
		kept := n.Outgoing[:0]
		for _, c := range n.Outgoing {
			if c.Dest == dest {
				continue
			}
			if c.Dest > dest {
				c.Dest--
			}
			kept = append(kept, c)
		}
		n.Outgoing = kept
	})
}

// reseed gives every connectionless input and output one random connection.
func (b *Brain) reseed(rng *rand.Rand) {
	for i := range b.Inputs {
		if len(b.Inputs[i].Outgoing) == 0 {
			b.Inputs[i].Outgoing = []Connection{randomConnection(rng, b.NumDestinations())}
		}
	}
	for i := range b.Outputs {
		if len(b.Outputs[i].Outgoing) == 0 {
			b.Outputs[i].Outgoing = []Connection{randomConnection(rng, b.NumDestinations())}
		}
	}
}
