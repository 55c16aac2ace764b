package neural

import (
	"math"
	"math/rand"
	"testing"
)

// checkBrainInvariants reports every structural invariant violation in b.
func checkBrainInvariants(t *testing.T, b *Brain, p Params) {
	t.Helper()
	for i := range b.Inputs {
		if len(b.Inputs[i].Outgoing) == 0 {
			t.Fatalf("input %d has no outgoing connections", i)
		}
	}
	for i := range b.Outputs {
		if len(b.Outputs[i].Outgoing) == 0 {
			t.Fatalf("output %d has no outgoing connections", i)
		}
	}
	for i := range b.Hidden {
		if len(b.Hidden[i].Outgoing) == 0 {
			t.Fatalf("hidden %d survived garbage collection without connections", i)
		}
	}
	b.eachNeuron(func(ref NeuronRef, n *Neuron) {
		for _, c := range n.Outgoing {
			if c.Dest < 0 || c.Dest >= b.NumDestinations() {
				t.Fatalf("%v has destination %d outside [0, %d)", ref, c.Dest, b.NumDestinations())
			}
			if c.isDead() {
				t.Fatalf("%v kept a zero-weight connection %+v", ref, c)
			}
		}
		if n.Excitation != 0 || n.Reachable {
			t.Fatalf("%v carries activation state after mutation", ref)
		}
		if n.MutationRate < p.MinRateGene {
			t.Fatalf("%v mutation rate %d below minimum %d", ref, n.MutationRate, p.MinRateGene)
		}
		if n.DecayRate < 0 || n.FireThreshold < 0 {
			t.Fatalf("%v has negative decay or threshold", ref)
		}
	})
}

func TestMutateKeepsInvariants(t *testing.T) {
	p := DefaultParams()
	for seed := int64(1); seed <= 200; seed++ {
		rng := rand.New(rand.NewSource(seed))
		b := NewRandomBrain(rng, p)
		checkBrainInvariants(t, b, p)

		for i := 0; i < 50; i++ {
			b.Propagate()
			b.Mutate(rng, p)
			checkBrainInvariants(t, b, p)
		}
	}
}

func TestMutateIncrementsGeneration(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	b := NewRandomBrain(rng, DefaultParams())
	if b.Generation != 0 {
		t.Fatalf("fresh brain generation = %d, want 0", b.Generation)
	}
	for i := 1; i <= 5; i++ {
		b.Mutate(rng, DefaultParams())
		if b.Generation != i {
			t.Errorf("after %d mutations generation = %d", i, b.Generation)
		}
	}
}

func TestNewRandomBrainKeepsBurstGeneration(t *testing.T) {
	p := DefaultParams()
	p.ResetGeneration = false
	p.InitialMutations = 4

	b := NewRandomBrain(rand.New(rand.NewSource(1)), p)
	if b.Generation != 4 {
		t.Errorf("generation = %d, want 4", b.Generation)
	}
}

func TestPrune(t *testing.T) {
	n := Neuron{Outgoing: []Connection{
		{Dest: 0, Weight: 0.04},
		{Dest: 1, Weight: 0.2},
		{Dest: 0, Weight: -0.01},
		{Dest: 1, Weight: -1},
		{Dest: 0, Weight: 0},
	}}
	n.prune()

	if len(n.Outgoing) != 2 {
		t.Fatalf("kept %d connections, want 2: %+v", len(n.Outgoing), n.Outgoing)
	}
	if n.Outgoing[0].Weight != 0.2 || n.Outgoing[1].Weight != -1 {
		t.Errorf("wrong connections kept: %+v", n.Outgoing)
	}
}

func TestEmptyNeuronRecyclesPendingNeuron(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	n := Neuron{
		MutationRate: math.MaxInt32, // effectively never mutates itself
		Outgoing:     []Connection{{Dest: 0, Weight: 0.01}},
		Excitation:   3,
		Reachable:    true,
	}
	pend := pending{neurons: 1}
	n.mutate(rng, DefaultParams(), NumOutputs, &pend)

	if len(n.Outgoing) != 1 {
		t.Fatalf("neuron has %d connections, want 1 re-seeded", len(n.Outgoing))
	}
	if pend.neurons != 0 {
		t.Errorf("pending neurons = %d, want 0 after recycling", pend.neurons)
	}
	if n.Excitation != 0 || n.Reachable {
		t.Error("mutate must clear activation state")
	}
}

func TestCollectGarbageReindexes(t *testing.T) {
	b := &Brain{}
	b.Inputs[0].Outgoing = []Connection{{Dest: 3, Weight: 1}} // hidden1
	b.Inputs[1].Outgoing = []Connection{{Dest: 2, Weight: 1}} // hidden0, which dies
	b.Inputs[2].Outgoing = []Connection{{Dest: 0, Weight: 1}}
	b.Hidden = []Neuron{
		{},
		{Outgoing: []Connection{{Dest: 0, Weight: 1}}},
	}
	b.Outputs[0].Outgoing = []Connection{{Dest: 1, Weight: 1}}
	b.Outputs[1].Outgoing = []Connection{{Dest: 0, Weight: 1}}

	b.collectGarbage()

	if len(b.Hidden) != 1 {
		t.Fatalf("hidden count = %d, want 1", len(b.Hidden))
	}
	if got := b.Inputs[0].Outgoing[0].Dest; got != 2 {
		t.Errorf("input0 destination = %d, want 2 after shift", got)
	}
	if len(b.Inputs[1].Outgoing) != 0 {
		t.Errorf("connection into removed neuron kept: %+v", b.Inputs[1].Outgoing)
	}

	b.reseed(rand.New(rand.NewSource(1)))
	if len(b.Inputs[1].Outgoing) != 1 {
		t.Errorf("input1 not re-seeded")
	}
}

func TestCollectGarbageCascades(t *testing.T) {
	b := &Brain{}
	for i := range b.Inputs {
		b.Inputs[i].Outgoing = []Connection{{Dest: 0, Weight: 1}}
	}
	for i := range b.Outputs {
		b.Outputs[i].Outgoing = []Connection{{Dest: 1, Weight: 1}}
	}
	b.Hidden = []Neuron{
		{Outgoing: []Connection{{Dest: 3, Weight: 1}}}, // only feeds hidden1
		{},
	}

	b.collectGarbage()
	if len(b.Hidden) != 0 {
		t.Errorf("hidden count = %d, want 0 after cascade", len(b.Hidden))
	}
}

func TestPerturbFlipBias(t *testing.T) {
	tests := []struct {
		weight   float32
		wantFlip float64
	}{
		{1, 0.5},
		{3, 0.25},
		{9, 0.1},
	}

	rng := rand.New(rand.NewSource(99))
	for _, tt := range tests {
		flips := 0
		const trials = 20000
		for i := 0; i < trials; i++ {
			c := Connection{Weight: tt.weight}
			c.perturb(rng)
			if c.Weight < 0 {
				flips++
			} else if d := math.Abs(float64(c.Weight - tt.weight)); d != 1 {
				t.Fatalf("magnitude changed by %v, want 1", d)
			}
		}
		got := float64(flips) / trials
		if math.Abs(got-tt.wantFlip) > 0.02 {
			t.Errorf("weight %v: flip rate %.3f, want ~%.3f", tt.weight, got, tt.wantFlip)
		}
	}
}

func TestMutateGrowsTopology(t *testing.T) {
	p := DefaultParams()
	rng := rand.New(rand.NewSource(5))
	b := NewRandomBrain(rng, p)
	start := b.NumConnections()

	grew := false
	for i := 0; i < 500 && !grew; i++ {
		b.Mutate(rng, p)
		grew = len(b.Hidden) > 0 || b.NumConnections() > start
	}
	if !grew {
		t.Error("500 mutations never added a neuron or connection")
	}
}
