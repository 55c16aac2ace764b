package game

import (
	"runtime"
	"sync"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/neurosoup/components"
	"github.com/pthm-cable/neurosoup/neural"
	"github.com/pthm-cable/neurosoup/systems"
)

// parallelThreshold is the minimum agent count to use parallel processing.
// Below this, single-threaded is faster due to goroutine overhead.
const parallelThreshold = 64

// agentSnapshot captures one agent's state before anything moves.
type agentSnapshot struct {
	Entity ecs.Entity
	ID     uint32
	Pos    components.Position
	Body   components.Body
	Brain  *neural.Brain
}

// intent is the state an agent ends the behavior phase with.
type intent struct {
	Pos      components.Position
	Body     components.Body
	SizeLost float32
}

// workChunk represents a range of agents for a worker to process.
type workChunk struct {
	start, end int
}

// parallelState holds resources for the parallel behavior phase.
type parallelState struct {
	snapshots  []agentSnapshot
	targets    []systems.Target
	intents    []intent
	colliders  []systems.Collider
	numWorkers int

	// Worker pool channels
	workChan chan workChunk // sends work to workers
	doneChan chan struct{}  // workers signal completion
	stopChan chan struct{}  // signals workers to exit
	wg       sync.WaitGroup // tracks active workers
	running  bool           // true if workers are running
}

func newParallelState() *parallelState {
	return &parallelState{
		numWorkers: runtime.GOMAXPROCS(0),
		snapshots:  make([]agentSnapshot, 0, 256),
		targets:    make([]systems.Target, 0, 256),
		intents:    make([]intent, 0, 256),
		colliders:  make([]systems.Collider, 0, 256),
	}
}

// startWorkers launches persistent worker goroutines.
func (p *parallelState) startWorkers(g *Game) {
	if p.running {
		return
	}

	p.workChan = make(chan workChunk, p.numWorkers)
	p.doneChan = make(chan struct{}, p.numWorkers)
	p.stopChan = make(chan struct{})
	p.running = true

	for i := 0; i < p.numWorkers; i++ {
		p.wg.Add(1)
		go p.worker(g)
	}
}

// stopWorkers signals all workers to exit and waits for them.
func (p *parallelState) stopWorkers() {
	if !p.running {
		return
	}

	close(p.stopChan)
	p.wg.Wait()
	close(p.workChan)
	close(p.doneChan)
	p.running = false
}

// worker runs in a goroutine, processing chunks until stopped.
func (p *parallelState) worker(g *Game) {
	defer p.wg.Done()

	for {
		select {
		case <-p.stopChan:
			return
		case chunk, ok := <-p.workChan:
			if !ok {
				return
			}
			g.computeChunk(chunk.start, chunk.end)
			p.doneChan <- struct{}{}
		}
	}
}

// updateBehaviorAndPhysics snapshots every agent, computes the new state of
// each one against that snapshot, then writes the results back. Sensing only
// ever sees where agents were at the start of the phase.
func (g *Game) updateBehaviorAndPhysics() {
	p := g.parallel

	// Phase A: Build snapshots (single-threaded)
	p.snapshots = p.snapshots[:0]
	p.targets = p.targets[:0]

	query := g.agentFilter.Query()
	for query.Next() {
		pos, body, org := query.Get()
		if !org.Alive {
			continue
		}
		brain, ok := g.brains[org.ID]
		if !ok {
			continue
		}
		p.snapshots = append(p.snapshots, agentSnapshot{
			Entity: query.Entity(),
			ID:     org.ID,
			Pos:    *pos,
			Body:   *body,
			Brain:  brain,
		})
		p.targets = append(p.targets, systems.Target{
			X: pos.X, Y: pos.Y, Size: body.Size, Heading: body.Heading, Alive: true,
		})
	}

	n := len(p.snapshots)
	if n == 0 {
		return
	}

	if cap(p.intents) < n {
		p.intents = make([]intent, n)
	}
	p.intents = p.intents[:n]

	// Phase B: Compute - choose single or parallel based on agent count
	if n < parallelThreshold {
		g.computeChunk(0, n)
	} else {
		g.computeParallel(n)
	}

	// Phase C: Apply intents (single-threaded, preserves determinism)
	g.applyIntents()
}

// computeParallel dispatches work to the worker pool.
func (g *Game) computeParallel(n int) {
	if !g.parallel.running {
		g.parallel.startWorkers(g)
	}

	numWorkers := g.parallel.numWorkers
	chunkSize := (n + numWorkers - 1) / numWorkers

	chunksDispatched := 0
	for w := 0; w < numWorkers; w++ {
		start := w * chunkSize
		end := min(start+chunkSize, n)
		if start >= end {
			continue
		}
		g.parallel.workChan <- workChunk{start: start, end: end}
		chunksDispatched++
	}

	for i := 0; i < chunksDispatched; i++ {
		<-g.parallel.doneChan
	}
}

// computeChunk senses, thinks, moves and decays agents [i0, i1). Each agent
// touches only its own brain and intent; targets are read-only.
func (g *Game) computeChunk(i0, i1 int) {
	p := g.parallel
	for i := i0; i < i1; i++ {
		snap := &p.snapshots[i]
		out := &p.intents[i]

		per := systems.Sense(p.targets, i, g.senseParams)
		snap.Brain.SetInputs(per.RelativeSize, per.InverseDistance, per.Bearing)
		snap.Brain.Propagate()

		out.Pos = snap.Pos
		out.Body = snap.Body
		out.Body.Mov, out.Body.Rot = snap.Brain.Drives()

		systems.Move(&out.Pos, &out.Body, g.physicsParams)
		out.SizeLost = systems.ApplyEnergyCost(&out.Pos, &out.Body, g.energyParams)
	}
}

// applyIntents writes computed results back to the components.
func (g *Game) applyIntents() {
	for i, snap := range g.parallel.snapshots {
		out := &g.parallel.intents[i]

		pos, body, _ := g.agentMapper.Get(snap.Entity)
		*pos = out.Pos
		*body = out.Body

		g.collector.RecordDecay(out.SizeLost)
		g.lifetimeTracker.UpdateSize(snap.ID, body.Size)
	}
}

// stopParallelWorkers should be called when shutting down the game.
func (g *Game) stopParallelWorkers() {
	if g.parallel != nil {
		g.parallel.stopWorkers()
	}
}
