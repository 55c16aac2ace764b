package systems

import (
	"github.com/pthm-cable/neurosoup/components"
	"github.com/pthm-cable/neurosoup/config"
)

// collisionCellSize is the broadphase grid cell, in arena units.
const collisionCellSize = 32

// CollisionParams holds absorption rules.
type CollisionParams struct {
	OverlapFraction float32
	SizeRatio       float32
	ArenaSize       float32
}

// CollisionParamsFrom reads absorption rules from cfg.
func CollisionParamsFrom(cfg *config.Config) CollisionParams {
	return CollisionParams{
		OverlapFraction: float32(cfg.Collision.OverlapFraction),
		SizeRatio:       float32(cfg.Collision.SizeRatio),
		ArenaSize:       cfg.Derived.ArenaSize32,
	}
}

// Collider points at one agent's live components.
type Collider struct {
	Pos  *components.Position
	Body *components.Body
	Org  *components.Organism
}

func (c Collider) bounds() components.Rect {
	return components.Bounds(*c.Pos, c.Body.Size)
}

// Absorption records one agent eating another, by index into the collider slice.
type Absorption struct {
	Absorber, Absorbed int
	AbsorbedSize       float32
}

// CollisionResolver resolves absorptions with a spatial grid broadphase.
// Pairs are visited in the same (i, j>i) order as a full pairwise scan, so
// results do not depend on the grid.
type CollisionResolver struct {
	params     CollisionParams
	grid       *SpatialGrid
	candidates []int
	events     []Absorption
}

// NewCollisionResolver creates a resolver for p.
func NewCollisionResolver(p CollisionParams) *CollisionResolver {
	return &CollisionResolver{
		params:     p,
		grid:       NewSpatialGrid(p.ArenaSize, collisionCellSize),
		candidates: make([]int, 0, 32),
	}
}

// ResolveCollisions is a one-shot CollisionResolver.Resolve.
func ResolveCollisions(cs []Collider, p CollisionParams) []Absorption {
	return NewCollisionResolver(p).Resolve(cs)
}

// Resolve checks every pair of living agents. When their boxes overlap by
// more than OverlapFraction of the smaller box and one is more than SizeRatio
// times the other, the bigger one takes the smaller one's area and the
// smaller one dies. The returned slice is reused by the next call.
func (r *CollisionResolver) Resolve(cs []Collider) []Absorption {
	p := r.params
	r.grid.Reset(len(cs))
	for i, c := range cs {
		if c.Org.Alive {
			r.grid.Insert(i, c.bounds())
		}
	}

	events := r.events[:0]
	for i := range cs {
		if !cs[i].Org.Alive {
			continue
		}
		r.candidates = r.grid.QueryInto(r.candidates[:0], cs[i].bounds(), i)

		for k := 0; k < len(r.candidates); k++ {
			j := r.candidates[k]
			a, b := cs[i], cs[j]
			if !b.Org.Alive {
				continue
			}

			overlap := a.bounds().OverlapArea(b.bounds())
			small := min(a.Body.Size, b.Body.Size)
			if overlap <= p.OverlapFraction*small*small {
				continue
			}

			big, eaten, bigIdx, eatenIdx := a, b, i, j
			if b.Body.Size > a.Body.Size {
				big, eaten, bigIdx, eatenIdx = b, a, j, i
			}
			if big.Body.Size <= p.SizeRatio*eaten.Body.Size {
				continue
			}

			events = append(events, Absorption{Absorber: bigIdx, Absorbed: eatenIdx, AbsorbedSize: eaten.Body.Size})
			big.Body.Resize(big.Pos, MergeSize(big.Body.Size, eaten.Body.Size))
			eaten.Org.Alive = false
			r.grid.Insert(bigIdx, big.bounds())

			if eatenIdx == i {
				break
			}
			// i grew, so later indices may now reach it.
			r.candidates = r.grid.QueryInto(r.candidates[:0], cs[i].bounds(), j)
			k = -1
		}
	}

	r.events = events
	return events
}
