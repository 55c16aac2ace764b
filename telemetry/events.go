// Package telemetry provides population health tracking, bookmarking, and CSV output.
package telemetry

// BirthKind identifies how an agent entered the arena.
type BirthKind uint8

const (
	BirthSpawned BirthKind = iota // random agent from the spawn roll
	BirthCloned                   // exact copy of a splitting parent
	BirthMutated                  // mutated copy of a splitting parent
)

func (k BirthKind) String() string {
	switch k {
	case BirthSpawned:
		return "spawned"
	case BirthCloned:
		return "cloned"
	default:
		return "mutated"
	}
}

// DeathCause identifies why an agent was culled.
type DeathCause uint8

const (
	DeathEaten   DeathCause = iota // absorbed by a larger agent
	DeathStarved                   // shrank below the viable size
)

func (c DeathCause) String() string {
	if c == DeathEaten {
		return "eaten"
	}
	return "starved"
}
