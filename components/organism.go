package components

// Organism holds identity and lifecycle state.
type Organism struct {
	ID    uint32 `inspect:"label"`
	Alive bool

	// SplitGene is the inverse split frequency: lower values split more often.
	SplitGene int `inspect:"label,name:Split gene"`

	// LineageID is the ID of the randomly spawned founder this agent descends from.
	LineageID uint32 `inspect:"label,name:Lineage"`
	BirthTick int32  `inspect:"label,name:Born"`
}
