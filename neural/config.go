package neural

// Params holds brain construction and mutation bounds.
type Params struct {
	// InitialMutations is the number of mutation passes applied to a fresh random brain.
	InitialMutations int
	// ResetGeneration restarts a fresh random brain at generation 0 after its burst.
	ResetGeneration bool

	MaxInitDecay     int
	MaxInitThreshold int
	MinRateGene      int
	MaxInitRateGene  int
}

// DefaultParams returns the bounds used by the default config.
func DefaultParams() Params {
	return Params{
		InitialMutations: 3,
		ResetGeneration:  true,
		MaxInitDecay:     2,
		MaxInitThreshold: 1,
		MinRateGene:      2,
		MaxInitRateGene:  6,
	}
}
