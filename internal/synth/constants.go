package synth

const (
	defaultPerturbProbability = 0.5
	defaultAmplitudeJitter    = 0.2
	defaultPhaseJitter        = 0.5
	defaultNoiseFactor        = 0.8

	// pcgStreamSalt derives the second PCG word from the seed.
	pcgStreamSalt = 0x9e3779b97f4a7c15
)
