package demodulation

import "github.com/tphakala/go-demodulation/internal/engine"

// Processing defaults
const (
	defaultDecimation = 1
	latencyDivisor    = 2 // Group delay of a symmetric odd-length filter is (N-1)/2
)

// Info algorithm names
const (
	algorithmDirect    = "direct"
	algorithmFFT       = "fft"
	engineFFTThreshold = engine.MinTapsForFFT
)

// Output scaling
const (
	// amplitudeScale undoes the factor 1/2 of mixing a real tone to DC.
	amplitudeScale = 2.0
)
