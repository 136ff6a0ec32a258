package filter

import (
	"math"
)

const defaultResponsePoints = 512

// Response holds the frequency response of a FIR filter.
type Response struct {
	// Frequencies are normalized to Nyquist, in [0, 1).
	Frequencies []float64

	// Magnitude is the linear gain at each frequency.
	Magnitude []float64

	// Phase is the phase response in radians.
	Phase []float64
}

// ComputeFrequencyResponse evaluates the DTFT of taps at numPoints evenly
// spaced frequencies from DC up to (but excluding) Nyquist. numPoints <= 0
// selects 512 points.
func ComputeFrequencyResponse(taps []float64, numPoints int) Response {
	if numPoints <= 0 {
		numPoints = defaultResponsePoints
	}

	resp := Response{
		Frequencies: make([]float64, numPoints),
		Magnitude:   make([]float64, numPoints),
		Phase:       make([]float64, numPoints),
	}

	for k := range numPoints {
		freq := float64(k) / float64(numPoints)
		resp.Frequencies[k] = freq

		omega := math.Pi * freq
		var re, im float64
		for n, h := range taps {
			angle := omega * float64(n)
			re += h * math.Cos(angle)
			im -= h * math.Sin(angle)
		}

		resp.Magnitude[k] = math.Hypot(re, im)
		resp.Phase[k] = math.Atan2(im, re)
	}

	return resp
}

// GainAt evaluates the magnitude response at a single normalized frequency.
func GainAt(taps []float64, freq float64) float64 {
	omega := math.Pi * freq
	var re, im float64
	for n, h := range taps {
		angle := omega * float64(n)
		re += h * math.Cos(angle)
		im -= h * math.Sin(angle)
	}
	return math.Hypot(re, im)
}

// MagnitudeDB converts a linear magnitude to dB, flooring at -200 dB.
func MagnitudeDB(magnitude float64) float64 {
	const minMagnitude = 1e-10
	if magnitude < minMagnitude {
		magnitude = minMagnitude
	}
	return 20 * math.Log10(magnitude)
}

// StopbandAttenuation returns the worst-case attenuation (positive dB) of
// the response at or above the normalized frequency stopStart.
func StopbandAttenuation(resp Response, stopStart float64) float64 {
	worst := 0.0
	for i, f := range resp.Frequencies {
		if f >= stopStart && resp.Magnitude[i] > worst {
			worst = resp.Magnitude[i]
		}
	}
	return -MagnitudeDB(worst)
}
