package mathutil

import "math"

// KaiserBeta returns the Kaiser window β for a stopband attenuation given in dB.
//
// Kaiser & Schafer:
//
//	att > 50        β = 0.1102·(att − 8.7)
//	21 ≤ att ≤ 50   β = 0.5842·(att − 21)^0.4 + 0.07886·(att − 21)
//	att < 21        β = 0
func KaiserBeta(attenuation float64) float64 {
	switch {
	case attenuation > kaiserAttHigh:
		return kaiserBetaHighCoeff * (attenuation - kaiserBetaHighOffset)
	case attenuation >= kaiserAttMedium:
		delta := attenuation - kaiserAttMedium
		return kaiserBetaMediumCoeff1*math.Pow(delta, kaiserBetaMediumPower) + kaiserBetaMediumCoeff2*delta
	default:
		return 0.0
	}
}

// KaiserLength returns the unrounded filter length Kaiser's formula predicts
// for the given attenuation (dB) and transition width. width is normalized
// to the Nyquist frequency, so 1.0 spans the whole band.
//
//	N = (att − 7.95) / (2.285·π·width) + 1
func KaiserLength(attenuation, width float64) float64 {
	return (attenuation-kaiserLengthOffset)/kaiserLengthMultiplier/(math.Pi*width) + 1
}

// KaiserAttenuation estimates the stopband attenuation (dB) of a filter
// of numTaps taps with the given normalized transition width. It inverts
// KaiserLength.
func KaiserAttenuation(numTaps int, width float64) float64 {
	return kaiserLengthMultiplier*float64(numTaps-1)*math.Pi*width + kaiserLengthOffset
}

// NextOdd rounds n up to the nearest odd integer.
func NextOdd(n int) int {
	if n%2 == 0 {
		return n + 1
	}
	return n
}
