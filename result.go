package demodulation

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// Result is the output of a demodulation: the filtered in-phase and
// quadrature components of every channel.
type Result struct {
	// I and Q are channels × OutputLen matrices.
	I *mat.Dense
	Q *mat.Dense

	// Time holds the input time of each output sample,
	// Time[k] = t[Delay + k·Decimation].
	Time []float64

	// Delay is the filter group delay in input samples.
	Delay int

	// Decimation is the output decimation factor.
	Decimation int
}

func newResult(channels, samples int, t []float64, delay, decimation int) *Result {
	times := make([]float64, samples)
	for k := range times {
		times[k] = t[delay+k*decimation]
	}
	return &Result{
		I:          mat.NewDense(channels, samples, nil),
		Q:          mat.NewDense(channels, samples, nil),
		Time:       times,
		Delay:      delay,
		Decimation: decimation,
	}
}

// Channels returns the number of demodulated channels.
func (r *Result) Channels() int {
	rows, _ := r.I.Dims()
	return rows
}

// Samples returns the number of output samples per channel.
func (r *Result) Samples() int {
	_, cols := r.I.Dims()
	return cols
}

// Amplitude returns 2·√(I²+Q²), the amplitude of the tone at the carrier.
func (r *Result) Amplitude() *mat.Dense {
	var amp mat.Dense
	amp.Apply(func(i, j int, v float64) float64 {
		return amplitudeScale * math.Hypot(v, r.Q.At(i, j))
	}, r.I)
	return &amp
}

// Phase returns atan2(−Q, I), the phase of the tone relative to the carrier.
func (r *Result) Phase() *mat.Dense {
	var phase mat.Dense
	phase.Apply(func(i, j int, v float64) float64 {
		return math.Atan2(-r.Q.At(i, j), v)
	}, r.I)
	return &phase
}
