package engine

import (
	"errors"
	"fmt"
	"math"

	"github.com/tphakala/go-demodulation/internal/simdops"
)

// ErrLengthMismatch is returned when a channel and the carrier reference
// differ in length.
var ErrLengthMismatch = errors.New("sample count does not match carrier reference")

// Reference is the sampled carrier, cos(2πf·t) and sin(2πf·t), shared
// read-only by every channel of one demodulation call.
type Reference[F simdops.Float] struct {
	Cos []F
	Sin []F
}

// NewReference samples the carrier at frequency f over the time vector t.
// The phase is computed in float64 regardless of F.
func NewReference[F simdops.Float](t []float64, f float64) *Reference[F] {
	ref := &Reference[F]{
		Cos: make([]F, len(t)),
		Sin: make([]F, len(t)),
	}
	w := 2 * math.Pi * f
	for i, ti := range t {
		s, c := math.Sincos(w * ti)
		ref.Cos[i] = F(c)
		ref.Sin[i] = F(s)
	}
	return ref
}

// Len returns the number of reference samples.
func (r *Reference[F]) Len() int {
	return len(r.Cos)
}

// Mixer demodulates one channel at a time: it multiplies the channel by the
// in-phase and quadrature references and low-pass filters both products.
//
// A Mixer owns its filter and scratch buffers; use one per goroutine.
type Mixer[F simdops.Float] struct {
	ref *Reference[F]
	fir *FIR[F]

	mixI []F
	mixQ []F
	outI []F
	outQ []F
}

// NewMixer builds a mixer over ref using the given low-pass taps.
func NewMixer[F simdops.Float](ref *Reference[F], taps []float64, decimation int) (*Mixer[F], error) {
	fir, err := NewFIR[F](taps, decimation)
	if err != nil {
		return nil, err
	}

	n := ref.Len()
	outLen := fir.OutputLen(n)
	if outLen == 0 {
		return nil, fmt.Errorf("%d reference samples are fewer than the %d filter taps", n, fir.Len())
	}

	return &Mixer[F]{
		ref:  ref,
		fir:  fir,
		mixI: make([]F, n),
		mixQ: make([]F, n),
		outI: make([]F, outLen),
		outQ: make([]F, outLen),
	}, nil
}

// OutputLen returns the number of I and Q samples produced per channel.
func (m *Mixer[F]) OutputLen() int {
	return len(m.outI)
}

// Delay returns the filter group delay in input samples.
func (m *Mixer[F]) Delay() int {
	return m.fir.Delay()
}

// UsesFFT reports whether the filter runs through the FFT convolver.
func (m *Mixer[F]) UsesFFT() bool {
	return m.fir.UsesFFT()
}

// Process demodulates x into dstI and dstQ, each of length OutputLen().
func (m *Mixer[F]) Process(dstI, dstQ, x []float64) error {
	if len(x) != m.ref.Len() {
		return fmt.Errorf("%w: %d != %d", ErrLengthMismatch, len(x), m.ref.Len())
	}
	if len(dstI) < len(m.outI) || len(dstQ) < len(m.outQ) {
		return fmt.Errorf("output buffers too small: need %d samples", len(m.outI))
	}

	for n, v := range x {
		s := F(v)
		m.mixI[n] = s * m.ref.Cos[n]
		m.mixQ[n] = s * m.ref.Sin[n]
	}

	if err := m.fir.Apply(m.outI, m.mixI); err != nil {
		return fmt.Errorf("in-phase: %w", err)
	}
	if err := m.fir.Apply(m.outQ, m.mixQ); err != nil {
		return fmt.Errorf("quadrature: %w", err)
	}

	for k := range m.outI {
		dstI[k] = float64(m.outI[k])
		dstQ[k] = float64(m.outQ[k])
	}
	return nil
}
