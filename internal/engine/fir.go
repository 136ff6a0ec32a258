package engine

import (
	"errors"
	"fmt"
	"slices"

	"github.com/tphakala/go-demodulation/internal/simdops"
)

// ErrEmptyKernel is returned when a FIR is built without taps.
var ErrEmptyKernel = errors.New("filter kernel is empty")

// FIR is a block (non-streaming) FIR filter producing only the fully
// overlapped ("valid") part of the convolution, optionally keeping every
// decimation-th output.
//
// Output k is aligned with input sample k·decimation + (len(taps)−1)/2.
//
// A FIR owns scratch space and must not be shared between goroutines.
type FIR[F simdops.Float] struct {
	// kernel holds the taps in reverse order so that the sliding dot
	// product of the SIMD kernels computes a true convolution.
	kernel     []F
	decimation int
	ops        *simdops.Ops[F]

	// fft is set for long float64 kernels.
	fft     *FFTConvolver
	scratch []F
}

// NewFIR builds a filter from taps. decimation < 1 is treated as 1.
func NewFIR[F simdops.Float](taps []float64, decimation int) (*FIR[F], error) {
	if len(taps) == 0 {
		return nil, ErrEmptyKernel
	}
	decimation = max(decimation, 1)

	kernel := make([]F, len(taps))
	for i, v := range taps {
		kernel[i] = F(v)
	}
	slices.Reverse(kernel)

	f := &FIR[F]{
		kernel:     kernel,
		decimation: decimation,
		ops:        simdops.For[F](),
	}

	var zero F
	if _, isDouble := any(zero).(float64); isDouble && len(taps) >= MinTapsForFFT {
		reversed := slices.Clone(taps)
		slices.Reverse(reversed)
		f.fft = NewFFTConvolver(reversed)
	}

	return f, nil
}

// Len returns the number of taps.
func (f *FIR[F]) Len() int {
	return len(f.kernel)
}

// Delay returns the group delay of a symmetric kernel in input samples.
func (f *FIR[F]) Delay() int {
	return (len(f.kernel) - 1) / 2
}

// Decimation returns the output decimation factor.
func (f *FIR[F]) Decimation() int {
	return f.decimation
}

// UsesFFT reports whether long-kernel FFT filtering is active.
func (f *FIR[F]) UsesFFT() bool {
	return f.fft != nil
}

// OutputLen returns the number of samples Apply produces for n inputs.
func (f *FIR[F]) OutputLen(n int) int {
	valid := n - len(f.kernel) + 1
	if valid <= 0 {
		return 0
	}
	return (valid + f.decimation - 1) / f.decimation
}

// Apply filters src into dst, which must hold at least OutputLen(len(src))
// samples.
func (f *FIR[F]) Apply(dst, src []F) error {
	outLen := f.OutputLen(len(src))
	if outLen == 0 {
		return fmt.Errorf("input of %d samples is shorter than the %d-tap kernel", len(src), len(f.kernel))
	}
	if len(dst) < outLen {
		return fmt.Errorf("output buffer too small: %d < %d", len(dst), outLen)
	}

	if f.fft != nil {
		f.applyFFT(dst[:outLen], src)
		return nil
	}

	if f.decimation == 1 {
		f.ops.ConvolveValid(dst[:outLen], src, f.kernel)
		return nil
	}

	// Only the kept outputs are computed.
	taps := len(f.kernel)
	for k := range outLen {
		start := k * f.decimation
		dst[k] = f.ops.DotProductUnsafe(src[start:start+taps], f.kernel)
	}
	return nil
}

func (f *FIR[F]) applyFFT(dst, src []F) {
	// fft is only built for float64, so these assertions hold.
	src64, _ := any(src).([]float64)
	dst64, _ := any(dst).([]float64)

	if f.decimation == 1 {
		f.fft.Convolve(dst64, src64)
		return
	}

	valid := len(src) - len(f.kernel) + 1
	if cap(f.scratch) < valid {
		f.scratch = make([]F, valid)
	}
	full64, _ := any(f.scratch[:valid]).([]float64)
	f.fft.Convolve(full64, src64)
	for k := range dst64 {
		dst64[k] = full64[k*f.decimation]
	}
}
