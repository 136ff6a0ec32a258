package engine

import (
	"github.com/tphakala/simd/c128"
	"github.com/tphakala/simd/f64"
	"gonum.org/v1/gonum/dsp/fourier"
)

// FFTConvolver computes the valid-mode sliding dot product
//
//	y[n] = Σ x[n+k]·h[k],  n = 0 … len(x)−len(h)
//
// by overlap-save. Each block of fftSize input samples yields
// fftSize−len(h)+1 outputs; the first len(h)−1 circular results of every
// block are discarded.
//
// The working buffers are owned by the convolver, so an instance must not be
// shared between goroutines.
type FFTConvolver struct {
	fft       *fourier.FFT
	fftSize   int
	blockSize int
	kernelLen int
	scale     float64

	kernelFFT []complex128

	block   []float64
	spec    []complex128
	product []complex128
	time    []float64
}

// NewFFTConvolver prepares a convolver for kernel. It returns nil for an
// empty kernel.
func NewFFTConvolver(kernel []float64) *FFTConvolver {
	kernelLen := len(kernel)
	if kernelLen == 0 {
		return nil
	}

	fftSize := minFFTSize
	for fftSize < fftSizeFactor*kernelLen {
		fftSize *= 2
	}
	fft := fourier.NewFFT(fftSize)

	// Circular convolution with the time-reversed kernel turns into the
	// sliding dot product above once the wrapped prefix is dropped.
	padded := make([]float64, fftSize)
	for i := range kernelLen {
		padded[i] = kernel[kernelLen-1-i]
	}

	bins := fftSize/2 + 1
	return &FFTConvolver{
		fft:       fft,
		fftSize:   fftSize,
		blockSize: fftSize - kernelLen + 1,
		kernelLen: kernelLen,
		scale:     1.0 / float64(fftSize),
		kernelFFT: fft.Coefficients(nil, padded),
		block:     make([]float64, fftSize),
		spec:      make([]complex128, bins),
		product:   make([]complex128, bins),
		time:      make([]float64, fftSize),
	}
}

// KernelLen returns the length of the kernel.
func (c *FFTConvolver) KernelLen() int {
	return c.kernelLen
}

// Convolve writes len(signal)−KernelLen()+1 outputs to dst. It is a no-op
// when the signal is shorter than the kernel or dst is too small.
func (c *FFTConvolver) Convolve(dst, signal []float64) {
	n := len(signal)
	outLen := n - c.kernelLen + 1
	if outLen <= 0 || len(dst) < outLen {
		return
	}

	wrap := c.kernelLen - 1
	for pos := 0; pos < outLen; {
		clear(c.block)
		end := min(pos+c.fftSize, n)
		copy(c.block, signal[pos:end])

		c.spec = c.fft.Coefficients(c.spec, c.block)
		c128.Mul(c.product, c.spec, c.kernelFFT)
		c.time = c.fft.Sequence(c.time, c.product)

		valid := min(c.blockSize, outLen-pos)
		// gonum's inverse transform is unnormalized.
		f64.Scale(dst[pos:pos+valid], c.time[wrap:wrap+valid], c.scale)

		pos += valid
	}
}
