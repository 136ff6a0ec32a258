package engine

// FFT convolution.
const (
	// MinTapsForFFT is the kernel length at which overlap-save FFT filtering
	// overtakes direct SIMD convolution for float64 data.
	MinTapsForFFT = 400

	minFFTSize    = 512
	fftSizeFactor = 2
)
