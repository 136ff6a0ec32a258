// Package demodulation provides multi-channel quadrature demodulation in
// pure Go.
//
// Every channel of a signal is mixed with the in-phase and quadrature
// references cos(2πf·t) and sin(2πf·t) of a carrier f, and both products
// are low-pass filtered with a linear-phase FIR filter. The filtered
// components I and Q describe the amplitude and phase of the signal
// content near the carrier:
//
//	amplitude = 2·√(I²+Q²)
//	phase     = atan2(−Q, I)
//
// # Quick Start
//
// For one-shot demodulation of a channels × samples matrix:
//
//	result, err := demodulation.Demodulate(signal, t, taps, 2.5)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	amp := result.Amplitude()
//
// For repeated use with a reusable demodulator:
//
//	d, err := demodulation.New(&demodulation.Config{
//	    CarrierFrequency: 2.5,
//	    Taps:             taps,
//	    Decimation:       4,
//	    EnableParallel:   true,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	result, err := d.Process(signal, t)
//
// Filter taps are typically designed with the Kaiser method in the
// internal filter package, which mirrors kaiserord and firwin.
//
// # Output Alignment
//
// Filtering keeps only the fully overlapped part of the convolution, so a
// signal of n samples and a filter of m taps produce n−m+1 samples before
// decimation. Output sample k corresponds to input sample
// Delay + k·Decimation with Delay = (m−1)/2, and [Result.Time] carries the
// matching time stamps.
//
// # Performance
//
// Convolution runs on the SIMD kernels of github.com/tphakala/simd. At
// float64 precision filters of 400 taps or more switch to overlap-save FFT
// convolution. [PrecisionFloat32] trades accuracy for SIMD width.
//
// # Thread Safety
//
// A [Demodulator] keeps no state between calls and may be used from several
// goroutines. With EnableParallel set, channels are distributed over a
// bounded worker pool; each worker owns its filter and buffers, and the
// output is bit-identical to sequential processing.
package demodulation
