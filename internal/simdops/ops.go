// Package simdops maps the float32 and float64 SIMD kernels of
// github.com/tphakala/simd onto one generic table, so the demodulation
// engine can be written once for both precisions.
package simdops

import (
	"github.com/tphakala/simd/f32"
	"github.com/tphakala/simd/f64"
)

// Float is the set of supported sample types.
type Float interface {
	float32 | float64
}

// Ops holds the SIMD kernels for one sample type.
type Ops[F Float] struct {
	// DotProductUnsafe returns Σ a[i]·b[i]. len(a) must equal len(b).
	DotProductUnsafe func(a, b []F) F

	// ConvolveValid writes the sliding dot products
	// dst[n] = Σ signal[n+k]·kernel[k] for every fully overlapped n.
	ConvolveValid func(dst, signal, kernel []F)
}

var (
	ops32 = Ops[float32]{
		DotProductUnsafe: f32.DotProductUnsafe,
		ConvolveValid:    f32.ConvolveValid,
	}
	ops64 = Ops[float64]{
		DotProductUnsafe: f64.DotProductUnsafe,
		ConvolveValid:    f64.ConvolveValid,
	}
)

// For returns the table for F. The type switch runs once per caller, not in
// the sample loops.
func For[F Float]() *Ops[F] {
	var zero F
	switch any(zero).(type) {
	case float32:
		ops, ok := any(&ops32).(*Ops[F])
		if !ok {
			panic("simdops: type assertion failed for float32")
		}
		return ops
	case float64:
		ops, ok := any(&ops64).(*Ops[F])
		if !ok {
			panic("simdops: type assertion failed for float64")
		}
		return ops
	default:
		panic("simdops: unsupported float type")
	}
}
