package simdops

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFor_Float64(t *testing.T) {
	ops := For[float64]()

	a := []float64{1, 2, 3, 4}
	b := []float64{0.5, 0.25, 2, -1}
	assert.InDelta(t, 0.5+0.5+6-4, ops.DotProductUnsafe(a, b), 1e-12)

	dst := make([]float64, 3)
	ops.ConvolveValid(dst, []float64{1, 2, 3, 4}, []float64{1, -1})
	assert.InDeltaSlice(t, []float64{-1, -1, -1}, dst, 1e-12)
}

func TestFor_Float32(t *testing.T) {
	ops := For[float32]()

	a := []float32{1, 2, 3}
	assert.InDelta(t, float32(14), ops.DotProductUnsafe(a, a), 1e-6)

	dst := make([]float32, 2)
	ops.ConvolveValid(dst, []float32{1, 2, 3}, []float32{0.5, 0.5})
	assert.InDeltaSlice(t, []float32{1.5, 2.5}, dst, 1e-6)
}

func TestFor_ReturnsSharedTable(t *testing.T) {
	assert.Same(t, For[float64](), For[float64]())
	assert.Same(t, For[float32](), For[float32]())
}

func BenchmarkDotProduct181(b *testing.B) {
	ops := For[float64]()
	x := make([]float64, 181)
	h := make([]float64, 181)
	for i := range x {
		x[i] = float64(i) * 0.01
		h[i] = 1.0 / 181
	}

	b.ReportAllocs()
	for b.Loop() {
		_ = ops.DotProductUnsafe(x, h)
	}
}
