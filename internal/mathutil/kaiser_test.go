package mathutil

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKaiserBeta(t *testing.T) {
	tests := []struct {
		name        string
		attenuation float64
		want        float64
	}{
		{"below_21_db", 15.0, 0.0},
		{"at_21_db", 21.0, 0.0},
		{"40_db", 40.0, 3.3953},
		{"50_db", 50.0, 4.5335},
		{"60_db", 60.0, 5.65326},
		{"100_db", 100.0, 10.06126},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, KaiserBeta(tt.attenuation), 1e-3)
		})
	}
}

func TestKaiserBeta_NonDecreasing(t *testing.T) {
	prev := KaiserBeta(0)
	for att := 1.0; att <= 150; att++ {
		curr := KaiserBeta(att)
		assert.GreaterOrEqual(t, curr, prev, "beta decreased at %v dB", att)
		prev = curr
	}
}

func TestKaiserLength(t *testing.T) {
	// 40 dB with a 5 Hz transition at 400 Hz sampling.
	n := KaiserLength(40, 5.0/200.0)
	assert.InDelta(t, 179.588, n, 1e-3)
	assert.Equal(t, 180.0, math.Ceil(n))

	n = KaiserLength(60, 0.1)
	assert.Equal(t, 74.0, math.Ceil(n))
}

func TestKaiserAttenuation_InvertsLength(t *testing.T) {
	const width = 0.05
	for _, att := range []float64{20, 40, 65, 90} {
		n := KaiserLength(att, width)
		// Feed back the exact (unrounded) length.
		got := kaiserLengthMultiplier*(n-1)*math.Pi*width + kaiserLengthOffset
		assert.InDelta(t, att, got, 1e-9)
	}
	assert.Greater(t, KaiserAttenuation(181, 0.025), 40.0)
}

func TestNextOdd(t *testing.T) {
	assert.Equal(t, 1, NextOdd(0))
	assert.Equal(t, 1, NextOdd(1))
	assert.Equal(t, 181, NextOdd(180))
	assert.Equal(t, 181, NextOdd(181))
}
