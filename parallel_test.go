package demodulation

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tphakala/go-demodulation/internal/filter"
	"github.com/tphakala/go-demodulation/internal/synth"
	"github.com/tphakala/go-demodulation/internal/testutil"
	"gonum.org/v1/gonum/mat"
)

const (
	testSampleRate = 400.0
	testCarrier    = 2.5
)

// testSignal synthesizes the reference harmonics on a fixed seed.
func testSignal(t testing.TB, channels, samples int) (*mat.Dense, []float64) {
	t.Helper()
	tv, err := synth.TimeVector(samples, testSampleRate)
	require.NoError(t, err)
	signal, err := synth.Synthesize(synth.DefaultHarmonics(), tv, channels, synth.DefaultOptions().WithSeed(42))
	require.NoError(t, err)
	return signal, tv
}

// testTaps designs the reference 10 Hz low-pass filter with the given ripple.
func testTaps(t testing.TB, rippleDB float64) []float64 {
	t.Helper()
	d, err := filter.DesignLowPass(filter.Spec{
		RippleDB:     rippleDB,
		TransitionHz: 5,
		CutoffHz:     10,
		SampleRate:   testSampleRate,
	})
	require.NoError(t, err)
	return d.Taps
}

func TestProcess_Shape(t *testing.T) {
	signal, tv := testSignal(t, 8, 2001)
	taps := testTaps(t, 40)
	require.Len(t, taps, 181)

	result, err := Demodulate(signal, tv, taps, testCarrier)
	require.NoError(t, err)

	testutil.AssertShape(t, result.I, 8, 2001-181+1)
	testutil.AssertShape(t, result.Q, 8, 2001-181+1)
	assert.Equal(t, 8, result.Channels())
	assert.Equal(t, 2001-181+1, result.Samples())
	assert.Len(t, result.Time, result.Samples())
	assert.Equal(t, 90, result.Delay)
	assert.Equal(t, 1, result.Decimation)
}

func TestProcess_TimeAlignment(t *testing.T) {
	signal, tv := testSignal(t, 2, 1000)
	d, err := New(&Config{CarrierFrequency: testCarrier, Taps: testTaps(t, 40), Decimation: 3})
	require.NoError(t, err)

	result, err := d.Process(signal, tv)
	require.NoError(t, err)
	for k, ts := range result.Time {
		assert.Equal(t, tv[90+3*k], ts)
	}
}

// TestProcessParallel verifies that parallel processing is bit-identical to
// sequential processing on both convolution paths.
func TestProcessParallel(t *testing.T) {
	tests := []struct {
		name       string
		ripple     float64
		decimation int
		precision  Precision
	}{
		{"direct", 40, 1, PrecisionFloat64},
		{"direct decimated", 40, 4, PrecisionFloat64},
		{"fft", 90, 1, PrecisionFloat64},
		{"fft decimated", 90, 5, PrecisionFloat64},
		{"float32", 40, 2, PrecisionFloat32},
	}

	signal, tv := testSignal(t, 13, 3001)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			base := Config{
				CarrierFrequency: testCarrier,
				Taps:             testTaps(t, tt.ripple),
				Decimation:       tt.decimation,
				Precision:        tt.precision,
			}
			seqCfg := base
			parCfg := base
			parCfg.EnableParallel = true
			parCfg.Workers = 4

			seq, err := New(&seqCfg)
			require.NoError(t, err)
			par, err := New(&parCfg)
			require.NoError(t, err)

			want, err := seq.Process(signal, tv)
			require.NoError(t, err)
			got, err := par.Process(signal, tv)
			require.NoError(t, err)

			assert.Equal(t, want.I.RawMatrix().Data, got.I.RawMatrix().Data)
			assert.Equal(t, want.Q.RawMatrix().Data, got.Q.RawMatrix().Data)
			assert.Equal(t, want.Time, got.Time)
		})
	}
}

func TestProcess_FFTPathSelected(t *testing.T) {
	taps := testTaps(t, 90)
	require.GreaterOrEqual(t, len(taps), 400)

	d, err := New(&Config{CarrierFrequency: testCarrier, Taps: taps})
	require.NoError(t, err)
	assert.Equal(t, "fft", d.Info().Algorithm)
}

func TestProcess_Idempotent(t *testing.T) {
	signal, tv := testSignal(t, 5, 1500)
	before := mat.DenseCopyOf(signal)

	d, err := New(&Config{CarrierFrequency: testCarrier, Taps: testTaps(t, 40), EnableParallel: true})
	require.NoError(t, err)

	first, err := d.Process(signal, tv)
	require.NoError(t, err)
	second, err := d.Process(signal, tv)
	require.NoError(t, err)

	assert.True(t, mat.Equal(first.I, second.I))
	assert.True(t, mat.Equal(first.Q, second.Q))
	assert.True(t, mat.Equal(before, signal), "input must not be modified")
}

func TestProcess_RecoversToneAmplitudeAndPhase(t *testing.T) {
	const (
		carrier  = 40.0
		samples  = 4001
		channels = 6
	)
	tv := make([]float64, samples)
	for i := range tv {
		tv[i] = float64(i) / testSampleRate
	}

	amps := make([]float64, channels)
	phases := make([]float64, channels)
	signal := mat.NewDense(channels, samples, nil)
	for ch := range channels {
		amps[ch] = 0.5 + float64(ch)*0.3
		phases[ch] = -2.5 + float64(ch)*0.9
		for i, ti := range tv {
			signal.Set(ch, i, amps[ch]*math.Cos(2*math.Pi*carrier*ti+phases[ch]))
		}
	}

	result, err := Demodulate(signal, tv, testTaps(t, 60), carrier)
	require.NoError(t, err)

	amp := result.Amplitude()
	phase := result.Phase()
	for ch := range channels {
		for k := 0; k < result.Samples(); k += 97 {
			assert.InDelta(t, amps[ch], amp.At(ch, k), 5e-3, "amplitude ch %d k %d", ch, k)
			assert.InDelta(t, phases[ch], phase.At(ch, k), 5e-3, "phase ch %d k %d", ch, k)
		}
	}
}

func TestDemodulateFloat32_CloseToFloat64(t *testing.T) {
	signal, tv := testSignal(t, 4, 2000)
	taps := testTaps(t, 40)

	want, err := Demodulate(signal, tv, taps, testCarrier)
	require.NoError(t, err)
	got, err := DemodulateFloat32(signal, tv, taps, testCarrier)
	require.NoError(t, err)

	// Synthesized amplitudes reach ~30, so the bound is absolute.
	testutil.AssertMatrixInDelta(t, want.I, got.I, 1e-3)
	testutil.AssertMatrixInDelta(t, want.Q, got.Q, 1e-3)
}

func TestProcess_Errors(t *testing.T) {
	signal, tv := testSignal(t, 2, 100)
	d, err := New(&Config{CarrierFrequency: testCarrier, Taps: testTaps(t, 40)})
	require.NoError(t, err)

	_, err = d.Process(signal, tv[:99])
	require.ErrorIs(t, err, ErrShapeMismatch)

	_, err = d.Process(signal, tv)
	require.ErrorIs(t, err, ErrSignalTooShort, "100 samples < 181 taps")

	_, err = d.Process(nil, nil)
	require.ErrorIs(t, err, ErrSignalTooShort)

	_, err = d.Process(&mat.Dense{}, nil)
	require.ErrorIs(t, err, ErrSignalTooShort)

	_, err = Demodulate(signal, tv, []float64{1, 1}, testCarrier)
	require.ErrorIs(t, err, ErrInvalidConfig)
}

func TestProcess_SingleChannelParallel(t *testing.T) {
	signal, tv := testSignal(t, 1, 500)
	d, err := New(&Config{CarrierFrequency: testCarrier, Taps: testTaps(t, 40), EnableParallel: true, Workers: 16})
	require.NoError(t, err)
	assert.Equal(t, 1, d.workerCount(1))

	result, err := d.Process(signal, tv)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Channels())
}
