package scenario

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tphakala/go-demodulation/internal/bench"
	"github.com/tphakala/go-demodulation/internal/synth"
	"github.com/tphakala/go-demodulation/internal/testutil"
)

func TestDefault(t *testing.T) {
	s := Default()
	require.NoError(t, s.Validate())

	assert.InDelta(t, 400.0, s.SampleRate, 0)
	assert.Equal(t, 5001, s.Samples)
	assert.Equal(t, 401, s.Channels)
	assert.Len(t, s.Harmonics, 4)
	assert.InDelta(t, 2.5, s.CarrierFrequency, 0)
	assert.Equal(t, "kaiser", s.Window)

	design, err := s.DesignFilter()
	require.NoError(t, err)
	assert.Equal(t, 181, design.NumTaps)
	assert.InDelta(t, 3.3953, design.Beta, 1e-4)
}

func TestParse_OverridesDefaults(t *testing.T) {
	s, err := Parse([]byte(`
channels: 3
samples: 1000
precision: float32
synthesis:
  seed: 7
  noise_factor: 0
harmonics:
  - {frequency: 1, amplitude: 0.5, phase: 0}
`))
	require.NoError(t, err)

	assert.Equal(t, 3, s.Channels)
	assert.Equal(t, 1000, s.Samples)
	assert.Equal(t, "float32", s.Precision)
	require.NotNil(t, s.Synthesis.Seed)
	assert.Equal(t, uint64(7), *s.Synthesis.Seed)
	assert.InDelta(t, 0.0, s.Synthesis.NoiseFactor, 0)
	assert.InDelta(t, 0.5, s.Synthesis.PerturbProbability, 0, "untouched keys keep defaults")
	assert.Equal(t, []synth.Harmonic{{Frequency: 1, Amplitude: 0.5}}, s.Harmonics)
	assert.InDelta(t, 2.5, s.CarrierFrequency, 0)
}

func TestParse_Empty(t *testing.T) {
	s, err := Parse(nil)
	require.NoError(t, err)
	assert.Equal(t, Default(), s)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"unknown key", "chanels: 3"},
		{"bad type", "channels: many"},
		{"zero channels", "channels: 0"},
		{"bad window", "window: triangle"},
		{"bad precision", "precision: half"},
		{"negative amplitude", "harmonics: [{frequency: 1, amplitude: -1, phase: 0}]"},
		{"bad probability", "synthesis: {perturb_probability: 2}"},
		{"negative sample rate", "sample_rate: -400"},
		{"negative workers", "workers: -1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			assert.ErrorIs(t, err, ErrInvalidScenario)
		})
	}
}

func TestLoad_RoundTrip(t *testing.T) {
	s := Default()
	s.Channels = 2
	s.Synthesis = s.Synthesis.WithSeed(99)

	var buf bytes.Buffer
	require.NoError(t, s.Write(&buf))

	path := filepath.Join(t.TempDir(), "scenario.yaml")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o600))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, s, loaded)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestFilterSpec_WindowOverride(t *testing.T) {
	s := Default()
	s.Window = "hamming"
	design, err := s.DesignFilter()
	require.NoError(t, err)
	assert.Equal(t, "hamming", design.Window.String())
	assert.Equal(t, 181, design.NumTaps)
}

// TestPrepare_CleanSingleHarmonic checks the end-to-end synthesis of one
// unperturbed, noise-free harmonic.
func TestPrepare_CleanSingleHarmonic(t *testing.T) {
	s := Default()
	s.Channels = 1
	s.Harmonics = []synth.Harmonic{{Frequency: 1, Amplitude: 0.5, Phase: 0}}
	s.Synthesis = synth.Options{NoiseFactor: 0, PerturbProbability: 0}

	in, err := s.Prepare()
	require.NoError(t, err)
	testutil.AssertShape(t, in.Signal, 1, 5001)
	require.Len(t, in.Time, 5001)

	for i, ti := range in.Time {
		assert.InDelta(t, 0.5*math.Cos(2*math.Pi*ti), in.Signal.At(0, i), 1e-12)
	}
	testutil.AssertOddLength(t, in.Taps)
	testutil.AssertDCGain(t, in.Taps, 1, 1e-12)
}

func TestRun(t *testing.T) {
	s := Default()
	s.Channels = 4
	s.Samples = 1001
	s.Synthesis = s.Synthesis.WithSeed(1)
	s.Workers = 2

	rep, err := s.Run(bench.Options{Repeat: 2, Loops: 1})
	require.NoError(t, err)

	require.NotNil(t, rep.Result)
	assert.Equal(t, 4, rep.Result.Channels())
	assert.Equal(t, 1001-181+1, rep.Result.Samples())
	assert.Equal(t, 2, rep.Timing.Repeat)
	assert.Equal(t, 1, rep.Timing.Loops)
	assert.Equal(t, "direct", rep.Info.Algorithm)
	assert.Same(t, s, rep.Scenario)
}

func TestRun_SignalShorterThanFilter(t *testing.T) {
	s := Default()
	s.Channels = 1
	s.Samples = 100

	_, err := s.Run(bench.Options{Repeat: 1, Loops: 1})
	assert.Error(t, err)
}
