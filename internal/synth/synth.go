// Package synth builds the noisy multi-harmonic, multi-channel test signals
// fed to the demodulator.
//
// Each channel is an independent realization of the same harmonic content.
// Per harmonic, a coin flip per channel boosts that channel's amplitude
// baseline and a second, independent flip shifts its phase baseline; noise
// is then drawn with a standard deviation proportional to the boosted
// amplitude.
package synth

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"
)

// Synthesis errors.
var (
	// ErrInvalidChannels indicates a channel count below one.
	ErrInvalidChannels = errors.New("channel count must be at least 1")

	// ErrEmptyTimeVector indicates a time vector without samples.
	ErrEmptyTimeVector = errors.New("time vector is empty")

	// ErrInvalidHarmonic indicates a harmonic with a negative amplitude or
	// non-finite fields.
	ErrInvalidHarmonic = errors.New("invalid harmonic")

	// ErrInvalidOptions indicates out-of-range synthesis options.
	ErrInvalidOptions = errors.New("invalid synthesis options")

	// ErrInvalidSampleRate indicates a non-positive sample rate.
	ErrInvalidSampleRate = errors.New("sample rate must be positive")
)

// Harmonic is one sinusoidal component of the test signal.
type Harmonic struct {
	Frequency float64 `yaml:"frequency"`
	Amplitude float64 `yaml:"amplitude"`
	Phase     float64 `yaml:"phase"`
}

// Validate reports whether h can be synthesized.
func (h Harmonic) Validate() error {
	for _, v := range [...]float64{h.Frequency, h.Amplitude, h.Phase} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: non-finite field in %+v", ErrInvalidHarmonic, h)
		}
	}
	if h.Amplitude < 0 {
		return fmt.Errorf("%w: negative amplitude %v", ErrInvalidHarmonic, h.Amplitude)
	}
	return nil
}

// DefaultHarmonics returns the reference four-component test signal.
func DefaultHarmonics() []Harmonic {
	return []Harmonic{
		{Frequency: 1, Amplitude: 0.5, Phase: 0},
		{Frequency: 0.4, Amplitude: 2.5, Phase: math.Pi/2 + 0.1},
		{Frequency: 0.2, Amplitude: 15.3, Phase: math.Pi / 2},
		{Frequency: 0.1, Amplitude: 23.45, Phase: math.Pi/2 + 0.8},
	}
}

// Options controls the stochastic parts of the synthesis.
type Options struct {
	// Seed fixes the random source. Nil draws a fresh seed per call.
	Seed *uint64 `yaml:"seed,omitempty"`

	// PerturbProbability is the chance that a channel's amplitude (and,
	// independently, its phase) baseline is perturbed. In [0, 1].
	PerturbProbability float64 `yaml:"perturb_probability"`

	// AmplitudeJitter is the relative amplitude boost of a perturbed channel.
	AmplitudeJitter float64 `yaml:"amplitude_jitter"`

	// PhaseJitter is the relative phase shift of a perturbed channel.
	PhaseJitter float64 `yaml:"phase_jitter"`

	// NoiseFactor scales the per-sample noise standard deviation relative to
	// the channel's perturbed amplitude. Zero disables noise.
	NoiseFactor float64 `yaml:"noise_factor"`
}

// DefaultOptions returns the reference synthesis settings: fair coin flips,
// +20% amplitude, +50% phase, noise at 0.8× the perturbed amplitude.
func DefaultOptions() Options {
	return Options{
		PerturbProbability: defaultPerturbProbability,
		AmplitudeJitter:    defaultAmplitudeJitter,
		PhaseJitter:        defaultPhaseJitter,
		NoiseFactor:        defaultNoiseFactor,
	}
}

// WithSeed returns a copy of o using a fixed seed.
func (o Options) WithSeed(seed uint64) Options {
	o.Seed = &seed
	return o
}

// Validate checks the option ranges.
func (o Options) Validate() error {
	if !(o.PerturbProbability >= 0 && o.PerturbProbability <= 1) {
		return fmt.Errorf("%w: perturb probability %v not in [0, 1]", ErrInvalidOptions, o.PerturbProbability)
	}
	if !(o.NoiseFactor >= 0) || math.IsInf(o.NoiseFactor, 0) {
		return fmt.Errorf("%w: noise factor %v", ErrInvalidOptions, o.NoiseFactor)
	}
	if math.IsNaN(o.AmplitudeJitter) || math.IsInf(o.AmplitudeJitter, 0) ||
		math.IsNaN(o.PhaseJitter) || math.IsInf(o.PhaseJitter, 0) {
		return fmt.Errorf("%w: non-finite jitter", ErrInvalidOptions)
	}
	return nil
}

// TimeVector returns samples uniformly spaced instants t[i] = i/sampleRate.
func TimeVector(samples int, sampleRate float64) ([]float64, error) {
	if samples < 1 {
		return nil, ErrEmptyTimeVector
	}
	if !(sampleRate > 0) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSampleRate, sampleRate)
	}
	t := make([]float64, samples)
	for i := range t {
		t[i] = float64(i) / sampleRate
	}
	return t, nil
}

// Synthesize returns a channels × len(t) matrix holding the superposition of
// all harmonics plus noise.
//
// For every harmonic the random draws happen in a fixed order: one amplitude
// flip per channel, one phase flip per channel, then the noise samples in
// row-major order. With a fixed seed the output is bit-identical across runs.
func Synthesize(harmonics []Harmonic, t []float64, channels int, opts Options) (*mat.Dense, error) {
	if channels < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidChannels, channels)
	}
	if len(t) == 0 {
		return nil, ErrEmptyTimeVector
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	for i, h := range harmonics {
		if err := h.Validate(); err != nil {
			return nil, fmt.Errorf("harmonic %d: %w", i, err)
		}
	}

	samples := len(t)
	signal := mat.NewDense(channels, samples, nil)
	src := newSource(opts.Seed)

	flip := distuv.Bernoulli{P: opts.PerturbProbability, Src: src}
	noise := distuv.Normal{Mu: 0, Sigma: 1, Src: src}

	ampl := make([]float64, channels)
	phase := make([]float64, channels)

	for _, h := range harmonics {
		for ch := range channels {
			ampl[ch] = h.Amplitude + opts.AmplitudeJitter*h.Amplitude*flip.Rand()
		}
		for ch := range channels {
			phase[ch] = h.Phase + opts.PhaseJitter*h.Phase*flip.Rand()
		}

		omega := 2 * math.Pi * h.Frequency
		for ch := range channels {
			row := signal.RawRowView(ch)
			a, p := ampl[ch], phase[ch]
			sigma := opts.NoiseFactor * a

			for i, ti := range t {
				x := a * math.Cos(omega*ti+p)
				if sigma > 0 {
					x += sigma * noise.Rand()
				}
				row[i] += x
			}
		}
	}

	return signal, nil
}

// newSource returns a PCG source seeded from seed, or from the runtime's
// random generator when seed is nil.
func newSource(seed *uint64) rand.Source {
	var s uint64
	if seed != nil {
		s = *seed
	} else {
		s = rand.Uint64()
	}
	return rand.NewPCG(s, s^pcgStreamSalt)
}
