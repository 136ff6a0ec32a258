// Package scenario ties synthesis, filter design, demodulation and timing
// into one repeatable benchmark definition that can be stored as YAML.
package scenario

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	demodulation "github.com/tphakala/go-demodulation"
	"github.com/tphakala/go-demodulation/internal/bench"
	"github.com/tphakala/go-demodulation/internal/filter"
	"github.com/tphakala/go-demodulation/internal/synth"
	"gonum.org/v1/gonum/mat"
	"gopkg.in/yaml.v3"
)

// ErrInvalidScenario indicates a scenario that cannot be run.
var ErrInvalidScenario = errors.New("invalid scenario")

// Scenario describes one benchmark workload.
type Scenario struct {
	SampleRate float64          `yaml:"sample_rate"`
	Samples    int              `yaml:"samples"`
	Channels   int              `yaml:"channels"`
	Harmonics  []synth.Harmonic `yaml:"harmonics"`
	Synthesis  synth.Options    `yaml:"synthesis"`

	CarrierFrequency float64 `yaml:"carrier_frequency"`
	RippleDB         float64 `yaml:"ripple_db"`
	TransitionHz     float64 `yaml:"transition_hz"`
	CutoffHz         float64 `yaml:"cutoff_hz"`
	Window           string  `yaml:"window"`

	Decimation int    `yaml:"decimation"`
	Workers    int    `yaml:"workers"`
	Parallel   bool   `yaml:"parallel"`
	Precision  string `yaml:"precision"`
}

// Default returns the reference workload: 401 channels of 5001 samples at
// 400 Hz, demodulated at 2.5 Hz through a 40 dB Kaiser low-pass with a 5 Hz
// transition band and 10 Hz cutoff.
func Default() *Scenario {
	return &Scenario{
		SampleRate:       defaultSampleRate,
		Samples:          defaultSamples,
		Channels:         defaultChannels,
		Harmonics:        synth.DefaultHarmonics(),
		Synthesis:        synth.DefaultOptions(),
		CarrierFrequency: defaultCarrierFrequency,
		RippleDB:         defaultRippleDB,
		TransitionHz:     defaultTransitionHz,
		CutoffHz:         defaultCutoffHz,
		Window:           filter.WindowKaiser.String(),
		Decimation:       defaultDecimation,
		Parallel:         true,
		Precision:        demodulation.PrecisionFloat64.String(),
	}
}

// Load reads a YAML scenario from path. Fields missing from the file keep
// their Default values.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario: %w", err)
	}
	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Parse decodes a YAML scenario over the defaults. Unknown keys are errors.
func Parse(data []byte) (*Scenario, error) {
	s := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(s); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: %w", ErrInvalidScenario, err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Write encodes s as YAML.
func (s *Scenario) Write(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(yamlIndent)
	if err := enc.Encode(s); err != nil {
		return err
	}
	return enc.Close()
}

// Validate checks the fields that are not validated by the synthesis,
// design and demodulation steps themselves.
func (s *Scenario) Validate() error {
	if !(s.SampleRate > 0) || math.IsInf(s.SampleRate, 0) {
		return fmt.Errorf("%w: sample rate %v", ErrInvalidScenario, s.SampleRate)
	}
	if s.Samples < 1 {
		return fmt.Errorf("%w: samples %d", ErrInvalidScenario, s.Samples)
	}
	if s.Channels < 1 {
		return fmt.Errorf("%w: channels %d", ErrInvalidScenario, s.Channels)
	}
	for i, h := range s.Harmonics {
		if err := h.Validate(); err != nil {
			return fmt.Errorf("%w: harmonic %d: %w", ErrInvalidScenario, i, err)
		}
	}
	if err := s.Synthesis.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidScenario, err)
	}
	if _, err := filter.ParseWindowKind(s.Window); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidScenario, err)
	}
	if _, err := demodulation.ParsePrecision(s.Precision); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidScenario, err)
	}
	if s.Decimation < 0 || s.Workers < 0 {
		return fmt.Errorf("%w: decimation %d, workers %d", ErrInvalidScenario, s.Decimation, s.Workers)
	}
	return nil
}

// FilterSpec returns the low-pass specification of the scenario.
func (s *Scenario) FilterSpec() (filter.Spec, error) {
	spec := filter.Spec{
		RippleDB:     s.RippleDB,
		TransitionHz: s.TransitionHz,
		CutoffHz:     s.CutoffHz,
		SampleRate:   s.SampleRate,
	}
	kind, err := filter.ParseWindowKind(s.Window)
	if err != nil {
		return spec, err
	}
	if kind != filter.WindowKaiser {
		spec.Window = &filter.Window{Kind: kind}
	}
	return spec, nil
}

// DesignFilter runs kaiserord and firwin for the scenario.
func (s *Scenario) DesignFilter() (*filter.Design, error) {
	spec, err := s.FilterSpec()
	if err != nil {
		return nil, err
	}
	return filter.DesignLowPass(spec)
}

// DemodulatorConfig returns the demodulator configuration for taps.
func (s *Scenario) DemodulatorConfig(taps []float64) (*demodulation.Config, error) {
	precision, err := demodulation.ParsePrecision(s.Precision)
	if err != nil {
		return nil, err
	}
	return &demodulation.Config{
		CarrierFrequency: s.CarrierFrequency,
		Taps:             taps,
		Decimation:       s.Decimation,
		Workers:          s.Workers,
		EnableParallel:   s.Parallel,
		Precision:        precision,
	}, nil
}

// Inputs are the prepared demodulator inputs of a scenario.
type Inputs struct {
	Signal *mat.Dense
	Time   []float64
	Taps   []float64
	Beta   float64
}

// Prepare synthesizes the signal and designs the filter.
func (s *Scenario) Prepare() (*Inputs, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}

	t, err := synth.TimeVector(s.Samples, s.SampleRate)
	if err != nil {
		return nil, err
	}
	signal, err := synth.Synthesize(s.Harmonics, t, s.Channels, s.Synthesis)
	if err != nil {
		return nil, fmt.Errorf("synthesis failed: %w", err)
	}

	design, err := s.DesignFilter()
	if err != nil {
		return nil, fmt.Errorf("filter design failed: %w", err)
	}

	return &Inputs{
		Signal: signal,
		Time:   t,
		Taps:   design.Taps,
		Beta:   design.Beta,
	}, nil
}

// Report is the outcome of a scenario run.
type Report struct {
	Scenario *Scenario
	Inputs   *Inputs
	Info     demodulation.Info

	// Result is the output of the last timed call.
	Result *demodulation.Result
	Timing *bench.Result
}

// Run prepares the inputs and times the demodulator on them.
func (s *Scenario) Run(opts bench.Options) (*Report, error) {
	in, err := s.Prepare()
	if err != nil {
		return nil, err
	}
	return s.RunWith(in, opts)
}

// RunWith times the demodulator on already prepared inputs.
func (s *Scenario) RunWith(in *Inputs, opts bench.Options) (*Report, error) {
	cfg, err := s.DemodulatorConfig(in.Taps)
	if err != nil {
		return nil, err
	}
	d, err := demodulation.New(cfg)
	if err != nil {
		return nil, err
	}

	var last *demodulation.Result
	timing, err := bench.Run(func() error {
		r, err := d.Process(in.Signal, in.Time)
		last = r
		return err
	}, opts)
	if err != nil {
		return nil, fmt.Errorf("benchmark failed: %w", err)
	}

	return &Report{
		Scenario: s,
		Inputs:   in,
		Info:     d.Info(),
		Result:   last,
		Timing:   timing,
	}, nil
}
