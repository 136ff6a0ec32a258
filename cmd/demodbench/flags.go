package main

import (
	"github.com/spf13/pflag"
	"github.com/tphakala/go-demodulation/internal/scenario"
)

// scenarioFlags holds the command-line overrides of a scenario. A flag only
// takes effect when it was set explicitly, so values from --config survive.
type scenarioFlags struct {
	config string

	sampleRate float64
	samples    int
	channels   int
	seed       uint64
	noise      float64
	perturb    float64

	carrier    float64
	ripple     float64
	transition float64
	cutoff     float64
	window     string

	decimation int
	workers    int
	parallel   bool
	precision  string
}

// registerConfig adds --config.
func (f *scenarioFlags) registerConfig(fs *pflag.FlagSet) {
	fs.StringVarP(&f.config, "config", "c", "", "scenario YAML file (flags override its values)")
}

// registerRate adds --sample-rate.
func (f *scenarioFlags) registerRate(fs *pflag.FlagSet) {
	fs.Float64Var(&f.sampleRate, "sample-rate", scenario.Default().SampleRate, "sample rate in Hz")
}

// registerSignal adds the synthesis flags other than the sample rate.
func (f *scenarioFlags) registerSignal(fs *pflag.FlagSet) {
	d := scenario.Default()
	fs.IntVar(&f.samples, "samples", d.Samples, "samples per channel")
	fs.IntVar(&f.channels, "channels", d.Channels, "number of channels")
	fs.Uint64Var(&f.seed, "seed", 0, "random seed (default: fresh seed per run)")
	fs.Float64Var(&f.noise, "noise", d.Synthesis.NoiseFactor, "noise standard deviation relative to amplitude")
	fs.Float64Var(&f.perturb, "perturb", d.Synthesis.PerturbProbability, "per-channel amplitude/phase perturbation probability")
}

// registerFilter adds the filter design flags.
func (f *scenarioFlags) registerFilter(fs *pflag.FlagSet) {
	d := scenario.Default()
	fs.Float64Var(&f.ripple, "ripple", d.RippleDB, "pass/stop band ripple in dB")
	fs.Float64Var(&f.transition, "transition", d.TransitionHz, "transition band width in Hz")
	fs.Float64Var(&f.cutoff, "cutoff", d.CutoffHz, "low-pass cutoff in Hz")
	fs.StringVar(&f.window, "window", d.Window, "window: kaiser, hamming, hann, blackman, blackmanharris, boxcar")
}

// registerDemod adds the demodulator flags.
func (f *scenarioFlags) registerDemod(fs *pflag.FlagSet) {
	d := scenario.Default()
	fs.Float64Var(&f.carrier, "carrier", d.CarrierFrequency, "carrier frequency in Hz")
	fs.IntVar(&f.decimation, "decimation", d.Decimation, "keep every n-th filtered sample")
	fs.IntVar(&f.workers, "workers", d.Workers, "worker goroutines (0 = GOMAXPROCS)")
	fs.BoolVar(&f.parallel, "parallel", d.Parallel, "demodulate channels in parallel")
	fs.StringVar(&f.precision, "precision", d.Precision, "processing precision: float64 or float32")
}

// resolve loads the base scenario and applies the flags that were set.
func (f *scenarioFlags) resolve(fs *pflag.FlagSet) (*scenario.Scenario, error) {
	s := scenario.Default()
	if f.config != "" {
		loaded, err := scenario.Load(f.config)
		if err != nil {
			return nil, err
		}
		s = loaded
	}

	set := func(name string, apply func()) {
		if flag := fs.Lookup(name); flag != nil && flag.Changed {
			apply()
		}
	}

	set("sample-rate", func() { s.SampleRate = f.sampleRate })
	set("samples", func() { s.Samples = f.samples })
	set("channels", func() { s.Channels = f.channels })
	set("seed", func() { s.Synthesis = s.Synthesis.WithSeed(f.seed) })
	set("noise", func() { s.Synthesis.NoiseFactor = f.noise })
	set("perturb", func() { s.Synthesis.PerturbProbability = f.perturb })
	set("carrier", func() { s.CarrierFrequency = f.carrier })
	set("ripple", func() { s.RippleDB = f.ripple })
	set("transition", func() { s.TransitionHz = f.transition })
	set("cutoff", func() { s.CutoffHz = f.cutoff })
	set("window", func() { s.Window = f.window })
	set("decimation", func() { s.Decimation = f.decimation })
	set("workers", func() { s.Workers = f.workers })
	set("parallel", func() { s.Parallel = f.parallel })
	set("precision", func() { s.Precision = f.precision })

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}
