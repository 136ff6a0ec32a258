package main

import (
	"fmt"

	"github.com/spf13/cobra"
	demodulation "github.com/tphakala/go-demodulation"
	"github.com/tphakala/go-demodulation/internal/synth"
	"github.com/tphakala/go-demodulation/internal/wavio"
)

func newDemodCmd(a *app) *cobra.Command {
	var (
		sf        scenarioFlags
		bitDepth  int
		phasePath string
	)

	cmd := &cobra.Command{
		Use:   "demod [flags] input.wav output.wav",
		Short: "Demodulate every channel of a WAV file and write the amplitude envelope",
		Long: `demod reads a multi-channel WAV file, mixes every channel down from the
carrier, low-pass filters the quadrature products and writes the amplitude
envelope 2*sqrt(I^2+Q^2) as a WAV file at sample-rate/decimation. The
filter is designed for the sample rate of the input file.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := sf.resolve(cmd.Flags())
			if err != nil {
				return err
			}

			signal, rate, err := wavio.ReadMatrix(args[0])
			if err != nil {
				return err
			}
			channels, samples := signal.Dims()
			a.log.Info("input read", "path", args[0], "channels", channels, "samples", samples, "rate", rate)

			s.SampleRate = float64(rate)
			s.Samples = samples
			s.Channels = channels

			design, err := s.DesignFilter()
			if err != nil {
				return err
			}
			t, err := synth.TimeVector(samples, s.SampleRate)
			if err != nil {
				return err
			}
			cfg, err := s.DemodulatorConfig(design.Taps)
			if err != nil {
				return err
			}
			d, err := demodulation.New(cfg)
			if err != nil {
				return err
			}

			result, err := d.Process(signal, t)
			if err != nil {
				return err
			}
			outRate := rate / d.Config().Decimation
			if outRate*d.Config().Decimation != rate {
				a.log.Warn("output sample rate truncated", "input_rate", rate, "decimation", d.Config().Decimation, "output_rate", outRate)
			}

			if _, err := wavio.WriteMatrix(args[1], result.Amplitude(), outRate, bitDepth); err != nil {
				return err
			}
			if phasePath != "" {
				if _, err := wavio.WriteMatrix(phasePath, result.Phase(), outRate, bitDepth); err != nil {
					return err
				}
			}

			a.log.Info("envelope written", "path", args[1], "samples", result.Samples(),
				"delay", result.Delay, "taps", design.NumTaps, "algorithm", d.Info().Algorithm, "simd", d.Info().SIMD)
			fmt.Fprintf(cmd.OutOrStdout(), "Demodulated %s -> %s\n  %d channels, %d -> %d samples, %d Hz -> %d Hz, carrier %g Hz, %d taps\n",
				args[0], args[1], channels, samples, result.Samples(), rate, outRate, s.CarrierFrequency, design.NumTaps)
			return nil
		},
	}

	fs := cmd.Flags()
	sf.registerConfig(fs)
	sf.registerFilter(fs)
	sf.registerDemod(fs)
	fs.IntVar(&bitDepth, "bits", defaultBitDepth, "output WAV bit depth: 16, 24 or 32")
	fs.StringVar(&phasePath, "phase", "", "also write the phase (normalized to its peak) to this WAV file")
	return cmd
}
