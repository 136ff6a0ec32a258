package main

import (
	"fmt"
	"math"

	"github.com/spf13/cobra"
	"github.com/tphakala/go-demodulation/internal/wavio"
)

func newSynthCmd(a *app) *cobra.Command {
	var (
		sf       scenarioFlags
		bitDepth int
	)

	cmd := &cobra.Command{
		Use:   "synth [flags] output.wav",
		Short: "Synthesize the test signal and write it as a multi-channel WAV file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := sf.resolve(cmd.Flags())
			if err != nil {
				return err
			}
			rate := int(math.Round(s.SampleRate))
			if float64(rate) != s.SampleRate {
				return fmt.Errorf("WAV output needs an integer sample rate, got %g Hz", s.SampleRate)
			}

			in, err := s.Prepare()
			if err != nil {
				return err
			}

			scale, err := wavio.WriteMatrix(args[0], in.Signal, rate, bitDepth)
			if err != nil {
				return err
			}
			a.log.Info("signal written",
				"path", args[0], "channels", s.Channels, "samples", s.Samples,
				"rate", rate, "bits", bitDepth, "scale", scale)

			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s: %d channels x %d samples at %d Hz, %d-bit (scale %.6g)\n",
				args[0], s.Channels, s.Samples, rate, bitDepth, scale)
			return nil
		},
	}

	fs := cmd.Flags()
	sf.registerConfig(fs)
	sf.registerRate(fs)
	sf.registerSignal(fs)
	fs.IntVar(&bitDepth, "bits", defaultBitDepth, "WAV bit depth: 16, 24 or 32")
	return cmd
}
