package main

import (
	"log/slog"

	"github.com/spf13/cobra"
)

// app carries state shared by the subcommands.
type app struct {
	logLevel  string
	logFormat string
	log       *slog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{log: slog.Default()}

	root := &cobra.Command{
		Use:   "demodbench",
		Short: "Benchmark multi-channel quadrature demodulation",
		Long: `demodbench synthesizes a noisy multi-harmonic, multi-channel test signal,
designs a Kaiser-window low-pass FIR filter (kaiserord + firwin) and times
repeated demodulation of every channel at a carrier frequency.

Commands:
  run     time the demodulator on a scenario
  taps    print the designed filter and its response
  synth   write the synthesized signal as a multi-channel WAV file
  demod   demodulate a WAV file and write the amplitude envelope`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			logger, err := newLogger(cmd.ErrOrStderr(), a.logLevel, a.logFormat)
			if err != nil {
				return err
			}
			a.log = logger
			return nil
		},
	}

	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "info", "log level: debug, info, warn, error")
	root.PersistentFlags().StringVar(&a.logFormat, "log-format", logFormatText, "log format: text or json")

	root.AddCommand(
		newRunCmd(a),
		newTapsCmd(a),
		newSynthCmd(a),
		newDemodCmd(a),
	)
	return root
}
