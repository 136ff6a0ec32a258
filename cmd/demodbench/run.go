package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tphakala/go-demodulation/internal/bench"
	"github.com/tphakala/go-demodulation/internal/report"
)

func newRunCmd(a *app) *cobra.Command {
	var (
		sf         scenarioFlags
		opts       bench.Options
		xlsxPath   string
		dumpConfig bool
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Time the demodulator on a synthesized scenario",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := sf.resolve(cmd.Flags())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if dumpConfig {
				return s.Write(out)
			}

			a.log.Debug("scenario",
				"sample_rate", s.SampleRate, "samples", s.Samples, "channels", s.Channels,
				"harmonics", len(s.Harmonics), "carrier", s.CarrierFrequency,
				"ripple_db", s.RippleDB, "transition_hz", s.TransitionHz, "cutoff_hz", s.CutoffHz,
				"window", s.Window, "precision", s.Precision, "parallel", s.Parallel)

			in, err := s.Prepare()
			if err != nil {
				return err
			}
			a.log.Info("inputs prepared",
				"shape", fmt.Sprintf("%dx%d", s.Channels, s.Samples),
				"taps", len(in.Taps), "beta", in.Beta)

			rep, err := s.RunWith(in, opts)
			if err != nil {
				return err
			}
			a.log.Info("benchmark finished",
				"algorithm", rep.Info.Algorithm,
				"loops", rep.Timing.Loops, "repeat", rep.Timing.Repeat,
				"best", rep.Timing.Best, "mean", rep.Timing.Mean)

			fmt.Fprintln(out, rep.Timing.String())

			if xlsxPath != "" {
				if err := report.WriteXLSX(xlsxPath, rep); err != nil {
					return fmt.Errorf("failed to write report: %w", err)
				}
				a.log.Info("report written", "path", xlsxPath)
			}
			return nil
		},
	}

	fs := cmd.Flags()
	sf.registerConfig(fs)
	sf.registerRate(fs)
	sf.registerSignal(fs)
	sf.registerFilter(fs)
	sf.registerDemod(fs)
	fs.IntVarP(&opts.Repeat, "repeat", "r", bench.DefaultRepeat, "number of timed repeats")
	fs.IntVarP(&opts.Loops, "loops", "n", 0, "calls per repeat (0 = autorange)")
	fs.DurationVar(&opts.MinDuration, "min-time", bench.DefaultMinDuration, "autorange target per repeat")
	fs.StringVar(&xlsxPath, "xlsx", "", "write an XLSX report to this path")
	fs.BoolVar(&dumpConfig, "dump-config", false, "print the resolved scenario as YAML and exit")

	return cmd
}
