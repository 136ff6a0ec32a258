package main

import (
	"fmt"
	"io"
	"math"

	"github.com/spf13/cobra"
	"github.com/tphakala/go-demodulation/internal/filter"
)

func newTapsCmd(a *app) *cobra.Command {
	var (
		sf   scenarioFlags
		show int
	)

	cmd := &cobra.Command{
		Use:   "taps",
		Short: "Design the low-pass filter and print its taps and response",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := sf.resolve(cmd.Flags())
			if err != nil {
				return err
			}
			design, err := s.DesignFilter()
			if err != nil {
				return err
			}
			a.log.Debug("filter designed", "taps", design.NumTaps, "beta", design.Beta, "window", design.Window.String())

			out := cmd.OutOrStdout()
			printDesign(out, design, s.SampleRate, s.CutoffHz, s.TransitionHz)
			printTaps(out, design.Taps, show)
			return nil
		},
	}

	fs := cmd.Flags()
	sf.registerConfig(fs)
	sf.registerRate(fs)
	sf.registerFilter(fs)
	fs.IntVar(&show, "show", defaultTapsShow, "number of taps to print (0 = all)")

	return cmd
}

func printDesign(w io.Writer, d *filter.Design, sampleRate, cutoffHz, transitionHz float64) {
	nyquist := sampleRate / hzPerNyquist
	resp := filter.ComputeFrequencyResponse(d.Taps, responsePoints)

	passEdge := (cutoffHz - transitionHz/passbandEdgeDiv) / nyquist
	stopEdge := (cutoffHz + transitionHz/passbandEdgeDiv) / nyquist

	var ripple float64
	for i, f := range resp.Frequencies {
		if f > passEdge {
			break
		}
		ripple = max(ripple, math.Abs(filter.MagnitudeDB(resp.Magnitude[i])))
	}

	fmt.Fprintf(w, "Filter design\n")
	fmt.Fprintf(w, "  Taps:           %d (delay %d samples, %.4g s)\n", d.NumTaps, d.Delay(), float64(d.Delay())/sampleRate)
	fmt.Fprintf(w, "  Kaiser beta:    %.6f\n", d.Beta)
	fmt.Fprintf(w, "  Window:         %s\n", d.Window.String())
	fmt.Fprintf(w, "  Cutoff:         %g Hz (%.6f of Nyquist)\n", cutoffHz, d.Cutoff)
	fmt.Fprintf(w, "  Transition:     %g Hz (%.6f of Nyquist)\n", transitionHz, d.Width)
	fmt.Fprintf(w, "  Gain at cutoff: %.2f dB\n", filter.MagnitudeDB(filter.GainAt(d.Taps, d.Cutoff)))
	fmt.Fprintf(w, "  Passband ripple (0-%g Hz): %.4f dB\n", passEdge*nyquist, ripple)
	fmt.Fprintf(w, "  Stopband attenuation (>= %g Hz): %.2f dB\n", stopEdge*nyquist, filter.StopbandAttenuation(resp, stopEdge))
}

func printTaps(w io.Writer, taps []float64, show int) {
	n := len(taps)
	if show > 0 {
		n = min(n, show)
	}
	fmt.Fprintf(w, "\nTaps\n")
	for i := range n {
		fmt.Fprintf(w, "  %4d  % .12e\n", i, taps[i])
	}
	if n < len(taps) {
		fmt.Fprintf(w, "  ... %d more\n", len(taps)-n)
	}
}
