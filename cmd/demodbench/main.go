// Command demodbench synthesizes multi-channel test signals, designs the
// demodulation low-pass filter and times the quadrature demodulator.
//
// Usage:
//
//	demodbench run                                # reference workload, timeit-style output
//	demodbench run --channels 64 --repeat 3 --xlsx report.xlsx
//	demodbench run --config scenario.yaml --precision float32
//	demodbench taps --ripple 60 --transition 2    # inspect the designed filter
//	demodbench synth --seed 1 signal.wav          # write the test signal as WAV
//	demodbench demod --carrier 2.5 in.wav env.wav # amplitude envelope of a WAV
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
