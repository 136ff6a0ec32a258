package demodulation

import (
	"github.com/tphakala/go-demodulation/internal/filter"
	"gonum.org/v1/gonum/mat"
)

// Demodulate is the one-shot form of New followed by Process: channels are
// processed in parallel on GOMAXPROCS workers at float64 precision without
// decimation.
func Demodulate(signal *mat.Dense, t, taps []float64, carrier float64) (*Result, error) {
	d, err := New(&Config{
		CarrierFrequency: carrier,
		Taps:             taps,
		EnableParallel:   true,
	})
	if err != nil {
		return nil, err
	}
	return d.Process(signal, t)
}

// DemodulateFloat32 is Demodulate at float32 precision.
func DemodulateFloat32(signal *mat.Dense, t, taps []float64, carrier float64) (*Result, error) {
	d, err := New(&Config{
		CarrierFrequency: carrier,
		Taps:             taps,
		EnableParallel:   true,
		Precision:        PrecisionFloat32,
	})
	if err != nil {
		return nil, err
	}
	return d.Process(signal, t)
}

// DesignLowPass designs the odd-length Kaiser low-pass filter for the given
// ripple (dB), transition width and cutoff (Hz) at sampleRate, following
// kaiserord and firwin. It returns the taps and the Kaiser β used.
func DesignLowPass(rippleDB, transitionHz, cutoffHz, sampleRate float64) (taps []float64, beta float64, err error) {
	design, err := filter.DesignLowPass(filter.Spec{
		RippleDB:     rippleDB,
		TransitionHz: transitionHz,
		CutoffHz:     cutoffHz,
		SampleRate:   sampleRate,
	})
	if err != nil {
		return nil, 0, err
	}
	return design.Taps, design.Beta, nil
}
