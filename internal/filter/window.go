// Package filter designs the low-pass FIR filters used to band-limit the
// quadrature products of the demodulator.
package filter

import (
	"fmt"
	"math"
	"strings"

	"github.com/tphakala/go-demodulation/internal/mathutil"
	"gonum.org/v1/gonum/dsp/window"
)

// WindowKind selects the taper applied to the ideal sinc response.
type WindowKind int

const (
	// WindowKaiser is the Kaiser window, parameterized by Window.Beta.
	WindowKaiser WindowKind = iota
	WindowHamming
	WindowHann
	WindowBlackman
	WindowBlackmanHarris
	WindowRectangular
)

var windowNames = map[WindowKind]string{
	WindowKaiser:         "kaiser",
	WindowHamming:        "hamming",
	WindowHann:           "hann",
	WindowBlackman:       "blackman",
	WindowBlackmanHarris: "blackmanharris",
	WindowRectangular:    "boxcar",
}

// String returns the conventional short name of the window.
func (k WindowKind) String() string {
	if name, ok := windowNames[k]; ok {
		return name
	}
	return fmt.Sprintf("WindowKind(%d)", int(k))
}

// Window is a window specification such as ("kaiser", 3.39).
// Beta is ignored by every kind except WindowKaiser.
type Window struct {
	Kind WindowKind
	Beta float64
}

// Kaiser returns a Kaiser window specification.
func Kaiser(beta float64) Window {
	return Window{Kind: WindowKaiser, Beta: beta}
}

// String renders the window the way it is written on the command line.
func (w Window) String() string {
	if w.Kind == WindowKaiser {
		return fmt.Sprintf("kaiser(%.4g)", w.Beta)
	}
	return w.Kind.String()
}

// ParseWindowKind maps a window name to its kind. Matching is case-insensitive
// and accepts a few common aliases.
func ParseWindowKind(name string) (WindowKind, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "kaiser":
		return WindowKaiser, nil
	case "hamming", "hamm":
		return WindowHamming, nil
	case "hann", "hanning":
		return WindowHann, nil
	case "blackman":
		return WindowBlackman, nil
	case "blackmanharris", "blackman-harris":
		return WindowBlackmanHarris, nil
	case "boxcar", "rect", "rectangular", "none":
		return WindowRectangular, nil
	default:
		return 0, fmt.Errorf("%w: unknown window %q", ErrInvalidWindow, name)
	}
}

// Coefficients returns the symmetric window of the given length.
func (w Window) Coefficients(length int) ([]float64, error) {
	if length < 1 {
		return []float64{}, nil
	}
	if length == 1 {
		return []float64{1}, nil
	}

	switch w.Kind {
	case WindowKaiser:
		if w.Beta < 0 || math.IsNaN(w.Beta) || math.IsInf(w.Beta, 0) {
			return nil, fmt.Errorf("%w: kaiser beta %v", ErrInvalidWindow, w.Beta)
		}
		return KaiserWindow(length, w.Beta), nil
	case WindowHamming:
		return window.NewValues(window.Hamming, length), nil
	case WindowHann:
		return window.NewValues(window.Hann, length), nil
	case WindowBlackman:
		return window.NewValues(window.Blackman, length), nil
	case WindowBlackmanHarris:
		return window.NewValues(window.BlackmanHarris, length), nil
	case WindowRectangular:
		return window.NewValues(window.Rectangular, length), nil
	default:
		return nil, fmt.Errorf("%w: %v", ErrInvalidWindow, w.Kind)
	}
}

// KaiserWindow generates a symmetric Kaiser window:
//
//	w[n] = I₀(β·√(1 − ((n − α)/α)²)) / I₀(β),  α = (N−1)/2
//
// The center tap is 1 and w[n] == w[N-1-n].
func KaiserWindow(length int, beta float64) []float64 {
	if length < 1 {
		return []float64{}
	}

	w := make([]float64, length)
	if length == 1 {
		w[0] = 1
		return w
	}

	alpha := float64(length-1) / 2
	i0Beta := mathutil.BesselI0(beta)

	for n := range length {
		x := (float64(n) - alpha) / alpha
		// Clamp rounding noise at the edges so the sqrt argument stays >= 0.
		r := max(1.0-x*x, 0)
		w[n] = mathutil.BesselI0(beta*math.Sqrt(r)) / i0Beta
	}

	return w
}
