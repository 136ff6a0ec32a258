package filter

import (
	"errors"
	"fmt"
	"math"

	"github.com/tphakala/go-demodulation/internal/mathutil"
	"github.com/tphakala/simd/f64"
)

const (
	// maxFilterTaps bounds a single design so a typo in the transition
	// width cannot allocate gigabytes.
	maxFilterTaps = 1 << 20

	sincZeroThreshold = 1e-12
)

// Filter design errors.
var (
	// ErrRippleTooSmall is returned when the requested attenuation is below
	// the range of the Kaiser length formula.
	ErrRippleTooSmall = errors.New("ripple attenuation too small for the Kaiser formula")

	// ErrInvalidWidth indicates a transition width outside (0, 1).
	ErrInvalidWidth = errors.New("invalid transition width")

	// ErrInvalidCutoff indicates a cutoff outside (0, 1) of Nyquist.
	ErrInvalidCutoff = errors.New("invalid cutoff frequency")

	// ErrInvalidTaps indicates a tap count that cannot be designed.
	ErrInvalidTaps = errors.New("invalid number of taps")

	// ErrInvalidWindow indicates an unknown or badly parameterized window.
	ErrInvalidWindow = errors.New("invalid window")
)

// KaiserOrd determines the length and Kaiser β of a low-pass FIR filter.
//
// rippleDB is the required deviation (in dB) of the frequency response from
// the ideal in both pass and stop bands; its sign is ignored. width is the
// transition band width normalized to Nyquist, in (0, 1).
//
// The returned tap count is always odd so the filter has an integer group
// delay of (numTaps-1)/2 samples.
func KaiserOrd(rippleDB, width float64) (numTaps int, beta float64, err error) {
	attenuation := math.Abs(rippleDB)
	if math.IsNaN(attenuation) || attenuation < mathutil.MinKaiserAttenuation {
		return 0, 0, fmt.Errorf("%w: %.4g dB (minimum %.4g dB)",
			ErrRippleTooSmall, attenuation, mathutil.MinKaiserAttenuation)
	}
	if math.IsInf(attenuation, 0) {
		return 0, 0, fmt.Errorf("%w: infinite attenuation", ErrRippleTooSmall)
	}
	if !(width > 0 && width < 1) {
		return 0, 0, fmt.Errorf("%w: %v (must be in (0, 1))", ErrInvalidWidth, width)
	}

	length := math.Ceil(mathutil.KaiserLength(attenuation, width))
	if length > maxFilterTaps {
		return 0, 0, fmt.Errorf("%w: %.0f taps required (maximum %d)", ErrInvalidTaps, length, maxFilterTaps)
	}

	return mathutil.NextOdd(int(length)), mathutil.KaiserBeta(attenuation), nil
}

// FirWin designs a linear-phase low-pass FIR filter by the window method.
//
// cutoff is normalized to Nyquist and must lie in (0, 1). The ideal response
// h[n] = c·sinc(c·m), m = n − (N−1)/2, is tapered by win and scaled so the
// gain at DC is exactly 1.
func FirWin(numTaps int, cutoff float64, win Window) ([]float64, error) {
	if numTaps < 1 || numTaps > maxFilterTaps {
		return nil, fmt.Errorf("%w: %d (must be in [1, %d])", ErrInvalidTaps, numTaps, maxFilterTaps)
	}
	if !(cutoff > 0 && cutoff < 1) {
		return nil, fmt.Errorf("%w: %v (must be in (0, 1) of Nyquist)", ErrInvalidCutoff, cutoff)
	}

	w, err := win.Coefficients(numTaps)
	if err != nil {
		return nil, err
	}

	taps := make([]float64, numTaps)
	alpha := float64(numTaps-1) / 2

	for n := range numTaps {
		m := float64(n) - alpha
		taps[n] = cutoff * sinc(cutoff*m) * w[n]
	}

	if sum := f64.Sum(taps); math.Abs(sum) > sincZeroThreshold {
		f64.Scale(taps, taps, 1.0/sum)
	}

	return taps, nil
}

// FirWinHz is FirWin with the cutoff given in Hz at sampleRate.
func FirWinHz(numTaps int, cutoffHz, sampleRate float64, win Window) ([]float64, error) {
	if !(sampleRate > 0) {
		return nil, fmt.Errorf("%w: sample rate %v", ErrInvalidCutoff, sampleRate)
	}
	return FirWin(numTaps, cutoffHz/(sampleRate/2), win)
}

// sinc is the normalized sinc, sin(πx)/(πx).
func sinc(x float64) float64 {
	if math.Abs(x) < sincZeroThreshold {
		return 1
	}
	px := math.Pi * x
	return math.Sin(px) / px
}

// Spec describes a low-pass filter in physical units.
type Spec struct {
	// RippleDB is the pass/stop band ripple in dB (attenuation).
	RippleDB float64

	// TransitionHz is the transition band width in Hz.
	TransitionHz float64

	// CutoffHz is the -6 dB cutoff frequency in Hz.
	CutoffHz float64

	// SampleRate is the sampling rate in Hz.
	SampleRate float64

	// Window overrides the taper. The zero value selects a Kaiser window
	// with the β from KaiserOrd.
	Window *Window
}

// Design is the result of a Spec: the taps plus the parameters used.
type Design struct {
	Taps    []float64
	NumTaps int
	Beta    float64
	Cutoff  float64 // normalized to Nyquist
	Width   float64 // normalized to Nyquist
	Window  Window
}

// Delay returns the group delay of the filter in samples.
func (d *Design) Delay() int {
	return (d.NumTaps - 1) / 2
}

// DesignLowPass runs KaiserOrd followed by FirWin.
func DesignLowPass(spec Spec) (*Design, error) {
	if !(spec.SampleRate > 0) || math.IsInf(spec.SampleRate, 0) {
		return nil, fmt.Errorf("%w: sample rate %v", ErrInvalidCutoff, spec.SampleRate)
	}
	nyquist := spec.SampleRate / 2
	width := spec.TransitionHz / nyquist
	cutoff := spec.CutoffHz / nyquist

	numTaps, beta, err := KaiserOrd(spec.RippleDB, width)
	if err != nil {
		return nil, err
	}

	win := Kaiser(beta)
	if spec.Window != nil {
		win = *spec.Window
		if win.Kind == WindowKaiser && win.Beta == 0 {
			win.Beta = beta
		}
	}

	taps, err := FirWin(numTaps, cutoff, win)
	if err != nil {
		return nil, err
	}

	return &Design{
		Taps:    taps,
		NumTaps: numTaps,
		Beta:    beta,
		Cutoff:  cutoff,
		Width:   width,
		Window:  win,
	}, nil
}
