// Package bench times repeated invocations of a function the way Python's
// timeit does: a loop count is chosen (or given), the loop is run Repeat
// times, and per-loop statistics are reported over the repeats.
package bench

import (
	"errors"
	"fmt"
	"math"
	"time"

	"gonum.org/v1/gonum/stat"
)

// ErrInvalidOptions indicates a negative repeat or loop count.
var ErrInvalidOptions = errors.New("invalid benchmark options")

// Options controls a timing run. Zero values select the defaults.
type Options struct {
	// Repeat is the number of timed repeats. Default 7.
	Repeat int

	// Loops is the number of calls per repeat. Zero autoranges.
	Loops int

	// MinDuration is the autorange target for one repeat. Default 200 ms.
	MinDuration time.Duration
}

func (o Options) withDefaults() (Options, error) {
	if o.Repeat < 0 || o.Loops < 0 || o.MinDuration < 0 {
		return o, fmt.Errorf("%w: repeat=%d loops=%d min=%v", ErrInvalidOptions, o.Repeat, o.Loops, o.MinDuration)
	}
	if o.Repeat == 0 {
		o.Repeat = DefaultRepeat
	}
	if o.MinDuration == 0 {
		o.MinDuration = DefaultMinDuration
	}
	return o, nil
}

// Result summarizes a timing run. All durations are per loop.
type Result struct {
	Loops  int
	Repeat int

	// PerLoop holds the per-loop time of every repeat, in run order.
	PerLoop []time.Duration

	Best   time.Duration
	Worst  time.Duration
	Mean   time.Duration
	StdDev time.Duration
}

// Run times fn. The first error returned by fn aborts the run.
func Run(fn func() error, opts Options) (*Result, error) {
	opts, err := opts.withDefaults()
	if err != nil {
		return nil, err
	}

	loops := opts.Loops
	if loops == 0 {
		loops, err = autorange(fn, opts.MinDuration)
		if err != nil {
			return nil, err
		}
	}

	perLoop := make([]time.Duration, opts.Repeat)
	for r := range opts.Repeat {
		elapsed, err := timeLoops(fn, loops)
		if err != nil {
			return nil, fmt.Errorf("repeat %d: %w", r, err)
		}
		perLoop[r] = elapsed / time.Duration(loops)
	}

	return summarize(perLoop, loops), nil
}

// autorange returns the first count in 1, 2, 5, 10, 20, 50, ... whose loop
// takes at least target.
func autorange(fn func() error, target time.Duration) (int, error) {
	for scale := 1; ; scale *= 10 {
		for _, step := range autorangeSteps {
			loops := step * scale
			elapsed, err := timeLoops(fn, loops)
			if err != nil {
				return 0, fmt.Errorf("autorange: %w", err)
			}
			if elapsed >= target || loops >= maxAutorangeLoops {
				return loops, nil
			}
		}
	}
}

func timeLoops(fn func() error, loops int) (time.Duration, error) {
	start := time.Now()
	for range loops {
		if err := fn(); err != nil {
			return 0, err
		}
	}
	return time.Since(start), nil
}

func summarize(perLoop []time.Duration, loops int) *Result {
	xs := make([]float64, len(perLoop))
	best, worst := perLoop[0], perLoop[0]
	for i, d := range perLoop {
		xs[i] = float64(d)
		best = min(best, d)
		worst = max(worst, d)
	}

	mean, std := stat.MeanStdDev(xs, nil)
	if math.IsNaN(std) {
		// A single repeat has no spread.
		std = 0
	}

	return &Result{
		Loops:   loops,
		Repeat:  len(perLoop),
		PerLoop: perLoop,
		Best:    best,
		Worst:   worst,
		Mean:    time.Duration(math.Round(mean)),
		StdDev:  time.Duration(math.Round(std)),
	}
}

// String renders the result in timeit style, for example
// "12.3 ms ± 0.4 ms per loop (mean ± std. dev. of 7 runs, 10 loops each)".
func (r *Result) String() string {
	runs := "runs"
	if r.Repeat == 1 {
		runs = "run"
	}
	loops := "loops"
	if r.Loops == 1 {
		loops = "loop"
	}
	return fmt.Sprintf("%s ± %s per loop (mean ± std. dev. of %d %s, %d %s each)",
		FormatDuration(r.Mean), FormatDuration(r.StdDev), r.Repeat, runs, r.Loops, loops)
}

// FormatDuration renders d with three significant digits in the largest
// unit (ns, µs, ms, s) that keeps the value at or above 1.
func FormatDuration(d time.Duration) string {
	v := float64(d)
	for _, u := range durationUnits {
		if v >= u.scale {
			return formatSignificant(v/u.scale) + " " + u.name
		}
	}
	return formatSignificant(v) + " ns"
}

func formatSignificant(v float64) string {
	switch {
	case v >= 100:
		return fmt.Sprintf("%.0f", v)
	case v >= 10:
		return fmt.Sprintf("%.1f", v)
	default:
		return fmt.Sprintf("%.2f", v)
	}
}
