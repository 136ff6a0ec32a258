package bench

import "time"

// Defaults
const (
	DefaultRepeat      = 7
	DefaultMinDuration = 200 * time.Millisecond

	// maxAutorangeLoops stops autoranging for functions too fast to time.
	maxAutorangeLoops = 1_000_000_000
)

var autorangeSteps = [...]int{1, 2, 5}

var durationUnits = [...]struct {
	name  string
	scale float64
}{
	{"s", float64(time.Second)},
	{"ms", float64(time.Millisecond)},
	{"µs", float64(time.Microsecond)},
	{"ns", 1},
}
