package bench

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_FixedLoops(t *testing.T) {
	calls := 0
	res, err := Run(func() error {
		calls++
		return nil
	}, Options{Repeat: 3, Loops: 4})
	require.NoError(t, err)

	assert.Equal(t, 12, calls)
	assert.Equal(t, 4, res.Loops)
	assert.Equal(t, 3, res.Repeat)
	assert.Len(t, res.PerLoop, 3)
	assert.LessOrEqual(t, res.Best, res.Mean)
	assert.LessOrEqual(t, res.Mean, res.Worst)
}

func TestRun_Defaults(t *testing.T) {
	res, err := Run(func() error {
		time.Sleep(time.Millisecond)
		return nil
	}, Options{Loops: 1})
	require.NoError(t, err)

	assert.Equal(t, DefaultRepeat, res.Repeat)
	assert.GreaterOrEqual(t, res.Best, time.Millisecond)
}

func TestRun_Autorange(t *testing.T) {
	res, err := Run(func() error {
		time.Sleep(2 * time.Millisecond)
		return nil
	}, Options{Repeat: 2, MinDuration: 9 * time.Millisecond})
	require.NoError(t, err)

	// One sleep falls short of the target and five always reach it; two
	// may reach it on a slow scheduler.
	assert.Contains(t, []int{2, 5}, res.Loops)
}

func TestRun_ErrorAborts(t *testing.T) {
	boom := errors.New("boom")
	calls := 0
	_, err := Run(func() error {
		calls++
		if calls == 3 {
			return boom
		}
		return nil
	}, Options{Repeat: 5, Loops: 2})

	require.ErrorIs(t, err, boom)
	assert.Equal(t, 3, calls)
}

func TestRun_InvalidOptions(t *testing.T) {
	_, err := Run(func() error { return nil }, Options{Repeat: -1})
	require.ErrorIs(t, err, ErrInvalidOptions)

	_, err = Run(func() error { return nil }, Options{Loops: -1})
	require.ErrorIs(t, err, ErrInvalidOptions)
}

func TestSummarize(t *testing.T) {
	res := summarize([]time.Duration{10, 20, 30}, 5)

	assert.Equal(t, time.Duration(10), res.Best)
	assert.Equal(t, time.Duration(30), res.Worst)
	assert.Equal(t, time.Duration(20), res.Mean)
	// Sample standard deviation of {10, 20, 30}.
	assert.Equal(t, time.Duration(10), res.StdDev)
}

func TestSummarize_SingleRepeat(t *testing.T) {
	res := summarize([]time.Duration{42}, 1)
	assert.Equal(t, time.Duration(0), res.StdDev)
	assert.Equal(t, "42.0 ns ± 0.00 ns per loop (mean ± std. dev. of 1 run, 1 loop each)", res.String())
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		in   time.Duration
		want string
	}{
		{0, "0.00 ns"},
		{5, "5.00 ns"},
		{1500, "1.50 µs"},
		{12_345_678, "12.3 ms"},
		{400 * time.Microsecond, "400 µs"},
		{2 * time.Second, "2.00 s"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatDuration(tt.in))
		})
	}
}

func TestResult_String(t *testing.T) {
	res := &Result{Loops: 10, Repeat: 7, Mean: 12_300_000, StdDev: 400_000}
	s := res.String()
	assert.Equal(t, "12.3 ms ± 400 µs per loop (mean ± std. dev. of 7 runs, 10 loops each)", s)
	assert.True(t, strings.HasPrefix(s, "12.3 ms"))
}
