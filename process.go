package demodulation

import (
	"fmt"
	"sync"

	"github.com/tphakala/go-demodulation/internal/engine"
	"github.com/tphakala/go-demodulation/internal/simdops"
	"gonum.org/v1/gonum/mat"
)

// Process demodulates every row of signal, sampled at the times in t.
//
// signal is channels × samples and is not modified. The result holds
// OutputLen(samples) in-phase and quadrature samples per channel, aligned
// with t[Delay + k·Decimation].
func (d *Demodulator) Process(signal *mat.Dense, t []float64) (*Result, error) {
	if signal == nil || signal.IsEmpty() {
		return nil, fmt.Errorf("%w: empty signal", ErrSignalTooShort)
	}

	channels, samples := signal.Dims()
	if len(t) != samples {
		return nil, fmt.Errorf("%w: %d time points for %d samples", ErrShapeMismatch, len(t), samples)
	}

	outLen := d.OutputLen(samples)
	if outLen == 0 {
		return nil, fmt.Errorf("%w: %d samples, %d taps", ErrSignalTooShort, samples, len(d.config.Taps))
	}

	result := newResult(channels, outLen, t, d.Delay(), d.config.Decimation)

	var err error
	switch d.config.Precision {
	case PrecisionFloat32:
		err = process[float32](d, signal, t, result)
	default:
		err = process[float64](d, signal, t, result)
	}
	if err != nil {
		return nil, err
	}
	return result, nil
}

// process runs the per-channel mixers for sample type F. The carrier
// reference is computed once and shared read-only; every worker owns its
// mixer and therefore its scratch buffers.
func process[F simdops.Float](d *Demodulator, signal *mat.Dense, t []float64, result *Result) error {
	channels, _ := signal.Dims()
	ref := engine.NewReference[F](t, d.config.CarrierFrequency)

	newMixer := func() (*engine.Mixer[F], error) {
		return engine.NewMixer(ref, d.config.Taps, d.config.Decimation)
	}

	processChannel := func(m *engine.Mixer[F], ch int) error {
		// Rows of a Dense are contiguous, so the mixer reads and writes the
		// matrices' backing arrays directly.
		return m.Process(result.I.RawRowView(ch), result.Q.RawRowView(ch), signal.RawRowView(ch))
	}

	workers := d.workerCount(channels)

	// Sequential processing (default or when parallel disabled)
	if workers <= 1 {
		m, err := newMixer()
		if err != nil {
			return err
		}
		for ch := range channels {
			if err := processChannel(m, ch); err != nil {
				return fmt.Errorf("channel %d: %w", ch, err)
			}
		}
		return nil
	}

	// Parallel processing: a bounded pool pulls channel indices.
	jobs := make(chan int)
	var (
		wg       sync.WaitGroup
		errMu    sync.Mutex
		firstErr error
	)
	setErr := func(err error) {
		errMu.Lock()
		if firstErr == nil {
			firstErr = err
		}
		errMu.Unlock()
	}
	failed := func() bool {
		errMu.Lock()
		defer errMu.Unlock()
		return firstErr != nil
	}

	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()

			m, err := newMixer()
			if err != nil {
				setErr(err)
				// Keep draining so the producer never blocks.
				for range jobs {
				}
				return
			}
			for ch := range jobs {
				if failed() {
					continue
				}
				if err := processChannel(m, ch); err != nil {
					setErr(fmt.Errorf("channel %d: %w", ch, err))
				}
			}
		}()
	}

	for ch := range channels {
		jobs <- ch
	}
	close(jobs)
	wg.Wait()

	return firstErr
}
