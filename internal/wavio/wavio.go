// Package wavio stores channels × samples matrices as multi-channel PCM WAV
// files and reads them back.
package wavio

import (
	"errors"
	"fmt"
	"math"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"gonum.org/v1/gonum/mat"
)

// Errors returned by the WAV helpers.
var (
	// ErrInvalidWAV indicates a file that is not a decodable PCM WAV.
	ErrInvalidWAV = errors.New("invalid WAV file")

	// ErrUnsupportedBitDepth indicates a bit depth other than 16, 24 or 32.
	ErrUnsupportedBitDepth = errors.New("unsupported bit depth")

	// ErrInvalidFormat indicates a non-positive sample rate or an empty
	// matrix.
	ErrInvalidFormat = errors.New("invalid audio format")
)

// maxValue returns the largest positive sample value for bitDepth.
func maxValue(bitDepth int) (float64, error) {
	switch bitDepth {
	case bitsPerSample16:
		return maxInt16, nil
	case bitsPerSample24:
		return maxInt24, nil
	case bitsPerSample32:
		return maxInt32, nil
	default:
		return 0, fmt.Errorf("%w: %d", ErrUnsupportedBitDepth, bitDepth)
	}
}

// WriteMatrix writes m (channels × samples) to path as a PCM WAV file.
//
// Samples are peak-normalized so the largest magnitude maps to full scale.
// The returned scale is the factor that was applied; dividing the decoded
// samples by it restores the original values up to quantization. An
// all-zero matrix is written with scale 1.
func WriteMatrix(path string, m *mat.Dense, sampleRate, bitDepth int) (scale float64, err error) {
	if m == nil || m.IsEmpty() {
		return 0, fmt.Errorf("%w: empty matrix", ErrInvalidFormat)
	}
	if sampleRate <= 0 {
		return 0, fmt.Errorf("%w: sample rate %d", ErrInvalidFormat, sampleRate)
	}
	maxVal, err := maxValue(bitDepth)
	if err != nil {
		return 0, err
	}

	channels, _ := m.Dims()
	if channels > maxWAVChannels {
		return 0, fmt.Errorf("%w: %d channels (maximum %d)", ErrInvalidFormat, channels, maxWAVChannels)
	}

	var peak float64
	for ch := range channels {
		for _, v := range m.RawRowView(ch) {
			peak = max(peak, math.Abs(v))
		}
	}
	scale = 1
	if peak > 0 {
		scale = 1 / peak
	}

	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: channels, SampleRate: sampleRate},
		Data:           interleave(m, scale, maxVal),
		SourceBitDepth: bitDepth,
	}

	f, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("failed to create output file: %w", err)
	}
	// Close the file, capturing close errors on the success path (the WAV
	// header is finalized there).
	defer func() {
		if closeErr := f.Close(); err == nil && closeErr != nil {
			err = closeErr
		}
	}()

	enc := wav.NewEncoder(f, sampleRate, bitDepth, channels, wavFormatPCM)
	if err := enc.Write(buf); err != nil {
		return 0, fmt.Errorf("failed to write audio data: %w", err)
	}
	if err := enc.Close(); err != nil {
		return 0, fmt.Errorf("failed to finalize WAV: %w", err)
	}

	return scale, nil
}

// ReadMatrix decodes a PCM WAV file into a channels × samples matrix with
// values in [-1, 1].
func ReadMatrix(path string) (m *mat.Dense, sampleRate int, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to open input file: %w", err)
	}
	defer func() { _ = f.Close() }()

	dec := wav.NewDecoder(f)
	if !dec.IsValidFile() {
		return nil, 0, fmt.Errorf("%w: %s", ErrInvalidWAV, path)
	}

	bitDepth := int(dec.BitDepth)
	maxVal, err := maxValue(bitDepth)
	if err != nil {
		return nil, 0, err
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to read audio data: %w", err)
	}

	channels := int(dec.NumChans)
	if channels < 1 || len(buf.Data) < channels {
		return nil, 0, fmt.Errorf("%w: no audio frames", ErrInvalidWAV)
	}

	return deinterleave(buf.Data, channels, 1/maxVal), int(dec.SampleRate), nil
}

// interleave converts the rows of m to frame-interleaved integers. Samples
// are multiplied by scale, clamped to [-1, 1] and mapped to ±maxVal.
func interleave(m *mat.Dense, scale, maxVal float64) []int {
	channels, samples := m.Dims()
	out := make([]int, channels*samples)
	for ch := range channels {
		for i, v := range m.RawRowView(ch) {
			sample := max(-1, min(1, v*scale))
			out[i*channels+ch] = int(math.Round(sample * maxVal))
		}
	}
	return out
}

// deinterleave converts frame-interleaved integers to a matrix, scaling
// each sample by invMax.
func deinterleave(data []int, channels int, invMax float64) *mat.Dense {
	samples := len(data) / channels
	m := mat.NewDense(channels, samples, nil)
	for ch := range channels {
		row := m.RawRowView(ch)
		for i := range row {
			row[i] = float64(data[i*channels+ch]) * invMax
		}
	}
	return m
}
