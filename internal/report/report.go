// Package report exports scenario runs as XLSX workbooks.
package report

import (
	"errors"
	"fmt"
	"time"

	"github.com/tphakala/go-demodulation/internal/filter"
	"github.com/tphakala/go-demodulation/internal/scenario"
	"github.com/xuri/excelize/v2"
)

// ErrIncompleteReport is returned for a report without timing or inputs.
var ErrIncompleteReport = errors.New("report has no timing or inputs")

// Sheet names
const (
	SheetSummary  = "Summary"
	SheetTimings  = "Timings"
	SheetTaps     = "Taps"
	SheetResponse = "Response"
)

// WriteXLSX writes rep to path as a workbook with a Summary, Timings, Taps
// and Response sheet.
func WriteXLSX(path string, rep *scenario.Report) (err error) {
	if rep == nil || rep.Timing == nil || rep.Inputs == nil || rep.Scenario == nil {
		return ErrIncompleteReport
	}

	f := excelize.NewFile()
	defer func() {
		if closeErr := f.Close(); err == nil && closeErr != nil {
			err = closeErr
		}
	}()

	if err := f.SetSheetName(defaultSheet, SheetSummary); err != nil {
		return err
	}
	for _, name := range []string{SheetTimings, SheetTaps, SheetResponse} {
		if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("failed to create sheet %s: %w", name, err)
		}
	}

	if err := writeSummary(f, rep); err != nil {
		return fmt.Errorf("summary: %w", err)
	}
	if err := writeTimings(f, rep); err != nil {
		return fmt.Errorf("timings: %w", err)
	}
	if err := writeColumns(f, SheetTaps, []string{"index", "coefficient"}, len(rep.Inputs.Taps),
		func(i int) []any { return []any{i, rep.Inputs.Taps[i]} }); err != nil {
		return fmt.Errorf("taps: %w", err)
	}
	if err := writeResponse(f, rep); err != nil {
		return fmt.Errorf("response: %w", err)
	}

	f.SetActiveSheet(0)
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

func writeSummary(f *excelize.File, rep *scenario.Report) error {
	s := rep.Scenario
	t := rep.Timing
	rows := [][]any{
		{"parameter", "value"},
		{"sample_rate_hz", s.SampleRate},
		{"samples", s.Samples},
		{"channels", s.Channels},
		{"harmonics", len(s.Harmonics)},
		{"carrier_hz", s.CarrierFrequency},
		{"ripple_db", s.RippleDB},
		{"transition_hz", s.TransitionHz},
		{"cutoff_hz", s.CutoffHz},
		{"window", s.Window},
		{"num_taps", len(rep.Inputs.Taps)},
		{"kaiser_beta", rep.Inputs.Beta},
		{"algorithm", rep.Info.Algorithm},
		{"precision", rep.Info.Precision.String()},
		{"decimation", rep.Info.Decimation},
		{"parallel", rep.Info.Parallel},
		{"simd", rep.Info.SIMD},
		{"repeat", t.Repeat},
		{"loops", t.Loops},
		{"best_ms", milliseconds(t.Best)},
		{"worst_ms", milliseconds(t.Worst)},
		{"mean_ms", milliseconds(t.Mean)},
		{"stddev_ms", milliseconds(t.StdDev)},
		{"summary", t.String()},
	}
	return writeRows(f, SheetSummary, rows)
}

func writeTimings(f *excelize.File, rep *scenario.Report) error {
	per := rep.Timing.PerLoop
	return writeColumns(f, SheetTimings, []string{"repeat", "per_loop_ms"}, len(per),
		func(i int) []any { return []any{i + 1, milliseconds(per[i])} })
}

func writeResponse(f *excelize.File, rep *scenario.Report) error {
	resp := filter.ComputeFrequencyResponse(rep.Inputs.Taps, responsePoints)
	nyquist := rep.Scenario.SampleRate / 2
	return writeColumns(f, SheetResponse, []string{"frequency_hz", "magnitude_db"}, len(resp.Frequencies),
		func(i int) []any {
			return []any{resp.Frequencies[i] * nyquist, filter.MagnitudeDB(resp.Magnitude[i])}
		})
}

// writeColumns writes a header row followed by n rows produced by row.
func writeColumns(f *excelize.File, sheet string, header []string, n int, row func(int) []any) error {
	rows := make([][]any, 0, n+1)
	head := make([]any, len(header))
	for i, h := range header {
		head[i] = h
	}
	rows = append(rows, head)
	for i := range n {
		rows = append(rows, row(i))
	}
	return writeRows(f, sheet, rows)
}

func writeRows(f *excelize.File, sheet string, rows [][]any) error {
	for r, values := range rows {
		cell, err := excelize.CoordinatesToCellName(1, r+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return err
		}
	}
	return nil
}

func milliseconds(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
