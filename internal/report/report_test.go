package report

import (
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tphakala/go-demodulation/internal/bench"
	"github.com/tphakala/go-demodulation/internal/scenario"
	"github.com/xuri/excelize/v2"
)

func testReport(t *testing.T) *scenario.Report {
	t.Helper()
	s := scenario.Default()
	s.Channels = 2
	s.Samples = 600
	s.Synthesis = s.Synthesis.WithSeed(3)

	rep, err := s.Run(bench.Options{Repeat: 3, Loops: 1})
	require.NoError(t, err)
	return rep
}

func TestWriteXLSX(t *testing.T) {
	rep := testReport(t)
	path := filepath.Join(t.TempDir(), "report.xlsx")
	require.NoError(t, WriteXLSX(path, rep))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	assert.Equal(t, []string{SheetSummary, SheetTimings, SheetTaps, SheetResponse}, f.GetSheetList())

	summary, err := f.GetRows(SheetSummary)
	require.NoError(t, err)
	values := make(map[string]string, len(summary))
	for _, row := range summary {
		require.Len(t, row, 2)
		values[row[0]] = row[1]
	}
	assert.Equal(t, "2", values["channels"])
	assert.Equal(t, "181", values["num_taps"])
	assert.Equal(t, "kaiser", values["window"])
	assert.Equal(t, "3", values["repeat"])
	assert.Equal(t, rep.Timing.String(), values["summary"])

	timings, err := f.GetRows(SheetTimings)
	require.NoError(t, err)
	require.Len(t, timings, 1+3)
	assert.Equal(t, []string{"repeat", "per_loop_ms"}, timings[0])
	for _, row := range timings[1:] {
		ms, err := strconv.ParseFloat(row[1], 64)
		require.NoError(t, err)
		assert.Greater(t, ms, 0.0)
	}

	taps, err := f.GetRows(SheetTaps)
	require.NoError(t, err)
	require.Len(t, taps, 1+181)
	center, err := strconv.ParseFloat(taps[1+90][1], 64)
	require.NoError(t, err)
	assert.InDelta(t, rep.Inputs.Taps[90], center, 1e-9)

	response, err := f.GetRows(SheetResponse)
	require.NoError(t, err)
	require.Len(t, response, 1+responsePoints)
	dc, err := strconv.ParseFloat(response[1][1], 64)
	require.NoError(t, err)
	assert.InDelta(t, 0.0, dc, 1e-6, "unit DC gain")
}

func TestWriteXLSX_Incomplete(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.xlsx")
	assert.ErrorIs(t, WriteXLSX(path, nil), ErrIncompleteReport)
	assert.ErrorIs(t, WriteXLSX(path, &scenario.Report{}), ErrIncompleteReport)
}
