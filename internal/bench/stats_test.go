package bench_test

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lotSizing/internal/bench"
)

func TestCalcIntStats(t *testing.T) {
	s := bench.CalcIntStats([]int{3, 1, 2})
	assert.Equal(t, 3, s.N)
	assert.Equal(t, 1, s.Best)
	assert.InDelta(t, 2.0, s.Mean, 1e-12)
	assert.InDelta(t, 1.0, s.Std, 1e-12)

	one := bench.CalcIntStats([]int{7})
	assert.Equal(t, 7, one.Best)
	assert.Zero(t, one.Std)

	assert.Zero(t, bench.CalcIntStats(nil).N)
}

func TestSummarize(t *testing.T) {
	a := bench.Class{Name: "A", Parsed: true}
	b := bench.Class{Name: "B"}
	records := []bench.Record{
		{Class: b, Status: bench.StatusLoadError},
		{Class: a, Status: bench.StatusOK, Feasible: true, Cost: 100, Elapsed: time.Second},
		{Class: a, Status: bench.StatusOK, Feasible: true, Cost: 120, Elapsed: 3 * time.Second},
		{Class: a, Status: bench.StatusInfeasible, Elapsed: 2 * time.Second},
	}
	sums := bench.Summarize(records)
	require.Len(t, sums, 2)

	assert.Equal(t, "A", sums[0].Class.Name)
	assert.Equal(t, 3, sums[0].Runs)
	assert.Equal(t, 2, sums[0].Solved)
	assert.Equal(t, 1, sums[0].Infeasible)
	assert.Equal(t, 100, sums[0].Cost.Best)
	assert.InDelta(t, 110.0, sums[0].Cost.Mean, 1e-9)
	assert.InDelta(t, 2.0, sums[0].Time.Mean, 1e-9)
	assert.InDelta(t, 1.0, sums[0].Time.Best, 1e-9)

	assert.Equal(t, "B", sums[1].Class.Name)
	assert.Equal(t, 1, sums[1].LoadErrors)
	assert.Zero(t, sums[1].Time.N)

	path := filepath.Join(t.TempDir(), "summary.csv")
	require.NoError(t, bench.WriteSummaryCSV(path, sums))
	rows := readCSV(t, path)
	require.Len(t, rows, 3)
	assert.Equal(t, "class", rows[0][0])
	assert.Equal(t, []string{"A", "3", "2", "1", "0"}, rows[1][:5])
}

func TestWriteSummaryCSVError(t *testing.T) {
	// the target path is an existing directory
	dir := t.TempDir()
	require.Error(t, bench.WriteSummaryCSV(dir, nil))
}
