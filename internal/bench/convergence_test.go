package bench_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lotSizing/internal/bench"
	"lotSizing/internal/opt"
)

func TestLogPath(t *testing.T) {
	c := bench.Class{Name: "T50_tau1.5_var0.2"}
	got := bench.LogPath("logs", c, filepath.Join("data", "T50_tau1.5_var0.2", "inst_07.txt"))
	assert.Equal(t, filepath.Join("logs", "T50_tau1.5_var0.2", "inst_07_log.csv"), got)
}

func TestWriteConvergence(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "c", "x_log.csv")
	points := []opt.Point{
		{Elapsed: 250 * time.Millisecond, Cost: 180},
		{Elapsed: time.Second, Cost: 110},
	}
	require.NoError(t, bench.WriteConvergence(path, points))

	rows := readCSV(t, path)
	assert.Equal(t, [][]string{
		{"elapsed_s", "cost"},
		{"0.250000", "180"},
		{"1.000000", "110"},
	}, rows)

	back, err := bench.ReadConvergence(path)
	require.NoError(t, err)
	require.Len(t, back, 2)
	assert.Equal(t, 110, back[1].Cost)
	assert.Equal(t, time.Second, back[1].Elapsed)

	// no temp files left behind
	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestWriteConvergenceEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty_log.csv")
	require.NoError(t, bench.WriteConvergence(path, nil))
	assert.Equal(t, [][]string{{"elapsed_s", "cost"}}, readCSV(t, path))
}
