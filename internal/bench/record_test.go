package bench_test

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lotSizing/internal/bench"
)

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestRecordRow(t *testing.T) {
	rec := bench.Record{
		Class:    bench.Class{Name: "T3_tau1.5_var0.2", T: 3, Tau: 1.5, Var: 0.2, Parsed: true},
		File:     "a.txt",
		Cost:     110,
		Feasible: true,
		Elapsed:  1500 * time.Millisecond,
		Status:   bench.StatusOK,
	}
	assert.Equal(t,
		[]string{"T3_tau1.5_var0.2", "a.txt", "3", "1.5", "0.2", "110", "1", "1.500", "ok"},
		rec.Row())

	bad := bench.Record{Class: bench.Class{Name: "misc"}, File: "b.txt", Status: bench.StatusLoadError}
	assert.Equal(t,
		[]string{"misc", "b.txt", "", "", "", "", "0", "0.000", "load_error"},
		bad.Row())

	plain := bench.Record{
		Class:    bench.Class{Name: "misc"},
		File:     "c.txt",
		Periods:  12,
		Cost:     900,
		Feasible: true,
		Status:   bench.StatusOK,
	}
	assert.Equal(t,
		[]string{"misc", "c.txt", "12", "", "", "900", "1", "0.000", "ok"},
		plain.Row())

	line, err := bench.FormatRecord(rec)
	require.NoError(t, err)
	assert.Equal(t, "T3_tau1.5_var0.2,a.txt,3,1.5,0.2,110,1,1.500,ok\n", string(line))
}

func TestResultsFileHeaderOnce(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "results.csv")

	rf, err := bench.OpenResults(path)
	require.NoError(t, err)
	require.NoError(t, rf.Append(bench.Record{File: "a.txt", Status: bench.StatusOK, Feasible: true, Cost: 1}))
	require.NoError(t, rf.Close())

	rf, err = bench.OpenResults(path)
	require.NoError(t, err)
	require.NoError(t, rf.Append(bench.Record{File: "b.txt", Status: bench.StatusInfeasible}))
	require.NoError(t, rf.Close())

	rows := readCSV(t, path)
	require.Len(t, rows, 3)
	assert.Equal(t, bench.Header, rows[0])
	assert.Equal(t, "a.txt", rows[1][1])
	assert.Equal(t, "b.txt", rows[2][1])
}

func TestResultsFileConcurrentAppend(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.csv")
	rf, err := bench.OpenResults(path)
	require.NoError(t, err)

	const n = 64
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			rec := bench.Record{
				Class:    bench.Class{Name: "c"},
				File:     "f" + strconv.Itoa(i) + ".txt",
				Cost:     i,
				Feasible: true,
				Status:   bench.StatusOK,
			}
			assert.NoError(t, rf.Append(rec))
		}()
	}
	wg.Wait()
	require.NoError(t, rf.Close())

	rows := readCSV(t, path)
	require.Len(t, rows, n+1)
	seen := make(map[string]bool, n)
	for _, row := range rows[1:] {
		require.Len(t, row, len(bench.Header))
		seen[row[1]] = true
	}
	assert.Len(t, seen, n)
}
