package bench

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

var errDiskFull = errors.New("disk full")

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errDiskFull }

func TestWriteSummaryReportsWriteErrors(t *testing.T) {
	sums := []Summary{{Class: Class{Name: "A"}, Runs: 1}}
	err := writeSummary(failingWriter{}, sums)
	require.ErrorIs(t, err, errDiskFull)
}
