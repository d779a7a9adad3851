package bench_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"lotSizing/internal/bench"
)

func TestParseClass(t *testing.T) {
	base := filepath.Join("data", "instances")
	c := bench.ParseClass(filepath.Join(base, "T50_tau1.5_var0.2", "inst_01.txt"), base)
	assert.True(t, c.Parsed)
	assert.Equal(t, "T50_tau1.5_var0.2", c.Name)
	assert.Equal(t, 50, c.T)
	assert.InDelta(t, 1.5, c.Tau, 1e-12)
	assert.InDelta(t, 0.2, c.Var, 1e-12)
}

func TestParseClassUnrecognised(t *testing.T) {
	c := bench.ParseClass(filepath.Join("data", "misc", "a.txt"), "data")
	assert.False(t, c.Parsed)
	assert.Equal(t, "misc", c.Name)
	assert.Zero(t, c.T)

	c = bench.ParseClass(filepath.Join("data", "T50_tauX_var0.2", "a.txt"), "data")
	assert.False(t, c.Parsed)
	assert.Equal(t, "T50_tauX_var0.2", c.Name)
}

func TestClassName(t *testing.T) {
	assert.Equal(t, "T50_tau1.5_var0.2", bench.ClassName(50, 1.5, 0.2))
	assert.Equal(t, "T100_tau2.0_var0.1", bench.ClassName(100, 2, 0.1))

	c := bench.ParseClass(filepath.Join("x", bench.ClassName(100, 2, 0.1), "i.txt"), "x")
	assert.True(t, c.Parsed)
	assert.Equal(t, 100, c.T)
	assert.InDelta(t, 2.0, c.Tau, 1e-12)
}
