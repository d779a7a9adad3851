package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lotSizing/internal/config"
)

func TestGetters(t *testing.T) {
	t.Setenv("LS_TEST_ALPHA", "0.45")
	t.Setenv("LS_TEST_ITER", "300")
	t.Setenv("LS_TEST_SEED", "20251112")
	t.Setenv("LS_TEST_LIMIT", "90s")
	t.Setenv("LS_TEST_BAD", "many")
	t.Setenv("LS_TEST_BLANK", "  ")

	assert.Equal(t, 0.45, config.Float("LS_TEST_ALPHA", 0.3))
	assert.Equal(t, 300, config.Int("LS_TEST_ITER", 200))
	assert.Equal(t, int64(20251112), config.Int64("LS_TEST_SEED", 1))
	assert.Equal(t, 90*time.Second, config.Duration("LS_TEST_LIMIT", time.Minute))

	assert.Equal(t, 200, config.Int("LS_TEST_BAD", 200))
	assert.Equal(t, "x", config.Get("LS_TEST_BLANK", "x"))
	assert.Equal(t, "fallback", config.Get("LS_TEST_UNSET", "fallback"))
}

func TestLoadEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bench.env")
	require.NoError(t, os.WriteFile(path, []byte("LS_TEST_FROM_FILE=7\nLS_TEST_KEEP=file\n"), 0o644))
	t.Setenv("LS_TEST_KEEP", "env")
	t.Cleanup(func() { os.Unsetenv("LS_TEST_FROM_FILE") })

	require.NoError(t, config.LoadEnv(path, filepath.Join(dir, "missing.env")))
	assert.Equal(t, 7, config.Int("LS_TEST_FROM_FILE", 0))
	assert.Equal(t, "env", config.Get("LS_TEST_KEEP", ""))
}
