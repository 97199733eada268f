package pprof

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandlerWritesProfiles(t *testing.T) {
	dir := t.TempDir()
	cfg := Config{
		CPUProfile:  filepath.Join(dir, "out", "cpu.prof"),
		HeapProfile: filepath.Join(dir, "out", "heap.prof"),
	}
	require.True(t, cfg.Enabled())

	h := NewHandler(cfg)
	require.NoError(t, h.Start())
	require.NoError(t, h.Stop())
	require.NoError(t, h.Stop(), "second stop is a no-op")

	for _, path := range []string{cfg.CPUProfile, cfg.HeapProfile} {
		info, err := os.Stat(path)
		require.NoError(t, err, path)
		assert.Positive(t, info.Size(), path)
	}
}

func TestHandlerDisabled(t *testing.T) {
	cfg := Config{}
	assert.False(t, cfg.Enabled())

	h := NewHandler(cfg)
	require.NoError(t, h.Start())
	require.NoError(t, h.Stop())
}
