package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ptxamd/ptx2llvm/internal/config"
)

func TestLoadWithEmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)
	require.Equal(t, config.Default(), cfg)
}

func TestLoadWithMissingFileFallsBackToDefaults(t *testing.T) {
	cfg, err := config.Load(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	require.NoError(t, err)
	require.Equal(t, config.Default(), cfg)
}

func TestLoadOverlaysYAMLOntoDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ptx2llvm.yaml")
	yaml := "logging:\n  level: debug\n  json: true\nbackend:\n  optimization_level: \"3\"\n"
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o644))

	cfg, err := config.Load(path)
	require.NoError(t, err)

	require.Equal(t, "debug", cfg.Logging.Level)
	require.True(t, cfg.Logging.JSON)
	require.Equal(t, "3", cfg.Backend.OptimizationLevel)
	// Unset sections keep their defaults.
	require.Equal(t, "amdgcn-amd-amdhsa", cfg.Target.Triple)
}

func TestLoadWithUnparsableYAMLReturnsError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ptx2llvm.yaml")
	require.NoError(t, os.WriteFile(path, []byte("not: valid: yaml: at: all:"), 0o644))

	_, err := config.Load(path)
	require.Error(t, err)
}
