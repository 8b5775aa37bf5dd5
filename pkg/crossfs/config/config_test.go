package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/adrg/xdg"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/crossfs/pkg/crossfs/walk"
)

// isolate points the XDG config lookup at an empty directory.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("XDG_CONFIG_DIRS", dir)
	xdg.Reload()
	t.Cleanup(xdg.Reload)
	return dir
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestLoadDefaults(t *testing.T) {
	isolate(t)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, walk.ChildrenFirst, cfg.WalkStrategy)
	assert.True(t, cfg.WalkRecursive)
	assert.Equal(t, os.FileMode(0o755), cfg.DirMode)
	assert.Equal(t, os.FileMode(0o644), cfg.FileMode)
	assert.Empty(t, cfg.File)
}

func TestLoadXDGFile(t *testing.T) {
	dir := isolate(t)
	writeFile(t, filepath.Join(dir, "crossfs", "config.toml"), `
[log]
level = "debug"

[walk]
strategy = "deepest-first"
recursive = false

[dir]
mode = 0o700
`)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "crossfs", "config.toml"), cfg.File)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, walk.DeepestFirst, cfg.WalkStrategy)
	assert.False(t, cfg.WalkRecursive)
	assert.Equal(t, os.FileMode(0o700), cfg.DirMode)
	assert.Equal(t, os.FileMode(0o644), cfg.FileMode)
}

func TestLoadExplicitYAML(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "crossfs.yaml")
	writeFile(t, path, "walk:\n  strategy: siblings_first\nfile:\n  mode: \"0600\"\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, walk.SiblingsFirst, cfg.WalkStrategy)
	assert.Equal(t, os.FileMode(0o600), cfg.FileMode)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "config.toml")
	writeFile(t, path, "[log]\nlevel = \"info\"\n")
	t.Setenv("CROSSFS_LOG_LEVEL", "TRACE")
	t.Setenv("CROSSFS_WALK_RECURSIVE", "false")
	t.Setenv("CROSSFS_DIR_MODE", "750")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "trace", cfg.LogLevel)
	assert.False(t, cfg.WalkRecursive)
	assert.Equal(t, os.FileMode(0o750), cfg.DirMode)

	logger := zerolog.Nop()
	assert.Equal(t, os.FileMode(0o750), cfg.Operations(logger).DirMode)
	assert.False(t, cfg.Walk(logger).Recursive)
}

func TestLoadErrors(t *testing.T) {
	isolate(t)
	dir := t.TempDir()

	_, err := Load(filepath.Join(dir, "missing.toml"))
	assert.Error(t, err)

	ini := filepath.Join(dir, "config.ini")
	writeFile(t, ini, "x=1")
	_, err = Load(ini)
	assert.ErrorContains(t, err, "unsupported format")

	bad := filepath.Join(dir, "bad.toml")
	writeFile(t, bad, "[walk]\nstrategy = \"sideways\"\n")
	_, err = Load(bad)
	assert.ErrorContains(t, err, "walk.strategy")

	t.Setenv("CROSSFS_FILE_MODE", "999")
	_, err = Load("")
	assert.ErrorContains(t, err, "file.mode")
}

func TestParseMode(t *testing.T) {
	testCases := []struct {
		input    interface{}
		expected os.FileMode
	}{
		{"0755", 0o755},
		{"644", 0o644},
		{"0o700", 0o700},
		{int64(0o600), 0o600},
		{float64(493), 0o755},
	}
	for _, tc := range testCases {
		got, err := parseMode(tc.input)
		require.NoError(t, err, tc.input)
		assert.Equal(t, tc.expected, got, tc.input)
	}

	_, err := parseMode("rwx")
	assert.Error(t, err)
	_, err = parseMode(int64(0o17777))
	assert.Error(t, err)
	_, err = parseMode(true)
	assert.Error(t, err)
}
