package env_test

import (
	"os"
	"runtime"
	"strings"
	"testing"

	"github.com/adrg/xdg"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/crossfs/pkg/crossfs/env"
	"github.com/arthur-debert/crossfs/pkg/crossfs/path"
)

func TestRootAndDrives(t *testing.T) {
	root := env.Root()
	assert.True(t, path.IsRoot(root), root)
	assert.Contains(t, env.Drives(), root)
	if runtime.GOOS != "windows" {
		assert.Equal(t, []string{"/"}, env.Drives())
	}
}

func TestUserAndHome(t *testing.T) {
	assert.Equal(t, xdg.Home, env.Home())

	name := env.User()
	require.NotEmpty(t, name)
	if runtime.GOOS != "windows" {
		assert.NotEmpty(t, env.HomeOf(name))
	}
	assert.Empty(t, env.HomeOf("crossfs-no-such-user-0f3a"))
}

func TestDirectories(t *testing.T) {
	assert.Equal(t, os.TempDir(), env.Tmp())

	wd, err := os.Getwd()
	require.NoError(t, err)
	assert.Equal(t, wd, env.Cwd())
	assert.Len(t, env.Sep(), 1)
}

func TestUUID(t *testing.T) {
	a, b := env.UUID(), env.UUID()
	assert.NotEqual(t, a, b)

	parsed, err := uuid.Parse(a)
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(4), parsed.Version())
}

func TestTempPath(t *testing.T) {
	p := env.TempPath("crossfs-")
	assert.Equal(t, path.Prune(env.Tmp()), path.Dirname(p))
	assert.True(t, strings.HasPrefix(path.Basename(p), "crossfs-"))

	_, err := os.Lstat(p)
	assert.True(t, os.IsNotExist(err))
}
