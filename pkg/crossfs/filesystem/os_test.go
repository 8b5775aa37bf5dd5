package filesystem_test

import (
	"io"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/crossfs/pkg/crossfs/core"
	"github.com/arthur-debert/crossfs/pkg/crossfs/filesystem"
)

func TestOSFileSystem(t *testing.T) {
	tempDir := t.TempDir()
	osfs := filesystem.NewOSFileSystem()

	t.Run("WriteFile and ReadAt", func(t *testing.T) {
		name := filepath.Join(tempDir, "test.txt")
		require.NoError(t, osfs.WriteFile(name, []byte("Hello"), 0o644, false))
		require.NoError(t, osfs.WriteFile(name, []byte(", World!"), 0o644, true))

		data, err := osfs.ReadAt(name, 0, -1)
		require.NoError(t, err)
		assert.Equal(t, "Hello, World!", string(data))

		data, err = osfs.ReadAt(name, 7, 5)
		require.NoError(t, err)
		assert.Equal(t, "World", string(data))

		info, err := osfs.Stat(name, true)
		require.NoError(t, err)
		assert.Equal(t, filesystem.KindFile, info.Kind)
		assert.Equal(t, int64(13), info.Size)
		assert.False(t, info.Mtime.IsZero())
	})

	t.Run("OpenDir lists every entry once", func(t *testing.T) {
		dir := filepath.Join(tempDir, "list")
		require.NoError(t, osfs.MkdirAll(filepath.Join(dir, "sub"), 0o755))
		for i := 0; i < 100; i++ {
			require.NoError(t, osfs.WriteFile(filepath.Join(dir, "f"+string(rune('a'+i%26))+string(rune('a'+i/26))), nil, 0o644, false))
		}

		h, err := osfs.OpenDir(dir)
		require.NoError(t, err)
		entries := readAll(t, h)
		require.NoError(t, h.Close())

		got := names(entries)
		sort.Strings(got)
		assert.Len(t, got, 101)
		assert.Equal(t, "sub", got[100])
		assert.NotContains(t, got, ".")
	})

	t.Run("OpenDir on a file", func(t *testing.T) {
		name := filepath.Join(tempDir, "plain")
		require.NoError(t, osfs.WriteFile(name, nil, 0o644, false))
		_, err := osfs.OpenDir(name)
		assert.Equal(t, syscall.ENOTDIR, core.Code(err))
	})

	t.Run("Remove reports not empty", func(t *testing.T) {
		dir := filepath.Join(tempDir, "full")
		require.NoError(t, osfs.MkdirAll(filepath.Join(dir, "child"), 0o755))
		err := osfs.Remove(dir)
		assert.True(t, core.IsNotEmpty(err), "got %v", err)
		assert.True(t, core.IsNotExist(osfs.Remove(filepath.Join(tempDir, "none"))))
	})

	t.Run("Symlink and Stat", func(t *testing.T) {
		if runtime.GOOS == "windows" {
			t.Skip("symlinks need privileges on windows")
		}
		target := filepath.Join(tempDir, "target")
		link := filepath.Join(tempDir, "link")
		require.NoError(t, osfs.MkdirAll(target, 0o755))
		require.NoError(t, osfs.Symlink(target, link))

		info, err := osfs.Stat(link, false)
		require.NoError(t, err)
		assert.Equal(t, filesystem.KindSymlink, info.Kind)

		info, err = osfs.Stat(link, true)
		require.NoError(t, err)
		assert.Equal(t, filesystem.KindDir, info.Kind)

		got, err := osfs.Readlink(link)
		require.NoError(t, err)
		assert.Equal(t, target, got)

		canon, err := osfs.Canonicalize(link)
		require.NoError(t, err)
		want, err := filepath.EvalSymlinks(target)
		require.NoError(t, err)
		assert.Equal(t, want, canon)
	})

	t.Run("Chtimes and Access", func(t *testing.T) {
		name := filepath.Join(tempDir, "times")
		require.NoError(t, osfs.WriteFile(name, nil, 0o600, false))

		mt := time.Date(2020, 5, 6, 7, 8, 9, 0, time.UTC)
		require.NoError(t, osfs.Chtimes(name, mt, mt))
		info, err := osfs.Stat(name, true)
		require.NoError(t, err)
		assert.True(t, info.Mtime.Equal(mt), "mtime %v", info.Mtime)

		assert.True(t, osfs.Access(name, filesystem.AccessRead))
		assert.False(t, osfs.Access(filepath.Join(tempDir, "nope"), filesystem.AccessRead))
	})

	t.Run("Create streams data", func(t *testing.T) {
		name := filepath.Join(tempDir, "created")
		w, err := osfs.Create(name, 0o644)
		require.NoError(t, err)
		_, err = io.WriteString(w, "12345")
		require.NoError(t, err)
		require.NoError(t, w.Close())

		r, err := osfs.Open(name)
		require.NoError(t, err)
		defer func() { _ = r.Close() }()
		b, err := io.ReadAll(r)
		require.NoError(t, err)
		assert.Equal(t, "12345", string(b))
	})

	t.Run("Getwd", func(t *testing.T) {
		wd, err := osfs.Getwd()
		require.NoError(t, err)
		expected, _ := os.Getwd()
		assert.Equal(t, expected, wd)
		assert.NotEmpty(t, osfs.Home())
	})
}
