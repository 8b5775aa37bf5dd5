package walk_test

import (
	"bytes"
	"os"
	"path/filepath"
	"syscall"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/crossfs/pkg/crossfs/filesystem"
	"github.com/arthur-debert/crossfs/pkg/crossfs/walk"
)

var strategies = []walk.Strategy{walk.ChildrenFirst, walk.SiblingsFirst, walk.DeepestFirst}

func options(s walk.Strategy) walk.Options {
	opts := walk.DefaultOptions()
	opts.Strategy = s
	return opts
}

// usrTree builds usr/{bin/zip, lib/libz.a} under /tmp.
func usrTree(t *testing.T) *filesystem.MemFileSystem {
	t.Helper()
	mfs := filesystem.NewMemFileSystem()
	require.NoError(t, mfs.MkdirAll("/tmp/usr/bin", 0o755))
	require.NoError(t, mfs.MkdirAll("/tmp/usr/lib", 0o755))
	require.NoError(t, mfs.WriteFile("/tmp/usr/bin/zip", []byte("zip"), 0o755, false))
	require.NoError(t, mfs.WriteFile("/tmp/usr/lib/libz.a", []byte("lib"), 0o644, false))
	require.NoError(t, mfs.Chdir("/tmp"))
	return mfs
}

func TestWalkOrders(t *testing.T) {
	testCases := []struct {
		strategy walk.Strategy
		expected []string
	}{
		{walk.ChildrenFirst, []string{"usr/bin", "usr/bin/zip", "usr/lib", "usr/lib/libz.a"}},
		{walk.DeepestFirst, []string{"usr/bin/zip", "usr/bin", "usr/lib/libz.a", "usr/lib"}},
		{walk.SiblingsFirst, []string{"usr/bin", "usr/lib", "usr/bin/zip", "usr/lib/libz.a"}},
	}

	for _, tc := range testCases {
		t.Run(tc.strategy.String(), func(t *testing.T) {
			mfs := usrTree(t)
			assert.Equal(t, tc.expected, walk.Collect(mfs, "usr", options(tc.strategy)))
			assert.Equal(t, 0, mfs.OpenHandles())
		})
	}
}

func TestWalkPreservesEnumerationOrder(t *testing.T) {
	mfs := usrTree(t)
	mfs.SetReverse(true)

	got := walk.Collect(mfs, "usr", options(walk.ChildrenFirst))
	assert.Equal(t, []string{"usr/lib", "usr/lib/libz.a", "usr/bin", "usr/bin/zip"}, got)

	got = walk.Collect(mfs, "usr", options(walk.SiblingsFirst))
	assert.Equal(t, []string{"usr/lib", "usr/bin", "usr/lib/libz.a", "usr/bin/zip"}, got)
}

func TestWalkNonRecursive(t *testing.T) {
	for _, s := range strategies {
		t.Run(s.String(), func(t *testing.T) {
			mfs := usrTree(t)
			opts := options(s)
			opts.Recursive = false
			assert.Equal(t, []string{"usr/bin", "usr/lib"}, walk.Collect(mfs, "usr", opts))
		})
	}
}

func TestWalkStopAfterFirst(t *testing.T) {
	for _, s := range strategies {
		t.Run(s.String(), func(t *testing.T) {
			mfs := usrTree(t)
			calls := 0
			walk.Walk(mfs, "/tmp", func(e walk.Entry) walk.Action {
				calls++
				return walk.Stop
			}, options(s))

			assert.Equal(t, 1, calls)
			assert.Equal(t, 0, mfs.OpenHandles(), "handles left open")
		})
	}
}

func TestWalkStopMidway(t *testing.T) {
	for _, s := range strategies {
		t.Run(s.String(), func(t *testing.T) {
			mfs := usrTree(t)
			var seen []string
			walk.Walk(mfs, "usr", func(e walk.Entry) walk.Action {
				seen = append(seen, e.Path())
				if len(seen) == 3 {
					return walk.Stop
				}
				return walk.Continue
			}, options(s))

			assert.Len(t, seen, 3)
			assert.Equal(t, 0, mfs.OpenHandles())
		})
	}
}

func TestWalkUnreadableDirectories(t *testing.T) {
	t.Run("missing root", func(t *testing.T) {
		mfs := filesystem.NewMemFileSystem()
		for _, s := range strategies {
			assert.Empty(t, walk.Collect(mfs, "/nope", options(s)))
		}
	})

	t.Run("file root", func(t *testing.T) {
		mfs := usrTree(t)
		assert.Empty(t, walk.Collect(mfs, "usr/bin/zip"))
	})

	t.Run("unreadable subdirectory yields nothing", func(t *testing.T) {
		for _, s := range strategies {
			mfs := usrTree(t)
			mfs.FailOn("opendir", "/tmp/usr/bin", syscall.EACCES)

			var buf bytes.Buffer
			opts := options(s)
			opts.Logger = zerolog.New(&buf).Level(zerolog.DebugLevel)
			got := walk.Collect(mfs, "usr", opts)

			assert.ElementsMatch(t, []string{"usr/bin", "usr/lib", "usr/lib/libz.a"}, got, s.String())
			assert.Contains(t, buf.String(), "directory not readable")
			assert.Equal(t, 0, mfs.OpenHandles())
		}
	})
}

func TestWalkSymlinksNotDescended(t *testing.T) {
	mfs := usrTree(t)
	require.NoError(t, mfs.Symlink("/tmp/usr/lib", "/tmp/usr/link"))

	var kinds []filesystem.Kind
	got := []string{}
	walk.Walk(mfs, "usr", func(e walk.Entry) walk.Action {
		got = append(got, e.Path())
		kinds = append(kinds, e.Kind)
		return walk.Continue
	})

	assert.Equal(t, []string{"usr/bin", "usr/bin/zip", "usr/lib", "usr/lib/libz.a", "usr/link"}, got)
	assert.Equal(t, filesystem.KindSymlink, kinds[4])
}

func TestWalkWithoutTypeHints(t *testing.T) {
	mfs := usrTree(t)
	mfs.SetTypeHints(false)

	assert.Equal(t,
		[]string{"usr/bin/zip", "usr/bin", "usr/lib/libz.a", "usr/lib"},
		walk.Collect(mfs, "usr", options(walk.DeepestFirst)))
}

func TestWalkDeepestFirstAllowsRemoval(t *testing.T) {
	mfs := usrTree(t)
	walk.Walk(mfs, "usr", func(e walk.Entry) walk.Action {
		require.NoError(t, mfs.Remove(e.Path()))
		return walk.Continue
	}, options(walk.DeepestFirst))

	require.NoError(t, mfs.Remove("usr"))
	_, err := mfs.Stat("usr", false)
	assert.Error(t, err)
}

func TestWalkDeepTree(t *testing.T) {
	mfs := filesystem.NewMemFileSystem()
	dir := "/deep"
	for i := 0; i < 500; i++ {
		dir += "/d"
	}
	require.NoError(t, mfs.MkdirAll(dir, 0o755))

	for _, s := range strategies {
		assert.Len(t, walk.Collect(mfs, "/deep", options(s)), 500, s.String())
	}
}

func TestWalkEntry(t *testing.T) {
	assert.Equal(t, "/usr/bin", walk.Entry{Root: "/usr", Name: "bin"}.Path())
	assert.Equal(t, "/bin", walk.Entry{Root: "/", Name: "bin"}.Path())
	assert.Equal(t, "C:\\Windows\\System32", walk.Entry{Root: "C:\\Windows", Name: "System32"}.Path())
}

func TestParseStrategy(t *testing.T) {
	testCases := []struct {
		input    string
		expected walk.Strategy
	}{
		{"ChildrenFirst", walk.ChildrenFirst},
		{"children-first", walk.ChildrenFirst},
		{"siblings_first", walk.SiblingsFirst},
		{"DEEPEST-FIRST", walk.DeepestFirst},
		{"postorder", walk.DeepestFirst},
	}
	for _, tc := range testCases {
		got, err := walk.ParseStrategy(tc.input)
		require.NoError(t, err, tc.input)
		assert.Equal(t, tc.expected, got, tc.input)
	}

	_, err := walk.ParseStrategy("sideways")
	assert.Error(t, err)

	for _, s := range strategies {
		got, err := walk.ParseStrategy(s.String())
		require.NoError(t, err)
		assert.Equal(t, s, got)
	}
	assert.Equal(t, "Strategy(9)", walk.Strategy(9).String())
}

// The OS gives no ordering guarantee, so real-filesystem walks only check
// parent/child relations.
func TestWalkOSFileSystem(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "usr", "bin"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "usr", "lib"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "usr", "bin", "zip"), []byte("z"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "usr", "lib", "libz.a"), []byte("l"), 0o644))

	osfs := filesystem.NewOSFileSystem()
	usr := filepath.Join(root, "usr")
	bin := filepath.Join(usr, "bin")
	zip := filepath.Join(bin, "zip")
	lib := filepath.Join(usr, "lib")
	libz := filepath.Join(lib, "libz.a")

	index := func(list []string, p string) int {
		for i, v := range list {
			if v == p {
				return i
			}
		}
		t.Fatalf("%s not visited in %v", p, list)
		return -1
	}

	got := walk.Collect(osfs, usr, options(walk.ChildrenFirst))
	require.Len(t, got, 4)
	assert.Less(t, index(got, bin), index(got, zip))
	assert.Less(t, index(got, lib), index(got, libz))

	got = walk.Collect(osfs, usr, options(walk.DeepestFirst))
	require.Len(t, got, 4)
	assert.Greater(t, index(got, bin), index(got, zip))
	assert.Greater(t, index(got, lib), index(got, libz))

	got = walk.Collect(osfs, usr, options(walk.SiblingsFirst))
	require.Len(t, got, 4)
	assert.ElementsMatch(t, []string{bin, lib}, got[:2])
	assert.ElementsMatch(t, []string{zip, libz}, got[2:])
}
