package filesystem

import (
	"bytes"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDryRunFileSystem(t *testing.T) {
	mfs := NewMemFileSystem()
	require.NoError(t, mfs.MkdirAll("/src", 0o755))
	require.NoError(t, mfs.WriteFile("/src/a", []byte("data"), 0o644, false))

	var buf bytes.Buffer
	dry := NewDryRunFileSystem(mfs, zerolog.New(&buf))

	data, err := dry.ReadAt("/src/a", 0, -1)
	require.NoError(t, err)
	assert.Equal(t, "data", string(data))

	require.NoError(t, dry.MkdirAll("/dst", 0o755))
	require.NoError(t, dry.WriteFile("/dst/a", []byte("x"), 0o644, true))
	w, err := dry.Create("/dst/b", 0o600)
	require.NoError(t, err)
	_, err = w.Write([]byte("discarded"))
	require.NoError(t, err)
	require.NoError(t, w.Close())
	require.NoError(t, dry.Rename("/src/a", "/src/b"))
	require.NoError(t, dry.Symlink("/src", "/link"))
	require.NoError(t, dry.Chtimes("/src/a", time.Time{}, time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)))
	require.NoError(t, dry.Remove("/src"))

	assert.Equal(t, []string{
		"mkdir /dst 0755",
		"append /dst/a 1 bytes",
		"create /dst/b 0600",
		"rename /src/a /src/b",
		"symlink /link /src",
		"chtimes /src/a 2020-01-01T00:00:00Z",
		"remove /src",
	}, dry.Changes())
	assert.Contains(t, buf.String(), "dry run")

	_, err = mfs.Stat("/dst", false)
	assert.Error(t, err, "dry run must not create anything")
	_, err = mfs.Stat("/src/a", false)
	assert.NoError(t, err)
}
