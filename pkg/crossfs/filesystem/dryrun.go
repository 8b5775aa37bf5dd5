package filesystem

import (
	"fmt"
	"io"
	"io/fs"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// DryRunFileSystem wraps a FileSystem and simulates every change to it.
// Reads go to the wrapped filesystem; changes are logged, recorded and
// reported as successful without touching anything.
type DryRunFileSystem struct {
	FileSystem

	logger  zerolog.Logger
	mu      sync.Mutex
	changes []string
}

// NewDryRunFileSystem creates a DryRunFileSystem over fsys.
func NewDryRunFileSystem(fsys FileSystem, logger zerolog.Logger) *DryRunFileSystem {
	return &DryRunFileSystem{FileSystem: fsys, logger: logger}
}

// Changes returns the simulated changes in the order they were requested.
func (d *DryRunFileSystem) Changes() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]string, len(d.changes))
	copy(out, d.changes)
	return out
}

func (d *DryRunFileSystem) record(op, name string, args ...string) {
	change := op + " " + name
	for _, a := range args {
		change += " " + a
	}
	d.mu.Lock()
	d.changes = append(d.changes, change)
	d.mu.Unlock()
	d.logger.Info().Str("op", op).Str("path", name).Strs("args", args).Msg("dry run")
}

func (d *DryRunFileSystem) Remove(name string) error {
	d.record("remove", name)
	return nil
}

func (d *DryRunFileSystem) Mkdir(name string, perm fs.FileMode) error {
	d.record("mkdir", name, fmt.Sprintf("%04o", perm.Perm()))
	return nil
}

func (d *DryRunFileSystem) MkdirAll(name string, perm fs.FileMode) error {
	d.record("mkdir", name, fmt.Sprintf("%04o", perm.Perm()))
	return nil
}

func (d *DryRunFileSystem) Rename(oldpath, newpath string) error {
	d.record("rename", oldpath, newpath)
	return nil
}

func (d *DryRunFileSystem) Symlink(target, link string) error {
	d.record("symlink", link, target)
	return nil
}

func (d *DryRunFileSystem) WriteFile(name string, data []byte, perm fs.FileMode, appending bool) error {
	op := "write"
	if appending {
		op = "append"
	}
	d.record(op, name, fmt.Sprintf("%d bytes", len(data)))
	return nil
}

func (d *DryRunFileSystem) Create(name string, perm fs.FileMode) (io.WriteCloser, error) {
	d.record("create", name, fmt.Sprintf("%04o", perm.Perm()))
	return nopWriteCloser{io.Discard}, nil
}

func (d *DryRunFileSystem) Chtimes(name string, atime, mtime time.Time) error {
	d.record("chtimes", name, mtime.UTC().Format(time.RFC3339))
	return nil
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }
