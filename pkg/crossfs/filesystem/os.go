package filesystem

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"syscall"
	"time"

	"github.com/adrg/xdg"
)

// readDirBatch is how many entries OSFileSystem reads from the OS at once.
const readDirBatch = 64

// OSFileSystem implements FileSystem on top of the host operating system.
// Paths are used as given; relative paths resolve against the process
// working directory.
type OSFileSystem struct{}

// NewOSFileSystem creates a new OS-based filesystem
func NewOSFileSystem() *OSFileSystem {
	return &OSFileSystem{}
}

type osDirHandle struct {
	f   *os.File
	buf []fs.DirEntry
	eof bool
}

// OpenDir implements FileSystem. Entries come back in the order the OS
// reports them.
func (osfs *OSFileSystem) OpenDir(name string) (DirHandle, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	fi, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	if !fi.IsDir() {
		_ = f.Close()
		return nil, &fs.PathError{Op: "opendir", Path: name, Err: syscall.ENOTDIR}
	}
	return &osDirHandle{f: f}, nil
}

func (h *osDirHandle) Next() (DirEntry, error) {
	for len(h.buf) == 0 {
		if h.eof {
			return DirEntry{}, io.EOF
		}
		entries, err := h.f.ReadDir(readDirBatch)
		if err != nil {
			if !errors.Is(err, io.EOF) {
				return DirEntry{}, err
			}
			h.eof = true
		}
		h.buf = entries
	}

	d := h.buf[0]
	h.buf = h.buf[1:]
	return DirEntry{Name: d.Name(), Kind: KindOf(d.Type())}, nil
}

func (h *osDirHandle) Close() error {
	return h.f.Close()
}

// Stat implements FileSystem
func (osfs *OSFileSystem) Stat(name string, follow bool) (Info, error) {
	return stat(name, follow)
}

// Remove implements FileSystem
func (osfs *OSFileSystem) Remove(name string) error {
	return os.Remove(name)
}

// Mkdir implements FileSystem
func (osfs *OSFileSystem) Mkdir(name string, perm fs.FileMode) error {
	return os.Mkdir(name, perm)
}

// MkdirAll implements FileSystem
func (osfs *OSFileSystem) MkdirAll(name string, perm fs.FileMode) error {
	return os.MkdirAll(name, perm)
}

// Rename implements FileSystem
func (osfs *OSFileSystem) Rename(oldpath, newpath string) error {
	return os.Rename(oldpath, newpath)
}

// Symlink implements FileSystem
func (osfs *OSFileSystem) Symlink(target, link string) error {
	return os.Symlink(target, link)
}

// Readlink implements FileSystem
func (osfs *OSFileSystem) Readlink(name string) (string, error) {
	return os.Readlink(name)
}

// Open implements FileSystem
func (osfs *OSFileSystem) Open(name string) (io.ReadCloser, error) {
	return os.Open(name)
}

// ReadAt implements FileSystem
func (osfs *OSFileSystem) ReadAt(name string, off, n int64) ([]byte, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = f.Close()
	}()

	if off > 0 {
		if _, err := f.Seek(off, io.SeekStart); err != nil {
			return nil, err
		}
	}
	var r io.Reader = f
	if n >= 0 {
		r = io.LimitReader(f, n)
	}
	return io.ReadAll(r)
}

// WriteFile implements FileSystem
func (osfs *OSFileSystem) WriteFile(name string, data []byte, perm fs.FileMode, appending bool) error {
	flag := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	if appending {
		flag = os.O_WRONLY | os.O_CREATE | os.O_APPEND
	}
	f, err := os.OpenFile(name, flag, perm)
	if err != nil {
		return err
	}
	_, err = f.Write(data)
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	return err
}

// Create implements FileSystem
func (osfs *OSFileSystem) Create(name string, perm fs.FileMode) (io.WriteCloser, error) {
	return os.OpenFile(name, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, perm)
}

// Chtimes implements FileSystem
func (osfs *OSFileSystem) Chtimes(name string, atime, mtime time.Time) error {
	return os.Chtimes(name, atime, mtime)
}

// Access implements FileSystem
func (osfs *OSFileSystem) Access(name string, mode AccessMode) bool {
	return access(name, mode)
}

// Getwd implements FileSystem
func (osfs *OSFileSystem) Getwd() (string, error) {
	return os.Getwd()
}

// Chdir implements FileSystem
func (osfs *OSFileSystem) Chdir(dir string) error {
	return os.Chdir(dir)
}

// Home implements FileSystem
func (osfs *OSFileSystem) Home() string {
	return xdg.Home
}

// Canonicalize implements FileSystem
func (osfs *OSFileSystem) Canonicalize(name string) (string, error) {
	return filepath.EvalSymlinks(name)
}
