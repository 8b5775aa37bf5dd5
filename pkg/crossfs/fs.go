// Package crossfs is a filesystem toolkit that understands both POSIX ("/usr")
// and Windows ("C:\Windows") paths on any host.
//
// The lexical path functions live in the path subpackage. FS bundles a
// filesystem backend with logging and default modes and exposes the walking,
// bulk and single-entry operations on top of it, expanding a leading "~"
// to the backend's home directory. Batches of operations can
// be queued, ordered by their dependencies and run, or stored as JSON plans.
//
// Example usage:
//
//	fs := crossfs.New(filesystem.NewOSFileSystem())
//	if err := fs.Copy("~/project", "/backup"); err != nil {
//		log.Fatal(err)
//	}
//	for _, p := range fs.Find("/backup/project", walk.DeepestFirst) {
//		fmt.Println(p)
//	}
package crossfs

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/arthur-debert/crossfs/pkg/crossfs/core"
	"github.com/arthur-debert/crossfs/pkg/crossfs/filesystem"
	"github.com/arthur-debert/crossfs/pkg/crossfs/operations"
	"github.com/arthur-debert/crossfs/pkg/crossfs/path"
	"github.com/arthur-debert/crossfs/pkg/crossfs/walk"
)

// Type aliases for core types
type OperationID = core.OperationID
type OperationDesc = core.OperationDesc
type OperationStatus = core.OperationStatus

const (
	StatusSuccess = core.StatusSuccess
	StatusFailure = core.StatusFailure
	StatusSkipped = core.StatusSkipped
)

// FileSystem is the backend every FS operation goes through.
type FileSystem = filesystem.FileSystem

// FS runs filesystem operations against a backend.
type FS struct {
	fsys FileSystem
	opts operations.Options
}

// New creates an FS over fsys with default modes and no logging.
func New(fsys FileSystem) *FS {
	return &FS{fsys: fsys, opts: operations.DefaultOptions()}
}

// NewOS creates an FS over the host filesystem.
func NewOS() *FS {
	return New(filesystem.NewOSFileSystem())
}

// WithLogger returns a copy of fs that logs to logger.
func (fs *FS) WithLogger(logger zerolog.Logger) *FS {
	c := *fs
	c.opts.Logger = logger
	return &c
}

// WithOptions returns a copy of fs using opts for created entries and
// logging.
func (fs *FS) WithOptions(opts operations.Options) *FS {
	c := *fs
	c.opts = opts
	return &c
}

// WithFileSystem returns a copy of fs running against fsys.
func (fs *FS) WithFileSystem(fsys FileSystem) *FS {
	c := *fs
	c.fsys = fsys
	return &c
}

// FileSystem returns the backend.
func (fs *FS) FileSystem() FileSystem {
	return fs.fsys
}

// Logger returns the logger operations report to.
func (fs *FS) Logger() zerolog.Logger {
	return fs.opts.Logger
}

// Normalize normalizes p lexically, expanding "~" to the backend's home.
func (fs *FS) Normalize(p string) string {
	return path.NormalizeWithHome(p, fs.fsys.Home())
}

// Realpath returns the absolute, symlink-free form of p. See
// operations.Realpath.
func (fs *FS) Realpath(p string) string {
	return operations.Realpath(fs.fsys, p)
}

// expand resolves a leading "~" against the backend's home directory.
// Every FS method taking a path goes through it.
func (fs *FS) expand(p string) string {
	return path.ExpandWithHome(p, fs.fsys.Home())
}

// Walk visits the entries below dir. Recursion defaults to on.
func (fs *FS) Walk(dir string, visit walk.Visitor, strategy walk.Strategy, recursive ...bool) {
	walk.Walk(fs.fsys, fs.expand(dir), visit, fs.walkOptions(strategy, recursive))
}

// Find returns every entry below dir in walk order. Recursion defaults to
// on.
func (fs *FS) Find(dir string, strategy walk.Strategy, recursive ...bool) []string {
	return operations.Find(fs.fsys, fs.expand(dir), fs.walkOptions(strategy, recursive))
}

func (fs *FS) walkOptions(strategy walk.Strategy, recursive []bool) walk.Options {
	return walk.Options{
		Recursive: len(recursive) == 0 || recursive[0],
		Strategy:  strategy,
		Logger:    fs.opts.Logger,
	}
}

// Remove deletes p recursively. Missing paths are not an error.
func (fs *FS) Remove(p string) error {
	return operations.Remove(fs.fsys, fs.expand(p), fs.opts)
}

// Copy copies src to dst recursively, into dst when it is a directory.
func (fs *FS) Copy(src, dst string) error {
	return operations.Copy(fs.fsys, fs.expand(src), fs.expand(dst), fs.opts)
}

// Mkdir creates dir and its missing parents.
func (fs *FS) Mkdir(dir string) error {
	return operations.Mkdir(fs.fsys, fs.expand(dir), fs.opts)
}

// Touch creates file if needed and sets its times; zero means now.
func (fs *FS) Touch(file string, atime, mtime time.Time) error {
	return operations.Touch(fs.fsys, fs.expand(file), atime, mtime, fs.opts)
}

// Rename moves oldpath to newpath.
func (fs *FS) Rename(oldpath, newpath string) error {
	return operations.Rename(fs.fsys, fs.expand(oldpath), fs.expand(newpath))
}

// Symlink creates link pointing at target.
func (fs *FS) Symlink(target, link string) error {
	return operations.Symlink(fs.fsys, target, fs.expand(link))
}

// Chdir changes the working directory and returns the previous one.
func (fs *FS) Chdir(dir string) (string, error) {
	return operations.Chdir(fs.fsys, fs.expand(dir))
}

// IsExist reports whether p exists, following symbolic links.
func (fs *FS) IsExist(p string) bool {
	return operations.IsExist(fs.fsys, fs.expand(p), true)
}

// IsEmpty reports whether p is an empty file or directory, or missing.
func (fs *FS) IsEmpty(p string) bool {
	return operations.IsEmpty(fs.fsys, fs.expand(p))
}

// IsDir reports whether p is a directory, following symbolic links.
func (fs *FS) IsDir(p string) bool {
	return operations.IsDir(fs.fsys, fs.expand(p), true)
}

// IsFile reports whether p is a regular file, following symbolic links.
func (fs *FS) IsFile(p string) bool {
	return operations.IsFile(fs.fsys, fs.expand(p), true)
}

// IsSymlink reports whether p is a symbolic link.
func (fs *FS) IsSymlink(p string) bool {
	return operations.IsSymlink(fs.fsys, fs.expand(p))
}

func (fs *FS) IsReadable(p string) bool   { return operations.IsReadable(fs.fsys, fs.expand(p)) }
func (fs *FS) IsWritable(p string) bool   { return operations.IsWritable(fs.fsys, fs.expand(p)) }
func (fs *FS) IsExecutable(p string) bool { return operations.IsExecutable(fs.fsys, fs.expand(p)) }

// Filetime returns the access, modification and change times of p.
func (fs *FS) Filetime(p string) (atime, mtime, ctime time.Time, err error) {
	return operations.Filetime(fs.fsys, fs.expand(p))
}

// Filesize returns the size of p in bytes, or 0.
func (fs *FS) Filesize(p string) int64 {
	return operations.Filesize(fs.fsys, fs.expand(p))
}

// Read returns the content of file.
func (fs *FS) Read(file string) ([]byte, error) {
	return operations.Read(fs.fsys, fs.expand(file))
}

// ReadRange returns at most length bytes of file from start.
func (fs *FS) ReadRange(file string, start, length int64) ([]byte, error) {
	return operations.ReadRange(fs.fsys, fs.expand(file), start, length)
}

// ReadSplit returns the content of file split at delim.
func (fs *FS) ReadSplit(file string, delim byte) ([]string, error) {
	return operations.ReadSplit(fs.fsys, fs.expand(file), delim)
}

// Write replaces the content of file, creating parents as needed.
func (fs *FS) Write(file string, data []byte) error {
	return operations.Write(fs.fsys, fs.expand(file), data, fs.opts)
}

// Append appends to file, creating parents as needed.
func (fs *FS) Append(file string, data []byte) error {
	return operations.Append(fs.fsys, fs.expand(file), data, fs.opts)
}
