package filesystem

import (
	"io"
	"io/fs"
	"time"
)

// Kind is the type of a directory entry.
type Kind uint8

const (
	// KindMissing means the entry does not exist. As a DirEntry hint it
	// means the backend could not tell the type without a stat.
	KindMissing Kind = iota
	KindFile
	KindDir
	KindSymlink
	KindOther
)

func (k Kind) String() string {
	switch k {
	case KindFile:
		return "file"
	case KindDir:
		return "dir"
	case KindSymlink:
		return "symlink"
	case KindOther:
		return "other"
	default:
		return "missing"
	}
}

// KindOf maps a file mode to its Kind.
func KindOf(mode fs.FileMode) Kind {
	switch {
	case mode.IsRegular():
		return KindFile
	case mode.IsDir():
		return KindDir
	case mode&fs.ModeSymlink != 0:
		return KindSymlink
	default:
		return KindOther
	}
}

// DirEntry is one name read from a directory, with its type hint.
type DirEntry struct {
	Name string
	Kind Kind
}

// DirHandle enumerates a directory one entry at a time. Next returns io.EOF
// once the directory is exhausted. Close must be called exactly once.
type DirHandle interface {
	Next() (DirEntry, error)
	Close() error
}

// Info is the subset of file metadata the library consumes.
type Info struct {
	Kind  Kind
	Mode  fs.FileMode
	Size  int64
	Atime time.Time
	Mtime time.Time
	Ctime time.Time
}

// AccessMode selects the permission checked by Access. Values match the
// R_OK/W_OK/X_OK bits of access(2).
type AccessMode uint32

const (
	AccessExecute AccessMode = 1
	AccessWrite   AccessMode = 2
	AccessRead    AccessMode = 4
)

// FileSystem is the thin OS collaborator every walk and bulk operation goes
// through. Errors are *fs.PathError or *os.LinkError values wrapping a
// syscall.Errno where the backend has one.
type FileSystem interface {
	OpenDir(name string) (DirHandle, error)
	// Stat returns the entry's metadata. With follow set, symbolic links
	// are resolved first.
	Stat(name string, follow bool) (Info, error)

	Remove(name string) error
	Mkdir(name string, perm fs.FileMode) error
	MkdirAll(name string, perm fs.FileMode) error
	Rename(oldpath, newpath string) error
	Symlink(target, link string) error
	Readlink(name string) (string, error)

	Open(name string) (io.ReadCloser, error)
	// ReadAt reads up to n bytes starting at off. n < 0 reads to the end.
	ReadAt(name string, off, n int64) ([]byte, error)
	// WriteFile replaces the file contents, or appends to them when
	// appending is set, creating the file if needed.
	WriteFile(name string, data []byte, perm fs.FileMode, appending bool) error
	Create(name string, perm fs.FileMode) (io.WriteCloser, error)
	Chtimes(name string, atime, mtime time.Time) error
	Access(name string, mode AccessMode) bool

	Getwd() (string, error)
	Chdir(dir string) error
	Home() string
	// Canonicalize resolves every symbolic link and relative component of
	// an absolute path. It fails when the path does not exist.
	Canonicalize(name string) (string, error)
}
