package operations

import (
	"time"

	"github.com/arthur-debert/crossfs/pkg/crossfs/filesystem"
)

// Filetime returns the access, modification and status change times of p,
// following symbolic links.
func Filetime(fsys filesystem.FileSystem, p string) (atime, mtime, ctime time.Time, err error) {
	info, err := fsys.Stat(p, true)
	if err != nil {
		return time.Time{}, time.Time{}, time.Time{}, err
	}
	return info.Atime, info.Mtime, info.Ctime, nil
}

// Atime returns the last access time of p, or the zero time.
func Atime(fsys filesystem.FileSystem, p string) time.Time {
	t, _, _, _ := Filetime(fsys, p)
	return t
}

// Mtime returns the last modification time of p, or the zero time.
func Mtime(fsys filesystem.FileSystem, p string) time.Time {
	_, t, _, _ := Filetime(fsys, p)
	return t
}

// Ctime returns the last status change time of p, or the zero time.
func Ctime(fsys filesystem.FileSystem, p string) time.Time {
	_, _, t, _ := Filetime(fsys, p)
	return t
}

// Filesize returns the size of the file p in bytes, or 0.
func Filesize(fsys filesystem.FileSystem, p string) int64 {
	info, err := fsys.Stat(p, true)
	if err != nil {
		return 0
	}
	return info.Size
}
