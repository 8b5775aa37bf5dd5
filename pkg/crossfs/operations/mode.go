package operations

import "github.com/arthur-debert/crossfs/pkg/crossfs/filesystem"

// IsReadable reports whether the calling process may read p.
func IsReadable(fsys filesystem.FileSystem, p string) bool {
	return fsys.Access(p, filesystem.AccessRead)
}

// IsWritable reports whether the calling process may write p.
func IsWritable(fsys filesystem.FileSystem, p string) bool {
	return fsys.Access(p, filesystem.AccessWrite)
}

// IsExecutable reports whether the calling process may execute p, or
// search it when p is a directory.
func IsExecutable(fsys filesystem.FileSystem, p string) bool {
	return fsys.Access(p, filesystem.AccessExecute)
}
