package operations

import (
	"github.com/arthur-debert/crossfs/pkg/crossfs/filesystem"
	"github.com/arthur-debert/crossfs/pkg/crossfs/path"
)

// Realpath returns p as an absolute path with every symbolic link resolved.
// Relative paths are taken from the working directory. When the filesystem
// cannot canonicalize the result, for instance because the leaf does not
// exist, the lexically normalized absolute path is returned instead, so
// Realpath never fails.
func Realpath(fsys filesystem.FileSystem, p string) string {
	abs := path.NormalizeWithHome(p, fsys.Home())
	if path.IsRelative(abs) {
		if cwd, err := fsys.Getwd(); err == nil {
			abs = path.NormalizeWithHome(path.Join(cwd, abs), "")
		}
	}

	if real, err := fsys.Canonicalize(abs); err == nil {
		return real
	}
	return abs
}
