package operations

import (
	"time"

	"github.com/arthur-debert/crossfs/pkg/crossfs/core"
	"github.com/arthur-debert/crossfs/pkg/crossfs/filesystem"
	"github.com/arthur-debert/crossfs/pkg/crossfs/path"
)

// Chdir changes the working directory and returns the previous one.
func Chdir(fsys filesystem.FileSystem, dir string) (string, error) {
	old, err := fsys.Getwd()
	if err != nil {
		return "", err
	}
	if err := fsys.Chdir(dir); err != nil {
		return old, err
	}
	return old, nil
}

// Touch creates file, and its parent directories, if it does not exist and
// sets its timestamps. A zero atime or mtime means now.
func Touch(fsys filesystem.FileSystem, file string, atime, mtime time.Time, opts ...Options) error {
	o := resolve(opts)

	if _, err := fsys.Stat(file, true); err != nil {
		if !core.IsNotExist(err) {
			return err
		}
		if err := mkdirParent(fsys, file, o); err != nil {
			return err
		}
		if err := fsys.WriteFile(file, nil, o.FileMode, true); err != nil {
			return err
		}
	}

	now := time.Now()
	if atime.IsZero() {
		atime = now
	}
	if mtime.IsZero() {
		mtime = now
	}
	return fsys.Chtimes(file, atime, mtime)
}

// Mkdir creates dir and any missing parents. An empty path succeeds
// without doing anything.
func Mkdir(fsys filesystem.FileSystem, dir string, opts ...Options) error {
	if dir == "" {
		return nil
	}
	o := resolve(opts)
	return fsys.MkdirAll(dir, o.DirMode)
}

// Rename moves oldpath to newpath.
func Rename(fsys filesystem.FileSystem, oldpath, newpath string) error {
	return fsys.Rename(oldpath, newpath)
}

// Symlink creates link pointing at target.
func Symlink(fsys filesystem.FileSystem, target, link string) error {
	return fsys.Symlink(target, link)
}

func mkdirParent(fsys filesystem.FileSystem, file string, o Options) error {
	parent := path.Dirname(file)
	if parent == "" || path.IsRoot(parent) {
		return nil
	}
	return fsys.MkdirAll(parent, o.DirMode)
}
