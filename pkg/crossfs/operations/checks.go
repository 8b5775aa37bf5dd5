package operations

import "github.com/arthur-debert/crossfs/pkg/crossfs/filesystem"

func kindOf(fsys filesystem.FileSystem, p string, follow bool) filesystem.Kind {
	info, err := fsys.Stat(p, follow)
	if err != nil {
		return filesystem.KindMissing
	}
	return info.Kind
}

// IsExist reports whether p exists. Without follow a dangling symbolic link
// still exists.
func IsExist(fsys filesystem.FileSystem, p string, follow bool) bool {
	return kindOf(fsys, p, follow) != filesystem.KindMissing
}

// IsDir reports whether p is a directory.
func IsDir(fsys filesystem.FileSystem, p string, follow bool) bool {
	return kindOf(fsys, p, follow) == filesystem.KindDir
}

// IsFile reports whether p is a regular file.
func IsFile(fsys filesystem.FileSystem, p string, follow bool) bool {
	return kindOf(fsys, p, follow) == filesystem.KindFile
}

// IsSymlink reports whether p itself is a symbolic link.
func IsSymlink(fsys filesystem.FileSystem, p string) bool {
	return kindOf(fsys, p, false) == filesystem.KindSymlink
}

// IsEmpty reports whether p is a file without content or a directory
// without entries. A path that does not exist is empty too.
func IsEmpty(fsys filesystem.FileSystem, p string) bool {
	info, err := fsys.Stat(p, true)
	if err != nil {
		return true
	}
	if info.Kind != filesystem.KindDir {
		return info.Size == 0
	}

	h, err := fsys.OpenDir(p)
	if err != nil {
		return true
	}
	defer func() {
		_ = h.Close()
	}()
	for {
		e, err := h.Next()
		if err != nil {
			return true
		}
		if e.Name != "." && e.Name != ".." {
			return false
		}
	}
}
