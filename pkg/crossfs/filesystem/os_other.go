//go:build !(darwin || freebsd || linux)

package filesystem

import (
	"os"
)

// Platforms without stat(2) timestamps report the modification time for
// all three.
func stat(name string, follow bool) (Info, error) {
	var fi os.FileInfo
	var err error
	if follow {
		fi, err = os.Stat(name)
	} else {
		fi, err = os.Lstat(name)
	}
	if err != nil {
		return Info{}, err
	}
	return Info{
		Kind:  KindOf(fi.Mode()),
		Mode:  fi.Mode(),
		Size:  fi.Size(),
		Atime: fi.ModTime(),
		Mtime: fi.ModTime(),
		Ctime: fi.ModTime(),
	}, nil
}

func access(name string, mode AccessMode) bool {
	fi, err := os.Stat(name)
	if err != nil {
		return false
	}
	perm := fi.Mode().Perm()
	if mode&AccessRead != 0 && perm&0o444 == 0 {
		return false
	}
	if mode&AccessWrite != 0 && perm&0o222 == 0 {
		return false
	}
	if mode&AccessExecute != 0 && perm&0o111 == 0 && !fi.IsDir() {
		return false
	}
	return true
}
