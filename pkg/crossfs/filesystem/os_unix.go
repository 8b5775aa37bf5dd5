//go:build darwin || freebsd || linux

package filesystem

import (
	"io/fs"
	"syscall"
	"time"

	"golang.org/x/sys/unix"
)

func stat(name string, follow bool) (Info, error) {
	var st unix.Stat_t
	var err error
	if follow {
		err = unix.Stat(name, &st)
	} else {
		err = unix.Lstat(name, &st)
	}
	if err != nil {
		op := "lstat"
		if follow {
			op = "stat"
		}
		return Info{}, &fs.PathError{Op: op, Path: name, Err: err}
	}

	mode := fs.FileMode(st.Mode & 0o777)
	kind := KindOther
	switch st.Mode & syscall.S_IFMT {
	case syscall.S_IFREG:
		kind = KindFile
	case syscall.S_IFDIR:
		kind = KindDir
		mode |= fs.ModeDir
	case syscall.S_IFLNK:
		kind = KindSymlink
		mode |= fs.ModeSymlink
	case syscall.S_IFIFO:
		mode |= fs.ModeNamedPipe
	case syscall.S_IFSOCK:
		mode |= fs.ModeSocket
	case syscall.S_IFCHR:
		mode |= fs.ModeDevice | fs.ModeCharDevice
	case syscall.S_IFBLK:
		mode |= fs.ModeDevice
	}
	if st.Mode&syscall.S_ISUID != 0 {
		mode |= fs.ModeSetuid
	}
	if st.Mode&syscall.S_ISGID != 0 {
		mode |= fs.ModeSetgid
	}
	if st.Mode&syscall.S_ISVTX != 0 {
		mode |= fs.ModeSticky
	}

	return Info{
		Kind:  kind,
		Mode:  mode,
		Size:  st.Size,
		Atime: time.Unix(st.Atim.Unix()),
		Mtime: time.Unix(st.Mtim.Unix()),
		Ctime: time.Unix(st.Ctim.Unix()),
	}, nil
}

func access(name string, mode AccessMode) bool {
	return unix.Access(name, uint32(mode)) == nil
}
