package operations

import (
	"io"
	"syscall"

	"github.com/arthur-debert/crossfs/pkg/crossfs/core"
	"github.com/arthur-debert/crossfs/pkg/crossfs/filesystem"
	"github.com/arthur-debert/crossfs/pkg/crossfs/path"
	"github.com/arthur-debert/crossfs/pkg/crossfs/walk"
)

// Copy copies a file or directory tree from src to dst.
//
// When dst is an existing directory the source is copied into it under its
// own basename; otherwise dst names the copy itself. Directories are copied
// recursively and missing parents of dst are created. Symbolic links are
// not followed: copying one fails with core.ErrNotSupported, as does any
// entry that is neither a file nor a directory.
func Copy(fsys filesystem.FileSystem, src, dst string, opts ...Options) error {
	o := resolve(opts)

	info, err := fsys.Stat(src, false)
	if err != nil {
		return &core.OperationError{Op: "copy", Path: src, Err: err}
	}
	if target, err := fsys.Stat(dst, true); err == nil && target.Kind == filesystem.KindDir {
		dst = path.Join(dst, path.Basename(src))
	}

	if path.IsWithin(Realpath(fsys, dst), Realpath(fsys, src)) {
		return &core.OperationError{Op: "copy", Path: dst, Err: syscall.EINVAL}
	}

	c := &copier{fsys: fsys, opts: o}
	if err := c.copy(src, dst, info.Kind); err != nil {
		return &core.OperationError{Op: "copy", Path: src, Err: err}
	}
	return nil
}

type copier struct {
	fsys filesystem.FileSystem
	opts Options
}

func (c *copier) copy(src, dst string, kind filesystem.Kind) error {
	c.opts.Logger.Trace().Str("src", src).Str("dst", dst).Stringer("kind", kind).Msg("copy")

	switch kind {
	case filesystem.KindDir:
		return c.copyDir(src, dst)
	case filesystem.KindFile:
		return c.copyFile(src, dst)
	default:
		return core.ErrNotSupported
	}
}

// copyDir walks one level of src and recurses per subdirectory, so each
// directory is created before its children are copied.
func (c *copier) copyDir(src, dst string) error {
	if err := c.fsys.MkdirAll(dst, c.opts.DirMode); err != nil {
		return err
	}

	var failed error
	walk.Walk(c.fsys, src, func(e walk.Entry) walk.Action {
		if err := c.copy(e.Path(), path.Join(dst, e.Name), e.Kind); err != nil {
			c.opts.Logger.Debug().Err(err).Str("path", e.Path()).Msg("copy failed")
			failed = err
			return walk.Stop
		}
		return walk.Continue
	}, walk.Options{Recursive: false, Strategy: walk.ChildrenFirst, Logger: c.opts.Logger})
	return failed
}

func (c *copier) copyFile(src, dst string) error {
	info, err := c.fsys.Stat(src, false)
	if err != nil {
		return err
	}
	if parent := path.Dirname(dst); parent != "" {
		if err := c.fsys.MkdirAll(parent, c.opts.DirMode); err != nil {
			return err
		}
	}

	r, err := c.fsys.Open(src)
	if err != nil {
		return err
	}
	defer func() {
		_ = r.Close()
	}()

	w, err := c.fsys.Create(dst, info.Mode.Perm())
	if err != nil {
		return err
	}
	if _, err := io.Copy(w, r); err != nil {
		_ = w.Close()
		return err
	}
	return w.Close()
}
