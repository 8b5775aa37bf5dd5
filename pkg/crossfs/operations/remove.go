package operations

import (
	"github.com/arthur-debert/crossfs/pkg/crossfs/core"
	"github.com/arthur-debert/crossfs/pkg/crossfs/filesystem"
	"github.com/arthur-debert/crossfs/pkg/crossfs/walk"
)

// Remove deletes name and, for a non-empty directory, everything below it.
// A path that does not exist is not an error. The first entry that cannot
// be removed stops the walk and its error is returned.
func Remove(fsys filesystem.FileSystem, name string, opts ...Options) error {
	o := resolve(opts)

	err := fsys.Remove(name)
	if err == nil || core.IsNotExist(err) {
		return nil
	}
	if !core.IsNotEmpty(err) {
		return &core.OperationError{Op: "remove", Path: name, Err: err}
	}

	o.Logger.Debug().Str("path", name).Msg("removing directory tree")

	var failed error
	walk.Walk(fsys, name, func(e walk.Entry) walk.Action {
		if err := fsys.Remove(e.Path()); err != nil && !core.IsNotExist(err) {
			o.Logger.Debug().Err(err).Str("path", e.Path()).Msg("remove failed")
			failed = err
			return walk.Stop
		}
		return walk.Continue
	}, walk.Options{Recursive: true, Strategy: walk.DeepestFirst, Logger: o.Logger})

	if failed != nil {
		return &core.OperationError{Op: "remove", Path: name, Err: failed}
	}
	if err := fsys.Remove(name); err != nil && !core.IsNotExist(err) {
		return &core.OperationError{Op: "remove", Path: name, Err: err}
	}
	return nil
}
