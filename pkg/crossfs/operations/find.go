package operations

import (
	"github.com/arthur-debert/crossfs/pkg/crossfs/filesystem"
	"github.com/arthur-debert/crossfs/pkg/crossfs/walk"
)

// Find lists every entry below dir in the order a walk with the same
// options visits them. Without options the walk is recursive and
// children-first.
func Find(fsys filesystem.FileSystem, dir string, opts ...walk.Options) []string {
	return walk.Collect(fsys, dir, opts...)
}
