package operations

import (
	"io/fs"

	"github.com/rs/zerolog"
)

// Options configures the operations that create or walk entries
type Options struct {
	// DirMode is used for every directory an operation creates.
	DirMode fs.FileMode
	// FileMode is used for files created from scratch by Touch, Write and
	// Append. Copied files keep their source permissions.
	FileMode fs.FileMode
	Logger   zerolog.Logger
}

// DefaultOptions returns rwxr-xr-x directories, rw-r--r-- files and no logging.
func DefaultOptions() Options {
	return Options{
		DirMode:  0o755,
		FileMode: 0o644,
		Logger:   zerolog.Nop(),
	}
}

func resolve(opts []Options) Options {
	if len(opts) > 0 {
		o := opts[0]
		if o.DirMode == 0 {
			o.DirMode = 0o755
		}
		if o.FileMode == 0 {
			o.FileMode = 0o644
		}
		return o
	}
	return DefaultOptions()
}
