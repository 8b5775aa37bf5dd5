package walk

import (
	"errors"
	"io"

	"github.com/rs/zerolog"

	"github.com/arthur-debert/crossfs/pkg/crossfs/core"
	"github.com/arthur-debert/crossfs/pkg/crossfs/filesystem"
	"github.com/arthur-debert/crossfs/pkg/crossfs/path"
)

type cursorState int

const (
	stateIdle cursorState = iota
	stateOpen
	stateClosed
)

// cursor enumerates a single directory. It opens lazily on the first read
// and closes itself once exhausted; close is safe to call in any state.
type cursor struct {
	fsys   filesystem.FileSystem
	dir    string
	state  cursorState
	handle filesystem.DirHandle
	log    zerolog.Logger
}

func (w *walker) newCursor(dir string) *cursor {
	return &cursor{fsys: w.fsys, dir: dir, log: w.opts.Logger}
}

func (c *cursor) open() bool {
	h, err := c.fsys.OpenDir(c.dir)
	if err != nil {
		c.log.Debug().Err(err).Str("dir", c.dir).Msg("directory not readable, skipping")
		c.state = stateClosed
		return false
	}
	c.log.Trace().Str("dir", c.dir).Msg("enumerating directory")
	c.handle = h
	c.state = stateOpen
	return true
}

func (c *cursor) next() (Entry, bool) {
	if c.state == stateIdle && !c.open() {
		return Entry{}, false
	}
	if c.state == stateClosed {
		return Entry{}, false
	}

	for {
		d, err := c.handle.Next()
		if err != nil {
			if !errors.Is(err, io.EOF) {
				c.log.Debug().Err(err).Str("dir", c.dir).Msg("directory read failed")
			}
			c.close()
			return Entry{}, false
		}
		if d.Name == "." || d.Name == ".." {
			continue
		}

		kind := d.Kind
		if kind == filesystem.KindMissing {
			info, err := c.fsys.Stat(path.Join(c.dir, d.Name), false)
			switch {
			case err == nil:
				kind = info.Kind
			case core.IsNotExist(err):
				continue
			default:
				kind = filesystem.KindOther
			}
		}
		return Entry{Root: c.dir, Name: d.Name, Kind: kind}, true
	}
}

func (c *cursor) close() {
	if c.state == stateOpen {
		if err := c.handle.Close(); err != nil {
			c.log.Debug().Err(err).Str("dir", c.dir).Msg("directory close failed")
		}
		c.handle = nil
	}
	c.state = stateClosed
}
