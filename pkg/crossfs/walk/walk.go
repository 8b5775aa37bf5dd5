// Package walk enumerates directory trees in one of three orders.
//
// Entries are reported in the order the filesystem returns them for each
// directory; nothing is sorted. The "." and ".." entries are never reported
// and symbolic links are reported but never descended into. A directory
// that cannot be opened yields no entries instead of an error.
//
// Traversal is iterative, so tree depth is bounded by memory rather than by
// the goroutine stack, and every directory handle is closed before Walk
// returns no matter how the walk ends.
package walk

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/arthur-debert/crossfs/pkg/crossfs/filesystem"
	"github.com/arthur-debert/crossfs/pkg/crossfs/path"
)

// Strategy selects the traversal order.
type Strategy int

const (
	// ChildrenFirst visits an entry and then, for a directory, everything
	// below it before the entry's next sibling (pre-order).
	ChildrenFirst Strategy = iota
	// SiblingsFirst visits a whole directory before any of its
	// subdirectories (level order).
	SiblingsFirst
	// DeepestFirst visits everything below a directory before the
	// directory itself (post-order).
	DeepestFirst
)

func (s Strategy) String() string {
	switch s {
	case ChildrenFirst:
		return "children-first"
	case SiblingsFirst:
		return "siblings-first"
	case DeepestFirst:
		return "deepest-first"
	default:
		return fmt.Sprintf("Strategy(%d)", int(s))
	}
}

// ParseStrategy parses a strategy name. Case, hyphens and underscores are
// ignored, so "DeepestFirst", "deepest-first" and "deepest_first" all match.
func ParseStrategy(s string) (Strategy, error) {
	key := strings.ToLower(strings.NewReplacer("-", "", "_", "").Replace(s))
	switch key {
	case "childrenfirst", "preorder":
		return ChildrenFirst, nil
	case "siblingsfirst", "levelorder", "breadthfirst":
		return SiblingsFirst, nil
	case "deepestfirst", "postorder":
		return DeepestFirst, nil
	}
	return ChildrenFirst, fmt.Errorf("unknown walk strategy %q", s)
}

// Action is what a Visitor asks the walker to do next.
type Action int

const (
	Continue Action = iota
	// Stop ends the whole walk immediately after the current entry.
	Stop
)

// Entry is one visited directory entry.
type Entry struct {
	// Root is the directory the entry was read from.
	Root string
	Name string
	Kind filesystem.Kind
}

// Path joins Root and Name with the separator Root already uses.
func (e Entry) Path() string {
	return path.Join(e.Root, e.Name)
}

// Visitor is called once per entry.
type Visitor func(Entry) Action

// Options configures a walk
type Options struct {
	// Recursive descends into subdirectories. When false only the immediate
	// children of the root are visited.
	Recursive bool
	Strategy  Strategy
	Logger    zerolog.Logger
}

// DefaultOptions returns a recursive ChildrenFirst walk without logging.
func DefaultOptions() Options {
	return Options{
		Recursive: true,
		Strategy:  ChildrenFirst,
		Logger:    zerolog.Nop(),
	}
}

// Walk visits the entries below root. The root itself is not visited.
func Walk(fsys filesystem.FileSystem, root string, visit Visitor, opts ...Options) {
	options := DefaultOptions()
	if len(opts) > 0 {
		options = opts[0]
	}

	w := &walker{fsys: fsys, visit: visit, opts: options}
	options.Logger.Trace().
		Str("root", root).
		Str("strategy", options.Strategy.String()).
		Bool("recursive", options.Recursive).
		Msg("walk started")

	switch options.Strategy {
	case SiblingsFirst:
		w.siblingsFirst(root)
	case DeepestFirst:
		w.deepestFirst(root)
	default:
		w.childrenFirst(root)
	}
}

// Collect returns the path of every entry Walk would visit, in visit order.
func Collect(fsys filesystem.FileSystem, root string, opts ...Options) []string {
	var out []string
	Walk(fsys, root, func(e Entry) Action {
		out = append(out, e.Path())
		return Continue
	}, opts...)
	return out
}

type walker struct {
	fsys  filesystem.FileSystem
	visit Visitor
	opts  Options
}

func (w *walker) descend(e Entry) bool {
	return w.opts.Recursive && e.Kind == filesystem.KindDir
}

func (w *walker) childrenFirst(root string) {
	stack := []*cursor{w.newCursor(root)}
	defer func() {
		for _, c := range stack {
			c.close()
		}
	}()

	for len(stack) > 0 {
		e, ok := stack[len(stack)-1].next()
		if !ok {
			stack = stack[:len(stack)-1]
			continue
		}
		if w.visit(e) == Stop {
			return
		}
		if w.descend(e) {
			stack = append(stack, w.newCursor(e.Path()))
		}
	}
}

type frame struct {
	cursor *cursor
	// entry is the directory being enumerated, visited once the frame is
	// exhausted. It is nil for the root.
	entry *Entry
}

func (w *walker) deepestFirst(root string) {
	stack := []frame{{cursor: w.newCursor(root)}}
	defer func() {
		for _, f := range stack {
			f.cursor.close()
		}
	}()

	for len(stack) > 0 {
		top := stack[len(stack)-1]
		e, ok := top.cursor.next()
		if !ok {
			stack = stack[:len(stack)-1]
			if top.entry != nil && w.visit(*top.entry) == Stop {
				return
			}
			continue
		}
		if w.descend(e) {
			stack = append(stack, frame{cursor: w.newCursor(e.Path()), entry: &e})
			continue
		}
		if w.visit(e) == Stop {
			return
		}
	}
}

func (w *walker) siblingsFirst(root string) {
	queue := []string{root}
	for len(queue) > 0 {
		dir := queue[0]
		queue = queue[1:]

		subdirs, stopped := w.level(dir)
		if stopped {
			return
		}
		queue = append(queue, subdirs...)
	}
}

// level visits every entry of dir and returns the subdirectories to descend
// into next.
func (w *walker) level(dir string) (subdirs []string, stopped bool) {
	c := w.newCursor(dir)
	defer c.close()

	for {
		e, ok := c.next()
		if !ok {
			return subdirs, false
		}
		if w.visit(e) == Stop {
			return nil, true
		}
		if w.descend(e) {
			subdirs = append(subdirs, e.Path())
		}
	}
}
