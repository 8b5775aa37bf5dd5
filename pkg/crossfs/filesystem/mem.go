package filesystem

import (
	"bytes"
	"io"
	"io/fs"
	"os"
	"slices"
	"sync"
	"syscall"
	"time"

	"github.com/arthur-debert/crossfs/pkg/crossfs/path"
)

// maxSymlinkHops bounds symlink resolution, like the kernel's ELOOP limit.
const maxSymlinkHops = 40

type memNode struct {
	kind     Kind
	perm     fs.FileMode
	data     []byte
	target   string
	names    []string
	children map[string]*memNode
	parent   *memNode

	atime, mtime, ctime time.Time
}

func (n *memNode) info() Info {
	mode := n.perm
	switch n.kind {
	case KindDir:
		mode |= fs.ModeDir
	case KindSymlink:
		mode |= fs.ModeSymlink
	}
	size := int64(len(n.data))
	if n.kind == KindSymlink {
		size = int64(len(n.target))
	}
	return Info{Kind: n.kind, Mode: mode, Size: size, Atime: n.atime, Mtime: n.mtime, Ctime: n.ctime}
}

func (n *memNode) add(name string, child *memNode) {
	child.parent = n
	if _, exists := n.children[name]; !exists {
		n.names = append(n.names, name)
	}
	n.children[name] = child
}

func (n *memNode) unlink(name string) {
	delete(n.children, name)
	if i := slices.Index(n.names, name); i >= 0 {
		n.names = slices.Delete(n.names, i, i+1)
	}
}

type faultKey struct {
	op   string
	path string
}

// MemFileSystem is an in-memory FileSystem for tests. Directory entries are
// enumerated in insertion order (or its reverse), preceded by "." and ".."
// the way readdir reports them. Any operation can be made to fail on a
// given path with FailOn.
type MemFileSystem struct {
	mu      sync.Mutex
	roots   map[string]*memNode
	cwd     string
	home    string
	reverse bool
	noHints bool
	faults  map[faultKey]syscall.Errno
	open    int
	now     func() time.Time
}

// NewMemFileSystem creates an empty filesystem holding only the "/" root,
// with "/" as its working directory.
func NewMemFileSystem() *MemFileSystem {
	m := &MemFileSystem{
		roots:  make(map[string]*memNode),
		cwd:    "/",
		home:   "/home/user",
		faults: make(map[faultKey]syscall.Errno),
		now:    time.Now,
	}
	m.AddDrive("/")
	return m
}

// AddDrive adds another root such as "C:\".
func (m *MemFileSystem) AddDrive(drive string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.roots[drive]; !ok {
		m.roots[drive] = m.newNode(KindDir, 0o755)
	}
}

// SetReverse makes directories enumerate newest entry first.
func (m *MemFileSystem) SetReverse(reverse bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reverse = reverse
}

// SetHome sets the value returned by Home.
func (m *MemFileSystem) SetHome(home string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.home = home
}

// SetTypeHints controls whether OpenDir handles report entry kinds. Without
// hints every entry comes back as KindMissing, like readdir returning
// DT_UNKNOWN.
func (m *MemFileSystem) SetTypeHints(enabled bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.noHints = !enabled
}

// FailOn makes op fail with errno whenever it targets name. op is the
// method name in lower case, e.g. "remove", "opendir" or "stat".
func (m *MemFileSystem) FailOn(op, name string, errno syscall.Errno) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.faults[faultKey{op, m.key(name)}] = errno
}

// OpenHandles returns how many directory handles are currently open.
func (m *MemFileSystem) OpenHandles() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.open
}

func (m *MemFileSystem) newNode(kind Kind, perm fs.FileMode) *memNode {
	now := m.now()
	n := &memNode{kind: kind, perm: perm.Perm(), atime: now, mtime: now, ctime: now}
	if kind == KindDir {
		n.children = make(map[string]*memNode)
	}
	return n
}

func (m *MemFileSystem) abs(name string) string {
	if path.IsAbsolute(name) {
		return name
	}
	return path.Join(m.cwd, name)
}

func (m *MemFileSystem) key(name string) string {
	return path.NormalizeWithHome(m.abs(name), "")
}

func (m *MemFileSystem) fault(op, name string) error {
	if errno, ok := m.faults[faultKey{op, m.key(name)}]; ok {
		return &fs.PathError{Op: op, Path: name, Err: errno}
	}
	return nil
}

type lookupResult struct {
	node   *memNode
	parent *memNode
	base   string
	path   string
}

// lookup resolves name component by component. A missing final component
// is not an error: node is nil and parent/base say where it would go.
func (m *MemFileSystem) lookup(name string, followLast bool) (lookupResult, error) {
	if name == "" {
		return lookupResult{}, syscall.ENOENT
	}
	abs := m.abs(name)
	drive := path.Drive(abs)
	cur, ok := m.roots[drive]
	if !ok {
		return lookupResult{}, syscall.ENOENT
	}
	curPath := drive
	pending := path.Components(abs)
	hops := 0

	for len(pending) > 0 {
		c := pending[0]
		pending = pending[1:]
		switch c {
		case ".":
			continue
		case "..":
			if cur.parent != nil {
				cur = cur.parent
				curPath = path.Dirname(curPath)
			}
			continue
		}
		if cur.kind != KindDir {
			return lookupResult{}, syscall.ENOTDIR
		}

		last := len(pending) == 0
		child := cur.children[c]
		if child == nil {
			if last {
				return lookupResult{parent: cur, base: c, path: path.Join(curPath, c)}, nil
			}
			return lookupResult{}, syscall.ENOENT
		}
		if child.kind == KindSymlink && (!last || followLast) {
			hops++
			if hops > maxSymlinkHops {
				return lookupResult{}, syscall.ELOOP
			}
			if path.IsAbsolute(child.target) {
				d := path.Drive(child.target)
				if cur, ok = m.roots[d]; !ok {
					return lookupResult{}, syscall.ENOENT
				}
				curPath = d
			}
			pending = append(path.Components(child.target), pending...)
			continue
		}
		if last {
			return lookupResult{node: child, parent: cur, base: c, path: path.Join(curPath, c)}, nil
		}
		cur = child
		curPath = path.Join(curPath, c)
	}
	return lookupResult{node: cur, parent: cur.parent, base: path.Basename(curPath), path: curPath}, nil
}

func (m *MemFileSystem) find(op, name string, follow bool) (lookupResult, error) {
	if err := m.fault(op, name); err != nil {
		return lookupResult{}, err
	}
	res, err := m.lookup(name, follow)
	if err == nil && res.node == nil {
		err = syscall.ENOENT
	}
	if err != nil {
		return lookupResult{}, &fs.PathError{Op: op, Path: name, Err: err}
	}
	return res, nil
}

type memDirHandle struct {
	m     *MemFileSystem
	dir   *memNode
	names []string
	done  bool
}

// OpenDir implements FileSystem
func (m *MemFileSystem) OpenDir(name string) (DirHandle, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	res, err := m.find("opendir", name, true)
	if err != nil {
		return nil, err
	}
	if res.node.kind != KindDir {
		return nil, &fs.PathError{Op: "opendir", Path: name, Err: syscall.ENOTDIR}
	}

	names := append([]string{".", ".."}, res.node.names...)
	if m.reverse {
		slices.Reverse(names[2:])
	}
	m.open++
	return &memDirHandle{m: m, dir: res.node, names: names}, nil
}

func (h *memDirHandle) Next() (DirEntry, error) {
	h.m.mu.Lock()
	defer h.m.mu.Unlock()

	for len(h.names) > 0 && !h.done {
		name := h.names[0]
		h.names = h.names[1:]
		if name == "." || name == ".." {
			return DirEntry{Name: name, Kind: KindDir}, nil
		}
		// Entries removed after the handle was opened are not reported.
		if child, ok := h.dir.children[name]; ok {
			if h.m.noHints {
				return DirEntry{Name: name}, nil
			}
			return DirEntry{Name: name, Kind: child.kind}, nil
		}
	}
	return DirEntry{}, io.EOF
}

func (h *memDirHandle) Close() error {
	h.m.mu.Lock()
	defer h.m.mu.Unlock()
	if h.done {
		return os.ErrClosed
	}
	h.done = true
	h.m.open--
	return nil
}

// Stat implements FileSystem
func (m *MemFileSystem) Stat(name string, follow bool) (Info, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	op := "lstat"
	if follow {
		op = "stat"
	}
	res, err := m.find(op, name, follow)
	if err != nil {
		return Info{}, err
	}
	return res.node.info(), nil
}

// Remove implements FileSystem
func (m *MemFileSystem) Remove(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	res, err := m.find("remove", name, false)
	if err != nil {
		return err
	}
	if res.parent == nil {
		return &fs.PathError{Op: "remove", Path: name, Err: syscall.EBUSY}
	}
	if res.node.kind == KindDir && len(res.node.children) > 0 {
		return &fs.PathError{Op: "remove", Path: name, Err: syscall.ENOTEMPTY}
	}
	res.parent.unlink(res.base)
	return nil
}

// Mkdir implements FileSystem
func (m *MemFileSystem) Mkdir(name string, perm fs.FileMode) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.mkdir(name, perm)
}

func (m *MemFileSystem) mkdir(name string, perm fs.FileMode) error {
	if err := m.fault("mkdir", name); err != nil {
		return err
	}
	res, err := m.lookup(name, false)
	if err != nil {
		return &fs.PathError{Op: "mkdir", Path: name, Err: err}
	}
	if res.node != nil {
		return &fs.PathError{Op: "mkdir", Path: name, Err: syscall.EEXIST}
	}
	res.parent.add(res.base, m.newNode(KindDir, perm))
	return nil
}

// MkdirAll implements FileSystem
func (m *MemFileSystem) MkdirAll(name string, perm fs.FileMode) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.mkdirAll(name, perm)
}

func (m *MemFileSystem) mkdirAll(name string, perm fs.FileMode) error {
	if res, err := m.lookup(name, true); err == nil && res.node != nil {
		if res.node.kind == KindDir {
			return nil
		}
		return &fs.PathError{Op: "mkdir", Path: name, Err: syscall.ENOTDIR}
	}

	if parent := path.Dirname(m.abs(name)); parent != "" && !path.IsRoot(parent) {
		if err := m.mkdirAll(parent, perm); err != nil {
			return err
		}
	}

	err := m.mkdir(name, perm)
	if err != nil {
		if res, lerr := m.lookup(name, true); lerr == nil && res.node != nil && res.node.kind == KindDir {
			return nil
		}
	}
	return err
}

// Rename implements FileSystem
func (m *MemFileSystem) Rename(oldpath, newpath string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	linkErr := func(err error) error {
		return &os.LinkError{Op: "rename", Old: oldpath, New: newpath, Err: err}
	}
	if err := m.fault("rename", oldpath); err != nil {
		return err
	}
	src, err := m.lookup(oldpath, false)
	if err == nil && src.node == nil {
		err = syscall.ENOENT
	}
	if err != nil {
		return linkErr(err)
	}
	dst, err := m.lookup(newpath, false)
	if err != nil {
		return linkErr(err)
	}
	if src.parent == nil || dst.parent == nil {
		return linkErr(syscall.EBUSY)
	}
	if dst.node == src.node {
		return nil
	}
	for p := dst.parent; p != nil; p = p.parent {
		if p == src.node {
			return linkErr(syscall.EINVAL)
		}
	}
	if dst.node != nil {
		switch {
		case src.node.kind == KindDir && dst.node.kind != KindDir:
			return linkErr(syscall.ENOTDIR)
		case src.node.kind != KindDir && dst.node.kind == KindDir:
			return linkErr(syscall.EISDIR)
		case dst.node.kind == KindDir && len(dst.node.children) > 0:
			return linkErr(syscall.ENOTEMPTY)
		}
		dst.parent.unlink(dst.base)
	}
	src.parent.unlink(src.base)
	dst.parent.add(dst.base, src.node)
	src.node.ctime = m.now()
	return nil
}

// Symlink implements FileSystem
func (m *MemFileSystem) Symlink(target, link string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.fault("symlink", link); err != nil {
		return err
	}
	res, err := m.lookup(link, false)
	if err == nil && res.node != nil {
		err = syscall.EEXIST
	}
	if err != nil {
		return &os.LinkError{Op: "symlink", Old: target, New: link, Err: err}
	}
	n := m.newNode(KindSymlink, 0o777)
	n.target = target
	res.parent.add(res.base, n)
	return nil
}

// Readlink implements FileSystem
func (m *MemFileSystem) Readlink(name string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	res, err := m.find("readlink", name, false)
	if err != nil {
		return "", err
	}
	if res.node.kind != KindSymlink {
		return "", &fs.PathError{Op: "readlink", Path: name, Err: syscall.EINVAL}
	}
	return res.node.target, nil
}

func (m *MemFileSystem) readable(op, name string) (*memNode, error) {
	res, err := m.find(op, name, true)
	if err != nil {
		return nil, err
	}
	if res.node.kind == KindDir {
		return nil, &fs.PathError{Op: op, Path: name, Err: syscall.EISDIR}
	}
	res.node.atime = m.now()
	return res.node, nil
}

// Open implements FileSystem
func (m *MemFileSystem) Open(name string) (io.ReadCloser, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	n, err := m.readable("open", name)
	if err != nil {
		return nil, err
	}
	return io.NopCloser(bytes.NewReader(bytes.Clone(n.data))), nil
}

// ReadAt implements FileSystem
func (m *MemFileSystem) ReadAt(name string, off, n int64) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	node, err := m.readable("read", name)
	if err != nil {
		return nil, err
	}
	size := int64(len(node.data))
	off = min(max(off, 0), size)
	end := size
	if n >= 0 {
		end = min(off+n, size)
	}
	return bytes.Clone(node.data[off:end]), nil
}

func (m *MemFileSystem) writable(op, name string, perm fs.FileMode) (*memNode, error) {
	if err := m.fault(op, name); err != nil {
		return nil, err
	}
	res, err := m.lookup(name, true)
	if err != nil {
		return nil, &fs.PathError{Op: op, Path: name, Err: err}
	}
	if res.node == nil {
		if res.parent == nil || res.parent.kind != KindDir {
			return nil, &fs.PathError{Op: op, Path: name, Err: syscall.ENOENT}
		}
		n := m.newNode(KindFile, perm)
		res.parent.add(res.base, n)
		return n, nil
	}
	if res.node.kind == KindDir {
		return nil, &fs.PathError{Op: op, Path: name, Err: syscall.EISDIR}
	}
	return res.node, nil
}

// WriteFile implements FileSystem
func (m *MemFileSystem) WriteFile(name string, data []byte, perm fs.FileMode, appending bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	n, err := m.writable("write", name, perm)
	if err != nil {
		return err
	}
	if appending {
		n.data = append(n.data, data...)
	} else {
		n.data = bytes.Clone(data)
	}
	n.mtime = m.now()
	return nil
}

type memWriter struct {
	m    *MemFileSystem
	node *memNode
}

func (w *memWriter) Write(p []byte) (int, error) {
	w.m.mu.Lock()
	defer w.m.mu.Unlock()
	w.node.data = append(w.node.data, p...)
	w.node.mtime = w.m.now()
	return len(p), nil
}

func (w *memWriter) Close() error {
	return nil
}

// Create implements FileSystem
func (m *MemFileSystem) Create(name string, perm fs.FileMode) (io.WriteCloser, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	n, err := m.writable("create", name, perm)
	if err != nil {
		return nil, err
	}
	n.data = nil
	n.mtime = m.now()
	return &memWriter{m: m, node: n}, nil
}

// Chtimes implements FileSystem
func (m *MemFileSystem) Chtimes(name string, atime, mtime time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	res, err := m.find("chtimes", name, true)
	if err != nil {
		return err
	}
	res.node.atime = atime
	res.node.mtime = mtime
	res.node.ctime = m.now()
	return nil
}

// Access implements FileSystem. Only the owner bits are consulted.
func (m *MemFileSystem) Access(name string, mode AccessMode) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	res, err := m.find("access", name, true)
	if err != nil {
		return false
	}
	perm := res.node.perm
	if mode&AccessRead != 0 && perm&0o400 == 0 {
		return false
	}
	if mode&AccessWrite != 0 && perm&0o200 == 0 {
		return false
	}
	return mode&AccessExecute == 0 || perm&0o100 != 0
}

// Getwd implements FileSystem
func (m *MemFileSystem) Getwd() (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cwd, nil
}

// Chdir implements FileSystem
func (m *MemFileSystem) Chdir(dir string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	res, err := m.find("chdir", dir, true)
	if err != nil {
		return err
	}
	if res.node.kind != KindDir {
		return &fs.PathError{Op: "chdir", Path: dir, Err: syscall.ENOTDIR}
	}
	m.cwd = res.path
	return nil
}

// Home implements FileSystem
func (m *MemFileSystem) Home() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.home
}

// Canonicalize implements FileSystem
func (m *MemFileSystem) Canonicalize(name string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	res, err := m.find("canonicalize", name, true)
	if err != nil {
		return "", err
	}
	return res.path, nil
}
