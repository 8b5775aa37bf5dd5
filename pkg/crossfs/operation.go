package crossfs

import (
	"context"
	"fmt"
	"time"
)

// OpType names a kind of batch operation.
type OpType string

const (
	OpMkdir   OpType = "mkdir"
	OpWrite   OpType = "write"
	OpAppend  OpType = "append"
	OpTouch   OpType = "touch"
	OpCopy    OpType = "copy"
	OpRename  OpType = "rename"
	OpRemove  OpType = "remove"
	OpSymlink OpType = "symlink"
)

func (t OpType) valid() bool {
	switch t {
	case OpMkdir, OpWrite, OpAppend, OpTouch, OpCopy, OpRename, OpRemove, OpSymlink:
		return true
	}
	return false
}

// needsTarget reports whether the operation needs a second path.
func (t OpType) needsTarget() bool {
	return t == OpCopy || t == OpRename || t == OpSymlink
}

// Operation is one step of a batch.
type Operation interface {
	ID() OperationID
	Describe() OperationDesc
	Dependencies() []OperationID
	// Paths lists the paths the operation reads or changes. Operations on
	// overlapping paths run in the order they were queued.
	Paths() []string
	Validate() error
	Execute(ctx context.Context, fs *FS) error
}

// FileOperation is the Operation behind every OpType.
type FileOperation struct {
	id      OperationID
	opType  OpType
	path    string
	target  string
	content []byte
	atime   time.Time
	mtime   time.Time
	deps    []OperationID
}

// NewOperation creates an operation of type opType on path.
func NewOperation(id OperationID, opType OpType, path string) *FileOperation {
	return &FileOperation{id: id, opType: opType, path: path}
}

// WithTarget sets the destination of a copy or rename, or what a symlink
// points at.
func (op *FileOperation) WithTarget(target string) *FileOperation {
	op.target = target
	return op
}

// WithContent sets the data written by write and append operations.
func (op *FileOperation) WithContent(content []byte) *FileOperation {
	op.content = content
	return op
}

// WithTimes sets the times applied by a touch operation. Zero means now.
func (op *FileOperation) WithTimes(atime, mtime time.Time) *FileOperation {
	op.atime, op.mtime = atime, mtime
	return op
}

// AddDependency makes op run after the operation with id depID.
func (op *FileOperation) AddDependency(depID OperationID) {
	op.deps = append(op.deps, depID)
}

func (op *FileOperation) ID() OperationID { return op.id }

func (op *FileOperation) Type() OpType { return op.opType }

func (op *FileOperation) Describe() OperationDesc {
	details := map[string]interface{}{}
	if op.target != "" {
		details["target"] = op.target
	}
	if op.opType == OpWrite || op.opType == OpAppend {
		details["size"] = len(op.content)
	}
	return OperationDesc{Type: string(op.opType), Path: op.path, Details: details}
}

func (op *FileOperation) Dependencies() []OperationID {
	return op.deps
}

func (op *FileOperation) Paths() []string {
	if op.opType.needsTarget() {
		return []string{op.path, op.target}
	}
	return []string{op.path}
}

// Validate checks the operation is complete. It does not look at the
// filesystem, since earlier operations in a batch may still change it.
func (op *FileOperation) Validate() error {
	if !op.opType.valid() {
		return fmt.Errorf("unknown operation type %q", op.opType)
	}
	if op.path == "" {
		return fmt.Errorf("%s operation needs a path", op.opType)
	}
	if op.opType.needsTarget() && op.target == "" {
		return fmt.Errorf("%s operation needs a target", op.opType)
	}
	return nil
}

func (op *FileOperation) Execute(ctx context.Context, fs *FS) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	switch op.opType {
	case OpMkdir:
		return fs.Mkdir(op.path)
	case OpWrite:
		return fs.Write(op.path, op.content)
	case OpAppend:
		return fs.Append(op.path, op.content)
	case OpTouch:
		return fs.Touch(op.path, op.atime, op.mtime)
	case OpCopy:
		return fs.Copy(op.path, op.target)
	case OpRename:
		return fs.Rename(op.path, op.target)
	case OpRemove:
		return fs.Remove(op.path)
	case OpSymlink:
		return fs.Symlink(op.target, op.path)
	}
	return fmt.Errorf("unknown operation type %q", op.opType)
}
