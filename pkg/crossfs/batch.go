package crossfs

import (
	"context"
	"time"
)

// Batch provides a fluent API for building and running several operations.
// Operations run in the order they were added unless explicit dependencies
// require an operation to wait, in which case later operations on
// overlapping paths wait with it.
//
// Example usage:
//
//	err := crossfs.NewBatch(crossfs.NewOS()).
//		Mkdir("project/src").
//		Write("project/README.md", []byte("# My Project")).
//		Copy("template.conf", "project/config.conf").
//		Execute(ctx)
type Batch struct {
	fs    *FS
	ops   []Operation
	idgen IDGenerator
}

// NewBatch creates a new batch running against fs.
func NewBatch(fs *FS) *Batch {
	return &Batch{fs: fs, idgen: UUIDIDGenerator}
}

// WithIDGenerator sets how operation IDs are produced.
func (b *Batch) WithIDGenerator(gen IDGenerator) *Batch {
	b.idgen = gen
	return b
}

func (b *Batch) add(opType OpType, p string) *FileOperation {
	op := NewOperation(b.idgen(string(opType), p), opType, p)
	b.ops = append(b.ops, op)
	return op
}

// Mkdir adds a directory creation operation to the batch
func (b *Batch) Mkdir(dir string) *Batch {
	b.add(OpMkdir, dir)
	return b
}

// Write adds a file write operation to the batch
func (b *Batch) Write(file string, data []byte) *Batch {
	b.add(OpWrite, file).WithContent(data)
	return b
}

// Append adds a file append operation to the batch
func (b *Batch) Append(file string, data []byte) *Batch {
	b.add(OpAppend, file).WithContent(data)
	return b
}

// Touch adds an operation setting the times of file, creating it if needed.
func (b *Batch) Touch(file string, atime, mtime time.Time) *Batch {
	b.add(OpTouch, file).WithTimes(atime, mtime)
	return b
}

// Copy adds a recursive copy operation to the batch
func (b *Batch) Copy(src, dst string) *Batch {
	b.add(OpCopy, src).WithTarget(dst)
	return b
}

// Rename adds a rename operation to the batch
func (b *Batch) Rename(oldpath, newpath string) *Batch {
	b.add(OpRename, oldpath).WithTarget(newpath)
	return b
}

// Remove adds a recursive removal to the batch
func (b *Batch) Remove(p string) *Batch {
	b.add(OpRemove, p)
	return b
}

// Symlink adds a symlink creation operation to the batch
func (b *Batch) Symlink(target, link string) *Batch {
	b.add(OpSymlink, link).WithTarget(target)
	return b
}

// Add appends prepared operations to the batch.
func (b *Batch) Add(ops ...Operation) *Batch {
	b.ops = append(b.ops, ops...)
	return b
}

// Operations returns the list of operations in the batch
func (b *Batch) Operations() []Operation {
	ops := make([]Operation, len(b.ops))
	copy(ops, b.ops)
	return ops
}

// Run executes the batch and returns the detailed result.
func (b *Batch) Run(ctx context.Context) (*Result, error) {
	queue := NewMemQueue()
	if err := queue.Add(b.ops...); err != nil {
		return nil, err
	}
	result := NewExecutor(b.fs.Logger()).Run(ctx, b.fs, queue)
	return result, result.FirstError()
}

// Execute runs all operations in the batch
func (b *Batch) Execute(ctx context.Context) error {
	_, err := b.Run(ctx)
	return err
}

// Plan returns the batch as a serializable plan.
func (b *Batch) Plan(description string) (*Plan, error) {
	plan := NewPlan(description)
	for _, op := range b.ops {
		if err := plan.Add(op); err != nil {
			return nil, err
		}
	}
	return plan, nil
}
