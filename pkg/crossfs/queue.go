package crossfs

import (
	"fmt"

	"github.com/gammazero/toposort"

	"github.com/arthur-debert/crossfs/pkg/crossfs/core"
	"github.com/arthur-debert/crossfs/pkg/crossfs/path"
)

// Queue holds the operations of a batch.
type Queue interface {
	// Add appends operations. IDs must be unique within the queue.
	Add(ops ...Operation) error

	// Operations returns the queued operations, in execution order once
	// Resolve has succeeded.
	Operations() []Operation

	// Resolve orders the operations so each runs after its explicit
	// dependencies and after every earlier queued operation on an
	// overlapping path. Operations keep their queue order otherwise.
	// A dependency cycle is an error.
	Resolve() error

	// Validate checks every operation and that all dependencies are queued.
	Validate() error
}

type memQueue struct {
	ops      []Operation
	index    map[OperationID]int
	resolved bool
}

// NewMemQueue creates an empty in-memory queue.
func NewMemQueue() Queue {
	return &memQueue{index: make(map[OperationID]int)}
}

func (q *memQueue) Add(ops ...Operation) error {
	for _, op := range ops {
		if op == nil {
			return fmt.Errorf("cannot add a nil operation to the queue")
		}
		if _, dup := q.index[op.ID()]; dup {
			return fmt.Errorf("operation with ID '%s' already exists in the queue", op.ID())
		}
		q.index[op.ID()] = len(q.ops)
		q.ops = append(q.ops, op)
		q.resolved = false
	}
	return nil
}

func (q *memQueue) Operations() []Operation {
	out := make([]Operation, len(q.ops))
	copy(out, q.ops)
	return out
}

// orderEdge says the operation at index before must run before the one at
// index after.
type orderEdge struct {
	before, after int
}

func (q *memQueue) Resolve() error {
	if q.resolved || len(q.ops) == 0 {
		q.resolved = true
		return nil
	}
	if err := q.validateDependencies(); err != nil {
		return fmt.Errorf("dependency validation failed: %w", err)
	}

	edges := q.edges()
	if err := q.checkAcyclic(edges); err != nil {
		return err
	}

	order := stableOrder(len(q.ops), edges)
	ops := make([]Operation, len(order))
	index := make(map[OperationID]int, len(order))
	for pos, i := range order {
		ops[pos] = q.ops[i]
		index[q.ops[i].ID()] = pos
	}

	q.ops = ops
	q.index = index
	q.resolved = true
	return nil
}

// edges collects explicit dependencies and the queue-order constraints
// between operations on overlapping paths.
func (q *memQueue) edges() []orderEdge {
	seen := make(map[orderEdge]bool)
	var edges []orderEdge
	add := func(e orderEdge) {
		if !seen[e] {
			seen[e] = true
			edges = append(edges, e)
		}
	}

	for i, op := range q.ops {
		for _, dep := range op.Dependencies() {
			add(orderEdge{before: q.index[dep], after: i})
		}
	}
	for i, earlier := range q.ops {
		for j := i + 1; j < len(q.ops); j++ {
			later := q.ops[j]
			if dependsOn(earlier, later.ID()) || !overlaps(earlier, later) {
				continue
			}
			add(orderEdge{before: i, after: j})
		}
	}
	return edges
}

func (q *memQueue) checkAcyclic(edges []orderEdge) error {
	graph := make([]toposort.Edge, len(edges))
	for k, e := range edges {
		graph[k] = toposort.Edge{string(q.ops[e.before].ID()), string(q.ops[e.after].ID())}
	}
	if _, err := toposort.Toposort(graph); err != nil {
		return fmt.Errorf("circular dependency detected: %w", err)
	}
	return nil
}

// stableOrder returns a topological order of n nodes that always picks the
// lowest ready index, so unconstrained nodes keep their relative order.
// edges must be acyclic.
func stableOrder(n int, edges []orderEdge) []int {
	pending := make([]int, n)
	next := make([][]int, n)
	for _, e := range edges {
		pending[e.after]++
		next[e.before] = append(next[e.before], e.after)
	}

	placed := make([]bool, n)
	order := make([]int, 0, n)
	for len(order) < n {
		for i := 0; i < n; i++ {
			if placed[i] || pending[i] > 0 {
				continue
			}
			placed[i] = true
			order = append(order, i)
			for _, j := range next[i] {
				pending[j]--
			}
			break
		}
	}
	return order
}

func (q *memQueue) Validate() error {
	if err := q.validateDependencies(); err != nil {
		return err
	}
	for _, op := range q.ops {
		if err := op.Validate(); err != nil {
			return &core.ValidationError{
				OperationID:   op.ID(),
				OperationDesc: op.Describe(),
				Reason:        "operation validation failed",
				Cause:         err,
			}
		}
	}
	return nil
}

func (q *memQueue) validateDependencies() error {
	for _, op := range q.ops {
		for _, dep := range op.Dependencies() {
			if _, ok := q.index[dep]; !ok {
				return &core.DependencyError{OperationID: op.ID(), Missing: []OperationID{dep}}
			}
		}
	}
	return nil
}

func overlaps(a, b Operation) bool {
	for _, pa := range a.Paths() {
		for _, pb := range b.Paths() {
			if pa == "" || pb == "" {
				continue
			}
			if path.IsWithin(pa, pb) || path.IsWithin(pb, pa) {
				return true
			}
		}
	}
	return false
}

func dependsOn(op Operation, id OperationID) bool {
	for _, dep := range op.Dependencies() {
		if dep == id {
			return true
		}
	}
	return false
}
