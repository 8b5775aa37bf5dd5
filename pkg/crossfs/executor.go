package crossfs

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/arthur-debert/crossfs/pkg/crossfs/core"
)

// OperationResult holds the outcome of a single operation's execution
type OperationResult struct {
	OperationID OperationID
	Operation   Operation
	Status      OperationStatus
	Error       error
	Duration    time.Duration
}

// Result holds the overall outcome of running a queue of operations
type Result struct {
	Success    bool
	Operations []OperationResult
	Duration   time.Duration
	Errors     []error
}

// Executor runs a queue of operations in dependency order and stops at the
// first failure.
type Executor struct {
	logger zerolog.Logger
}

// NewExecutor creates a new Executor.
func NewExecutor(logger zerolog.Logger) *Executor {
	return &Executor{logger: logger}
}

// Run validates and resolves queue, then executes its operations against fs.
// Operations after a failure, or after ctx is cancelled, are reported as
// skipped.
func (e *Executor) Run(ctx context.Context, fs *FS, queue Queue) *Result {
	start := time.Now()
	result := &Result{
		Operations: []OperationResult{},
		Errors:     []error{},
		Success:    true,
	}

	e.logger.Info().
		Int("operation_count", len(queue.Operations())).
		Msg("starting execution")

	if err := queue.Validate(); err != nil {
		e.logger.Info().Err(err).Msg("queue validation failed")
		result.Success = false
		result.Errors = append(result.Errors, fmt.Errorf("validation failed: %w", err))
		result.Duration = time.Since(start)
		return result
	}

	if err := queue.Resolve(); err != nil {
		e.logger.Info().Err(err).Msg("dependency resolution failed")
		result.Success = false
		result.Errors = append(result.Errors, fmt.Errorf("dependency resolution failed: %w", err))
		result.Duration = time.Since(start)
		return result
	}

	ops := queue.Operations()
	failed := false
	for i, op := range ops {
		desc := op.Describe()
		if !failed {
			if err := ctx.Err(); err != nil {
				failed = true
				result.Success = false
				result.Errors = append(result.Errors, err)
			}
		}
		if failed {
			result.Operations = append(result.Operations, OperationResult{
				OperationID: op.ID(),
				Operation:   op,
				Status:      core.StatusSkipped,
			})
			continue
		}

		e.logger.Debug().
			Str("op_id", string(op.ID())).
			Str("op_type", desc.Type).
			Str("path", desc.Path).
			Int("operation_index", i+1).
			Int("total_operations", len(ops)).
			Msg("executing operation")

		opStart := time.Now()
		err := op.Execute(ctx, fs)
		opResult := OperationResult{
			OperationID: op.ID(),
			Operation:   op,
			Duration:    time.Since(opStart),
			Status:      core.StatusSuccess,
		}

		if err != nil {
			e.logger.Info().
				Str("op_id", string(op.ID())).
				Str("op_type", desc.Type).
				Str("path", desc.Path).
				Err(err).
				Msg("operation execution failed")

			opResult.Status = core.StatusFailure
			opResult.Error = err
			failed = true
			result.Success = false
			result.Errors = append(result.Errors, fmt.Errorf("operation %s failed: %w", op.ID(), err))
		}
		result.Operations = append(result.Operations, opResult)
	}

	result.Duration = time.Since(start)
	e.logger.Info().
		Bool("success", result.Success).
		Int("total_operations", len(ops)).
		Dur("total_duration", result.Duration).
		Msg("execution completed")
	return result
}

// FirstError returns the first error of the run, or nil.
func (r *Result) FirstError() error {
	if len(r.Errors) == 0 {
		return nil
	}
	return r.Errors[0]
}
