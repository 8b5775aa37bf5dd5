package crossfs

import (
	"fmt"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/arthur-debert/crossfs/pkg/crossfs/core"
)

// IDGenerator defines the interface for generating operation IDs
type IDGenerator func(opType, path string) core.OperationID

var (
	// sequenceCounter for SequenceIDGenerator
	sequenceCounter atomic.Uint64
)

// UUIDIDGenerator generates IDs from the operation type and a random UUID
func UUIDIDGenerator(opType, path string) core.OperationID {
	return core.OperationID(fmt.Sprintf("%s-%s", opType, uuid.NewString()))
}

// SequenceIDGenerator generates sequential IDs (useful for testing)
func SequenceIDGenerator(opType, path string) core.OperationID {
	seq := sequenceCounter.Add(1)
	return core.OperationID(fmt.Sprintf("%s-%d", opType, seq))
}

// ResetSequenceCounter resets the sequence counter (for testing)
func ResetSequenceCounter() {
	sequenceCounter.Store(0)
}
