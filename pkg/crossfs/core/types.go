package core

// OperationID uniquely identifies an operation within a batch
type OperationID string

// OperationDesc describes an operation's type and target
type OperationDesc struct {
	Type    string
	Path    string
	Details map[string]interface{}
}

// OperationStatus indicates the outcome of an individual operation's execution
type OperationStatus string

const (
	// StatusSuccess indicates the operation completed successfully
	StatusSuccess OperationStatus = "SUCCESS"
	// StatusFailure indicates the operation failed during execution
	StatusFailure OperationStatus = "FAILURE"
	// StatusSkipped indicates the operation never ran because an earlier one failed
	StatusSkipped OperationStatus = "SKIPPED"
)
