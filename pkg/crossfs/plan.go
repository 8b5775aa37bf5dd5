package crossfs

import (
	"encoding/json"
	"fmt"
	"time"
)

// PlanVersion is written into every plan's metadata.
const PlanVersion = "1.0"

// Plan represents a serializable list of operations
type Plan struct {
	Operations []OperationData `json:"operations"`
	Metadata   PlanMetadata    `json:"metadata"`
}

// PlanMetadata contains information about the plan
type PlanMetadata struct {
	Version     string `json:"version"`
	Description string `json:"description,omitempty"`
	CreatedAt   string `json:"created_at,omitempty"`
}

// OperationData represents the JSON structure for operations
type OperationData struct {
	Type         OpType     `json:"type"`
	ID           string     `json:"id"`
	Path         string     `json:"path"`
	Target       string     `json:"target,omitempty"`
	Content      []byte     `json:"content,omitempty"`
	Atime        *time.Time `json:"atime,omitempty"`
	Mtime        *time.Time `json:"mtime,omitempty"`
	Dependencies []string   `json:"dependencies,omitempty"`
}

// NewPlan creates an empty plan.
func NewPlan(description string) *Plan {
	return &Plan{
		Operations: []OperationData{},
		Metadata: PlanMetadata{
			Version:     PlanVersion,
			Description: description,
			CreatedAt:   time.Now().UTC().Format(time.RFC3339),
		},
	}
}

// Add records op in the plan. Only FileOperation values can be serialized.
func (p *Plan) Add(op Operation) error {
	fop, ok := op.(*FileOperation)
	if !ok {
		return fmt.Errorf("operation %s of type %T cannot be serialized", op.ID(), op)
	}

	data := OperationData{
		Type:    fop.opType,
		ID:      string(fop.id),
		Path:    fop.path,
		Target:  fop.target,
		Content: fop.content,
	}
	if !fop.atime.IsZero() {
		atime := fop.atime
		data.Atime = &atime
	}
	if !fop.mtime.IsZero() {
		mtime := fop.mtime
		data.Mtime = &mtime
	}
	for _, dep := range fop.deps {
		data.Dependencies = append(data.Dependencies, string(dep))
	}
	p.Operations = append(p.Operations, data)
	return nil
}

// ToQueue builds a queue holding the plan's operations.
func (p *Plan) ToQueue() (Queue, error) {
	queue := NewMemQueue()
	for _, data := range p.Operations {
		op := NewOperation(OperationID(data.ID), data.Type, data.Path).
			WithTarget(data.Target).
			WithContent(data.Content)
		var atime, mtime time.Time
		if data.Atime != nil {
			atime = *data.Atime
		}
		if data.Mtime != nil {
			mtime = *data.Mtime
		}
		op.WithTimes(atime, mtime)
		for _, dep := range data.Dependencies {
			op.AddDependency(OperationID(dep))
		}
		if err := queue.Add(op); err != nil {
			return nil, err
		}
	}
	return queue, nil
}

// MarshalPlan serializes a plan to JSON
func MarshalPlan(plan *Plan) ([]byte, error) {
	return json.MarshalIndent(plan, "", "  ")
}

// UnmarshalPlan deserializes a plan from JSON
func UnmarshalPlan(data []byte) (*Plan, error) {
	var plan Plan
	if err := json.Unmarshal(data, &plan); err != nil {
		return nil, fmt.Errorf("failed to unmarshal plan: %w", err)
	}
	for i, op := range plan.Operations {
		if !op.Type.valid() {
			return nil, fmt.Errorf("unknown operation type: %s", op.Type)
		}
		if op.ID == "" {
			return nil, fmt.Errorf("operation %d has no id", i)
		}
	}
	return &plan, nil
}
