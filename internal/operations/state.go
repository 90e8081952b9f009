package operations

import (
	"context"
	"sync"
	"time"

	"adaptercli/internal/tableio"
	"adaptercli/pkg/contracts/domain"
)

// OperationStatus represents the overall operation status
type OperationStatus string

const (
	OperationStatusPending   OperationStatus = "pending"
	OperationStatusRunning   OperationStatus = "running"
	OperationStatusCompleted OperationStatus = "completed"
	OperationStatusFailed    OperationStatus = "failed"
	OperationStatusCancelled OperationStatus = "cancelled"
)

// OperationState is the state of one input file flowing through the steps.
// Steps hand the table to each other through it.
type OperationState struct {
	mu sync.RWMutex

	ID         string          `json:"id"`
	InputPath  string          `json:"input_path"`
	OutputPath string          `json:"output_path"`
	Status     OperationStatus `json:"status"`
	StartTime  time.Time       `json:"start_time"`
	EndTime    *time.Time      `json:"end_time,omitempty"`

	Steps map[string]*StepState `json:"steps"`

	Table      *domain.Table     `json:"-"`
	ReadStats  tableio.ReadStats `json:"read_stats"`
	CleanStats domain.CleanStats `json:"clean_stats"`
	AlignStats domain.AlignStats `json:"align_stats"`

	// halt stops the remaining steps without failing the operation
	halt string

	Error error `json:"-"`
}

// NewOperationState creates a new operation state for one input
func NewOperationState(id, input, output string) *OperationState {
	return &OperationState{
		ID:         id,
		InputPath:  input,
		OutputPath: output,
		Status:     OperationStatusPending,
		StartTime:  time.Now(),
		Steps:      make(map[string]*StepState),
	}
}

// Start marks the operation as running
func (p *OperationState) Start() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Status = OperationStatusRunning
	p.StartTime = time.Now()
}

// Complete marks the operation as completed
func (p *OperationState) Complete() {
	p.mu.Lock()
	defer p.mu.Unlock()
	now := time.Now()
	p.EndTime = &now
	p.Status = OperationStatusCompleted
}

// Fail marks the operation as failed
func (p *OperationState) Fail(err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	now := time.Now()
	p.EndTime = &now
	p.Status = OperationStatusFailed
	p.Error = err
}

// Cancel marks the operation as cancelled
func (p *OperationState) Cancel() {
	p.mu.Lock()
	defer p.mu.Unlock()
	now := time.Now()
	p.EndTime = &now
	p.Status = OperationStatusCancelled
	p.Error = context.Canceled
}

// Halt asks the manager to skip the remaining steps. The operation still
// completes successfully.
func (p *OperationState) Halt(reason string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.halt = reason
}

// Halted returns the halt reason, if any
func (p *OperationState) Halted() (string, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.halt, p.halt != ""
}

// GetStep returns the state of a step
func (p *OperationState) GetStep(stepID string) *StepState {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.Steps[stepID]
}

// SetStep sets the state of a step
func (p *OperationState) SetStep(stepID string, state *StepState) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Steps[stepID] = state
}

// GetStatus returns the operation status
func (p *OperationState) GetStatus() OperationStatus {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.Status
}

// Duration returns the duration of the operation
func (p *OperationState) Duration() time.Duration {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.EndTime != nil {
		return p.EndTime.Sub(p.StartTime)
	}
	return time.Since(p.StartTime)
}
