// Package testutil provides step doubles for operations tests.
package testutil

import (
	"context"
	"sync"

	"adaptercli/internal/operations"
)

// MockStep is a configurable implementation of operations.Step
type MockStep struct {
	IDValue   string
	NameValue string

	ExecuteFunc  func(ctx context.Context, state *operations.OperationState) error
	ValidateFunc func(state *operations.OperationState) error

	mu           sync.Mutex
	executeCalls int
}

// ID returns the step ID
func (m *MockStep) ID() string {
	return m.IDValue
}

// Name returns the step name
func (m *MockStep) Name() string {
	return m.NameValue
}

// Validate calls ValidateFunc when set
func (m *MockStep) Validate(state *operations.OperationState) error {
	if m.ValidateFunc != nil {
		return m.ValidateFunc(state)
	}
	return nil
}

// Execute counts the call and runs ExecuteFunc when set
func (m *MockStep) Execute(ctx context.Context, state *operations.OperationState) error {
	m.mu.Lock()
	m.executeCalls++
	m.mu.Unlock()
	if m.ExecuteFunc != nil {
		return m.ExecuteFunc(ctx, state)
	}
	return nil
}

// ExecuteCalls returns how often Execute ran
func (m *MockStep) ExecuteCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.executeCalls
}

// SuccessfulStep returns a step that always succeeds
func SuccessfulStep(id string) *MockStep {
	return &MockStep{IDValue: id, NameValue: id}
}

// FailingStep returns a step that fails with err
func FailingStep(id string, err error) *MockStep {
	return &MockStep{
		IDValue:   id,
		NameValue: id,
		ExecuteFunc: func(context.Context, *operations.OperationState) error {
			return err
		},
	}
}

// RecordingStep returns a step that appends its ID to order on each run
func RecordingStep(id string, order *[]string) *MockStep {
	return &MockStep{
		IDValue:   id,
		NameValue: id,
		ExecuteFunc: func(context.Context, *operations.OperationState) error {
			*order = append(*order, id)
			return nil
		},
	}
}
