package operations

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOperationStateLifecycle(t *testing.T) {
	state := NewOperationState("op-1", "in.csv", "out.csv")
	assert.Equal(t, OperationStatusPending, state.GetStatus())
	assert.Nil(t, state.EndTime)

	state.Start()
	assert.Equal(t, OperationStatusRunning, state.GetStatus())

	state.Complete()
	assert.Equal(t, OperationStatusCompleted, state.GetStatus())
	require.NotNil(t, state.EndTime)
	assert.GreaterOrEqual(t, state.Duration().Nanoseconds(), int64(0))
}

func TestOperationStateFailAndCancel(t *testing.T) {
	failed := NewOperationState("op-1", "in.csv", "out.csv")
	boom := errors.New("boom")
	failed.Fail(boom)
	assert.Equal(t, OperationStatusFailed, failed.GetStatus())
	assert.Equal(t, boom, failed.Error)

	cancelled := NewOperationState("op-2", "in.csv", "out.csv")
	cancelled.Cancel()
	assert.Equal(t, OperationStatusCancelled, cancelled.GetStatus())
	assert.ErrorIs(t, cancelled.Error, context.Canceled)
}

func TestOperationStateHalt(t *testing.T) {
	state := NewOperationState("op-1", "in.csv", "out.csv")
	_, halted := state.Halted()
	assert.False(t, halted)

	state.Halt("empty input")
	reason, halted := state.Halted()
	assert.True(t, halted)
	assert.Equal(t, "empty input", reason)
}

func TestStepStateTransitions(t *testing.T) {
	s := NewStepState("load", "Load table")
	assert.Equal(t, StepStatusPending, s.GetStatus())
	assert.Zero(t, s.Duration())

	s.Start()
	assert.Equal(t, StepStatusActive, s.GetStatus())
	require.NotNil(t, s.StartTime)

	s.Complete()
	assert.Equal(t, StepStatusCompleted, s.GetStatus())
	require.NotNil(t, s.EndTime)

	skipped := NewStepState("align", "Align")
	skipped.Skip("alignment disabled")
	assert.Equal(t, StepStatusSkipped, skipped.GetStatus())
	assert.Equal(t, "alignment disabled", skipped.Message)

	failed := NewStepState("write", "Write")
	failed.Fail(errors.New("disk full"))
	assert.Equal(t, StepStatusFailed, failed.GetStatus())
	assert.EqualError(t, failed.Error, "disk full")
}

func TestOperationStateSteps(t *testing.T) {
	state := NewOperationState("op-1", "in.csv", "out.csv")
	assert.Nil(t, state.GetStep("load"))

	state.SetStep("load", NewStepState("load", "Load"))
	require.NotNil(t, state.GetStep("load"))
	assert.Equal(t, "Load", state.GetStep("load").Name)
}
