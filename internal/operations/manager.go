package operations

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"

	"adaptercli/internal/infrastructure"
)

// Manager runs the registered steps in order against one operation state
type Manager struct {
	registry *Registry
	config   *Config
	tracer   trace.Tracer
	metrics  *infrastructure.PipelineMetrics
	logger   *slog.Logger
}

// NewManager creates a new manager. A nil providers runs without tracing and
// a nil metrics records nothing.
func NewManager(logger *slog.Logger, providers *infrastructure.OTelProviders, metrics *infrastructure.PipelineMetrics) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	var tracer trace.Tracer = tracenoop.NewTracerProvider().Tracer("")
	if providers != nil && providers.Tracer != nil {
		tracer = providers.Tracer
	}
	return &Manager{
		registry: NewRegistry(),
		config:   NewConfig(),
		tracer:   tracer,
		metrics:  metrics,
		logger:   logger.With(slog.String("component", "operations")),
	}
}

// RegisterStep registers a step with the manager
func (m *Manager) RegisterStep(step Step) error {
	return m.registry.Register(step)
}

// GetRegistry returns the step registry
func (m *Manager) GetRegistry() *Registry {
	return m.registry
}

// SetConfig updates the manager configuration
func (m *Manager) SetConfig(config *Config) {
	if config != nil {
		m.config = config
	}
}

// GetConfig returns the current configuration
func (m *Manager) GetConfig() *Config {
	return m.config
}

// Execute runs every registered step against state. It stops at the first
// failed step; the steps after it are marked skipped.
func (m *Manager) Execute(ctx context.Context, state *OperationState) error {
	steps := m.registry.List()
	if len(steps) == 0 {
		return NewFatalError("no steps registered", nil)
	}
	for _, step := range steps {
		if state.GetStep(step.ID()) == nil {
			state.SetStep(step.ID(), NewStepState(step.ID(), step.Name()))
		}
	}

	ctx, span := m.tracer.Start(ctx, "operation.execute",
		trace.WithAttributes(
			attribute.String("operation.id", state.ID),
			attribute.String("operation.input", state.InputPath),
		))
	defer span.End()

	m.logOperationStart(ctx, state)
	state.Start()

	err := m.executeSequential(ctx, state, steps)
	switch {
	case err == nil:
		state.Complete()
		m.logOperationComplete(ctx, state)
	case GetErrorType(err) == ErrorTypeCancellation:
		state.Cancel()
		span.SetStatus(codes.Error, "cancelled")
		m.logOperationError(ctx, state.ID, err)
	default:
		state.Fail(err)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		m.logOperationError(ctx, state.ID, err)
	}
	return err
}

// executeSequential executes steps one after another
func (m *Manager) executeSequential(ctx context.Context, state *OperationState, steps []Step) error {
	for i, step := range steps {
		stepState := state.GetStep(step.ID())

		if reason, halted := state.Halted(); halted {
			stepState.Skip(reason)
			m.logStepSkipped(ctx, state.ID, step.ID(), reason)
			continue
		}

		select {
		case <-ctx.Done():
			m.skipRemaining(state, steps[i:], "operation cancelled")
			return NewCancellationError(step.ID(), ctx.Err())
		default:
		}

		m.logger.DebugContext(ctx, "executing_step",
			slog.String("operation_id", state.ID),
			slog.String("step", step.ID()),
			slog.Int("step_number", i+1),
			slog.Int("total_steps", len(steps)))

		if err := m.executeStep(ctx, state, step); err != nil {
			m.logStepError(ctx, state.ID, step.ID(), err)
			m.skipRemaining(state, steps[i+1:], fmt.Sprintf("step %s failed", step.ID()))
			return err
		}
	}
	return nil
}

// executeStep validates and runs one step inside its own span and timeout
func (m *Manager) executeStep(ctx context.Context, state *OperationState, step Step) error {
	stepState := state.GetStep(step.ID())
	if stepState == nil {
		return NewFatalError(fmt.Sprintf("state for step %s not found", step.ID()), nil)
	}

	if err := step.Validate(state); err != nil {
		stepState.Fail(err)
		return NewValidationError(step.ID(), err.Error())
	}

	timeout := m.config.GetStepTimeout(step.ID())
	stepCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	stepCtx, span := m.tracer.Start(stepCtx, "step."+step.ID(),
		trace.WithAttributes(
			attribute.String("step.id", step.ID()),
			attribute.String("step.name", step.Name()),
		))
	defer span.End()

	m.logStepStart(ctx, state.ID, step.ID())
	stepState.Start()
	start := time.Now()
	err := step.Execute(stepCtx, state)
	duration := time.Since(start)

	if errors.Is(err, ErrStepSkipped) {
		stepState.Skip(err.Error())
		span.SetAttributes(attribute.Bool("step.skipped", true))
		m.logStepSkipped(ctx, state.ID, step.ID(), err.Error())
		m.metrics.RecordStep(ctx, step.ID(), duration, nil)
		return nil
	}

	m.metrics.RecordStep(ctx, step.ID(), duration, err)

	if err != nil {
		if ctxErr := stepCtx.Err(); ctxErr != nil && errors.Is(err, ctxErr) {
			err = NewCancellationError(step.ID(), err)
		}
		stepState.Fail(err)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return WrapError(err, step.ID(), "step execution failed")
	}

	stepState.Complete()
	span.SetStatus(codes.Ok, "")
	m.logStepComplete(ctx, state.ID, step.ID(), duration)
	return nil
}

// skipRemaining marks the pending steps in steps as skipped
func (m *Manager) skipRemaining(state *OperationState, steps []Step, reason string) {
	for _, step := range steps {
		if stepState := state.GetStep(step.ID()); stepState != nil && stepState.GetStatus() == StepStatusPending {
			stepState.Skip(reason)
		}
	}
}
