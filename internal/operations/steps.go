package operations

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"adaptercli/internal/dataprocessing"
	"adaptercli/internal/infrastructure"
	"adaptercli/internal/tableio"
)

// Step IDs
const (
	StepIDLoad  = "load"
	StepIDClean = "clean"
	StepIDAlign = "align"
	StepIDWrite = "write"
)

// LoadStep reads the input file into the operation state
type LoadStep struct {
	BaseStep
	reader  *tableio.Reader
	opts    tableio.ReadOptions
	metrics *infrastructure.PipelineMetrics
	logger  *slog.Logger
}

// NewLoadStep creates the load step
func NewLoadStep(reader *tableio.Reader, opts tableio.ReadOptions, metrics *infrastructure.PipelineMetrics, logger *slog.Logger) *LoadStep {
	return &LoadStep{
		BaseStep: NewBaseStep(StepIDLoad, "Load table"),
		reader:   reader,
		opts:     opts,
		metrics:  metrics,
		logger:   logger,
	}
}

// Validate requires an input path
func (s *LoadStep) Validate(state *OperationState) error {
	if state.InputPath == "" {
		return fmt.Errorf("no input file")
	}
	return nil
}

// Execute loads the table. An input without a header halts the pipeline
// without an error.
func (s *LoadStep) Execute(ctx context.Context, state *OperationState) error {
	table, stats, err := s.reader.ReadTable(state.InputPath, s.opts)
	state.ReadStats = stats
	if errors.Is(err, tableio.ErrEmptyInput) {
		s.logger.WarnContext(ctx, "input is empty, nothing to do",
			slog.String("input", state.InputPath))
		state.Halt("empty input")
		return nil
	}
	if err != nil {
		return NewExecutionError(s.ID(), err, false)
	}

	state.Table = table
	s.metrics.RecordRead(ctx, state.InputPath, stats.RowsRead, stats.MalformedRows)
	return nil
}

// CleanStep runs the cleaning stage on the loaded table
type CleanStep struct {
	BaseStep
	cleaner *dataprocessing.Cleaner
	metrics *infrastructure.PipelineMetrics
}

// NewCleanStep creates the clean step
func NewCleanStep(cleaner *dataprocessing.Cleaner, metrics *infrastructure.PipelineMetrics) *CleanStep {
	return &CleanStep{
		BaseStep: NewBaseStep(StepIDClean, "Clean table"),
		cleaner:  cleaner,
		metrics:  metrics,
	}
}

// Validate requires a loaded table
func (s *CleanStep) Validate(state *OperationState) error {
	if state.Table == nil {
		return fmt.Errorf("no table loaded")
	}
	return nil
}

// Execute cleans the table in place
func (s *CleanStep) Execute(ctx context.Context, state *OperationState) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	state.CleanStats = s.cleaner.Clean(ctx, state.Table)
	s.metrics.RecordClean(ctx, state.InputPath, state.CleanStats)
	return ctx.Err()
}

// AlignStep resamples the cleaned table onto the time grid
type AlignStep struct {
	BaseStep
	aligner     *dataprocessing.Aligner
	timeColumn  string
	dependent   []string
	independent []string
	disabled    bool
	metrics     *infrastructure.PipelineMetrics
}

// NewAlignStep creates the align step. A disabled step or an empty time
// column skips alignment.
func NewAlignStep(aligner *dataprocessing.Aligner, timeColumn string, dependent, independent []string, disabled bool, metrics *infrastructure.PipelineMetrics) *AlignStep {
	return &AlignStep{
		BaseStep:    NewBaseStep(StepIDAlign, "Align to time grid"),
		aligner:     aligner,
		timeColumn:  timeColumn,
		dependent:   dependent,
		independent: independent,
		disabled:    disabled,
		metrics:     metrics,
	}
}

// Validate requires a loaded table
func (s *AlignStep) Validate(state *OperationState) error {
	if state.Table == nil {
		return fmt.Errorf("no table loaded")
	}
	return nil
}

// Execute aligns the table. A missing time column leaves it unchanged.
func (s *AlignStep) Execute(ctx context.Context, state *OperationState) error {
	if s.disabled {
		return fmt.Errorf("%w: alignment disabled", ErrStepSkipped)
	}
	if s.timeColumn == "" {
		return fmt.Errorf("%w: no time column configured", ErrStepSkipped)
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	state.AlignStats = s.aligner.Align(ctx, state.Table, s.timeColumn, s.dependent, s.independent)
	s.metrics.RecordAlign(ctx, state.InputPath, state.AlignStats)
	return ctx.Err()
}

// WriteStep writes the result table to the output path
type WriteStep struct {
	BaseStep
	writer *tableio.Writer
	opts   tableio.WriteOptions
}

// NewWriteStep creates the write step
func NewWriteStep(writer *tableio.Writer, opts tableio.WriteOptions) *WriteStep {
	return &WriteStep{
		BaseStep: NewBaseStep(StepIDWrite, "Write table"),
		writer:   writer,
		opts:     opts,
	}
}

// Validate requires a table and an output path
func (s *WriteStep) Validate(state *OperationState) error {
	if state.Table == nil {
		return fmt.Errorf("no table loaded")
	}
	if state.OutputPath == "" {
		return fmt.Errorf("no output file")
	}
	return nil
}

// Execute writes the table
func (s *WriteStep) Execute(ctx context.Context, state *OperationState) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.writer.WriteTable(state.OutputPath, state.Table, s.opts); err != nil {
		return NewExecutionError(s.ID(), err, false)
	}
	return nil
}
