package operations

import (
	"context"
	"fmt"
	"log/slog"

	"adaptercli/internal/config"
	"adaptercli/internal/dataprocessing"
	"adaptercli/internal/infrastructure"
	"adaptercli/internal/tableio"
)

// PipelineOptions carries the collaborators of a pipeline
type PipelineOptions struct {
	Logger    *slog.Logger
	Providers *infrastructure.OTelProviders
	Metrics   *infrastructure.PipelineMetrics

	// SkipAlignment disables the align step
	SkipAlignment bool

	// Execution overrides the step timeouts
	Execution *Config
}

// Pipeline runs load, clean, align and write for one input at a time.
// It is safe to call Run from several goroutines.
type Pipeline struct {
	cfg      *config.Config
	cleaning dataprocessing.CleaningOptions
	align    dataprocessing.AlignOptions
	opts     PipelineOptions
	logger   *slog.Logger
}

// NewPipeline checks the stage options derived from cfg. Unknown
// strategies and unimplemented solvers are reported here, before any input
// is read.
func NewPipeline(cfg *config.Config, opts PipelineOptions) (*Pipeline, error) {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	cleaning, err := cfg.CleaningOptions()
	if err != nil {
		return nil, NewValidationError(StepIDClean, err.Error())
	}
	align, err := cfg.AlignOptions()
	if err != nil {
		return nil, NewValidationError(StepIDAlign, err.Error())
	}
	if _, err := dataprocessing.NewInterpolator(align.Method); err != nil {
		return nil, &OperationError{
			Type:    ErrorTypeValidation,
			Step:    StepIDAlign,
			Message: fmt.Sprintf("solver %q cannot be used", align.Method),
			Cause:   err,
		}
	}
	return &Pipeline{
		cfg:      cfg,
		cleaning: cleaning,
		align:    align,
		opts:     opts,
		logger:   opts.Logger,
	}, nil
}

// newManager builds a manager with fresh steps for one run
func (p *Pipeline) newManager() (*Manager, error) {
	aligner, err := dataprocessing.NewAligner(p.align, p.logger)
	if err != nil {
		return nil, NewValidationError(StepIDAlign, err.Error())
	}

	m := NewManager(p.logger, p.opts.Providers, p.opts.Metrics)
	m.SetConfig(p.opts.Execution)

	delimiter := p.cfg.DelimiterRune()
	steps := []Step{
		NewLoadStep(tableio.NewReader(p.logger), tableio.ReadOptions{Delimiter: delimiter}, p.opts.Metrics, p.logger),
		NewCleanStep(dataprocessing.NewCleaner(p.cleaning, p.logger), p.opts.Metrics),
		NewAlignStep(aligner, p.cfg.TimeColumn, p.cfg.DependentVariables, p.cfg.IndependentVariables, p.opts.SkipAlignment, p.opts.Metrics),
		NewWriteStep(tableio.NewWriter(p.logger), tableio.WriteOptions{Delimiter: delimiter}),
	}
	for _, step := range steps {
		if err := m.RegisterStep(step); err != nil {
			return nil, NewFatalError("register step", err)
		}
	}
	return m, nil
}

// Run processes one input file and writes the result to output. The
// returned state is non-nil whenever the steps ran.
func (p *Pipeline) Run(ctx context.Context, input, output string) (*OperationState, error) {
	m, err := p.newManager()
	if err != nil {
		return nil, err
	}

	ctx = infrastructure.EnsureTraceID(ctx)
	state := NewOperationState(infrastructure.GetTraceID(ctx), input, output)
	if err := m.Execute(ctx, state); err != nil {
		return state, err
	}
	return state, nil
}
