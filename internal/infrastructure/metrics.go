package infrastructure

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"adaptercli/pkg/contracts/domain"
)

// PipelineMetrics holds the instruments recorded by a processing run.
// A nil *PipelineMetrics records nothing.
type PipelineMetrics struct {
	RowsRead           metric.Int64Counter
	RowsMalformed      metric.Int64Counter
	DuplicatesRemoved  metric.Int64Counter
	CellsImputed       metric.Int64Counter
	TimestampsUnparsed metric.Int64Counter
	GridPoints         metric.Int64Counter
	StepDuration       metric.Float64Histogram
	StepErrors         metric.Int64Counter
}

// NewPipelineMetrics creates the pipeline instruments on meter. The
// Prometheus exporter appends the _total and unit suffixes.
func NewPipelineMetrics(meter metric.Meter) (*PipelineMetrics, error) {
	var (
		m   PipelineMetrics
		err error
	)

	if m.RowsRead, err = meter.Int64Counter("adapter_rows_read",
		metric.WithDescription("Data rows loaded from input files")); err != nil {
		return nil, err
	}
	if m.RowsMalformed, err = meter.Int64Counter("adapter_rows_malformed",
		metric.WithDescription("Rows dropped because their cell count did not match the header")); err != nil {
		return nil, err
	}
	if m.DuplicatesRemoved, err = meter.Int64Counter("adapter_duplicates_removed",
		metric.WithDescription("Duplicate data rows removed")); err != nil {
		return nil, err
	}
	if m.CellsImputed, err = meter.Int64Counter("adapter_cells_imputed",
		metric.WithDescription("Missing cells replaced during cleaning")); err != nil {
		return nil, err
	}
	if m.TimestampsUnparsed, err = meter.Int64Counter("adapter_timestamps_unparsed",
		metric.WithDescription("Time cells that could not be parsed")); err != nil {
		return nil, err
	}
	if m.GridPoints, err = meter.Int64Counter("adapter_grid_points",
		metric.WithDescription("Rows produced by time alignment")); err != nil {
		return nil, err
	}
	if m.StepDuration, err = meter.Float64Histogram("adapter_step_duration",
		metric.WithDescription("Pipeline step duration"),
		metric.WithUnit("s")); err != nil {
		return nil, err
	}
	if m.StepErrors, err = meter.Int64Counter("adapter_step_errors",
		metric.WithDescription("Pipeline steps that failed")); err != nil {
		return nil, err
	}

	return &m, nil
}

func inputAttr(input string) metric.MeasurementOption {
	return metric.WithAttributes(attribute.String("input", input))
}

// RecordRead records the outcome of loading one input
func (m *PipelineMetrics) RecordRead(ctx context.Context, input string, rows, malformed int) {
	if m == nil {
		return
	}
	m.RowsRead.Add(ctx, int64(rows), inputAttr(input))
	m.RowsMalformed.Add(ctx, int64(malformed), inputAttr(input))
}

// RecordClean records the outcome of the cleaning stage
func (m *PipelineMetrics) RecordClean(ctx context.Context, input string, stats domain.CleanStats) {
	if m == nil {
		return
	}
	m.DuplicatesRemoved.Add(ctx, int64(stats.DuplicatesRemoved), inputAttr(input))
	m.CellsImputed.Add(ctx, int64(stats.CellsImputed), inputAttr(input))
}

// RecordAlign records the outcome of the alignment stage
func (m *PipelineMetrics) RecordAlign(ctx context.Context, input string, stats domain.AlignStats) {
	if m == nil {
		return
	}
	m.TimestampsUnparsed.Add(ctx, int64(stats.UnparsedTimes), inputAttr(input))
	m.GridPoints.Add(ctx, int64(stats.GridPoints), inputAttr(input))
}

// RecordStep records the duration and result of one pipeline step
func (m *PipelineMetrics) RecordStep(ctx context.Context, step string, duration time.Duration, err error) {
	if m == nil {
		return
	}
	status := "success"
	if err != nil {
		status = "failure"
		m.StepErrors.Add(ctx, 1, metric.WithAttributes(attribute.String("step", step)))
	}
	m.StepDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(
		attribute.String("step", step),
		attribute.String("status", status),
	))
}
