package dataprocessing

import (
	"context"
	"log/slog"

	"adaptercli/pkg/contracts/domain"
)

// Aligner resamples a table onto a uniform time grid
type Aligner struct {
	opts         AlignOptions
	interpolator Interpolator
	parser       *TimeParser
	logger       *slog.Logger
}

// NewAligner creates an aligner. It fails when the configured interpolation
// method has no implementation.
func NewAligner(opts AlignOptions, logger *slog.Logger) (*Aligner, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if opts.TimeFormat == "" {
		opts.TimeFormat = TimeFormatISO
	}
	interp, err := NewInterpolator(opts.Method)
	if err != nil {
		return nil, err
	}
	return &Aligner{
		opts:         opts,
		interpolator: interp,
		parser:       NewTimeParser(logger),
		logger:       logger.With(slog.String("component", "aligner")),
	}, nil
}

// WithInterpolator replaces the interpolation strategy
func (a *Aligner) WithInterpolator(interp Interpolator) *Aligner {
	a.interpolator = interp
	return a
}

// Align replaces the data rows of table with rows sampled on a uniform grid
// between the earliest and latest parsable timestamps. The time column holds
// the grid timestamps and every other column is interpolated independently.
//
// A missing time column, a column with no parsable timestamps, or a time
// range too short for a grid leaves the table untouched. The condition is
// logged, not returned.
func (a *Aligner) Align(ctx context.Context, table *domain.Table, timeColumn string, dependent, independent []string) domain.AlignStats {
	stats := domain.AlignStats{TimeColumn: timeColumn}
	if table == nil || table.Len() == 0 {
		a.logger.WarnContext(ctx, "no data to align")
		return stats
	}

	timeIdx, ok := table.ColumnIndex(timeColumn)
	if !ok {
		a.logger.WarnContext(ctx, "time column not found, skipping alignment",
			slog.String("time_column", timeColumn))
		return stats
	}

	stats.Roles = a.columnRoles(ctx, table, timeIdx, dependent, independent)

	timeCells := make([]string, len(table.Rows))
	for r, row := range table.Rows {
		timeCells[r] = cellAt(row, timeIdx)
	}
	points, unparsed := a.parser.ParseTimes(timeCells)
	stats.ParsedTimes = len(points)
	stats.UnparsedTimes = unparsed
	if len(points) == 0 {
		a.logger.WarnContext(ctx, "could not parse time column, skipping alignment",
			slog.String("time_column", timeColumn),
			slog.Int("unparsed", unparsed))
		return stats
	}

	times := make([]float64, len(points))
	start, end := points[0].Seconds, points[0].Seconds
	for i, p := range points {
		times[i] = p.Seconds
		if p.Seconds < start {
			start = p.Seconds
		}
		if p.Seconds > end {
			end = p.Seconds
		}
	}
	stats.Start, stats.End = start, end

	// Sample values per column, taken only from rows whose time parsed
	samples := make([][]string, table.Width())
	for col := range samples {
		if col == timeIdx {
			continue
		}
		vals := make([]string, len(points))
		for i, p := range points {
			vals[i] = cellAt(table.Rows[p.Index], col)
		}
		samples[col] = vals
	}

	grid := BuildGrid(start, end, a.opts.Interval)
	if len(grid) == 0 {
		a.logger.WarnContext(ctx, "empty time grid, skipping alignment",
			slog.String("time_column", timeColumn),
			slog.Float64("start", start),
			slog.Float64("end", end),
			slog.Float64("interval", a.opts.Interval))
		return stats
	}

	aligned := make([][]string, 0, len(grid))
	for _, t := range grid {
		row := make([]string, table.Width())
		row[timeIdx] = FormatTimestamp(t, a.opts.TimeFormat)
		for col := range row {
			if col == timeIdx {
				continue
			}
			row[col] = a.interpolator.Resample(times, samples[col], t)
		}
		aligned = append(aligned, row)
	}

	table.Rows = aligned
	stats.Applied = true
	stats.GridPoints = len(grid)

	a.logger.InfoContext(ctx, "alignment complete",
		slog.String("time_column", timeColumn),
		slog.Float64("interval", a.opts.Interval),
		slog.Float64("start", start),
		slog.Float64("end", end),
		slog.Int("grid_points", len(grid)),
		slog.Int("unparsed_times", unparsed))

	return stats
}

// columnRoles tags every non-time column with its configured role
func (a *Aligner) columnRoles(ctx context.Context, table *domain.Table, timeIdx int, dependent, independent []string) map[string]domain.ColumnRole {
	roles := make(map[string]domain.ColumnRole, table.Width())
	for i, name := range table.Header {
		if i != timeIdx {
			roles[name] = domain.RoleUnspecified
		}
	}

	assign := func(names []string, role domain.ColumnRole) {
		for _, name := range names {
			if _, ok := roles[name]; !ok {
				a.logger.WarnContext(ctx, "configured column not in header",
					slog.String("column", name),
					slog.String("role", string(role)))
				continue
			}
			roles[name] = role
		}
	}
	assign(dependent, domain.RoleDependent)
	assign(independent, domain.RoleIndependent)
	return roles
}

// cellAt reads a cell, treating cells past the end of a short row as empty
func cellAt(row []string, i int) string {
	if i < len(row) {
		return row[i]
	}
	return ""
}
