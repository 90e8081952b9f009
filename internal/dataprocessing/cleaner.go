package dataprocessing

import (
	"context"
	"log/slog"
	"strconv"
	"strings"

	"adaptercli/pkg/contracts/domain"
)

// Cleaner removes duplicate rows, imputes missing cells and normalizes
// numeric text. The header row is never modified.
type Cleaner struct {
	opts   CleaningOptions
	logger *slog.Logger
}

// NewCleaner creates a cleaner with the given options
func NewCleaner(opts CleaningOptions, logger *slog.Logger) *Cleaner {
	if logger == nil {
		logger = slog.Default()
	}
	if opts.Precision < 0 {
		opts.Precision = DefaultPrecision
	}
	return &Cleaner{
		opts:   opts,
		logger: logger.With(slog.String("component", "cleaner")),
	}
}

// Clean runs deduplication, imputation and normalization in that order.
// Imputed values are normalized along with the rest of the data.
func (c *Cleaner) Clean(ctx context.Context, table *domain.Table) domain.CleanStats {
	stats := domain.CleanStats{RowsIn: table.Len()}
	if table == nil || table.Len() == 0 {
		return stats
	}

	stats.DuplicatesRemoved = c.RemoveDuplicateRows(table)
	stats.ColumnsImputed, stats.CellsImputed = c.ImputeMissingValues(table)
	stats.CellsNormalized = c.NormalizeFormats(table)
	stats.RowsOut = table.Len()

	c.logger.InfoContext(ctx, "cleaning complete",
		slog.Int("rows_in", stats.RowsIn),
		slog.Int("rows_out", stats.RowsOut),
		slog.Int("duplicates_removed", stats.DuplicatesRemoved),
		slog.Int("columns_imputed", stats.ColumnsImputed),
		slog.Int("cells_imputed", stats.CellsImputed),
		slog.Int("cells_normalized", stats.CellsNormalized))

	return stats
}

// RemoveDuplicateRows drops every data row that exactly repeats an earlier
// one. Surviving rows keep their order. Returns the number of rows removed.
func (c *Cleaner) RemoveDuplicateRows(table *domain.Table) int {
	if table.Len() <= 1 {
		return 0
	}

	seen := make(map[string]struct{}, len(table.Rows))
	kept := make([][]string, 0, len(table.Rows))
	for _, row := range table.Rows {
		key := rowKey(row)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		kept = append(kept, row)
	}

	removed := len(table.Rows) - len(kept)
	table.Rows = kept
	return removed
}

// rowKey builds a set key for a row. Each field is length-prefixed so that
// ["a,b"] and ["a", "b"] produce different keys.
func rowKey(row []string) string {
	var b strings.Builder
	for _, cell := range row {
		b.WriteString(strconv.Itoa(len(cell)))
		b.WriteByte(':')
		b.WriteString(cell)
	}
	return b.String()
}

// ImputeMissingValues replaces missing markers column by column with a single
// value computed from the column's known cells. Columns with no missing cells,
// or with nothing to learn from, are left alone. Returns the number of
// columns touched and cells replaced.
func (c *Cleaner) ImputeMissingValues(table *domain.Table) (int, int) {
	if table.Len() == 0 {
		return 0, 0
	}

	columns, cells := 0, 0
	for col := 0; col < table.Width(); col++ {
		var known []string
		var missing []int
		for r, row := range table.Rows {
			if col >= len(row) {
				continue
			}
			if IsMissing(row[col]) {
				missing = append(missing, r)
			} else {
				known = append(known, row[col])
			}
		}

		if len(missing) == 0 || len(known) == 0 {
			continue
		}

		replacement := c.replacementFor(known)
		for _, r := range missing {
			table.Rows[r][col] = replacement
		}

		c.logger.Debug("imputed column",
			slog.String("column", table.Header[col]),
			slog.Int("missing", len(missing)),
			slog.String("replacement", replacement))

		columns++
		cells += len(missing)
	}
	return columns, cells
}

// replacementFor picks the fill value for a column using the first strategy
func (c *Cleaner) replacementFor(known []string) string {
	if len(c.opts.Strategies) == 0 {
		return "0"
	}

	switch c.opts.Strategies[0] {
	case domain.StrategyMean:
		if IsNumericColumn(known) {
			return Mean(known, c.opts.Precision)
		}
	case domain.StrategyMedian:
		if IsNumericColumn(known) {
			return Median(known, c.opts.Precision)
		}
	case domain.StrategyZero:
		return "0"
	}
	return "0"
}

// NormalizeFormats rewrites numeric cells in fixed-point notation. Date cells
// go through normalizeDate, which keeps them as they are. Returns the number
// of numeric cells rewritten.
func (c *Cleaner) NormalizeFormats(table *domain.Table) int {
	normalized := 0
	for _, row := range table.Rows {
		for i, cell := range row {
			switch {
			case IsNumeric(cell):
				row[i] = c.normalizeNumeric(cell)
				normalized++
			case IsDate(cell):
				row[i] = c.normalizeDate(cell)
			}
		}
	}
	return normalized
}

func (c *Cleaner) normalizeNumeric(cell string) string {
	f, err := strconv.ParseFloat(cell, 64)
	if err != nil {
		return cell
	}
	return formatFixed(f, c.opts.Precision)
}

// normalizeDate is a pass-through until DateFormat is honoured
func (c *Cleaner) normalizeDate(cell string) string {
	return cell
}
