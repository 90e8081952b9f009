package dataprocessing

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"adaptercli/internal/shared/testutil"
	"adaptercli/pkg/contracts/domain"
)

func newTestCleaner(t *testing.T, strategies ...domain.Strategy) *Cleaner {
	t.Helper()
	opts := DefaultCleaningOptions()
	if strategies != nil {
		opts.Strategies = strategies
	}
	logger, _ := testutil.NewTestLogger(t)
	return NewCleaner(opts, logger)
}

func TestRemoveDuplicateRows(t *testing.T) {
	tests := []struct {
		name    string
		rows    [][]string
		want    [][]string
		removed int
	}{
		{
			name:    "keeps first occurrence in order",
			rows:    [][]string{{"1", "a"}, {"2", "b"}, {"1", "a"}, {"3", "c"}, {"2", "b"}},
			want:    [][]string{{"1", "a"}, {"2", "b"}, {"3", "c"}},
			removed: 2,
		},
		{
			name:    "no duplicates",
			rows:    [][]string{{"1"}, {"2"}},
			want:    [][]string{{"1"}, {"2"}},
			removed: 0,
		},
		{
			name:    "separator inside cells is not a duplicate",
			rows:    [][]string{{"a,b", "c"}, {"a", "b,c"}},
			want:    [][]string{{"a,b", "c"}, {"a", "b,c"}},
			removed: 0,
		},
		{
			name:    "single row",
			rows:    [][]string{{"x"}},
			want:    [][]string{{"x"}},
			removed: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestCleaner(t)
			table := domain.NewTable([]string{"a", "b"}, tt.rows)

			removed := c.RemoveDuplicateRows(table)

			assert.Equal(t, tt.removed, removed)
			assert.Equal(t, tt.want, table.Rows)
		})
	}
}

func TestImputeMissingValues(t *testing.T) {
	tests := []struct {
		name       string
		strategies []domain.Strategy
		column     []string
		want       []string
	}{
		{
			name:       "mean",
			strategies: []domain.Strategy{domain.StrategyMean},
			column:     []string{"10", "", "20", "30"},
			want:       []string{"10", "20.00", "20", "30"},
		},
		{
			name:       "median",
			strategies: []domain.Strategy{domain.StrategyMedian},
			column:     []string{"10", "NaN", "20", "30", "40"},
			want:       []string{"10", "25.00", "20", "30", "40"},
		},
		{
			name:       "zero",
			strategies: []domain.Strategy{domain.StrategyZero},
			column:     []string{"10", "NA", "NULL"},
			want:       []string{"10", "0", "0"},
		},
		{
			name:       "only first strategy applies",
			strategies: []domain.Strategy{domain.StrategyZero, domain.StrategyMean},
			column:     []string{"10", "", "30"},
			want:       []string{"10", "0", "30"},
		},
		{
			name:       "text column falls back to zero",
			strategies: []domain.Strategy{domain.StrategyMean},
			column:     []string{"red", "", "blue"},
			want:       []string{"red", "0", "blue"},
		},
		{
			name:       "no strategies",
			strategies: []domain.Strategy{},
			column:     []string{"10", "", "30"},
			want:       []string{"10", "0", "30"},
		},
		{
			name:       "all missing is left alone",
			strategies: []domain.Strategy{domain.StrategyMean},
			column:     []string{"", "nan"},
			want:       []string{"", "nan"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestCleaner(t, tt.strategies...)
			rows := make([][]string, len(tt.column))
			for i, v := range tt.column {
				rows[i] = []string{v}
			}
			table := domain.NewTable([]string{"value"}, rows)

			c.ImputeMissingValues(table)

			assert.Equal(t, tt.want, table.Column(0))
		})
	}
}

func TestImputeMissingValuesCounts(t *testing.T) {
	c := newTestCleaner(t)
	table := domain.NewTable([]string{"a", "b", "c"}, [][]string{
		{"1", "", "x"},
		{"", "", "y"},
		{"3", "4", "z"},
	})

	columns, cells := c.ImputeMissingValues(table)

	assert.Equal(t, 2, columns)
	assert.Equal(t, 3, cells)
	assert.Equal(t, []string{"2.00", "4.00", "y"}, table.Rows[1])
}

func TestImputeMissingValuesIdempotent(t *testing.T) {
	c := newTestCleaner(t)
	table := domain.NewTable([]string{"a", "b"}, [][]string{
		{"1", "x"},
		{"", "NA"},
		{"5", "y"},
	})

	c.ImputeMissingValues(table)
	once := table.Clone()

	columns, cells := c.ImputeMissingValues(table)

	assert.Zero(t, columns)
	assert.Zero(t, cells)
	assert.Equal(t, once, table)
}

func TestNormalizeFormats(t *testing.T) {
	tests := []struct {
		name      string
		precision int
		cell      string
		want      string
	}{
		{"truncates decimals", 2, "10.123456", "10.12"},
		{"pads integers", 2, "21", "21.00"},
		{"leading point", 2, ".5", "0.50"},
		{"custom precision", 4, "3.14159", "3.1416"},
		{"text untouched", 2, "hello", "hello"},
		{"date untouched", 2, "2024-01-15", "2024-01-15"},
		{"exponent untouched", 2, "1e5", "1e5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := DefaultCleaningOptions()
			opts.Precision = tt.precision
			c := NewCleaner(opts, slog.Default())
			table := domain.NewTable([]string{"v"}, [][]string{{tt.cell}})

			c.NormalizeFormats(table)

			assert.Equal(t, tt.want, table.Rows[0][0])
		})
	}
}

func TestCleanLeavesHeaderAlone(t *testing.T) {
	c := newTestCleaner(t)
	header := []string{"1.5", "NaN", "2024-01-01"}
	table := domain.NewTable(append([]string(nil), header...), [][]string{
		{"1", "2", "3"},
	})

	c.Clean(context.Background(), table)

	assert.Equal(t, header, table.Header)
}

func TestClean(t *testing.T) {
	logger, handler := testutil.NewTestLogger(t)
	c := NewCleaner(DefaultCleaningOptions(), logger)
	table := domain.NewTable([]string{"time", "temperature"}, [][]string{
		{"0", "20.5"},
		{"1", "21.0"},
		{"1", "21.0"},
		{"3", ""},
		{"4", "22.5"},
	})

	stats := c.Clean(context.Background(), table)

	require.Equal(t, 4, table.Len())
	assert.Equal(t, [][]string{
		{"0.00", "20.50"},
		{"1.00", "21.00"},
		{"3.00", "21.33"},
		{"4.00", "22.50"},
	}, table.Rows)
	assert.Equal(t, domain.CleanStats{
		RowsIn:            5,
		RowsOut:           4,
		DuplicatesRemoved: 1,
		ColumnsImputed:    1,
		CellsImputed:      1,
		CellsNormalized:   8,
	}, stats)
	testutil.AssertLogContains(t, handler, slog.LevelInfo, "cleaning complete")
}

func TestCleanImputesAllMissingRow(t *testing.T) {
	c := newTestCleaner(t)
	table := domain.NewTable([]string{"time", "a", "b"}, [][]string{
		{"0", "1", "2"},
		{"", "", ""},
		{"2", "3", "4"},
	})

	stats := c.Clean(context.Background(), table)

	assert.Equal(t, [][]string{
		{"0.00", "1.00", "2.00"},
		{"1.00", "2.00", "3.00"},
		{"2.00", "3.00", "4.00"},
	}, table.Rows)
	assert.Equal(t, 3, stats.ColumnsImputed)
	assert.Equal(t, 3, stats.CellsImputed)
}

func TestCleanEmptyTable(t *testing.T) {
	c := newTestCleaner(t)

	stats := c.Clean(context.Background(), domain.NewTable([]string{"a"}, nil))
	assert.Equal(t, domain.CleanStats{}, stats)

	stats = c.Clean(context.Background(), nil)
	assert.Equal(t, domain.CleanStats{}, stats)
}
