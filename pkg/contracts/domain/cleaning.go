package domain

import (
	"fmt"
	"strings"
)

// Strategy selects how missing cells of a column are imputed
type Strategy string

const (
	StrategyMean   Strategy = "mean"
	StrategyMedian Strategy = "median"
	StrategyZero   Strategy = "zero"
)

// ParseStrategy converts a configuration value to a Strategy
func ParseStrategy(s string) (Strategy, error) {
	switch Strategy(strings.ToLower(strings.TrimSpace(s))) {
	case StrategyMean:
		return StrategyMean, nil
	case StrategyMedian:
		return StrategyMedian, nil
	case StrategyZero:
		return StrategyZero, nil
	default:
		return "", fmt.Errorf("unknown missing value strategy %q", s)
	}
}

// ParseStrategies parses a comma-joined strategy list. Only the first entry
// is ever applied by the cleaner, the rest are kept for reporting.
func ParseStrategies(s string) ([]Strategy, error) {
	var out []Strategy
	for _, part := range strings.Split(s, ",") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		st, err := ParseStrategy(part)
		if err != nil {
			return nil, err
		}
		out = append(out, st)
	}
	return out, nil
}

// CleanStats summarizes one cleaning pass
type CleanStats struct {
	RowsIn            int `json:"rows_in"`
	RowsOut           int `json:"rows_out"`
	DuplicatesRemoved int `json:"duplicates_removed"`
	ColumnsImputed    int `json:"columns_imputed"`
	CellsImputed      int `json:"cells_imputed"`
	CellsNormalized   int `json:"cells_normalized"`
}
