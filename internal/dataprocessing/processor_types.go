package dataprocessing

import (
	"adaptercli/pkg/contracts/domain"
)

// CleaningOptions configures the cleaning stage
type CleaningOptions struct {
	// Strategies lists the missing value strategies; only the first is applied
	Strategies []domain.Strategy

	// Precision is the number of decimals for normalized numeric cells
	Precision int

	// DateFormat is the target date layout. Date normalization is not
	// performed yet, so the value is carried but unused.
	DateFormat string
}

// DefaultCleaningOptions returns the default cleaning options
func DefaultCleaningOptions() CleaningOptions {
	return CleaningOptions{
		Strategies: []domain.Strategy{domain.StrategyMean},
		Precision:  DefaultPrecision,
		DateFormat: "%Y-%m-%d",
	}
}

// TimeFormat selects how grid timestamps are written back to the time column
type TimeFormat string

const (
	// TimeFormatISO writes UTC timestamps as 2006-01-02T15:04:05
	TimeFormatISO TimeFormat = "iso"
	// TimeFormatEpoch writes seconds since the Unix epoch
	TimeFormatEpoch TimeFormat = "epoch"
)

// AlignOptions configures the alignment stage
type AlignOptions struct {
	// Interval is the grid spacing in seconds
	Interval float64

	// Method selects the interpolation strategy
	Method Method

	// TimeFormat controls the rendering of the time column
	TimeFormat TimeFormat
}

// DefaultAlignOptions returns the default alignment options
func DefaultAlignOptions() AlignOptions {
	return AlignOptions{
		Interval:   1.0,
		Method:     MethodLinear,
		TimeFormat: TimeFormatISO,
	}
}
