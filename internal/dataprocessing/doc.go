// Package dataprocessing holds the cleaning and time alignment stages that
// turn raw tabular text into a deduplicated, imputed table sampled on a
// uniform time grid.
//
// # Architecture
//
// The package is organized into two stages built from small helpers:
//
//  1. Cleaner: removes duplicate rows, imputes missing cells, normalizes numbers
//  2. Aligner: parses the time column, builds a grid, interpolates every column
//
// Helpers shared by both stages:
//
//   - IsNumeric, IsDate, IsNumericColumn, IsMissing classify raw cells
//   - Mean and Median compute column statistics as formatted text
//   - TimeParser turns epoch seconds, ISO date-times and ISO dates into seconds
//   - BuildGrid produces the uniform timestamps
//   - Interpolator resamples a column at one target time
//
// # Usage
//
//	cleaner := dataprocessing.NewCleaner(dataprocessing.DefaultCleaningOptions(), logger)
//	cleanStats := cleaner.Clean(ctx, table)
//
//	aligner, err := dataprocessing.NewAligner(dataprocessing.DefaultAlignOptions(), logger)
//	if err != nil {
//	    return err
//	}
//	alignStats := aligner.Align(ctx, table, "time", nil, nil)
//
// # Data Flow
//
//	Reader → Table → Cleaner → Aligner → Writer
//
// # Error Handling
//
// Bad cells never fail a stage. Unparsable numbers are kept as they are,
// unparsable timestamps are skipped with a warning, and a missing time
// column leaves the table unchanged. The only error surfaced by this package
// is ErrMethodNotImplemented from NewInterpolator and NewAligner.
//
// # Time Zones
//
// Calendar timestamps are converted in UTC so results do not depend on the
// host time zone.
package dataprocessing
