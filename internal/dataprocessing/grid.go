package dataprocessing

import "math"

// MaxGridPoints bounds the number of rows alignment may produce
const MaxGridPoints = 1 << 24

// BuildGrid returns start, start+interval, ... up to and including end.
// The result is empty when end <= start, interval <= 0, or the grid would
// hold more than MaxGridPoints points.
func BuildGrid(start, end, interval float64) []float64 {
	if end <= start || interval <= 0 {
		return []float64{}
	}

	count := math.Floor((end-start)/interval) + 1
	if math.IsNaN(count) || math.IsInf(count, 0) || count > MaxGridPoints {
		return []float64{}
	}

	n := int(count)
	grid := make([]float64, 0, n)
	for k := 0; k < n; k++ {
		t := start + float64(k)*interval
		if t > end {
			break
		}
		grid = append(grid, t)
	}
	return grid
}
