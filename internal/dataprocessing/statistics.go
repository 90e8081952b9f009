package dataprocessing

import (
	"sort"
	"strconv"
)

// DefaultPrecision is the number of decimals used for numeric output
const DefaultPrecision = 2

// Mean averages the numeric values of a column and formats the result with
// the given number of decimals. Non-numeric values are ignored. Returns "0"
// when nothing parses.
func Mean(values []string, precision int) string {
	nums := parseNumeric(values)
	if len(nums) == 0 {
		return "0"
	}
	var sum float64
	for _, n := range nums {
		sum += n
	}
	return formatFixed(sum/float64(len(nums)), precision)
}

// Median returns the middle numeric value of a column, or the average of the
// two middle values for an even count. Returns "0" when nothing parses.
func Median(values []string, precision int) string {
	nums := parseNumeric(values)
	if len(nums) == 0 {
		return "0"
	}
	sort.Float64s(nums)

	n := len(nums)
	var median float64
	if n%2 == 0 {
		median = (nums[n/2-1] + nums[n/2]) / 2.0
	} else {
		median = nums[n/2]
	}
	return formatFixed(median, precision)
}

// parseNumeric collects the values that classify and parse as numbers
func parseNumeric(values []string) []float64 {
	nums := make([]float64, 0, len(values))
	for _, v := range values {
		if !IsNumeric(v) {
			continue
		}
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			continue
		}
		nums = append(nums, f)
	}
	return nums
}

// formatFixed renders f in fixed-point notation with precision decimals
func formatFixed(f float64, precision int) string {
	if precision < 0 {
		precision = DefaultPrecision
	}
	return strconv.FormatFloat(f, 'f', precision, 64)
}
