package dataprocessing

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrMethodNotImplemented is returned for interpolation methods that are
// declared but have no implementation.
var ErrMethodNotImplemented = errors.New("interpolation method not implemented")

// degenerateSpan is the smallest bracket width that is interpolated;
// narrower brackets return the lower value.
const degenerateSpan = 1e-10

// Method names an interpolation strategy
type Method string

const (
	MethodLinear      Method = "linear"
	MethodRK4         Method = "rk4"
	MethodHeun        Method = "heun"
	MethodCubicSpline Method = "cubic_spline"
)

// ParseMethod converts a configuration value to a Method
func ParseMethod(s string) (Method, error) {
	switch m := Method(strings.ToLower(strings.TrimSpace(s))); m {
	case MethodLinear, MethodRK4, MethodHeun, MethodCubicSpline:
		return m, nil
	case "":
		return MethodLinear, nil
	default:
		return "", fmt.Errorf("unknown interpolation method %q", s)
	}
}

// Interpolator resamples one column at a target time
type Interpolator interface {
	// Resample returns the column value at target given the original sample
	// times and their values. times and values have the same length.
	Resample(times []float64, values []string, target float64) string
}

// NewInterpolator returns the interpolator for a method
func NewInterpolator(method Method) (Interpolator, error) {
	switch method {
	case MethodLinear, "":
		return LinearInterpolator{}, nil
	case MethodRK4, MethodHeun, MethodCubicSpline:
		return nil, fmt.Errorf("%w: %s", ErrMethodNotImplemented, method)
	default:
		return nil, fmt.Errorf("unknown interpolation method %q", method)
	}
}

// LinearInterpolator interpolates numeric values linearly between the
// bracketing samples and falls back to the nearest sample for text.
type LinearInterpolator struct{}

// Resample implements Interpolator
func (LinearInterpolator) Resample(times []float64, values []string, target float64) string {
	if len(times) == 0 || len(times) != len(values) {
		return "0"
	}

	lo, hi := bracket(times, target)

	y1, ok1 := numericValue(values[lo])
	y2, ok2 := numericValue(values[hi])
	if ok1 && ok2 {
		v := linear(target, times[lo], y1, times[hi], y2)
		return strconv.FormatFloat(v, 'f', -1, 64)
	}

	if math.Abs(target-times[lo]) <= math.Abs(target-times[hi]) {
		return values[lo]
	}
	return values[hi]
}

// numericValue parses cells that IsNumeric accepts. Exponents, hex floats,
// Inf and NaN stay text.
func numericValue(cell string) (float64, bool) {
	if !IsNumeric(cell) {
		return 0, false
	}
	f, err := strconv.ParseFloat(cell, 64)
	return f, err == nil
}

// bracket finds the first consecutive pair with times[i] <= target <= times[i+1].
// When no pair brackets the target the first and last samples are used.
func bracket(times []float64, target float64) (int, int) {
	for i := 0; i+1 < len(times); i++ {
		if times[i] <= target && target <= times[i+1] {
			return i, i + 1
		}
	}
	return 0, len(times) - 1
}

func linear(x, x1, y1, x2, y2 float64) float64 {
	if math.Abs(x2-x1) < degenerateSpan {
		return y1
	}
	return y1 + (y2-y1)*(x-x1)/(x2-x1)
}
