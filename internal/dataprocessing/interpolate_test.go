package dataprocessing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLinearInterpolatorResample(t *testing.T) {
	tests := []struct {
		name   string
		times  []float64
		values []string
		target float64
		want   string
	}{
		{"midpoint", []float64{0, 2}, []string{"10", "20"}, 1, "15"},
		{"at lower sample", []float64{0, 2}, []string{"10", "20"}, 0, "10"},
		{"at upper sample", []float64{0, 2}, []string{"10", "20"}, 2, "20"},
		{"second bracket", []float64{0, 1, 3}, []string{"20.5", "21", "22.5"}, 2, "21.75"},
		{"extrapolates above range", []float64{0, 1, 2}, []string{"0", "10", "20"}, 3, "30"},
		{"extrapolates below range", []float64{0, 1, 2}, []string{"0", "10", "20"}, -1, "-10"},
		{"degenerate bracket", []float64{1, 1}, []string{"5", "9"}, 1, "5"},
		{"single sample", []float64{5}, []string{"7"}, 5, "7"},
		{"nearest text upper", []float64{0, 2}, []string{"red", "blue"}, 1.9, "blue"},
		{"nearest text lower", []float64{0, 2}, []string{"red", "blue"}, 0.4, "red"},
		{"nearest tie prefers lower", []float64{0, 2}, []string{"red", "blue"}, 1, "red"},
		{"mixed values use nearest", []float64{0, 2}, []string{"10", "x"}, 1.5, "x"},
		{"exponent is text", []float64{0, 2}, []string{"1e3", "20"}, 0.5, "1e3"},
		{"hex float is text", []float64{0, 2}, []string{"10", "0x1p3"}, 1.5, "0x1p3"},
		{"NaN is text", []float64{0, 2}, []string{"NaN", "Inf"}, 0.2, "NaN"},
		{"no samples", nil, nil, 1, "0"},
		{"length mismatch", []float64{0, 1}, []string{"1"}, 0, "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := LinearInterpolator{}.Resample(tt.times, tt.values, tt.target)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseMethod(t *testing.T) {
	tests := []struct {
		in      string
		want    Method
		wantErr bool
	}{
		{"linear", MethodLinear, false},
		{" RK4 ", MethodRK4, false},
		{"heun", MethodHeun, false},
		{"cubic_spline", MethodCubicSpline, false},
		{"", MethodLinear, false},
		{"quadratic", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseMethod(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewInterpolator(t *testing.T) {
	interp, err := NewInterpolator(MethodLinear)
	require.NoError(t, err)
	assert.IsType(t, LinearInterpolator{}, interp)

	for _, m := range []Method{MethodRK4, MethodHeun, MethodCubicSpline} {
		_, err := NewInterpolator(m)
		assert.ErrorIs(t, err, ErrMethodNotImplemented, string(m))
	}

	_, err = NewInterpolator("bogus")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrMethodNotImplemented)
}
