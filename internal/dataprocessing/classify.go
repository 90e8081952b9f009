package dataprocessing

import "regexp"

var (
	// numericRe matches plain signed decimal literals: "12", "-3.5", ".25".
	// Exponents, thousands separators and a trailing point are rejected.
	numericRe = regexp.MustCompile(`^-?\d*\.?\d+$`)

	dateRe     = regexp.MustCompile(`\d{4}-\d{2}-\d{2}`)
	dateTimeRe = regexp.MustCompile(`\d{4}-\d{2}-\d{2}[\sT]\d{2}:\d{2}:\d{2}`)
)

// numericColumnThreshold is the share of numeric values needed for a column
// to be treated as numeric.
const numericColumnThreshold = 0.8

// missingMarkers are the literal cell values treated as absent data
var missingMarkers = map[string]struct{}{
	"":     {},
	"NaN":  {},
	"nan":  {},
	"NA":   {},
	"NULL": {},
}

// IsMissing reports whether a cell holds a missing marker
func IsMissing(cell string) bool {
	_, ok := missingMarkers[cell]
	return ok
}

// IsNumeric reports whether the whole cell is a plain decimal literal
func IsNumeric(cell string) bool {
	if cell == "" {
		return false
	}
	return numericRe.MatchString(cell)
}

// IsDate reports whether the cell contains a YYYY-MM-DD date, with or
// without a time part. Trailing text after the date is allowed.
func IsDate(cell string) bool {
	if cell == "" {
		return false
	}
	return dateRe.MatchString(cell) || dateTimeRe.MatchString(cell)
}

// IsNumericColumn reports whether at least 80% of values are numeric
func IsNumericColumn(values []string) bool {
	if len(values) == 0 {
		return false
	}
	numeric := 0
	for _, v := range values {
		if IsNumeric(v) {
			numeric++
		}
	}
	return float64(numeric)/float64(len(values)) >= numericColumnThreshold
}
