package domain

// ColumnRole tags a non-time column as configured by the user.
// Roles are reported but interpolation treats every role the same way.
type ColumnRole string

const (
	RoleUnspecified ColumnRole = "unspecified"
	RoleDependent   ColumnRole = "dependent"
	RoleIndependent ColumnRole = "independent"
)

// TimePoint is a parsed timestamp together with the data row it came from
type TimePoint struct {
	Index   int     `json:"index"`
	Seconds float64 `json:"seconds"`
}

// AlignStats summarizes one alignment pass
type AlignStats struct {
	Applied       bool                  `json:"applied"`
	TimeColumn    string                `json:"time_column"`
	ParsedTimes   int                   `json:"parsed_times"`
	UnparsedTimes int                   `json:"unparsed_times"`
	GridPoints    int                   `json:"grid_points"`
	Start         float64               `json:"start"`
	End           float64               `json:"end"`
	Roles         map[string]ColumnRole `json:"roles,omitempty"`
}
