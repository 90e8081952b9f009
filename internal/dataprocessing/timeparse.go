package dataprocessing

import (
	"log/slog"
	"regexp"
	"strconv"
	"time"

	"adaptercli/pkg/contracts/domain"
)

var (
	epochRe       = regexp.MustCompile(`^\d+(\.\d+)?$`)
	isoDateTimeRe = regexp.MustCompile(`(\d{4})-(\d{2})-(\d{2})[T\s](\d{2}):(\d{2}):(\d{2})`)
	isoDateOnlyRe = regexp.MustCompile(`(\d{4})-(\d{2})-(\d{2})`)
)

// TimeParser converts time cells to seconds since the Unix epoch.
// Calendar dates are interpreted in UTC.
type TimeParser struct {
	logger *slog.Logger
}

// NewTimeParser creates a time parser
func NewTimeParser(logger *slog.Logger) *TimeParser {
	if logger == nil {
		logger = slog.Default()
	}
	return &TimeParser{logger: logger.With(slog.String("component", "time_parser"))}
}

// ParseTimes parses every cell and returns the ones that succeeded, keyed by
// their position in cells, plus the number of cells that could not be parsed.
func (p *TimeParser) ParseTimes(cells []string) ([]domain.TimePoint, int) {
	points := make([]domain.TimePoint, 0, len(cells))
	unparsed := 0
	for i, cell := range cells {
		secs, ok := ParseTimestamp(cell)
		if !ok {
			unparsed++
			p.logger.Warn("could not parse time value",
				slog.Int("row", i+1),
				slog.String("value", cell))
			continue
		}
		points = append(points, domain.TimePoint{Index: i, Seconds: secs})
	}
	return points, unparsed
}

// ParseTimestamp tries, in order, a plain number of seconds, an ISO
// date-time and an ISO date at midnight. The date patterns may appear
// anywhere in the text.
func ParseTimestamp(cell string) (float64, bool) {
	if epochRe.MatchString(cell) {
		if f, err := strconv.ParseFloat(cell, 64); err == nil {
			return f, true
		}
	}

	if m := isoDateTimeRe.FindStringSubmatch(cell); m != nil {
		return calendarSeconds(atoi(m[1]), atoi(m[2]), atoi(m[3]), atoi(m[4]), atoi(m[5]), atoi(m[6])), true
	}

	if m := isoDateOnlyRe.FindStringSubmatch(cell); m != nil {
		return calendarSeconds(atoi(m[1]), atoi(m[2]), atoi(m[3]), 0, 0, 0), true
	}

	return 0, false
}

// calendarSeconds converts calendar fields to epoch seconds in UTC.
// Out-of-range fields roll over the way time.Date normalizes them.
func calendarSeconds(year, month, day, hour, minute, second int) float64 {
	t := time.Date(year, time.Month(month), day, hour, minute, second, 0, time.UTC)
	return float64(t.Unix())
}

// atoi is only called on regexp digit groups
func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}

// FormatTimestamp renders grid seconds for the time column
func FormatTimestamp(secs float64, format TimeFormat) string {
	if format == TimeFormatEpoch {
		return strconv.FormatFloat(secs, 'f', -1, 64)
	}
	return time.Unix(int64(secs), 0).UTC().Format("2006-01-02T15:04:05")
}
