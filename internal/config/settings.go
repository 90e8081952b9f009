package config

import (
	"bufio"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"strconv"
	"strings"
)

// setting maps one key of a settings file onto a Config field
type setting struct {
	get func(*Config) string
	set func(*Config, string) error
}

func stringSetting(field func(*Config) *string) setting {
	return setting{
		get: func(c *Config) string { return *field(c) },
		set: func(c *Config, v string) error { *field(c) = v; return nil },
	}
}

func listSetting(field func(*Config) *[]string) setting {
	return setting{
		get: func(c *Config) string { return strings.Join(*field(c), ",") },
		set: func(c *Config, v string) error { *field(c) = ParseList(v); return nil },
	}
}

func intSetting(field func(*Config) *int) setting {
	return setting{
		get: func(c *Config) string { return strconv.Itoa(*field(c)) },
		set: func(c *Config, v string) error {
			n, err := strconv.Atoi(v)
			if err != nil {
				return err
			}
			*field(c) = n
			return nil
		},
	}
}

func floatSetting(field func(*Config) *float64) setting {
	return setting{
		get: func(c *Config) string { return strconv.FormatFloat(*field(c), 'f', -1, 64) },
		set: func(c *Config, v string) error {
			f, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return err
			}
			*field(c) = f
			return nil
		},
	}
}

func boolSetting(field func(*Config) *bool) setting {
	return setting{
		get: func(c *Config) string { return strconv.FormatBool(*field(c)) },
		set: func(c *Config, v string) error {
			b, err := strconv.ParseBool(v)
			if err != nil {
				return err
			}
			*field(c) = b
			return nil
		},
	}
}

// delimiterSetting spells a tab as \t so it survives value trimming
func delimiterSetting() setting {
	return setting{
		get: func(c *Config) string {
			if c.Delimiter == "\t" {
				return `\t`
			}
			return c.Delimiter
		},
		set: func(c *Config, v string) error {
			if v == `\t` {
				v = "\t"
			}
			c.Delimiter = v
			return nil
		},
	}
}

// settings lists every key understood in a key=value settings file.
// Logging and telemetry keys are written with a group prefix.
var settings = map[string]setting{
	"input_file":             stringSetting(func(c *Config) *string { return &c.InputFile }),
	"output_file":            stringSetting(func(c *Config) *string { return &c.OutputFile }),
	"dependent_variables":    listSetting(func(c *Config) *[]string { return &c.DependentVariables }),
	"independent_variables":  listSetting(func(c *Config) *[]string { return &c.IndependentVariables }),
	"time_column":            stringSetting(func(c *Config) *string { return &c.TimeColumn }),
	"delimiter":              delimiterSetting(),
	"target_time_interval":   floatSetting(func(c *Config) *float64 { return &c.TargetTimeInterval }),
	"numeric_precision":      intSetting(func(c *Config) *int { return &c.NumericPrecision }),
	"date_format":            stringSetting(func(c *Config) *string { return &c.DateFormat }),
	"solver_method":          stringSetting(func(c *Config) *string { return &c.SolverMethod }),
	"missing_value_strategy": stringSetting(func(c *Config) *string { return &c.MissingValueStrategy }),
	"time_output_format":     stringSetting(func(c *Config) *string { return &c.TimeOutputFormat }),
	"max_parallel_files":     intSetting(func(c *Config) *int { return &c.MaxParallelFiles }),

	"logging.level":     stringSetting(func(c *Config) *string { return &c.Logging.Level }),
	"logging.format":    stringSetting(func(c *Config) *string { return &c.Logging.Format }),
	"logging.output":    stringSetting(func(c *Config) *string { return &c.Logging.Output }),
	"logging.file_path": stringSetting(func(c *Config) *string { return &c.Logging.FilePath }),

	"telemetry.service_name":   stringSetting(func(c *Config) *string { return &c.Telemetry.ServiceName }),
	"telemetry.enable_tracing": boolSetting(func(c *Config) *bool { return &c.Telemetry.EnableTracing }),
	"telemetry.trace_exporter": stringSetting(func(c *Config) *string { return &c.Telemetry.TraceExporter }),
	"telemetry.trace_file":     stringSetting(func(c *Config) *string { return &c.Telemetry.TraceFile }),
	"telemetry.enable_metrics": boolSetting(func(c *Config) *bool { return &c.Telemetry.EnableMetrics }),
	"telemetry.metrics_file":   stringSetting(func(c *Config) *string { return &c.Telemetry.MetricsFile }),
}

// LoadSettingsFile merges a key=value settings file into cfg. Blank lines and
// lines starting with '#' are skipped, keys and values are trimmed and
// unknown keys are ignored. A value that does not parse is an error.
func LoadSettingsFile(path string, cfg *Config) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)

		s, known := settings[key]
		if !known {
			slog.Debug("ignoring unknown setting",
				slog.String("path", path),
				slog.Int("line", lineNo),
				slog.String("key", key))
			continue
		}
		if err := s.set(cfg, value); err != nil {
			return fmt.Errorf("%s:%d: invalid value for %s: %w", path, lineNo, key, err)
		}
	}
	return scanner.Err()
}

// SaveSettingsFile writes every setting of cfg as sorted key=value lines
// after the standard header comment.
func SaveSettingsFile(path string, cfg *Config) error {
	keys := make([]string, 0, len(settings))
	for k := range settings {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(SettingsFileHeader)
	b.WriteString("\n")
	for _, k := range keys {
		fmt.Fprintf(&b, "%s=%s\n", k, settings[k].get(cfg))
	}

	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		return fmt.Errorf("failed to save settings to %s: %w", path, err)
	}
	return nil
}

// ParseList splits a comma-joined list, trimming items and dropping empty ones
func ParseList(s string) []string {
	var out []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
