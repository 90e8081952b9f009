package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"

	"adaptercli/internal/dataprocessing"
	"adaptercli/pkg/contracts/domain"
)

// Config represents the complete application configuration.
// The struct tags carry no defaults, Default supplies them.
type Config struct {
	InputFile            string   `yaml:"input_file" envconfig:"INPUT_FILE"`
	OutputFile           string   `yaml:"output_file" envconfig:"OUTPUT_FILE" validate:"required"`
	DependentVariables   []string `yaml:"dependent_variables" envconfig:"DEPENDENT_VARIABLES"`
	IndependentVariables []string `yaml:"independent_variables" envconfig:"INDEPENDENT_VARIABLES"`
	TimeColumn           string   `yaml:"time_column" envconfig:"TIME_COLUMN"`
	Delimiter            string   `yaml:"delimiter" envconfig:"DELIMITER" validate:"len=1"`
	TargetTimeInterval   float64  `yaml:"target_time_interval" envconfig:"TARGET_TIME_INTERVAL" validate:"gt=0"`
	NumericPrecision     int      `yaml:"numeric_precision" envconfig:"NUMERIC_PRECISION" validate:"min=0,max=15"`
	DateFormat           string   `yaml:"date_format" envconfig:"DATE_FORMAT" validate:"required"`
	SolverMethod         string   `yaml:"solver_method" envconfig:"SOLVER_METHOD" validate:"oneof=linear rk4 heun cubic_spline"`
	MissingValueStrategy string   `yaml:"missing_value_strategy" envconfig:"MISSING_VALUE_STRATEGY" validate:"required"`
	TimeOutputFormat     string   `yaml:"time_output_format" envconfig:"TIME_OUTPUT_FORMAT" validate:"oneof=iso epoch"`
	MaxParallelFiles     int      `yaml:"max_parallel_files" envconfig:"MAX_PARALLEL_FILES" validate:"min=1,max=64"`

	Logging   LoggingConfig   `yaml:"logging" envconfig:"LOGGING"`
	Telemetry TelemetryConfig `yaml:"telemetry" envconfig:"TELEMETRY"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" validate:"oneof=debug info warn error"`
	Format   string `yaml:"format" envconfig:"FORMAT" validate:"oneof=json text"`
	Output   string `yaml:"output" envconfig:"OUTPUT" validate:"oneof=console file both"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH" validate:"required_unless=Output console"`
}

// TelemetryConfig contains tracing and metrics configuration
type TelemetryConfig struct {
	ServiceName   string `yaml:"service_name" envconfig:"SERVICE_NAME" validate:"required"`
	EnableTracing bool   `yaml:"enable_tracing" envconfig:"ENABLE_TRACING"`
	TraceExporter string `yaml:"trace_exporter" envconfig:"TRACE_EXPORTER" validate:"oneof=stdout none"`
	TraceFile     string `yaml:"trace_file" envconfig:"TRACE_FILE"`
	EnableMetrics bool   `yaml:"enable_metrics" envconfig:"ENABLE_METRICS"`
	MetricsFile   string `yaml:"metrics_file" envconfig:"METRICS_FILE"`
}

// Default returns default configuration
func Default() *Config {
	return &Config{
		OutputFile:           DefaultOutputFile,
		TimeColumn:           DefaultTimeColumn,
		Delimiter:            ",",
		TargetTimeInterval:   1.0,
		NumericPrecision:     dataprocessing.DefaultPrecision,
		DateFormat:           "%Y-%m-%d",
		SolverMethod:         string(dataprocessing.MethodLinear),
		MissingValueStrategy: string(domain.StrategyMean),
		TimeOutputFormat:     string(dataprocessing.TimeFormatISO),
		MaxParallelFiles:     1,
		Logging: LoggingConfig{
			Level:    "info",
			Format:   LogFormatJSON,
			Output:   LogOutputConsole,
			FilePath: "logs/adapter.log",
		},
		Telemetry: TelemetryConfig{
			ServiceName:   "adapter",
			TraceExporter: TraceExporterStdout,
		},
	}
}

// Load builds the configuration from defaults, the optional settings file
// at path and ADAPTER_* environment variables, in that order of precedence.
// A path that does not exist is reported as an error wrapping os.ErrNotExist.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if err := LoadFile(path, cfg); err != nil {
			return nil, fmt.Errorf("failed to load config from file: %w", err)
		}
	}

	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// LoadFile merges a settings file into cfg. Files ending in .yaml or .yml are
// decoded as YAML, anything else as key=value lines.
func LoadFile(path string, cfg *Config) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return loadYAML(path, cfg)
	default:
		return LoadSettingsFile(path, cfg)
	}
}

// loadYAML decodes a YAML file over cfg; keys absent from the file keep
// their current values.
func loadYAML(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("invalid yaml in %s: %w", path, err)
	}
	return nil
}

// ApplyEnv overrides cfg with any ADAPTER_* environment variables that are set
func (c *Config) ApplyEnv() error {
	if err := envconfig.Process(EnvPrefix, c); err != nil {
		return fmt.Errorf("failed to load config from env: %w", err)
	}
	return nil
}

var validate = validator.New()

// Validate checks field constraints and the values that need parsing
func (c *Config) Validate() error {
	var errs []error

	if err := validate.Struct(c); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return err
		}
		for _, fe := range fieldErrs {
			errs = append(errs, errors.New(formatValidationError(fe)))
		}
	}

	if utf8.RuneCountInString(c.Delimiter) == 1 {
		switch r := c.DelimiterRune(); r {
		case '"', '\r', '\n', utf8.RuneError:
			errs = append(errs, fmt.Errorf("delimiter %q cannot separate fields", r))
		}
	}

	if _, err := c.Strategies(); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

// formatValidationError formats validation error messages
func formatValidationError(err validator.FieldError) string {
	field := err.Namespace()
	param := err.Param()

	switch err.Tag() {
	case "required", "required_unless":
		return fmt.Sprintf("%s is required", field)
	case "min":
		return fmt.Sprintf("%s must be at least %s", field, param)
	case "max":
		return fmt.Sprintf("%s must be at most %s", field, param)
	case "len":
		return fmt.Sprintf("%s must be exactly %s character(s)", field, param)
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, strings.ReplaceAll(param, " ", ", "))
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, param)
	default:
		return fmt.Sprintf("%s failed %s validation", field, err.Tag())
	}
}

// DelimiterRune returns the first character of the delimiter, or ','
func (c *Config) DelimiterRune() rune {
	if c.Delimiter == "" {
		return ','
	}
	r, _ := utf8.DecodeRuneInString(c.Delimiter)
	return r
}

// Strategies parses the missing value strategy list
func (c *Config) Strategies() ([]domain.Strategy, error) {
	return domain.ParseStrategies(c.MissingValueStrategy)
}

// CleaningOptions converts the settings used by the cleaning stage
func (c *Config) CleaningOptions() (dataprocessing.CleaningOptions, error) {
	strategies, err := c.Strategies()
	if err != nil {
		return dataprocessing.CleaningOptions{}, err
	}
	return dataprocessing.CleaningOptions{
		Strategies: strategies,
		Precision:  c.NumericPrecision,
		DateFormat: c.DateFormat,
	}, nil
}

// AlignOptions converts the settings used by the alignment stage
func (c *Config) AlignOptions() (dataprocessing.AlignOptions, error) {
	method, err := dataprocessing.ParseMethod(c.SolverMethod)
	if err != nil {
		return dataprocessing.AlignOptions{}, err
	}
	return dataprocessing.AlignOptions{
		Interval:   c.TargetTimeInterval,
		Method:     method,
		TimeFormat: dataprocessing.TimeFormat(c.TimeOutputFormat),
	}, nil
}

// LogValue implements slog.LogValuer
func (c *Config) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("input_file", c.InputFile),
		slog.String("output_file", c.OutputFile),
		slog.String("time_column", c.TimeColumn),
		slog.String("delimiter", c.Delimiter),
		slog.Any("dependent_variables", c.DependentVariables),
		slog.Any("independent_variables", c.IndependentVariables),
		slog.Float64("target_time_interval", c.TargetTimeInterval),
		slog.Int("numeric_precision", c.NumericPrecision),
		slog.String("solver_method", c.SolverMethod),
		slog.String("missing_value_strategy", c.MissingValueStrategy),
		slog.String("time_output_format", c.TimeOutputFormat),
	)
}
