package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"adaptercli/internal/dataprocessing"
	"adaptercli/pkg/contracts/domain"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "", cfg.InputFile)
	assert.Equal(t, "output.csv", cfg.OutputFile)
	assert.Empty(t, cfg.DependentVariables)
	assert.Empty(t, cfg.IndependentVariables)
	assert.Equal(t, "time", cfg.TimeColumn)
	assert.Equal(t, ",", cfg.Delimiter)
	assert.Equal(t, 1.0, cfg.TargetTimeInterval)
	assert.Equal(t, 2, cfg.NumericPrecision)
	assert.Equal(t, "%Y-%m-%d", cfg.DateFormat)
	assert.Equal(t, "linear", cfg.SolverMethod)
	assert.Equal(t, "mean", cfg.MissingValueStrategy)
	assert.Equal(t, "iso", cfg.TimeOutputFormat)
	assert.Equal(t, 1, cfg.MaxParallelFiles)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.False(t, cfg.Telemetry.EnableTracing)
	assert.False(t, cfg.Telemetry.EnableMetrics)

	require.NoError(t, cfg.Validate())
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name        string
		file        string
		content     string
		env         map[string]string
		wantErr     bool
		validateCfg func(*testing.T, *Config)
	}{
		{
			name: "defaults only",
			validateCfg: func(t *testing.T, cfg *Config) {
				assert.Equal(t, Default(), cfg)
			},
		},
		{
			name:    "settings file",
			file:    "adapter.conf",
			content: "time_column=timestamp\ntarget_time_interval=0.5\n",
			validateCfg: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "timestamp", cfg.TimeColumn)
				assert.Equal(t, 0.5, cfg.TargetTimeInterval)
				assert.Equal(t, "output.csv", cfg.OutputFile)
			},
		},
		{
			name: "yaml file",
			file: "adapter.yaml",
			content: "time_column: ts\n" +
				"dependent_variables: [temperature, pressure]\n" +
				"logging:\n  level: debug\n",
			validateCfg: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "ts", cfg.TimeColumn)
				assert.Equal(t, []string{"temperature", "pressure"}, cfg.DependentVariables)
				assert.Equal(t, "debug", cfg.Logging.Level)
				assert.Equal(t, "json", cfg.Logging.Format)
			},
		},
		{
			name:    "environment overrides file",
			file:    "adapter.conf",
			content: "time_column=timestamp\nnumeric_precision=4\n",
			env: map[string]string{
				"ADAPTER_TIME_COLUMN":              "t",
				"ADAPTER_DEPENDENT_VARIABLES":      "a,b",
				"ADAPTER_LOGGING_LEVEL":            "warn",
				"ADAPTER_TELEMETRY_ENABLE_METRICS": "true",
			},
			validateCfg: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "t", cfg.TimeColumn)
				assert.Equal(t, 4, cfg.NumericPrecision)
				assert.Equal(t, []string{"a", "b"}, cfg.DependentVariables)
				assert.Equal(t, "warn", cfg.Logging.Level)
				assert.True(t, cfg.Telemetry.EnableMetrics)
			},
		},
		{
			name:    "invalid interval in file",
			file:    "adapter.conf",
			content: "target_time_interval=0\n",
			wantErr: true,
		},
		{
			name:    "unparsable number",
			file:    "adapter.conf",
			content: "numeric_precision=two\n",
			wantErr: true,
		},
		{
			name:    "invalid env value",
			env:     map[string]string{"ADAPTER_MAX_PARALLEL_FILES": "many"},
			wantErr: true,
		},
		{
			name:    "malformed yaml",
			file:    "adapter.yml",
			content: "time_column: [unclosed\n",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			path := ""
			if tt.file != "" {
				path = filepath.Join(t.TempDir(), tt.file)
				require.NoError(t, os.WriteFile(path, []byte(tt.content), 0644))
			}

			cfg, err := Load(path)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			if tt.validateCfg != nil {
				tt.validateCfg(t, cfg)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.conf"))

	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"zero interval", func(c *Config) { c.TargetTimeInterval = 0 }, "TargetTimeInterval must be greater than 0"},
		{"negative interval", func(c *Config) { c.TargetTimeInterval = -1 }, "TargetTimeInterval"},
		{"precision too high", func(c *Config) { c.NumericPrecision = 16 }, "NumericPrecision must be at most 15"},
		{"negative precision", func(c *Config) { c.NumericPrecision = -1 }, "NumericPrecision must be at least 0"},
		{"long delimiter", func(c *Config) { c.Delimiter = ";;" }, "Delimiter must be exactly 1"},
		{"quote delimiter", func(c *Config) { c.Delimiter = `"` }, "cannot separate fields"},
		{"unknown solver", func(c *Config) { c.SolverMethod = "euler" }, "SolverMethod must be one of"},
		{"unknown strategy", func(c *Config) { c.MissingValueStrategy = "mode" }, "unknown missing value strategy"},
		{"unknown time format", func(c *Config) { c.TimeOutputFormat = "rfc" }, "TimeOutputFormat"},
		{"no parallelism", func(c *Config) { c.MaxParallelFiles = 0 }, "MaxParallelFiles"},
		{"bad log level", func(c *Config) { c.Logging.Level = "trace" }, "Logging.Level"},
		{"file output without path", func(c *Config) {
			c.Logging.Output = LogOutputFile
			c.Logging.FilePath = ""
		}, "Logging.FilePath is required"},
		{"bad exporter", func(c *Config) { c.Telemetry.TraceExporter = "jaeger" }, "Telemetry.TraceExporter"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)

			err := cfg.Validate()

			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidateReportsAllFields(t *testing.T) {
	cfg := Default()
	cfg.TargetTimeInterval = 0
	cfg.NumericPrecision = 99

	err := cfg.Validate()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "TargetTimeInterval")
	assert.Contains(t, err.Error(), "NumericPrecision")
}

func TestCleaningOptions(t *testing.T) {
	cfg := Default()
	cfg.MissingValueStrategy = "median, zero"
	cfg.NumericPrecision = 3

	opts, err := cfg.CleaningOptions()

	require.NoError(t, err)
	assert.Equal(t, []domain.Strategy{domain.StrategyMedian, domain.StrategyZero}, opts.Strategies)
	assert.Equal(t, 3, opts.Precision)
	assert.Equal(t, "%Y-%m-%d", opts.DateFormat)
}

func TestAlignOptions(t *testing.T) {
	cfg := Default()
	cfg.TargetTimeInterval = 60
	cfg.TimeOutputFormat = "epoch"

	opts, err := cfg.AlignOptions()

	require.NoError(t, err)
	assert.Equal(t, dataprocessing.AlignOptions{
		Interval:   60,
		Method:     dataprocessing.MethodLinear,
		TimeFormat: dataprocessing.TimeFormatEpoch,
	}, opts)
}

func TestDelimiterRune(t *testing.T) {
	cfg := Default()
	assert.Equal(t, ',', cfg.DelimiterRune())

	cfg.Delimiter = "\t"
	assert.Equal(t, '\t', cfg.DelimiterRune())

	cfg.Delimiter = ""
	assert.Equal(t, ',', cfg.DelimiterRune())
}
