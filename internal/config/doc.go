// Package config provides configuration management for the adapter.
// It loads settings from several sources, validates them and converts them
// into the option structs consumed by the processing stages.
//
// # Configuration Sources
//
// Configuration is assembled in the following order, later sources winning:
//
//	1. Default values
//	2. A settings file (key=value lines, or YAML for .yaml/.yml)
//	3. Environment variables
//	4. Command-line flags (applied by the caller)
//
// # Settings File
//
// The key=value format skips blank lines and '#' comments and trims both
// sides of each pair:
//
//	# Adapter Configuration File
//	time_column=timestamp
//	dependent_variables=temperature,pressure
//	delimiter=;
//	logging.level=debug
//
// SaveSettingsFile writes the same format back, one sorted key per line.
//
// # Environment Variables
//
// All environment variables follow the pattern ADAPTER_* for namespacing:
//
//	ADAPTER_TIME_COLUMN=timestamp
//	ADAPTER_TARGET_TIME_INTERVAL=0.5
//	ADAPTER_LOGGING_LEVEL=debug
//	ADAPTER_TELEMETRY_ENABLE_METRICS=true
//
// # Validation
//
// Validate applies go-playground/validator struct tags and reports every
// failing field at once:
//
//	cfg, err := config.Load("adapter.conf")
//	if err != nil {
//	    // err lists each invalid field
//	}
package config
