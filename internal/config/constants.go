package config

// Application constants
const (
	AppName = "Adapter"

	// EnvPrefix namespaces environment overrides, e.g. ADAPTER_TIME_COLUMN
	EnvPrefix = "ADAPTER"

	// SettingsFileHeader opens every saved settings file
	SettingsFileHeader = "# Adapter Configuration File\n# Generated automatically\n"

	// DefaultOutputFile is used when neither settings nor flags name an output
	DefaultOutputFile = "output.csv"

	// DefaultTimeColumn is the column alignment runs on
	DefaultTimeColumn = "time"
)

// Accepted enum values
const (
	LogFormatJSON = "json"
	LogFormatText = "text"

	LogOutputConsole = "console"
	LogOutputFile    = "file"
	LogOutputBoth    = "both"

	TraceExporterStdout = "stdout"
	TraceExporterNone   = "none"
)
