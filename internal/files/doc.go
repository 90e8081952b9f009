// Package files expands command-line input arguments into the table files
// the pipeline reads.
//
// An argument naming a directory yields the table files directly inside it.
// An argument holding glob metacharacters yields its matches. Anything else is
// passed through unchanged so that a missing file is reported by the reader.
//
// Example usage:
//
//	discovery := files.NewDiscovery("")
//	inputs, err := discovery.ExpandInputs([]string{"data", "extra/*.csv"})
package files
