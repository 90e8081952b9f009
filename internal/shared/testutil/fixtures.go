// Package testutil provides log capture and file fixtures for package tests.
package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// SensorCSV is a small time series with one duplicate row and one missing value
const SensorCSV = `time,temperature,humidity
0,20.5,40
1,21.0,NA
1,21.0,NA
3,22.5,44
`

// WriteFile writes content to name inside a fresh temporary directory and
// returns the full path.
func WriteFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("failed to create fixture directory: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write fixture %s: %v", name, err)
	}
	return path
}

// ReadFile returns the contents of path, failing the test on error
func ReadFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read %s: %v", path, err)
	}
	return string(data)
}
