package tableio

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"adaptercli/pkg/contracts/domain"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Writer stores tables as CSV or XLSX files
type Writer struct {
	logger *slog.Logger
}

// NewWriter creates a table writer
func NewWriter(logger *slog.Logger) *Writer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Writer{logger: logger.With(slog.String("component", "table_writer"))}
}

// WriteTable writes table to path with the default logger
func WriteTable(path string, table *domain.Table, opts WriteOptions) error {
	return NewWriter(nil).WriteTable(path, table, opts)
}

// WriteTable writes the header and data rows of table to path, replacing any
// existing file. The parent directory is created when missing.
func (w *Writer) WriteTable(path string, table *domain.Table, opts WriteOptions) error {
	if table == nil {
		return fmt.Errorf("no table to write to %s", path)
	}

	w.logger.Info("writing table",
		slog.String("path", path),
		slog.Int("columns", table.Width()),
		slog.Int("rows", table.Len()))

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	if isXLSX(path) {
		return w.writeXLSX(path, table, opts)
	}
	return w.writeCSV(path, table, opts)
}

func (w *Writer) writeCSV(path string, table *domain.Table, opts WriteOptions) (err error) {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close file: %w", cerr)
		}
	}()

	if opts.BOMPrefix {
		if _, err := file.Write(utf8BOM); err != nil {
			return fmt.Errorf("failed to write BOM: %w", err)
		}
	}

	writer := csv.NewWriter(file)
	writer.Comma = delimiterOrDefault(opts.Delimiter)

	if err := writer.Write(table.Header); err != nil {
		return fmt.Errorf("failed to write headers: %w", err)
	}
	for i, record := range table.Rows {
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write record %d: %w", i, err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// DefaultOutputPath derives "<stem>_cleaned.csv" next to the input file
func DefaultOutputPath(input string) string {
	ext := filepath.Ext(input)
	stem := strings.TrimSuffix(input, ext)
	return stem + "_cleaned.csv"
}
