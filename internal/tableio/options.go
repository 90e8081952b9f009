package tableio

import (
	"path/filepath"
	"strings"
)

// ReadOptions configures table reading
type ReadOptions struct {
	// Delimiter separates CSV fields. Zero means ','.
	Delimiter rune

	// Sheet selects the XLSX worksheet. Empty means the first sheet with data.
	Sheet string
}

// ReadStats reports what the reader saw
type ReadStats struct {
	RowsRead         int `json:"rows_read"`
	MalformedRows    int `json:"malformed_rows"`
	BlankRows        int `json:"blank_rows"`
	DuplicateColumns int `json:"duplicate_columns"`
}

// WriteOptions configures table writing
type WriteOptions struct {
	// Delimiter separates CSV fields. Zero means ','.
	Delimiter rune

	// BOMPrefix adds a UTF-8 BOM for Excel compatibility
	BOMPrefix bool

	// Sheet names the XLSX worksheet. Empty means "Sheet1".
	Sheet string
}

func delimiterOrDefault(d rune) rune {
	if d == 0 {
		return ','
	}
	return d
}

// isXLSX reports whether path names an Excel workbook
func isXLSX(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".xlsx")
}
