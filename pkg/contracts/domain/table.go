package domain

// Table is a header plus data rows of text cells. Every data row has the
// same number of cells as the header.
type Table struct {
	Header []string   `json:"header"`
	Rows   [][]string `json:"rows"`
}

// NewTable creates a table from a header and data rows
func NewTable(header []string, rows [][]string) *Table {
	if rows == nil {
		rows = [][]string{}
	}
	return &Table{Header: header, Rows: rows}
}

// Len returns the number of data rows
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}

// Width returns the number of columns
func (t *Table) Width() int {
	if t == nil {
		return 0
	}
	return len(t.Header)
}

// ColumnIndex returns the position of the named column
func (t *Table) ColumnIndex(name string) (int, bool) {
	if t == nil {
		return -1, false
	}
	for i, h := range t.Header {
		if h == name {
			return i, true
		}
	}
	return -1, false
}

// Column returns a copy of the cells of column i across all data rows.
// Rows too short to hold the column are skipped.
func (t *Table) Column(i int) []string {
	if t == nil || i < 0 {
		return nil
	}
	col := make([]string, 0, len(t.Rows))
	for _, row := range t.Rows {
		if i < len(row) {
			col = append(col, row[i])
		}
	}
	return col
}

// Clone returns a deep copy of the table
func (t *Table) Clone() *Table {
	if t == nil {
		return nil
	}
	out := &Table{
		Header: append([]string(nil), t.Header...),
		Rows:   make([][]string, len(t.Rows)),
	}
	for i, row := range t.Rows {
		out.Rows[i] = append([]string(nil), row...)
	}
	return out
}
