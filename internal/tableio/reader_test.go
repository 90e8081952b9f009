package tableio

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/unicode"

	"adaptercli/internal/shared/testutil"
)

func writeFile(t *testing.T, name string, content []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, content, 0644))
	return path
}

func TestReadTableCSV(t *testing.T) {
	tests := []struct {
		name      string
		content   string
		delimiter rune
		header    []string
		rows      [][]string
		stats     ReadStats
	}{
		{
			name:    "simple",
			content: "time,value\n0,1\n1,2\n",
			header:  []string{"time", "value"},
			rows:    [][]string{{"0", "1"}, {"1", "2"}},
			stats:   ReadStats{RowsRead: 2},
		},
		{
			name:    "trims cells",
			content: " time , value \n 0 ,  1\n",
			header:  []string{"time", "value"},
			rows:    [][]string{{"0", "1"}},
			stats:   ReadStats{RowsRead: 1},
		},
		{
			name:    "skips blank lines",
			content: "\ntime,value\n\n0,1\n   \n1,2",
			header:  []string{"time", "value"},
			rows:    [][]string{{"0", "1"}, {"1", "2"}},
			stats:   ReadStats{RowsRead: 2, BlankRows: 1},
		},
		{
			name:    "drops malformed rows",
			content: "a,b,c\n1,2,3\n4,5\n6,7,8,9\n10,11,12\n",
			header:  []string{"a", "b", "c"},
			rows:    [][]string{{"1", "2", "3"}, {"10", "11", "12"}},
			stats:   ReadStats{RowsRead: 2, MalformedRows: 2},
		},
		{
			name:    "quoted delimiter",
			content: "name,note\nx,\"a, b\"\n",
			header:  []string{"name", "note"},
			rows:    [][]string{{"x", "a, b"}},
			stats:   ReadStats{RowsRead: 1},
		},
		{
			name:      "semicolon delimiter",
			content:   "a;b\n1,5;2\n",
			delimiter: ';',
			header:    []string{"a", "b"},
			rows:      [][]string{{"1,5", "2"}},
			stats:     ReadStats{RowsRead: 1},
		},
		{
			name:    "utf8 bom",
			content: "\xEF\xBB\xBFtime,value\n0,1\n",
			header:  []string{"time", "value"},
			rows:    [][]string{{"0", "1"}},
			stats:   ReadStats{RowsRead: 1},
		},
		{
			name:    "keeps delimiter-only rows",
			content: "time,a,b\n0,1,2\n,,\n2,3,4\n",
			header:  []string{"time", "a", "b"},
			rows:    [][]string{{"0", "1", "2"}, {"", "", ""}, {"2", "3", "4"}},
			stats:   ReadStats{RowsRead: 3},
		},
		{
			name:    "delimiter-only rows before header",
			content: ",,\n , \ntime,a\n0,1\n",
			header:  []string{"time", "a"},
			rows:    [][]string{{"0", "1"}},
			stats:   ReadStats{RowsRead: 1, BlankRows: 2},
		},
		{
			name:    "repeated header names",
			content: "time,v,v\n0,1,2\n",
			header:  []string{"time", "v", "v"},
			rows:    [][]string{{"0", "1", "2"}},
			stats:   ReadStats{RowsRead: 1, DuplicateColumns: 1},
		},
		{
			name:    "header only",
			content: "time,value\n",
			header:  []string{"time", "value"},
			rows:    [][]string{},
			stats:   ReadStats{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, _ := testutil.NewTestLogger(t)
			path := writeFile(t, "input.csv", []byte(tt.content))

			table, stats, err := NewReader(logger).ReadTable(path, ReadOptions{Delimiter: tt.delimiter})

			require.NoError(t, err)
			assert.Equal(t, tt.header, table.Header)
			assert.Equal(t, tt.rows, table.Rows)
			assert.Equal(t, tt.stats, stats)
		})
	}
}

func TestReadTableUTF16(t *testing.T) {
	encoded, err := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewEncoder().String("time,value\n0,1\n")
	require.NoError(t, err)
	path := writeFile(t, "utf16.csv", []byte(encoded))

	table, _, err := ReadTable(path, ReadOptions{})

	require.NoError(t, err)
	assert.Equal(t, []string{"time", "value"}, table.Header)
	assert.Equal(t, [][]string{{"0", "1"}}, table.Rows)
}

func TestReadTableMalformedRowIsLogged(t *testing.T) {
	logger, handler := testutil.NewTestLogger(t)
	path := writeFile(t, "input.csv", []byte("a,b\n1\n2,3\n"))

	_, stats, err := NewReader(logger).ReadTable(path, ReadOptions{})

	require.NoError(t, err)
	assert.Equal(t, 1, stats.MalformedRows)
	assert.True(t, handler.ContainsMessage("dropping malformed row"))
	testutil.AssertLogAttr(t, handler, "line", int64(2))
}

func TestReadTableDuplicateHeaderIsLogged(t *testing.T) {
	logger, handler := testutil.NewTestLogger(t)
	path := writeFile(t, "input.csv", []byte("time,value,value\n0,1,2\n"))

	table, _, err := NewReader(logger).ReadTable(path, ReadOptions{})

	require.NoError(t, err)
	idx, ok := table.ColumnIndex("value")
	require.True(t, ok)
	assert.Equal(t, 1, idx)
	testutil.AssertLogContains(t, handler, slog.LevelWarn, "duplicate column name")
	testutil.AssertLogAttr(t, handler, "column", "value")
}

func TestReadTableErrors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, _, err := ReadTable(filepath.Join(t.TempDir(), "absent.csv"), ReadOptions{})
		assert.ErrorIs(t, err, ErrInputNotFound)
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("missing workbook", func(t *testing.T) {
		_, _, err := ReadTable(filepath.Join(t.TempDir(), "absent.xlsx"), ReadOptions{})
		assert.ErrorIs(t, err, ErrInputNotFound)
	})

	t.Run("empty file", func(t *testing.T) {
		path := writeFile(t, "empty.csv", nil)
		_, _, err := ReadTable(path, ReadOptions{})
		assert.ErrorIs(t, err, ErrEmptyInput)
	})

	t.Run("blank lines only", func(t *testing.T) {
		path := writeFile(t, "blank.csv", []byte("\n  \n\n"))
		_, _, err := ReadTable(path, ReadOptions{})
		assert.ErrorIs(t, err, ErrEmptyInput)
	})
}
