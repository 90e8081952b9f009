package tableio

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"adaptercli/pkg/contracts/domain"
)

// Reader loads tables from CSV and XLSX files
type Reader struct {
	logger *slog.Logger
}

// NewReader creates a table reader
func NewReader(logger *slog.Logger) *Reader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Reader{logger: logger.With(slog.String("component", "table_reader"))}
}

// ReadTable reads path with the default logger
func ReadTable(path string, opts ReadOptions) (*domain.Table, ReadStats, error) {
	return NewReader(nil).ReadTable(path, opts)
}

// ReadTable loads the table stored at path. The first non-blank row is the
// header. Malformed rows are dropped, not returned as errors.
func (r *Reader) ReadTable(path string, opts ReadOptions) (*domain.Table, ReadStats, error) {
	var (
		table *domain.Table
		stats ReadStats
		err   error
	)
	if isXLSX(path) {
		table, stats, err = r.readXLSX(path, opts)
	} else {
		table, stats, err = r.readCSV(path, opts)
	}
	if err != nil {
		return nil, stats, err
	}

	r.logger.Info("table loaded",
		slog.String("path", path),
		slog.Int("columns", table.Width()),
		slog.Int("rows", stats.RowsRead),
		slog.Int("malformed_rows", stats.MalformedRows))

	return table, stats, nil
}

func (r *Reader) readCSV(path string, opts ReadOptions) (*domain.Table, ReadStats, error) {
	file, err := openInput(path)
	if err != nil {
		return nil, ReadStats{}, err
	}
	defer file.Close()

	// BOMOverride strips a UTF-8 BOM and decodes UTF-16 when its BOM is present
	decoded := transform.NewReader(file, unicode.BOMOverride(unicode.UTF8.NewDecoder()))

	reader := csv.NewReader(decoded)
	reader.Comma = delimiterOrDefault(opts.Delimiter)
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	b := newTableBuilder(r.logger, path, false)
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				b.malformed(parseErr.Line, parseErr.Error())
				continue
			}
			return nil, b.stats, fmt.Errorf("failed to read %s: %w", path, err)
		}
		line, _ := reader.FieldPos(0)
		b.add(record, line)
	}

	return b.finish()
}

// openInput opens an input file, classifying failures as ErrInputNotFound
func openInput(path string) (*os.File, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInputNotFound, err)
	}
	return file, nil
}

// tableBuilder turns raw records into a table, watching for the header and
// dropping rows that do not fit it.
type tableBuilder struct {
	logger *slog.Logger
	source string
	pad    bool
	table  *domain.Table
	stats  ReadStats
}

func newTableBuilder(logger *slog.Logger, source string, pad bool) *tableBuilder {
	return &tableBuilder{logger: logger, source: source, pad: pad}
}

// add trims a record and appends it as the header or as a data row.
// Short rows are padded with empty cells when pad is set. Blank lines are
// skipped. A delimiter-only row such as ",," is data once the header is
// known: every cell is missing and is imputed during cleaning.
func (b *tableBuilder) add(record []string, line int) {
	cells := make([]string, len(record))
	empty := true
	for i, cell := range record {
		cells[i] = strings.TrimSpace(cell)
		if cells[i] != "" {
			empty = false
		}
	}
	if len(cells) == 0 || (len(cells) == 1 && cells[0] == "") || (empty && b.table == nil) {
		b.stats.BlankRows++
		return
	}

	if b.table == nil {
		b.table = domain.NewTable(cells, nil)
		b.checkHeader(line)
		return
	}

	width := b.table.Width()
	if b.pad && len(cells) < width {
		cells = append(cells, make([]string, width-len(cells))...)
	}
	if len(cells) != width {
		b.logger.Warn("dropping malformed row",
			slog.String("source", b.source),
			slog.Int("line", line),
			slog.Int("expected_cells", width),
			slog.Int("actual_cells", len(cells)))
		b.stats.MalformedRows++
		return
	}

	b.table.Rows = append(b.table.Rows, cells)
	b.stats.RowsRead++
}

// checkHeader warns about repeated column names; lookups by name resolve to
// the first of them.
func (b *tableBuilder) checkHeader(line int) {
	seen := make(map[string]int, len(b.table.Header))
	for i, name := range b.table.Header {
		if first, ok := seen[name]; ok {
			b.logger.Warn("duplicate column name in header",
				slog.String("source", b.source),
				slog.Int("line", line),
				slog.String("column", name),
				slog.Int("first_index", first),
				slog.Int("index", i))
			b.stats.DuplicateColumns++
			continue
		}
		seen[name] = i
	}
}

func (b *tableBuilder) malformed(line int, reason string) {
	b.logger.Warn("dropping unparsable row",
		slog.String("source", b.source),
		slog.Int("line", line),
		slog.String("error", reason))
	b.stats.MalformedRows++
}

func (b *tableBuilder) finish() (*domain.Table, ReadStats, error) {
	if b.table == nil {
		return nil, b.stats, fmt.Errorf("%w: %s", ErrEmptyInput, b.source)
	}
	return b.table, b.stats, nil
}
