package tableio

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/xuri/excelize/v2"

	"adaptercli/pkg/contracts/domain"
)

const defaultSheet = "Sheet1"

func (r *Reader) readXLSX(path string, opts ReadOptions) (*domain.Table, ReadStats, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, ReadStats{}, fmt.Errorf("%w: %w", ErrInputNotFound, err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, ReadStats{}, fmt.Errorf("failed to open workbook %s: %w", path, err)
	}
	defer f.Close()

	sheet, rows, err := r.selectSheet(f, opts.Sheet)
	if err != nil {
		return nil, ReadStats{}, fmt.Errorf("%s: %w", path, err)
	}

	r.logger.Debug("reading worksheet",
		slog.String("path", path),
		slog.String("sheet", sheet),
		slog.Int("total_rows", len(rows)))

	// excelize drops trailing empty cells, so short rows are padded
	b := newTableBuilder(r.logger, path+"#"+sheet, true)
	for i, row := range rows {
		b.add(row, i+1)
	}
	return b.finish()
}

// selectSheet returns the requested sheet or, when none is named, the first
// sheet holding any rows.
func (r *Reader) selectSheet(f *excelize.File, name string) (string, [][]string, error) {
	if name != "" {
		rows, err := f.GetRows(name)
		if err != nil {
			return "", nil, fmt.Errorf("sheet %q: %w", name, err)
		}
		return name, rows, nil
	}

	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err == nil && len(rows) > 0 {
			return sheet, rows, nil
		}
	}
	return "", nil, ErrEmptyInput
}

func (w *Writer) writeXLSX(path string, table *domain.Table, opts WriteOptions) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := opts.Sheet
	if sheet == "" {
		sheet = defaultSheet
	}
	if sheet != defaultSheet {
		if err := f.SetSheetName(defaultSheet, sheet); err != nil {
			return fmt.Errorf("failed to name sheet: %w", err)
		}
	}

	rows := append([][]string{table.Header}, table.Rows...)
	for i := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &rows[i]); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}
