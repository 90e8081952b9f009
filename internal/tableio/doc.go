// Package tableio reads and writes tables as CSV or XLSX files.
//
// The format is chosen from the file extension: ".xlsx" goes through excelize,
// anything else is treated as delimited text.
//
// Reading:
//
//	table, stats, err := tableio.NewReader(logger).ReadTable("data.csv", tableio.ReadOptions{
//		Delimiter: ',',
//	})
//
// Header and data cells are whitespace-trimmed, blank lines are skipped and a
// leading byte order mark is removed. A row whose cell count differs from the
// header is dropped with a warning and counted in ReadStats.MalformedRows.
//
// Writing:
//
//	err := tableio.NewWriter(logger).WriteTable("out.csv", table, tableio.WriteOptions{
//		Delimiter: ';',
//	})
//
// The output directory is created if needed. Cells containing the delimiter,
// a quote or a line break are quoted.
package tableio
