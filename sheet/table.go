// Package sheet loads one worksheet of a spreadsheet into an ordered table.
//
// The first non-blank row of the worksheet (or of the selected range) is the
// header. Every later non-blank row becomes a Row keyed by column name. Cells
// that are empty in the source are missing (nil) until Normalize fills them
// with empty strings.
package sheet

import "fmt"

// Row maps a column name to its cell value. A nil value is a missing cell.
type Row map[string]*string

// Table is an ordered set of named columns and an ordered set of rows.
type Table struct {
	Columns []string
	Rows    []Row
}

// Normalize returns a copy of t in which every missing cell is an empty
// string. It does not modify t and is idempotent.
func Normalize(t Table) Table {
	out := Table{
		Columns: append([]string(nil), t.Columns...),
		Rows:    make([]Row, len(t.Rows)),
	}
	for i, row := range t.Rows {
		n := make(Row, len(t.Columns))
		for _, col := range t.Columns {
			v := ""
			if p := row[col]; p != nil {
				v = *p
			}
			n[col] = &v
		}
		out.Rows[i] = n
	}
	return out
}

// Records returns the cell text of every row in column order. Missing cells
// are rendered as empty strings.
func (t Table) Records() [][]string {
	records := make([][]string, len(t.Rows))
	for i, row := range t.Rows {
		record := make([]string, len(t.Columns))
		for j, col := range t.Columns {
			if p := row[col]; p != nil {
				record[j] = *p
			}
		}
		records[i] = record
	}
	return records
}

// fromGrid builds a table from raw worksheet rows. Blank rows are skipped;
// the first remaining row is the header.
func fromGrid(grid [][]string) Table {
	var rows [][]string
	width := 0
	for _, r := range grid {
		if isBlank(r) {
			continue
		}
		rows = append(rows, r)
		if len(r) > width {
			width = len(r)
		}
	}
	if len(rows) == 0 {
		return Table{}
	}

	columns := columnNames(rows[0], width)
	t := Table{
		Columns: columns,
		Rows:    make([]Row, 0, len(rows)-1),
	}
	for _, r := range rows[1:] {
		row := make(Row, width)
		for i, col := range columns {
			if i < len(r) && r[i] != "" {
				v := r[i]
				row[col] = &v
			} else {
				row[col] = nil
			}
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}

// columnNames names each of width columns from the header row. Blank headers
// become "Unnamed: <index>" and repeats get ".1", ".2", ... suffixes.
func columnNames(header []string, width int) []string {
	names := make([]string, width)
	seen := make(map[string]bool, width)
	counts := make(map[string]int, width)
	for i := 0; i < width; i++ {
		name := ""
		if i < len(header) {
			name = header[i]
		}
		if name == "" {
			name = fmt.Sprintf("Unnamed: %d", i)
		}

		base := name
		for seen[name] {
			counts[base]++
			name = fmt.Sprintf("%s.%d", base, counts[base])
		}
		seen[name] = true
		names[i] = name
	}
	return names
}

func isBlank(row []string) bool {
	for _, v := range row {
		if v != "" {
			return false
		}
	}
	return true
}

// crop returns the part of grid inside the 1-indexed inclusive rectangle.
func crop(grid [][]string, startRow, startCol, endRow, endCol int) [][]string {
	var out [][]string
	for r := startRow; r <= endRow && r-1 < len(grid); r++ {
		src := grid[r-1]
		var row []string
		for c := startCol; c <= endCol; c++ {
			v := ""
			if c-1 < len(src) {
				v = src[c-1]
			}
			row = append(row, v)
		}
		out = append(out, trimTrailing(row))
	}
	return out
}

func trimTrailing(row []string) []string {
	end := len(row)
	for end > 0 && row[end-1] == "" {
		end--
	}
	return row[:end]
}
