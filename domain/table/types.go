package table

import (
	"strconv"

	"trackplume/domain/core"
)

// RawTable is a loaded spreadsheet: the header row plus 0-indexed data rows of raw cell text.
// Cells are kept as the loader produced them; numeric coercion happens at extraction time.
type RawTable struct {
	Headers []string
	Rows    [][]string
}

// NewRawTable builds a table from a header row and data rows
func NewRawTable(headers []string, rows [][]string) *RawTable {
	return &RawTable{Headers: headers, Rows: rows}
}

// NumRows returns the number of data rows (the header row is not counted)
func (t *RawTable) NumRows() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}

// NumColumns returns the widest of the header row and all data rows
func (t *RawTable) NumColumns() int {
	if t == nil {
		return 0
	}
	width := len(t.Headers)
	for _, row := range t.Rows {
		if len(row) > width {
			width = len(row)
		}
	}
	return width
}

// RowWidth returns the number of cells in data row i, or -1 when i is out of range
func (t *RawTable) RowWidth(i int) int {
	if i < 0 || i >= t.NumRows() {
		return -1
	}
	return len(t.Rows[i])
}

// Cell returns the raw text at (row, col).
func (t *RawTable) Cell(row, col int) (string, error) {
	if row < 0 || row >= t.NumRows() {
		return "", core.NewMalformedTableError("row %d out of range (table has %d rows)", row, t.NumRows())
	}
	if col < 0 || col >= len(t.Rows[row]) {
		return "", core.NewMalformedTableError("column %d out of range in row %d (row has %d columns)", col, row, len(t.Rows[row]))
	}
	return t.Rows[row][col], nil
}

// Column returns column col for every data row; rows too short to hold it yield "".
func (t *RawTable) Column(col int) []string {
	out := make([]string, t.NumRows())
	for i, row := range t.Rows {
		if col >= 0 && col < len(row) {
			out[i] = row[col]
		}
	}
	return out
}

// ColumnName returns the header for col, or a positional name when the header is blank
func (t *RawTable) ColumnName(col int) string {
	if col >= 0 && col < len(t.Headers) && t.Headers[col] != "" {
		return t.Headers[col]
	}
	return "Unnamed: " + strconv.Itoa(col)
}

// Head returns up to n leading data rows
func (t *RawTable) Head(n int) [][]string {
	if n > t.NumRows() {
		n = t.NumRows()
	}
	if n < 0 {
		n = 0
	}
	return t.Rows[:n]
}
