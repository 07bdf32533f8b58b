package ports

import (
	"context"

	"trackplume/domain/table"
)

// TableReader loads a spreadsheet into a RawTable.
// Implementations consume the header row; RawTable.Rows holds data rows only.
type TableReader interface {
	ReadTable(ctx context.Context) (*table.RawTable, error)
}
