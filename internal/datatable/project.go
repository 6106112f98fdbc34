package datatable

import (
	"errors"
	"strconv"
)

// SequenceLabel is the label of the optional leading sequence number cell.
const SequenceLabel = "S.No."

var (
	// ErrNoColumns is reported when a table has no column configuration.
	ErrNoColumns = errors.New("column configuration is required")

	// ErrNoRecords is reported when a table has no records to show.
	ErrNoRecords = errors.New("record list is required")
)

// Cell is one projected value together with the label of its column.
type Cell struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Row is the projection of a single record, one cell per column.
type Row struct {
	Cells []Cell `json:"cells"`
}

// ProjectOptions controls optional projection output.
type ProjectOptions struct {
	// IncludeSequenceNumber prefixes every row with a 1-based counter cell.
	IncludeSequenceNumber bool
}

// Project builds one row per record, in record order, with one cell per
// column, in column order. With no columns or no records it returns no rows
// and ErrNoColumns or ErrNoRecords; it never returns partial output.
func Project(records []Record, columns []Column, opts ProjectOptions) ([]Row, error) {
	if len(columns) == 0 {
		return nil, ErrNoColumns
	}
	if len(records) == 0 {
		return nil, ErrNoRecords
	}

	width := len(columns)
	if opts.IncludeSequenceNumber {
		width++
	}

	rows := make([]Row, len(records))
	for i, rec := range records {
		cells := make([]Cell, 0, width)
		if opts.IncludeSequenceNumber {
			cells = append(cells, Cell{Label: SequenceLabel, Value: strconv.Itoa(i + 1)})
		}
		for _, col := range columns {
			cells = append(cells, Cell{
				Label: col.Label,
				Value: resolvePath(rec, col.path),
			})
		}
		rows[i] = Row{Cells: cells}
	}
	return rows, nil
}
