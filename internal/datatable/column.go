package datatable

import "strconv"

// ColumnConfig is one caller-supplied column: a header label and the field
// path its cells are read from.
type ColumnConfig struct {
	Label     string `json:"label" yaml:"label"`
	FieldPath string `json:"fieldPath" yaml:"fieldPath"`
}

// ColumnID identifies a column for the lifetime of a table.
type ColumnID string

// Column is a normalized ColumnConfig. Columns are immutable once built.
type Column struct {
	ID        ColumnID `json:"id"`
	Label     string   `json:"label"`
	FieldPath string   `json:"fieldPath"`

	path FieldPath
}

// Path returns the parsed field path.
func (c Column) Path() FieldPath {
	return c.path
}

// NormalizeColumns assigns every column a stable, 1-based, order-derived id:
// col1, col2, ... Column order is preserved.
func NormalizeColumns(configs []ColumnConfig) []Column {
	columns := make([]Column, len(configs))
	for i, cfg := range configs {
		columns[i] = Column{
			ID:        ColumnID("col" + strconv.Itoa(i+1)),
			Label:     cfg.Label,
			FieldPath: cfg.FieldPath,
			path:      ParsePath(cfg.FieldPath),
		}
	}
	return columns
}

// ColumnState is a column together with its current sort state, as the
// presentation layer needs it to draw a header.
type ColumnState struct {
	Column
	Direction Direction `json:"direction"`
	Indicator Indicator `json:"indicator"`
	Active    bool      `json:"active"`
}
