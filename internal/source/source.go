// Package source loads the records a view displays.
//
// Every source returns records in the order the underlying data produced
// them; that order is the canonical order the datatable engine sorts from.
package source

import (
	"context"
	"slices"

	"github.com/JonMunkholm/recordtable/internal/datatable"
)

// Inline serves records embedded directly in a view definition.
type Inline struct {
	Rows []datatable.Record
}

// Records returns a copy of the embedded records.
func (s Inline) Records(ctx context.Context) ([]datatable.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return slices.Clone(s.Rows), nil
}

func (s Inline) Describe() string {
	return "inline"
}
