package core

import (
	"context"

	"github.com/JonMunkholm/recordtable/internal/datatable"
)

// RecordSource loads the records of a view. Implementations live in the
// source package.
type RecordSource interface {
	Records(ctx context.Context) ([]datatable.Record, error)
	Describe() string
}

// ViewInfo contains display information about a view.
type ViewInfo struct {
	Key         string `json:"key"`         // Unique identifier: "opportunities"
	Group       string `json:"group"`       // Navigation group: "Sales"
	Label       string `json:"label"`       // Display name: "Opportunities"
	Description string `json:"description,omitempty"`
}

// ViewDefinition contains everything needed to open a table for a view.
type ViewDefinition struct {
	Info ViewInfo

	Header    string // Optional caption above the table
	SubHeader string // Optional second caption line

	Columns               []datatable.ColumnConfig
	IncludeSequenceNumber bool

	// Locale selects string collation for sorting. Empty uses the service default.
	Locale string

	Source RecordSource
}

// Snapshot is the state of one session as the presentation layer reads it.
type Snapshot struct {
	SessionID       string                  `json:"sessionId"`
	View            ViewInfo                `json:"view"`
	Header          string                  `json:"header,omitempty"`
	SubHeader       string                  `json:"subHeader,omitempty"`
	Available       bool                    `json:"available"`
	SequenceNumbers bool                    `json:"sequenceNumbers"`
	Columns         []datatable.ColumnState `json:"columns"`
	Rows            []datatable.Row         `json:"rows"`
	Diagnostics     []string                `json:"diagnostics,omitempty"`
}

// SortEnabled reports whether sort controls should be active.
func (s *Snapshot) SortEnabled() bool {
	return s.Available
}
