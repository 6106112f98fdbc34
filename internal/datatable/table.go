package datatable

import (
	"log/slog"
	"slices"
)

// Config is everything a Table is initialized with.
type Config struct {
	Columns []ColumnConfig
	Records []Record

	// Header and SubHeader are optional captions shown above the table.
	Header    string
	SubHeader string

	IncludeSequenceNumber bool

	// Comparer orders strings during sorting. Defaults to a Collator for
	// DefaultLocale.
	Comparer Comparer

	// Logger receives diagnostics. Defaults to slog.Default().
	Logger *slog.Logger
}

// SortRequest is a sort triggered by the presentation layer, usually carrying
// the direction it last read from ColumnState.
type SortRequest struct {
	ColumnID  ColumnID  `json:"column"`
	Direction Direction `json:"direction"`
}

// Table owns a column configuration, the canonical record list and the
// current sort state, and keeps the projected rows in sync with them.
//
// A Table is not safe for concurrent use.
type Table struct {
	columns   []Column
	records   []Record // canonical order, never reordered
	ordered   []Record // currently displayed order
	rows      []Row
	state     SortState
	available bool

	header    string
	subHeader string
	opts      ProjectOptions

	cmp         Comparer
	logger      *slog.Logger
	diagnostics []error
}

// New validates cfg and builds the initial projection. Missing columns or
// records do not fail: the table reports itself unavailable and records a
// diagnostic instead.
func New(cfg Config) *Table {
	t := &Table{
		header:    cfg.Header,
		subHeader: cfg.SubHeader,
		opts:      ProjectOptions{IncludeSequenceNumber: cfg.IncludeSequenceNumber},
		cmp:       cfg.Comparer,
		logger:    cfg.Logger,
	}
	if t.cmp == nil {
		t.cmp = NewCollator(DefaultLocale)
	}
	if t.logger == nil {
		t.logger = slog.Default()
	}

	if len(cfg.Columns) == 0 {
		t.report(ErrNoColumns)
		return t
	}
	t.columns = NormalizeColumns(cfg.Columns)
	t.state = NewSortState(t.columns)

	if len(cfg.Records) == 0 {
		t.report(ErrNoRecords)
		return t
	}
	t.records = slices.Clone(cfg.Records)

	if err := t.render(t.records); err != nil {
		t.report(err)
		return t
	}
	t.available = true
	return t
}

// Sort orders the canonical records by the requested column and direction,
// re-projects them, and flips the column's stored direction for the next
// sort. An unknown column falls back to the first column. Sorting an
// unavailable table does nothing.
func (t *Table) Sort(req SortRequest) []Row {
	if !t.available {
		t.logger.Debug("datatable: sort ignored, no data available", "column", req.ColumnID)
		return nil
	}

	col := t.column(req.ColumnID)
	dir := req.Direction
	if dir != Descending {
		dir = Ascending
	}

	sorted := Sort(t.records, col.FieldPath, dir, t.cmp)
	if err := t.render(sorted); err != nil {
		t.report(err)
		return t.rows
	}

	t.state = t.state.Toggle(col.ID)
	t.logger.Debug("datatable: sorted",
		"column", col.ID,
		"field_path", col.FieldPath,
		"direction", dir,
		"rows", len(t.rows),
	)
	return t.rows
}

// Toggle sorts by id using the direction stored in the table's sort state.
// Calling it twice on the same column reverses the order.
func (t *Table) Toggle(id ColumnID) []Row {
	if !t.available {
		return t.Sort(SortRequest{ColumnID: id})
	}
	col := t.column(id)
	return t.Sort(SortRequest{ColumnID: col.ID, Direction: t.state.Direction(col.ID)})
}

// Rows returns the projected rows in display order.
func (t *Table) Rows() []Row {
	return t.rows
}

// Records returns the canonical record list in its original order.
func (t *Table) Records() []Record {
	return slices.Clone(t.records)
}

// Ordered returns the records in the order currently displayed.
func (t *Table) Ordered() []Record {
	return slices.Clone(t.ordered)
}

// Columns returns every column with its current sort state.
func (t *Table) Columns() []ColumnState {
	states := make([]ColumnState, len(t.columns))
	for i, c := range t.columns {
		dir := t.state.Direction(c.ID)
		states[i] = ColumnState{
			Column:    c,
			Direction: dir,
			Indicator: dir.Indicator(),
			Active:    t.state.Active() == c.ID,
		}
	}
	return states
}

// State returns the current sort state.
func (t *Table) State() SortState {
	return t.state
}

// Available reports whether the table has data to display. The presentation
// layer shows an empty state and disables sorting when it is false.
func (t *Table) Available() bool {
	return t.available
}

// Diagnostics returns the configuration problems found so far.
func (t *Table) Diagnostics() []error {
	return slices.Clone(t.diagnostics)
}

func (t *Table) Header() string    { return t.header }
func (t *Table) SubHeader() string { return t.subHeader }

// SequenceNumbers reports whether rows carry a leading sequence number cell.
func (t *Table) SequenceNumbers() bool {
	return t.opts.IncludeSequenceNumber
}

// column finds id, falling back to the first column.
func (t *Table) column(id ColumnID) Column {
	for _, c := range t.columns {
		if c.ID == id {
			return c
		}
	}
	if id != "" {
		t.logger.Debug("datatable: unknown column, using first column", "column", id)
	}
	return t.columns[0]
}

func (t *Table) render(records []Record) error {
	rows, err := Project(records, t.columns, t.opts)
	if err != nil {
		return err
	}
	t.ordered = records
	t.rows = rows
	return nil
}

func (t *Table) report(err error) {
	t.diagnostics = append(t.diagnostics, err)
	t.logger.Error("datatable: "+err.Error(),
		"columns", len(t.columns),
		"records", len(t.records),
	)
}
