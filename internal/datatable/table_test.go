package datatable

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newExampleTable(t *testing.T) *Table {
	t.Helper()
	table := New(Config{
		Columns: []ColumnConfig{
			{Label: "Name", FieldPath: "Name"},
			{Label: "Amount", FieldPath: "Amount"},
		},
		Records: exampleRecords(),
		Header:  "Opportunities",
		Logger:  quietLogger(),
	})
	require.True(t, table.Available())
	return table
}

func TestNew_Example(t *testing.T) {
	table := newExampleTable(t)

	assert.Equal(t, [][]string{{"B", "50"}, {"A", "100"}}, values(table.Rows()))
	assert.Equal(t, "Opportunities", table.Header())
	assert.Empty(t, table.Diagnostics())

	cols := table.Columns()
	require.Len(t, cols, 2)
	for _, c := range cols {
		assert.Equal(t, Ascending, c.Direction)
		assert.Equal(t, IndicatorUp, c.Indicator)
		assert.False(t, c.Active)
	}
}

func TestTable_SortExample(t *testing.T) {
	table := newExampleTable(t)

	rows := table.Sort(SortRequest{ColumnID: "col1", Direction: Ascending})
	assert.Equal(t, [][]string{{"A", "100"}, {"B", "50"}}, values(rows))

	rows = table.Sort(SortRequest{ColumnID: "col2", Direction: Ascending})
	assert.Equal(t, [][]string{{"B", "50"}, {"A", "100"}}, values(rows))
}

func TestTable_ToggleReverses(t *testing.T) {
	table := New(Config{
		Columns: []ColumnConfig{{Label: "Name", FieldPath: "Name"}},
		Records: []Record{{"Name": "c"}, {"Name": "a"}, {"Name": "b"}},
		Logger:  quietLogger(),
	})

	first := values(table.Toggle("col1"))
	assert.Equal(t, [][]string{{"a"}, {"b"}, {"c"}}, first)

	col := table.Columns()[0]
	assert.True(t, col.Active)
	assert.Equal(t, Descending, col.Direction)
	assert.Equal(t, IndicatorDown, col.Indicator)

	second := values(table.Toggle("col1"))
	assert.Equal(t, [][]string{{"c"}, {"b"}, {"a"}}, second)
	assert.Equal(t, Ascending, table.Columns()[0].Direction)
}

func TestTable_SortFlipsStoredDirection(t *testing.T) {
	table := newExampleTable(t)

	// The request carries its own direction; the stored one still flips.
	table.Sort(SortRequest{ColumnID: "col2", Direction: Descending})
	assert.Equal(t, Descending, table.State().Direction("col2"))
	assert.Equal(t, Ascending, table.State().Direction("col1"))
	assert.Equal(t, ColumnID("col2"), table.State().Active())
}

func TestTable_UnknownColumnUsesFirst(t *testing.T) {
	table := newExampleTable(t)

	rows := table.Sort(SortRequest{ColumnID: "col99", Direction: Ascending})
	assert.Equal(t, [][]string{{"A", "100"}, {"B", "50"}}, values(rows))
	assert.Equal(t, ColumnID("col1"), table.State().Active())
}

func TestTable_InvalidDirectionSortsAscending(t *testing.T) {
	table := newExampleTable(t)

	rows := table.Sort(SortRequest{ColumnID: "col2", Direction: "sideways"})
	assert.Equal(t, [][]string{{"B", "50"}, {"A", "100"}}, values(rows))
}

func TestTable_SortsFromCanonicalRecords(t *testing.T) {
	records := []Record{
		{"Index": 0, "Group": "x", "Name": "b"},
		{"Index": 1, "Group": "y", "Name": "a"},
		{"Index": 2, "Group": "x", "Name": "a"},
	}
	table := New(Config{
		Columns: []ColumnConfig{
			{Label: "Group", FieldPath: "Group"},
			{Label: "Name", FieldPath: "Name"},
		},
		Records:  records,
		Comparer: Binary,
		Logger:   quietLogger(),
	})

	table.Sort(SortRequest{ColumnID: "col2"})
	rows := table.Sort(SortRequest{ColumnID: "col1"})

	// Equal groups keep canonical order, not the order of the previous sort.
	assert.Equal(t, [][]string{{"x", "b"}, {"x", "a"}, {"y", "a"}}, values(rows))
	assert.Equal(t, records, table.Records())
	assert.Equal(t, []any{0, 2, 1}, []any{
		table.Ordered()[0]["Index"],
		table.Ordered()[1]["Index"],
		table.Ordered()[2]["Index"],
	})
}

func TestTable_CallerSliceReorderIsIgnored(t *testing.T) {
	records := exampleRecords()
	table := New(Config{
		Columns: []ColumnConfig{{Label: "Name", FieldPath: "Name"}},
		Records: records,
		Logger:  quietLogger(),
	})

	records[0], records[1] = records[1], records[0]

	assert.Equal(t, "B", table.Records()[0]["Name"])
}

func TestTable_SequenceNumbersFollowDisplayOrder(t *testing.T) {
	table := New(Config{
		Columns:               []ColumnConfig{{Label: "Name", FieldPath: "Name"}},
		Records:               exampleRecords(),
		IncludeSequenceNumber: true,
		Logger:                quietLogger(),
	})

	assert.Equal(t, [][]string{{"1", "B"}, {"2", "A"}}, values(table.Rows()))
	assert.Equal(t, [][]string{{"1", "A"}, {"2", "B"}}, values(table.Toggle("col1")))
	assert.True(t, table.SequenceNumbers())
}

func TestNew_EmptyRecords(t *testing.T) {
	table := New(Config{
		Columns: []ColumnConfig{{Label: "Name", FieldPath: "Name"}},
		Logger:  quietLogger(),
	})

	assert.False(t, table.Available())
	assert.Empty(t, table.Rows())
	require.Len(t, table.Diagnostics(), 1)
	assert.ErrorIs(t, table.Diagnostics()[0], ErrNoRecords)
	assert.Len(t, table.Columns(), 1)

	assert.NotPanics(t, func() {
		assert.Nil(t, table.Sort(SortRequest{ColumnID: "col1"}))
		assert.Nil(t, table.Toggle("col1"))
	})
}

func TestNew_EmptyColumns(t *testing.T) {
	table := New(Config{
		Records: exampleRecords(),
		Logger:  quietLogger(),
	})

	assert.False(t, table.Available())
	assert.Empty(t, table.Rows())
	assert.Empty(t, table.Columns())
	require.Len(t, table.Diagnostics(), 1)
	assert.ErrorIs(t, table.Diagnostics()[0], ErrNoColumns)

	assert.NotPanics(t, func() {
		table.Toggle("col1")
	})
}
