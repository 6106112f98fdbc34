package datatable

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func exampleColumns() []Column {
	return NormalizeColumns([]ColumnConfig{
		{Label: "Name", FieldPath: "Name"},
		{Label: "Amount", FieldPath: "Amount"},
	})
}

func exampleRecords() []Record {
	return []Record{
		{"Name": "B", "Amount": 50},
		{"Name": "A", "Amount": 100},
	}
}

func values(rows []Row) [][]string {
	out := make([][]string, len(rows))
	for i, r := range rows {
		for _, c := range r.Cells {
			out[i] = append(out[i], c.Value)
		}
	}
	return out
}

func TestNormalizeColumns(t *testing.T) {
	cols := NormalizeColumns([]ColumnConfig{
		{Label: "Opportunity Name", FieldPath: "Name"},
		{Label: "Account Name", FieldPath: "Account.Name"},
		{Label: "Amount", FieldPath: "Amount"},
	})

	require.Len(t, cols, 3)
	assert.Equal(t, ColumnID("col1"), cols[0].ID)
	assert.Equal(t, ColumnID("col2"), cols[1].ID)
	assert.Equal(t, ColumnID("col3"), cols[2].ID)
	assert.Equal(t, "Account Name", cols[1].Label)
	assert.Equal(t, FieldPath{"Account", "Name"}, cols[1].Path())
}

func TestProject_Completeness(t *testing.T) {
	for _, n := range []int{1, 2, 17} {
		for _, seq := range []bool{false, true} {
			t.Run(fmt.Sprintf("records=%d seq=%v", n, seq), func(t *testing.T) {
				records := make([]Record, n)
				for i := range records {
					records[i] = Record{"Name": fmt.Sprintf("r%d", i), "Amount": i}
				}
				cols := exampleColumns()

				rows, err := Project(records, cols, ProjectOptions{IncludeSequenceNumber: seq})
				require.NoError(t, err)
				require.Len(t, rows, n)

				want := len(cols)
				if seq {
					want++
				}
				for i, row := range rows {
					require.Len(t, row.Cells, want)
					offset := 0
					if seq {
						assert.Equal(t, Cell{Label: SequenceLabel, Value: fmt.Sprint(i + 1)}, row.Cells[0])
						offset = 1
					}
					for j, col := range cols {
						assert.Equal(t, col.Label, row.Cells[offset+j].Label)
					}
				}
			})
		}
	}
}

func TestProject_Example(t *testing.T) {
	rows, err := Project(exampleRecords(), exampleColumns(), ProjectOptions{})
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"B", "50"}, {"A", "100"}}, values(rows))
}

func TestProject_MissingFieldsAreBlank(t *testing.T) {
	cols := NormalizeColumns([]ColumnConfig{
		{Label: "Name", FieldPath: "Name"},
		{Label: "Owner", FieldPath: "Account.Owner.Name"},
	})
	records := []Record{
		{"Name": "with owner", "Account": Record{"Owner": Record{"Name": "Dana"}}},
		{"Name": "no account"},
		{"Account": Record{"Owner": nil}},
	}

	rows, err := Project(records, cols, ProjectOptions{})
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"with owner", "Dana"},
		{"no account", ""},
		{"", ""},
	}, values(rows))
}

func TestProject_EmptyInput(t *testing.T) {
	rows, err := Project(nil, exampleColumns(), ProjectOptions{})
	assert.ErrorIs(t, err, ErrNoRecords)
	assert.Empty(t, rows)

	rows, err = Project(exampleRecords(), nil, ProjectOptions{IncludeSequenceNumber: true})
	assert.ErrorIs(t, err, ErrNoColumns)
	assert.Empty(t, rows)
}
