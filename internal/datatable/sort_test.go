package datatable

import (
	"testing"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func names(records []Record, path string) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = Resolve(r, path)
	}
	return out
}

func TestSort_Example(t *testing.T) {
	records := exampleRecords()
	cmp := NewCollator("en")

	byName := Sort(records, "Name", Ascending, cmp)
	assert.Equal(t, []string{"A", "B"}, names(byName, "Name"))

	byAmount := Sort(records, "Amount", Ascending, cmp)
	assert.Equal(t, []string{"50", "100"}, names(byAmount, "Amount"))

	byAmountDesc := Sort(records, "Amount", Descending, cmp)
	assert.Equal(t, []string{"100", "50"}, names(byAmountDesc, "Amount"))
}

func TestSort_DoesNotReorderInput(t *testing.T) {
	records := exampleRecords()

	_ = Sort(records, "Name", Ascending, Binary)

	assert.Equal(t, []string{"B", "A"}, names(records, "Name"))
}

func TestSort_RecoverOriginalOrder(t *testing.T) {
	records := []Record{
		{"Index": 0, "Name": "delta"},
		{"Index": 1, "Name": "alpha"},
		{"Index": 2, "Name": "charlie"},
		{"Index": 3, "Name": "bravo"},
	}

	sorted := Sort(records, "Name", Descending, Binary)
	sorted = Sort(sorted, "Name", Ascending, Binary)
	restored := Sort(sorted, "Index", Ascending, Binary)

	assert.Equal(t, records, restored)
}

func TestSort_Idempotent(t *testing.T) {
	records := []Record{
		{"Name": "b", "Amount": 2},
		{"Name": "a", "Amount": 2},
		{"Name": "c", "Amount": 1},
		{"Name": "d", "Amount": "n/a"},
	}

	for _, dir := range []Direction{Ascending, Descending} {
		for _, path := range []string{"Name", "Amount"} {
			once := Sort(records, path, dir, Binary)
			twice := Sort(records, path, dir, Binary)
			assert.Equal(t, once, twice, "path=%s dir=%s", path, dir)
		}
	}
}

func TestSort_DirectNumericCoercion(t *testing.T) {
	records := []Record{
		{"Name": "ten", "Amount": "10"},
		{"Name": "two", "Amount": 2},
		{"Name": "yes", "Amount": true},
		{"Name": "float", "Amount": 2.5},
	}

	sorted := Sort(records, "Amount", Ascending, Binary)
	assert.Equal(t, []string{"yes", "two", "float", "ten"}, names(sorted, "Name"))
}

func TestSort_DirectNumericCoercion_NullValues(t *testing.T) {
	tests := []struct {
		name    string
		records []Record
		dir     Direction
		want    []string
	}{
		{
			name: "nil sorts as zero",
			records: []Record{
				{"Name": "five", "Amount": 5},
				{"Name": "null", "Amount": nil},
				{"Name": "neg", "Amount": -3},
			},
			dir:  Ascending,
			want: []string{"neg", "null", "five"},
		},
		{
			name: "nil does not stop the rest sorting",
			records: []Record{
				{"Name": "b", "Amount": 2},
				{"Name": "null", "Amount": nil},
				{"Name": "a", "Amount": 1},
			},
			dir:  Ascending,
			want: []string{"null", "a", "b"},
		},
		{
			name: "nil descending",
			records: []Record{
				{"Name": "null", "Amount": nil},
				{"Name": "a", "Amount": 1},
				{"Name": "b", "Amount": 2},
			},
			dir:  Descending,
			want: []string{"b", "a", "null"},
		},
		{
			name: "SQL NULL sorts as zero",
			records: []Record{
				{"Name": "five", "Amount": pgtype.Int8{Int64: 5, Valid: true}},
				{"Name": "null", "Amount": pgtype.Int8{}},
				{"Name": "neg", "Amount": pgtype.Int8{Int64: -3, Valid: true}},
			},
			dir:  Ascending,
			want: []string{"neg", "null", "five"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sorted := Sort(tt.records, "Amount", tt.dir, Binary)
			assert.Equal(t, tt.want, names(sorted, "Name"))
		})
	}
}

func TestSort_NilValueStillProjectsEmpty(t *testing.T) {
	rec := Record{"Amount": nil}

	_, ok := Lookup(rec, "Amount")
	assert.False(t, ok)
	assert.Equal(t, "", Resolve(rec, "Amount"))
}

func TestSort_DirectStringsUseComparer(t *testing.T) {
	records := []Record{
		{"Name": "beta"},
		{"Name": "Alpha"},
		{"Name": "alpha"},
		{"Name": "Beta"},
	}

	binary := Sort(records, "Name", Ascending, Binary)
	assert.Equal(t, []string{"Alpha", "Beta", "alpha", "beta"}, names(binary, "Name"))

	collated := Sort(records, "Name", Ascending, NewCollator("en"))
	got := names(collated, "Name")
	require.Len(t, got, 4)
	assert.ElementsMatch(t, []string{"Alpha", "alpha"}, got[:2])
	assert.ElementsMatch(t, []string{"Beta", "beta"}, got[2:])
}

func TestSort_Related(t *testing.T) {
	records := []Record{
		{"Name": "1", "Account": Record{"Name": "Beta"}},
		{"Name": "2", "Account": Record{"Name": "Alpha"}},
		{"Name": "3", "Account": Record{"Name": "Gamma"}},
	}

	asc := Sort(records, "Account.Name", Ascending, Binary)
	assert.Equal(t, []string{"2", "1", "3"}, names(asc, "Name"))

	desc := Sort(records, "Account.Name", Descending, Binary)
	assert.Equal(t, []string{"3", "1", "2"}, names(desc, "Name"))
}

func TestSort_RelatedDescendingEmptyRightHand(t *testing.T) {
	fp := ParsePath("Account.Name")
	cmp := relatedComparator(fp, Descending, Binary)

	empty := Record{"Account": Record{"Name": ""}}
	alsoEmpty := Record{"Account": Record{"Name": ""}}
	named := Record{"Account": Record{"Name": "Acme"}}
	absent := Record{"Account": Record{}}

	// A present empty right-hand value always orders the left-hand first,
	// even when both sides are empty.
	assert.Equal(t, -1, cmp(named, empty))
	assert.Equal(t, -1, cmp(empty, alsoEmpty))
	assert.Equal(t, -1, cmp(alsoEmpty, empty))

	// Absent values are not empty values.
	assert.Equal(t, 0, cmp(absent, absent))
	assert.Equal(t, 1, cmp(absent, named))

	ascending := relatedComparator(fp, Ascending, Binary)
	assert.Equal(t, 0, ascending(empty, alsoEmpty))
}

func TestSort_RelatedDescendingPlacesEmptyLast(t *testing.T) {
	records := []Record{
		{"Name": "1", "Account": Record{"Name": "A"}},
		{"Name": "2", "Account": Record{"Name": ""}},
		{"Name": "3", "Account": Record{"Name": "B"}},
	}

	desc := Sort(records, "Account.Name", Descending, Binary)
	assert.Equal(t, []string{"3", "1", "2"}, names(desc, "Name"))
}

func TestSort_RelatedDescendingSwapsEqualEmpties(t *testing.T) {
	records := []Record{
		{"Name": "1", "Account": Record{"Name": ""}},
		{"Name": "2", "Account": Record{"Name": ""}},
	}

	desc := Sort(records, "Account.Name", Descending, Binary)
	assert.Equal(t, []string{"2", "1"}, names(desc, "Name"))

	asc := Sort(records, "Account.Name", Ascending, Binary)
	assert.Equal(t, []string{"1", "2"}, names(asc, "Name"))
}

func TestSort_MissingRelationsDoNotPanic(t *testing.T) {
	records := []Record{
		{"Name": "1"},
		{"Name": "2", "Account": nil},
		{"Name": "3", "Account": Record{"Name": "Zed"}},
		{"Name": "4", "Account": "not a record"},
	}

	assert.NotPanics(t, func() {
		asc := Sort(records, "Account.Name", Ascending, Binary)
		assert.Equal(t, "3", asc[3]["Name"])
		Sort(records, "Account.Owner.Name", Descending, NewCollator("en"))
	})
}

func TestSort_EmptyPathKeepsOrder(t *testing.T) {
	records := exampleRecords()
	assert.Equal(t, records, Sort(records, "", Descending, nil))
}
