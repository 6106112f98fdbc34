package datatable

import (
	"math/big"
	"testing"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/assert"
)

func opportunity() Record {
	return Record{
		"Name":        "Acme Renewal",
		"Amount":      0,
		"IsClosed":    false,
		"Description": "",
		"Stage":       nil,
		"Account": map[string]any{
			"Name": "Acme",
			"Owner": Record{
				"Name":  "Dana",
				"Email": nil,
			},
			"Region": map[string]string{"Code": "EMEA"},
			"Rating": 4,
		},
	}
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name string
		path string
		want string
	}{
		{name: "direct string", path: "Name", want: "Acme Renewal"},
		{name: "direct zero is present", path: "Amount", want: "0"},
		{name: "direct false is present", path: "IsClosed", want: "false"},
		{name: "direct empty string", path: "Description", want: ""},
		{name: "direct nil", path: "Stage", want: ""},
		{name: "direct missing", path: "CloseDate", want: ""},
		{name: "related", path: "Account.Name", want: "Acme"},
		{name: "related number", path: "Account.Rating", want: "4"},
		{name: "three segments", path: "Account.Owner.Name", want: "Dana"},
		{name: "three segments nil leaf", path: "Account.Owner.Email", want: ""},
		{name: "missing intermediate", path: "Account.Parent.Name", want: ""},
		{name: "missing root relation", path: "Contact.Owner.Name", want: ""},
		{name: "scalar intermediate", path: "Name.Length", want: ""},
		{name: "string map", path: "Account.Region.Code", want: "EMEA"},
		{name: "empty path", path: "", want: ""},
	}

	rec := opportunity()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Resolve(rec, tt.path))
		})
	}
}

func TestLookup_DistinguishesAbsentFromEmpty(t *testing.T) {
	rec := opportunity()

	v, ok := Lookup(rec, "Description")
	assert.True(t, ok)
	assert.Equal(t, "", v)

	_, ok = Lookup(rec, "Account.Parent.Name")
	assert.False(t, ok)

	_, ok = Lookup(nil, "Name")
	assert.False(t, ok)
}

func TestLookup_SQLNullIsAbsent(t *testing.T) {
	rec := Record{
		"Name":   pgtype.Text{},
		"Amount": pgtype.Numeric{Int: big.NewInt(12345), Exp: -2, Valid: true},
	}

	_, ok := Lookup(rec, "Name")
	assert.False(t, ok)
	assert.Equal(t, "123.45", Resolve(rec, "Amount"))
}

func TestParsePath(t *testing.T) {
	assert.Nil(t, ParsePath(""))
	assert.Equal(t, FieldPath{"Name"}, ParsePath("Name"))
	assert.False(t, ParsePath("Name").Related())

	p := ParsePath("Account.Owner.Name")
	assert.Equal(t, FieldPath{"Account", "Owner", "Name"}, p)
	assert.True(t, p.Related())
	assert.Equal(t, "Account.Owner.Name", p.String())
}

func TestResolve_PathStoppingOnRelation(t *testing.T) {
	rec := Record{"Account": Record{"Name": "Acme"}}

	assert.Equal(t, "", Resolve(rec, "Account"))

	v, ok := Lookup(rec, "Account")
	assert.True(t, ok)
	assert.Equal(t, Record{"Name": "Acme"}, v)
}
