package source

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/JonMunkholm/recordtable/internal/datatable"
	"github.com/jackc/pgx/v5"
)

// Querier is the part of *pgxpool.Pool and pgx.Tx a Postgres source needs.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// Postgres loads records with a SQL query. Related fields are selected with
// dotted aliases and nested back into related records:
//
//	SELECT o.name AS "Name", a.name AS "Account.Name"
//	FROM opportunity o LEFT JOIN account a ON a.id = o.account_id
//	ORDER BY o.close_date
type Postgres struct {
	DB    Querier
	Query string
	Args  []any
}

// Records runs the query and converts every row.
func (s Postgres) Records(ctx context.Context) ([]datatable.Record, error) {
	rows, err := s.DB.Query(ctx, s.Query, s.Args...)
	if err != nil {
		return nil, fmt.Errorf("query records: %w", err)
	}

	maps, err := pgx.CollectRows(rows, pgx.RowToMap)
	if err != nil {
		return nil, fmt.Errorf("query records: %w", err)
	}

	records := make([]datatable.Record, len(maps))
	for i, m := range maps {
		records[i] = Unflatten(m)
	}
	return records, nil
}

func (s Postgres) Describe() string {
	return "postgres"
}

// Unflatten nests dotted keys into related records:
//
//	{"Name": "Renewal", "Account.Name": "Acme"}
//	-> {"Name": "Renewal", "Account": {"Name": "Acme"}}
//
// When a plain key and a dotted key share a prefix, the nested record wins.
func Unflatten(flat map[string]any) datatable.Record {
	keys := make([]string, 0, len(flat))
	for k := range flat {
		keys = append(keys, k)
	}
	// Plain keys sort before the dotted keys they prefix.
	slices.Sort(keys)

	rec := make(datatable.Record, len(flat))
	for _, k := range keys {
		segments := strings.Split(k, ".")
		cur := rec
		for _, seg := range segments[:len(segments)-1] {
			next, ok := cur[seg].(datatable.Record)
			if !ok {
				next = datatable.Record{}
				cur[seg] = next
			}
			cur = next
		}
		cur[segments[len(segments)-1]] = flat[k]
	}
	return rec
}
