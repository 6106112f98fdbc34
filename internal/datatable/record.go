package datatable

import "github.com/jackc/pgx/v5/pgtype"

// Record is a single row of source data. Values are scalars or nested
// key-value containers holding related records.
type Record map[string]any

// Lookup walks path through rec and returns the value it names.
// The second result is false when any segment is missing or nil.
func Lookup(rec Record, path string) (any, bool) {
	return lookupPath(rec, ParsePath(path))
}

// Resolve returns the display value of path in rec, or "" when absent.
func Resolve(rec Record, path string) string {
	return resolvePath(rec, ParsePath(path))
}

func resolvePath(rec Record, path FieldPath) string {
	v, ok := lookupPath(rec, path)
	if !ok {
		return ""
	}
	return Format(v)
}

func lookupPath(rec Record, path FieldPath) (any, bool) {
	v, ok := lookupKey(rec, path)
	if !ok || isNull(v) {
		return nil, false
	}
	return v, true
}

// lookupKey walks path like lookupPath but only requires the last key to
// exist: a present nil or SQL NULL leaf is returned with ok set. Missing keys
// and nil intermediate values are still absent.
func lookupKey(rec Record, path FieldPath) (any, bool) {
	if rec == nil || len(path) == 0 {
		return nil, false
	}

	var cur any = rec
	for i, segment := range path {
		next, ok := field(cur, segment)
		if !ok {
			return nil, false
		}
		if i < len(path)-1 && isNull(next) {
			return nil, false
		}
		cur = next
	}
	return cur, true
}

// field reads key from a key-value container using key existence, not
// truthiness. Scalars have no fields.
func field(container any, key string) (any, bool) {
	switch m := container.(type) {
	case Record:
		v, ok := m[key]
		return v, ok
	case map[string]any:
		v, ok := m[key]
		return v, ok
	case map[string]string:
		v, ok := m[key]
		return v, ok
	default:
		return nil, false
	}
}

// isNull reports nil and SQL NULL values.
func isNull(v any) bool {
	switch val := v.(type) {
	case nil:
		return true
	case pgtype.Text:
		return !val.Valid
	case pgtype.Numeric:
		return !val.Valid
	case pgtype.Int2:
		return !val.Valid
	case pgtype.Int4:
		return !val.Valid
	case pgtype.Int8:
		return !val.Valid
	case pgtype.Float8:
		return !val.Valid
	case pgtype.Bool:
		return !val.Valid
	case pgtype.Date:
		return !val.Valid
	case pgtype.Timestamp:
		return !val.Valid
	case pgtype.Timestamptz:
		return !val.Valid
	}
	return false
}
