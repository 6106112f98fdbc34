package datatable

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
)

// stringValue reports whether v is a string-typed value and returns it.
// Numbers, booleans and dates are not strings even though they format as text.
func stringValue(v any) (string, bool) {
	switch val := v.(type) {
	case string:
		return val, true
	case pgtype.Text:
		return val.String, val.Valid
	}
	return "", false
}

// lexicalValue is the string used when a value is compared lexically.
// Absent values compare as "".
func lexicalValue(v any, present bool) string {
	if !present {
		return ""
	}
	if s, ok := stringValue(v); ok {
		return s
	}
	return Format(v)
}

// toNumber coerces a value for numeric comparison. Missing keys and strings
// that are not numbers become NaN; nil, SQL NULL and a blank string become 0.
func toNumber(v any, present bool) float64 {
	if !present {
		return math.NaN()
	}
	if isNull(v) {
		return 0
	}

	switch val := v.(type) {
	case bool:
		if val {
			return 1
		}
		return 0
	case int:
		return float64(val)
	case int8:
		return float64(val)
	case int16:
		return float64(val)
	case int32:
		return float64(val)
	case int64:
		return float64(val)
	case uint:
		return float64(val)
	case uint8:
		return float64(val)
	case uint16:
		return float64(val)
	case uint32:
		return float64(val)
	case uint64:
		return float64(val)
	case float32:
		return float64(val)
	case float64:
		return val
	case json.Number:
		return parseNumber(val.String())
	case string:
		return parseNumber(val)
	case time.Time:
		return float64(val.UnixMilli())

	case pgtype.Text:
		return parseNumber(val.String)
	case pgtype.Numeric:
		f, err := val.Float64Value()
		if err != nil || !f.Valid {
			return math.NaN()
		}
		return f.Float64
	case pgtype.Int2:
		return float64(val.Int16)
	case pgtype.Int4:
		return float64(val.Int32)
	case pgtype.Int8:
		return float64(val.Int64)
	case pgtype.Float8:
		return val.Float64
	case pgtype.Bool:
		if val.Bool {
			return 1
		}
		return 0
	case pgtype.Date:
		return float64(val.Time.UnixMilli())
	case pgtype.Timestamp:
		return float64(val.Time.UnixMilli())
	case pgtype.Timestamptz:
		return float64(val.Time.UnixMilli())
	}
	return math.NaN()
}

func parseNumber(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return math.NaN()
	}
	return f
}
