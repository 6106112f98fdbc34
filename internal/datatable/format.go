package datatable

// format.go turns resolved values into display strings.
//
// Values keep their native type inside records so sorting can tell strings
// from numbers; only projection stringifies them. Formatting follows what a
// user expects to read in a cell:
//   - integers and floats in plain decimal form (100, 1.5, never 1e+21)
//   - booleans as "true" / "false"
//   - dates as YYYY-MM-DD, timestamps as RFC 3339
//   - SQL NULL and related records as an empty cell

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
)

const dateLayout = "2006-01-02"

// Format converts a resolved value to its display string.
func Format(v any) string {
	if isNull(v) {
		return ""
	}

	switch val := v.(type) {
	case string:
		return val
	case bool:
		return strconv.FormatBool(val)
	case int:
		return strconv.Itoa(val)
	case int8:
		return strconv.FormatInt(int64(val), 10)
	case int16:
		return strconv.FormatInt(int64(val), 10)
	case int32:
		return strconv.FormatInt(int64(val), 10)
	case int64:
		return strconv.FormatInt(val, 10)
	case uint:
		return strconv.FormatUint(uint64(val), 10)
	case uint8:
		return strconv.FormatUint(uint64(val), 10)
	case uint16:
		return strconv.FormatUint(uint64(val), 10)
	case uint32:
		return strconv.FormatUint(uint64(val), 10)
	case uint64:
		return strconv.FormatUint(val, 10)
	case float32:
		return formatFloat(float64(val), 32)
	case float64:
		return formatFloat(val, 64)
	case json.Number:
		return val.String()
	case time.Time:
		if val.IsZero() {
			return ""
		}
		return val.Format(time.RFC3339)

	case pgtype.Text:
		return val.String
	case pgtype.Numeric:
		f, err := val.Float64Value()
		if err != nil || !f.Valid {
			return ""
		}
		return formatFloat(f.Float64, 64)
	case pgtype.Int2:
		return strconv.FormatInt(int64(val.Int16), 10)
	case pgtype.Int4:
		return strconv.FormatInt(int64(val.Int32), 10)
	case pgtype.Int8:
		return strconv.FormatInt(val.Int64, 10)
	case pgtype.Float8:
		return formatFloat(val.Float64, 64)
	case pgtype.Bool:
		return strconv.FormatBool(val.Bool)
	case pgtype.Date:
		return val.Time.Format(dateLayout)
	case pgtype.Timestamp:
		return val.Time.Format(time.RFC3339)
	case pgtype.Timestamptz:
		return val.Time.Format(time.RFC3339)

	// A path that stops on a related record has no single value to show.
	case Record, map[string]any, map[string]string:
		return ""

	case fmt.Stringer:
		return val.String()
	default:
		return fmt.Sprint(v)
	}
}

func formatFloat(f float64, bitSize int) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	}
	return strconv.FormatFloat(f, 'f', -1, bitSize)
}
