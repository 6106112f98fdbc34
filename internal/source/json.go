package source

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/JonMunkholm/recordtable/internal/datatable"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// JSONFile reads records from a file holding a JSON array of objects.
// Nested objects become related records; numbers keep full precision.
type JSONFile struct {
	Path string
}

// Records reads and decodes the file on every call.
func (s JSONFile) Records(ctx context.Context) ([]datatable.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(s.Path)
	if err != nil {
		return nil, fmt.Errorf("read records file %s: %w", s.Path, err)
	}
	defer f.Close()

	records, err := DecodeJSON(NewTextReader(f))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.Path, err)
	}
	return records, nil
}

func (s JSONFile) Describe() string {
	return "json:" + s.Path
}

// DecodeJSON decodes a JSON array of objects into records.
func DecodeJSON(r io.Reader) ([]datatable.Record, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	var raw []map[string]any
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode records: %w", err)
	}

	records := make([]datatable.Record, len(raw))
	for i, m := range raw {
		records[i] = datatable.Record(m)
	}
	return records, nil
}

// NewTextReader decodes r to UTF-8. A UTF-8 or UTF-16 byte order mark selects
// the encoding and is dropped; without one the input is read as UTF-8.
// Invalid UTF-8 sequences become U+FFFD.
func NewTextReader(r io.Reader) io.Reader {
	return transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder()))
}
