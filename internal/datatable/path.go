package datatable

import "strings"

// FieldPath is a field path split into its segments.
// "Account.Owner.Name" -> ["Account", "Owner", "Name"]
type FieldPath []string

// ParsePath splits a dot-delimited field path. An empty path yields nil.
func ParsePath(path string) FieldPath {
	if path == "" {
		return nil
	}
	return strings.Split(path, ".")
}

// Related reports whether the path traverses at least one relation.
func (p FieldPath) Related() bool {
	return len(p) > 1
}

func (p FieldPath) String() string {
	return strings.Join(p, ".")
}
