// Package datatable projects structured records onto a configurable set of
// columns and sorts them by one column at a time.
//
// It has no UI or transport dependencies. A [Table] is built once from a
// column configuration and a record list; the presentation layer reads
// projected rows from it and triggers sorts, nothing else.
//
// # Field Paths
//
// Columns address record fields with dot-delimited paths. A single segment
// reads a field of the record itself; more segments walk related records:
//
//	datatable.ColumnConfig{Label: "Account Name", FieldPath: "Account.Name"}
//
// Any missing key or nil value along the way resolves to an absent value,
// which projects as an empty cell. Present zero values such as 0, false or ""
// are never treated as absent.
//
// # Sorting
//
// Every sort starts from the record list the table was created with, never
// from the currently displayed order, so sorts on different columns do not
// compound. Direct fields compare lexically when both values are strings and
// numerically otherwise; related fields always compare lexically. String
// comparison goes through a [Comparer], by default a locale-aware [Collator].
//
// # Diagnostics
//
// Configuration problems never abort. An empty column configuration or
// record list leaves the table unavailable, records the problem in
// [Table.Diagnostics], and logs it on the configured slog.Logger.
package datatable
