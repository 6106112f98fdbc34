// Package core provides the view registry and the session service that sits
// between the datatable engine and any presentation layer.
//
// It has no UI or transport dependencies; web handlers, CLI tools and tests
// use it the same way.
//
// # Views
//
// A [ViewDefinition] names a column configuration, display options and the
// [RecordSource] its records come from. Views are registered once at startup,
// usually from definition files:
//
//	core.Register(core.ViewDefinition{
//	    Info: core.ViewInfo{Key: "opportunities", Group: "Sales", Label: "Opportunities"},
//	    Columns: []datatable.ColumnConfig{
//	        {Label: "Opportunity Name", FieldPath: "Name"},
//	        {Label: "Account Name", FieldPath: "Account.Name"},
//	    },
//	    Source: source.JSONFile{Path: "views/opportunities.json"},
//	})
//
// # Sessions
//
// Every viewer gets its own table instance, identified by a session id:
//
//  1. [Service.OpenSession] loads the view's records and builds the table
//  2. [Service.Sort] and [Service.Toggle] re-sort it from the original records
//  3. [Service.Snapshot] reads the current rows and column state
//  4. Idle sessions are dropped by [Service.StartSessionSweeper]
//
// Requests on different sessions run concurrently; requests on one session
// are serialized, since a datatable.Table is not safe for concurrent use.
//
// # Error Handling
//
// Technical errors are mapped to user-friendly messages using [MapError].
// Each error category has a unique code for support reference:
//
//   - VIEW001-VIEW002: View lookup and registration
//   - SES001-SES003: Session lookup and capacity
//   - REQ001-REQ003: Malformed requests
//   - SRC001-SRC004: Record source failures
//   - DEF001-DEF003: View definition files
package core
