// Package templates renders the HTML for the table server. Components live in
// the .templ files; regenerate the _templ.go files with `templ generate` after
// editing them. Every dynamic string is HTML-escaped on output.
package templates

import (
	"net/url"

	"github.com/JonMunkholm/recordtable/internal/core"
	"github.com/a-h/templ"
)

// TableID is the element id of the table section, the swap target for
// partial updates.
const TableID = "record-table"

// NoDataMessage is shown in place of rows when a table is unavailable.
const NoDataMessage = "No data available"

// ViewGroup is one navigation group on the view list.
type ViewGroup struct {
	Name  string
	Views []core.ViewInfo
}

// tableTitle is the page title for a session: the header, else the view label.
func tableTitle(snap *core.Snapshot) string {
	if snap.Header != "" {
		return snap.Header
	}
	return snap.View.Label
}

// emptySpan is the colspan of the empty-state row.
func emptySpan(snap *core.Snapshot) int {
	span := len(snap.Columns)
	if snap.SequenceNumbers {
		span++
	}
	return max(span, 1)
}

func viewURL(key string) templ.SafeURL {
	return templ.URL("/views/" + url.PathEscape(key))
}

func sortURL(sessionID string) templ.SafeURL {
	return templ.URL("/sessions/" + url.PathEscape(sessionID) + "/sort")
}
