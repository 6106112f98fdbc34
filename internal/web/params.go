package web

// params.go parses sort requests from forms, query strings and JSON bodies.

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/JonMunkholm/recordtable/internal/datatable"
)

// maxSortBody bounds JSON sort request bodies.
const maxSortBody = 4 << 10

// sortRequestBody is the JSON body of an API sort request. Direction is
// optional; without it the column's stored direction is used.
type sortRequestBody struct {
	Column    string `json:"column"`
	Direction string `json:"direction"`
}

// parseSortForm reads column and dir from the form or query string.
// ok is false when dir is absent, meaning the stored direction applies.
func parseSortForm(r *http.Request) (req datatable.SortRequest, ok bool, err error) {
	if err := r.ParseForm(); err != nil {
		return req, false, fmt.Errorf("%w: %v", errBadRequest, err)
	}

	req.ColumnID = datatable.ColumnID(strings.TrimSpace(r.Form.Get("column")))
	dir := r.Form.Get("dir")
	if dir == "" {
		return req, false, nil
	}
	req.Direction = datatable.ParseDirection(dir)
	return req, true, nil
}

// parseSortJSON decodes a sortRequestBody.
func parseSortJSON(w http.ResponseWriter, r *http.Request) (req datatable.SortRequest, ok bool, err error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxSortBody)

	var body sortRequestBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil && err != io.EOF {
		return req, false, fmt.Errorf("%w: invalid sort body: %v", errBadRequest, err)
	}

	req.ColumnID = datatable.ColumnID(strings.TrimSpace(body.Column))
	if body.Direction == "" {
		return req, false, nil
	}
	req.Direction = datatable.ParseDirection(body.Direction)
	return req, true, nil
}
