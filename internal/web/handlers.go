package web

import (
	"net/http"

	"github.com/JonMunkholm/recordtable/internal/core"
	"github.com/JonMunkholm/recordtable/internal/datatable"
	"github.com/JonMunkholm/recordtable/internal/logging"
	"github.com/JonMunkholm/recordtable/internal/web/templates"
	"github.com/go-chi/chi/v5"
)

// handleViewList renders the list of registered views.
func (s *Server) handleViewList(w http.ResponseWriter, r *http.Request) {
	var groups []templates.ViewGroup
	for _, name := range core.Groups() {
		var views []core.ViewInfo
		for _, def := range core.ByGroup(name) {
			views = append(views, def.Info)
		}
		groups = append(groups, templates.ViewGroup{Name: name, Views: views})
	}

	templates.ViewList(groups).Render(r.Context(), w)
}

// handleOpenView opens a new session for a view and renders the full page.
func (s *Server) handleOpenView(w http.ResponseWriter, r *http.Request) {
	snap, err := s.service.OpenSession(withViewer(r), chi.URLParam(r, "viewKey"))
	if err != nil {
		s.respondError(w, r, err, 0)
		return
	}

	logging.WithFields(r.Context(), "session_id", snap.SessionID, "view", snap.View.Key).
		Info("table opened", "available", snap.Available, "rows", len(snap.Rows))

	templates.TableView(snap).Render(r.Context(), w)
}

// handleTable re-renders a session's table: the partial for HTMX, the full
// page otherwise.
func (s *Server) handleTable(w http.ResponseWriter, r *http.Request) {
	snap, err := s.service.Snapshot(r.Context(), chi.URLParam(r, "sessionID"))
	if err != nil {
		s.respondError(w, r, err, 0)
		return
	}
	s.renderTable(w, r, snap)
}

// handleSort sorts a session's table from a form post. Plain form posts are
// redirected back to the table so a reload does not sort again.
func (s *Server) handleSort(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	req, explicit, err := parseSortForm(r)
	if err != nil {
		s.respondError(w, r, err, 0)
		return
	}

	snap, err := s.sort(r, sessionID, req, explicit)
	if err != nil {
		s.respondError(w, r, err, 0)
		return
	}

	if !isHTMX(r) {
		http.Redirect(w, r, "/sessions/"+sessionID, http.StatusSeeOther)
		return
	}
	templates.TablePartial(snap).Render(r.Context(), w)
}

func (s *Server) renderTable(w http.ResponseWriter, r *http.Request, snap *core.Snapshot) {
	if isHTMX(r) {
		templates.TablePartial(snap).Render(r.Context(), w)
		return
	}
	templates.TableView(snap).Render(r.Context(), w)
}

// sort applies an explicit sort request, or toggles the column when no
// direction was given.
func (s *Server) sort(r *http.Request, sessionID string, req datatable.SortRequest, explicit bool) (*core.Snapshot, error) {
	logging.WithFields(r.Context(), "session_id", sessionID).
		Debug("sort requested", "column", req.ColumnID, "direction", req.Direction, "explicit", explicit)

	if explicit {
		return s.service.Sort(r.Context(), sessionID, req)
	}
	return s.service.Toggle(r.Context(), sessionID, req.ColumnID)
}

// handleListViews returns all views organized by group.
func (s *Server) handleListViews(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.service.ListViewsByGroup())
}

// handleCreateSession opens a session and returns its snapshot.
func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	snap, err := s.service.OpenSession(withViewer(r), chi.URLParam(r, "viewKey"))
	if err != nil {
		s.respondError(w, r, err, 0)
		return
	}

	w.Header().Set("Location", "/api/sessions/"+snap.SessionID)
	writeJSON(w, http.StatusCreated, snap)
}

// handleGetSession returns a session's snapshot.
func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	snap, err := s.service.Snapshot(r.Context(), chi.URLParam(r, "sessionID"))
	if err != nil {
		s.respondError(w, r, err, 0)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

// handleSortSession sorts a session from a JSON body and returns the snapshot.
func (s *Server) handleSortSession(w http.ResponseWriter, r *http.Request) {
	req, explicit, err := parseSortJSON(w, r)
	if err != nil {
		s.respondError(w, r, err, 0)
		return
	}

	snap, err := s.sort(r, chi.URLParam(r, "sessionID"), req, explicit)
	if err != nil {
		s.respondError(w, r, err, 0)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

// handleCloseSession discards a session.
func (s *Server) handleCloseSession(w http.ResponseWriter, r *http.Request) {
	if err := s.service.CloseSession(chi.URLParam(r, "sessionID")); err != nil {
		s.respondError(w, r, err, 0)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
