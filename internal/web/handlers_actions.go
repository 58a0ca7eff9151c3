package web

import (
	"fmt"
	"net/http"
	"slices"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/JonMunkholm/catalog-admin/internal/core"
	"github.com/JonMunkholm/catalog-admin/internal/view"
)

// actionFunc applies one table action to a session.
type actionFunc func(r *http.Request, sess *core.Session) error

// actionTable maps /actions/{action} names to their handlers.
func (s *Server) actionTable() map[string]actionFunc {
	return map[string]actionFunc{
		"search":    s.actionSearch,
		"sort":      s.actionSort,
		"page":      s.actionPage,
		"page-size": s.actionPageSize,
		"reload":    s.actionReload,
	}
}

// handleAction dispatches a table action and answers with the table partial.
// A failed action leaves the table as it was and reports an alert.
func (s *Server) handleAction(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r.Context())
	name := chi.URLParam(r, "action")

	fn, ok := s.actions[name]
	if !ok {
		respondError(w, r, fmt.Errorf("%w: %q", core.ErrUnknownAction, name), 0)
		return
	}

	if err := fn(r, sess); err != nil {
		respondError(w, r, err, 0)
		return
	}
	s.renderTable(w, r, sess)
}

func (s *Server) actionSearch(r *http.Request, sess *core.Session) error {
	keyword := r.FormValue("keyword")
	sess.Do(func(st *view.State) { st.SetKeyword(keyword) })
	return nil
}

func (s *Server) actionSort(r *http.Request, sess *core.Session) error {
	column := view.Column(r.FormValue("column"))
	var err error
	sess.Do(func(st *view.State) { err = st.SetSort(column) })
	return err
}

// actionPage moves to the requested page. Out-of-range and malformed page
// numbers leave the page unchanged.
func (s *Server) actionPage(r *http.Request, sess *core.Session) error {
	n, err := strconv.Atoi(r.FormValue("page"))
	if err != nil {
		return nil
	}
	sess.Do(func(st *view.State) { st.GoToPage(n) })
	return nil
}

// actionPageSize accepts only the configured page sizes.
func (s *Server) actionPageSize(r *http.Request, sess *core.Session) error {
	n, err := strconv.Atoi(r.FormValue("size"))
	if err != nil || !slices.Contains(s.cfg.View.PageSizeOptions, n) {
		return fmt.Errorf("page size %q: %w", r.FormValue("size"), view.ErrInvalidPageSize)
	}
	sess.Do(func(st *view.State) { err = st.SetPageSize(n) })
	return err
}

func (s *Server) actionReload(r *http.Request, sess *core.Session) error {
	return s.service.Reload(r.Context(), sess)
}
