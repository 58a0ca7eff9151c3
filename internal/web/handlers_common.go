package web

// This file contains shared helpers used across handlers.

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/a-h/templ"
	"github.com/go-chi/chi/v5"

	"github.com/JonMunkholm/catalog-admin/internal/core"
	"github.com/JonMunkholm/catalog-admin/internal/view"
	"github.com/JonMunkholm/catalog-admin/internal/web/templates"
)

// maxFormBytes bounds product form bodies.
const maxFormBytes = 64 << 10

// render writes c as HTML with the given status.
func render(w http.ResponseWriter, r *http.Request, status int, c templ.Component) {
	templ.Handler(c, templ.WithStatus(status)).ServeHTTP(w, r)
}

// tableView snapshots the session's table. It takes the session lock.
func (s *Server) tableView(sess *core.Session) templates.TableView {
	var v templates.TableView
	sess.Do(func(st *view.State) {
		v = templates.NewTableView(st, s.cfg.View.PageSizeOptions)
	})
	return v
}

// renderTable answers with the table partial for the session.
func (s *Server) renderTable(w http.ResponseWriter, r *http.Request, sess *core.Session) {
	render(w, r, http.StatusOK, templates.Table(s.tableView(sess)))
}

// parseProductID reads the {id} URL parameter. A malformed id cannot name
// a product in the list.
func parseProductID(r *http.Request) (int, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("product id %q: %w", raw, core.ErrProductNotFound)
	}
	return id, nil
}

// parseProductForm reads a product form from a JSON or form-encoded body.
func parseProductForm(w http.ResponseWriter, r *http.Request) (core.ProductForm, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)

	var form core.ProductForm
	if strings.Contains(r.Header.Get("Content-Type"), "application/json") {
		if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
			return form, fmt.Errorf("%w: %v", core.ErrMalformedForm, err)
		}
		return form, nil
	}

	if err := r.ParseForm(); err != nil {
		return form, fmt.Errorf("%w: %v", core.ErrMalformedForm, err)
	}
	form = core.ProductForm{
		Title:       r.PostForm.Get("title"),
		Price:       r.PostForm.Get("price"),
		Description: r.PostForm.Get("description"),
		CategoryID:  r.PostForm.Get("categoryId"),
		ImageURL:    r.PostForm.Get("imageUrl"),
	}
	return form, nil
}
