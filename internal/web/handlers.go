package web

import (
	"net/http"

	"github.com/JonMunkholm/catalog-admin/internal/catalog"
	"github.com/JonMunkholm/catalog-admin/internal/core"
	"github.com/JonMunkholm/catalog-admin/internal/logging"
	"github.com/JonMunkholm/catalog-admin/internal/view"
	"github.com/JonMunkholm/catalog-admin/internal/web/templates"
)

// handleIndex renders the admin page, fetching the catalog on a session's
// first visit. A failed first fetch still renders the page with an alert.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sess := sessionFrom(ctx)

	var alert *core.UserMessage
	if err := s.service.EnsureLoaded(ctx, sess); err != nil {
		logging.FromContext(ctx).Warn("initial catalog load failed", "error", err)
		msg := core.MapError(err)
		alert = &msg
	}

	render(w, r, http.StatusOK, templates.Page(templates.PageView{
		Table:        s.tableView(sess),
		AuditEnabled: s.service.AuditEnabled(),
		Alert:        alert,
	}))
}

// handleNewProduct opens the empty create dialog.
func (s *Server) handleNewProduct(w http.ResponseWriter, r *http.Request) {
	render(w, r, http.StatusOK, templates.ProductModal(templates.ModalView{}))
}

// handleProductDetail opens the edit dialog prefilled from the session's list.
func (s *Server) handleProductDetail(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r.Context())

	id, err := parseProductID(r)
	if err != nil {
		respondError(w, r, err, 0)
		return
	}

	var (
		product catalog.Product
		found   bool
	)
	sess.Do(func(st *view.State) { product, found = st.Find(id) })
	if !found {
		respondError(w, r, core.ErrProductNotFound, 0)
		return
	}

	render(w, r, http.StatusOK, templates.ProductModal(templates.ModalView{
		ProductID: product.ID,
		Form:      core.FormFromProduct(product),
	}))
}

// handleCloseModal empties the dialog container.
func (s *Server) handleCloseModal(w http.ResponseWriter, r *http.Request) {
	render(w, r, http.StatusOK, templates.ModalClosed())
}

// viewResponse is the JSON form of a session's current view.
type viewResponse struct {
	Keyword    string            `json:"keyword"`
	SortColumn string            `json:"sortColumn,omitempty"`
	SortDir    string            `json:"sortDirection,omitempty"`
	Page       int               `json:"page"`
	PageSize   int               `json:"pageSize"`
	PageCount  int               `json:"pageCount"`
	TotalItems int               `json:"totalItems"`
	Pages      []int             `json:"pages"`
	Products   []catalog.Product `json:"products"`
}

// handleViewJSON returns the current page and its controls as JSON.
func (s *Server) handleViewJSON(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sess := sessionFrom(ctx)

	if err := s.service.EnsureLoaded(ctx, sess); err != nil {
		respondError(w, r, err, 0)
		return
	}

	var resp viewResponse
	sess.Do(func(st *view.State) {
		win := st.Window()
		resp = viewResponse{
			Keyword:    st.Keyword(),
			SortColumn: string(st.Sort().Column),
			SortDir:    string(st.Sort().Direction),
			Page:       st.Page(),
			PageSize:   st.PageSize(),
			PageCount:  win.TotalPages,
			TotalItems: win.TotalItems,
			Pages:      win.Pages,
			Products:   st.CurrentPageSlice(),
		}
	})
	if resp.Pages == nil {
		resp.Pages = []int{}
	}

	writeJSON(w, r, http.StatusOK, resp)
}

// handleHealth reports liveness.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, map[string]any{
		"status":   "ok",
		"sessions": s.service.Sessions().Len(),
		"audit":    s.service.AuditEnabled(),
	})
}
