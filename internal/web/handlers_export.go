package web

import (
	"bytes"
	"net/http"

	"github.com/JonMunkholm/catalog-admin/internal/catalog"
	"github.com/JonMunkholm/catalog-admin/internal/export"
	"github.com/JonMunkholm/catalog-admin/internal/logging"
	"github.com/JonMunkholm/catalog-admin/internal/view"
)

// handleExport downloads the session's filtered and sorted products as CSV.
// All matching rows are exported, not only the current page.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sess := sessionFrom(ctx)

	if err := s.service.EnsureLoaded(ctx, sess); err != nil {
		respondError(w, r, err, 0)
		return
	}

	var products []catalog.Product
	sess.Do(func(st *view.State) { products = st.Filtered() })

	var buf bytes.Buffer
	if err := export.Write(&buf, products); err != nil {
		respondError(w, r, err, 0)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+export.Filename+`"`)
	if _, err := buf.WriteTo(w); err != nil {
		logging.FromContext(r.Context()).Warn("export write failed", "error", err)
		return
	}

	logging.FromContext(r.Context()).Info("products exported", "rows", len(products))
}
