package web

import (
	"net/http"

	"github.com/JonMunkholm/catalog-admin/internal/web/templates"
)

// handleAuditLog renders the most recent create/update attempts.
func (s *Server) handleAuditLog(w http.ResponseWriter, r *http.Request) {
	if !s.service.AuditEnabled() {
		http.NotFound(w, r)
		return
	}

	entries, err := s.service.RecentAudit(r.Context(), s.cfg.Audit.RecentLimit)
	if err != nil {
		respondError(w, r, err, http.StatusInternalServerError)
		return
	}

	if wantsJSON(r) {
		writeJSON(w, r, http.StatusOK, entries)
		return
	}
	render(w, r, http.StatusOK, templates.AuditLogPage(entries))
}
