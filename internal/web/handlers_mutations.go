package web

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/JonMunkholm/catalog-admin/internal/core"
	"github.com/JonMunkholm/catalog-admin/internal/logging"
	"github.com/JonMunkholm/catalog-admin/internal/web/templates"
)

// handleCreateProduct creates a product from the dialog form.
//
// A rejected create re-renders the dialog with the catalog's error payload.
// When the create succeeds but the follow-up reload fails, the dialog closes
// and the reload failure is shown in place of the success message.
func (s *Server) handleCreateProduct(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sess := sessionFrom(ctx)

	form, err := parseProductForm(w, r)
	if err != nil {
		respondError(w, r, err, http.StatusBadRequest)
		return
	}

	created, err := s.service.CreateProduct(ctx, sess, form)
	if err != nil && !errors.Is(err, core.ErrReloadFailed) {
		s.mutationFailed(w, r, 0, form, err)
		return
	}

	if wantsJSON(r) {
		if err != nil {
			respondError(w, r, err, 0)
			return
		}
		writeJSON(w, r, http.StatusCreated, created)
		return
	}
	s.mutationDone(w, r, sess, fmt.Sprintf("Product %d created", created.ID), err)
}

// handleUpdateProduct updates title, price and description of a listed product.
func (s *Server) handleUpdateProduct(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sess := sessionFrom(ctx)

	id, err := parseProductID(r)
	if err != nil {
		respondError(w, r, err, 0)
		return
	}

	form, err := parseProductForm(w, r)
	if err != nil {
		respondError(w, r, err, http.StatusBadRequest)
		return
	}

	err = s.service.UpdateProduct(ctx, sess, id, form)
	if err != nil && !errors.Is(err, core.ErrReloadFailed) {
		s.mutationFailed(w, r, id, form, err)
		return
	}

	if wantsJSON(r) {
		if err != nil {
			respondError(w, r, err, 0)
			return
		}
		w.WriteHeader(http.StatusNoContent)
		return
	}
	s.mutationDone(w, r, sess, fmt.Sprintf("Product %d updated", id), err)
}

// mutationFailed answers a rejected create/update. htmx callers get the
// dialog back with the error and the invalid fields marked.
func (s *Server) mutationFailed(w http.ResponseWriter, r *http.Request, id int, form core.ProductForm, err error) {
	if !isHTMX(r) {
		respondError(w, r, err, 0)
		return
	}

	status := core.StatusFor(err)
	msg := core.MapError(err)
	modal := templates.ModalView{ProductID: id, Form: form, Error: &msg}

	var valErr *core.ValidationError
	if errors.As(err, &valErr) {
		modal.Invalid = valErr.Has
	}
	if errors.Is(err, core.ErrProductNotFound) {
		respondError(w, r, err, status)
		return
	}

	render(w, r, status, templates.ProductModal(modal))
}

// mutationDone closes the dialog and refreshes the table. reloadErr, when
// set, replaces the success message.
func (s *Server) mutationDone(w http.ResponseWriter, r *http.Request, sess *core.Session, message string, reloadErr error) {
	alert := templates.SuccessAlert(message)
	if reloadErr != nil {
		logging.FromContext(r.Context()).Error("reload after mutation failed", "error", reloadErr)
		alert = templates.ErrorAlert(core.MapError(reloadErr))
	}
	render(w, r, http.StatusOK, templates.MutationDone(s.tableView(sess), alert))
}
