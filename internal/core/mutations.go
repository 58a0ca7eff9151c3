package core

import (
	"context"
	"errors"
	"fmt"

	"github.com/JonMunkholm/catalog-admin/internal/catalog"
	"github.com/JonMunkholm/catalog-admin/internal/logging"
	"github.com/JonMunkholm/catalog-admin/internal/view"
)

// ErrReloadFailed marks a mutation that went through at the catalog but whose
// follow-up reload failed. The session keeps its previous list.
var ErrReloadFailed = errors.New("saved, but the product list could not be reloaded")

// UpdateProduct sends title, price and description for an existing product
// and reloads the full list on success. Category and image values in the
// form are ignored on this path.
//
// The product must be present in the session's full set. On any failure the
// session state is left untouched.
func (s *Service) UpdateProduct(ctx context.Context, sess *Session, id int, form ProductForm) error {
	logger := logging.WithFields(ctx, "op", "update", "product_id", id)

	var found bool
	sess.Do(func(st *view.State) { _, found = st.Find(id) })
	if !found {
		return fmt.Errorf("update product %d: %w", id, ErrProductNotFound)
	}

	if err := s.forms.CheckUpdate(form); err != nil {
		return err
	}

	fields := form.UpdateFields()
	_, err := s.catalog.Update(ctx, id, fields)
	s.record(ctx, newAuditEntry(ctx, sess.ID, ActionProductUpdate, id, map[string]any{
		"title":       fields.Title,
		"price":       fields.Price,
		"description": fields.Description,
	}, err))
	if err != nil {
		logger.Error("catalog update failed", "error", err)
		return fmt.Errorf("update product %d: %w", id, err)
	}

	logger.Info("product updated")
	if err := s.Reload(ctx, sess); err != nil {
		return fmt.Errorf("%w: %w", ErrReloadFailed, err)
	}
	return nil
}

// CreateProduct posts a new product and reloads the full list on success.
// A rejected create keeps the server's error payload in the returned
// *catalog.NetworkError so it can be shown verbatim.
func (s *Service) CreateProduct(ctx context.Context, sess *Session, form ProductForm) (catalog.Product, error) {
	logger := logging.WithFields(ctx, "op", "create")

	if err := s.forms.Check(form); err != nil {
		return catalog.Product{}, err
	}

	fields := form.CreateFields()
	created, err := s.catalog.Create(ctx, fields)
	s.record(ctx, newAuditEntry(ctx, sess.ID, ActionProductCreate, created.ID, map[string]any{
		"title":       fields.Title,
		"price":       fields.Price,
		"description": fields.Description,
		"categoryId":  fields.CategoryID,
		"images":      fields.Images,
	}, err))
	if err != nil {
		logger.Error("catalog create failed", "error", err)
		return catalog.Product{}, fmt.Errorf("create product: %w", err)
	}

	logger.Info("product created", "product_id", created.ID)
	if err := s.Reload(ctx, sess); err != nil {
		return created, fmt.Errorf("%w: %w", ErrReloadFailed, err)
	}
	return created, nil
}

// record writes an audit entry. Audit failures are logged and swallowed.
func (s *Service) record(ctx context.Context, entry AuditEntry) {
	if err := s.audit.Record(ctx, entry); err != nil {
		logging.FromContext(ctx).Warn("audit record failed",
			"action", entry.Action,
			"error", err,
		)
	}
}
