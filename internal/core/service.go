package core

import (
	"context"
	"fmt"

	"github.com/JonMunkholm/catalog-admin/internal/catalog"
	"github.com/JonMunkholm/catalog-admin/internal/logging"
)

// Catalog is the subset of the remote catalog client the service uses.
type Catalog interface {
	List(ctx context.Context) ([]catalog.Product, error)
	Update(ctx context.Context, id int, fields catalog.UpdateFields) (catalog.Product, error)
	Create(ctx context.Context, fields catalog.CreateFields) (catalog.Product, error)
}

// Service ties the remote catalog, the view sessions and the audit trail together.
type Service struct {
	catalog  Catalog
	sessions *Sessions
	audit    AuditStore
	forms    *formValidator
}

// NewService creates a Service. A nil audit store disables auditing.
func NewService(cat Catalog, sessions *Sessions, audit AuditStore) *Service {
	if audit == nil {
		audit = NopAuditStore{}
	}
	return &Service{
		catalog:  cat,
		sessions: sessions,
		audit:    audit,
		forms:    newFormValidator(),
	}
}

// Sessions returns the session registry.
func (s *Service) Sessions() *Sessions {
	return s.sessions
}

// Reload fetches the full product list and installs it in the session.
// On failure the session keeps its last-known-good list.
func (s *Service) Reload(ctx context.Context, sess *Session) error {
	logger := logging.FromContext(ctx)

	products, err := s.catalog.List(ctx)
	if err != nil {
		logger.Error("catalog list failed", "error", err)
		return fmt.Errorf("reload products: %w", err)
	}

	sess.replaceFullSet(products)
	logger.Debug("catalog reloaded", "products", len(products))
	return nil
}

// EnsureLoaded performs the initial fetch for a session that has none yet.
func (s *Service) EnsureLoaded(ctx context.Context, sess *Session) error {
	if sess.Loaded() {
		return nil
	}
	return s.Reload(ctx, sess)
}

// AuditEnabled reports whether mutations are being recorded.
func (s *Service) AuditEnabled() bool {
	return s.audit.Enabled()
}

// RecentAudit returns the newest audit entries.
func (s *Service) RecentAudit(ctx context.Context, limit int) ([]AuditEntry, error) {
	return s.audit.Recent(ctx, limit)
}
