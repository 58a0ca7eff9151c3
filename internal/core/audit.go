package core

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// AuditAction represents the type of action being audited.
type AuditAction string

const (
	ActionProductCreate AuditAction = "product_create"
	ActionProductUpdate AuditAction = "product_update"
)

// AuditOutcome records whether the remote call went through.
type AuditOutcome string

const (
	OutcomeSuccess AuditOutcome = "success"
	OutcomeFailure AuditOutcome = "failure"
)

// AuditEntry represents a single audit log entry.
type AuditEntry struct {
	ID        uuid.UUID      `json:"id"`
	Action    AuditAction    `json:"action"`
	Outcome   AuditOutcome   `json:"outcome"`
	ProductID int            `json:"productId,omitempty"`
	SessionID string         `json:"sessionId,omitempty"`
	IPAddress string         `json:"ipAddress,omitempty"`
	UserAgent string         `json:"userAgent,omitempty"`
	Fields    map[string]any `json:"fields,omitempty"`
	Error     string         `json:"error,omitempty"`
	CreatedAt time.Time      `json:"createdAt"`
}

// AuditStore persists audit entries.
type AuditStore interface {
	Record(ctx context.Context, entry AuditEntry) error
	Recent(ctx context.Context, limit int) ([]AuditEntry, error)
	Enabled() bool
}

// NopAuditStore discards entries. Used when no audit database is configured.
type NopAuditStore struct{}

func (NopAuditStore) Record(context.Context, AuditEntry) error { return nil }

func (NopAuditStore) Recent(context.Context, int) ([]AuditEntry, error) { return nil, nil }

func (NopAuditStore) Enabled() bool { return false }

// MemoryAuditStore keeps entries in memory, newest last.
type MemoryAuditStore struct {
	mu      sync.Mutex
	entries []AuditEntry
}

func (m *MemoryAuditStore) Record(_ context.Context, entry AuditEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append(m.entries, entry)
	return nil
}

// Recent returns up to limit entries, newest first.
func (m *MemoryAuditStore) Recent(_ context.Context, limit int) ([]AuditEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]AuditEntry, 0, min(limit, len(m.entries)))
	for i := len(m.entries) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, m.entries[i])
	}
	return out, nil
}

func (m *MemoryAuditStore) Enabled() bool { return true }

// newAuditEntry fills the request-derived fields of an entry.
func newAuditEntry(ctx context.Context, sessionID uuid.UUID, action AuditAction, productID int, fields map[string]any, err error) AuditEntry {
	client := ClientFromContext(ctx)
	entry := AuditEntry{
		ID:        uuid.New(),
		Action:    action,
		Outcome:   OutcomeSuccess,
		ProductID: productID,
		SessionID: sessionID.String(),
		IPAddress: client.IPAddress,
		UserAgent: client.UserAgent,
		Fields:    fields,
		CreatedAt: time.Now().UTC(),
	}
	if err != nil {
		entry.Outcome = OutcomeFailure
		entry.Error = err.Error()
	}
	return entry
}
