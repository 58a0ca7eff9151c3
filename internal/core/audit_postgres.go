package core

import (
	"context"
	"encoding/json"
	"fmt"
	"net/netip"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

const auditSchema = `
CREATE TABLE IF NOT EXISTS catalog_audit_log (
	id          UUID PRIMARY KEY,
	action      TEXT NOT NULL,
	outcome     TEXT NOT NULL,
	product_id  INTEGER,
	session_id  TEXT,
	ip_address  INET,
	user_agent  TEXT,
	fields      JSONB,
	error       TEXT,
	created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS catalog_audit_log_created_at_idx ON catalog_audit_log (created_at DESC);
`

const insertAuditSQL = `
INSERT INTO catalog_audit_log
	(id, action, outcome, product_id, session_id, ip_address, user_agent, fields, error, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

const recentAuditSQL = `
SELECT id, action, outcome, product_id, session_id, ip_address, user_agent, fields, error, created_at
FROM catalog_audit_log
ORDER BY created_at DESC
LIMIT $1`

// PostgresAuditStore writes audit entries to PostgreSQL.
type PostgresAuditStore struct {
	pool *pgxpool.Pool
}

// NewPostgresAuditStore creates a store on an existing pool.
func NewPostgresAuditStore(pool *pgxpool.Pool) *PostgresAuditStore {
	return &PostgresAuditStore{pool: pool}
}

// EnsureSchema creates the audit table if it does not exist.
func (a *PostgresAuditStore) EnsureSchema(ctx context.Context) error {
	if _, err := a.pool.Exec(ctx, auditSchema); err != nil {
		return fmt.Errorf("create audit schema: %w", err)
	}
	return nil
}

func (a *PostgresAuditStore) Enabled() bool { return true }

// Record inserts one entry.
func (a *PostgresAuditStore) Record(ctx context.Context, e AuditEntry) error {
	var fieldsJSON []byte
	if e.Fields != nil {
		var err error
		fieldsJSON, err = json.Marshal(e.Fields)
		if err != nil {
			fieldsJSON = nil
		}
	}

	_, err := a.pool.Exec(ctx, insertAuditSQL,
		e.ID,
		string(e.Action),
		string(e.Outcome),
		toPgInt4(e.ProductID),
		toPgText(e.SessionID),
		parseIP(e.IPAddress),
		toPgText(e.UserAgent),
		fieldsJSON,
		toPgText(e.Error),
		e.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert audit entry: %w", err)
	}
	return nil
}

// Recent returns up to limit entries, newest first.
func (a *PostgresAuditStore) Recent(ctx context.Context, limit int) ([]AuditEntry, error) {
	rows, err := a.pool.Query(ctx, recentAuditSQL, limit)
	if err != nil {
		return nil, fmt.Errorf("query audit log: %w", err)
	}

	entries, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (AuditEntry, error) {
		var (
			e         AuditEntry
			action    string
			outcome   string
			productID pgtype.Int4
			sessionID pgtype.Text
			ip        *netip.Addr
			userAgent pgtype.Text
			fields    []byte
			errText   pgtype.Text
		)
		if err := row.Scan(&e.ID, &action, &outcome, &productID, &sessionID, &ip,
			&userAgent, &fields, &errText, &e.CreatedAt); err != nil {
			return e, err
		}

		e.Action = AuditAction(action)
		e.Outcome = AuditOutcome(outcome)
		e.ProductID = int(productID.Int32)
		e.SessionID = sessionID.String
		e.UserAgent = userAgent.String
		e.Error = errText.String
		if ip != nil {
			e.IPAddress = ip.String()
		}
		if len(fields) > 0 {
			_ = json.Unmarshal(fields, &e.Fields)
		}
		return e, nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan audit log: %w", err)
	}
	return entries, nil
}

func toPgText(s string) pgtype.Text {
	return pgtype.Text{String: s, Valid: s != ""}
}

func toPgInt4(n int) pgtype.Int4 {
	return pgtype.Int4{Int32: int32(n), Valid: n != 0}
}

// parseIP returns nil for addresses that do not parse, storing NULL.
func parseIP(s string) *netip.Addr {
	addr, err := netip.ParseAddr(s)
	if err != nil {
		return nil
	}
	return &addr
}
