package core

import (
	"context"
	"net"
)

type contextKey string

const ctxKeyClient contextKey = "audit_client"

// ClientInfo identifies who triggered a mutation, for the audit trail.
type ClientInfo struct {
	IPAddress string
	UserAgent string
}

// ContextWithClient adds the caller's address and user agent to ctx.
// The port, if any, is stripped from the address.
func ContextWithClient(ctx context.Context, ip, userAgent string) context.Context {
	if host, _, err := net.SplitHostPort(ip); err == nil {
		ip = host
	}
	return context.WithValue(ctx, ctxKeyClient, ClientInfo{IPAddress: ip, UserAgent: userAgent})
}

// ClientFromContext returns the caller recorded by ContextWithClient.
func ClientFromContext(ctx context.Context) ClientInfo {
	if v, ok := ctx.Value(ctxKeyClient).(ClientInfo); ok {
		return v
	}
	return ClientInfo{}
}
