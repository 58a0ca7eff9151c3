package web

import (
	"context"
	"errors"
	"net"
	"net/http"

	"github.com/JonMunkholm/catalog-admin/internal/core"
	"github.com/JonMunkholm/catalog-admin/internal/logging"
)

type ctxKey struct{}

// withSession attaches the caller's view session to the request.
//
// Safe requests without a live session get a fresh one and a new cookie.
// Other requests must name a live session; the table they act on is gone
// otherwise, so they fail with SES001.
func (s *Server) withSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sessions := s.service.Sessions()

		var sess *core.Session
		err := core.ErrSessionExpired
		if c, cerr := r.Cookie(s.cfg.Session.CookieName); cerr == nil {
			sess, err = sessions.Get(c.Value)
		}

		if err != nil {
			if !errors.Is(err, core.ErrSessionExpired) || !isSafeMethod(r.Method) {
				respondError(w, r, err, 0)
				return
			}
			sess = sessions.Create()
			http.SetCookie(w, &http.Cookie{
				Name:     s.cfg.Session.CookieName,
				Value:    sess.ID.String(),
				Path:     "/",
				HttpOnly: true,
				Secure:   s.cfg.Session.SecureCookie,
				SameSite: http.SameSiteLaxMode,
			})
		}

		ctx := context.WithValue(r.Context(), ctxKey{}, sess)
		ctx = logging.ContextWithSessionID(ctx, sess.ID.String())
		ctx = core.ContextWithClient(ctx, r.RemoteAddr, r.UserAgent())
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// sessionFrom returns the session attached by withSession.
func sessionFrom(ctx context.Context) *core.Session {
	sess, _ := ctx.Value(ctxKey{}).(*core.Session)
	return sess
}

func isSafeMethod(method string) bool {
	return method == http.MethodGet || method == http.MethodHead
}

// clientIP returns the request's client address without its port.
func clientIP(r *http.Request) string {
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
