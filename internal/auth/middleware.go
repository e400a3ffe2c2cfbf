package auth

import (
	"context"
	"net/http"
	"strings"
)

type contextKey struct{}

var sessionKey contextKey

// FromContext returns the session attached to the request context. Requests
// that never went through Middleware, or carried no token, get the guest
// session.
func FromContext(ctx context.Context) Session {
	if s, ok := ctx.Value(sessionKey).(Session); ok {
		return s
	}
	return Guest
}

// WithSession attaches a session to a context. Exposed for handler tests.
func WithSession(ctx context.Context, s Session) context.Context {
	return context.WithValue(ctx, sessionKey, s)
}

// Middleware resolves the caller's session from the Authorization header.
// A missing header downgrades to guest rather than failing: read endpoints
// stay open, and capability checks happen per handler. A present but
// invalid token is rejected outright.
func Middleware(svc *Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := strings.TrimSpace(r.Header.Get("Authorization"))
			if header == "" {
				next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), Guest)))
				return
			}

			const prefix = "bearer "
			if len(header) < len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
				http.Error(w, "malformed authorization header", http.StatusUnauthorized)
				return
			}

			session, err := svc.Verify(strings.TrimSpace(header[len(prefix):]))
			if err != nil {
				http.Error(w, "invalid token", http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), session)))
		})
	}
}
