package auth

import (
	"context"
	"log/slog"
	"net/http"
)

type contextKey string

const identityKey contextKey = "identity"

// FromContext extracts the authenticated identity placed by RequireSession.
func FromContext(ctx context.Context) (Identity, bool) {
	ident, ok := ctx.Value(identityKey).(Identity)
	return ident, ok
}

// RequireSession validates the session cookie and adds the identity to the
// request context. Anonymous requests are redirected to the login page, not
// rejected with an error.
func (s *Sessions) RequireSession(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(cookieName)
			if err != nil {
				http.Redirect(w, r, "/", http.StatusFound)
				return
			}

			ident, err := s.Parse(cookie.Value)
			if err != nil {
				logger.Warn("invalid session token", "path", r.URL.Path, "error", err)
				http.Redirect(w, r, "/", http.StatusFound)
				return
			}

			ctx := context.WithValue(r.Context(), identityKey, ident)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRole redirects to the login page unless the session identity has
// the given role. Must run after RequireSession.
func RequireRole(logger *slog.Logger, role string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ident, ok := FromContext(r.Context())
			if !ok || ident.Role != role {
				logger.Warn("role check failed", "path", r.URL.Path, "role", ident.Role)
				http.Redirect(w, r, "/", http.StatusFound)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
