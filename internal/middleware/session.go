package middleware

import (
	"context"
	"net/http"

	"translationportal/internal/auth"
	"translationportal/internal/infra"
	"translationportal/internal/sqlinline"
)

// SessionCookieName is the login cookie carrying the opaque session token.
const SessionCookieName = "tp_session"

// Principal identifies the authenticated caller of a request.
type Principal struct {
	UserID    string
	AccountID string
	Role      string
	Locale    string
}

// IsAdmin reports whether the principal holds the admin role.
func (p Principal) IsAdmin() bool {
	return p.Role == "admin"
}

type principalContextKey struct{}

var principalKey = principalContextKey{}

// SessionAuth authenticates requests by resolving the session cookie against
// the session store. Expired or unknown sessions get a 401.
func SessionAuth(sql infra.SQLExecutor) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(SessionCookieName)
			if err != nil || cookie.Value == "" {
				http.Error(w, "missing session", http.StatusUnauthorized)
				return
			}
			row := sql.QueryRow(r.Context(), sqlinline.QSelectSessionUser, auth.HashToken(cookie.Value))
			var p Principal
			if err := row.Scan(&p.UserID, &p.AccountID, &p.Role, &p.Locale); err != nil {
				http.Error(w, "invalid or expired session", http.StatusUnauthorized)
				return
			}
			next.ServeHTTP(w, r.WithContext(ContextWithPrincipal(r.Context(), p)))
		})
	}
}

// RequireAdmin rejects callers whose session principal is not an admin.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p, ok := PrincipalFromContext(r.Context())
		if !ok {
			http.Error(w, "missing session", http.StatusUnauthorized)
			return
		}
		if !p.IsAdmin() {
			http.Error(w, "admin role required", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ContextWithPrincipal stores the principal; exported for handler tests.
func ContextWithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalKey, p)
}

// PrincipalFromContext returns the authenticated principal, if any.
func PrincipalFromContext(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(principalKey).(Principal)
	return p, ok
}

// UserIDFromContext returns the authenticated user id or "".
func UserIDFromContext(ctx context.Context) string {
	if p, ok := PrincipalFromContext(ctx); ok {
		return p.UserID
	}
	return ""
}
