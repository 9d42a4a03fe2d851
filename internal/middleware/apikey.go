package middleware

import (
	"context"
	"net/http"
	"strings"

	"translationportal/internal/auth"
	"translationportal/internal/infra"
	"translationportal/internal/sqlinline"
)

type apiAccountContextKey struct{}

var apiAccountKey = apiAccountContextKey{}

// APIKeyAuth authenticates the external /api/v1 surface with bearer API
// keys. Keys are stored hashed; revoked keys stop matching immediately.
func APIKeyAuth(sql infra.SQLExecutor) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				http.Error(w, "missing authorization", http.StatusUnauthorized)
				return
			}
			parts := strings.SplitN(header, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				http.Error(w, "invalid authorization", http.StatusUnauthorized)
				return
			}
			key := strings.TrimSpace(parts[1])
			if !strings.HasPrefix(key, auth.APIKeyPrefix) {
				http.Error(w, "invalid api key", http.StatusUnauthorized)
				return
			}
			row := sql.QueryRow(r.Context(), sqlinline.QSelectAPIKeyAccount, auth.HashToken(key))
			var keyID, accountID string
			if err := row.Scan(&keyID, &accountID); err != nil {
				http.Error(w, "invalid api key", http.StatusUnauthorized)
				return
			}
			ctx := context.WithValue(r.Context(), apiAccountKey, accountID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ContextWithAPIAccount stores the account id; exported for handler tests.
func ContextWithAPIAccount(ctx context.Context, accountID string) context.Context {
	return context.WithValue(ctx, apiAccountKey, accountID)
}

// APIAccountFromContext returns the account id authenticated by API key.
func APIAccountFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(apiAccountKey).(string); ok {
		return v
	}
	return ""
}
