package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jackc/pgx/v5"

	"translationportal/internal/auth"
	"translationportal/internal/sqlinline"
)

func TestAPIKeyAuthResolvesAccount(t *testing.T) {
	key := auth.APIKeyPrefix + "testkey"
	sql := &fakeSQL{queryRow: func(query string, args ...any) pgx.Row {
		if query != sqlinline.QSelectAPIKeyAccount {
			t.Fatalf("unexpected query: %s", query)
		}
		if len(args) != 1 || args[0] != auth.HashToken(key) {
			t.Fatalf("expected hashed key argument, got %#v", args)
		}
		return scanRow{scan: func(dest ...any) error {
			*dest[0].(*string) = "key-1"
			*dest[1].(*string) = "account-9"
			return nil
		}}
	}}

	var account string
	handler := APIKeyAuth(sql)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		account = APIAccountFromContext(r.Context())
	}))

	req := httptest.NewRequest("GET", "/api/v1/translation-requests", nil)
	req.Header.Set("Authorization", "Bearer "+key)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
	if account != "account-9" {
		t.Fatalf("account = %q, want account-9", account)
	}
}

func TestAPIKeyAuthRejections(t *testing.T) {
	sql := &fakeSQL{queryRow: func(string, ...any) pgx.Row { return scanRow{} }}
	handler := APIKeyAuth(sql)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Fatalf("handler must not run")
	}))

	cases := map[string]string{
		"missing header":  "",
		"not bearer":      "Basic abc",
		"wrong prefix":    "Bearer sk_123",
		"unknown/revoked": "Bearer " + auth.APIKeyPrefix + "revoked",
	}
	for name, header := range cases {
		req := httptest.NewRequest("GET", "/api/v1/translation-requests", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)
		if rr.Code != http.StatusUnauthorized {
			t.Fatalf("%s: status = %d, want 401", name, rr.Code)
		}
	}
}
