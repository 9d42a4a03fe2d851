package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5"

	"translationportal/internal/sqlinline"
)

func TestAdminUsersCreateDefaultsToClientRole(t *testing.T) {
	var gotArgs []any
	sql := &fakeSQL{
		queryRow: func(query string, args ...any) pgx.Row {
			if query != sqlinline.QInsertUserForAccount {
				t.Fatalf("unexpected query: %s", query)
			}
			gotArgs = args
			return NewSimpleRow(func(dest ...any) error {
				*dest[0].(*string) = "user-9"
				return nil
			})
		},
	}
	app, _ := newTestApp(sql)

	body := strings.NewReader(`{"account_id":"account-1","email":"New.User@Example.com","name":"New User","password":"longenough1"}`)
	req := asAdmin(httptest.NewRequest("POST", "/api/admin/users", body), "admin-1")
	rr := httptest.NewRecorder()
	app.AdminUsersCreate(rr, req)

	if rr.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201: %s", rr.Code, rr.Body.String())
	}
	if gotArgs[2] != "new.user@example.com" {
		t.Fatalf("email = %v, want lowercased", gotArgs[2])
	}
	if gotArgs[5] != "client" {
		t.Fatalf("role = %v, want client", gotArgs[5])
	}
}

func TestAdminUsersCreateRejectsUnknownRole(t *testing.T) {
	app, _ := newTestApp(&fakeSQL{})

	body := strings.NewReader(`{"account_id":"account-1","email":"u@example.com","name":"U","password":"longenough1","role":"superuser"}`)
	req := asAdmin(httptest.NewRequest("POST", "/api/admin/users", body), "admin-1")
	rr := httptest.NewRecorder()
	app.AdminUsersCreate(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rr.Code)
	}
}

func TestAdminUsersCreateDuplicateEmail(t *testing.T) {
	sql := &fakeSQL{
		queryRow: func(query string, args ...any) pgx.Row {
			return NewSimpleRow(func(dest ...any) error { return uniqueViolation() })
		},
	}
	app, _ := newTestApp(sql)

	body := strings.NewReader(`{"account_id":"account-1","email":"dup@example.com","name":"Dup","password":"longenough1"}`)
	req := asAdmin(httptest.NewRequest("POST", "/api/admin/users", body), "admin-1")
	rr := httptest.NewRecorder()
	app.AdminUsersCreate(rr, req)

	if rr.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409", rr.Code)
	}
}

func TestAdminUsersDeleteRefusesSelf(t *testing.T) {
	app, _ := newTestApp(&fakeSQL{})

	req := asAdmin(httptest.NewRequest("DELETE", "/api/admin/users/admin-1", nil), "admin-1")
	req = withURLParam(req, "userID", "admin-1")
	rr := httptest.NewRecorder()
	app.AdminUsersDelete(rr, req)

	if rr.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409", rr.Code)
	}
}

func TestAdminUsersDeleteRemovesOtherUser(t *testing.T) {
	sql := &fakeSQL{
		queryRow: func(query string, args ...any) pgx.Row {
			if query != sqlinline.QDeleteUser {
				t.Fatalf("unexpected query: %s", query)
			}
			return NewSimpleRow(func(dest ...any) error {
				*dest[0].(*string) = "user-2"
				return nil
			})
		},
	}
	app, _ := newTestApp(sql)

	req := asAdmin(httptest.NewRequest("DELETE", "/api/admin/users/user-2", nil), "admin-1")
	req = withURLParam(req, "userID", "user-2")
	rr := httptest.NewRecorder()
	app.AdminUsersDelete(rr, req)

	if rr.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want 204", rr.Code)
	}
}
