package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pquerna/otp/totp"

	"translationportal/internal/auth"
	"translationportal/internal/sqlinline"
)

func TestTwoFactorVerifyEnables(t *testing.T) {
	enrollment, err := auth.NewTOTPEnrollment("ada@example.com")
	if err != nil {
		t.Fatal(err)
	}
	code, err := totp.GenerateCode(enrollment.Secret, time.Now().UTC())
	if err != nil {
		t.Fatal(err)
	}

	enabled := false
	sql := &fakeSQL{queryRow: func(query string, args ...any) pgx.Row {
		switch query {
		case sqlinline.QSelectUserTOTP:
			return NewSimpleRow(func(dest ...any) error {
				*dest[0].(*string) = enrollment.Secret
				*dest[1].(*bool) = false
				return nil
			})
		case sqlinline.QEnableTOTP:
			enabled = true
			return NewSimpleRow(func(dest ...any) error {
				*dest[0].(*string) = "user-1"
				return nil
			})
		default:
			t.Fatalf("unexpected query: %s", query)
			return SimpleRow{}
		}
	}}
	app, _ := newTestApp(sql)

	req := asClient(httptest.NewRequest("POST", "/api/2fa/verify",
		strings.NewReader(`{"code":"`+code+`"}`)), "user-1")
	rr := httptest.NewRecorder()
	app.TwoFactorVerify(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rr.Code, rr.Body.String())
	}
	if !enabled {
		t.Fatalf("expected the enable statement to run")
	}
}

func TestTwoFactorVerifyRejectsWrongCode(t *testing.T) {
	enrollment, err := auth.NewTOTPEnrollment("ada@example.com")
	if err != nil {
		t.Fatal(err)
	}
	sql := &fakeSQL{queryRow: func(query string, args ...any) pgx.Row {
		return NewSimpleRow(func(dest ...any) error {
			*dest[0].(*string) = enrollment.Secret
			*dest[1].(*bool) = false
			return nil
		})
	}}
	app, _ := newTestApp(sql)

	req := asClient(httptest.NewRequest("POST", "/api/2fa/verify",
		strings.NewReader(`{"code":"000000"}`)), "user-1")
	rr := httptest.NewRecorder()
	app.TwoFactorVerify(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rr.Code)
	}
}

func TestTwoFactorDisableRequiresValidCode(t *testing.T) {
	enrollment, err := auth.NewTOTPEnrollment("ada@example.com")
	if err != nil {
		t.Fatal(err)
	}
	code, err := totp.GenerateCode(enrollment.Secret, time.Now().UTC())
	if err != nil {
		t.Fatal(err)
	}

	disabled := false
	sql := &fakeSQL{queryRow: func(query string, args ...any) pgx.Row {
		switch query {
		case sqlinline.QSelectUserTOTP:
			return NewSimpleRow(func(dest ...any) error {
				*dest[0].(*string) = enrollment.Secret
				*dest[1].(*bool) = true
				return nil
			})
		case sqlinline.QDisableTOTP:
			disabled = true
			return NewSimpleRow(func(dest ...any) error {
				*dest[0].(*string) = "user-1"
				return nil
			})
		default:
			t.Fatalf("unexpected query: %s", query)
			return SimpleRow{}
		}
	}}
	app, _ := newTestApp(sql)

	req := asClient(httptest.NewRequest("POST", "/api/2fa/disable",
		strings.NewReader(`{"code":"`+code+`"}`)), "user-1")
	rr := httptest.NewRecorder()
	app.TwoFactorDisable(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rr.Code, rr.Body.String())
	}
	if !disabled {
		t.Fatalf("expected the disable statement to run")
	}
}
