package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/pquerna/otp/totp"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("correct horse battery")
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	if hash == "correct horse battery" {
		t.Fatalf("hash must not equal plaintext")
	}
	if !CheckPassword(hash, "correct horse battery") {
		t.Fatalf("expected password to verify")
	}
	if CheckPassword(hash, "wrong password") {
		t.Fatalf("wrong password must not verify")
	}
}

func TestHashPasswordRejectsShort(t *testing.T) {
	if _, err := HashPassword("short"); err == nil {
		t.Fatalf("expected error for short password")
	}
}

func TestNewTokenHashing(t *testing.T) {
	token, hash, err := NewToken()
	if err != nil {
		t.Fatalf("NewToken error: %v", err)
	}
	if token == "" || hash == "" {
		t.Fatalf("empty token or hash")
	}
	if HashToken(token) != hash {
		t.Fatalf("hash mismatch")
	}

	other, _, err := NewToken()
	if err != nil {
		t.Fatalf("NewToken error: %v", err)
	}
	if other == token {
		t.Fatalf("tokens must be unique")
	}
}

func TestNewAPIKeyPrefix(t *testing.T) {
	key, hash, err := NewAPIKey()
	if err != nil {
		t.Fatalf("NewAPIKey error: %v", err)
	}
	if !strings.HasPrefix(key, APIKeyPrefix) {
		t.Fatalf("key %q missing prefix", key)
	}
	if HashToken(key) != hash {
		t.Fatalf("hash mismatch")
	}
}

func TestTOTPEnrollmentAndValidation(t *testing.T) {
	enrollment, err := NewTOTPEnrollment("user@example.com")
	if err != nil {
		t.Fatalf("NewTOTPEnrollment error: %v", err)
	}
	if enrollment.Secret == "" || enrollment.QRCodePNG == "" {
		t.Fatalf("incomplete enrollment: %+v", enrollment)
	}
	if !strings.Contains(enrollment.ProvisioningURI, "otpauth://totp/") {
		t.Fatalf("unexpected provisioning URI: %q", enrollment.ProvisioningURI)
	}

	code, err := totp.GenerateCode(enrollment.Secret, time.Now().UTC())
	if err != nil {
		t.Fatalf("GenerateCode error: %v", err)
	}
	if !ValidateTOTP(enrollment.Secret, code) {
		t.Fatalf("expected current code to validate")
	}
	if ValidateTOTP(enrollment.Secret, "000000") && code != "000000" {
		t.Fatalf("arbitrary code must not validate")
	}
}

func TestTOTPSkewTolerance(t *testing.T) {
	enrollment, err := NewTOTPEnrollment("user@example.com")
	if err != nil {
		t.Fatalf("NewTOTPEnrollment error: %v", err)
	}
	previous, err := totp.GenerateCode(enrollment.Secret, time.Now().UTC().Add(-30*time.Second))
	if err != nil {
		t.Fatalf("GenerateCode error: %v", err)
	}
	if !ValidateTOTP(enrollment.Secret, previous) {
		t.Fatalf("expected previous-step code to validate within skew")
	}
	stale, err := totp.GenerateCode(enrollment.Secret, time.Now().UTC().Add(-5*time.Minute))
	if err != nil {
		t.Fatalf("GenerateCode error: %v", err)
	}
	if ValidateTOTP(enrollment.Secret, stale) {
		t.Fatalf("five-minute-old code must not validate")
	}
}
