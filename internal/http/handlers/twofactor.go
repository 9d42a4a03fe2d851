package handlers

import (
	"encoding/json"
	"net/http"

	"translationportal/internal/auth"
	"translationportal/internal/sqlinline"
)

// TwoFactorSetup stages a fresh TOTP secret for the caller. 2FA stays off
// until the first code is verified; re-running setup replaces the staged
// secret.
func (a *App) TwoFactorSetup(w http.ResponseWriter, r *http.Request) {
	userID := a.currentUserID(r)

	row := a.SQL.QueryRow(r.Context(), sqlinline.QSelectUserByID, userID)
	user, err := scanUserDTO(row)
	if err != nil {
		a.error(w, http.StatusNotFound, "not_found", "user not found")
		return
	}
	if user.TOTPEnabled {
		a.error(w, http.StatusConflict, "conflict", "two-factor authentication is already enabled")
		return
	}

	enrollment, err := auth.NewTOTPEnrollment(user.Email)
	if err != nil {
		a.Logger.Error().Err(err).Msg("totp enrollment failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to generate secret")
		return
	}

	stageRow := a.SQL.QueryRow(r.Context(), sqlinline.QStageTOTPSecret, userID, enrollment.Secret)
	var id string
	if err := stageRow.Scan(&id); err != nil {
		a.Logger.Error().Err(err).Msg("totp secret stage failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to stage secret")
		return
	}

	a.json(w, http.StatusOK, map[string]any{
		"secret":      enrollment.Secret,
		"otpauth_url": enrollment.ProvisioningURI,
		"qr_png":      enrollment.QRCodePNG,
	})
}

type twoFactorVerifyRequest struct {
	Code string `json:"code"`
}

// TwoFactorVerify confirms a staged secret with its first code and turns 2FA
// on.
func (a *App) TwoFactorVerify(w http.ResponseWriter, r *http.Request) {
	var req twoFactorVerifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Code == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "code is required")
		return
	}
	userID := a.currentUserID(r)

	row := a.SQL.QueryRow(r.Context(), sqlinline.QSelectUserTOTP, userID)
	var secret string
	var enabled bool
	if err := row.Scan(&secret, &enabled); err != nil || secret == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "no pending two-factor setup")
		return
	}
	if !auth.ValidateTOTP(secret, req.Code) {
		a.error(w, http.StatusUnauthorized, "invalid_totp", "invalid two-factor code")
		return
	}

	enableRow := a.SQL.QueryRow(r.Context(), sqlinline.QEnableTOTP, userID)
	var id string
	if err := enableRow.Scan(&id); err != nil {
		a.Logger.Error().Err(err).Msg("totp enable failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to enable two-factor")
		return
	}
	a.json(w, http.StatusOK, map[string]any{"totp_enabled": true})
}

type twoFactorDisableRequest struct {
	Code string `json:"code"`
}

// TwoFactorDisable turns 2FA off. A valid current code is required so a
// hijacked session cannot silently weaken the account.
func (a *App) TwoFactorDisable(w http.ResponseWriter, r *http.Request) {
	var req twoFactorDisableRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Code == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "code is required")
		return
	}
	userID := a.currentUserID(r)

	row := a.SQL.QueryRow(r.Context(), sqlinline.QSelectUserTOTP, userID)
	var secret string
	var enabled bool
	if err := row.Scan(&secret, &enabled); err != nil || !enabled {
		a.error(w, http.StatusBadRequest, "bad_request", "two-factor authentication is not enabled")
		return
	}
	if !auth.ValidateTOTP(secret, req.Code) {
		a.error(w, http.StatusUnauthorized, "invalid_totp", "invalid two-factor code")
		return
	}

	disableRow := a.SQL.QueryRow(r.Context(), sqlinline.QDisableTOTP, userID)
	var id string
	if err := disableRow.Scan(&id); err != nil {
		a.Logger.Error().Err(err).Msg("totp disable failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to disable two-factor")
		return
	}
	a.json(w, http.StatusOK, map[string]any{"totp_enabled": false})
}
