package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"translationportal/internal/auth"
	"translationportal/internal/domain"
	"translationportal/internal/langs"
	"translationportal/internal/mailer"
	"translationportal/internal/middleware"
	"translationportal/internal/sqlinline"
)

const (
	verifyTokenTTL = 24 * time.Hour
	resetTokenTTL  = time.Hour
)

// forgotPasswordMessage is returned whether or not the email exists, so the
// endpoint cannot be used to enumerate accounts.
const forgotPasswordMessage = "If that email address is registered, a password reset link has been sent."

type registerRequest struct {
	AccountName        string   `json:"account_name"`
	Email              string   `json:"email"`
	Name               string   `json:"name"`
	Password           string   `json:"password"`
	PreferredLanguages []string `json:"preferred_languages"`
}

func (a *App) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	if req.Email == "" || !strings.Contains(req.Email, "@") {
		a.error(w, http.StatusBadRequest, "bad_request", "a valid email is required")
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "name is required")
		return
	}
	if req.AccountName == "" {
		req.AccountName = req.Name
	}
	passwordHash, err := auth.HashPassword(req.Password)
	if err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}
	locale := middleware.LocaleFromContext(r.Context())
	preferred := req.PreferredLanguages
	if len(preferred) == 0 {
		preferred = []string{locale}
	}
	preferred, err = langs.NormalizeAll(preferred)
	if err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}

	row := a.SQL.QueryRow(r.Context(), sqlinline.QRegisterAccountUser,
		req.AccountName, req.Email, req.Name, passwordHash, locale, preferred)
	var userID, accountID string
	if err := row.Scan(&userID, &accountID); err != nil {
		if isUniqueViolation(err) {
			a.error(w, http.StatusConflict, "conflict", "an account with this email already exists")
			return
		}
		a.Logger.Error().Err(err).Msg("register user failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to register")
		return
	}

	if err := a.issueToken(r, userID, req.Email, domain.TokenEmailVerify); err != nil {
		a.Logger.Error().Err(err).Msg("send verification mail failed")
	}

	a.json(w, http.StatusCreated, map[string]any{
		"id":         userID,
		"account_id": accountID,
		"message":    "registration successful, please verify your email",
	})
}

func (a *App) VerifyEmail(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "token is required")
		return
	}
	row := a.SQL.QueryRow(r.Context(), sqlinline.QConsumeVerifyToken, auth.HashToken(token))
	var userID string
	if err := row.Scan(&userID); err != nil {
		a.error(w, http.StatusBadRequest, "invalid_token", "verification link is invalid or has expired")
		return
	}
	a.json(w, http.StatusOK, map[string]any{"verified": true})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	TOTPCode string `json:"totp_code"`
}

func (a *App) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}

	row := a.SQL.QueryRow(r.Context(), sqlinline.QSelectUserByEmail, strings.TrimSpace(req.Email))
	var (
		userID, accountID, name, passwordHash, role, locale, totpSecret string
		emailVerified, totpEnabled                                      bool
	)
	if err := row.Scan(&userID, &accountID, &name, &passwordHash, &role, &locale, &emailVerified, &totpEnabled, &totpSecret); err != nil {
		if !errors.Is(err, pgx.ErrNoRows) {
			a.Logger.Error().Err(err).Msg("login lookup failed")
		}
		a.error(w, http.StatusUnauthorized, "unauthorized", "invalid email or password")
		return
	}
	if !auth.CheckPassword(passwordHash, req.Password) {
		a.error(w, http.StatusUnauthorized, "unauthorized", "invalid email or password")
		return
	}
	if !emailVerified {
		a.error(w, http.StatusForbidden, "unverified", "email address has not been verified")
		return
	}
	if totpEnabled {
		if req.TOTPCode == "" {
			a.json(w, http.StatusOK, map[string]any{"requires_two_factor": true})
			return
		}
		if !auth.ValidateTOTP(totpSecret, req.TOTPCode) {
			a.error(w, http.StatusUnauthorized, "invalid_totp", "invalid two-factor code")
			return
		}
	}

	token, hash, err := auth.NewToken()
	if err != nil {
		a.Logger.Error().Err(err).Msg("session token generation failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to establish session")
		return
	}
	country := middleware.CountryFromContext(r.Context())
	expiresAt := time.Now().Add(a.Cfg.SessionTTL)
	sessionRow := a.SQL.QueryRow(r.Context(), sqlinline.QInsertSession, userID, hash, country, expiresAt)
	var sessionID string
	if err := sessionRow.Scan(&sessionID); err != nil {
		a.Logger.Error().Err(err).Msg("session insert failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to establish session")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    token,
		Path:     "/",
		Expires:  expiresAt,
		HttpOnly: true,
		Secure:   a.Cfg.AppEnv == "production",
		SameSite: http.SameSiteLaxMode,
	})
	a.json(w, http.StatusOK, map[string]any{
		"user": map[string]any{
			"id":         userID,
			"account_id": accountID,
			"name":       name,
			"role":       role,
			"locale":     locale,
		},
	})
}

func (a *App) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(middleware.SessionCookieName); err == nil && cookie.Value != "" {
		if _, err := a.SQL.Exec(r.Context(), sqlinline.QDeleteSessionByHash, auth.HashToken(cookie.Value)); err != nil {
			a.Logger.Error().Err(err).Msg("session delete failed")
		}
	}
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
	w.WriteHeader(http.StatusNoContent)
}

type forgotPasswordRequest struct {
	Email string `json:"email"`
}

func (a *App) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req forgotPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}

	row := a.SQL.QueryRow(r.Context(), sqlinline.QSelectUserByEmail, strings.TrimSpace(req.Email))
	var (
		userID, accountID, name, passwordHash, role, locale, totpSecret string
		emailVerified, totpEnabled                                      bool
	)
	err := row.Scan(&userID, &accountID, &name, &passwordHash, &role, &locale, &emailVerified, &totpEnabled, &totpSecret)
	if err == nil {
		if err := a.issueToken(r, userID, strings.ToLower(strings.TrimSpace(req.Email)), domain.TokenPasswordReset); err != nil {
			a.Logger.Error().Err(err).Msg("send reset mail failed")
		}
	} else if !errors.Is(err, pgx.ErrNoRows) {
		a.Logger.Error().Err(err).Msg("forgot-password lookup failed")
	}

	a.json(w, http.StatusOK, map[string]any{"message": forgotPasswordMessage})
}

type resetPasswordRequest struct {
	Token    string `json:"token"`
	Password string `json:"password"`
}

func (a *App) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req resetPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	if req.Token == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "token is required")
		return
	}
	passwordHash, err := auth.HashPassword(req.Password)
	if err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}
	row := a.SQL.QueryRow(r.Context(), sqlinline.QConsumeResetToken, auth.HashToken(req.Token), passwordHash)
	var userID string
	if err := row.Scan(&userID); err != nil {
		a.error(w, http.StatusBadRequest, "invalid_token", "reset link is invalid or has expired")
		return
	}
	a.json(w, http.StatusOK, map[string]any{"reset": true})
}

func (a *App) Me(w http.ResponseWriter, r *http.Request) {
	userID := a.currentUserID(r)
	if userID == "" {
		a.error(w, http.StatusUnauthorized, "unauthorized", "missing user context")
		return
	}
	row := a.SQL.QueryRow(r.Context(), sqlinline.QSelectUserByID, userID)
	dto, err := scanUserDTO(row)
	if err != nil {
		a.error(w, http.StatusNotFound, "not_found", "user not found")
		return
	}
	a.json(w, http.StatusOK, dto)
}

// issueToken creates a single-use auth token and mails its link to the user.
func (a *App) issueToken(r *http.Request, userID, email string, purpose domain.TokenPurpose) error {
	token, hash, err := auth.NewToken()
	if err != nil {
		return err
	}
	ttl := verifyTokenTTL
	if purpose == domain.TokenPasswordReset {
		ttl = resetTokenTTL
	}
	row := a.SQL.QueryRow(r.Context(), sqlinline.QInsertAuthToken, userID, string(purpose), hash, time.Now().Add(ttl))
	var tokenID string
	if err := row.Scan(&tokenID); err != nil {
		return fmt.Errorf("insert auth token: %w", err)
	}

	var msg mailer.Message
	switch purpose {
	case domain.TokenPasswordReset:
		msg = mailer.Message{
			To:      email,
			Subject: "Reset your password",
			Body: "A password reset was requested for your account.\n\n" +
				"Reset link (valid for 1 hour, single use):\n" +
				a.Cfg.BaseURL + "/reset-password?token=" + token + "\n\n" +
				"If you did not request this, you can ignore this email.",
		}
	default:
		msg = mailer.Message{
			To:      email,
			Subject: "Verify your email address",
			Body: "Welcome to the translation portal.\n\n" +
				"Please confirm your email address:\n" +
				a.Cfg.BaseURL + "/api/auth/verify-email?token=" + token + "\n",
		}
	}
	return a.Mail.Send(r.Context(), msg)
}
