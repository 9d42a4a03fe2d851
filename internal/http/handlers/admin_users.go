package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"translationportal/internal/adminquery"
	"translationportal/internal/auth"
	"translationportal/internal/domain"
	"translationportal/internal/langs"
	"translationportal/internal/sqlinline"
)

// AdminUsersList is the filtered user listing: account_id, team_id and role
// query parameters combine with AND.
func (a *App) AdminUsersList(w http.ResponseWriter, r *http.Request) {
	limit, offset := pagination(r)
	q := r.URL.Query()
	sqlText, args, err := adminquery.Users(adminquery.UserFilter{
		AccountID: q.Get("account_id"),
		TeamID:    q.Get("team_id"),
		Role:      q.Get("role"),
		Page:      adminquery.Page{Limit: uint64(limit), Offset: uint64(offset)},
	})
	if err != nil {
		a.Logger.Error().Err(err).Msg("user query build failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to list users")
		return
	}
	rows, err := a.SQL.Query(r.Context(), sqlText, args...)
	if err != nil {
		a.Logger.Error().Err(err).Msg("user list failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to list users")
		return
	}
	defer rows.Close()
	users := []userDTO{}
	for rows.Next() {
		u, err := scanUserDTO(rows)
		if err != nil {
			a.Logger.Error().Err(err).Msg("user list scan failed")
			a.error(w, http.StatusInternalServerError, "internal", "failed to list users")
			return
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		a.Logger.Error().Err(err).Msg("user list rows failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to list users")
		return
	}
	a.json(w, http.StatusOK, map[string]any{"users": users})
}

func (a *App) AdminUsersGet(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	row := a.SQL.QueryRow(r.Context(), sqlinline.QSelectUserByID, userID)
	user, err := scanUserDTO(row)
	if err != nil {
		a.error(w, http.StatusNotFound, "not_found", "user not found")
		return
	}
	a.json(w, http.StatusOK, user)
}

type adminCreateUserRequest struct {
	AccountID          string   `json:"account_id"`
	TeamID             *string  `json:"team_id"`
	Email              string   `json:"email"`
	Name               string   `json:"name"`
	Password           string   `json:"password"`
	Role               string   `json:"role"`
	Locale             string   `json:"locale"`
	PreferredLanguages []string `json:"preferred_languages"`
}

// AdminUsersCreate adds a user to an existing account. Admin-created users
// skip email verification.
func (a *App) AdminUsersCreate(w http.ResponseWriter, r *http.Request) {
	var req adminCreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	if req.AccountID == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "account_id is required")
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
	role := domain.UserRole(req.Role)
	if req.Role == "" {
		role = domain.UserRoleClient
	}
	if !role.Valid() {
		a.error(w, http.StatusBadRequest, "bad_request", "role must be client or admin")
		return
	}
	passwordHash, err := auth.HashPassword(req.Password)
	if err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}
	locale := req.Locale
	if locale == "" {
		locale = "en"
	}
	preferred := req.PreferredLanguages
	if len(preferred) == 0 {
		preferred = []string{locale}
	}
	preferred, err = langs.NormalizeAll(preferred)
	if err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}

	row := a.SQL.QueryRow(r.Context(), sqlinline.QInsertUserForAccount,
		req.AccountID, req.TeamID, req.Email, req.Name, passwordHash, string(role), locale, preferred)
	var userID string
	if err := row.Scan(&userID); err != nil {
		if isUniqueViolation(err) {
			a.error(w, http.StatusConflict, "conflict", "a user with this email already exists")
			return
		}
		a.Logger.Error().Err(err).Msg("admin user create failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to create user")
		return
	}
	a.json(w, http.StatusCreated, map[string]any{"id": userID})
}

type adminPatchUserRequest struct {
	Name               *string         `json:"name"`
	Role               *string         `json:"role"`
	TeamID             json.RawMessage `json:"team_id"`
	Locale             *string         `json:"locale"`
	PreferredLanguages []string        `json:"preferred_languages"`
}

func (a *App) AdminUsersPatch(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	var req adminPatchUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	if req.Role != nil && !domain.UserRole(*req.Role).Valid() {
		a.error(w, http.StatusBadRequest, "bad_request", "role must be client or admin")
		return
	}
	var preferred []string
	if req.PreferredLanguages != nil {
		normalized, err := langs.NormalizeAll(req.PreferredLanguages)
		if err != nil {
			a.error(w, http.StatusBadRequest, "bad_request", err.Error())
			return
		}
		preferred = normalized
	}
	setTeam, teamID := nullableString(req.TeamID)

	row := a.SQL.QueryRow(r.Context(), sqlinline.QPatchUser,
		userID, req.Name, req.Role, setTeam, teamID, req.Locale, preferred)
	var id string
	if err := row.Scan(&id); err != nil {
		a.error(w, http.StatusNotFound, "not_found", "user not found")
		return
	}
	a.json(w, http.StatusOK, map[string]any{"id": id})
}

func (a *App) AdminUsersDelete(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	if userID == a.currentUserID(r) {
		a.error(w, http.StatusConflict, "conflict", "cannot delete your own user")
		return
	}
	row := a.SQL.QueryRow(r.Context(), sqlinline.QDeleteUser, userID)
	var id string
	if err := row.Scan(&id); err != nil {
		a.error(w, http.StatusNotFound, "not_found", "user not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// AdminOrdersList is the filtered, cross-user order listing.
func (a *App) AdminOrdersList(w http.ResponseWriter, r *http.Request) {
	limit, offset := pagination(r)
	q := r.URL.Query()
	sqlText, args, err := adminquery.Orders(adminquery.OrderFilter{
		Status:   q.Get("status"),
		Priority: q.Get("priority"),
		UserID:   q.Get("user_id"),
		Page:     adminquery.Page{Limit: uint64(limit), Offset: uint64(offset)},
	})
	if err != nil {
		a.Logger.Error().Err(err).Msg("order query build failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to list orders")
		return
	}
	rows, err := a.SQL.Query(r.Context(), sqlText, args...)
	if err != nil {
		a.Logger.Error().Err(err).Msg("order list failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to list orders")
		return
	}
	orders, err := collectOrderDTOs(rows)
	if err != nil {
		a.Logger.Error().Err(err).Msg("order list scan failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to list orders")
		return
	}
	a.json(w, http.StatusOK, map[string]any{"orders": orders})
}
