package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"translationportal/internal/auth"
	"translationportal/internal/sqlinline"
)

type createAPIKeyRequest struct {
	Name string `json:"name"`
}

// APIKeysCreate mints an API key for the caller's account. The plaintext key
// is returned exactly once; only its hash is stored.
func (a *App) APIKeysCreate(w http.ResponseWriter, r *http.Request) {
	var req createAPIKeyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "name is required")
		return
	}
	p, _ := a.currentPrincipal(r)

	key, hash, err := auth.NewAPIKey()
	if err != nil {
		a.Logger.Error().Err(err).Msg("api key generation failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to create api key")
		return
	}
	row := a.SQL.QueryRow(r.Context(), sqlinline.QInsertAPIKey, p.AccountID, req.Name, hash)
	var keyID string
	var createdAt time.Time
	if err := row.Scan(&keyID, &createdAt); err != nil {
		a.Logger.Error().Err(err).Msg("api key insert failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to create api key")
		return
	}
	a.json(w, http.StatusCreated, map[string]any{
		"id":         keyID,
		"name":       req.Name,
		"key":        key,
		"created_at": createdAt,
	})
}

func (a *App) APIKeysList(w http.ResponseWriter, r *http.Request) {
	p, _ := a.currentPrincipal(r)
	rows, err := a.SQL.Query(r.Context(), sqlinline.QListAPIKeysForAccount, p.AccountID)
	if err != nil {
		a.Logger.Error().Err(err).Msg("api key list failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to list api keys")
		return
	}
	defer rows.Close()
	keys := []apiKeyDTO{}
	for rows.Next() {
		var k apiKeyDTO
		if err := rows.Scan(&k.ID, &k.AccountID, &k.Name, &k.CreatedAt, &k.RevokedAt); err != nil {
			a.Logger.Error().Err(err).Msg("api key list scan failed")
			a.error(w, http.StatusInternalServerError, "internal", "failed to list api keys")
			return
		}
		keys = append(keys, k)
	}
	if err := rows.Err(); err != nil {
		a.Logger.Error().Err(err).Msg("api key list rows failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to list api keys")
		return
	}
	a.json(w, http.StatusOK, map[string]any{"api_keys": keys})
}

// APIKeysRevoke disables a key permanently. Revoked keys stay listed for
// audit but stop authenticating immediately.
func (a *App) APIKeysRevoke(w http.ResponseWriter, r *http.Request) {
	keyID := chi.URLParam(r, "keyID")
	p, _ := a.currentPrincipal(r)
	row := a.SQL.QueryRow(r.Context(), sqlinline.QRevokeAPIKey, keyID, p.AccountID)
	var id string
	if err := row.Scan(&id); err != nil {
		a.error(w, http.StatusNotFound, "not_found", "api key not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
