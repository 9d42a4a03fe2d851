package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/jackc/pgx/v5/pgconn"

	"translationportal/internal/infra"
	"translationportal/internal/mailer"
	"translationportal/internal/middleware"
)

// App is the handler container; it carries the shared dependencies every
// route needs.
type App struct {
	SQL    infra.SQLExecutor
	Logger infra.Logger
	Cfg    *infra.Config
	Mail   mailer.Mailer
}

func NewApp(sql infra.SQLExecutor, logger infra.Logger, cfg *infra.Config, mail mailer.Mailer) *App {
	return &App{SQL: sql, Logger: logger, Cfg: cfg, Mail: mail}
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (a *App) error(w http.ResponseWriter, code int, errCode, msg string) {
	a.json(w, code, map[string]any{
		"error": map[string]string{"code": errCode, "message": msg},
	})
}

// currentPrincipal returns the session principal; routes behind SessionAuth
// always have one.
func (a *App) currentPrincipal(r *http.Request) (middleware.Principal, bool) {
	return middleware.PrincipalFromContext(r.Context())
}

func (a *App) currentUserID(r *http.Request) string {
	return middleware.UserIDFromContext(r.Context())
}

// isUniqueViolation reports whether the error is a Postgres duplicate-key
// violation, which handlers surface as a conflict.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
