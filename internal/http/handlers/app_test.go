package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"

	"translationportal/internal/infra"
	"translationportal/internal/mailer"
	"translationportal/internal/middleware"
)

// fakeSQL routes handler statements to per-test hooks.
type fakeSQL struct {
	queryRow func(query string, args ...any) pgx.Row
	query    func(query string, args ...any) (pgx.Rows, error)
	exec     func(query string, args ...any) (pgconn.CommandTag, error)
}

func (f *fakeSQL) QueryRow(_ context.Context, query string, args ...any) pgx.Row {
	if f.queryRow == nil {
		return SimpleRow{}
	}
	return f.queryRow(query, args...)
}

func (f *fakeSQL) Query(_ context.Context, query string, args ...any) (pgx.Rows, error) {
	if f.query == nil {
		return nil, errors.New("query not supported")
	}
	return f.query(query, args...)
}

func (f *fakeSQL) Exec(_ context.Context, query string, args ...any) (pgconn.CommandTag, error) {
	if f.exec == nil {
		return pgconn.CommandTag{}, errors.New("exec not supported")
	}
	return f.exec(query, args...)
}

// sliceRows plays back one scan function per row.
type sliceRows struct {
	TestRowsBase
	rows []func(dest ...any) error
	idx  int
	err  error
}

func (r *sliceRows) Next() bool {
	if r.idx >= len(r.rows) {
		return false
	}
	r.idx++
	return true
}

func (r *sliceRows) Scan(dest ...any) error {
	return r.rows[r.idx-1](dest...)
}

func (r *sliceRows) Close() {}

func (r *sliceRows) Err() error { return r.err }

type recordingMailer struct {
	sent []mailer.Message
}

func (m *recordingMailer) Send(_ context.Context, msg mailer.Message) error {
	m.sent = append(m.sent, msg)
	return nil
}

func newTestApp(sql infra.SQLExecutor) (*App, *recordingMailer) {
	mail := &recordingMailer{}
	cfg := &infra.Config{
		AppEnv:     "test",
		Port:       "8080",
		BaseURL:    "http://localhost:8080",
		SessionTTL: time.Hour,
	}
	return NewApp(sql, zerolog.Nop(), cfg, mail), mail
}

// asClient stamps a client session principal onto the request.
func asClient(r *http.Request, userID string) *http.Request {
	return r.WithContext(middleware.ContextWithPrincipal(r.Context(), middleware.Principal{
		UserID:    userID,
		AccountID: "account-1",
		Role:      "client",
		Locale:    "en",
	}))
}

func asAdmin(r *http.Request, userID string) *http.Request {
	return r.WithContext(middleware.ContextWithPrincipal(r.Context(), middleware.Principal{
		UserID:    userID,
		AccountID: "account-admin",
		Role:      "admin",
		Locale:    "en",
	}))
}

// scanTime fills a *time.Time destination with the current time.
func scanTime(dest any) error {
	*dest.(*time.Time) = time.Now()
	return nil
}

func uniqueViolation() error {
	return &pgconn.PgError{Code: "23505", Message: "duplicate key value violates unique constraint"}
}

// withURLParam injects a chi route parameter for direct handler invocation.
func withURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}
