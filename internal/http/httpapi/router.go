// Package httpapi assembles the HTTP routing tree: public auth endpoints,
// the session-authenticated application surface, the admin surface and the
// API-key-authenticated /api/v1 integration surface.
package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"translationportal/internal/http/handlers"
	"translationportal/internal/infra"
	"translationportal/internal/middleware"
)

// NewRouter wires middleware and routes around the handler container.
// countryLookup may be nil when no GeoIP database is configured.
func NewRouter(app *handlers.App, cfg *infra.Config, logger infra.Logger, countryLookup middleware.CountryLookup) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CORS(cfg.AllowedOrigins))
	r.Use(middleware.I18N("en", countryLookup))
	r.Use(middleware.RateLimit(cfg.RateLimitPerMin, time.Minute))

	r.Get("/healthz", app.Health)

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", app.Register)
			r.Get("/verify-email", app.VerifyEmail)
			r.Post("/login", app.Login)
			r.Post("/logout", app.Logout)
			r.Post("/forgot-password", app.ForgotPassword)
			r.Post("/reset-password", app.ResetPassword)
		})

		// Session-authenticated application surface.
		r.Group(func(r chi.Router) {
			r.Use(middleware.SessionAuth(app.SQL))

			r.Get("/me", app.Me)

			r.Route("/auth/2fa", func(r chi.Router) {
				r.Post("/setup", app.TwoFactorSetup)
				r.Post("/verify", app.TwoFactorVerify)
				r.Post("/disable", app.TwoFactorDisable)
			})

			r.Post("/files/upload", app.FilesUpload)

			r.Route("/translation-requests", func(r chi.Router) {
				r.Post("/", app.OrdersCreate)
				r.Post("/estimate", app.OrdersQuote)
				r.Get("/", app.OrdersList)
				r.Route("/{orderID}", func(r chi.Router) {
					r.Get("/", app.OrdersGet)
					r.Patch("/", app.OrdersPatch)
					r.Get("/download", app.OrderDownload)
					r.Post("/updates", app.UpdatesCreate)
					r.Get("/updates", app.UpdatesList)
				})
			})

			r.Route("/api-keys", func(r chi.Router) {
				r.Post("/", app.APIKeysCreate)
				r.Get("/", app.APIKeysList)
				r.Delete("/{keyID}", app.APIKeysRevoke)
			})

			// Admin surface.
			r.Route("/admin", func(r chi.Router) {
				r.Use(middleware.RequireAdmin)

				r.Get("/orders", app.AdminOrdersList)

				r.Route("/users", func(r chi.Router) {
					r.Get("/", app.AdminUsersList)
					r.Post("/", app.AdminUsersCreate)
					r.Get("/{userID}", app.AdminUsersGet)
					r.Patch("/{userID}", app.AdminUsersPatch)
					r.Delete("/{userID}", app.AdminUsersDelete)
				})

				r.Route("/teams", func(r chi.Router) {
					r.Get("/", app.AdminTeamsList)
					r.Post("/", app.AdminTeamsCreate)
					r.Get("/{teamID}", app.AdminTeamsGet)
					r.Patch("/{teamID}", app.AdminTeamsPatch)
					r.Delete("/{teamID}", app.AdminTeamsDelete)
					r.Post("/{teamID}/credits", app.AdminTeamsAddCredits)
				})

				r.Route("/accounts", func(r chi.Router) {
					r.Get("/", app.AdminAccountsList)
					r.Get("/{accountID}", app.AdminAccountsGet)
					r.Post("/{accountID}/credits", app.AdminAccountsAddCredits)
					r.Get("/{accountID}/transactions", app.AdminAccountTransactions)
				})

				r.Get("/transactions", app.AdminTransactionsList)
			})
		})

		// API-key-authenticated integration surface.
		r.Route("/v1", func(r chi.Router) {
			r.Use(middleware.APIKeyAuth(app.SQL))

			r.Get("/translation-requests", app.V1OrdersList)
			r.Get("/translation-requests/{orderID}", app.V1OrdersGet)
		})
	})

	return r
}
