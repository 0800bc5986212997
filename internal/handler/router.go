package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"

	"signup-web/internal/container"
	"signup-web/internal/middleware"
)

// NewRouter wires middleware and routes. trustedOrigins lists extra
// host:port pairs allowed to post forms.
func NewRouter(c *container.Container, trustedOrigins ...string) *chi.Mux {
	cfg := c.GetConfig()
	log := c.GetLogger()

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(middleware.AccessLog(log))
	r.Use(chiMiddleware.Recoverer)

	healthHandler := NewHealthHandler(c)
	pageHandler := NewPageHandler(c.GetRenderer(), log)

	// Health check (no session)
	r.Get("/health", healthHandler.Check)

	r.Group(func(r chi.Router) {
		r.Use(middleware.CSRF(middleware.CSRFConfig{
			AuthKey:        cfg.CSRFKey,
			Secure:         cfg.CookieSecure,
			TrustedOrigins: trustedOrigins,
		}, log))
		r.Use(middleware.Session(c.GetSessionService(), cfg.CookieSecure, log))

		pageHandler.RegisterRoutes(r)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "Page not found", http.StatusNotFound)
	})

	log.Info("Router configured successfully")
	return r
}
