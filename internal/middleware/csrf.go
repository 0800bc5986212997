package middleware

import (
	"net/http"

	"github.com/gorilla/csrf"

	"signup-web/pkg/logger"
)

// CSRFConfig holds the form protection settings
type CSRFConfig struct {
	AuthKey        []byte // 32 bytes
	Secure         bool   // cookie only over HTTPS
	TrustedOrigins []string
}

// CSRF protects form posts. When the site is served over plain HTTP the
// request is marked as such so the origin check compares against http://.
func CSRF(cfg CSRFConfig, log *logger.Logger) func(http.Handler) http.Handler {
	protect := csrf.Protect(
		cfg.AuthKey,
		csrf.Secure(cfg.Secure),
		csrf.Path("/"),
		csrf.SameSite(csrf.SameSiteLaxMode),
		csrf.TrustedOrigins(cfg.TrustedOrigins),
		csrf.ErrorHandler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			log.WithFields(map[string]interface{}{
				"request_id": GetRequestID(r.Context()),
				"path":       r.URL.Path,
			}).WithError(csrf.FailureReason(r)).Warn("CSRF check failed")
			http.Error(w, "Forbidden - invalid form token. Please reload the page and try again.", http.StatusForbidden)
		})),
	)

	return func(next http.Handler) http.Handler {
		protected := protect(next)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !cfg.Secure {
				r = csrf.PlaintextHTTPRequest(r)
			}
			protected.ServeHTTP(w, r)
		})
	}
}
