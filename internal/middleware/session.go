package middleware

import (
	"context"
	"net/http"

	"signup-web/internal/service/session"
	"signup-web/pkg/logger"
)

// SessionCookieName is the cookie carrying the session ID
const SessionCookieName = "signup_session"

// Session attaches the browser's session to the request, creating one and
// setting the cookie when the request has none or an unknown one
func Session(sessions *session.Service, secure bool, log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var id string
			if c, err := r.Cookie(SessionCookieName); err == nil {
				id = c.Value
			}

			sess, created := sessions.GetOrCreate(id)
			if created {
				http.SetCookie(w, &http.Cookie{
					Name:     SessionCookieName,
					Value:    sess.ID,
					Path:     "/",
					HttpOnly: true,
					Secure:   secure,
					SameSite: http.SameSiteLaxMode,
				})
				log.WithFields(map[string]interface{}{
					"request_id": GetRequestID(r.Context()),
					"session_id": sess.ID,
				}).Debug("Issued session cookie")
			}

			ctx := context.WithValue(r.Context(), SessionContextKey, sess)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetSession returns the session attached by Session
func GetSession(ctx context.Context) (*session.Session, bool) {
	sess, ok := ctx.Value(SessionContextKey).(*session.Session)
	return sess, ok
}
