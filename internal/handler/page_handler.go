package handler

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/csrf"

	"signup-web/internal/middleware"
	"signup-web/internal/page"
	"signup-web/internal/service/session"
	"signup-web/internal/view"
	"signup-web/pkg/logger"
)

// PageHandler serves the sign-up page and turns its forms into controller calls
type PageHandler struct {
	renderer *page.Renderer
	logger   *logger.Logger
}

// NewPageHandler creates a new page handler
func NewPageHandler(renderer *page.Renderer, logger *logger.Logger) *PageHandler {
	return &PageHandler{
		renderer: renderer,
		logger:   logger,
	}
}

// RegisterRoutes registers page routes. The router must already carry the
// session and CSRF middleware.
func (h *PageHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.Start)
	r.Get("/view", h.View)
	r.Post("/signup", h.Signup)
	r.Post("/unregister", h.Unregister)
	r.Post("/unregister/confirm", h.ConfirmUnregister)
}

// Start handles GET /: a fresh page with the initial load
func (h *PageHandler) Start(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}

	sess.Document.Clear()
	sess.Controller.Start(r.Context())
	h.render(w, r, sess)
}

// View handles GET /view: the current page without fetching
func (h *PageHandler) View(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}

	if !sess.Document.Snapshot().Loaded {
		sess.Controller.Start(r.Context())
	}
	h.render(w, r, sess)
}

// Signup handles POST /signup
func (h *PageHandler) Signup(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	if err := r.ParseForm(); err != nil {
		h.logger.WithError(err).Warn("Failed to parse signup form")
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	activity := r.PostFormValue("activity")
	email := strings.TrimSpace(r.PostFormValue("email"))

	sess.Document.SetFormValues(activity, email)
	sess.Controller.SubmitSignup(r.Context(), activity, email)
	h.redirectToView(w, r)
}

// Unregister handles POST /unregister: asks for confirmation of one row
func (h *PageHandler) Unregister(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}

	row := view.RowToken(r.PostFormValue("row"))
	sess.Controller.Remove(r.Context(), row)
	h.redirectToView(w, r)
}

// ConfirmUnregister handles POST /unregister/confirm
func (h *PageHandler) ConfirmUnregister(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}

	row := view.RowToken(r.PostFormValue("row"))
	pending, hasPending := sess.Document.Pending()

	switch r.PostFormValue("decision") {
	case "confirm":
		if !hasPending || pending.Row != row {
			// the prompt came from an older render; treat as unanswered
			h.logger.WithField("row", string(row)).Info("Confirmation for a prompt that is no longer pending")
			sess.Document.CancelConfirmation()
			sess.Controller.Remove(r.Context(), row)
			break
		}
		sess.Controller.Remove(page.WithConfirmed(r.Context(), row), row)
	case "cancel":
		sess.Document.CancelConfirmation()
	default:
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	h.redirectToView(w, r)
}

func (h *PageHandler) session(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	sess, ok := middleware.GetSession(r.Context())
	if !ok {
		h.logger.WithField("request_id", middleware.GetRequestID(r.Context())).Error("Request reached page handler without a session")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return nil, false
	}
	return sess, true
}

func (h *PageHandler) render(w http.ResponseWriter, r *http.Request, sess *session.Session) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")

	if err := h.renderer.Render(w, sess.Document.Snapshot(), csrf.TemplateField(r)); err != nil {
		h.logger.WithError(err).WithField("session_id", sess.ID).Error("Failed to render page")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

func (h *PageHandler) redirectToView(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/view", http.StatusSeeOther)
}
