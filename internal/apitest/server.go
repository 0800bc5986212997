// Package apitest runs an in-process stand-in for the activities server.
// It follows the same wire contract and is only meant for tests.
package apitest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"slices"
	"sync"

	"github.com/go-chi/chi/v5"

	"signup-web/internal/domain"
)

// Server is a fake activities server backed by an in-memory collection
type Server struct {
	*httptest.Server

	mu         sync.Mutex
	activities []domain.Activity
	requests   []Request
	override   http.HandlerFunc
}

// Request records one call made against the fake
type Request struct {
	Method   string
	Activity string
	Email    string
}

// New starts a fake server seeded with the given activities
func New(seed ...domain.Activity) *Server {
	s := &Server{}
	s.Reset(seed...)

	r := chi.NewRouter()
	r.Use(s.record)
	r.Get("/activities", s.list)
	r.Post("/activities/{activity}/signup", s.signup)
	r.Delete("/activities/{activity}/unregister", s.unregister)

	s.Server = httptest.NewServer(r)
	return s
}

// Reset replaces the collection and clears recorded requests
func (s *Server) Reset(seed ...domain.Activity) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.activities = make([]domain.Activity, 0, len(seed))
	for _, a := range seed {
		a.Participants = slices.Clone(a.Participants)
		s.activities = append(s.activities, a)
	}
	s.requests = nil
	s.override = nil
}

// Override makes every following request go to h instead of the fake logic.
// Pass nil to restore normal behaviour.
func (s *Server) Override(h http.HandlerFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.override = h
}

// Requests returns the calls seen so far
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.requests)
}

// Count returns how many calls used the given method
func (s *Server) Count(method string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for _, r := range s.requests {
		if r.Method == method {
			n++
		}
	}
	return n
}

// Participants returns the current roster of an activity
func (s *Server) Participants(activity string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if a := s.find(activity); a != nil {
		return slices.Clone(a.Participants)
	}
	return nil
}

func (s *Server) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		override := s.override
		s.mu.Unlock()

		if override != nil {
			s.append(Request{Method: r.Method})
			override(w, r)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) append(req Request) {
	s.mu.Lock()
	s.requests = append(s.requests, req)
	s.mu.Unlock()
}

func (s *Server) list(w http.ResponseWriter, r *http.Request) {
	s.append(Request{Method: r.Method})

	s.mu.Lock()
	collection := domain.NewActivityCollection(s.activities...)
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, collection)
}

func (s *Server) signup(w http.ResponseWriter, r *http.Request) {
	name, email := params(r)
	s.append(Request{Method: r.Method, Activity: name, Email: email})

	s.mu.Lock()
	defer s.mu.Unlock()

	a := s.find(name)
	switch {
	case a == nil:
		writeDetail(w, http.StatusNotFound, "Activity not found")
	case slices.Contains(a.Participants, email):
		writeDetail(w, http.StatusBadRequest, "Student is already signed up")
	default:
		a.Participants = append(a.Participants, email)
		writeJSON(w, http.StatusOK, domain.ActionResponse{Message: fmt.Sprintf("Signed up %s for %s", email, name)})
	}
}

func (s *Server) unregister(w http.ResponseWriter, r *http.Request) {
	name, email := params(r)
	s.append(Request{Method: r.Method, Activity: name, Email: email})

	s.mu.Lock()
	defer s.mu.Unlock()

	a := s.find(name)
	if a == nil {
		writeDetail(w, http.StatusNotFound, "Activity not found")
		return
	}
	idx := slices.Index(a.Participants, email)
	if idx < 0 {
		writeDetail(w, http.StatusBadRequest, "Student is not signed up for this activity")
		return
	}
	a.Participants = slices.Delete(a.Participants, idx, idx+1)
	writeJSON(w, http.StatusOK, domain.ActionResponse{Message: fmt.Sprintf("Unregistered %s from %s", email, name)})
}

// find must be called with s.mu held
func (s *Server) find(name string) *domain.Activity {
	for i := range s.activities {
		if s.activities[i].Name == name {
			return &s.activities[i]
		}
	}
	return nil
}

func params(r *http.Request) (string, string) {
	name := chi.URLParam(r, "activity")
	if unescaped, err := url.PathUnescape(name); err == nil {
		name = unescaped
	}
	return name, r.URL.Query().Get("email")
}

func writeDetail(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
