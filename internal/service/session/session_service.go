// Package session keeps one page document and controller per browser session
package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"signup-web/internal/config"
	"signup-web/internal/page"
	"signup-web/internal/service"
	"signup-web/internal/view"
	"signup-web/pkg/logger"
)

// Session is one browser's page and the controller driving it
type Session struct {
	ID         string
	Document   *page.Document
	Controller *view.Controller

	mu       sync.Mutex
	lastSeen time.Time
}

// LastSeen returns when the session was last used
func (s *Session) LastSeen() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen
}

func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	s.lastSeen = now
	s.mu.Unlock()
}

// Service owns every live session and evicts idle ones
type Service struct {
	client    service.ActivitiesClient
	hideDelay time.Duration
	idleTTL   time.Duration
	interval  time.Duration
	logger    *logger.Logger
	now       func() time.Time

	mu       sync.RWMutex
	sessions map[string]*Session

	runMu     sync.Mutex
	ticker    *time.Ticker
	stopSweep chan struct{}
	done      chan struct{}
	isRunning bool
}

// NewService creates a session service whose controllers talk to client
func NewService(client service.ActivitiesClient, cfg *config.Config, logger *logger.Logger) *Service {
	return &Service{
		client:    client,
		hideDelay: cfg.MessageHideDelay,
		idleTTL:   cfg.SessionIdleTTL,
		interval:  cfg.SessionSweepInterval,
		logger:    logger,
		now:       time.Now,
		sessions:  make(map[string]*Session),
	}
}

// Get returns the session for id and marks it used
func (s *Service) Get(id string) (*Session, bool) {
	if id == "" {
		return nil, false
	}
	s.mu.RLock()
	sess, ok := s.sessions[id]
	s.mu.RUnlock()
	if ok {
		sess.touch(s.now())
	}
	return sess, ok
}

// GetOrCreate returns the session for id, or a new one under a fresh id when
// id is empty or unknown. created reports which happened.
func (s *Service) GetOrCreate(id string) (sess *Session, created bool) {
	if sess, ok := s.Get(id); ok {
		return sess, false
	}

	doc := page.NewDocument()
	sess = &Session{
		ID:       uuid.NewString(),
		Document: doc,
		lastSeen: s.now(),
	}
	sess.Controller = view.NewController(view.Deps{
		Client:    s.client,
		List:      doc,
		Select:    doc,
		Form:      doc,
		Messages:  doc,
		Confirmer: doc,
		HideDelay: s.hideDelay,
		Logger:    s.logger.WithField("session_id", sess.ID),
	})

	s.mu.Lock()
	s.sessions[sess.ID] = sess
	s.mu.Unlock()

	s.logger.WithField("session_id", sess.ID).Debug("Created session")
	return sess, true
}

// Count returns the number of live sessions
func (s *Service) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// Start begins the periodic idle sweep. The sweep runs until Stop, even
// after ctx is done.
func (s *Service) Start(ctx context.Context) error {
	s.runMu.Lock()
	defer s.runMu.Unlock()

	if s.isRunning {
		return nil
	}
	if s.idleTTL <= 0 || s.interval <= 0 {
		s.logger.Info("Session eviction disabled")
		return nil
	}

	s.ticker = time.NewTicker(s.interval)
	s.stopSweep = make(chan struct{})
	s.done = make(chan struct{})
	go s.sweepRoutine(s.ticker, s.stopSweep, s.done)

	s.isRunning = true
	s.logger.WithFields(map[string]interface{}{
		"idle_ttl": s.idleTTL,
		"interval": s.interval,
	}).Info("Session service started")
	return nil
}

// Stop ends the sweep and waits for it to exit
func (s *Service) Stop(ctx context.Context) error {
	s.runMu.Lock()
	defer s.runMu.Unlock()

	if !s.isRunning {
		return nil
	}

	s.ticker.Stop()
	close(s.stopSweep)
	s.isRunning = false

	select {
	case <-s.done:
	case <-ctx.Done():
		return ctx.Err()
	}

	s.logger.WithField("sessions", s.Count()).Info("Session service stopped")
	return nil
}

func (s *Service) sweepRoutine(ticker *time.Ticker, stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)
	for {
		select {
		case <-ticker.C:
			s.EvictIdle()
		case <-stop:
			return
		}
	}
}

// EvictIdle drops every session unused for longer than the idle TTL and
// returns how many went
func (s *Service) EvictIdle() int {
	cutoff := s.now().Add(-s.idleTTL)

	s.mu.Lock()
	evicted := 0
	for id, sess := range s.sessions {
		if sess.LastSeen().Before(cutoff) {
			delete(s.sessions, id)
			evicted++
		}
	}
	remaining := len(s.sessions)
	s.mu.Unlock()

	if evicted > 0 {
		s.logger.WithFields(map[string]interface{}{
			"evicted":   evicted,
			"remaining": remaining,
		}).Debug("Evicted idle sessions")
	}
	return evicted
}
