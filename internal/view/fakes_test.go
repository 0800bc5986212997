package view

import (
	"context"
	"sync"
	"time"

	"signup-web/internal/domain"
)

type fakeList struct {
	mu      sync.Mutex
	cards   []Card
	failure string
	renders int
}

func (l *fakeList) ShowCards(cards []Card) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.cards = cards
	l.failure = ""
	l.renders++
}

func (l *fakeList) ShowFailure(text string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.cards = nil
	l.failure = text
	l.renders++
}

type fakeSelect struct {
	options []Option
	calls   int
}

func (s *fakeSelect) SetOptions(options []Option) {
	s.options = options
	s.calls++
}

type fakeForm struct {
	activity string
	email    string
	resets   int
}

func (f *fakeForm) Reset() {
	f.activity = ""
	f.email = ""
	f.resets++
}

type fakeMessages struct {
	mu      sync.Mutex
	current Message
	visible bool
	shown   []Message
}

func (m *fakeMessages) Show(msg Message) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.current = msg
	m.visible = true
	m.shown = append(m.shown, msg)
}

func (m *fakeMessages) Hide() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.visible = false
}

type fakeConfirmer struct {
	answer  bool
	prompts []Prompt
}

func (c *fakeConfirmer) Confirm(_ context.Context, prompt Prompt) bool {
	c.prompts = append(c.prompts, prompt)
	return c.answer
}

type scheduled struct {
	delay time.Duration
	f     func()
}

type fakeScheduler struct {
	mu      sync.Mutex
	pending []scheduled
}

func (s *fakeScheduler) AfterFunc(d time.Duration, f func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending = append(s.pending, scheduled{delay: d, f: f})
}

// fire runs the i-th scheduled callback
func (s *fakeScheduler) fire(i int) {
	s.mu.Lock()
	f := s.pending[i].f
	s.mu.Unlock()
	f()
}

func (s *fakeScheduler) fireAll() {
	s.mu.Lock()
	pending := append([]scheduled(nil), s.pending...)
	s.mu.Unlock()
	for _, p := range pending {
		p.f()
	}
}

// gatedClient lets a test hold ListActivities calls and release them in any order
type gatedClient struct {
	mu    sync.Mutex
	gates []chan domain.ActivityCollection
	calls chan struct{}
}

func newGatedClient() *gatedClient {
	return &gatedClient{calls: make(chan struct{}, 16)}
}

func (g *gatedClient) ListActivities(ctx context.Context) (domain.ActivityCollection, error) {
	gate := make(chan domain.ActivityCollection, 1)
	g.mu.Lock()
	g.gates = append(g.gates, gate)
	g.mu.Unlock()
	g.calls <- struct{}{}

	select {
	case c := <-gate:
		return c, nil
	case <-ctx.Done():
		return domain.ActivityCollection{}, ctx.Err()
	}
}

func (g *gatedClient) release(i int, c domain.ActivityCollection) {
	g.mu.Lock()
	gate := g.gates[i]
	g.mu.Unlock()
	gate <- c
}

func (g *gatedClient) Signup(context.Context, string, string) (string, error) {
	return "", nil
}

func (g *gatedClient) Unregister(context.Context, string, string) (string, error) {
	return "", nil
}
