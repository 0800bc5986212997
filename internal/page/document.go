// Package page holds the per-session page document and renders it to HTML.
package page

import (
	"context"
	"slices"
	"sync"

	"signup-web/internal/view"
)

type confirmedKey struct{}

// WithConfirmed marks ctx as carrying the user's approval for one row
func WithConfirmed(ctx context.Context, row view.RowToken) context.Context {
	return context.WithValue(ctx, confirmedKey{}, row)
}

// ConfirmedFrom returns the row approved in ctx, if any
func ConfirmedFrom(ctx context.Context) (view.RowToken, bool) {
	row, ok := ctx.Value(confirmedKey{}).(view.RowToken)
	return row, ok && row != ""
}

// FormValues are the current contents of the signup form
type FormValues struct {
	Activity string
	Email    string
}

// MessageState is the message area, including whether it is shown
type MessageState struct {
	Kind    view.MessageKind
	Text    string
	Visible bool
}

// State is a point-in-time copy of a Document
type State struct {
	Loaded  bool
	Cards   []view.Card
	Failure string
	Options []view.Option
	Form    FormValues
	Message MessageState
	Pending *view.Prompt
}

// Document is the in-memory page one browser session sees. It implements
// every part the view controller renders into. Hide timers call into it
// from their own goroutine, so all access goes through mu.
type Document struct {
	mu    sync.Mutex
	state State
}

// NewDocument returns an empty document
func NewDocument() *Document {
	return &Document{}
}

var (
	_ view.ActivityList   = (*Document)(nil)
	_ view.ActivitySelect = (*Document)(nil)
	_ view.SignupForm     = (*Document)(nil)
	_ view.MessageArea    = (*Document)(nil)
	_ view.Confirmer      = (*Document)(nil)
)

// ShowCards replaces the list with cards
func (d *Document) ShowCards(cards []view.Card) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.state.Loaded = true
	d.state.Cards = cards
	d.state.Failure = ""
	d.dropStalePrompt()
}

// ShowFailure replaces the list with a static text
func (d *Document) ShowFailure(text string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.state.Loaded = true
	d.state.Cards = nil
	d.state.Failure = text
	d.state.Pending = nil
}

// SetOptions replaces the selection control's options
func (d *Document) SetOptions(options []view.Option) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.state.Options = options
}

// Reset clears the signup form
func (d *Document) Reset() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.state.Form = FormValues{}
}

// SetFormValues records what the user submitted so the form keeps it on failure
func (d *Document) SetFormValues(activity, email string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.state.Form = FormValues{Activity: activity, Email: email}
}

// Show makes msg the visible message, replacing any earlier one
func (d *Document) Show(msg view.Message) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.state.Message = MessageState{Kind: msg.Kind, Text: msg.Text, Visible: true}
}

// Hide hides the message and keeps its text and kind
func (d *Document) Hide() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.state.Message.Visible = false
}

// Confirm approves prompt only when ctx carries the approval for that exact
// row. Otherwise the prompt is left pending for the user to answer.
func (d *Document) Confirm(ctx context.Context, prompt view.Prompt) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if row, ok := ConfirmedFrom(ctx); ok && row == prompt.Row {
		d.state.Pending = nil
		return true
	}
	p := prompt
	d.state.Pending = &p
	return false
}

// CancelConfirmation drops the pending prompt
func (d *Document) CancelConfirmation() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.state.Pending = nil
}

// Pending returns the prompt awaiting an answer
func (d *Document) Pending() (view.Prompt, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.state.Pending == nil {
		return view.Prompt{}, false
	}
	return *d.state.Pending, true
}

// Clear returns the document to its state before the first load
func (d *Document) Clear() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.state = State{}
}

// Snapshot returns a copy safe to render while timers keep running
func (d *Document) Snapshot() State {
	d.mu.Lock()
	defer d.mu.Unlock()

	s := d.state
	s.Cards = slices.Clone(d.state.Cards)
	s.Options = slices.Clone(d.state.Options)
	if d.state.Pending != nil {
		p := *d.state.Pending
		s.Pending = &p
	}
	return s
}

// dropStalePrompt must be called with mu held
func (d *Document) dropStalePrompt() {
	if d.state.Pending == nil {
		return
	}
	for _, card := range d.state.Cards {
		for _, row := range card.Participants {
			if row.Token == d.state.Pending.Row {
				return
			}
		}
	}
	d.state.Pending = nil
}
