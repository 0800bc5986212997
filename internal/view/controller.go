// Package view drives the activity sign-up page: it fetches the collection,
// renders it into the injected page parts and turns form actions into calls
// against the activities server.
package view

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"signup-web/internal/domain"
	"signup-web/internal/service"
	apperrors "signup-web/pkg/errors"
	"signup-web/pkg/logger"
)

// DefaultHideDelay is how long a status message stays visible
const DefaultHideDelay = 5 * time.Second

// Deps holds everything the controller drives
type Deps struct {
	Client    service.ActivitiesClient
	List      ActivityList
	Select    ActivitySelect
	Form      SignupForm
	Messages  MessageArea
	Confirmer Confirmer

	// Optional
	Scheduler Scheduler
	HideDelay time.Duration
	Logger    *logger.Logger
	NewToken  func() RowToken
}

// Controller orchestrates the fetch, render and submit cycle for one page
type Controller struct {
	client    service.ActivitiesClient
	list      ActivityList
	selector  ActivitySelect
	form      SignupForm
	messages  MessageArea
	confirmer Confirmer
	scheduler Scheduler
	hideDelay time.Duration
	logger    *logger.Logger
	newToken  func() RowToken

	// loadSeq numbers loads; only the newest one may render
	loadSeq atomic.Uint64

	msgMu  sync.Mutex
	msgSeq uint64

	rowsMu   sync.Mutex
	removals map[RowToken]func(context.Context)
}

// NewController creates a controller bound to one page
func NewController(deps Deps) *Controller {
	c := &Controller{
		client:    deps.Client,
		list:      deps.List,
		selector:  deps.Select,
		form:      deps.Form,
		messages:  deps.Messages,
		confirmer: deps.Confirmer,
		scheduler: deps.Scheduler,
		hideDelay: deps.HideDelay,
		logger:    deps.Logger,
		newToken:  deps.NewToken,
		removals:  make(map[RowToken]func(context.Context)),
	}
	if c.scheduler == nil {
		c.scheduler = timerScheduler{}
	}
	if c.hideDelay <= 0 {
		c.hideDelay = DefaultHideDelay
	}
	if c.logger == nil {
		c.logger = logger.NewNop()
	}
	if c.newToken == nil {
		c.newToken = func() RowToken { return RowToken(uuid.NewString()) }
	}
	return c
}

// Start performs the initial load
func (c *Controller) Start(ctx context.Context) {
	c.LoadActivities(ctx, true)
}

// LoadActivities fetches the collection and rebuilds the list. When initial
// is set the selection control is rebuilt too. A response overtaken by a
// newer load is not rendered, though an initial one still fills the options.
func (c *Controller) LoadActivities(ctx context.Context, initial bool) {
	seq := c.loadSeq.Add(1)

	collection, err := c.client.ListActivities(ctx)
	stale := seq != c.loadSeq.Load()

	log := c.logger.WithFields(map[string]interface{}{
		"load_seq": seq,
		"initial":  initial,
	})

	if err != nil {
		if stale {
			log.WithError(err).Debug("Dropping failed stale activity load")
			return
		}
		log.WithError(err).Error("Error fetching activities")
		c.replaceRemovals(nil)
		c.list.ShowFailure(LoadFailedText)
		return
	}

	if initial {
		c.selector.SetOptions(buildOptions(collection))
	}
	if stale {
		log.Debug("Dropping stale activity load")
		return
	}

	cards, removals := c.buildCards(collection)
	c.replaceRemovals(removals)
	c.list.ShowCards(cards)
	log.WithField("activities", len(cards)).Debug("Rendered activities")
}

// SubmitSignup registers email under activity
func (c *Controller) SubmitSignup(ctx context.Context, activity, email string) {
	log := c.logger.WithFields(map[string]interface{}{
		"activity": activity,
		"email":    email,
	})

	message, err := c.client.Signup(ctx, activity, email)
	if err != nil {
		log.WithError(err).Warn("Error signing up")
		c.flash(MessageError, failureText(err, SignupFailedText))
		return
	}

	c.form.Reset()
	c.flash(MessageSuccess, message)
	log.Info("Signed up participant")
	c.LoadActivities(ctx, false)
}

// SubmitUnregister removes email from activity. Callers confirm first; see Remove.
func (c *Controller) SubmitUnregister(ctx context.Context, activity, email string) {
	log := c.logger.WithFields(map[string]interface{}{
		"activity": activity,
		"email":    email,
	})

	message, err := c.client.Unregister(ctx, activity, email)
	if err != nil {
		log.WithError(err).Warn("Error unregistering")
		c.flash(MessageError, failureText(err, UnregisterFailText))
		return
	}

	c.flash(MessageSuccess, message)
	log.Info("Unregistered participant")
	c.LoadActivities(ctx, false)
}

// Remove runs the removal bound to a rendered participant row
func (c *Controller) Remove(ctx context.Context, token RowToken) {
	c.rowsMu.Lock()
	remove, ok := c.removals[token]
	c.rowsMu.Unlock()

	if !ok {
		c.logger.WithField("row", string(token)).Info("Removal requested for unknown row")
		c.flash(MessageError, StaleRowText)
		return
	}
	remove(ctx)
}

// HasRow reports whether token belongs to the current render
func (c *Controller) HasRow(token RowToken) bool {
	c.rowsMu.Lock()
	defer c.rowsMu.Unlock()
	_, ok := c.removals[token]
	return ok
}

func (c *Controller) buildCards(collection domain.ActivityCollection) ([]Card, map[RowToken]func(context.Context)) {
	activities := collection.All()
	cards := make([]Card, 0, len(activities))
	removals := make(map[RowToken]func(context.Context))

	for _, a := range activities {
		card := Card{
			Name:        a.Name,
			Description: a.Description,
			Schedule:    a.Schedule,
			SpotsLeft:   a.SpotsLeft(),
		}
		for _, email := range a.Participants {
			prompt := Prompt{Row: c.newToken(), Activity: a.Name, Email: email}
			card.Participants = append(card.Participants, ParticipantRow{
				Activity: a.Name,
				Email:    email,
				Token:    prompt.Row,
			})
			removals[prompt.Row] = func(ctx context.Context) {
				c.confirmAndUnregister(ctx, prompt)
			}
		}
		cards = append(cards, card)
	}
	return cards, removals
}

func (c *Controller) confirmAndUnregister(ctx context.Context, prompt Prompt) {
	if !c.confirmer.Confirm(ctx, prompt) {
		c.logger.WithFields(map[string]interface{}{
			"activity": prompt.Activity,
			"email":    prompt.Email,
		}).Debug("Unregister not confirmed")
		return
	}
	c.SubmitUnregister(ctx, prompt.Activity, prompt.Email)
}

func (c *Controller) replaceRemovals(removals map[RowToken]func(context.Context)) {
	if removals == nil {
		removals = make(map[RowToken]func(context.Context))
	}
	c.rowsMu.Lock()
	c.removals = removals
	c.rowsMu.Unlock()
}

// flash shows msg and hides it after the delay unless a newer message replaced it
func (c *Controller) flash(kind MessageKind, text string) {
	c.msgMu.Lock()
	c.msgSeq++
	seq := c.msgSeq
	c.messages.Show(Message{Kind: kind, Text: text})
	c.msgMu.Unlock()

	c.scheduler.AfterFunc(c.hideDelay, func() {
		c.msgMu.Lock()
		defer c.msgMu.Unlock()
		if c.msgSeq == seq {
			c.messages.Hide()
		}
	})
}

func buildOptions(collection domain.ActivityCollection) []Option {
	names := collection.Names()
	options := make([]Option, 0, len(names)+1)
	options = append(options, Option{Value: "", Label: PlaceholderOption})
	for _, name := range names {
		options = append(options, Option{Value: name, Label: name})
	}
	return options
}

// failureText picks the message shown for a failed action: the server detail
// for a rejected request, the generic text when it gave none, fallback otherwise.
func failureText(err error, fallback string) string {
	ce, ok := apperrors.AsClientError(err)
	if !ok || ce.Type != apperrors.ErrorTypeStatus {
		return fallback
	}
	if ce.Detail != "" {
		return ce.Detail
	}
	return GenericErrorText
}
