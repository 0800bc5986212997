package view

import (
	"context"
	"time"
)

// ActivityList is the display container for activity cards
type ActivityList interface {
	// ShowCards clears the container and renders cards in order
	ShowCards(cards []Card)

	// ShowFailure clears the container and shows a static failure text
	ShowFailure(text string)
}

// ActivitySelect is the selection control of the signup form
type ActivitySelect interface {
	// SetOptions replaces every option, placeholder included
	SetOptions(options []Option)
}

// SignupForm is the signup form itself
type SignupForm interface {
	// Reset clears the email field and the activity selection
	Reset()
}

// MessageArea shows one transient status message at a time
type MessageArea interface {
	Show(msg Message)
	Hide()
}

// Confirmer asks the user to approve an action. It returns true only when
// the user has approved this exact prompt.
type Confirmer interface {
	Confirm(ctx context.Context, prompt Prompt) bool
}

// Scheduler runs f once after d
type Scheduler interface {
	AfterFunc(d time.Duration, f func())
}

type timerScheduler struct{}

func (timerScheduler) AfterFunc(d time.Duration, f func()) {
	time.AfterFunc(d, f)
}
