package view

import "fmt"

// User-visible texts
const (
	PlaceholderOption  = "-- Select an activity --"
	LoadFailedText     = "Failed to load activities. Please try again later."
	GenericErrorText   = "An error occurred"
	SignupFailedText   = "Failed to sign up. Please try again."
	UnregisterFailText = "Failed to unregister. Please try again."
	StaleRowText       = "This participant is no longer listed. Please refresh and try again."
	NoParticipantsText = "No participants yet"
)

// MessageKind doubles as the CSS class of the message area
type MessageKind string

const (
	MessageSuccess MessageKind = "success"
	MessageError   MessageKind = "error"
)

// Message is a transient status line
type Message struct {
	Kind MessageKind
	Text string
}

// RowToken identifies one rendered participant row. Tokens are issued per
// render, so a token from an older render no longer resolves.
type RowToken string

// ParticipantRow is one roster entry with its removal affordance
type ParticipantRow struct {
	Activity string
	Email    string
	Token    RowToken
}

// Card is the rendered form of one activity
type Card struct {
	Name         string
	Description  string
	Schedule     string
	SpotsLeft    int
	Participants []ParticipantRow
}

// Availability is the "N spots left" line; negative counts are shown as-is
func (c Card) Availability() string {
	return fmt.Sprintf("%d spots left", c.SpotsLeft)
}

// Option is one entry of the selection control. The placeholder has an empty value.
type Option struct {
	Value string
	Label string
}

// Prompt is a pending confirmation for removing a participant
type Prompt struct {
	Row      RowToken
	Activity string
	Email    string
}

// Text is the question put to the user
func (p Prompt) Text() string {
	return fmt.Sprintf("Are you sure you want to unregister %s from %s?", p.Email, p.Activity)
}
