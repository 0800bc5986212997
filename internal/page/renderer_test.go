package page

import (
	"bytes"
	"html/template"
	"strings"
	"testing"
	"time"

	"signup-web/internal/view"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testCSRFField = template.HTML(`<input type="hidden" name="gorilla.csrf.Token" value="tok">`)

func render(t *testing.T, state State) string {
	t.Helper()
	r, err := NewRenderer(5 * time.Second)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, r.Render(&buf, state, testCSRFField))
	return buf.String()
}

func TestRender_Cards(t *testing.T) {
	html := render(t, State{
		Loaded: true,
		Cards: []view.Card{
			{
				Name:        "Chess Club",
				Description: "Learn **strategies**",
				Schedule:    "Fridays",
				SpotsLeft:   1,
				Participants: []view.ParticipantRow{
					{Activity: "Chess Club", Email: "a@x.com", Token: "row-1"},
				},
			},
			{Name: "Art Club", SpotsLeft: -1},
		},
	})

	assert.Contains(t, html, "<h4>Chess Club</h4>")
	assert.Contains(t, html, "<strong>strategies</strong>")
	assert.Contains(t, html, "<strong>Schedule:</strong> Fridays")
	assert.Contains(t, html, "<strong>Availability:</strong> 1 spots left")
	assert.Contains(t, html, `data-activity="Chess Club"`)
	assert.Contains(t, html, `data-email="a@x.com"`)
	assert.Contains(t, html, `name="row" value="row-1"`)
	assert.Equal(t, 1, strings.Count(html, `class="delete-btn"`))

	assert.Contains(t, html, "-1 spots left")
	assert.Equal(t, 1, strings.Count(html, view.NoParticipantsText))
	assert.NotContains(t, html, "Loading activities...")
}

func TestRender_ListStates(t *testing.T) {
	tests := []struct {
		name     string
		state    State
		expected string
	}{
		{"before first load", State{}, "Loading activities..."},
		{"load failed", State{Loaded: true, Failure: view.LoadFailedText}, view.LoadFailedText},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			html := render(t, tt.state)
			assert.Contains(t, html, tt.expected)
			assert.NotContains(t, html, `class="activity-card"`)
		})
	}
}

func TestRender_EscapesUntrustedText(t *testing.T) {
	html := render(t, State{
		Loaded: true,
		Cards: []view.Card{{
			Name:        "<script>alert(1)</script>",
			Description: "<b>raw</b>",
			Participants: []view.ParticipantRow{
				{Activity: "x", Email: `"><img src=x>`, Token: "row-1"},
			},
		}},
	})

	assert.NotContains(t, html, "<script>alert(1)</script>")
	assert.NotContains(t, html, "<b>raw</b>")
	assert.NotContains(t, html, `"><img src=x>`)
}

func TestRender_SignupForm(t *testing.T) {
	html := render(t, State{
		Loaded: true,
		Options: []view.Option{
			{Value: "", Label: view.PlaceholderOption},
			{Value: "Chess Club", Label: "Chess Club"},
		},
		Form: FormValues{Activity: "Chess Club", Email: "a@x.com"},
	})

	assert.Contains(t, html, `type="email" id="email" name="email" required`)
	assert.Contains(t, html, `value="a@x.com"`)
	assert.Contains(t, html, `<option value="">-- Select an activity --</option>`)
	assert.Contains(t, html, `<option value="Chess Club" selected>Chess Club</option>`)
	assert.Contains(t, html, string(testCSRFField))
}

func TestRender_Message(t *testing.T) {
	visible := render(t, State{Message: MessageState{Kind: view.MessageSuccess, Text: "Signed up", Visible: true}})
	assert.Contains(t, visible, `class="message success"`)
	assert.Contains(t, visible, "Signed up")
	assert.Contains(t, visible, `http-equiv="refresh" content="6;url=/view"`)

	hidden := render(t, State{Message: MessageState{Kind: view.MessageSuccess, Text: "Signed up"}})
	assert.Contains(t, hidden, `class="message success hidden"`)
	assert.NotContains(t, hidden, "Signed up")
	assert.NotContains(t, hidden, `http-equiv="refresh"`)
}

func TestRender_ConfirmDialog(t *testing.T) {
	html := render(t, State{
		Loaded:  true,
		Pending: &view.Prompt{Row: "row-7", Activity: "Chess Club", Email: "a@x.com"},
	})

	assert.Contains(t, html, `id="confirm-dialog"`)
	assert.Contains(t, html, "Are you sure you want to unregister a@x.com from Chess Club?")
	assert.Contains(t, html, `name="row" value="row-7"`)
	assert.Contains(t, html, `value="confirm"`)
	assert.Contains(t, html, `value="cancel"`)

	assert.NotContains(t, render(t, State{Loaded: true}), `id="confirm-dialog"`)
}

func TestNewRenderer_DefaultDelay(t *testing.T) {
	r, err := NewRenderer(0)
	require.NoError(t, err)
	assert.Equal(t, view.DefaultHideDelay, r.hideDelay)
}
