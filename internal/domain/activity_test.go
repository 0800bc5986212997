package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestActivity_SpotsLeft(t *testing.T) {
	tests := []struct {
		name     string
		activity Activity
		want     int
	}{
		{"empty roster", Activity{MaxParticipants: 12}, 12},
		{"partly full", Activity{MaxParticipants: 2, Participants: []string{"a@x.com"}}, 1},
		{"full", Activity{MaxParticipants: 1, Participants: []string{"a@x.com"}}, 0},
		{"over-enrolled", Activity{MaxParticipants: 1, Participants: []string{"a@x.com", "b@x.com", "c@x.com"}}, -2},
		{"zero capacity", Activity{}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.activity.SpotsLeft())
		})
	}
}

func TestActivityCollection_UnmarshalKeepsOrder(t *testing.T) {
	body := `{
		"Science Club": {"description": "Experiments", "schedule": "Thursdays", "max_participants": 20, "participants": ["s@x.com"]},
		"Art Club": {"description": "Painting", "schedule": "Mondays", "max_participants": 15, "participants": []},
		"Chess Club": {"description": "Strategy", "schedule": "Fridays", "max_participants": 2, "participants": ["a@x.com", "b@x.com"]}
	}`

	var c ActivityCollection
	require.NoError(t, json.Unmarshal([]byte(body), &c))

	assert.Equal(t, []string{"Science Club", "Art Club", "Chess Club"}, c.Names())
	assert.Equal(t, 3, c.Len())

	chess, ok := c.Get("Chess Club")
	require.True(t, ok)
	assert.Equal(t, "Chess Club", chess.Name)
	assert.Equal(t, "Fridays", chess.Schedule)
	assert.Equal(t, []string{"a@x.com", "b@x.com"}, chess.Participants)

	all := c.All()
	require.Len(t, all, 3)
	assert.Equal(t, "Science Club", all[0].Name)
	assert.Empty(t, all[1].Participants)
}

func TestActivityCollection_UnmarshalDuplicateKey(t *testing.T) {
	body := `{"A": {"max_participants": 1}, "B": {"max_participants": 2}, "A": {"max_participants": 3}}`

	var c ActivityCollection
	require.NoError(t, json.Unmarshal([]byte(body), &c))

	assert.Equal(t, []string{"A", "B"}, c.Names())
	a, _ := c.Get("A")
	assert.Equal(t, 3, a.MaxParticipants)
}

func TestActivityCollection_UnmarshalErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"array", `[1, 2]`},
		{"null", `null`},
		{"string", `"activities"`},
		{"bad activity", `{"A": {"max_participants": "many"}}`},
		{"not json", `<html>oops</html>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var c ActivityCollection
			assert.Error(t, json.Unmarshal([]byte(tt.body), &c))
		})
	}
}

func TestActivityCollection_EmptyObject(t *testing.T) {
	var c ActivityCollection
	require.NoError(t, json.Unmarshal([]byte(`{}`), &c))
	assert.Equal(t, 0, c.Len())
	assert.Empty(t, c.All())
}

func TestActivityCollection_MarshalJSON(t *testing.T) {
	c := NewActivityCollection(
		Activity{Name: "Zeta", Schedule: "Mon", MaxParticipants: 1},
		Activity{Name: "Alpha", Schedule: "Tue", MaxParticipants: 2, Participants: []string{"a@x.com"}},
	)

	data, err := json.Marshal(c)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"Zeta": {"description": "", "schedule": "Mon", "max_participants": 1, "participants": []},
		"Alpha": {"description": "", "schedule": "Tue", "max_participants": 2, "participants": ["a@x.com"]}
	}`, string(data))

	var back ActivityCollection
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, []string{"Zeta", "Alpha"}, back.Names())
}

func TestActionResponse_DetailText(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"string detail", `{"detail": "Already signed up"}`, "Already signed up"},
		{"no detail", `{}`, ""},
		{"structured detail", `{"detail": [{"loc": ["query", "email"], "msg": "field required"}]}`, ""},
		{"null detail", `{"detail": null}`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var r ActionResponse
			require.NoError(t, json.Unmarshal([]byte(tt.body), &r))
			assert.Equal(t, tt.want, r.DetailText())
		})
	}
}
