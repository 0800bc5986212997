package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Activity is a named enrollable session with a capacity and a roster
type Activity struct {
	Name            string   `json:"-"`
	Description     string   `json:"description"`
	Schedule        string   `json:"schedule"`
	MaxParticipants int      `json:"max_participants"`
	Participants    []string `json:"participants"`
}

// SpotsLeft is capacity minus roster size. Negative when the server over-enrolls.
func (a Activity) SpotsLeft() int {
	return a.MaxParticipants - len(a.Participants)
}

// ActivityCollection maps activity name to Activity and remembers the order
// the names appeared in the server response.
type ActivityCollection struct {
	names  []string
	byName map[string]Activity
}

// NewActivityCollection builds a collection in the order given
func NewActivityCollection(activities ...Activity) ActivityCollection {
	c := ActivityCollection{byName: make(map[string]Activity, len(activities))}
	for _, a := range activities {
		c.put(a)
	}
	return c
}

func (c *ActivityCollection) put(a Activity) {
	if c.byName == nil {
		c.byName = make(map[string]Activity)
	}
	if _, exists := c.byName[a.Name]; !exists {
		c.names = append(c.names, a.Name)
	}
	c.byName[a.Name] = a
}

// Len returns the number of activities
func (c ActivityCollection) Len() int {
	return len(c.names)
}

// Names returns activity names in response order
func (c ActivityCollection) Names() []string {
	out := make([]string, len(c.names))
	copy(out, c.names)
	return out
}

// Get looks up an activity by name
func (c ActivityCollection) Get(name string) (Activity, bool) {
	a, ok := c.byName[name]
	return a, ok
}

// All returns the activities in response order
func (c ActivityCollection) All() []Activity {
	out := make([]Activity, 0, len(c.names))
	for _, name := range c.names {
		out = append(out, c.byName[name])
	}
	return out
}

// UnmarshalJSON decodes a JSON object token by token so key order survives.
// A repeated key keeps its first position and its last value.
func (c *ActivityCollection) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("activity collection: expected JSON object, got %v", tok)
	}

	*c = ActivityCollection{byName: make(map[string]Activity)}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		name, ok := tok.(string)
		if !ok {
			return fmt.Errorf("activity collection: expected name, got %v", tok)
		}

		var a Activity
		if err := dec.Decode(&a); err != nil {
			return fmt.Errorf("activity %q: %w", name, err)
		}
		a.Name = name
		c.put(a)
	}

	if _, err := dec.Token(); err != nil {
		return err
	}
	return nil
}

// MarshalJSON writes the collection as a JSON object in order
func (c ActivityCollection) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range c.names {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(name)
		if err != nil {
			return nil, err
		}
		a := c.byName[name]
		if a.Participants == nil {
			a.Participants = []string{}
		}
		value, err := json.Marshal(a)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
