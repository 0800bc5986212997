package domain

import "encoding/json"

// ActionResponse is the body returned by signup and unregister.
// Success carries Message, failure carries Detail.
type ActionResponse struct {
	Message string          `json:"message,omitempty"`
	Detail  json.RawMessage `json:"detail,omitempty"`
}

// DetailText returns Detail when it is a JSON string. Structured details
// (validation error lists) yield "".
func (r ActionResponse) DetailText() string {
	if len(r.Detail) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(r.Detail, &s); err != nil {
		return ""
	}
	return s
}
