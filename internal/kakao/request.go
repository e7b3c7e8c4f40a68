// Package kakao models the chatbot webhook wire contract: the inbound
// skill payloads the bot platform posts to us and the outbound template
// responses we answer with.
package kakao

import (
	"encoding/json"
	"fmt"
)

// Request is the skill payload delivered for booking-type blocks.  Only
// the fields this service consumes are modelled.
type Request struct {
	Action struct {
		Params map[string]string `json:"params"`
	} `json:"action"`
	UserRequest struct {
		User struct {
			ID string `json:"id"`
		} `json:"user"`
	} `json:"userRequest"`
}

// ChannelID returns the opaque chat identity of the requester.
func (r *Request) ChannelID() string { return r.UserRequest.User.ID }

// Param returns a raw action parameter.
func (r *Request) Param(name string) string { return r.Action.Params[name] }

// TimeParam unwraps a time-typed action parameter.  The platform encodes
// those as a JSON object string like {"value":"15:00","userTimeZone":...}.
func (r *Request) TimeParam(name string) (string, error) {
	raw, ok := r.Action.Params[name]
	if !ok || raw == "" {
		return "", fmt.Errorf("missing %s parameter", name)
	}
	var v struct {
		Value string `json:"value"`
	}
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		return "", fmt.Errorf("malformed %s parameter: %w", name, err)
	}
	if v.Value == "" {
		return "", fmt.Errorf("empty %s parameter", name)
	}
	return v.Value, nil
}

// ValidationRequest is the payload of parameter validation webhooks
// (/reserve/check/*).  The platform sends the raw user utterance under
// value.origin.
type ValidationRequest struct {
	Value struct {
		Origin string `json:"origin"`
	} `json:"value"`
}
