// Package decision models one parsed model turn: either a chat reply
// or a single/batched tool action.
package decision

import (
	"encoding/json"
	"fmt"

	errs "github.com/harunnryd/tachi/internal/errors"
)

type Mode string

const (
	ModeChat   Mode = "chat"
	ModeAction Mode = "action"
)

// MaxBatch is the hard ceiling on argument objects in one batched
// action. A safety limit, not a tuning knob: one decision must not fan
// out into an unbounded number of side-effecting calls.
const MaxBatch = 20

// Payload is the raw wire shape of a decision object. Pointer fields
// distinguish absent from empty, which the legacy fallback needs:
// an untagged object with a "tool" key is an action even when the tool
// name is empty.
type Payload struct {
	Mode    *string         `json:"mode"`
	Message *string         `json:"message"`
	Final   *string         `json:"final"`
	Tool    *string         `json:"tool"`
	Args    json.RawMessage `json:"args"`
}

// Decision is the normalized sum over chat and action variants.
type Decision struct {
	Mode Mode

	// Chat
	Message string

	// Action
	Tool string
	Args []map[string]any // one element per invocation, in dispatch order
}

// Normalize resolves the mode with the legacy fallback and validates
// the action surface. Errors here are protocol violations, fatal for
// the run; they are never retried through the repair path.
func (p *Payload) Normalize() (*Decision, error) {
	mode, err := p.resolveMode()
	if err != nil {
		return nil, err
	}

	if mode == ModeChat {
		return &Decision{Mode: ModeChat, Message: p.chatMessage()}, nil
	}

	tool := deref(p.Tool)
	if tool == "" {
		return nil, fmt.Errorf("action mode without a tool: %w", errs.ErrMissingToolName)
	}

	args, err := normalizeArgs(p.Args)
	if err != nil {
		return nil, err
	}
	return &Decision{Mode: ModeAction, Tool: tool, Args: args}, nil
}

func (p *Payload) resolveMode() (Mode, error) {
	if p.Mode == nil {
		// Legacy untagged schema: {"tool":...,"args":...} or {"final":...}.
		if p.Tool != nil {
			return ModeAction, nil
		}
		return ModeChat, nil
	}

	switch Mode(*p.Mode) {
	case ModeChat:
		return ModeChat, nil
	case ModeAction:
		return ModeAction, nil
	default:
		return "", fmt.Errorf("decision mode %q: %w", *p.Mode, errs.ErrInvalidDecision)
	}
}

// chatMessage reads message, falling back to the legacy final field
// when message is absent or empty.
func (p *Payload) chatMessage() string {
	if msg := deref(p.Message); msg != "" {
		return msg
	}
	return deref(p.Final)
}

// normalizeArgs accepts a single argument object or a list of argument
// objects. Absent args mean one invocation with empty arguments. Any
// other shape, including an explicit null, is rejected.
func normalizeArgs(raw json.RawMessage) ([]map[string]any, error) {
	if len(raw) == 0 {
		return []map[string]any{{}}, nil
	}
	if string(raw) == "null" {
		return nil, fmt.Errorf("action args must be a JSON object or a list of JSON objects: %w", errs.ErrInvalidArgsShape)
	}

	var single map[string]any
	if err := json.Unmarshal(raw, &single); err == nil && single != nil {
		return []map[string]any{single}, nil
	}

	var list []json.RawMessage
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil, fmt.Errorf("action args must be a JSON object or a list of JSON objects: %w", errs.ErrInvalidArgsShape)
	}

	if len(list) > MaxBatch {
		return nil, fmt.Errorf("refusing oversized batched action with %d calls (max %d): %w", len(list), MaxBatch, errs.ErrOversizedBatch)
	}

	out := make([]map[string]any, 0, len(list))
	for _, item := range list {
		var args map[string]any
		if err := json.Unmarshal(item, &args); err != nil || args == nil {
			return nil, fmt.Errorf("action args list may contain only JSON objects: %w", errs.ErrInvalidArgsShape)
		}
		out = append(out, args)
	}
	return out, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
