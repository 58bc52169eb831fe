// Package conversation holds the in-memory transcript of a chat session.
//
// A session is a flat, append-only sequence of turns. There is no
// persistence: when the process exits the transcript is gone.
package conversation

import (
	"time"

	"github.com/google/uuid"
)

// Role identifies who produced a turn.
type Role string

const (
	// RoleSystem marks the persona/instruction turn. System turns are
	// never sent as history; the client synthesizes its own.
	RoleSystem Role = "system"

	// RoleUser marks a turn typed by the person at the keyboard.
	RoleUser Role = "user"

	// RoleAssistant marks a model reply, including error placeholders
	// rendered as assistant turns.
	RoleAssistant Role = "assistant"
)

// Source is a web citation attached to an assistant turn. Both fields
// are always non-empty; attributions missing either are dropped before
// a Source is ever constructed.
type Source struct {
	Title string
	URI   string
}

// Turn is a single message in the transcript.
type Turn struct {
	ID        string
	Role      Role
	Text      string
	Sources   []Source
	CreatedAt time.Time
}

// NewTurn builds a turn with a fresh ID and timestamp.
func NewTurn(role Role, text string) Turn {
	return Turn{
		ID:        uuid.NewString(),
		Role:      role,
		Text:      text,
		CreatedAt: time.Now(),
	}
}

// NewAssistantTurn builds an assistant turn carrying grounding sources.
func NewAssistantTurn(text string, sources []Source) Turn {
	t := NewTurn(RoleAssistant, text)
	t.Sources = sources
	return t
}
