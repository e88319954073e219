// Package memory persists per-agent conversation history. Every append is
// written through to the backing store so a restart never loses turns.
package memory

import (
	"fmt"
	"strings"
	"time"
)

// Message roles.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// DefaultHistoryLimit bounds how many entries History returns when the
// caller passes a non-positive max.
const DefaultHistoryLimit = 10

// Entry is a single conversation turn.
type Entry struct {
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// Stats summarizes one agent's conversation log.
type Stats struct {
	MessageCount int       `json:"message_count"`
	UserMessages int       `json:"user_messages"`
	AIMessages   int       `json:"ai_messages"`
	LastUpdated  time.Time `json:"last_updated"`
}

// Store is the conversation history backend. Implementations must be safe
// for concurrent use.
type Store interface {
	// AppendUser records a user turn for the agent.
	AppendUser(agentID, content string) error

	// AppendAssistant records an assistant turn for the agent.
	AppendAssistant(agentID, content string) error

	// History returns the last max turns formatted for prompt injection,
	// oldest first. It returns "" when the agent has no history.
	History(agentID string, max int) string

	// Count returns the number of stored turns for the agent.
	Count(agentID string) int

	// Clear removes all history for the agent.
	Clear(agentID string) error

	// Stats summarizes the agent's conversation log.
	Stats(agentID string) Stats
}

// formatHistory renders the last max entries oldest-first in the shape the
// completion prompts expect.
func formatHistory(entries []Entry, max int) string {
	if max <= 0 {
		max = DefaultHistoryLimit
	}
	if len(entries) > max {
		entries = entries[len(entries)-max:]
	}
	if len(entries) == 0 {
		return ""
	}

	var b strings.Builder
	for i, e := range entries {
		if i > 0 {
			b.WriteString("\n\n")
		}
		label := "User"
		if e.Role == RoleAssistant {
			label = "Assistant"
		}
		fmt.Fprintf(&b, "%s: %s", label, e.Content)
	}
	return b.String()
}

// computeStats derives Stats from a slice of entries.
func computeStats(entries []Entry) Stats {
	s := Stats{MessageCount: len(entries)}
	for _, e := range entries {
		switch e.Role {
		case RoleUser:
			s.UserMessages++
		case RoleAssistant:
			s.AIMessages++
		}
		if e.Timestamp.After(s.LastUpdated) {
			s.LastUpdated = e.Timestamp
		}
	}
	return s
}
