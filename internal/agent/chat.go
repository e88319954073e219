package agent

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/shivamsuchak/q-revised/internal/completion"
	"github.com/shivamsuchak/q-revised/internal/metrics"
	"github.com/shivamsuchak/q-revised/internal/textutil"
)

// ChatCapability handles casual conversational queries.
type ChatCapability struct {
	client completion.Client
	logger *slog.Logger
}

// NewChatCapability creates the chat capability.
func NewChatCapability(client completion.Client, logger *slog.Logger) *ChatCapability {
	return &ChatCapability{client: client, logger: logger}
}

func (c *ChatCapability) Name() string { return CapChat }

// Respond returns a conversational reply for the query.
func (c *ChatCapability) Respond(ctx context.Context, query string) string {
	if c.client != nil {
		prompt := buildPrompt(
			"You are a helpful and friendly AI assistant.",
			[]string{
				"Respond to users in a conversational, helpful manner.",
				"Provide informative answers to general knowledge questions.",
				"For personal questions like 'how are you', respond naturally as if having a conversation.",
				"Be concise but thorough in your responses.",
			},
			query,
		)
		if text, err := c.client.Complete(ctx, prompt); err == nil {
			return textutil.ExtractContent(text)
		} else {
			c.logger.Warn("Chat completion failed, using fallback", "error", err)
		}
	}

	metrics.FallbackResponses.WithLabelValues(CapChat).Inc()
	return c.fallback(query)
}

func (c *ChatCapability) fallback(query string) string {
	queryLower := strings.ToLower(query)
	switch {
	case strings.Contains(queryLower, "how are you"):
		return "I'm doing well, thank you for asking! How can I help you today?"
	case strings.Contains(queryLower, "your name"):
		return "I'm an AI assistant here to help you with your questions."
	case strings.Contains(queryLower, "hello"), strings.Contains(queryLower, "hi"):
		return "Hello! How can I assist you today?"
	default:
		return fmt.Sprintf("I'd be happy to help with '%s'. What would you like to know?", query)
	}
}
