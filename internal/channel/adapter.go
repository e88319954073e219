// Package channel defines the messaging-channel abstraction and the
// dispatcher that routes channel messages through the query router.
package channel

import "context"

// Message is an inbound message from a channel.
type Message struct {
	ID        string
	Channel   string
	UserID    string
	Content   string
	Metadata  map[string]string
	Timestamp int64
}

// Response is an outbound reply to a channel user.
type Response struct {
	Content  string
	Metadata map[string]string
}

// Adapter connects one messaging surface (Telegram, Discord, web chat) to
// the dispatcher.
type Adapter interface {
	// Start begins receiving messages. It returns once the adapter is
	// listening; delivery happens on the Incoming channel.
	Start(ctx context.Context) error

	// Stop shuts the adapter down and closes its Incoming channel.
	Stop() error

	// SendMessage delivers a response to the given user.
	SendMessage(userID string, resp *Response) error

	// Incoming returns the stream of inbound messages.
	Incoming() <-chan *Message

	// Name identifies the adapter.
	Name() string

	// IsEnabled reports whether the adapter is configured to run.
	IsEnabled() bool
}
