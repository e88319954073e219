package webchat

import (
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func TestAdapterIdentity(t *testing.T) {
	adapter := New(18081, testLogger())
	assert.Equal(t, "webchat", adapter.Name())
	assert.True(t, adapter.IsEnabled())
}

func TestAdapterDisabledWithoutPort(t *testing.T) {
	assert.False(t, New(0, testLogger()).IsEnabled())
}

func TestSendMessageWithoutConnection(t *testing.T) {
	adapter := New(18082, testLogger())
	// No connection registered for the user; the send is a no-op.
	assert.NoError(t, adapter.SendMessage("nobody", nil))
}
