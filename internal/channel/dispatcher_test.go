package channel

import (
	"context"
	"log/slog"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type echoProcessor struct{}

func (echoProcessor) Process(ctx context.Context, query string) string {
	return "echo: " + query
}

type fakeAdapter struct {
	name     string
	enabled  bool
	incoming chan *Message

	mu   sync.Mutex
	sent []string
}

func newFakeAdapter(name string, enabled bool) *fakeAdapter {
	return &fakeAdapter{name: name, enabled: enabled, incoming: make(chan *Message, 10)}
}

func (f *fakeAdapter) Start(ctx context.Context) error { return nil }
func (f *fakeAdapter) Stop() error                     { close(f.incoming); return nil }
func (f *fakeAdapter) Name() string                    { return f.name }
func (f *fakeAdapter) IsEnabled() bool                 { return f.enabled }
func (f *fakeAdapter) Incoming() <-chan *Message       { return f.incoming }

func (f *fakeAdapter) SendMessage(userID string, resp *Response) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, resp.Content)
	return nil
}

func (f *fakeAdapter) sentMessages() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.sent...)
}

func TestDispatcherRoutesMessages(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	adapter := newFakeAdapter("fake", true)
	d := NewDispatcher(echoProcessor{}, []Adapter{adapter}, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	adapter.incoming <- &Message{ID: "1", Channel: "fake", UserID: "u1", Content: "hello"}

	require.Eventually(t, func() bool {
		return len(adapter.sentMessages()) == 1
	}, time.Second, 10*time.Millisecond)
	assert.Equal(t, "echo: hello", adapter.sentMessages()[0])

	d.Stop()
}

func TestDispatcherSkipsDisabledAdapters(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	adapter := newFakeAdapter("off", false)
	d := NewDispatcher(echoProcessor{}, []Adapter{adapter}, logger)

	d.Start(context.Background())
	d.Stop()
	assert.Empty(t, adapter.sentMessages())
}
