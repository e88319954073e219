package channel

import (
	"context"
	"log/slog"
	"sync"
)

// QueryProcessor routes one query to a capability and returns the response
// text.
type QueryProcessor interface {
	Process(ctx context.Context, query string) string
}

// Dispatcher fans messages in from every enabled adapter, runs each query
// through the processor, and sends the reply back on the originating
// channel.
type Dispatcher struct {
	processor QueryProcessor
	adapters  []Adapter
	logger    *slog.Logger
	wg        sync.WaitGroup
}

// NewDispatcher creates a dispatcher over the given adapters. Disabled
// adapters are skipped at start.
func NewDispatcher(processor QueryProcessor, adapters []Adapter, logger *slog.Logger) *Dispatcher {
	return &Dispatcher{
		processor: processor,
		adapters:  adapters,
		logger:    logger,
	}
}

// Start launches every enabled adapter and its dispatch loop. It returns
// after the adapters are listening; loops exit when ctx is cancelled or an
// adapter closes its incoming channel.
func (d *Dispatcher) Start(ctx context.Context) {
	for _, adapter := range d.adapters {
		if !adapter.IsEnabled() {
			continue
		}

		if err := adapter.Start(ctx); err != nil {
			d.logger.Error("Failed to start channel adapter",
				"channel", adapter.Name(), "error", err)
			continue
		}
		d.logger.Info("Channel adapter started", "channel", adapter.Name())

		d.wg.Add(1)
		go d.loop(ctx, adapter)
	}
}

func (d *Dispatcher) loop(ctx context.Context, adapter Adapter) {
	defer d.wg.Done()

	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-adapter.Incoming():
			if !ok {
				return
			}
			d.handle(ctx, adapter, msg)
		}
	}
}

func (d *Dispatcher) handle(ctx context.Context, adapter Adapter, msg *Message) {
	d.logger.Info("Processing channel message",
		"channel", msg.Channel, "user", msg.UserID)

	text := d.processor.Process(ctx, msg.Content)

	if err := adapter.SendMessage(msg.UserID, &Response{Content: text}); err != nil {
		d.logger.Error("Failed to send channel response",
			"channel", msg.Channel, "user", msg.UserID, "error", err)
	}
}

// Stop shuts down every enabled adapter and waits for the dispatch loops
// to drain.
func (d *Dispatcher) Stop() {
	for _, adapter := range d.adapters {
		if !adapter.IsEnabled() {
			continue
		}
		if err := adapter.Stop(); err != nil {
			d.logger.Warn("Failed to stop channel adapter",
				"channel", adapter.Name(), "error", err)
		}
	}
	d.wg.Wait()
}
