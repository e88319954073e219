package completion

import (
	"context"
	"fmt"
	"time"
)

const (
	probeAttempts = 3
	probePrompt   = "Hello, this is a test."
)

// Probe verifies that a client can serve completions by sending a trial
// request, retrying with exponential backoff. A nil sleep uses time.Sleep.
func Probe(ctx context.Context, client Client, sleep func(time.Duration)) error {
	if sleep == nil {
		sleep = time.Sleep
	}

	if err := client.Health(); err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}

	var lastErr error
	backoff := time.Second
	for attempt := 1; attempt <= probeAttempts; attempt++ {
		if _, err := client.Complete(ctx, probePrompt); err == nil {
			return nil
		} else {
			lastErr = err
		}

		if attempt < probeAttempts {
			sleep(backoff)
			backoff *= 2
		}
	}

	return fmt.Errorf("probe failed after %d attempts: %w", probeAttempts, lastErr)
}
