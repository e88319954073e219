package completion

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type fakeClient struct {
	healthErr error
	failUntil int
	calls     int
}

func (f *fakeClient) Complete(ctx context.Context, prompt string) (string, error) {
	f.calls++
	if f.calls <= f.failUntil {
		return "", fmt.Errorf("transient failure %d", f.calls)
	}
	return "ok", nil
}

func (f *fakeClient) Health() error    { return f.healthErr }
func (f *fakeClient) Provider() string { return "fake" }

func TestProbeSucceedsFirstAttempt(t *testing.T) {
	client := &fakeClient{}
	var slept []time.Duration
	err := Probe(context.Background(), client, func(d time.Duration) { slept = append(slept, d) })
	assert.NoError(t, err)
	assert.Equal(t, 1, client.calls)
	assert.Empty(t, slept)
}

func TestProbeRetriesWithBackoff(t *testing.T) {
	client := &fakeClient{failUntil: 2}
	var slept []time.Duration
	err := Probe(context.Background(), client, func(d time.Duration) { slept = append(slept, d) })
	assert.NoError(t, err)
	assert.Equal(t, 3, client.calls)
	assert.Equal(t, []time.Duration{time.Second, 2 * time.Second}, slept)
}

func TestProbeGivesUpAfterAttempts(t *testing.T) {
	client := &fakeClient{failUntil: 10}
	err := Probe(context.Background(), client, func(time.Duration) {})
	assert.Error(t, err)
	assert.Equal(t, 3, client.calls)
}

func TestProbeFailsFastOnHealth(t *testing.T) {
	client := &fakeClient{healthErr: fmt.Errorf("no key")}
	err := Probe(context.Background(), client, func(time.Duration) {})
	assert.Error(t, err)
	assert.Equal(t, 0, client.calls)
}
