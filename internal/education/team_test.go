package education

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

type scriptedClient struct {
	replies []string
	calls   int
	fail    bool
}

func (s *scriptedClient) Complete(ctx context.Context, prompt string) (string, error) {
	if s.fail {
		return "", fmt.Errorf("backend unavailable")
	}
	reply := s.replies[s.calls%len(s.replies)]
	s.calls++
	return reply, nil
}

func (s *scriptedClient) Health() error    { return nil }
func (s *scriptedClient) Provider() string { return "test" }

func TestGuidanceChainsThreePrompts(t *testing.T) {
	client := &scriptedClient{replies: []string{"career advice", "course advice", "final synthesis"}}
	team := NewTeam(client, testLogger())

	out := team.Guidance(context.Background(), "how do I become an engineer?")
	assert.Equal(t, "final synthesis", out)
	assert.Equal(t, 3, client.calls)
}

func TestGuidanceFallsBackOnError(t *testing.T) {
	team := NewTeam(&scriptedClient{fail: true}, testLogger())

	out := team.Guidance(context.Background(), "how do I become a data scientist?")
	assert.Contains(t, out, "Career Path: Data Scientist")
}

func TestGuidanceMockTemplates(t *testing.T) {
	team := NewTeam(nil, testLogger())
	ctx := context.Background()

	assert.Contains(t, team.Guidance(ctx, "becoming a web developer"), "Career Path: Web Developer")
	assert.Contains(t, team.Guidance(ctx, "marine biology careers"), "Career and Education Guidance")
}
