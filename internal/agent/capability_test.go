package agent

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/shivamsuchak/q-revised/internal/memory"
)

func TestEveryCapabilityRespondsOnBackendFailure(t *testing.T) {
	logger := testLogger()
	store := memory.NewFileStore(t.TempDir(), logger)

	caps := []Capability{
		NewGeneralCapability(errClient{}, logger),
		NewSearchCapability(errClient{}, logger),
		NewChatCapability(errClient{}, logger),
		NewResearchCapability(errClient{}, logger),
		NewStudyPlanCapability(errClient{}, logger),
		NewDocumentAnalysisCapability(errClient{}, logger),
		NewCalendarCapability(errClient{}, store, nil, logger),
	}

	queries := []string{"hello", "", "what is the meaning of life?", "schedule something"}
	for _, c := range caps {
		for _, q := range queries {
			out := c.Respond(context.Background(), q)
			assert.NotEmpty(t, out, "capability %s query %q", c.Name(), q)
		}
	}
}

func TestRegistryDefaultsToGeneral(t *testing.T) {
	store := memory.NewFileStore(t.TempDir(), testLogger())
	reg := newTestRegistry(t, store)

	assert.Equal(t, CapGeneral, reg.Get("nonsense").Name())
	assert.Equal(t, CapCalendar, reg.Get(CapCalendar).Name())
	assert.Len(t, reg.Names(), 7)
}

func TestResearchFallbacks(t *testing.T) {
	r := NewResearchCapability(nil, testLogger())

	out := r.Respond(context.Background(), "entropy reversed?")
	assert.Contains(t, out, "Second Law of Thermodynamics")

	out = r.Respond(context.Background(), "yes or no?")
	assert.Contains(t, out, `Analyzing "Yes or No" Questions`)

	out = r.Respond(context.Background(), "how do tides work")
	assert.Contains(t, out, "Research Results")
}

func TestSearchFallbacks(t *testing.T) {
	s := NewSearchCapability(nil, testLogger())

	out := s.Respond(context.Background(), "prerequisites for machine learning at the University of Mannheim")
	assert.Contains(t, out, "University of Mannheim")
	assert.Contains(t, out, "Machine Learning")

	out = s.Respond(context.Background(), "weather in Berlin")
	assert.Contains(t, out, "weather in Berlin")
}

func TestChatFallbacks(t *testing.T) {
	c := NewChatCapability(nil, testLogger())

	assert.Contains(t, c.Respond(context.Background(), "how are you?"), "doing well")
	assert.Contains(t, c.Respond(context.Background(), "what is your name"), "AI assistant")
	assert.Contains(t, c.Respond(context.Background(), "hello there"), "Hello!")
}

func TestGeneralFallbacks(t *testing.T) {
	g := NewGeneralCapability(nil, testLogger())

	assert.Contains(t, g.Respond(context.Background(), "can humans become immortal?"), "Quest for Immortality")
	assert.Contains(t, g.Respond(context.Background(), "who are you?"), "About Me")
	assert.Contains(t, g.Respond(context.Background(), "what can you do"), "How I Can Help You")
}
