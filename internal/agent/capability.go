// Package agent implements the query router and the specialized capabilities
// it dispatches to. Each capability wraps the completion service with a
// role-specific prompt and falls back to templated text when no provider is
// configured or a call fails, so a response is always produced.
package agent

import (
	"context"
	"strings"
)

// Capability names. Used as registry keys and as the router's
// classification output domain.
const (
	CapGeneral          = "general"
	CapSearch           = "search"
	CapChat             = "chat"
	CapResearch         = "research"
	CapStudyPlan        = "study_plan"
	CapDocumentAnalysis = "document_analysis"
	CapCalendar         = "calendar"
	CapDirect           = "direct"
)

// continuityThreshold is the history length above which a capability
// switches from single-turn prompting to conversation-continuation
// prompting. More than one full prior exchange triggers it.
const continuityThreshold = 2

// Capability produces a response for a query. Respond never returns an
// error; failures are mapped to templated fallback text.
type Capability interface {
	Respond(ctx context.Context, query string) string
	Name() string
}

// Registry holds the capability set keyed by name.
type Registry struct {
	capabilities map[string]Capability
}

// NewRegistry builds a registry from the given capabilities.
func NewRegistry(caps ...Capability) *Registry {
	r := &Registry{capabilities: make(map[string]Capability, len(caps))}
	for _, c := range caps {
		r.capabilities[c.Name()] = c
	}
	return r
}

// Get returns the named capability, falling back to general for unknown
// names.
func (r *Registry) Get(name string) Capability {
	if c, ok := r.capabilities[name]; ok {
		return c
	}
	return r.capabilities[CapGeneral]
}

// Names returns the registered capability names.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.capabilities))
	for name := range r.capabilities {
		names = append(names, name)
	}
	return names
}

// buildPrompt assembles a role prompt and the user query into a single
// completion request.
func buildPrompt(role string, instructions []string, query string) string {
	var b strings.Builder
	b.WriteString(role)
	if len(instructions) > 0 {
		b.WriteString("\n\nInstructions:\n")
		for _, inst := range instructions {
			b.WriteString("- ")
			b.WriteString(inst)
			b.WriteString("\n")
		}
	}
	b.WriteString("\nUser query: ")
	b.WriteString(query)
	return b.String()
}
