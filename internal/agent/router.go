package agent

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/shivamsuchak/q-revised/internal/completion"
	"github.com/shivamsuchak/q-revised/internal/memory"
	"github.com/shivamsuchak/q-revised/internal/metrics"
)

// capabilityParseOrder is the order capability names are matched against
// the model's classification answer. First substring match wins; order is
// load-bearing and must not be changed.
var capabilityParseOrder = []string{
	CapDirect,
	CapSearch,
	CapCalendar,
	CapResearch,
	CapStudyPlan,
	CapDocumentAnalysis,
	CapGeneral,
}

// keywordRule is one ordered fallback classification rule.
type keywordRule struct {
	keywords  []string
	choice    string
	rationale string
}

// keywordRules classify a query when no completion service is available.
// Rule order is significant: the first matching rule wins even when later
// rules also match.
var keywordRules = []keywordRule{
	{
		keywords:  []string{"restaurant", "café", "food", "best", "recommend", "where", "location"},
		choice:    CapResearch,
		rationale: "I'll search for some restaurant recommendations for you.",
	},
	{
		keywords:  []string{"calendar", "schedule", "meeting", "appointment"},
		choice:    CapCalendar,
		rationale: "I'll help you with your calendar.",
	},
	{
		keywords:  []string{"entropy", "quantum", "science", "universe"},
		choice:    CapResearch,
		rationale: "Let me research this scientific topic for you.",
	},
	{
		keywords:  []string{"study", "learn", "course", "education"},
		choice:    CapStudyPlan,
		rationale: "I'll help create a study plan.",
	},
	{
		keywords:  []string{"document", "pdf", "analyze", "file"},
		choice:    CapDocumentAnalysis,
		rationale: "I'll analyze this document for you.",
	},
}

// Decision is the router's per-query classification output.
type Decision struct {
	Chosen    string
	Rationale string
}

// Router classifies queries and dispatches them to capabilities. It never
// returns an error; failures become plain-text messages.
type Router struct {
	client   completion.Client
	registry *Registry
	store    memory.Store
	logger   *slog.Logger
}

// NewRouter creates a router over the given registry. A nil client selects
// keyword classification.
func NewRouter(client completion.Client, registry *Registry, store memory.Store, logger *slog.Logger) *Router {
	return &Router{
		client:   client,
		registry: registry,
		store:    store,
		logger:   logger,
	}
}

// Process routes one query to a capability and returns the composed
// response text.
func (r *Router) Process(ctx context.Context, query string) string {
	var decision Decision
	mode := "keyword"

	if r.client != nil {
		mode = "llm"
		reasoning, err := r.reason(ctx, query)
		if err != nil {
			r.logger.Warn("Reasoning failed, falling back to keyword routing", "error", err)
			mode = "keyword"
			decision = classifyKeywords(query)
		} else {
			decision, err = r.decide(ctx, reasoning, query)
			if err != nil {
				r.logger.Warn("Classification failed, falling back to keyword routing", "error", err)
				mode = "keyword"
				decision = classifyKeywords(query)
			} else if decision.Chosen == CapDirect {
				// Direct answers reuse the reasoning text instead of
				// delegating to a capability.
				metrics.RoutingDecisions.WithLabelValues(CapDirect, mode).Inc()
				return fmt.Sprintf("# Response\n\n%s\n\n%s", reasoning, decision.Rationale)
			}
		}
	} else {
		decision = classifyKeywords(query)
	}

	chosen := decision.Chosen
	if chosen == CapDirect {
		chosen = CapGeneral
	}
	metrics.RoutingDecisions.WithLabelValues(chosen, mode).Inc()
	r.logger.Info("Routing query", "capability", chosen, "mode", mode)

	capability := r.registry.Get(chosen)

	// The calendar capability records its own history under its agent id.
	recordHistory := capability.Name() != CapCalendar
	if recordHistory {
		if err := r.store.AppendUser(capability.Name(), query); err != nil {
			r.logger.Warn("Failed to record user turn", "agent", capability.Name(), "error", err)
		}
	}

	text := capability.Respond(ctx, query)

	if recordHistory {
		if err := r.store.AppendAssistant(capability.Name(), text); err != nil {
			r.logger.Warn("Failed to record assistant turn", "agent", capability.Name(), "error", err)
		}
	}

	return fmt.Sprintf("# Response\n\n%s\n\n%s", decision.Rationale, text)
}

// reason asks the completion service for a step-by-step analysis of the
// query.
func (r *Router) reason(ctx context.Context, query string) (string, error) {
	prompt := fmt.Sprintf(`# Query Analysis: Step-by-Step Reasoning

Analyze the following user query: "%s"

## Step 1: Identify Query Type
What type of information or action is the user looking for?

## Step 2: Required Information
What information or data is needed to properly respond to this query?

## Step 3: Tool/Agent Selection
Which specialized tool or agent would be best equipped to handle this query?
Options include:
- Direct response (for general knowledge or conversational queries)
- Search agent (for factual information, current events, or recommendations)
- Calendar agent (for scheduling and time management)
- Research agent (for in-depth analysis of scientific or complex topics)
- Study plan agent (for educational planning)
- Document analysis agent (for processing documents)

## Final Determination
Based on this analysis, which agent should handle this query and why?`, query)

	return r.client.Complete(ctx, prompt)
}

// decide extracts a single capability name from the reasoning text.
func (r *Router) decide(ctx context.Context, reasoning, query string) (Decision, error) {
	prompt := fmt.Sprintf(`Based on the following reasoning about the user query "%s":

%s

Return ONLY ONE of the following options (just the name, no explanation):
- direct
- search
- calendar
- research
- study_plan
- document_analysis
- general`, query, reasoning)

	answer, err := r.client.Complete(ctx, prompt)
	if err != nil {
		return Decision{}, err
	}

	chosen := ParseChoice(answer)
	return Decision{Chosen: chosen, Rationale: rationaleFor(chosen)}, nil
}

// ParseChoice maps a model answer to a capability name by checking each
// known name, in fixed order, for a substring match. Unknown answers map
// to general.
func ParseChoice(answer string) string {
	answer = strings.ToLower(strings.TrimSpace(answer))
	for _, name := range capabilityParseOrder {
		if strings.Contains(answer, name) {
			return name
		}
	}
	return CapGeneral
}

// classifyKeywords applies the ordered keyword rules to the query.
func classifyKeywords(query string) Decision {
	queryLower := strings.ToLower(query)
	for _, rule := range keywordRules {
		if containsAny(queryLower, rule.keywords...) {
			return Decision{Chosen: rule.choice, Rationale: rule.rationale}
		}
	}
	return Decision{Chosen: CapGeneral, Rationale: rationaleFor(CapGeneral)}
}

func rationaleFor(choice string) string {
	switch choice {
	case CapDirect:
		return "I can answer this directly based on my knowledge."
	case CapSearch:
		return "To give you the most accurate information, I need to perform a search."
	case CapCalendar:
		return "This appears to be a calendar-related request, so I'll use the calendar tool to help you."
	case CapResearch:
		return "This question requires in-depth research to provide you with a comprehensive answer."
	case CapStudyPlan:
		return "I'll create a customized study plan based on your request."
	case CapDocumentAnalysis:
		return "I'll analyze the document to extract the information you need."
	case CapGeneral:
		return "I'll provide a thoughtful response to your question."
	default:
		return "I'll process your request using specialized tools."
	}
}
