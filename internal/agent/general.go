package agent

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/shivamsuchak/q-revised/internal/completion"
	"github.com/shivamsuchak/q-revised/internal/metrics"
	"github.com/shivamsuchak/q-revised/internal/textutil"
)

// GeneralCapability is the default responder for queries no specialist
// claims.
type GeneralCapability struct {
	client completion.Client
	logger *slog.Logger
}

// NewGeneralCapability creates the general capability.
func NewGeneralCapability(client completion.Client, logger *slog.Logger) *GeneralCapability {
	return &GeneralCapability{client: client, logger: logger}
}

func (g *GeneralCapability) Name() string { return CapGeneral }

// Respond returns a general-purpose answer for the query.
func (g *GeneralCapability) Respond(ctx context.Context, query string) string {
	if g.client != nil {
		prompt := buildPrompt(
			"You are a highly intelligent and helpful AI assistant capable of understanding complex questions and providing thoughtful responses.",
			[]string{
				"For philosophical or existential questions, provide thoughtful, nuanced perspectives.",
				"Balance being conversational with delivering substantive content.",
				"Use appropriate formatting with headings, bullets, and paragraphs to organize responses.",
				"When appropriate, consider both practical and philosophical implications of the user's questions.",
				"Don't be overly cautious or refuse to engage with hypothetical scenarios.",
				"Provide responses that demonstrate depth of understanding while remaining accessible.",
			},
			query,
		)
		if text, err := g.client.Complete(ctx, prompt); err == nil {
			return textutil.ExtractContent(text)
		} else {
			g.logger.Warn("General completion failed, using fallback", "error", err)
		}
	}

	metrics.FallbackResponses.WithLabelValues(CapGeneral).Inc()
	return g.fallback(query)
}

func containsAny(s string, words ...string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}

func (g *GeneralCapability) fallback(query string) string {
	queryLower := strings.ToLower(query)

	switch {
	case strings.Contains(queryLower, "immortal") || strings.Contains(queryLower, "live forever"):
		return `# The Quest for Immortality

The desire to transcend our biological limitations and achieve immortality has been a fundamental human aspiration throughout history, appearing in our earliest myths, religions, and philosophical traditions.

## Scientific Perspectives

Modern science approaches immortality through several avenues:
- **Biological approaches**: Research into telomeres, senescent cells, and genetic factors in aging
- **Technological approaches**: Brain uploading, digital consciousness, and artificial intelligence
- **Medical interventions**: Regenerative medicine, organ replacement, and anti-aging therapies

## Philosophical Considerations

Immortality raises profound questions about:
- **Identity**: Would an immortal version of you still be "you"?
- **Meaning**: How would eternal life affect the meaning we derive from our finite existence?
- **Society**: How would immortality transform human relationships and social structures?

## Practical Implications

If immortality were achieved, we would need to address:
- **Resource allocation**: Sustainable living in a non-dying population
- **Psychological adaptation**: How minds would cope with centuries or millennia of experiences
- **Evolutionary considerations**: The role of death in driving adaptation and progress

While immortality remains beyond our current capabilities, the pursuit itself has driven remarkable advances in our understanding of aging, consciousness, and what it means to be human.

What specific aspect of immortality are you most interested in exploring further?`

	case containsAny(queryLower, "hello", "hi", "hey", "greetings"):
		return "Hello! I'm here to help with any questions or topics you'd like to discuss. What's on your mind today?"

	case containsAny(queryLower, "thanks", "thank you", "appreciate"):
		return "You're welcome! I'm glad I could be of assistance. If you have any other questions or need help with anything else, feel free to ask."

	case strings.Contains(queryLower, "who") && strings.Contains(queryLower, "you"):
		return `# About Me

I'm an advanced AI assistant designed to provide thoughtful, informative, and helpful responses across a wide range of topics. My capabilities include:

- Answering questions with nuanced perspectives
- Discussing complex philosophical and scientific concepts
- Providing practical information and guidance
- Engaging in meaningful conversations about both concrete and abstract ideas

I aim to be a helpful thinking partner, offering insights while acknowledging the complexity of many questions. I'm continuously learning and evolving to provide better assistance.

How can I help you today?`

	case strings.Contains(queryLower, "what can you do") || strings.Contains(queryLower, "help"):
		return `# How I Can Help You

I can assist with a diverse range of queries and topics:

## Knowledge & Information
- Explain complex concepts in accessible ways
- Provide balanced perspectives on controversial topics
- Offer insights on scientific, historical, and cultural subjects

## Practical Assistance
- Help with problem-solving and decision-making
- Provide guidance on personal and professional development
- Assist with creative projects and ideation

## Specialized Tools
- Calendar management and scheduling
- Document analysis and summarization
- Educational planning and study guidance
- Research on scientific and factual questions

What topic would you like to explore together?`

	default:
		return fmt.Sprintf(`# Thinking About: %s

Thank you for your thought-provoking question. This touches on several interesting dimensions worth exploring.

While I don't have a definitive answer, I can offer some perspectives that might help frame how we think about this question:

## Different Ways to Consider This

The question you've asked can be approached from multiple angles including philosophical, practical, scientific, and personal. Each lens offers valuable insights.

## Reflections

Questions like this often reveal something about our deeper values and assumptions about the world. They invite us to consider what matters to us and why.

What aspects of this question are you most interested in exploring further? I'd be happy to delve deeper into specific dimensions that resonate with you.`, query)
	}
}
