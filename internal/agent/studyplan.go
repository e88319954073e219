package agent

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shivamsuchak/q-revised/internal/completion"
	"github.com/shivamsuchak/q-revised/internal/metrics"
	"github.com/shivamsuchak/q-revised/internal/textutil"
)

// StudyPlanCapability produces educational plans and course sequences.
type StudyPlanCapability struct {
	client completion.Client
	logger *slog.Logger
}

// NewStudyPlanCapability creates the study plan capability.
func NewStudyPlanCapability(client completion.Client, logger *slog.Logger) *StudyPlanCapability {
	return &StudyPlanCapability{client: client, logger: logger}
}

func (s *StudyPlanCapability) Name() string { return CapStudyPlan }

// Respond returns a study plan for the query.
func (s *StudyPlanCapability) Respond(ctx context.Context, query string) string {
	if s.client != nil {
		prompt := buildPrompt(
			"You are an education planning specialist who creates personalized study plans.",
			[]string{
				"Tailor the plan to the learner's stated goals and background.",
				"Recommend concrete courses and learning resources.",
				"Lay out a realistic week-by-week timeline.",
			},
			query,
		)
		if text, err := s.client.Complete(ctx, prompt); err == nil {
			return textutil.ExtractContent(text)
		} else {
			s.logger.Warn("Study plan completion failed, using fallback", "error", err)
		}
	}

	metrics.FallbackResponses.WithLabelValues(CapStudyPlan).Inc()
	return s.fallback(query)
}

func (s *StudyPlanCapability) fallback(query string) string {
	return fmt.Sprintf(`# Study Plan for %s

## Recommended Courses
- Introduction to Data Science
- Python Programming
- Machine Learning Fundamentals
- Statistical Methods

## Learning Resources
- DataCamp courses
- Kaggle competitions
- MIT OpenCourseWare

## Timeline
- Week 1-4: Python fundamentals
- Week 5-8: Data analysis
- Week 9-12: Machine learning basics

This is a simulated response from the study plan agent.`, query)
}
