// Package scheduler runs periodic background jobs over the conversation
// memory store.
package scheduler

import (
	"fmt"
	"log/slog"

	"github.com/robfig/cron/v3"

	"github.com/shivamsuchak/q-revised/internal/memory"
)

// knownAgents are the agent identities whose stores get periodic stats
// reporting. The calendar capability keeps its own dedicated history.
var knownAgents = []string{
	"general",
	"search",
	"chat",
	"research",
	"study_plan",
	"document_analysis",
	"calendar_agent",
}

// Scheduler manages cron jobs for memory maintenance and reporting.
type Scheduler struct {
	cron   *cron.Cron
	store  memory.Store
	logger *slog.Logger
}

// New creates a scheduler and registers the memory stats job on the given
// cron spec (for example "@hourly").
func New(store memory.Store, statsSchedule string, logger *slog.Logger) (*Scheduler, error) {
	s := &Scheduler{
		cron:   cron.New(),
		store:  store,
		logger: logger,
	}
	if _, err := s.cron.AddFunc(statsSchedule, s.reportStats); err != nil {
		return nil, fmt.Errorf("invalid stats schedule %q: %w", statsSchedule, err)
	}
	return s, nil
}

// Start begins running registered jobs on their schedules.
func (s *Scheduler) Start() {
	s.cron.Start()
	s.logger.Info("Scheduler started")
}

// Stop halts the scheduler and waits for any running job to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("Scheduler stopped")
}

// reportStats logs per-agent conversation stats for every agent that has
// recorded history.
func (s *Scheduler) reportStats() {
	for _, agentID := range knownAgents {
		stats := s.store.Stats(agentID)
		if stats.MessageCount == 0 {
			continue
		}
		s.logger.Info("Memory stats",
			"agent", agentID,
			"messages", stats.MessageCount,
			"user_messages", stats.UserMessages,
			"assistant_messages", stats.AIMessages,
			"last_updated", stats.LastUpdated)
	}
}
