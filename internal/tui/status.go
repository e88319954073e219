package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/shivamsuchak/q-revised/internal/memory"
)

// Status shows the completion provider and per-agent conversation counts.
type Status struct {
	provider string
	store    memory.Store
	agents   []string
}

func NewStatus(provider string, store memory.Store, agents []string) *Status {
	if provider == "" {
		provider = "offline (template responses)"
	}
	return &Status{
		provider: provider,
		store:    store,
		agents:   agents,
	}
}

func (s *Status) Init() tea.Cmd {
	return nil
}

func (s *Status) Update(msg tea.Msg) (*Status, tea.Cmd) {
	return s, nil
}

func (s *Status) View(width, height int) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Provider: %s\n\nConversations:\n", s.provider)
	for _, agent := range s.agents {
		count := 0
		if s.store != nil {
			count = s.store.Count(agent)
		}
		fmt.Fprintf(&sb, "  %s: %d\n", agent, count)
	}
	return StatusPanelStyle.Width(width).Height(height).Render(sb.String())
}
