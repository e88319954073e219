// Package tui implements an interactive terminal chat client over the
// query router.
package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/shivamsuchak/q-revised/internal/memory"
)

// Processor routes one query and returns the response text.
type Processor interface {
	Process(ctx context.Context, query string) string
}

type Panel int

const (
	ChatPanel Panel = iota
	StatusPanel
	ActivityPanel
)

// responseMsg carries a finished routing result back into the update
// loop.
type responseMsg struct {
	query string
	text  string
}

type App struct {
	width, height int
	currentPanel  Panel
	chat          *Chat
	status        *Status
	activity      *Activity
	input         *Input
	keys          KeyMap
	processor     Processor
	busy          bool
}

func NewApp(processor Processor, provider string, store memory.Store, agents []string) *App {
	return &App{
		currentPanel: ChatPanel,
		chat:         NewChat(),
		status:       NewStatus(provider, store, agents),
		activity:     NewActivity(),
		input:        NewInput(),
		keys:         DefaultKeyMap,
		processor:    processor,
	}
}

// Run starts the chat client and blocks until the user quits.
func Run(processor Processor, provider string, store memory.Store, agents []string) error {
	p := tea.NewProgram(NewApp(processor, provider, store, agents), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func (a *App) Init() tea.Cmd {
	return tea.Batch(a.chat.Init(), a.status.Init(), a.activity.Init(), a.input.Init())
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, a.keys.Quit):
			return a, tea.Quit
		case key.Matches(msg, a.keys.Tab):
			a.currentPanel = (a.currentPanel + 1) % 3
		case key.Matches(msg, a.keys.Clear):
			a.chat.Clear()
		case msg.String() == "enter":
			if cmd := a.submit(); cmd != nil {
				cmds = append(cmds, cmd)
			}
		}
	case responseMsg:
		a.busy = false
		a.chat.AddMessage("assistant", msg.text)
		a.activity.AddEvent("response", truncate(msg.query, 48))
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
	}

	var cmd tea.Cmd
	a.chat, cmd = a.chat.Update(msg)
	cmds = append(cmds, cmd)
	a.status, cmd = a.status.Update(msg)
	cmds = append(cmds, cmd)
	a.activity, cmd = a.activity.Update(msg)
	cmds = append(cmds, cmd)
	a.input, cmd = a.input.Update(msg)
	cmds = append(cmds, cmd)

	return a, tea.Batch(cmds...)
}

// submit dispatches the current input through the router on a command
// goroutine. One query runs at a time.
func (a *App) submit() tea.Cmd {
	query := a.input.Value()
	if query == "" || a.busy {
		return nil
	}

	a.busy = true
	a.chat.AddMessage("user", query)
	a.activity.AddEvent("query", truncate(query, 48))
	a.input.Reset()

	processor := a.processor
	return func() tea.Msg {
		return responseMsg{query: query, text: processor.Process(context.Background(), query)}
	}
}

func (a *App) View() string {
	if a.width == 0 || a.height == 0 {
		return "Initializing..."
	}

	statusBar := a.statusBarView()
	inputBar := a.input.View()

	contentHeight := a.height - lipgloss.Height(statusBar) - lipgloss.Height(inputBar)

	leftWidth := int(float64(a.width) * 0.7)
	rightWidth := a.width - leftWidth

	chatView := a.chat.View(leftWidth, contentHeight)
	var rightView string
	switch a.currentPanel {
	case ActivityPanel:
		rightView = a.activity.View(rightWidth, contentHeight)
	default:
		rightView = a.status.View(rightWidth, contentHeight)
	}

	layout := lipgloss.JoinHorizontal(lipgloss.Top, chatView, rightView)

	return lipgloss.JoinVertical(lipgloss.Left, statusBar, layout, inputBar)
}

func (a *App) statusBarView() string {
	state := "ready"
	if a.busy {
		state = "thinking..."
	}
	return StatusBarStyle.Width(a.width).Render(
		fmt.Sprintf("qagent chat | %s | tab: panels, esc: quit", state))
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
