package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

type Event struct {
	Type    string
	Message string
}

// Activity shows a rolling log of routing events.
type Activity struct {
	viewport viewport.Model
	events   []Event
}

func NewActivity() *Activity {
	vp := viewport.New(0, 0)
	vp.SetContent("Routing Activity\n")
	return &Activity{
		viewport: vp,
		events:   []Event{},
	}
}

func (a *Activity) Init() tea.Cmd {
	return nil
}

func (a *Activity) Update(msg tea.Msg) (*Activity, tea.Cmd) {
	var cmd tea.Cmd
	a.viewport, cmd = a.viewport.Update(msg)
	return a, cmd
}

func (a *Activity) View(width, height int) string {
	a.viewport.Width = width - 2
	a.viewport.Height = height - 2
	return ActivityPanelStyle.Width(width).Height(height).Render(a.viewport.View())
}

func (a *Activity) AddEvent(eventType, message string) {
	a.events = append(a.events, Event{Type: eventType, Message: message})
	a.updateContent()
	a.viewport.GotoBottom()
}

func (a *Activity) updateContent() {
	var sb strings.Builder
	for _, event := range a.events {
		color := Teal
		if event.Type == "error" {
			color = Red
		}
		style := EventStyle.Foreground(color)
		sb.WriteString(style.Render(fmt.Sprintf("[%s] %s", event.Type, event.Message)))
		sb.WriteString("\n")
	}
	a.viewport.SetContent(sb.String())
}
