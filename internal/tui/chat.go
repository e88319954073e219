package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type ChatMessage struct {
	Role    string
	Content string
}

// Chat renders the conversation transcript.
type Chat struct {
	viewport viewport.Model
	messages []ChatMessage
}

func NewChat() *Chat {
	vp := viewport.New(0, 0)
	vp.SetContent("Ask me anything. Queries are routed to the best-suited agent.\n")
	return &Chat{
		viewport: vp,
		messages: []ChatMessage{},
	}
}

func (c *Chat) Init() tea.Cmd {
	return nil
}

func (c *Chat) Update(msg tea.Msg) (*Chat, tea.Cmd) {
	var cmd tea.Cmd
	c.viewport, cmd = c.viewport.Update(msg)
	return c, cmd
}

func (c *Chat) View(width, height int) string {
	c.viewport.Width = width - 2
	c.viewport.Height = height - 2
	return ChatPanelStyle.Width(width).Height(height).Render(c.viewport.View())
}

func (c *Chat) AddMessage(role, content string) {
	c.messages = append(c.messages, ChatMessage{Role: role, Content: content})
	c.updateContent()
	c.viewport.GotoBottom()
}

// Clear resets the transcript.
func (c *Chat) Clear() {
	c.messages = c.messages[:0]
	c.viewport.SetContent("")
}

func (c *Chat) updateContent() {
	var sb strings.Builder
	for _, msg := range c.messages {
		var style lipgloss.Style
		if msg.Role == "user" {
			style = UserMessageStyle
		} else {
			style = AssistantMessageStyle
		}
		sb.WriteString(style.Render(msg.Role + ": " + msg.Content))
		sb.WriteString("\n\n")
	}
	c.viewport.SetContent(sb.String())
}
