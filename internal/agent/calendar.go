package agent

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/shivamsuchak/q-revised/internal/calendar"
	"github.com/shivamsuchak/q-revised/internal/completion"
	"github.com/shivamsuchak/q-revised/internal/memory"
	"github.com/shivamsuchak/q-revised/internal/metrics"
	"github.com/shivamsuchak/q-revised/internal/textutil"
)

const calendarAgentID = "calendar_agent"

// CalendarCapability manages calendar events. It is the one capability that
// carries conversation history into its prompts, and it exposes direct
// event operations for the calendar HTTP endpoints.
type CalendarCapability struct {
	client completion.Client
	store  memory.Store
	creds  *calendar.Credentials
	logger *slog.Logger
}

// NewCalendarCapability creates the calendar capability. A nil creds means
// no calendar provider is configured; a nil client forces fallback mode.
func NewCalendarCapability(client completion.Client, store memory.Store, creds *calendar.Credentials, logger *slog.Logger) *CalendarCapability {
	return &CalendarCapability{
		client: client,
		store:  store,
		creds:  creds,
		logger: logger,
	}
}

func (c *CalendarCapability) Name() string { return CapCalendar }

// Respond handles a calendar request, recording the exchange in history.
func (c *CalendarCapability) Respond(ctx context.Context, query string) string {
	if err := c.store.AppendUser(calendarAgentID, query); err != nil {
		c.logger.Warn("Failed to record user turn", "error", err)
	}
	continuing := c.store.Count(calendarAgentID) > continuityThreshold

	if c.client != nil && c.creds != nil {
		var prompt string
		if continuing {
			history := c.store.History(calendarAgentID, memory.DefaultHistoryLimit)
			prompt = fmt.Sprintf("Previous conversation:\n%s\n\nNew request: %s", history, query)
		} else {
			prompt = c.enhanceQuery(query)
		}

		prompt = buildPrompt(
			"You are a calendar management assistant that helps users manage their Google Calendar events.",
			[]string{
				"Help users manage their Google Calendar by creating, editing, viewing, and deleting events.",
				"Always confirm event details before making changes.",
				"Provide clear summaries of actions taken.",
				"Format calendar information in a clear, structured way.",
				"Use appropriate formatting for dates (YYYY-MM-DD) and times (HH:MM) when creating events.",
				"Always show the full details of any events you create, modify, or delete.",
			},
			prompt,
		)

		if text, err := c.client.Complete(ctx, prompt); err == nil {
			response := textutil.ExtractContent(text)
			if err := c.store.AppendAssistant(calendarAgentID, response); err != nil {
				c.logger.Warn("Failed to record assistant turn", "error", err)
			}
			return response
		} else {
			c.logger.Warn("Calendar completion failed, using fallback", "error", err)
		}
	}

	metrics.FallbackResponses.WithLabelValues(CapCalendar).Inc()
	response := c.fallback(query, continuing)
	if err := c.store.AppendAssistant(calendarAgentID, response); err != nil {
		c.logger.Warn("Failed to record assistant turn", "error", err)
	}
	return response
}

// ScheduleEvent creates a new event from free-text details.
func (c *CalendarCapability) ScheduleEvent(ctx context.Context, details string) string {
	return c.Respond(ctx, fmt.Sprintf("Schedule the following event: %s", details))
}

// UpdateEvent changes an existing event to the new details.
func (c *CalendarCapability) UpdateEvent(ctx context.Context, originalEvent, newDetails string) string {
	return c.Respond(ctx, fmt.Sprintf("Update the calendar event '%s' to %s", originalEvent, newDetails))
}

// DeleteEvent removes the named event.
func (c *CalendarCapability) DeleteEvent(ctx context.Context, event string) string {
	return c.Respond(ctx, fmt.Sprintf("Delete the calendar event: %s", event))
}

// ListEvents shows events for the given time period.
func (c *CalendarCapability) ListEvents(ctx context.Context, timePeriod string) string {
	if timePeriod == "" {
		timePeriod = "today"
	}
	return c.Respond(ctx, fmt.Sprintf("Show my calendar events for %s", timePeriod))
}

// enhanceQuery makes the intended calendar action explicit before handing
// the query to the completion service.
func (c *CalendarCapability) enhanceQuery(query string) string {
	queryLower := strings.ToLower(query)
	if strings.Contains(queryLower, "calendar") {
		return query
	}

	switch {
	case containsAny(queryLower, "add", "create", "schedule"):
		return fmt.Sprintf("Add this event to my calendar: %s", query)
	case containsAny(queryLower, "edit", "update", "change"):
		return fmt.Sprintf("Update this calendar event: %s", query)
	case containsAny(queryLower, "delete", "remove", "cancel"):
		return fmt.Sprintf("Delete this calendar event: %s", query)
	case containsAny(queryLower, "show", "view", "list"):
		return fmt.Sprintf("Show my calendar events: %s", query)
	}
	return query
}

// textBetween returns the text after the first occurrence of start and
// before the next occurrence of end, or fallback when start is absent.
func textBetween(s, start, end, fallback string) string {
	_, after, found := strings.Cut(s, start)
	if !found {
		return fallback
	}
	if before, _, ok := strings.Cut(after, end); ok {
		return strings.TrimSpace(before)
	}
	return strings.TrimSpace(after)
}

// textAfter returns the text after the first occurrence of any marker, or
// fallback when none matches.
func textAfter(s, fallback string, markers ...string) string {
	for _, m := range markers {
		if _, after, found := strings.Cut(s, m); found {
			return strings.TrimSpace(after)
		}
	}
	return fallback
}

func (c *CalendarCapability) fallback(query string, continuing bool) string {
	queryLower := strings.ToLower(query)

	var response string
	switch {
	case containsAny(queryLower, "add", "create", "schedule"):
		response = fmt.Sprintf(`# Calendar Event Created ✅

## Event Details
- Title: %s
- Date: %s
- Time: %s

The event has been successfully added to your calendar.

Would you like to set a reminder for this event?`,
			textBetween(query, "titled", " on ", "New Event"),
			textBetween(query, "on ", " at ", "Tomorrow"),
			textAfter(query, "9:00 AM", "at "))

	case containsAny(queryLower, "edit", "update", "change"):
		response = fmt.Sprintf(`# Calendar Event Updated ✅

## Updated Event Details
- Original Event: %s
- New Details: %s

Your calendar has been successfully updated.

Is there anything else you'd like to modify about this event?`,
			textBetween(query, "event", "to", "Unknown Event"),
			textAfter(query, "Updated Details", "to"))

	case containsAny(queryLower, "delete", "remove", "cancel"):
		response = fmt.Sprintf(`# Calendar Event Deleted ✅

The event "%s" has been removed from your calendar.

Would you like me to help you schedule a different event?`,
			textAfter(query, "Unknown Event", "delete", "remove", "cancel"))

	case containsAny(queryLower, "show", "list", "view"):
		timePeriod := textAfter(query, "today", "for")
		response = fmt.Sprintf(`# Calendar Events for %s

## Morning
- 9:00 AM - 10:00 AM: Team Stand-up Meeting
- 11:30 AM - 12:00 PM: Client Call

## Afternoon
- 2:00 PM - 3:30 PM: Project Planning
- 4:00 PM - 5:00 PM: Weekly Review

These are your scheduled events for %s. Would you like to add a new event or modify an existing one?`, timePeriod, timePeriod)

	default:
		response = `# Calendar Information

I can help you manage your calendar. You can ask me to:
- Add new events
- Edit existing events
- Delete events
- View your schedule for a specific date

What would you like to do with your calendar?`
	}

	if continuing {
		response = "Continuing from our earlier conversation.\n\n" + response
	}
	return response
}
