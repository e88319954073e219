package agent

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/shivamsuchak/q-revised/internal/memory"
)

func newFallbackCalendar(t *testing.T) *CalendarCapability {
	t.Helper()
	store := memory.NewFileStore(t.TempDir(), testLogger())
	return NewCalendarCapability(nil, store, nil, testLogger())
}

func TestCalendarFallbackScheduling(t *testing.T) {
	cal := newFallbackCalendar(t)

	out := cal.Respond(context.Background(), "Schedule a meeting titled Team Sync on April 30, 2025 at 2:00 PM")
	assert.Contains(t, out, "Calendar Event Created")
	assert.Contains(t, out, "Team Sync")
	assert.Contains(t, out, "April 30, 2025")
	assert.Contains(t, out, "2:00 PM")
}

func TestCalendarFallbackDefaults(t *testing.T) {
	cal := newFallbackCalendar(t)

	out := cal.Respond(context.Background(), "add lunch")
	assert.Contains(t, out, "New Event")
	assert.Contains(t, out, "Tomorrow")
	assert.Contains(t, out, "9:00 AM")
}

func TestCalendarFallbackUpdateAndDelete(t *testing.T) {
	cal := newFallbackCalendar(t)

	out := cal.Respond(context.Background(), "update the event Team Sync to Planning at 3pm")
	assert.Contains(t, out, "Calendar Event Updated")

	out = cal.Respond(context.Background(), "cancel the standup")
	assert.Contains(t, out, "Calendar Event Deleted")
}

func TestCalendarFallbackList(t *testing.T) {
	cal := newFallbackCalendar(t)

	out := cal.ListEvents(context.Background(), "this week")
	assert.Contains(t, out, "Calendar Events for this week")
}

func TestCalendarContinuityBranch(t *testing.T) {
	cal := newFallbackCalendar(t)

	first := cal.Respond(context.Background(), "Schedule a meeting titled Team Sync on April 30, 2025 at 2:00 PM")
	assert.NotContains(t, first, "Continuing from our earlier conversation.")

	// After a full prior exchange the history threshold is exceeded and
	// the response switches to the continuation variant.
	second := cal.Respond(context.Background(), "Schedule a meeting titled Retro on May 2, 2025 at 4:00 PM")
	assert.Contains(t, second, "Continuing from our earlier conversation.")
	assert.NotEqual(t, first, second)
}

func TestCalendarRecordsHistory(t *testing.T) {
	store := memory.NewFileStore(t.TempDir(), testLogger())
	cal := NewCalendarCapability(nil, store, nil, testLogger())

	cal.Respond(context.Background(), "show my schedule")
	assert.Equal(t, 2, store.Count(calendarAgentID))
}

func TestCalendarEventHelpers(t *testing.T) {
	cal := newFallbackCalendar(t)
	ctx := context.Background()

	assert.NotEmpty(t, cal.ScheduleEvent(ctx, "Standup on May 5 at 9:00 AM"))
	assert.NotEmpty(t, cal.UpdateEvent(ctx, "Standup", "Standup at 10:00 AM"))
	assert.NotEmpty(t, cal.DeleteEvent(ctx, "Standup"))
	assert.NotEmpty(t, cal.ListEvents(ctx, ""))
}
