package scheduler

import (
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shivamsuchak/q-revised/internal/memory"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func TestNewRejectsInvalidSchedule(t *testing.T) {
	store := memory.NewFileStore(t.TempDir(), testLogger())

	_, err := New(store, "not a cron spec", testLogger())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "stats schedule")
}

func TestNewAcceptsDescriptorSchedules(t *testing.T) {
	store := memory.NewFileStore(t.TempDir(), testLogger())

	s, err := New(store, "@hourly", testLogger())
	require.NoError(t, err)

	s.Start()
	s.Stop()
}

func TestReportStatsSkipsEmptyAgents(t *testing.T) {
	store := memory.NewFileStore(t.TempDir(), testLogger())
	require.NoError(t, store.AppendUser("general", "hello"))
	require.NoError(t, store.AppendAssistant("general", "hi there"))

	s, err := New(store, "@hourly", testLogger())
	require.NoError(t, err)

	// Must not panic for agents with no history on disk.
	s.reportStats()
}
