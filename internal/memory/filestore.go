package memory

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/shivamsuchak/q-revised/internal/metrics"
)

// FileStore keeps each agent's history in memory and writes the whole log to
// a JSON file on every append. Persistence failures are logged and swallowed
// so conversations keep working on read-only filesystems.
type FileStore struct {
	dir    string
	logger *slog.Logger

	mu       sync.Mutex
	sessions map[string][]Entry
}

// NewFileStore creates a file-backed store rooted at dir. The directory is
// created if missing; failure to create it is non-fatal and leaves the store
// in memory-only mode.
func NewFileStore(dir string, logger *slog.Logger) *FileStore {
	if err := os.MkdirAll(dir, 0755); err != nil {
		logger.Warn("Failed to create memory directory, running in-memory only",
			"dir", dir, "error", err)
	}

	return &FileStore{
		dir:      dir,
		logger:   logger,
		sessions: make(map[string][]Entry),
	}
}

func (s *FileStore) path(agentID string) string {
	return filepath.Join(s.dir, fmt.Sprintf("%s_history.json", agentID))
}

// load reads the agent's log from disk into the cache. A corrupt file resets
// the log to empty. Caller must hold mu.
func (s *FileStore) load(agentID string) []Entry {
	if entries, ok := s.sessions[agentID]; ok {
		return entries
	}

	var entries []Entry
	data, err := os.ReadFile(s.path(agentID))
	if err == nil {
		if err := json.Unmarshal(data, &entries); err != nil {
			s.logger.Warn("Corrupt history file, starting fresh",
				"agent", agentID, "error", err)
			entries = nil
		}
	}

	s.sessions[agentID] = entries
	return entries
}

// persist writes the agent's full log to disk. Caller must hold mu.
func (s *FileStore) persist(agentID string) {
	data, err := json.MarshalIndent(s.sessions[agentID], "", "  ")
	if err != nil {
		s.logger.Warn("Failed to encode history", "agent", agentID, "error", err)
		return
	}
	if err := os.WriteFile(s.path(agentID), data, 0644); err != nil {
		s.logger.Warn("Failed to persist history", "agent", agentID, "error", err)
	}
}

func (s *FileStore) append(agentID, role, content string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries := s.load(agentID)
	s.sessions[agentID] = append(entries, Entry{
		Role:      role,
		Content:   content,
		Timestamp: time.Now(),
	})
	s.persist(agentID)
	metrics.MemoryOperations.WithLabelValues("append").Inc()
	return nil
}

// AppendUser records a user turn.
func (s *FileStore) AppendUser(agentID, content string) error {
	return s.append(agentID, RoleUser, content)
}

// AppendAssistant records an assistant turn.
func (s *FileStore) AppendAssistant(agentID, content string) error {
	return s.append(agentID, RoleAssistant, content)
}

// History returns the last max turns formatted for prompt injection.
func (s *FileStore) History(agentID string, max int) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return formatHistory(s.load(agentID), max)
}

// Count returns the number of stored turns.
func (s *FileStore) Count(agentID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.load(agentID))
}

// Clear removes all history for the agent, including the on-disk file.
func (s *FileStore) Clear(agentID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions[agentID] = nil
	if err := os.Remove(s.path(agentID)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove history file: %w", err)
	}
	metrics.MemoryOperations.WithLabelValues("clear").Inc()
	return nil
}

// Stats summarizes the agent's conversation log.
func (s *FileStore) Stats(agentID string) Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return computeStats(s.load(agentID))
}
