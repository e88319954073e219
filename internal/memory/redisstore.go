package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/shivamsuchak/q-revised/internal/metrics"
)

const redisOpTimeout = 5 * time.Second

// RedisStore keeps each agent's history in a Redis list. Entries are stored
// as JSON under "history:<agent_id>".
type RedisStore struct {
	client *redis.Client
	logger *slog.Logger
}

// NewRedisStore connects to Redis and verifies the connection.
func NewRedisStore(addr, password string, db int, logger *slog.Logger) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), redisOpTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &RedisStore{client: client, logger: logger}, nil
}

func redisKey(agentID string) string {
	return "history:" + agentID
}

func (s *RedisStore) append(agentID, role, content string) error {
	entry := Entry{Role: role, Content: content, Timestamp: time.Now()}
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to encode entry: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), redisOpTimeout)
	defer cancel()
	if err := s.client.RPush(ctx, redisKey(agentID), data).Err(); err != nil {
		return fmt.Errorf("failed to append entry: %w", err)
	}
	metrics.MemoryOperations.WithLabelValues("append").Inc()
	return nil
}

// AppendUser records a user turn.
func (s *RedisStore) AppendUser(agentID, content string) error {
	return s.append(agentID, RoleUser, content)
}

// AppendAssistant records an assistant turn.
func (s *RedisStore) AppendAssistant(agentID, content string) error {
	return s.append(agentID, RoleAssistant, content)
}

// entries reads the full log. Redis errors are logged and treated as an
// empty history so responses degrade instead of failing.
func (s *RedisStore) entries(agentID string) []Entry {
	ctx, cancel := context.WithTimeout(context.Background(), redisOpTimeout)
	defer cancel()

	raw, err := s.client.LRange(ctx, redisKey(agentID), 0, -1).Result()
	if err != nil {
		s.logger.Warn("Failed to read history from redis", "agent", agentID, "error", err)
		return nil
	}

	entries := make([]Entry, 0, len(raw))
	for _, item := range raw {
		var e Entry
		if err := json.Unmarshal([]byte(item), &e); err != nil {
			s.logger.Warn("Skipping corrupt history entry", "agent", agentID, "error", err)
			continue
		}
		entries = append(entries, e)
	}
	return entries
}

// History returns the last max turns formatted for prompt injection.
func (s *RedisStore) History(agentID string, max int) string {
	return formatHistory(s.entries(agentID), max)
}

// Count returns the number of stored turns.
func (s *RedisStore) Count(agentID string) int {
	ctx, cancel := context.WithTimeout(context.Background(), redisOpTimeout)
	defer cancel()

	n, err := s.client.LLen(ctx, redisKey(agentID)).Result()
	if err != nil {
		s.logger.Warn("Failed to count history", "agent", agentID, "error", err)
		return 0
	}
	return int(n)
}

// Clear removes all history for the agent.
func (s *RedisStore) Clear(agentID string) error {
	ctx, cancel := context.WithTimeout(context.Background(), redisOpTimeout)
	defer cancel()

	if err := s.client.Del(ctx, redisKey(agentID)).Err(); err != nil {
		return fmt.Errorf("failed to clear history: %w", err)
	}
	metrics.MemoryOperations.WithLabelValues("clear").Inc()
	return nil
}

// Stats summarizes the agent's conversation log.
func (s *RedisStore) Stats(agentID string) Stats {
	return computeStats(s.entries(agentID))
}

// Close releases the Redis connection.
func (s *RedisStore) Close() error {
	return s.client.Close()
}
