package session

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
)

// Turn is one exchange: what the customer said and what the assistant answered.
// History is stored in whole turns so trimming never leaves half an exchange.
type Turn struct {
	User      string `json:"user"`
	Assistant string `json:"assistant"`
}

// HistoryStore keeps the bounded AI conversation history per (tenant, customer).
type HistoryStore interface {
	Get(ctx context.Context, key Key) ([]Turn, error)
	Append(ctx context.Context, key Key, turn Turn) error
	Clear(ctx context.Context, key Key) error
}

// MemoryHistory is a process-local HistoryStore.
type MemoryHistory struct {
	mu       sync.Mutex
	maxTurns int
	turns    map[Key][]Turn
}

func NewMemoryHistory(maxTurns int) *MemoryHistory {
	if maxTurns <= 0 {
		maxTurns = 10
	}
	return &MemoryHistory{maxTurns: maxTurns, turns: make(map[Key][]Turn)}
}

func (h *MemoryHistory) Get(_ context.Context, key Key) ([]Turn, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]Turn(nil), h.turns[key]...), nil
}

func (h *MemoryHistory) Append(_ context.Context, key Key, turn Turn) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.turns[key] = trimHistory(append(h.turns[key], turn), h.maxTurns)
	return nil
}

func (h *MemoryHistory) Clear(_ context.Context, key Key) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.turns, key)
	return nil
}

func trimHistory(turns []Turn, limit int) []Turn {
	if len(turns) <= limit {
		return turns
	}
	return append([]Turn(nil), turns[len(turns)-limit:]...)
}

const historyPrefix = "history:"

// RedisHistory keeps each conversation as a capped Redis list of JSON turns.
type RedisHistory struct {
	client   *redis.Client
	maxTurns int
	ttl      time.Duration
}

func NewRedisHistory(client *redis.Client, maxTurns int, ttl time.Duration) *RedisHistory {
	if maxTurns <= 0 {
		maxTurns = 10
	}
	return &RedisHistory{client: client, maxTurns: maxTurns, ttl: ttl}
}

func historyKey(key Key) string {
	return historyPrefix + key.TenantID + ":" + key.CustomerID
}

func (h *RedisHistory) Get(ctx context.Context, key Key) ([]Turn, error) {
	items, err := h.client.LRange(ctx, historyKey(key), 0, -1).Result()
	if err != nil && err != redis.Nil {
		return nil, fmt.Errorf("history: redis lrange %s: %w", key, err)
	}

	turns := make([]Turn, 0, len(items))
	for _, item := range items {
		var t Turn
		if err := json.Unmarshal([]byte(item), &t); err != nil {
			return nil, fmt.Errorf("history: decode %s: %w", key, err)
		}
		turns = append(turns, t)
	}
	return turns, nil
}

func (h *RedisHistory) Append(ctx context.Context, key Key, turn Turn) error {
	b, err := json.Marshal(turn)
	if err != nil {
		return err
	}

	rk := historyKey(key)
	_, err = h.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.RPush(ctx, rk, b)
		pipe.LTrim(ctx, rk, int64(-h.maxTurns), -1)
		if h.ttl > 0 {
			pipe.Expire(ctx, rk, h.ttl)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("history: redis append %s: %w", key, err)
	}
	return nil
}

func (h *RedisHistory) Clear(ctx context.Context, key Key) error {
	return h.client.Del(ctx, historyKey(key)).Err()
}
