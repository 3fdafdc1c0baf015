package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

const sessionPrefix = "session:"

// RedisStore keeps sessions as JSON values that expire after ttl of
// inactivity. Expiry does the sweeping, so Sweep only reports nothing.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
	now    func() time.Time
}

func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl, now: time.Now}
}

func sessionKey(key Key) string {
	return sessionPrefix + key.TenantID + ":" + key.CustomerID
}

func (r *RedisStore) Get(ctx context.Context, key Key) (*Session, error) {
	if !key.Valid() {
		return nil, ErrInvalidKey
	}

	data, err := r.client.Get(ctx, sessionKey(key)).Result()
	if err == redis.Nil {
		s := New(key, r.now())
		return s, r.put(ctx, s)
	}
	if err != nil {
		return nil, fmt.Errorf("session: redis get %s: %w", key, err)
	}

	var s Session
	if err := json.Unmarshal([]byte(data), &s); err != nil {
		return nil, fmt.Errorf("session: decode %s: %w", key, err)
	}
	s.LastActivity = r.now()
	return &s, r.put(ctx, &s)
}

func (r *RedisStore) Save(ctx context.Context, s *Session) error {
	if err := s.Validate(); err != nil {
		return err
	}
	return r.put(ctx, s)
}

func (r *RedisStore) Reset(ctx context.Context, key Key) error {
	prev, err := r.Get(ctx, key)
	if err != nil {
		return err
	}
	s := New(key, r.now())
	s.Language = prev.Language
	s.LanguageSticky = prev.LanguageSticky
	return r.put(ctx, s)
}

func (r *RedisStore) Sweep(context.Context, time.Duration) ([]Key, error) {
	return nil, nil
}

func (r *RedisStore) ReapTenant(ctx context.Context, tenantID string) ([]Key, error) {
	pattern := sessionPrefix + tenantID + ":*"

	var keys []Key
	iter := r.client.Scan(ctx, 0, pattern, 100).Iterator()
	for iter.Next(ctx) {
		redisKey := iter.Val()
		if err := r.client.Del(ctx, redisKey).Err(); err != nil {
			return keys, fmt.Errorf("session: redis del %s: %w", redisKey, err)
		}
		keys = append(keys, Key{
			TenantID:   tenantID,
			CustomerID: redisKey[len(sessionPrefix)+len(tenantID)+1:],
		})
	}
	if err := iter.Err(); err != nil {
		return keys, fmt.Errorf("session: redis scan: %w", err)
	}
	return keys, nil
}

func (r *RedisStore) put(ctx context.Context, s *Session) error {
	b, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("session: encode %s: %w", s.Key(), err)
	}
	if err := r.client.Set(ctx, sessionKey(s.Key()), b, r.ttl).Err(); err != nil {
		return fmt.Errorf("session: redis set %s: %w", s.Key(), err)
	}
	return nil
}
