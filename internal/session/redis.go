package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// RedisManager stores sessions as JSON strings under prefix+id with a Redis
// TTL equal to the session lifetime, so several instances can share them.
type RedisManager struct {
	rdb    *redis.Client
	ttl    time.Duration
	prefix string
}

func NewRedisManager(rdb *redis.Client, ttl time.Duration, prefix string) *RedisManager {
	if prefix == "" {
		prefix = "sess"
	}
	return &RedisManager{rdb: rdb, ttl: ttl, prefix: prefix}
}

func (m *RedisManager) key(id string) string { return m.prefix + ":" + id }

func (m *RedisManager) Create(ctx context.Context, admin bool) (*Session, error) {
	now := time.Now()
	s := &Session{ID: uuid.NewString(), Admin: admin, CreatedAt: now, ExpiresAt: now.Add(m.ttl)}
	b, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	if err := m.rdb.SetEx(ctx, m.key(s.ID), b, m.ttl).Err(); err != nil {
		return nil, fmt.Errorf("session: store: %w", err)
	}
	return s, nil
}

func (m *RedisManager) Get(ctx context.Context, id string) (*Session, error) {
	b, err := m.rdb.Get(ctx, m.key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("session: load: %w", err)
	}
	var s Session
	if err := json.Unmarshal(b, &s); err != nil {
		return nil, fmt.Errorf("session: decode: %w", err)
	}
	if s.Expired(time.Now()) {
		return nil, nil
	}
	return &s, nil
}

func (m *RedisManager) Destroy(ctx context.Context, id string) error {
	if err := m.rdb.Del(ctx, m.key(id)).Err(); err != nil {
		return fmt.Errorf("session: delete: %w", err)
	}
	return nil
}
