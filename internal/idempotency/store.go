package idempotency

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultTTL - сколько помнить ключ отправленного заказа.
const DefaultTTL = 24 * time.Hour

// Store отмечает ключи идемпотентности в Redis.
type Store struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewStore(rdb *redis.Client, ttl time.Duration) *Store {
	return &Store{rdb: rdb, ttl: ttl}
}

// Key строит ключ Redis для заголовка Idempotency-Key пользователя.
func Key(subject, header string) string {
	return fmt.Sprintf("idem:checkout:%s:%s", subject, header)
}

// Seen atomically marks key and reports whether it was already marked.
func (s *Store) Seen(ctx context.Context, key string) (bool, error) {
	ok, err := s.rdb.SetNX(ctx, key, "1", s.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("idempotency check failed: %w", err)
	}

	return !ok, nil
}

// Release снимает отметку, чтобы запрос с этим ключом можно было повторить.
func (s *Store) Release(ctx context.Context, key string) error {
	if err := s.rdb.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("idempotency release failed: %w", err)
	}

	return nil
}
