package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// CommitLock guards the order-commit sequence against double-submits from
// the same user. Acquire reports false when another commit for the user is
// already in flight.
type CommitLock interface {
	Acquire(ctx context.Context, userID uuid.UUID) (bool, error)
	Release(ctx context.Context, userID uuid.UUID) error
}

// RedisCommitLock implements CommitLock on a short-TTL SETNX key. The TTL is
// a safety net in case a crashed process never releases.
type RedisCommitLock struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisCommitLock creates a new RedisCommitLock.
func NewRedisCommitLock(client *redis.Client, ttl time.Duration) *RedisCommitLock {
	return &RedisCommitLock{client: client, ttl: ttl}
}

func (l *RedisCommitLock) key(userID uuid.UUID) string {
	return "commit:lock:user:" + userID.String()
}

// Acquire takes the per-user commit lock.
func (l *RedisCommitLock) Acquire(ctx context.Context, userID uuid.UUID) (bool, error) {
	return l.client.SetNX(ctx, l.key(userID), "1", l.ttl).Result()
}

// Release frees the per-user commit lock.
func (l *RedisCommitLock) Release(ctx context.Context, userID uuid.UUID) error {
	return l.client.Del(ctx, l.key(userID)).Err()
}
