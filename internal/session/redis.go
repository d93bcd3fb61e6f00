package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

type redisStore struct {
	client *redis.Client
}

// NewRedisStore keeps sessions in Redis with native TTL expiry. Preferred in
// deployments where REDIS_URL is configured.
func NewRedisStore(client *redis.Client) Store {
	return &redisStore{client: client}
}

func sessionKey(token string) string {
	return "session:" + token
}

func (s *redisStore) Create(ctx context.Context, userID uuid.UUID, ttl time.Duration) (string, error) {
	token, err := newToken()
	if err != nil {
		return "", err
	}

	if err := s.client.Set(ctx, sessionKey(token), userID.String(), ttl).Err(); err != nil {
		return "", fmt.Errorf("failed to store session: %w", err)
	}

	return token, nil
}

func (s *redisStore) Resolve(ctx context.Context, token string) (uuid.UUID, error) {
	val, err := s.client.Get(ctx, sessionKey(token)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return uuid.Nil, ErrNotFound
		}
		return uuid.Nil, fmt.Errorf("failed to resolve session: %w", err)
	}

	userID, err := uuid.Parse(val)
	if err != nil {
		return uuid.Nil, ErrNotFound
	}

	return userID, nil
}

func (s *redisStore) Destroy(ctx context.Context, token string) error {
	return s.client.Del(ctx, sessionKey(token)).Err()
}
