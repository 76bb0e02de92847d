// AngelaMos | 2026
// revocation.go

package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mahdiwhb/DEALEXPRESS/internal/core"
)

const revokedTokenPrefix = "revoked:"

// TokenRevocationStore holds the IDs of tokens that were logged out
// before their expiry.
type TokenRevocationStore interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// RedisRevocationStore keeps revoked token IDs in Redis, each entry
// expiring when the token itself would have.
type RedisRevocationStore struct {
	redis *core.Redis
}

func NewRedisRevocationStore(redis *core.Redis) *RedisRevocationStore {
	return &RedisRevocationStore{redis: redis}
}

func (s *RedisRevocationStore) Revoke(
	ctx context.Context,
	tokenID string,
	ttl time.Duration,
) error {
	key := revokedTokenPrefix + tokenID
	if err := s.redis.Client.Set(ctx, key, "1", ttl).Err(); err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}
	return nil
}

func (s *RedisRevocationStore) IsRevoked(
	ctx context.Context,
	tokenID string,
) (bool, error) {
	err := s.redis.Client.Get(ctx, revokedTokenPrefix+tokenID).Err()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

var _ TokenRevocationStore = (*RedisRevocationStore)(nil)
