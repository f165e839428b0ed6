// Package adapter contains infrastructure adapters behind domain interfaces.
package adapter

import (
	"context"
	"fmt"
	"time"

	"vidquiz/internal/domain"

	"github.com/redis/go-redis/v9"
)

const blacklistKeyPrefix = "auth:blacklist:"

// RedisTokenBlacklist implements domain.TokenBlacklist. Revoked refresh
// tokens are stored by JWT ID with a TTL equal to their remaining lifetime,
// so entries expire exactly when the token itself would have.
type RedisTokenBlacklist struct {
	client *redis.Client
}

func NewRedisTokenBlacklist(client *redis.Client) domain.TokenBlacklist {
	return &RedisTokenBlacklist{client: client}
}

func (b *RedisTokenBlacklist) Add(ctx context.Context, jti string, ttl time.Duration) error {
	if ttl <= 0 {
		// Already expired; nothing to revoke.
		return nil
	}
	if err := b.client.Set(ctx, blacklistKeyPrefix+jti, "revoked", ttl).Err(); err != nil {
		return fmt.Errorf("failed to blacklist token %s: %w", jti, err)
	}
	return nil
}

func (b *RedisTokenBlacklist) Contains(ctx context.Context, jti string) (bool, error) {
	n, err := b.client.Exists(ctx, blacklistKeyPrefix+jti).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check token blacklist: %w", err)
	}
	return n > 0, nil
}
