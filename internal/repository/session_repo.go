package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// SessionStore records revoked session token ids until they expire.
type SessionStore interface {
	Revoke(ctx context.Context, jti string, expiresAt time.Time) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

type redisSessionStore struct {
	client *redis.Client
}

func NewRedisSessionStore(client *redis.Client) SessionStore {
	return &redisSessionStore{client: client}
}

func (r *redisSessionStore) Revoke(ctx context.Context, jti string, expiresAt time.Time) error {
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return nil
	}
	return r.client.Set(ctx, revokedKey(jti), "1", ttl).Err()
}

func (r *redisSessionStore) IsRevoked(ctx context.Context, jti string) (bool, error) {
	n, err := r.client.Exists(ctx, revokedKey(jti)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func revokedKey(jti string) string {
	return fmt.Sprintf("session:revoked:%s", jti)
}

// NopSessionStore is used when Redis is not configured: logout only clears
// the cookie and tokens stay valid until they expire.
type NopSessionStore struct{}

func (NopSessionStore) Revoke(context.Context, string, time.Time) error { return nil }

func (NopSessionStore) IsRevoked(context.Context, string) (bool, error) { return false, nil }
