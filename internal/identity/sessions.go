package identity

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const sessionRevocationTTL = 30 * 24 * time.Hour

// SessionRegistry records per-account session revocation epochs in
// Redis. A bearer token issued before the stored epoch is no longer
// acceptable.
type SessionRegistry struct {
	client *redis.Client
}

// NewSessionRegistry wraps the shared Redis client.
func NewSessionRegistry(client *redis.Client) *SessionRegistry {
	return &SessionRegistry{client: client}
}

func sessionKey(accountID string) string {
	return fmt.Sprintf("identity:sessions:revoked_at:%s", accountID)
}

// Revoke stores the revocation epoch for the account. Tokens issued at
// or before this instant are invalid.
func (r *SessionRegistry) Revoke(ctx context.Context, accountID string, at time.Time) error {
	return r.client.Set(ctx, sessionKey(accountID), at.UTC().Format(time.RFC3339Nano), sessionRevocationTTL).Err()
}

// RevokedAt returns the revocation epoch for the account, or the zero
// time when no revocation is recorded.
func (r *SessionRegistry) RevokedAt(ctx context.Context, accountID string) (time.Time, error) {
	val, err := r.client.Get(ctx, sessionKey(accountID)).Result()
	if errors.Is(err, redis.Nil) {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, err
	}
	return time.Parse(time.RFC3339Nano, val)
}
