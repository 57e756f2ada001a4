package sessions

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const revokedPrefix = "revoked:access:"

// Revocations records access tokens that were logged out before they expired.
// A nil client disables it: Add is a no-op and Contains always reports false.
type Revocations struct {
	client *redis.Client
}

func NewRevocations(client *redis.Client) *Revocations {
	return &Revocations{client: client}
}

// Add revokes token for ttl. Non-positive ttls are skipped, the token is already dead.
func (r *Revocations) Add(ctx context.Context, token string, ttl time.Duration) error {
	if r == nil || r.client == nil || ttl <= 0 {
		return nil
	}
	return r.client.Set(ctx, revokedPrefix+token, "1", ttl).Err()
}

func (r *Revocations) Contains(ctx context.Context, token string) (bool, error) {
	if r == nil || r.client == nil {
		return false, nil
	}
	n, err := r.client.Exists(ctx, revokedPrefix+token).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
