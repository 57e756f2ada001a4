package sessions

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisRepository keeps each session in a hash under "<prefix><refreshToken>"
// that Redis expires at the session's expiresAt.
type RedisRepository struct {
	client *redis.Client
	prefix string
}

// NewRedisRepository creates a Redis-backed session store. An empty prefix
// defaults to "session:".
func NewRedisRepository(client *redis.Client, prefix string) *RedisRepository {
	if prefix == "" {
		prefix = "session:"
	}
	return &RedisRepository{client: client, prefix: prefix}
}

func (r *RedisRepository) Create(ctx context.Context, s *Session) error {
	if s.CreatedAt.IsZero() {
		s.CreatedAt = time.Now().UTC()
	}
	key := r.prefix + s.RefreshToken
	_, err := r.client.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.HSet(ctx, key,
			"userId", s.UserID,
			"createdAt", s.CreatedAt.UnixMilli(),
			"expiresAt", s.ExpiresAt.UnixMilli(),
		)
		// an expiry in the past drops the key straight away
		p.PExpireAt(ctx, key, s.ExpiresAt)
		return nil
	})
	return err
}

func (r *RedisRepository) GetByRefresh(ctx context.Context, refresh string) (*Session, error) {
	fields, err := r.client.HGetAll(ctx, r.prefix+refresh).Result()
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return nil, ErrNotFound
	}
	created, err := millis(fields["createdAt"])
	if err != nil {
		return nil, fmt.Errorf("session %s: createdAt: %w", refresh, err)
	}
	expires, err := millis(fields["expiresAt"])
	if err != nil {
		return nil, fmt.Errorf("session %s: expiresAt: %w", refresh, err)
	}
	return &Session{
		RefreshToken: refresh,
		UserID:       fields["userId"],
		CreatedAt:    created,
		ExpiresAt:    expires,
	}, nil
}

func (r *RedisRepository) DeleteByRefresh(ctx context.Context, refresh string) error {
	return r.client.Del(ctx, r.prefix+refresh).Err()
}

func millis(v string) (time.Time, error) {
	ms, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return time.Time{}, err
	}
	return time.UnixMilli(ms).UTC(), nil
}
