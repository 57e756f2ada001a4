package sessions

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"time"
)

// Service wraps repository operations with expiry handling and token generation.
type Service struct {
	repo Repository
	ttl  time.Duration
	now  func() time.Time
}

func NewService(r Repository, ttl time.Duration) *Service {
	return &Service{repo: r, ttl: ttl, now: func() time.Time { return time.Now().UTC() }}
}

// CreateSession stores a new refresh session for userID and returns the refresh token.
func (s *Service) CreateSession(ctx context.Context, userID string) (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	token := hex.EncodeToString(b)
	sess := &Session{
		RefreshToken: token,
		UserID:       userID,
		CreatedAt:    s.now(),
		ExpiresAt:    s.now().Add(s.ttl),
	}
	if err := s.repo.Create(ctx, sess); err != nil {
		return "", err
	}
	return token, nil
}

// ValidateRefresh returns the live session for refresh, or ErrNotFound.
// Expired sessions are removed on sight.
func (s *Service) ValidateRefresh(ctx context.Context, refresh string) (*Session, error) {
	if refresh == "" {
		return nil, ErrNotFound
	}
	sess, err := s.repo.GetByRefresh(ctx, refresh)
	if err != nil {
		return nil, err
	}
	if sess.Expired(s.now()) {
		_ = s.repo.DeleteByRefresh(ctx, refresh)
		return nil, ErrNotFound
	}
	return sess, nil
}

// DeleteRefresh removes the session. Unknown tokens are not an error.
func (s *Service) DeleteRefresh(ctx context.Context, refresh string) error {
	err := s.repo.DeleteByRefresh(ctx, refresh)
	if errors.Is(err, ErrNotFound) {
		return nil
	}
	return err
}
