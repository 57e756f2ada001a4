package sessions

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestCreateAndValidateSession(t *testing.T) {
	svc := NewService(NewMemoryRepository(), time.Hour)
	ctx := context.Background()

	r, err := svc.CreateSession(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, r, 64)

	sess, err := svc.ValidateRefresh(ctx, r)
	require.NoError(t, err)
	require.Equal(t, "user-1", sess.UserID)

	require.NoError(t, svc.DeleteRefresh(ctx, r))
	_, err = svc.ValidateRefresh(ctx, r)
	require.ErrorIs(t, err, ErrNotFound)

	// deleting twice is fine
	require.NoError(t, svc.DeleteRefresh(ctx, r))
}

func TestValidateRefresh_Expired(t *testing.T) {
	repo := NewMemoryRepository()
	svc := NewService(repo, time.Minute)
	ctx := context.Background()

	r, err := svc.CreateSession(ctx, "user-2")
	require.NoError(t, err)

	svc.now = func() time.Time { return time.Now().UTC().Add(2 * time.Minute) }
	_, err = svc.ValidateRefresh(ctx, r)
	require.ErrorIs(t, err, ErrNotFound)

	// expired session was cleaned up
	_, err = repo.GetByRefresh(ctx, r)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestValidateRefresh_Unknown(t *testing.T) {
	svc := NewService(NewMemoryRepository(), time.Hour)
	_, err := svc.ValidateRefresh(context.Background(), "")
	require.ErrorIs(t, err, ErrNotFound)
	_, err = svc.ValidateRefresh(context.Background(), "deadbeef")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestTokensAreUnique(t *testing.T) {
	svc := NewService(NewMemoryRepository(), time.Hour)
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		r, err := svc.CreateSession(context.Background(), "u")
		require.NoError(t, err)
		require.False(t, seen[r])
		seen[r] = true
	}
}
