package types

import (
	"context"
	"testing"

	"github.com/grandshipper/grandshipper-api/internal/models"
	"github.com/stretchr/testify/require"
)

func TestMemoryRepositoryCRUD(t *testing.T) {
	ctx := context.Background()
	r := NewMemoryRepository()
	tp := &models.Type{Name: "essays"}
	require.NoError(t, r.Insert(ctx, tp))
	require.False(t, tp.ID.IsZero())

	got, err := r.FindByID(ctx, tp.ID)
	require.NoError(t, err)
	require.Equal(t, "essays", got.Name)

	// returned values are copies
	got.Name = "mutated"
	again, err := r.FindByID(ctx, tp.ID)
	require.NoError(t, err)
	require.Equal(t, "essays", again.Name)

	upd, err := r.Update(ctx, tp.ID, "reviews")
	require.NoError(t, err)
	require.Equal(t, "reviews", upd.Name)

	del, err := r.Delete(ctx, tp.ID)
	require.NoError(t, err)
	require.Equal(t, "reviews", del.Name)

	_, err = r.FindByID(ctx, tp.ID)
	require.ErrorIs(t, err, ErrNotFound)
	_, err = r.Delete(ctx, tp.ID)
	require.ErrorIs(t, err, ErrNotFound)
}
