package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gameportal-backend/internal/features/session/repository"
)

func TestStore_CreateAndLookup(t *testing.T) {
	store := NewStore(time.Hour)
	defer store.Close()
	ctx := context.Background()

	created, err := store.Create(ctx, "EQwallet1")
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)

	found, err := store.Lookup(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "EQwallet1", found.Address)
	assert.Equal(t, created.ExpiresAt, found.ExpiresAt)
}

func TestStore_LookupReturnsCopy(t *testing.T) {
	store := NewStore(time.Hour)
	defer store.Close()
	ctx := context.Background()

	created, err := store.Create(ctx, "EQwallet1")
	require.NoError(t, err)

	first, err := store.Lookup(ctx, created.ID)
	require.NoError(t, err)
	first.Address = "mutated"

	second, err := store.Lookup(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "EQwallet1", second.Address)
}

func TestStore_UnknownToken(t *testing.T) {
	store := NewStore(time.Hour)
	defer store.Close()

	_, err := store.Lookup(context.Background(), "missing")
	assert.ErrorIs(t, err, repository.ErrSessionNotFound)
}

func TestStore_ExpiredSessionDeletedOnLookup(t *testing.T) {
	store := NewStore(-time.Second) // already expired at creation
	defer store.Close()
	ctx := context.Background()

	created, err := store.Create(ctx, "EQwallet1")
	require.NoError(t, err)

	_, err = store.Lookup(ctx, created.ID)
	assert.ErrorIs(t, err, repository.ErrSessionNotFound)

	// The expired entry is gone, not just hidden.
	store.mu.RLock()
	_, ok := store.sessions[created.ID]
	store.mu.RUnlock()
	assert.False(t, ok)
}

func TestStore_Invalidate(t *testing.T) {
	store := NewStore(time.Hour)
	defer store.Close()
	ctx := context.Background()

	created, err := store.Create(ctx, "EQwallet1")
	require.NoError(t, err)

	require.NoError(t, store.Invalidate(ctx, created.ID))

	_, err = store.Lookup(ctx, created.ID)
	assert.ErrorIs(t, err, repository.ErrSessionNotFound)
}

func TestStore_CloseIsIdempotent(t *testing.T) {
	store := NewStore(time.Hour)
	store.Close()
	store.Close()
}
