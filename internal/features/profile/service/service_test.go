package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gameportal-backend/internal/features/profile/models"
	"gameportal-backend/internal/features/profile/repository"
)

type fakeUserRepo struct {
	byAddress map[string]*models.User
	creates   int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byAddress: make(map[string]*models.User)}
}

func (r *fakeUserRepo) Create(_ context.Context, user *models.User) error {
	r.creates++
	if _, ok := r.byAddress[user.WalletAddress]; ok {
		return nil // concurrent insert: the existing row wins
	}
	r.byAddress[user.WalletAddress] = user
	return nil
}

func (r *fakeUserRepo) GetByAddress(_ context.Context, address string) (*models.User, error) {
	u, ok := r.byAddress[address]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	return u, nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*models.User, error) {
	for _, u := range r.byAddress {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (r *fakeUserRepo) UpdateName(_ context.Context, address, name string) (*models.User, error) {
	u, ok := r.byAddress[address]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	u.Name = &name
	return u, nil
}

func (r *fakeUserRepo) ExistsByAddress(_ context.Context, address string) (bool, error) {
	_, ok := r.byAddress[address]
	return ok, nil
}

func TestGetOrCreateByAddress_CreatesOnFirstSight(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewProfileService(repo)

	user, err := svc.GetOrCreateByAddress(context.Background(), "EQwallet1")
	require.NoError(t, err)

	assert.Equal(t, "EQwallet1", user.WalletAddress)
	assert.NotEmpty(t, user.ID)
	assert.Nil(t, user.Name)
	assert.Equal(t, 1, repo.creates)
}

func TestGetOrCreateByAddress_Idempotent(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewProfileService(repo)
	ctx := context.Background()

	first, err := svc.GetOrCreateByAddress(ctx, "EQwallet1")
	require.NoError(t, err)

	second, err := svc.GetOrCreateByAddress(ctx, "EQwallet1")
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 1, repo.creates)
}

func TestGetOrCreateByAddress_TrimsAddress(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewProfileService(repo)

	user, err := svc.GetOrCreateByAddress(context.Background(), "  EQwallet1  ")
	require.NoError(t, err)
	assert.Equal(t, "EQwallet1", user.WalletAddress)
}

func TestUpdateName(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewProfileService(repo)
	ctx := context.Background()

	_, err := svc.GetOrCreateByAddress(ctx, "EQwallet1")
	require.NoError(t, err)

	user, err := svc.UpdateName(ctx, "EQwallet1", "  Alice  ")
	require.NoError(t, err)
	require.NotNil(t, user.Name)
	assert.Equal(t, "Alice", *user.Name)
}

func TestUpdateName_UnknownUser(t *testing.T) {
	svc := NewProfileService(newFakeUserRepo())

	_, err := svc.UpdateName(context.Background(), "EQstranger", "Alice")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestExists(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewProfileService(repo)
	ctx := context.Background()

	ok, err := svc.Exists(ctx, "EQwallet1")
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = svc.GetOrCreateByAddress(ctx, "EQwallet1")
	require.NoError(t, err)

	ok, err = svc.Exists(ctx, "EQwallet1")
	require.NoError(t, err)
	assert.True(t, ok)
}
