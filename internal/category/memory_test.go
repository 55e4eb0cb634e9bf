package category

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNameTakenExcludesSelf(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	userID := "user-1"
	own := &Category{Name: "Gym", UserID: &userID}
	require.NoError(t, repo.Create(ctx, own))

	taken, err := repo.NameTaken(ctx, userID, "GYM", own.ID)
	require.NoError(t, err)
	assert.False(t, taken, "renaming to a case variant of itself must be allowed")

	taken, err = repo.NameTaken(ctx, userID, "GYM", "")
	require.NoError(t, err)
	assert.True(t, taken)

	taken, err = repo.NameTaken(ctx, userID, "food", "")
	require.NoError(t, err)
	assert.True(t, taken, "default names are reserved")

	taken, err = repo.NameTaken(ctx, "user-2", "Gym", "")
	require.NoError(t, err)
	assert.False(t, taken, "another user's names do not collide")
}

func TestMemoryUpdateScopedToOwner(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	owner := "user-1"
	cat := &Category{Name: "Gym", UserID: &owner}
	require.NoError(t, repo.Create(ctx, cat))

	intruder := "user-2"
	err := repo.Update(ctx, &Category{ID: cat.ID, Name: "Hijacked", UserID: &intruder})
	assert.Error(t, err)

	got, err := repo.GetVisibleByID(ctx, owner, cat.ID)
	require.NoError(t, err)
	assert.Equal(t, "Gym", got.Name)
}
