package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prosetii/club-roster/internal/model"
	"github.com/prosetii/club-roster/internal/repository"
)

func TestMemoryStoreDuplicateUsername(t *testing.T) {
	s := repository.NewMemoryUserStore()
	ctx := context.Background()

	_, err := s.Create(ctx, &model.User{Username: "alice", PasswordHash: "h", Role: model.RoleStudent, IsActive: true})
	require.NoError(t, err)

	_, err = s.Create(ctx, &model.User{Username: "alice", PasswordHash: "h2", Role: model.RoleStudent, IsActive: true})
	assert.ErrorIs(t, err, repository.ErrUsernameExists)
}

// Usernames compare case-sensitively, matching the binary collation on the
// MySQL column: a differing-case sibling is a distinct account, not a
// duplicate.
func TestMemoryStoreUsernameCaseSensitive(t *testing.T) {
	s := repository.NewMemoryUserStore()
	ctx := context.Background()

	_, err := s.Create(ctx, &model.User{Username: "alice", PasswordHash: "h", Role: model.RoleStudent, IsActive: true})
	require.NoError(t, err)
	id, err := s.Create(ctx, &model.User{Username: "Alice", PasswordHash: "h2", Role: model.RoleStudent, IsActive: true})
	require.NoError(t, err)

	u, err := s.GetByUsername(ctx, "Alice")
	require.NoError(t, err)
	assert.Equal(t, id, u.ID)

	_, err = s.GetByUsername(ctx, "ALICE")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestMemoryStoreListNewestFirst(t *testing.T) {
	s := repository.NewMemoryUserStore()
	ctx := context.Background()

	older := time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC)
	newer := time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC)
	_, err := s.Create(ctx, &model.User{Username: "alice", CreatedAt: older})
	require.NoError(t, err)
	_, err = s.Create(ctx, &model.User{Username: "bob", CreatedAt: newer})
	require.NoError(t, err)

	users, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "bob", users[0].Username)
	assert.Equal(t, "alice", users[1].Username)
}

func TestMemoryStoreUpdateAndDelete(t *testing.T) {
	s := repository.NewMemoryUserStore()
	ctx := context.Background()

	id, err := s.Create(ctx, &model.User{Username: "alice", Role: model.RoleStudent, IsActive: true})
	require.NoError(t, err)

	require.NoError(t, s.UpdateEmail(ctx, id, "alice@example.com"))
	role := model.RoleAdmin
	require.NoError(t, s.UpdateAdmin(ctx, id, repository.AdminUpdate{Role: &role}))
	require.NoError(t, s.UpdateLastLogin(ctx, id))

	u, err := s.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", u.Email)
	assert.Equal(t, model.RoleAdmin, u.Role)
	assert.NotNil(t, u.LastLogin)

	require.NoError(t, s.Delete(ctx, id))
	_, err = s.GetByID(ctx, id)
	assert.ErrorIs(t, err, repository.ErrNotFound)
	assert.ErrorIs(t, s.Delete(ctx, id), repository.ErrNotFound)
}
