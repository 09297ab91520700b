package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/MonksterFX/fermentation-station/internal/domain"
	"github.com/MonksterFX/fermentation-station/internal/store"
)

func TestUserStoreCreateHashesPassword(t *testing.T) {
	t.Parallel()

	s := NewUserStore(bcrypt.MinCost)
	ctx := context.Background()

	user, err := domain.NewUser("brewer@example.com", "a-long-enough-password")
	require.NoError(t, err)

	require.NoError(t, s.Create(ctx, user))
	assert.Empty(t, user.Password)
	assert.NotEmpty(t, user.HashedPassword)
	assert.NoError(t, bcrypt.CompareHashAndPassword(
		[]byte(user.HashedPassword), []byte("a-long-enough-password")))
}

func TestUserStoreDuplicateEmail(t *testing.T) {
	t.Parallel()

	s := NewUserStore(bcrypt.MinCost)
	ctx := context.Background()

	first, err := domain.NewUser("brewer@example.com", "a-long-enough-password")
	require.NoError(t, err)
	require.NoError(t, s.Create(ctx, first))

	// Email comparison ignores case.
	second, err := domain.NewUser("Brewer@Example.com", "another-long-password")
	require.NoError(t, err)
	err = s.Create(ctx, second)
	assert.ErrorIs(t, err, store.ErrEmailExists)
	assert.True(t, store.IsDuplicateError(err))
}

func TestUserStoreLookups(t *testing.T) {
	t.Parallel()

	s := NewUserStore(bcrypt.MinCost)
	ctx := context.Background()

	user, err := domain.NewUser("brewer@example.com", "a-long-enough-password")
	require.NoError(t, err)
	require.NoError(t, s.Create(ctx, user))

	byID, err := s.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.Email, byID.Email)

	byEmail, err := s.GetByEmail(ctx, "BREWER@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byEmail.ID)

	_, err = s.GetByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, store.ErrUserNotFound)
	assert.True(t, store.IsNotFoundError(err))
}

func TestUserStoreCreateRejectsInvalidUser(t *testing.T) {
	t.Parallel()

	s := NewUserStore(bcrypt.MinCost)

	err := s.Create(context.Background(), &domain.User{Email: "brewer@example.com"})
	assert.Error(t, err)
}
