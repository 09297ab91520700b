package postgres

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/MonksterFX/fermentation-station/internal/domain"
	"github.com/MonksterFX/fermentation-station/internal/store"
)

// openTestDB connects to the database named by DATABASE_URL and applies
// migrations, or skips the test when no database is configured.
func openTestDB(t *testing.T) *Source {
	t.Helper()

	url := os.Getenv("DATABASE_URL")
	if url == "" {
		t.Skip("Skipping integration test - DATABASE_URL not set")
	}

	db, err := Open(context.Background(), url)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, MigrateUp(db))

	source := NewSource(db, nil)
	return source
}

func TestSourceRoundTrip(t *testing.T) {
	source := openTestDB(t)
	ctx := context.Background()

	ferment, err := domain.NewFerment("Integration Kimchi", domain.TypeKimchi, time.Now().UTC())
	require.NoError(t, err)

	draft := domain.ReminderDraft{
		Title: "Taste It",
		Text:  "Taste It",
		Date:  time.Now().UTC().AddDate(0, 0, 2),
	}
	reminder, err := domain.NewReminder(draft)
	require.NoError(t, err)
	ferment.Reminders = append(ferment.Reminders, *reminder)

	require.NoError(t, source.SaveFerment(ctx, ferment))
	t.Cleanup(func() { _ = source.DeleteFerment(ctx, ferment.ID) })

	loaded, err := source.Load(ctx)
	require.NoError(t, err)

	var found *domain.Ferment
	for _, f := range loaded {
		if f.ID == ferment.ID {
			found = f
		}
	}
	require.NotNil(t, found)
	assert.Equal(t, ferment.Name, found.Name)
	assert.Equal(t, ferment.Type, found.Type)
	require.Len(t, found.Reminders, 1)
	assert.Equal(t, "Taste It", found.Reminders[0].Title)

	require.NoError(t, source.DeleteFerment(ctx, ferment.ID))

	loaded, err = source.Load(ctx)
	require.NoError(t, err)
	for _, f := range loaded {
		assert.NotEqual(t, ferment.ID, f.ID)
	}
}

func TestUserStoreRoundTrip(t *testing.T) {
	source := openTestDB(t)
	ctx := context.Background()

	users := NewUserStore(source.db, bcrypt.MinCost, nil)

	user, err := domain.NewUser("integration@example.com", "a-long-enough-password")
	require.NoError(t, err)

	err = users.Create(ctx, user)
	require.NoError(t, err)
	t.Cleanup(func() {
		_, _ = source.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, user.ID)
	})
	assert.Empty(t, user.Password)

	got, err := users.GetByEmail(ctx, "Integration@Example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)

	dup, err := domain.NewUser("integration@example.com", "another-long-password")
	require.NoError(t, err)
	err = users.Create(ctx, dup)
	assert.ErrorIs(t, err, store.ErrEmailExists)
}
