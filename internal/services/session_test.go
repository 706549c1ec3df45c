package services

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daybookhq/daybook-backend/internal/models"
)

func setupStore(t *testing.T) (*SessionStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewSessionStore(client), mr
}

func TestSession_RoundTrip(t *testing.T) {
	store, _ := setupStore(t)
	ctx := context.Background()

	identity := models.Identity{
		GitHubID:  123,
		Login:     "ada",
		Name:      "Ada Lovelace",
		AvatarURL: "https://avatars.example.com/ada.png",
	}

	token, err := store.Create(ctx, identity)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	got, ok, err := store.Validate(ctx, token)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, identity, got)
}

func TestSession_TokensAreUnique(t *testing.T) {
	store, _ := setupStore(t)
	ctx := context.Background()

	first, err := store.Create(ctx, models.Identity{Login: "ada"})
	require.NoError(t, err)
	second, err := store.Create(ctx, models.Identity{Login: "ada"})
	require.NoError(t, err)

	assert.NotEqual(t, first, second)

	// Both stay valid: a second login does not kick out the first.
	_, ok, err := store.Validate(ctx, first)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestSession_EmptyAndUnknownTokens(t *testing.T) {
	store, _ := setupStore(t)
	ctx := context.Background()

	_, ok, err := store.Validate(ctx, "")
	require.NoError(t, err)
	assert.False(t, ok)

	_, ok, err = store.Validate(ctx, "never-issued")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSession_Invalidate(t *testing.T) {
	store, _ := setupStore(t)
	ctx := context.Background()

	token, err := store.Create(ctx, models.Identity{Login: "ada"})
	require.NoError(t, err)

	require.NoError(t, store.Invalidate(ctx, token))

	_, ok, err := store.Validate(ctx, token)
	require.NoError(t, err)
	assert.False(t, ok)

	// Invalidating again (or with no token) is not an error.
	assert.NoError(t, store.Invalidate(ctx, token))
	assert.NoError(t, store.Invalidate(ctx, ""))
}

func TestSession_Expires(t *testing.T) {
	store, mr := setupStore(t)
	ctx := context.Background()

	token, err := store.Create(ctx, models.Identity{Login: "ada"})
	require.NoError(t, err)

	mr.FastForward(SessionDuration + time.Second)

	_, ok, err := store.Validate(ctx, token)
	require.NoError(t, err)
	assert.False(t, ok)
}
