package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFavouriteRequiresConversation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	alice := env.register(t, "alice")
	bob := env.register(t, "bob")

	// 没聊过天不能收藏
	_, err := env.favouriteSvc.Add(ctx, alice.ID, bob.ID)
	assert.ErrorIs(t, err, ErrNotChattedYet)

	_, err = env.messageSvc.Send(ctx, "hello", "alice", "bob")
	require.NoError(t, err)

	fav, err := env.favouriteSvc.Add(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, alice.ID, fav.Sender)
	assert.Equal(t, bob.ID, fav.Receiver)

	_, err = env.favouriteSvc.Add(ctx, alice.ID, bob.ID)
	assert.ErrorIs(t, err, ErrFavouriteExist)

	// 收藏是定向的，bob 收藏 alice 是另一条关系
	_, err = env.favouriteSvc.Add(ctx, bob.ID, alice.ID)
	require.NoError(t, err)
}

func TestFavouriteDelete(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	alice := env.register(t, "alice")
	bob := env.register(t, "bob")

	_, err := env.messageSvc.Send(ctx, "hello", "alice", "bob")
	require.NoError(t, err)
	_, err = env.favouriteSvc.Add(ctx, alice.ID, bob.ID)
	require.NoError(t, err)

	require.NoError(t, env.favouriteSvc.Delete(ctx, alice.ID, bob.ID))
	assert.ErrorIs(t, env.favouriteSvc.Delete(ctx, alice.ID, bob.ID), ErrFavouriteNotFound)
}

func TestFavouriteListFor(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	alice := env.register(t, "alice")
	bob := env.register(t, "bob")
	carol := env.register(t, "carol")

	_, err := env.messageSvc.Send(ctx, "hi bob", "alice", "bob")
	require.NoError(t, err)
	_, err = env.messageSvc.Send(ctx, "hi carol", "alice", "carol")
	require.NoError(t, err)

	_, err = env.favouriteSvc.Add(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	_, err = env.favouriteSvc.Add(ctx, alice.ID, carol.ID)
	require.NoError(t, err)

	favourites, err := env.favouriteSvc.ListFor(ctx, alice.ID)
	require.NoError(t, err)
	assert.Len(t, favourites, 2)

	favourites, err = env.favouriteSvc.ListFor(ctx, bob.ID)
	require.NoError(t, err)
	assert.Empty(t, favourites)

	_, err = env.favouriteSvc.ListFor(ctx, 999)
	assert.ErrorIs(t, err, ErrUserNotFound)
}
