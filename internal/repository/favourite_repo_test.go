package repository

import (
	"Courier/internal/model"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFavouriteDirectedLifecycle(t *testing.T) {
	db := newTestDB(t)
	repo := NewFavouriteRepo(db)
	convRepo := NewConversationRepo(db)
	ctx := context.Background()

	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")

	conv, err := convRepo.Upsert(ctx, alice.ID, bob.ID)
	require.NoError(t, err)

	require.NoError(t, repo.Create(ctx, &model.FavouriteList{
		SenderID:      alice.ID,
		ReceiverID:    bob.ID,
		ChatHistoryID: conv.ID,
	}))

	// 收藏是定向的，反向不存在
	forward, err := repo.GetDirected(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	require.NotNil(t, forward)

	reverse, err := repo.GetDirected(ctx, bob.ID, alice.ID)
	require.NoError(t, err)
	assert.Nil(t, reverse)

	affected, err := repo.Delete(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)

	affected, err = repo.Delete(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	assert.Zero(t, affected)
}

func TestFavouriteListBySenderOrderedByConversationTime(t *testing.T) {
	db := newTestDB(t)
	repo := NewFavouriteRepo(db)
	convRepo := NewConversationRepo(db)
	ctx := context.Background()

	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")
	carol := seedUser(t, db, "carol")

	convBob, err := convRepo.Upsert(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	time.Sleep(10 * time.Millisecond)
	convCarol, err := convRepo.Upsert(ctx, alice.ID, carol.ID)
	require.NoError(t, err)

	require.NoError(t, repo.Create(ctx, &model.FavouriteList{
		SenderID: alice.ID, ReceiverID: bob.ID, ChatHistoryID: convBob.ID,
	}))
	require.NoError(t, repo.Create(ctx, &model.FavouriteList{
		SenderID: alice.ID, ReceiverID: carol.ID, ChatHistoryID: convCarol.ID,
	}))

	rows, err := repo.ListBySender(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, bob.ID, rows[0].ReceiverID)
	assert.Equal(t, carol.ID, rows[1].ReceiverID)
}
