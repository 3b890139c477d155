package repository

import (
	"Courier/internal/model"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

func TestConversationUpsertKeepsSingleRow(t *testing.T) {
	db := newTestDB(t)
	repo := NewConversationRepo(db)
	ctx := context.Background()

	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")

	first, err := repo.Upsert(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	require.NotNil(t, first)

	// 反向再次写入不会建第二行，首次写入的顺序保留
	second, err := repo.Upsert(ctx, bob.ID, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, alice.ID, second.UserOneID)
	assert.Equal(t, bob.ID, second.UserTwoID)

	var count int64
	require.NoError(t, db.Model(&model.ChatHistory{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestConversationUpsertRefreshesTime(t *testing.T) {
	db := newTestDB(t)
	repo := NewConversationRepo(db)
	ctx := context.Background()

	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")

	first, err := repo.Upsert(ctx, alice.ID, bob.ID)
	require.NoError(t, err)

	time.Sleep(10 * time.Millisecond)

	second, err := repo.Upsert(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	assert.False(t, second.Time.Before(first.Time))
}

func TestConversationUpsertConcurrent(t *testing.T) {
	db := newTestDB(t)
	repo := NewConversationRepo(db)
	ctx := context.Background()

	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")

	var g errgroup.Group
	for i := 0; i < 16; i++ {
		i := i
		g.Go(func() error {
			if i%2 == 0 {
				_, err := repo.Upsert(ctx, alice.ID, bob.ID)
				return err
			}
			_, err := repo.Upsert(ctx, bob.ID, alice.ID)
			return err
		})
	}
	require.NoError(t, g.Wait())

	var count int64
	require.NoError(t, db.Model(&model.ChatHistory{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestConversationGetByPairOrderInsensitive(t *testing.T) {
	db := newTestDB(t)
	repo := NewConversationRepo(db)
	ctx := context.Background()

	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")

	missing, err := repo.GetByPair(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	assert.Nil(t, missing)

	created, err := repo.Upsert(ctx, alice.ID, bob.ID)
	require.NoError(t, err)

	forward, err := repo.GetByPair(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	reverse, err := repo.GetByPair(ctx, bob.ID, alice.ID)
	require.NoError(t, err)

	require.NotNil(t, forward)
	require.NotNil(t, reverse)
	assert.Equal(t, created.ID, forward.ID)
	assert.Equal(t, created.ID, reverse.ID)
}

func TestConversationListByUserMostRecentFirst(t *testing.T) {
	db := newTestDB(t)
	repo := NewConversationRepo(db)
	ctx := context.Background()

	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")
	carol := seedUser(t, db, "carol")

	_, err := repo.Upsert(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	time.Sleep(10 * time.Millisecond)
	_, err = repo.Upsert(ctx, carol.ID, alice.ID)
	require.NoError(t, err)

	conversations, err := repo.ListByUser(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, conversations, 2)
	assert.Equal(t, carol.ID, conversations[0].UserOneID)

	// bob 只参与一个会话
	conversations, err = repo.ListByUser(ctx, bob.ID)
	require.NoError(t, err)
	assert.Len(t, conversations, 1)
}
