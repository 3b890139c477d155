package repository

import (
	"Courier/internal/model"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sendMessage(t *testing.T, repo MessageRepo, text string, senderID, receiverID uint64) *model.Message {
	t.Helper()
	msg := &model.Message{Text: text}
	require.NoError(t, repo.CreateWithDelivery(context.Background(), msg, senderID, receiverID))
	return msg
}

func TestMessageCreateWithDelivery(t *testing.T) {
	db := newTestDB(t)
	repo := NewMessageRepo(db)
	ctx := context.Background()

	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")

	msg := sendMessage(t, repo, "hello bob", alice.ID, bob.ID)
	require.NotZero(t, msg.ID)

	stored, chat, err := repo.GetWithDelivery(ctx, msg.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	require.NotNil(t, chat)
	assert.Equal(t, "hello bob", stored.Text)
	assert.Equal(t, alice.ID, chat.SenderID)
	assert.Equal(t, bob.ID, chat.ReceiverID)
	assert.False(t, chat.Seen)

	// 发送同时建立了会话
	var conv model.ChatHistory
	require.NoError(t, db.Where("peer_key = ?", model.PeerKeyOf(alice.ID, bob.ID)).First(&conv).Error)
	assert.Equal(t, alice.ID, conv.UserOneID)
}

func TestMessageGetWithDeliveryMissing(t *testing.T) {
	db := newTestDB(t)
	repo := NewMessageRepo(db)

	msg, chat, err := repo.GetWithDelivery(context.Background(), 999)
	require.NoError(t, err)
	assert.Nil(t, msg)
	assert.Nil(t, chat)
}

func TestMessageExchangeOrderInsensitive(t *testing.T) {
	db := newTestDB(t)
	repo := NewMessageRepo(db)
	ctx := context.Background()

	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")
	carol := seedUser(t, db, "carol")

	first := sendMessage(t, repo, "hi", alice.ID, bob.ID)
	time.Sleep(5 * time.Millisecond)
	second := sendMessage(t, repo, "hey", bob.ID, alice.ID)
	sendMessage(t, repo, "unrelated", alice.ID, carol.ID)

	forward, err := repo.GetExchange(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	reverse, err := repo.GetExchange(ctx, bob.ID, alice.ID)
	require.NoError(t, err)

	require.Len(t, forward, 2)
	require.Len(t, reverse, 2)
	assert.Equal(t, first.ID, forward[0].MessageID)
	assert.Equal(t, second.ID, forward[1].MessageID)
	assert.Equal(t, forward[0].MessageID, reverse[0].MessageID)
}

func TestMessageMarkSeenIdempotent(t *testing.T) {
	db := newTestDB(t)
	repo := NewMessageRepo(db)
	ctx := context.Background()

	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")

	msg := sendMessage(t, repo, "hello", alice.ID, bob.ID)

	chat, err := repo.MarkSeen(ctx, msg.ID)
	require.NoError(t, err)
	require.NotNil(t, chat)
	assert.True(t, chat.Seen)

	// 重复标记仍是成功
	chat, err = repo.MarkSeen(ctx, msg.ID)
	require.NoError(t, err)
	require.NotNil(t, chat)
	assert.True(t, chat.Seen)

	missing, err := repo.MarkSeen(ctx, 999)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestMessageMarkExchangeSeen(t *testing.T) {
	db := newTestDB(t)
	repo := NewMessageRepo(db)
	ctx := context.Background()

	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")

	m1 := sendMessage(t, repo, "one", alice.ID, bob.ID)
	m2 := sendMessage(t, repo, "two", alice.ID, bob.ID)
	reply := sendMessage(t, repo, "reply", bob.ID, alice.ID)

	ids, err := repo.MarkExchangeSeen(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, []uint64{m1.ID, m2.ID}, ids)

	// 反方向的投递不受影响
	_, chat, err := repo.GetWithDelivery(ctx, reply.ID)
	require.NoError(t, err)
	assert.False(t, chat.Seen)

	// 再次调用没有新翻转的记录
	ids, err = repo.MarkExchangeSeen(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestMessageDelete(t *testing.T) {
	db := newTestDB(t)
	repo := NewMessageRepo(db)
	ctx := context.Background()

	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")

	msg := sendMessage(t, repo, "to be removed", alice.ID, bob.ID)

	affected, err := repo.Delete(ctx, msg.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)

	stored, chat, err := repo.GetWithDelivery(ctx, msg.ID)
	require.NoError(t, err)
	assert.Nil(t, stored)
	assert.Nil(t, chat)

	affected, err = repo.Delete(ctx, msg.ID)
	require.NoError(t, err)
	assert.Zero(t, affected)
}
