package repository

import (
	"Courier/internal/model"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserLookup(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepo(db)
	ctx := context.Background()

	seedUser(t, db, "alice")

	user, err := repo.GetUserByUsername(ctx, "alice")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, "alice", user.Username)

	missing, err := repo.GetUserByUsername(ctx, "nobody")
	require.NoError(t, err)
	assert.Nil(t, missing)

	byID, err := repo.GetUserById(ctx, user.ID)
	require.NoError(t, err)
	require.NotNil(t, byID)

	missing, err = repo.GetUserById(ctx, 999)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestUserDeleteCascades(t *testing.T) {
	db := newTestDB(t)
	userRepo := NewUserRepo(db)
	messageRepo := NewMessageRepo(db)
	convRepo := NewConversationRepo(db)
	favouriteRepo := NewFavouriteRepo(db)
	mailRepo := NewMailRepo(db)
	ctx := context.Background()

	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")

	sendMessage(t, messageRepo, "hi bob", alice.ID, bob.ID)
	sendMessage(t, messageRepo, "hi alice", bob.ID, alice.ID)

	conv, err := convRepo.GetByPair(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	require.NotNil(t, conv)
	require.NoError(t, favouriteRepo.Create(ctx, &model.FavouriteList{
		SenderID: alice.ID, ReceiverID: bob.ID, ChatHistoryID: conv.ID,
	}))

	mailUser, err := mailRepo.EnsureMailUser(ctx, "friend@gmail.com")
	require.NoError(t, err)
	email := &model.Email{Text: "outbound"}
	require.NoError(t, mailRepo.CreateWithDelivery(ctx, email, alice.ID, mailUser.ID, true))

	require.NoError(t, userRepo.DeleteUser(ctx, alice.ID))

	gone, err := userRepo.GetUserById(ctx, alice.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)

	// 消息、投递、会话、收藏、邮件全部跟随删除
	var count int64
	require.NoError(t, db.Model(&model.MessageChat{}).Count(&count).Error)
	assert.Zero(t, count)
	require.NoError(t, db.Model(&model.Message{}).Count(&count).Error)
	assert.Zero(t, count)
	require.NoError(t, db.Model(&model.ChatHistory{}).Count(&count).Error)
	assert.Zero(t, count)
	require.NoError(t, db.Model(&model.FavouriteList{}).Count(&count).Error)
	assert.Zero(t, count)
	require.NoError(t, db.Model(&model.MailChat{}).Count(&count).Error)
	assert.Zero(t, count)
	require.NoError(t, db.Model(&model.Email{}).Count(&count).Error)
	assert.Zero(t, count)

	// 外部联系人档案保留，对端用户不受影响
	require.NoError(t, db.Model(&model.MailUser{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
	stillThere, err := userRepo.GetUserById(ctx, bob.ID)
	require.NoError(t, err)
	assert.NotNil(t, stillThere)
}
