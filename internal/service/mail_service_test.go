package service

import (
	"Courier/internal/api/dto"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func boolPtr(b bool) *bool { return &b }

func TestMailSendAutoCreatesContact(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	env.register(t, "alice")

	mail, err := env.mailSvc.Send(ctx, "alice", &dto.SendMailReq{
		SubjectLine:   "hello",
		Text:          "greetings from courier",
		MailUser:      "friend@gmail.com",
		SentByAppUser: boolPtr(true),
	})
	require.NoError(t, err)
	assert.Equal(t, "alice", mail.Sender)
	assert.Equal(t, "friend@gmail.com", mail.Receiver)

	// 联系人已自动建档，再次引用不会新建
	mailUsers, err := env.mailSvc.ListMailUsers(ctx)
	require.NoError(t, err)
	require.Len(t, mailUsers, 1)

	inbound, err := env.mailSvc.Send(ctx, "alice", &dto.SendMailReq{
		SubjectLine:   "re: hello",
		Text:          "reply",
		MailUser:      "friend@gmail.com",
		SentByAppUser: boolPtr(false),
	})
	require.NoError(t, err)
	assert.Equal(t, "friend@gmail.com", inbound.Sender)
	assert.Equal(t, "alice", inbound.Receiver)

	mailUsers, err = env.mailSvc.ListMailUsers(ctx)
	require.NoError(t, err)
	assert.Len(t, mailUsers, 1)
}

func TestMailGetAndDelete(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	env.register(t, "alice")

	sent, err := env.mailSvc.Send(ctx, "alice", &dto.SendMailReq{
		Text:          "short note",
		MailUser:      "friend@gmail.com",
		SentByAppUser: boolPtr(true),
	})
	require.NoError(t, err)

	got, err := env.mailSvc.Get(ctx, sent.ID)
	require.NoError(t, err)
	assert.Equal(t, "short note", got.Text)

	require.NoError(t, env.mailSvc.Delete(ctx, sent.ID))
	assert.ErrorIs(t, env.mailSvc.Delete(ctx, sent.ID), ErrMailNotFound)

	_, err = env.mailSvc.Get(ctx, sent.ID)
	assert.ErrorIs(t, err, ErrMailNotFound)
}

func TestMailUserRegistry(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	mailUser, err := env.mailSvc.AddMailUser(ctx, "contact@gmail.com")
	require.NoError(t, err)
	require.NotZero(t, mailUser.ID)

	_, err = env.mailSvc.AddMailUser(ctx, "contact@gmail.com")
	assert.ErrorIs(t, err, ErrMailUserExist)

	got, err := env.mailSvc.GetMailUser(ctx, mailUser.ID)
	require.NoError(t, err)
	assert.Equal(t, "contact@gmail.com", got.GmailAddress)

	require.NoError(t, env.mailSvc.DeleteMailUser(ctx, mailUser.ID))
	assert.ErrorIs(t, env.mailSvc.DeleteMailUser(ctx, mailUser.ID), ErrMailUserNotFound)
}
