package service

import (
	"Courier/internal/api/dto"
	"Courier/internal/model"
	"Courier/internal/relay"
	"Courier/internal/repository"
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type testEnv struct {
	db           *gorm.DB
	hub          *relay.Hub
	userSvc      UserService
	messageSvc   MessageService
	favouriteSvc FavouriteService
	mailSvc      MailService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&model.User{},
		&model.Message{},
		&model.MessageChat{},
		&model.ChatHistory{},
		&model.FavouriteList{},
		&model.MailUser{},
		&model.Email{},
		&model.MailChat{},
	))

	userRepo := repository.NewUserRepo(db)
	conversationRepo := repository.NewConversationRepo(db)
	messageRepo := repository.NewMessageRepo(db)
	favouriteRepo := repository.NewFavouriteRepo(db)
	mailRepo := repository.NewMailRepo(db)
	hub := relay.NewHub()

	return &testEnv{
		db:           db,
		hub:          hub,
		userSvc:      NewUserService(userRepo),
		messageSvc:   NewMessageService(userRepo, messageRepo, conversationRepo, hub),
		favouriteSvc: NewFavouriteService(userRepo, favouriteRepo, conversationRepo),
		mailSvc:      NewMailService(userRepo, mailRepo),
	}
}

func (e *testEnv) register(t *testing.T, username string) *dto.UserDTO {
	t.Helper()
	user, err := e.userSvc.Register(context.Background(), &dto.RegisterDTO{
		Username:  username,
		Password:  "secret123",
		FirstName: "Test",
		LastName:  "User",
	})
	require.NoError(t, err)
	return user
}
