package wire

import (
	"Courier/internal/api"
	"Courier/internal/api/handler"
	"Courier/internal/job"
	"Courier/internal/pkg/cron"
	"Courier/internal/relay"
	"Courier/internal/repository"
	"Courier/internal/service"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ApplicationContainer 封装了应用运行所需的所有顶级组件
type ApplicationContainer struct {
	Router  *gin.Engine
	DB      *gorm.DB
	Hub     *relay.Hub
	CronMgr *cron.Manager
}

func BuildApplication(db *gorm.DB) (*ApplicationContainer, error) {
	userRepo := repository.NewUserRepo(db)
	conversationRepo := repository.NewConversationRepo(db)
	messageRepo := repository.NewMessageRepo(db)
	favouriteRepo := repository.NewFavouriteRepo(db)
	mailRepo := repository.NewMailRepo(db)

	hub := relay.NewHub()

	userService := service.NewUserService(userRepo)
	messageService := service.NewMessageService(userRepo, messageRepo, conversationRepo, hub)
	favouriteService := service.NewFavouriteService(userRepo, favouriteRepo, conversationRepo)
	mailService := service.NewMailService(userRepo, mailRepo)

	handlers := &api.HandlersGroup{
		AuthHandler:      handler.NewAuthHandler(userService),
		UserHandler:      handler.NewUserHandler(userService),
		MessageHandler:   handler.NewMessageHandler(messageService),
		FavouriteHandler: handler.NewFavouriteHandler(favouriteService),
		MailHandler:      handler.NewMailHandler(mailService),
		WsHandler:        handler.NewWsHandler(hub, messageService),
	}

	router := api.SetupRouter(handlers)

	cronMgr := cron.NewCronManager(job.NewOrphanSweepJob(db))

	return &ApplicationContainer{
		Router:  router,
		DB:      db,
		Hub:     hub,
		CronMgr: cronMgr,
	}, nil
}
