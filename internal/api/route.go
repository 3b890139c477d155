package api

import (
	"Courier/internal/api/middleware"
	"Courier/internal/pkg/logger"
	"net/http"

	"github.com/gin-gonic/gin"
)

func SetupRouter(group *HandlersGroup) *gin.Engine {
	r := gin.New()
	_ = r.SetTrustedProxies([]string{"localhost"})

	// TraceId & Logger & CORS
	r.Use(middleware.TraceMiddleware())
	r.Use(middleware.AuditMiddleware())
	r.Use(middleware.CORSMiddleware())
	logger.SetupGin(r)

	apiGroup := r.Group("/api")
	{
		apiGroup.GET("/ping", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"Code":    200,
				"Message": "pong",
				"Data":    nil,
			})
		})

		// 实时通道在握手的 query 里自行鉴权
		apiGroup.GET("/ws", group.WsHandler.Connect)

		authGroup := apiGroup.Group("/auth")
		{
			authGroup.POST("/register", group.AuthHandler.Register)
			authGroup.POST("/login", group.AuthHandler.Login)

			loggedGroup := authGroup.Group("")
			loggedGroup.Use(middleware.AuthMiddleware())
			{
				loggedGroup.POST("/logout", group.AuthHandler.Logout)
			}
		}

		userGroup := apiGroup.Group("/users")
		userGroup.Use(middleware.AuthMiddleware())
		{
			userGroup.GET("/self", group.UserHandler.GetSelf)
			userGroup.GET("/id/:user_id", group.UserHandler.GetById)
			userGroup.GET("/:username", group.UserHandler.GetByUsername)
			userGroup.PUT("/self", group.UserHandler.Update)
			userGroup.DELETE("/self", group.UserHandler.DeleteSelf)

			adminGroup := userGroup.Group("")
			adminGroup.Use(middleware.CheckAdmin())
			{
				adminGroup.GET("", group.UserHandler.FindAll)
				adminGroup.DELETE("/:username", group.UserHandler.Delete)
			}
		}

		messageGroup := apiGroup.Group("/messages")
		messageGroup.Use(middleware.AuthMiddleware())
		{
			messageGroup.POST("/to/:receiver", group.MessageHandler.Send)
			messageGroup.GET("/exchange/:user_one/:user_two", group.MessageHandler.Exchange)
			messageGroup.GET("/:message_id", group.MessageHandler.Get)
			messageGroup.PUT("/:message_id/seen", group.MessageHandler.MarkSeen)
			messageGroup.POST("/read/:sender", group.MessageHandler.MarkRead)

			adminGroup := messageGroup.Group("")
			adminGroup.Use(middleware.CheckAdmin())
			{
				adminGroup.GET("", group.MessageHandler.FindAll)
				adminGroup.DELETE("/:message_id", group.MessageHandler.Delete)
			}
		}

		chatHistoryGroup := apiGroup.Group("/chat-history")
		chatHistoryGroup.Use(middleware.AuthMiddleware())
		{
			chatHistoryGroup.GET("", group.MessageHandler.Conversations)
		}

		favouriteGroup := apiGroup.Group("/favourite")
		favouriteGroup.Use(middleware.AuthMiddleware())
		{
			favouriteGroup.GET("", group.FavouriteHandler.List)
			favouriteGroup.POST("", group.FavouriteHandler.Add)
			favouriteGroup.DELETE("", group.FavouriteHandler.Delete)
		}

		mailGroup := apiGroup.Group("/emails")
		mailGroup.Use(middleware.AuthMiddleware())
		{
			mailGroup.POST("", group.MailHandler.Send)
			mailGroup.GET("/:mail_id", group.MailHandler.Get)

			adminGroup := mailGroup.Group("")
			adminGroup.Use(middleware.CheckAdmin())
			{
				adminGroup.GET("", group.MailHandler.FindAll)
				adminGroup.DELETE("/:mail_id", group.MailHandler.Delete)
			}
		}

		mailUserGroup := apiGroup.Group("/mail-users")
		mailUserGroup.Use(middleware.AuthMiddleware())
		{
			mailUserGroup.GET("", group.MailHandler.ListMailUsers)
			mailUserGroup.GET("/:mail_user_id", group.MailHandler.GetMailUser)
			mailUserGroup.POST("", group.MailHandler.AddMailUser)

			adminGroup := mailUserGroup.Group("")
			adminGroup.Use(middleware.CheckAdmin())
			{
				adminGroup.DELETE("/:mail_user_id", group.MailHandler.DeleteMailUser)
			}
		}
	}

	return r
}
