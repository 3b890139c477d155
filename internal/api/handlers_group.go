package api

import "Courier/internal/api/handler"

// HandlersGroup 封装了所有已初始化的 Handler 实例
type HandlersGroup struct {
	AuthHandler      *handler.AuthHandler
	UserHandler      *handler.UserHandler
	MessageHandler   *handler.MessageHandler
	FavouriteHandler *handler.FavouriteHandler
	MailHandler      *handler.MailHandler
	WsHandler        *handler.WsHandler
}
