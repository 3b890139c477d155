package handler

import (
	"Courier/internal/api/dto"
	"Courier/internal/pkg/response"
	"Courier/internal/service"
	"strconv"

	"github.com/gin-gonic/gin"
)

type MessageHandler struct {
	messageSvc service.MessageService
}

func NewMessageHandler(messageSvc service.MessageService) *MessageHandler {
	return &MessageHandler{messageSvc: messageSvc}
}

// Send 发送方取自登录态，接收方取自路径参数
func (s *MessageHandler) Send(c *gin.Context) {
	var req dto.SendMessageReq
	if err := c.ShouldBind(&req); err != nil {
		response.Error(c, err)
		return
	}
	msg, err := s.messageSvc.Send(c.Request.Context(), req.Text, c.GetString("username"), c.Param("receiver"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, msg)
}

func (s *MessageHandler) Get(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("message_id"), 10, 64)
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	msg, err := s.messageSvc.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, msg)
}

func (s *MessageHandler) FindAll(c *gin.Context) {
	messages, err := s.messageSvc.FindAll(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, messages)
}

// Exchange 两人的完整往来，用户名顺序无关
func (s *MessageHandler) Exchange(c *gin.Context) {
	rows, err := s.messageSvc.Exchange(c.Request.Context(), c.Param("user_one"), c.Param("user_two"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, rows)
}

func (s *MessageHandler) MarkSeen(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("message_id"), 10, 64)
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	chat, err := s.messageSvc.MarkSeen(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, chat)
}

// MarkRead 把 :sender 发给当前用户的未读消息全部置为已读
func (s *MessageHandler) MarkRead(c *gin.Context) {
	ids, err := s.messageSvc.MarkConversationRead(c.Request.Context(), c.Param("sender"), c.GetString("username"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"newSeenMessages": ids})
}

// Conversations 当前用户的会话列表，最近活跃在前
func (s *MessageHandler) Conversations(c *gin.Context) {
	conversations, err := s.messageSvc.Conversations(c.Request.Context(), c.GetString("username"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, conversations)
}

func (s *MessageHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("message_id"), 10, 64)
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	if err = s.messageSvc.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}
