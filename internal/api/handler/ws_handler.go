package handler

import (
	"Courier/internal/pkg/response"
	"Courier/internal/pkg/security"
	"Courier/internal/relay"
	"Courier/internal/service"
	log "log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

type WsHandler struct {
	hub        *relay.Hub
	messageSvc service.MessageService
}

func NewWsHandler(hub *relay.Hub, messageSvc service.MessageService) *WsHandler {
	return &WsHandler{hub: hub, messageSvc: messageSvc}
}

// Connect 建立实时通道。鉴权走 query 里的 token，浏览器的 WS API 不支持自定义 Header。
func (s *WsHandler) Connect(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		response.Error(c, service.UnauthorizedError)
		return
	}
	claims, err := security.ValidateToken(token)
	if err != nil {
		log.Warn("WS 鉴权失败", "err", err)
		response.Error(c, service.UnauthorizedError)
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Error("WS 协议升级失败", "err", err)
		return
	}

	session := s.hub.Register(conn, claims.Username)
	log.Info("用户 WS 连接已建立", "username", claims.Username)

	defer func() {
		s.hub.Remove(session)
		_ = conn.Close()
		log.Info("用户 WS 连接已断开", "username", claims.Username)
	}()

	s.readLoop(c, session, conn)
}

// readLoop 逐条处理客户端事件。单条事件出错只记日志，连接不中断。
func (s *WsHandler) readLoop(c *gin.Context, session *relay.Session, conn *websocket.Conn) {
	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			return
		}

		var event relay.Event
		if err = json.Unmarshal(raw, &event); err != nil {
			log.WarnContext(c.Request.Context(), "WS 事件格式错误", "username", session.Username, "err", err)
			continue
		}

		switch event.Event {
		case relay.EventJoinRoom:
			s.handleJoin(session, event.Data)
		case relay.EventChatMessage:
			s.handleChatMessage(session, event.Data)
		case relay.EventReadMessages:
			s.handleReadMessages(c, session, event.Data)
		default:
			log.WarnContext(c.Request.Context(), "WS 未知事件", "event", event.Event)
		}
	}
}

// handleJoin 只允许加入与登录身份同名的房间
func (s *WsHandler) handleJoin(session *relay.Session, data json.RawMessage) {
	var room string
	if err := json.Unmarshal(data, &room); err != nil {
		log.Warn("join room 载荷错误", "username", session.Username, "err", err)
		return
	}
	if !s.hub.Join(session, room) {
		log.Warn("join room 被拒绝", "username", session.Username, "room", room)
	}
}

// handleChatMessage 原样转发给会话双方的房间，发送方收到回显
func (s *WsHandler) handleChatMessage(session *relay.Session, data json.RawMessage) {
	var envelope struct {
		Sender   string `json:"sender"`
		Receiver string `json:"receiver"`
	}
	if err := json.Unmarshal(data, &envelope); err != nil {
		log.Warn("chat message 载荷错误", "username", session.Username, "err", err)
		return
	}
	if envelope.Sender != session.Username {
		log.Warn("chat message 发送方与登录身份不符", "username", session.Username, "sender", envelope.Sender)
		return
	}
	s.hub.EmitRaw(envelope.Sender, relay.EventReceiveMessage, data)
	s.hub.EmitRaw(envelope.Receiver, relay.EventReceiveMessage, data)
}

// handleReadMessages 把 sender 发给 receiver 的未读全部置为已读，
// 然后把本次翻转的消息 ID 列表广播给双方
func (s *WsHandler) handleReadMessages(c *gin.Context, session *relay.Session, data json.RawMessage) {
	var payload relay.ReadMessagesPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		log.Warn("read messages 载荷错误", "username", session.Username, "err", err)
		return
	}
	if payload.Receiver != session.Username {
		log.Warn("read messages 接收方与登录身份不符", "username", session.Username, "receiver", payload.Receiver)
		return
	}

	ids, err := s.messageSvc.MarkConversationRead(c.Request.Context(), payload.Sender, payload.Receiver)
	if err != nil {
		log.ErrorContext(c.Request.Context(), "批量已读失败", "sender", payload.Sender, "receiver", payload.Receiver, "err", err)
		return
	}

	update := relay.ReadUpdatePayload{
		Sender:          payload.Sender,
		Receiver:        payload.Receiver,
		NewSeenMessages: ids,
	}
	s.hub.Emit(payload.Sender, relay.EventReadUpdate, update)
	s.hub.Emit(payload.Receiver, relay.EventReadUpdate, update)
}
