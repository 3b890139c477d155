package relay

import (
	"github.com/goccy/go-json"
)

// 入站事件
const (
	EventJoinRoom     = "join room"
	EventChatMessage  = "chat message"
	EventReadMessages = "read messages"
)

// 出站事件
const (
	EventReceiveMessage = "receive message"
	EventReadUpdate     = "read messages update"
)

// Event 实时通道上的 JSON 文本帧
type Event struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// ReadMessagesPayload "read messages" 事件载荷
type ReadMessagesPayload struct {
	Sender   string `json:"sender"`
	Receiver string `json:"receiver"`
}

// ReadUpdatePayload "read messages update" 聚合通知载荷
type ReadUpdatePayload struct {
	Sender          string   `json:"sender"`
	Receiver        string   `json:"receiver"`
	NewSeenMessages []uint64 `json:"newSeenMessages"`
}
