package dto

import "time"

// SendMessageReq 发送消息请求体
type SendMessageReq struct {
	Text string `json:"text" binding:"required,max=4000"`
}

// MessageDTO 消息明细。Seen 仅在查询单条消息时填充。
type MessageDTO struct {
	ID        uint64    `json:"id"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"time"`
	Sender    string    `json:"sender"`
	Receiver  string    `json:"receiver"`
	Seen      *bool     `json:"seen,omitempty"`
}

// ExchangeEntryDTO 两人会话中的一条投递记录
type ExchangeEntryDTO struct {
	ID        uint64    `json:"id"`
	Sender    uint64    `json:"sender"`
	Receiver  uint64    `json:"receiver"`
	MessageID uint64    `json:"messageId"`
	Time      time.Time `json:"time"`
}

// SeenMessageDTO 已读标记响应
type SeenMessageDTO struct {
	ID        uint64 `json:"id"`
	Sender    uint64 `json:"sender"`
	Receiver  uint64 `json:"receiver"`
	MessageID uint64 `json:"messageId"`
	Seen      bool   `json:"seen"`
}

// ConversationDTO 会话列表项
type ConversationDTO struct {
	ID      uint64    `json:"id"`
	UserOne uint64    `json:"userOne"`
	UserTwo uint64    `json:"userTwo"`
	Time    time.Time `json:"time"`
}
