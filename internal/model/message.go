package model

import "time"

// Message 消息正文，与投递记录分表存储
type Message struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	Text      string    `gorm:"type:text;not null" json:"text"`
	CreatedAt time.Time `gorm:"index" json:"createdAt"`
}

func (Message) TableName() string { return "messages" }

// MessageChat 投递记录，每条消息有且仅有一条；seen 只允许 false -> true
type MessageChat struct {
	ID         uint64 `gorm:"primaryKey;autoIncrement" json:"id"`
	SenderID   uint64 `gorm:"column:sender;not null;index:idx_chat_pair" json:"sender"`
	ReceiverID uint64 `gorm:"column:receiver;not null;index:idx_chat_pair" json:"receiver"`
	MessageID  uint64 `gorm:"not null;uniqueIndex" json:"messageId"`
	Seen       bool   `gorm:"not null;default:0" json:"seen"`
}

func (MessageChat) TableName() string { return "message_chat" }
