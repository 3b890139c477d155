package model

import (
	"fmt"
	"time"
)

// ChatHistory 会话表。user_one/user_two 保留首次写入的顺序，
// peer_key 使用 "小ID_大ID" 保证同一对用户在库里只有一行。
type ChatHistory struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	UserOneID uint64    `gorm:"column:user_one;not null" json:"userOne"`
	UserTwoID uint64    `gorm:"column:user_two;not null" json:"userTwo"`
	PeerKey   string    `gorm:"uniqueIndex;type:varchar(64);not null" json:"-"`
	Time      time.Time `gorm:"index" json:"time"`
}

func (ChatHistory) TableName() string { return "chat_history" }

// PeerKeyOf 生成无序用户对的唯一会话标识
func PeerKeyOf(a, b uint64) string {
	if a < b {
		return fmt.Sprintf("%d_%d", a, b)
	}
	return fmt.Sprintf("%d_%d", b, a)
}
