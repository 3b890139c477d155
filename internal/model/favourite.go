package model

// FavouriteList 定向收藏关系，必须挂在一条已存在的会话上
type FavouriteList struct {
	ID            uint64 `gorm:"primaryKey;autoIncrement" json:"id"`
	SenderID      uint64 `gorm:"column:sender;not null;uniqueIndex:idx_fav_pair" json:"sender"`
	ReceiverID    uint64 `gorm:"column:receiver;not null;uniqueIndex:idx_fav_pair" json:"receiver"`
	ChatHistoryID uint64 `gorm:"not null" json:"chatHistoryId"`
}

func (FavouriteList) TableName() string { return "favourite_list" }
