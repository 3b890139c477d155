package dto

import "time"

// FavouriteReq 收藏的定向用户对
type FavouriteReq struct {
	Sender   uint64 `json:"sender" binding:"required"`
	Receiver uint64 `json:"receiver" binding:"required"`
}

type FavouriteDTO struct {
	ID       uint64    `json:"id"`
	Sender   uint64    `json:"sender"`
	Receiver uint64    `json:"receiver"`
	Time     time.Time `json:"time"`
}
