package dto

import "time"

type UserDTO struct {
	ID           uint64     `json:"id,omitempty"`
	Username     string     `json:"username"`
	FirstName    string     `json:"firstName"`
	LastName     string     `json:"lastName"`
	GmailAddress string     `json:"gmailAddress"`
	Bio          *string    `json:"bio,omitempty"`
	IsAdmin      bool       `json:"isAdmin"`
	CreatedAt    *time.Time `json:"createdAt,omitempty"`
}

// UpdateUserDTO 资料更新请求体。更新前先用 password 复核口令。
type UpdateUserDTO struct {
	Password     string  `json:"password" binding:"required"`
	FirstName    string  `json:"firstName" binding:"required,max=50"`
	LastName     string  `json:"lastName" binding:"required,max=50"`
	GmailAddress string  `json:"gmailAddress" binding:"omitempty,email"`
	Bio          *string `json:"bio" binding:"omitempty,max=200"`
}
