package model

import (
	"time"
)

type User struct {
	ID           uint64  `gorm:"primaryKey" json:"id"`
	Username     string  `gorm:"type:varchar(50);uniqueIndex:idx_username;not null" json:"username"`
	Password     string  `gorm:"type:varchar(255);not null" json:"-"`
	FirstName    string  `gorm:"type:varchar(50)" json:"firstName"`
	LastName     string  `gorm:"type:varchar(50)" json:"lastName"`
	GmailAddress string  `gorm:"type:varchar(100)" json:"gmailAddress"`
	Bio          *string `gorm:"type:varchar(255)" json:"bio"`
	IsAdmin      bool    `gorm:"type:tinyint(1);default:0" json:"isAdmin"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (User) TableName() string {
	return "users"
}
