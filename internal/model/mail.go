package model

import "time"

// MailUser 外部邮箱联系人，首次被引用时自动建档
type MailUser struct {
	ID           uint64 `gorm:"primaryKey;autoIncrement" json:"id"`
	GmailAddress string `gorm:"type:varchar(100);uniqueIndex;not null" json:"gmailAddress"`
}

func (MailUser) TableName() string { return "mail_users" }

type Email struct {
	ID          uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	SubjectLine string    `gorm:"column:subject_line;type:varchar(255)" json:"subjectLine"`
	Text        string    `gorm:"type:text;not null" json:"text"`
	CreatedAt   time.Time `gorm:"column:time;index" json:"time"`
}

func (Email) TableName() string { return "emails" }

// MailChat 邮件投递记录，sent_by_app_user 决定收发方向
type MailChat struct {
	ID            uint64 `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID        uint64 `gorm:"not null" json:"userId"`
	MailUserID    uint64 `gorm:"not null" json:"mailUserId"`
	EmailID       uint64 `gorm:"not null;uniqueIndex" json:"emailId"`
	SentByAppUser bool   `gorm:"not null;default:0" json:"sentByAppUser"`
}

func (MailChat) TableName() string { return "mail_chat" }
