package dto

import "time"

// SendMailReq 发送邮件请求体。mailUser 是外部邮箱地址，首次出现会自动建档。
type SendMailReq struct {
	SubjectLine   string `json:"subjectLine" binding:"max=255"`
	Text          string `json:"text" binding:"required"`
	MailUser      string `json:"mailUser" binding:"required,email"`
	SentByAppUser *bool  `json:"sentByAppUser" binding:"required"`
}

// MailDTO 邮件明细，sender/receiver 按 sentByAppUser 定向
type MailDTO struct {
	ID          uint64    `json:"id"`
	SubjectLine string    `json:"subjectLine"`
	Text        string    `json:"text"`
	Time        time.Time `json:"time"`
	Sender      string    `json:"sender,omitempty"`
	Receiver    string    `json:"receiver,omitempty"`
}

type MailUserDTO struct {
	ID           uint64 `json:"id"`
	GmailAddress string `json:"gmailAddress"`
}

// AddMailUserReq 显式登记外部邮箱联系人
type AddMailUserReq struct {
	GmailAddress string `json:"gmailAddress" binding:"required,email"`
}
