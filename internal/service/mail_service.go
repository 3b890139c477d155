package service

import (
	"Courier/internal/api/dto"
	"Courier/internal/model"
	"Courier/internal/repository"
	"context"
)

// MailService 外部邮件台账：结构上与站内消息平行，但对端是未注册的外部联系人
type MailService interface {
	Send(ctx context.Context, username string, req *dto.SendMailReq) (*dto.MailDTO, error)
	Get(ctx context.Context, id uint64) (*dto.MailDTO, error)
	FindAll(ctx context.Context) ([]*dto.MailDTO, error)
	Delete(ctx context.Context, id uint64) error

	ListMailUsers(ctx context.Context) ([]*dto.MailUserDTO, error)
	GetMailUser(ctx context.Context, id uint64) (*dto.MailUserDTO, error)
	AddMailUser(ctx context.Context, address string) (*dto.MailUserDTO, error)
	DeleteMailUser(ctx context.Context, id uint64) error
}

type mailServiceImpl struct {
	userRepo repository.UserRepo
	mailRepo repository.MailRepo
}

func NewMailService(userRepo repository.UserRepo, mailRepo repository.MailRepo) MailService {
	return &mailServiceImpl{userRepo: userRepo, mailRepo: mailRepo}
}

// Send 记录一封邮件。外部地址第一次出现时自动建档，不需要预先登记。
func (s *mailServiceImpl) Send(ctx context.Context, username string, req *dto.SendMailReq) (*dto.MailDTO, error) {
	user, err := s.userRepo.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	mailUser, err := s.mailRepo.EnsureMailUser(ctx, req.MailUser)
	if err != nil {
		return nil, err
	}

	sentByAppUser := *req.SentByAppUser
	email := &model.Email{SubjectLine: req.SubjectLine, Text: req.Text}
	if err = s.mailRepo.CreateWithDelivery(ctx, email, user.ID, mailUser.ID, sentByAppUser); err != nil {
		return nil, err
	}

	res := &dto.MailDTO{
		ID:          email.ID,
		SubjectLine: email.SubjectLine,
		Text:        email.Text,
		Time:        email.CreatedAt,
	}
	if sentByAppUser {
		res.Sender, res.Receiver = user.Username, mailUser.GmailAddress
	} else {
		res.Sender, res.Receiver = mailUser.GmailAddress, user.Username
	}
	return res, nil
}

func (s *mailServiceImpl) Get(ctx context.Context, id uint64) (*dto.MailDTO, error) {
	email, chat, err := s.mailRepo.GetWithDelivery(ctx, id)
	if err != nil {
		return nil, err
	}
	if email == nil {
		return nil, ErrMailNotFound
	}

	user, err := s.userRepo.GetUserById(ctx, chat.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	mailUser, err := s.mailRepo.GetMailUserById(ctx, chat.MailUserID)
	if err != nil {
		return nil, err
	}
	if mailUser == nil {
		return nil, ErrMailUserNotFound
	}

	res := &dto.MailDTO{
		ID:          email.ID,
		SubjectLine: email.SubjectLine,
		Text:        email.Text,
		Time:        email.CreatedAt,
	}
	if chat.SentByAppUser {
		res.Sender, res.Receiver = user.Username, mailUser.GmailAddress
	} else {
		res.Sender, res.Receiver = mailUser.GmailAddress, user.Username
	}
	return res, nil
}

func (s *mailServiceImpl) FindAll(ctx context.Context) ([]*dto.MailDTO, error) {
	emails, err := s.mailRepo.FindAllMail(ctx)
	if err != nil {
		return nil, err
	}
	res := make([]*dto.MailDTO, 0, len(emails))
	for _, e := range emails {
		res = append(res, &dto.MailDTO{
			ID:          e.ID,
			SubjectLine: e.SubjectLine,
			Text:        e.Text,
			Time:        e.CreatedAt,
		})
	}
	return res, nil
}

func (s *mailServiceImpl) Delete(ctx context.Context, id uint64) error {
	affected, err := s.mailRepo.DeleteMail(ctx, id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrMailNotFound
	}
	return nil
}

func (s *mailServiceImpl) ListMailUsers(ctx context.Context) ([]*dto.MailUserDTO, error) {
	mailUsers, err := s.mailRepo.ListMailUsers(ctx)
	if err != nil {
		return nil, err
	}
	res := make([]*dto.MailUserDTO, 0, len(mailUsers))
	for _, m := range mailUsers {
		res = append(res, &dto.MailUserDTO{ID: m.ID, GmailAddress: m.GmailAddress})
	}
	return res, nil
}

func (s *mailServiceImpl) GetMailUser(ctx context.Context, id uint64) (*dto.MailUserDTO, error) {
	mailUser, err := s.mailRepo.GetMailUserById(ctx, id)
	if err != nil {
		return nil, err
	}
	if mailUser == nil {
		return nil, ErrMailUserNotFound
	}
	return &dto.MailUserDTO{ID: mailUser.ID, GmailAddress: mailUser.GmailAddress}, nil
}

// AddMailUser 显式登记联系人，重复地址返回业务错误
func (s *mailServiceImpl) AddMailUser(ctx context.Context, address string) (*dto.MailUserDTO, error) {
	existing, err := s.mailRepo.GetMailUserByAddress(ctx, address)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrMailUserExist
	}

	mailUser := &model.MailUser{GmailAddress: address}
	if err = s.mailRepo.CreateMailUser(ctx, mailUser); err != nil {
		return nil, err
	}
	return &dto.MailUserDTO{ID: mailUser.ID, GmailAddress: mailUser.GmailAddress}, nil
}

func (s *mailServiceImpl) DeleteMailUser(ctx context.Context, id uint64) error {
	affected, err := s.mailRepo.DeleteMailUser(ctx, id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrMailUserNotFound
	}
	return nil
}
