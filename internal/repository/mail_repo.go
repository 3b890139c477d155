package repository

import (
	"Courier/internal/model"
	"context"
	"errors"

	pkgerrors "github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type MailRepo interface {
	EnsureMailUser(ctx context.Context, address string) (*model.MailUser, error)
	GetMailUserById(ctx context.Context, id uint64) (*model.MailUser, error)
	GetMailUserByAddress(ctx context.Context, address string) (*model.MailUser, error)
	ListMailUsers(ctx context.Context) ([]*model.MailUser, error)
	CreateMailUser(ctx context.Context, mailUser *model.MailUser) error
	DeleteMailUser(ctx context.Context, id uint64) (int64, error)

	CreateWithDelivery(ctx context.Context, email *model.Email, userID, mailUserID uint64, sentByAppUser bool) error
	GetWithDelivery(ctx context.Context, id uint64) (*model.Email, *model.MailChat, error)
	FindAllMail(ctx context.Context) ([]*model.Email, error)
	DeleteMail(ctx context.Context, id uint64) (int64, error)
}

type mailRepoImpl struct {
	db *gorm.DB
}

func NewMailRepo(db *gorm.DB) MailRepo {
	return &mailRepoImpl{db: db}
}

// EnsureMailUser 首次引用即建档。与会话表同一套防竞态做法：
// 唯一索引上 DO NOTHING，随后回读，两个并发引用不会建出两行。
func (s *mailRepoImpl) EnsureMailUser(ctx context.Context, address string) (*model.MailUser, error) {
	mailUser := &model.MailUser{GmailAddress: address}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "gmail_address"}},
		DoNothing: true,
	}).Create(mailUser).Error
	if err != nil {
		return nil, pkgerrors.Wrap(err, "mailRepo.EnsureMailUser")
	}
	return s.GetMailUserByAddress(ctx, address)
}

func (s *mailRepoImpl) GetMailUserById(ctx context.Context, id uint64) (*model.MailUser, error) {
	var mailUser model.MailUser
	err := s.db.WithContext(ctx).First(&mailUser, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &mailUser, nil
}

func (s *mailRepoImpl) GetMailUserByAddress(ctx context.Context, address string) (*model.MailUser, error) {
	var mailUser model.MailUser
	err := s.db.WithContext(ctx).Where("gmail_address = ?", address).First(&mailUser).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &mailUser, nil
}

func (s *mailRepoImpl) ListMailUsers(ctx context.Context) ([]*model.MailUser, error) {
	mailUsers := make([]*model.MailUser, 0)
	err := s.db.WithContext(ctx).Order("id").Find(&mailUsers).Error
	if err != nil {
		return nil, err
	}
	return mailUsers, nil
}

func (s *mailRepoImpl) CreateMailUser(ctx context.Context, mailUser *model.MailUser) error {
	if err := s.db.WithContext(ctx).Create(mailUser).Error; err != nil {
		return pkgerrors.Wrap(err, "mailRepo.CreateMailUser")
	}
	return nil
}

func (s *mailRepoImpl) DeleteMailUser(ctx context.Context, id uint64) (int64, error) {
	result := s.db.WithContext(ctx).Delete(&model.MailUser{}, id)
	return result.RowsAffected, result.Error
}

// CreateWithDelivery 邮件正文与投递记录同一事务写入
func (s *mailRepoImpl) CreateWithDelivery(ctx context.Context, email *model.Email, userID, mailUserID uint64, sentByAppUser bool) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(email).Error; err != nil {
			return err
		}
		chat := &model.MailChat{
			UserID:        userID,
			MailUserID:    mailUserID,
			EmailID:       email.ID,
			SentByAppUser: sentByAppUser,
		}
		return tx.Create(chat).Error
	})
	if err != nil {
		return pkgerrors.Wrap(err, "mailRepo.CreateWithDelivery")
	}
	return nil
}

func (s *mailRepoImpl) GetWithDelivery(ctx context.Context, id uint64) (*model.Email, *model.MailChat, error) {
	var email model.Email
	err := s.db.WithContext(ctx).First(&email, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, nil
		}
		return nil, nil, err
	}

	var chat model.MailChat
	err = s.db.WithContext(ctx).Where("email_id = ?", id).First(&chat).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, nil
		}
		return nil, nil, err
	}
	return &email, &chat, nil
}

func (s *mailRepoImpl) FindAllMail(ctx context.Context) ([]*model.Email, error) {
	emails := make([]*model.Email, 0)
	err := s.db.WithContext(ctx).Order("time").Find(&emails).Error
	if err != nil {
		return nil, err
	}
	return emails, nil
}

// DeleteMail 邮件与投递记录一起删除
func (s *mailRepoImpl) DeleteMail(ctx context.Context, id uint64) (int64, error) {
	var affected int64
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Delete(&model.Email{}, id)
		if result.Error != nil {
			return result.Error
		}
		affected = result.RowsAffected
		if affected == 0 {
			return nil
		}
		return tx.Where("email_id = ?", id).Delete(&model.MailChat{}).Error
	})
	return affected, err
}
