package repository

import (
	"Courier/internal/model"
	"context"
	"errors"

	pkgerrors "github.com/pkg/errors"
	"gorm.io/gorm"
)

type UserRepo interface {
	GetUserById(ctx context.Context, id uint64) (*model.User, error)
	GetUserByUsername(ctx context.Context, username string) (*model.User, error)
	FindAll(ctx context.Context) ([]*model.User, error)
	CreateUser(ctx context.Context, user *model.User) error
	UpdateUser(ctx context.Context, user *model.User) error
	DeleteUser(ctx context.Context, id uint64) error
}

type UserRepoImpl struct {
	db *gorm.DB
}

func NewUserRepo(db *gorm.DB) UserRepo {
	return &UserRepoImpl{db: db}
}

func (s *UserRepoImpl) GetUserById(ctx context.Context, id uint64) (*model.User, error) {
	user := &model.User{}
	result := s.db.WithContext(ctx).First(user, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return user, nil
}

func (s *UserRepoImpl) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	user := &model.User{}
	result := s.db.WithContext(ctx).Where("username = ?", username).First(user)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return user, nil
}

func (s *UserRepoImpl) FindAll(ctx context.Context) ([]*model.User, error) {
	users := make([]*model.User, 0)
	result := s.db.WithContext(ctx).Order("first_name").Find(&users)
	if result.Error != nil {
		return nil, result.Error
	}
	return users, nil
}

func (s *UserRepoImpl) CreateUser(ctx context.Context, user *model.User) error {
	if result := s.db.WithContext(ctx).Create(user); result.Error != nil {
		return pkgerrors.Wrap(result.Error, "userRepo.CreateUser")
	}
	return nil
}

func (s *UserRepoImpl) UpdateUser(ctx context.Context, user *model.User) error {
	result := s.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", user.ID).Updates(user)
	if result.Error != nil {
		return pkgerrors.Wrap(result.Error, "userRepo.UpdateUser")
	}
	return nil
}

// DeleteUser 删除用户及其全部从属数据。
// 原则：会话、投递记录、收藏、邮件记录都跟随用户一起删除，不留悬空外键。
func (s *UserRepoImpl) DeleteUser(ctx context.Context, id uint64) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var msgIDs []uint64
		if err := tx.Model(&model.MessageChat{}).
			Where("sender = ? OR receiver = ?", id, id).
			Pluck("message_id", &msgIDs).Error; err != nil {
			return err
		}
		if err := tx.Where("sender = ? OR receiver = ?", id, id).
			Delete(&model.MessageChat{}).Error; err != nil {
			return err
		}
		if len(msgIDs) > 0 {
			if err := tx.Where("id IN ?", msgIDs).Delete(&model.Message{}).Error; err != nil {
				return err
			}
		}

		var mailIDs []uint64
		if err := tx.Model(&model.MailChat{}).
			Where("user_id = ?", id).
			Pluck("email_id", &mailIDs).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", id).Delete(&model.MailChat{}).Error; err != nil {
			return err
		}
		if len(mailIDs) > 0 {
			if err := tx.Where("id IN ?", mailIDs).Delete(&model.Email{}).Error; err != nil {
				return err
			}
		}

		if err := tx.Where("sender = ? OR receiver = ?", id, id).
			Delete(&model.FavouriteList{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_one = ? OR user_two = ?", id, id).
			Delete(&model.ChatHistory{}).Error; err != nil {
			return err
		}

		return tx.Delete(&model.User{}, id).Error
	})
	if err != nil {
		return pkgerrors.Wrap(err, "userRepo.DeleteUser")
	}
	return nil
}
