package repository

import (
	"Courier/internal/model"
	"context"
	"errors"
	"time"

	pkgerrors "github.com/pkg/errors"
	"gorm.io/gorm"
)

// FavouriteRow 收藏关系与所属会话时间的联表结果
type FavouriteRow struct {
	ID         uint64    `json:"id"`
	SenderID   uint64    `gorm:"column:sender" json:"sender"`
	ReceiverID uint64    `gorm:"column:receiver" json:"receiver"`
	Time       time.Time `json:"time"`
}

type FavouriteRepo interface {
	Create(ctx context.Context, fav *model.FavouriteList) error
	GetDirected(ctx context.Context, senderID, receiverID uint64) (*model.FavouriteList, error)
	Delete(ctx context.Context, senderID, receiverID uint64) (int64, error)
	ListBySender(ctx context.Context, senderID uint64) ([]*FavouriteRow, error)
}

type favouriteRepoImpl struct {
	db *gorm.DB
}

func NewFavouriteRepo(db *gorm.DB) FavouriteRepo {
	return &favouriteRepoImpl{db: db}
}

func (s *favouriteRepoImpl) Create(ctx context.Context, fav *model.FavouriteList) error {
	if err := s.db.WithContext(ctx).Create(fav).Error; err != nil {
		return pkgerrors.Wrap(err, "favouriteRepo.Create")
	}
	return nil
}

func (s *favouriteRepoImpl) GetDirected(ctx context.Context, senderID, receiverID uint64) (*model.FavouriteList, error) {
	var fav model.FavouriteList
	err := s.db.WithContext(ctx).
		Where("sender = ? AND receiver = ?", senderID, receiverID).
		First(&fav).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &fav, nil
}

// Delete 精确匹配定向关系，返回受影响行数
func (s *favouriteRepoImpl) Delete(ctx context.Context, senderID, receiverID uint64) (int64, error) {
	result := s.db.WithContext(ctx).
		Where("sender = ? AND receiver = ?", senderID, receiverID).
		Delete(&model.FavouriteList{})
	return result.RowsAffected, result.Error
}

// ListBySender 联表取出收藏项及所属会话的最后活跃时间
func (s *favouriteRepoImpl) ListBySender(ctx context.Context, senderID uint64) ([]*FavouriteRow, error) {
	rows := make([]*FavouriteRow, 0)
	err := s.db.WithContext(ctx).Table("favourite_list f").
		Select("f.id, f.sender, f.receiver, c.time").
		Joins("JOIN chat_history c ON f.chat_history_id = c.id").
		Where("f.sender = ?", senderID).
		Order("c.time").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
