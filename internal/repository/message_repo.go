package repository

import (
	"Courier/internal/model"
	"context"
	"errors"
	"time"

	pkgerrors "github.com/pkg/errors"
	"gorm.io/gorm"
)

// ExchangeRow 会话内一条投递记录与消息时间的联表结果
type ExchangeRow struct {
	ID         uint64    `json:"id"`
	SenderID   uint64    `gorm:"column:sender" json:"sender"`
	ReceiverID uint64    `gorm:"column:receiver" json:"receiver"`
	MessageID  uint64    `json:"messageId"`
	Time       time.Time `json:"time"`
}

type MessageRepo interface {
	CreateWithDelivery(ctx context.Context, msg *model.Message, senderID, receiverID uint64) error
	GetWithDelivery(ctx context.Context, id uint64) (*model.Message, *model.MessageChat, error)
	FindAll(ctx context.Context) ([]*model.Message, error)
	GetExchange(ctx context.Context, userA, userB uint64) ([]*ExchangeRow, error)
	MarkSeen(ctx context.Context, messageID uint64) (*model.MessageChat, error)
	MarkExchangeSeen(ctx context.Context, senderID, receiverID uint64) ([]uint64, error)
	Delete(ctx context.Context, id uint64) (int64, error)
}

type messageRepoImpl struct {
	db *gorm.DB
}

func NewMessageRepo(db *gorm.DB) MessageRepo {
	return &messageRepoImpl{db: db}
}

// CreateWithDelivery 消息正文、投递记录、会话刷新三笔写入共用一个事务，
// 任何一步失败整体回滚，不会出现没有投递记录的消息。
func (s *messageRepoImpl) CreateWithDelivery(ctx context.Context, msg *model.Message, senderID, receiverID uint64) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(msg).Error; err != nil {
			return err
		}
		chat := &model.MessageChat{
			SenderID:   senderID,
			ReceiverID: receiverID,
			MessageID:  msg.ID,
			Seen:       false,
		}
		if err := tx.Create(chat).Error; err != nil {
			return err
		}
		_, err := upsertConversation(tx, senderID, receiverID)
		return err
	})
	if err != nil {
		return pkgerrors.Wrap(err, "messageRepo.CreateWithDelivery")
	}
	return nil
}

func (s *messageRepoImpl) GetWithDelivery(ctx context.Context, id uint64) (*model.Message, *model.MessageChat, error) {
	var msg model.Message
	err := s.db.WithContext(ctx).First(&msg, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, nil
		}
		return nil, nil, err
	}

	var chat model.MessageChat
	err = s.db.WithContext(ctx).Where("message_id = ?", id).First(&chat).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, nil
		}
		return nil, nil, err
	}
	return &msg, &chat, nil
}

func (s *messageRepoImpl) FindAll(ctx context.Context) ([]*model.Message, error) {
	messages := make([]*model.Message, 0)
	err := s.db.WithContext(ctx).Order("created_at").Find(&messages).Error
	if err != nil {
		return nil, err
	}
	return messages, nil
}

// GetExchange 双向 OR 匹配取回两人之间的全部投递记录，按消息时间升序
func (s *messageRepoImpl) GetExchange(ctx context.Context, userA, userB uint64) ([]*ExchangeRow, error) {
	rows := make([]*ExchangeRow, 0)
	err := s.db.WithContext(ctx).Table("message_chat c").
		Select("c.id, c.sender, c.receiver, c.message_id, m.created_at AS time").
		Joins("JOIN messages m ON c.message_id = m.id").
		Where("(c.sender = ? AND c.receiver = ?) OR (c.sender = ? AND c.receiver = ?)",
			userA, userB, userB, userA).
		Order("m.created_at").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// MarkSeen 无条件置 seen=true，重复调用是幂等的成功
func (s *messageRepoImpl) MarkSeen(ctx context.Context, messageID uint64) (*model.MessageChat, error) {
	var chat model.MessageChat
	err := s.db.WithContext(ctx).Where("message_id = ?", messageID).First(&chat).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	err = s.db.WithContext(ctx).Model(&model.MessageChat{}).
		Where("message_id = ?", messageID).
		Update("seen", true).Error
	if err != nil {
		return nil, err
	}
	chat.Seen = true
	return &chat, nil
}

// MarkExchangeSeen 批量已读：同一事务内取出该方向所有未读投递并整体翻转，
// 要么全部完成要么整体失败，不会出现部分成功的静默通知。
func (s *messageRepoImpl) MarkExchangeSeen(ctx context.Context, senderID, receiverID uint64) ([]uint64, error) {
	var seenIDs []uint64
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.MessageChat{}).
			Where("sender = ? AND receiver = ? AND seen = ?", senderID, receiverID, false).
			Order("message_id").
			Pluck("message_id", &seenIDs).Error; err != nil {
			return err
		}
		if len(seenIDs) == 0 {
			return nil
		}
		return tx.Model(&model.MessageChat{}).
			Where("message_id IN ?", seenIDs).
			Update("seen", true).Error
	})
	if err != nil {
		return nil, err
	}
	return seenIDs, nil
}

// Delete 消息与投递记录一起删除，返回受影响的消息行数
func (s *messageRepoImpl) Delete(ctx context.Context, id uint64) (int64, error) {
	var affected int64
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Delete(&model.Message{}, id)
		if result.Error != nil {
			return result.Error
		}
		affected = result.RowsAffected
		if affected == 0 {
			return nil
		}
		return tx.Where("message_id = ?", id).Delete(&model.MessageChat{}).Error
	})
	return affected, err
}
