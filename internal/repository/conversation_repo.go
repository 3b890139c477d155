package repository

import (
	"Courier/internal/model"
	"context"
	"errors"
	"time"

	pkgerrors "github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ConversationRepo interface {
	Upsert(ctx context.Context, userOne, userTwo uint64) (*model.ChatHistory, error)
	GetByPair(ctx context.Context, userA, userB uint64) (*model.ChatHistory, error)
	ListByUser(ctx context.Context, userID uint64) ([]*model.ChatHistory, error)
}

type conversationRepoImpl struct {
	db *gorm.DB
}

func NewConversationRepo(db *gorm.DB) ConversationRepo {
	return &conversationRepoImpl{db: db}
}

// upsertConversation 原子会话插入：peer_key 唯一索引兜底，
// 冲突时只刷新 time，user_one/user_two 保持首次写入顺序。
// 消息发送事务内也复用这段逻辑，避免 select-then-insert 的并发竞态。
func upsertConversation(tx *gorm.DB, userOne, userTwo uint64) (*model.ChatHistory, error) {
	conv := &model.ChatHistory{
		UserOneID: userOne,
		UserTwoID: userTwo,
		PeerKey:   model.PeerKeyOf(userOne, userTwo),
		Time:      time.Now(),
	}
	err := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "peer_key"}},
		DoUpdates: clause.Assignments(map[string]interface{}{"time": time.Now()}),
	}).Create(conv).Error
	if err != nil {
		return nil, err
	}

	// 冲突路径下自增 ID 不可靠，按 peer_key 回读
	var stored model.ChatHistory
	if err := tx.Where("peer_key = ?", conv.PeerKey).First(&stored).Error; err != nil {
		return nil, err
	}
	return &stored, nil
}

func (s *conversationRepoImpl) Upsert(ctx context.Context, userOne, userTwo uint64) (*model.ChatHistory, error) {
	var conv *model.ChatHistory
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var txErr error
		conv, txErr = upsertConversation(tx, userOne, userTwo)
		return txErr
	})
	if err != nil {
		return nil, pkgerrors.Wrap(err, "conversationRepo.Upsert")
	}
	return conv, nil
}

func (s *conversationRepoImpl) GetByPair(ctx context.Context, userA, userB uint64) (*model.ChatHistory, error) {
	var conv model.ChatHistory
	err := s.db.WithContext(ctx).
		Where("peer_key = ?", model.PeerKeyOf(userA, userB)).
		First(&conv).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &conv, nil
}

// ListByUser 按最后活跃时间倒序返回用户的全部会话
func (s *conversationRepoImpl) ListByUser(ctx context.Context, userID uint64) ([]*model.ChatHistory, error) {
	conversations := make([]*model.ChatHistory, 0)
	err := s.db.WithContext(ctx).
		Where("user_one = ? OR user_two = ?", userID, userID).
		Order("time DESC").
		Find(&conversations).Error
	if err != nil {
		return nil, err
	}
	return conversations, nil
}
