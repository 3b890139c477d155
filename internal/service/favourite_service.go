package service

import (
	"Courier/internal/api/dto"
	"Courier/internal/model"
	"Courier/internal/repository"
	"context"
)

type FavouriteService interface {
	Add(ctx context.Context, senderID, receiverID uint64) (*dto.FavouriteDTO, error)
	Delete(ctx context.Context, senderID, receiverID uint64) error
	ListFor(ctx context.Context, userID uint64) ([]*dto.FavouriteDTO, error)
}

type favouriteServiceImpl struct {
	userRepo      repository.UserRepo
	favouriteRepo repository.FavouriteRepo
	convRepo      repository.ConversationRepo
}

func NewFavouriteService(userRepo repository.UserRepo, favouriteRepo repository.FavouriteRepo,
	convRepo repository.ConversationRepo) FavouriteService {
	return &favouriteServiceImpl{
		userRepo:      userRepo,
		favouriteRepo: favouriteRepo,
		convRepo:      convRepo,
	}
}

// Add 收藏一个聊过天的用户。没有会话记录的用户对不允许收藏。
func (s *favouriteServiceImpl) Add(ctx context.Context, senderID, receiverID uint64) (*dto.FavouriteDTO, error) {
	if err := s.checkBoth(ctx, senderID, receiverID); err != nil {
		return nil, err
	}

	conv, err := s.convRepo.GetByPair(ctx, senderID, receiverID)
	if err != nil {
		return nil, err
	}
	if conv == nil {
		return nil, ErrNotChattedYet
	}

	existing, err := s.favouriteRepo.GetDirected(ctx, senderID, receiverID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrFavouriteExist
	}

	fav := &model.FavouriteList{
		SenderID:      senderID,
		ReceiverID:    receiverID,
		ChatHistoryID: conv.ID,
	}
	if err = s.favouriteRepo.Create(ctx, fav); err != nil {
		return nil, err
	}

	return &dto.FavouriteDTO{
		ID:       fav.ID,
		Sender:   fav.SenderID,
		Receiver: fav.ReceiverID,
		Time:     conv.Time,
	}, nil
}

// Delete 精确删除定向收藏，不存在即报错
func (s *favouriteServiceImpl) Delete(ctx context.Context, senderID, receiverID uint64) error {
	if err := s.checkBoth(ctx, senderID, receiverID); err != nil {
		return err
	}

	affected, err := s.favouriteRepo.Delete(ctx, senderID, receiverID)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrFavouriteNotFound
	}
	return nil
}

// ListFor 按所属会话的活跃时间排序返回收藏列表
func (s *favouriteServiceImpl) ListFor(ctx context.Context, userID uint64) ([]*dto.FavouriteDTO, error) {
	user, err := s.userRepo.GetUserById(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	rows, err := s.favouriteRepo.ListBySender(ctx, userID)
	if err != nil {
		return nil, err
	}
	res := make([]*dto.FavouriteDTO, 0, len(rows))
	for _, r := range rows {
		res = append(res, &dto.FavouriteDTO{
			ID:       r.ID,
			Sender:   r.SenderID,
			Receiver: r.ReceiverID,
			Time:     r.Time,
		})
	}
	return res, nil
}

func (s *favouriteServiceImpl) checkBoth(ctx context.Context, senderID, receiverID uint64) error {
	sender, err := s.userRepo.GetUserById(ctx, senderID)
	if err != nil {
		return err
	}
	receiver, err := s.userRepo.GetUserById(ctx, receiverID)
	if err != nil {
		return err
	}
	if sender == nil || receiver == nil {
		return ErrUserNotFound
	}
	return nil
}
