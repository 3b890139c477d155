package service

import (
	"Courier/internal/api/dto"
	"Courier/internal/model"
	"Courier/internal/relay"
	"Courier/internal/repository"
	"context"
)

// MessageService 站内消息核心服务：投递、会话维护、已读状态与实时通知
type MessageService interface {
	Send(ctx context.Context, text, senderName, receiverName string) (*dto.MessageDTO, error)
	Get(ctx context.Context, id uint64) (*dto.MessageDTO, error)
	FindAll(ctx context.Context) ([]*dto.MessageDTO, error)
	Exchange(ctx context.Context, userOne, userTwo string) ([]*dto.ExchangeEntryDTO, error)
	MarkSeen(ctx context.Context, id uint64) (*dto.SeenMessageDTO, error)
	MarkConversationRead(ctx context.Context, senderName, receiverName string) ([]uint64, error)
	Conversations(ctx context.Context, username string) ([]*dto.ConversationDTO, error)
	Delete(ctx context.Context, id uint64) error
}

type messageServiceImpl struct {
	userRepo    repository.UserRepo
	messageRepo repository.MessageRepo
	convRepo    repository.ConversationRepo
	hub         *relay.Hub
}

// NewMessageService Hub 在进程启动时构造后注入，服务不持有任何全局可变状态
func NewMessageService(userRepo repository.UserRepo, messageRepo repository.MessageRepo,
	convRepo repository.ConversationRepo, hub *relay.Hub) MessageService {
	return &messageServiceImpl{
		userRepo:    userRepo,
		messageRepo: messageRepo,
		convRepo:    convRepo,
		hub:         hub,
	}
}

// Send 发送消息。双方身份先行解析，任何一方不存在都不会落下任何数据；
// 正文、投递记录、会话刷新在仓储层同一事务内完成，成功后向双方房间各推一次
// （发送方也收到回显，保证同一身份的多个端同步）。
func (s *messageServiceImpl) Send(ctx context.Context, text, senderName, receiverName string) (*dto.MessageDTO, error) {
	sender, err := s.userRepo.GetUserByUsername(ctx, senderName)
	if err != nil {
		return nil, err
	}
	if sender == nil {
		return nil, ErrUserNotFound
	}
	receiver, err := s.userRepo.GetUserByUsername(ctx, receiverName)
	if err != nil {
		return nil, err
	}
	if receiver == nil {
		return nil, ErrUserNotFound
	}

	msg := &model.Message{Text: text}
	if err = s.messageRepo.CreateWithDelivery(ctx, msg, sender.ID, receiver.ID); err != nil {
		return nil, err
	}

	res := &dto.MessageDTO{
		ID:        msg.ID,
		Text:      msg.Text,
		CreatedAt: msg.CreatedAt,
		Sender:    sender.Username,
		Receiver:  receiver.Username,
	}

	// 实时通知尽力而为，失败不影响已持久化的消息
	s.hub.Emit(sender.Username, relay.EventReceiveMessage, res)
	s.hub.Emit(receiver.Username, relay.EventReceiveMessage, res)

	return res, nil
}

// Get 查询单条消息，联同投递记录一起返回
func (s *messageServiceImpl) Get(ctx context.Context, id uint64) (*dto.MessageDTO, error) {
	msg, chat, err := s.messageRepo.GetWithDelivery(ctx, id)
	if err != nil {
		return nil, err
	}
	if msg == nil {
		return nil, ErrMessageNotFound
	}

	sender, err := s.userRepo.GetUserById(ctx, chat.SenderID)
	if err != nil {
		return nil, err
	}
	receiver, err := s.userRepo.GetUserById(ctx, chat.ReceiverID)
	if err != nil {
		return nil, err
	}
	if sender == nil || receiver == nil {
		return nil, ErrUserNotFound
	}

	seen := chat.Seen
	return &dto.MessageDTO{
		ID:        msg.ID,
		Text:      msg.Text,
		CreatedAt: msg.CreatedAt,
		Sender:    sender.Username,
		Receiver:  receiver.Username,
		Seen:      &seen,
	}, nil
}

func (s *messageServiceImpl) FindAll(ctx context.Context) ([]*dto.MessageDTO, error) {
	messages, err := s.messageRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	res := make([]*dto.MessageDTO, 0, len(messages))
	for _, m := range messages {
		res = append(res, &dto.MessageDTO{ID: m.ID, Text: m.Text, CreatedAt: m.CreatedAt})
	}
	return res, nil
}

// Exchange 两人之间的完整往来，参数顺序不影响结果
func (s *messageServiceImpl) Exchange(ctx context.Context, userOne, userTwo string) ([]*dto.ExchangeEntryDTO, error) {
	one, err := s.userRepo.GetUserByUsername(ctx, userOne)
	if err != nil {
		return nil, err
	}
	two, err := s.userRepo.GetUserByUsername(ctx, userTwo)
	if err != nil {
		return nil, err
	}
	if one == nil || two == nil {
		return nil, ErrUserNotFound
	}

	rows, err := s.messageRepo.GetExchange(ctx, one.ID, two.ID)
	if err != nil {
		return nil, err
	}
	res := make([]*dto.ExchangeEntryDTO, 0, len(rows))
	for _, r := range rows {
		res = append(res, &dto.ExchangeEntryDTO{
			ID:        r.ID,
			Sender:    r.SenderID,
			Receiver:  r.ReceiverID,
			MessageID: r.MessageID,
			Time:      r.Time,
		})
	}
	return res, nil
}

// MarkSeen 单条已读。重复标记不是错误。
func (s *messageServiceImpl) MarkSeen(ctx context.Context, id uint64) (*dto.SeenMessageDTO, error) {
	chat, err := s.messageRepo.MarkSeen(ctx, id)
	if err != nil {
		return nil, err
	}
	if chat == nil {
		return nil, ErrMessageNotFound
	}
	return &dto.SeenMessageDTO{
		ID:        chat.ID,
		Sender:    chat.SenderID,
		Receiver:  chat.ReceiverID,
		MessageID: chat.MessageID,
		Seen:      chat.Seen,
	}, nil
}

// MarkConversationRead 批量已读：sender 发给 receiver 的全部未读投递
// 在一个事务里翻转，返回本次新置为已读的消息 ID 列表
func (s *messageServiceImpl) MarkConversationRead(ctx context.Context, senderName, receiverName string) ([]uint64, error) {
	sender, err := s.userRepo.GetUserByUsername(ctx, senderName)
	if err != nil {
		return nil, err
	}
	receiver, err := s.userRepo.GetUserByUsername(ctx, receiverName)
	if err != nil {
		return nil, err
	}
	if sender == nil || receiver == nil {
		return nil, ErrUserNotFound
	}
	return s.messageRepo.MarkExchangeSeen(ctx, sender.ID, receiver.ID)
}

// Conversations 会话列表，最近活跃在前；无会话返回空列表而非错误
func (s *messageServiceImpl) Conversations(ctx context.Context, username string) ([]*dto.ConversationDTO, error) {
	user, err := s.userRepo.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	conversations, err := s.convRepo.ListByUser(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	res := make([]*dto.ConversationDTO, 0, len(conversations))
	for _, c := range conversations {
		res = append(res, &dto.ConversationDTO{
			ID:      c.ID,
			UserOne: c.UserOneID,
			UserTwo: c.UserTwoID,
			Time:    c.Time,
		})
	}
	return res, nil
}

func (s *messageServiceImpl) Delete(ctx context.Context, id uint64) error {
	affected, err := s.messageRepo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrMessageNotFound
	}
	return nil
}
