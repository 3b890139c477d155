package job

import (
	"Courier/internal/pkg/consts"
	"Courier/internal/pkg/logger"
	"Courier/internal/pkg/redis"
	"context"
	log "log/slog"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OrphanSweepJob 兜底清理：删除指向已不存在的用户或消息的残留行。
// 正常路径的级联删除在事务里完成，这里只处理历史脏数据和异常中断留下的孤儿。
type OrphanSweepJob struct {
	db *gorm.DB
}

func NewOrphanSweepJob(db *gorm.DB) *OrphanSweepJob {
	return &OrphanSweepJob{db: db}
}

func (s *OrphanSweepJob) Run() {
	traceID := "job-orphan-sweep-" + uuid.NewString()
	ctx := context.WithValue(context.Background(), logger.TraceIDKey, traceID)

	lockValue := uuid.NewString()
	locked, err := redis.TryLock(ctx, consts.OrphanSweepLockKey, lockValue, 10*time.Minute, 1)
	if err != nil {
		log.ErrorContext(ctx, "orphan sweep lock error", "err", err)
		return
	}
	if !locked {
		log.InfoContext(ctx, "orphan sweep already running elsewhere, skip")
		return
	}
	defer redis.UnLock(ctx, consts.OrphanSweepLockKey, lockValue)

	log.InfoContext(ctx, "start orphan sweep job")

	sweeps := []struct {
		name string
		sql  string
	}{
		{"message_chat_no_sender", "DELETE FROM message_chat WHERE sender NOT IN (SELECT id FROM users)"},
		{"message_chat_no_receiver", "DELETE FROM message_chat WHERE receiver NOT IN (SELECT id FROM users)"},
		{"messages_no_delivery", "DELETE FROM messages WHERE id NOT IN (SELECT message_id FROM message_chat)"},
		{"chat_history_no_user", "DELETE FROM chat_history WHERE user_one NOT IN (SELECT id FROM users) OR user_two NOT IN (SELECT id FROM users)"},
		{"favourite_no_conversation", "DELETE FROM favourite_list WHERE chat_history_id NOT IN (SELECT id FROM chat_history)"},
		{"mail_chat_no_user", "DELETE FROM mail_chat WHERE user_id NOT IN (SELECT id FROM users)"},
		{"emails_no_delivery", "DELETE FROM emails WHERE id NOT IN (SELECT email_id FROM mail_chat)"},
	}

	total := int64(0)
	for _, sweep := range sweeps {
		result := s.db.WithContext(ctx).Exec(sweep.sql)
		if result.Error != nil {
			log.ErrorContext(ctx, "orphan sweep step error", "step", sweep.name, "err", result.Error)
			continue
		}
		if result.RowsAffected > 0 {
			log.InfoContext(ctx, "orphan sweep step cleaned", "step", sweep.name, "rows", result.RowsAffected)
		}
		total += result.RowsAffected
	}

	log.InfoContext(ctx, "orphan sweep job finished", "cleaned_count", total)
}
