package consts

const (
	// TokenRevokeKey 已吊销 Token 签名的黑名单前缀
	TokenRevokeKey = "courier:auth:revoked:"

	// OrphanSweepLockKey 孤儿数据清理任务的分布式锁
	OrphanSweepLockKey = "courier:cron:orphan_sweep"
)
