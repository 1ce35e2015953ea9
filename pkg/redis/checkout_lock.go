package redis

import (
	"context"
	"time"

	rd "github.com/redis/go-redis/v9"
)

// 每用户结账锁：同一用户同一时刻只允许一笔结账在途，
// 封死「两笔并发结账同时通过校验」的 check-then-act 竞态窗口。
// 锁值为本次结账的 token，释放时必须匹配，避免误删新请求的锁。

// luaReleaseCheckoutLockIfMatch 仅当锁值匹配 token 时才删除。
const luaReleaseCheckoutLockIfMatch = `
local lockKey = KEYS[1]
local token = ARGV[1]
if redis.call('GET', lockKey) == token then
  return redis.call('DEL', lockKey)
end
return 0
`

// AcquireCheckoutLock 尝试占锁（SET NX + TTL）。
// 返回 false 表示该用户已有结账在途。TTL 兜底防止进程崩溃后死锁。
func AcquireCheckoutLock(ctx context.Context, rdb *rd.Client, userID uint, token string, ttl time.Duration) (bool, error) {
	return rdb.SetNX(ctx, CheckoutLockKey(userID), token, ttl).Result()
}

// ReleaseCheckoutLock 安全释放结账锁。
func ReleaseCheckoutLock(ctx context.Context, rdb *rd.Client, userID uint, token string) error {
	_, err := rdb.Eval(ctx, luaReleaseCheckoutLockIfMatch, []string{CheckoutLockKey(userID)}, token).Int()
	return err
}
