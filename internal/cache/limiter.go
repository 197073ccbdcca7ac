package cache

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const loginFailPrefix = "login:fail:"

// LoginLimiter 以 Redis 計數每個 email 的登入失敗次數。
// Redis 出錯時一律放行，只記錄 warning。
type LoginLimiter struct {
	cache       Cache
	maxAttempts int
	window      time.Duration
	logger      *zap.Logger
}

// NewLoginLimiter maxAttempts <= 0 代表停用限制
func NewLoginLimiter(c Cache, maxAttempts int, window time.Duration, logger *zap.Logger) *LoginLimiter {
	return &LoginLimiter{cache: c, maxAttempts: maxAttempts, window: window, logger: logger}
}

func loginFailKey(email string) string {
	return loginFailPrefix + strings.ToLower(strings.TrimSpace(email))
}

// Allowed 回報此 email 是否仍可嘗試登入
func (l *LoginLimiter) Allowed(ctx context.Context, email string) bool {
	if l.maxAttempts <= 0 {
		return true
	}
	n, err := l.cache.Get(ctx, loginFailKey(email)).Int()
	if errors.Is(err, redis.Nil) {
		return true
	}
	if err != nil {
		l.logger.Warn("login limiter read failed", zap.Error(err))
		return true
	}
	return n < l.maxAttempts
}

// Fail 記錄一次失敗；第一次失敗時開始計算視窗
func (l *LoginLimiter) Fail(ctx context.Context, email string) {
	if l.maxAttempts <= 0 {
		return
	}
	key := loginFailKey(email)
	n, err := l.cache.Incr(ctx, key).Result()
	if err != nil {
		l.logger.Warn("login limiter incr failed", zap.Error(err))
		return
	}
	if n == 1 {
		if err := l.cache.Expire(ctx, key, l.window).Err(); err != nil {
			l.logger.Warn("login limiter expire failed", zap.Error(err))
		}
	}
}

// Reset 登入成功後清除計數
func (l *LoginLimiter) Reset(ctx context.Context, email string) {
	if l.maxAttempts <= 0 {
		return
	}
	if err := l.cache.Del(ctx, loginFailKey(email)).Err(); err != nil {
		l.logger.Warn("login limiter reset failed", zap.Error(err))
	}
}
