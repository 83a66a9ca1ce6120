package session

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const keyPrefix = "revoked:"

// RedisRevoker 吊销记录保存在 Redis 中，key 的 TTL 等于 token 剩余有效期，多实例共享
type RedisRevoker struct {
	rdb    *redis.Client
	logger *zap.Logger
	now    func() time.Time
}

func NewRedisRevoker(rdb *redis.Client, logger *zap.Logger) *RedisRevoker {
	return &RedisRevoker{
		rdb:    rdb,
		logger: logger,
		now:    time.Now,
	}
}

func (r *RedisRevoker) Revoke(ctx context.Context, jti string, until time.Time) error {
	ttl := until.Sub(r.now())
	if ttl <= 0 {
		// 已经过期，无需记录
		return nil
	}

	if err := r.rdb.SetNX(ctx, keyPrefix+jti, 1, ttl).Err(); err != nil {
		return fmt.Errorf("revoke token %s: %w", jti, err)
	}
	return nil
}

// IsRevoked Redis 不可用时不阻止请求，记录告警后按未吊销处理
func (r *RedisRevoker) IsRevoked(ctx context.Context, jti string) bool {
	n, err := r.rdb.Exists(ctx, keyPrefix+jti).Result()
	if err != nil {
		if r.logger != nil {
			r.logger.Warn("Redis revocation check failed, allowing request",
				zap.String("jti", jti),
				zap.Error(err),
			)
		}
		return false
	}
	return n > 0
}
