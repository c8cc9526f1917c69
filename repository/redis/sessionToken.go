package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Xushengqwer/go-common/commonerrors"
	"github.com/Xushengqwer/member_hub/constants"
)

// SessionTokenRepo 定义了与 Redis 中会话令牌缓存相关的操作接口。
// - 每个会员最多缓存一个有效令牌，新登录覆盖旧令牌，实现会话互踢。
// - 认证中间件以缓存中的令牌为准，缓存缺失或不一致即视为会话失效。
type SessionTokenRepo interface {
	// CacheToken 缓存会员的当前有效令牌，并指定与 JWT 对齐的有效时间。
	// - 如果 Redis 操作失败，则返回包装后的错误。
	CacheToken(ctx context.Context, memberID int64, token string, expire time.Duration) error

	// GetToken 查询会员当前缓存的令牌。
	// - 如果缓存不存在（已登出或已过期），将返回 commonerrors.ErrRepoNotFound。
	// - 其他 Redis 查询错误将被包装后返回。
	GetToken(ctx context.Context, memberID int64) (string, error)

	// RemoveToken 删除会员的令牌缓存，使会话立即失效。
	// - 登出和密码重置时调用；key 不存在视为成功。
	RemoveToken(ctx context.Context, memberID int64) error
}

// sessionTokenRepo 是 SessionTokenRepo 接口基于 go-redis/v9 的实现。
type sessionTokenRepo struct {
	client *redis.Client // client 是 Redis v9 客户端实例
}

// NewSessionTokenRepo 创建一个新的 sessionTokenRepo 实例。
// - 依赖注入 Redis v9 客户端。
func NewSessionTokenRepo(client *redis.Client) SessionTokenRepo {
	return &sessionTokenRepo{client: client}
}

// buildKey 根据会员 ID 生成会话令牌键名，形如 auth:token:10001。
func (r *sessionTokenRepo) buildKey(memberID int64) string {
	return constants.SessionTokenKeyPrefix + strconv.FormatInt(memberID, 10)
}

// CacheToken 实现接口方法，缓存会员令牌。
func (r *sessionTokenRepo) CacheToken(ctx context.Context, memberID int64, token string, expire time.Duration) error {
	key := r.buildKey(memberID)
	if err := r.client.Set(ctx, key, token, expire).Err(); err != nil {
		return fmt.Errorf("sessionTokenRepo.CacheToken: 缓存会话令牌失败 (MemberID: %d): %w", memberID, err)
	}
	return nil
}

// GetToken 实现接口方法，查询会员令牌。
func (r *sessionTokenRepo) GetToken(ctx context.Context, memberID int64) (string, error) {
	key := r.buildKey(memberID)
	val, err := r.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			// 缓存不存在说明会话已失效
			return "", commonerrors.ErrRepoNotFound
		}
		return "", fmt.Errorf("sessionTokenRepo.GetToken: 查询会话令牌失败 (MemberID: %d): %w", memberID, err)
	}
	return val, nil
}

// RemoveToken 实现接口方法，删除会员令牌缓存。
func (r *sessionTokenRepo) RemoveToken(ctx context.Context, memberID int64) error {
	key := r.buildKey(memberID)
	if err := r.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("sessionTokenRepo.RemoveToken: 删除会话令牌失败 (MemberID: %d): %w", memberID, err)
	}
	return nil
}
