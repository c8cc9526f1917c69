package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Xushengqwer/go-common/commonerrors"
	"github.com/Xushengqwer/member_hub/constants"
	"github.com/Xushengqwer/member_hub/models/enums"
)

// CodeRepo 定义了与 Redis 中存储验证码相关的操作接口。
// - 它封装了 Redis 的具体命令，提供标准化的验证码存取和发送计数方法。
// - 验证码按“用途+手机号”维度隔离，注册验证码不能用于登录。
type CodeRepo interface {
	// SetCaptcha 在 Redis 中设置验证码，并指定其有效时间。
	// - 同一用途+手机号重复发送时直接覆盖旧验证码。
	// - 如果 Redis 操作失败，则返回包装后的错误。
	SetCaptcha(ctx context.Context, phone string, purpose enums.CodePurpose, captcha string, expire time.Duration) error

	// GetCaptcha 从 Redis 中根据用途和手机号检索对应的验证码。
	// - 如果验证码不存在（可能已过期或未设置），将返回 commonerrors.ErrRepoNotFound。
	// - 其他 Redis 查询错误将被包装后返回。
	GetCaptcha(ctx context.Context, phone string, purpose enums.CodePurpose) (string, error)

	// DeleteCaptcha 从 Redis 中删除指定用途和手机号的验证码。
	// - 通常在验证码成功使用后调用，防止重复使用。
	// - 如果 Redis 操作失败，则返回包装后的错误。
	DeleteCaptcha(ctx context.Context, phone string, purpose enums.CodePurpose) error

	// IncrSendCount 将指定用途+手机号的发送计数加一并返回新值。
	// - 计数首次创建时设置窗口过期时间，窗口内计数只增不减。
	// - 如果 Redis 操作失败，则返回包装后的错误。
	IncrSendCount(ctx context.Context, phone string, purpose enums.CodePurpose, window time.Duration) (int64, error)

	// GetSendCount 查询指定用途+手机号在当前窗口内的发送次数。
	// - 计数不存在时返回 0 而非错误。
	GetSendCount(ctx context.Context, phone string, purpose enums.CodePurpose) (int64, error)
}

// codeRepo 是 CodeRepo 接口基于 go-redis/v9 的实现。
type codeRepo struct {
	client *redis.Client // client 是 Redis v9 客户端实例
}

// NewCodeRepo 创建一个新的 codeRepo 实例。
// - 依赖注入 Redis v9 客户端。
func NewCodeRepo(client *redis.Client) CodeRepo {
	return &codeRepo{client: client}
}

// buildCaptchaKey 根据用途和手机号生成验证码键名。
// - 形如 captcha:REGISTER:13800001111，用途隔离防止验证码跨场景复用。
func (r *codeRepo) buildCaptchaKey(phone string, purpose enums.CodePurpose) string {
	return fmt.Sprintf("%s%s:%s", constants.CaptchaKeyPrefix, purpose, phone)
}

// buildCountKey 根据用途和手机号生成发送计数键名。
// - 形如 captcha:count:REGISTER:13800001111，与验证码同维度限频。
func (r *codeRepo) buildCountKey(phone string, purpose enums.CodePurpose) string {
	return fmt.Sprintf("%s%s:%s", constants.CaptchaCountKeyPrefix, purpose, phone)
}

// SetCaptcha 实现接口方法，在 Redis 中存储验证码。
func (r *codeRepo) SetCaptcha(ctx context.Context, phone string, purpose enums.CodePurpose, captcha string, expire time.Duration) error {
	key := r.buildCaptchaKey(phone, purpose)
	// 执行 Redis SET 命令，带过期时间 (EX)
	if err := r.client.Set(ctx, key, captcha, expire).Err(); err != nil {
		// 包装 Redis SET 操作错误，添加中文上下文
		return fmt.Errorf("codeRepo.SetCaptcha: 设置验证码失败 (用途: %s): %w", purpose, err)
	}
	return nil
}

// GetCaptcha 实现接口方法，从 Redis 中获取验证码。
func (r *codeRepo) GetCaptcha(ctx context.Context, phone string, purpose enums.CodePurpose) (string, error) {
	key := r.buildCaptchaKey(phone, purpose)
	val, err := r.client.Get(ctx, key).Result()
	if err != nil {
		// 检查是否是 Redis 的 "key not found" 错误
		if errors.Is(err, redis.Nil) {
			// 验证码不存在或已过期，返回约定的公共错误
			return "", commonerrors.ErrRepoNotFound
		}
		// 包装其他 Redis GET 操作错误，添加中文上下文
		return "", fmt.Errorf("codeRepo.GetCaptcha: 获取验证码失败 (用途: %s): %w", purpose, err)
	}
	return val, nil
}

// DeleteCaptcha 实现接口方法，从 Redis 中删除验证码。
func (r *codeRepo) DeleteCaptcha(ctx context.Context, phone string, purpose enums.CodePurpose) error {
	key := r.buildCaptchaKey(phone, purpose)
	// 即使 key 不存在，DEL 也会成功返回，主要捕获连接错误等非 Nil 错误
	if err := r.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("codeRepo.DeleteCaptcha: 删除验证码失败 (用途: %s): %w", purpose, err)
	}
	return nil
}

// IncrSendCount 实现接口方法，递增发送计数。
func (r *codeRepo) IncrSendCount(ctx context.Context, phone string, purpose enums.CodePurpose, window time.Duration) (int64, error) {
	key := r.buildCountKey(phone, purpose)
	count, err := r.client.Incr(ctx, key).Result()
	if err != nil {
		return 0, fmt.Errorf("codeRepo.IncrSendCount: 递增发送计数失败 (用途: %s): %w", purpose, err)
	}
	// 首次创建计数时设置窗口过期时间，后续递增不刷新，保证窗口固定
	if count == 1 {
		if err := r.client.Expire(ctx, key, window).Err(); err != nil {
			// EXPIRE 失败时回收计数 key，避免留下永不过期的计数把手机号永久限流
			r.client.Del(ctx, key)
			return count, fmt.Errorf("codeRepo.IncrSendCount: 设置计数过期时间失败: %w", err)
		}
	}
	return count, nil
}

// GetSendCount 实现接口方法，查询发送计数。
func (r *codeRepo) GetSendCount(ctx context.Context, phone string, purpose enums.CodePurpose) (int64, error) {
	key := r.buildCountKey(phone, purpose)
	count, err := r.client.Get(ctx, key).Int64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			// 计数不存在说明窗口内尚未发送过
			return 0, nil
		}
		return 0, fmt.Errorf("codeRepo.GetSendCount: 查询发送计数失败 (用途: %s): %w", purpose, err)
	}
	return count, nil
}
