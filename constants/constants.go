package constants

import (
	"time"
)

const (
	// ServiceName 服务名，用于链路追踪与日志标识
	ServiceName = "member_hub"
	// ServiceVersion 服务版本
	ServiceVersion = "v1.0.0"
)

const (
	// CaptchaKeyPrefix 验证码缓存键前缀，完整键形如 captcha:{purpose}:{phone}
	CaptchaKeyPrefix = "captcha:"
	// CaptchaCountKeyPrefix 验证码发送计数键前缀，完整键形如 captcha:count:{purpose}:{phone}
	CaptchaCountKeyPrefix = "captcha:count:"
	// SessionTokenKeyPrefix 会话令牌缓存键前缀，完整键形如 auth:token:{memberID}
	SessionTokenKeyPrefix = "auth:token:"
	// LoginLogQueueKey 登录日志异步队列的 Redis List 键
	LoginLogQueueKey = "member_hub:queue:login_log"
)

const (
	// CaptchaSendLimit 单个手机号同一用途在滑动窗口内允许的最大发送次数
	CaptchaSendLimit = 5
	// CaptchaSendWindow 发送计数的时间窗口
	CaptchaSendWindow = time.Hour
	// DefaultCaptchaTTL 验证码默认有效期，可被配置覆盖
	DefaultCaptchaTTL = 5 * time.Minute
)
