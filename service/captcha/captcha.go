package captcha

import (
	"context"
	"errors"
	"time"

	"github.com/Xushengqwer/go-common/commonerrors"
	"github.com/Xushengqwer/go-common/core"
	"go.uber.org/zap"

	"github.com/Xushengqwer/member_hub/config"
	"github.com/Xushengqwer/member_hub/constants"
	"github.com/Xushengqwer/member_hub/dependencies"
	"github.com/Xushengqwer/member_hub/errs"
	"github.com/Xushengqwer/member_hub/models/enums"
	"github.com/Xushengqwer/member_hub/models/vo"
	"github.com/Xushengqwer/member_hub/repository/redis"
	"github.com/Xushengqwer/member_hub/utils"
)

// CaptchaService 定义了短信验证码发送与校验的服务接口。
type CaptchaService interface {
	// Send 为指定手机号和用途生成并发送验证码。
	// - 同一手机号+用途一小时内最多发送 5 次，超限返回 errs.ErrSendTooFrequent。
	// - 降级模式下不调用短信平台，验证码随返回值回显。
	// - 重复发送会覆盖旧验证码并重置有效期。
	Send(ctx context.Context, phone string, purpose enums.CodePurpose) (vo.CaptchaSendResult, error)

	// Verify 校验验证码是否正确。
	// - 校验通过后立即删除验证码，保证一次性使用。
	// - 验证码缺失、不匹配或 Redis 故障均返回 false（故障时宁可拒绝，不放行）。
	Verify(ctx context.Context, phone string, purpose enums.CodePurpose, code string) bool
}

// captchaService 是 CaptchaService 接口的实现。
type captchaService struct {
	codeRepo  redis.CodeRepo         // 验证码仓库
	smsClient dependencies.SMSClient // 短信平台客户端，降级模式下可为 nil
	smsConfig *config.SMSConfig      // 短信配置，含降级开关与验证码有效期
	logger    *core.ZapLogger        // 日志记录器
}

// NewCaptchaService 创建 CaptchaService 实例。
func NewCaptchaService(
	codeRepo redis.CodeRepo,
	smsClient dependencies.SMSClient,
	smsConfig *config.SMSConfig,
	logger *core.ZapLogger,
) CaptchaService {
	return &captchaService{
		codeRepo:  codeRepo,
		smsClient: smsClient,
		smsConfig: smsConfig,
		logger:    logger,
	}
}

// codeTTL 返回验证码有效期，配置缺省时使用默认值。
func (s *captchaService) codeTTL() time.Duration {
	if s.smsConfig.CodeExpiration > 0 {
		return time.Duration(s.smsConfig.CodeExpiration) * time.Second
	}
	return constants.DefaultCaptchaTTL
}

// Send 实现接口方法，生成并发送验证码。
func (s *captchaService) Send(ctx context.Context, phone string, purpose enums.CodePurpose) (vo.CaptchaSendResult, error) {
	const operation = "CaptchaService.Send"
	emptyResult := vo.CaptchaSendResult{}

	// 1. 检查发送频率，窗口内达到上限直接拒绝
	count, err := s.codeRepo.GetSendCount(ctx, phone, purpose)
	if err != nil {
		s.logger.Error("查询验证码发送计数失败",
			zap.String("operation", operation),
			zap.String("phone", utils.MaskPhone(phone)),
			zap.Error(err),
		)
		return emptyResult, commonerrors.ErrSystemError
	}
	if count >= constants.CaptchaSendLimit {
		s.logger.Warn("验证码发送过于频繁",
			zap.String("operation", operation),
			zap.String("phone", utils.MaskPhone(phone)),
			zap.Int64("count", count),
		)
		return emptyResult, errs.ErrSendTooFrequent
	}

	// 2. 生成验证码并写入缓存，覆盖同用途的旧验证码
	code := utils.GenerateCaptcha()
	if err := s.codeRepo.SetCaptcha(ctx, phone, purpose, code, s.codeTTL()); err != nil {
		s.logger.Error("存储验证码失败",
			zap.String("operation", operation),
			zap.String("phone", utils.MaskPhone(phone)),
			zap.Error(err),
		)
		return emptyResult, commonerrors.ErrSystemError
	}

	// 3. 发送验证码
	// - 降级模式：跳过短信平台，验证码直接回显给调用方
	if s.smsConfig.DegradationEnabled {
		s.logger.Info("降级模式开启，验证码随响应回显",
			zap.String("operation", operation),
			zap.String("phone", utils.MaskPhone(phone)),
			zap.String("purpose", string(purpose)),
		)
		if _, err := s.codeRepo.IncrSendCount(ctx, phone, purpose, constants.CaptchaSendWindow); err != nil {
			s.logger.Warn("递增发送计数失败",
				zap.String("operation", operation),
				zap.String("phone", utils.MaskPhone(phone)),
				zap.Error(err),
			)
		}
		return vo.CaptchaSendResult{Code: code}, nil
	}

	if err := s.smsClient.SendCode(ctx, phone, code); err != nil {
		s.logger.Error("调用短信平台发送验证码失败",
			zap.String("operation", operation),
			zap.String("phone", utils.MaskPhone(phone)),
			zap.Error(err),
		)
		return emptyResult, errs.ErrSmsSendFailed
	}

	// 4. 发送成功后递增计数，首次递增时设置窗口过期
	if _, err := s.codeRepo.IncrSendCount(ctx, phone, purpose, constants.CaptchaSendWindow); err != nil {
		// 计数失败不回滚已发送的短信，只记录日志
		s.logger.Warn("递增发送计数失败",
			zap.String("operation", operation),
			zap.String("phone", utils.MaskPhone(phone)),
			zap.Error(err),
		)
	}

	s.logger.Info("验证码发送成功",
		zap.String("operation", operation),
		zap.String("phone", utils.MaskPhone(phone)),
		zap.String("purpose", string(purpose)),
	)
	return emptyResult, nil
}

// Verify 实现接口方法，校验并消费验证码。
func (s *captchaService) Verify(ctx context.Context, phone string, purpose enums.CodePurpose, code string) bool {
	const operation = "CaptchaService.Verify"

	storedCode, err := s.codeRepo.GetCaptcha(ctx, phone, purpose)
	if err != nil {
		if errors.Is(err, commonerrors.ErrRepoNotFound) {
			s.logger.Warn("验证码不存在或已过期",
				zap.String("operation", operation),
				zap.String("phone", utils.MaskPhone(phone)),
				zap.String("purpose", string(purpose)),
			)
			return false
		}
		// Redis 故障时拒绝校验，避免放行无法验证的请求
		s.logger.Error("获取验证码失败",
			zap.String("operation", operation),
			zap.String("phone", utils.MaskPhone(phone)),
			zap.Error(err),
		)
		return false
	}

	if storedCode != code {
		s.logger.Warn("验证码不匹配",
			zap.String("operation", operation),
			zap.String("phone", utils.MaskPhone(phone)),
			zap.String("purpose", string(purpose)),
		)
		return false
	}

	// 校验通过后立即删除，保证一次性使用；删除失败只记录日志
	if err := s.codeRepo.DeleteCaptcha(ctx, phone, purpose); err != nil {
		s.logger.Error("删除已使用的验证码失败",
			zap.String("operation", operation),
			zap.String("phone", utils.MaskPhone(phone)),
			zap.Error(err),
		)
	}
	return true
}
