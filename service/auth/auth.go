package auth

import (
	"context"
	"errors"
	"time"

	"github.com/Xushengqwer/go-common/commonerrors"
	"github.com/Xushengqwer/go-common/core"
	"go.uber.org/zap"

	"github.com/Xushengqwer/member_hub/dependencies"
	"github.com/Xushengqwer/member_hub/errs"
	"github.com/Xushengqwer/member_hub/models/dto"
	"github.com/Xushengqwer/member_hub/models/entities"
	"github.com/Xushengqwer/member_hub/models/enums"
	"github.com/Xushengqwer/member_hub/models/vo"
	"github.com/Xushengqwer/member_hub/repository/mysql"
	"github.com/Xushengqwer/member_hub/repository/redis"
	"github.com/Xushengqwer/member_hub/service/captcha"
	"github.com/Xushengqwer/member_hub/utils"
)

const timeLayout = "2006-01-02 15:04:05"

// AuthService 定义了会员注册、登录、密码重置与登出的服务接口。
type AuthService interface {
	// Register 处理会员注册。
	// - 校验注册验证码，创建会员记录，注册成功即视为登录，直接签发令牌。
	// - 手机号已注册时返回 errs.ErrPhoneAlreadyExists。
	Register(ctx context.Context, data dto.RegisterData, client dto.ClientInfo) (vo.RegisterResult, error)

	// PasswordLogin 处理手机号+密码登录。
	// - 依次校验会员存在性、账号状态、密码；失败的密码尝试会记入登录历史。
	PasswordLogin(ctx context.Context, data dto.PasswordLoginData, client dto.ClientInfo) (vo.LoginResult, error)

	// SmsLogin 处理手机号+短信验证码登录。
	// - 依次校验会员存在性、账号状态、验证码，验证码一次性消费。
	SmsLogin(ctx context.Context, data dto.SmsLoginData, client dto.ClientInfo) (vo.LoginResult, error)

	// ResetPassword 通过短信验证码重置密码。
	// - 新密码不能与旧密码相同；重置成功后立即吊销当前会话，所有端需重新登录。
	ResetPassword(ctx context.Context, data dto.ResetPasswordData) error

	// Logout 登出指定会员，删除会话缓存。
	// - 幂等操作：会话不存在时同样视为成功。
	Logout(ctx context.Context, memberID int64) error
}

// authService 是 AuthService 接口的实现。
type authService struct {
	memberRepo  mysql.MemberRepository         // 会员仓库
	sessionRepo redis.SessionTokenRepo         // 会话令牌缓存
	captchaSvc  captcha.CaptchaService         // 验证码服务
	jwtUtil     dependencies.JWTTokenInterface // JWT 工具
	producer    dependencies.LoginLogProducer  // 登录日志事件生产者
	logger      *core.ZapLogger                // 日志记录器
}

// NewAuthService 创建 AuthService 实例。
func NewAuthService(
	memberRepo mysql.MemberRepository,
	sessionRepo redis.SessionTokenRepo,
	captchaSvc captcha.CaptchaService,
	jwtUtil dependencies.JWTTokenInterface,
	producer dependencies.LoginLogProducer,
	logger *core.ZapLogger,
) AuthService {
	return &authService{
		memberRepo:  memberRepo,
		sessionRepo: sessionRepo,
		captchaSvc:  captchaSvc,
		jwtUtil:     jwtUtil,
		producer:    producer,
		logger:      logger,
	}
}

// validatePhone 校验手机号格式。
// - 控制层的绑定校验只保护 HTTP 入口，服务层自身的契约同样要守住。
func validatePhone(phone string) error {
	if !utils.IsValidPhone(phone) {
		return errs.NewBadRequest("手机号格式无效")
	}
	return nil
}

// validatePasswordStrength 校验密码强度（8-20位且同时包含字母和数字）。
func validatePasswordStrength(password string) error {
	if !utils.IsStrongPassword(password) {
		return errs.NewBadRequest("密码须为8-20位且同时包含字母和数字")
	}
	return nil
}

// checkAccountStatus 按账号状态返回对应的业务错误，状态正常时返回 nil。
func checkAccountStatus(member *entities.Member) error {
	switch member.AccountStatus {
	case enums.StatusLocked:
		return errs.ErrAccountLocked
	case enums.StatusUnactivated:
		return errs.ErrAccountInactive
	case enums.StatusCanceled:
		return errs.ErrAccountCanceled
	default:
		return nil
	}
}

// Register 实现接口方法，处理会员注册。
func (s *authService) Register(ctx context.Context, data dto.RegisterData, client dto.ClientInfo) (vo.RegisterResult, error) {
	const operation = "AuthService.Register"
	emptyResult := vo.RegisterResult{}

	// 1. 校验手机号格式与密码强度
	if err := validatePhone(data.Phone); err != nil {
		return emptyResult, err
	}
	if err := validatePasswordStrength(data.Password); err != nil {
		return emptyResult, err
	}

	// 2. 预检手机号是否已注册，先于验证码校验，避免无效注册消耗验证码
	// - 并发窗口内的竞态由 uk_phone 唯一键兜底，仓库层翻译为同一业务错误
	if _, err := s.memberRepo.GetMemberByPhone(ctx, data.Phone); err == nil {
		s.logger.Warn("手机号已注册",
			zap.String("operation", operation),
			zap.String("phone", utils.MaskPhone(data.Phone)),
		)
		return emptyResult, errs.ErrPhoneAlreadyExists
	} else if !errors.Is(err, commonerrors.ErrRepoNotFound) {
		s.logger.Error("查询手机号占用情况失败",
			zap.String("operation", operation),
			zap.String("phone", utils.MaskPhone(data.Phone)),
			zap.Error(err),
		)
		return emptyResult, commonerrors.ErrSystemError
	}

	// 3. 校验注册验证码，校验通过即被一次性消费
	if !s.captchaSvc.Verify(ctx, data.Phone, enums.PurposeRegister, data.VerificationCode) {
		return emptyResult, errs.ErrCaptchaInvalid
	}

	// 4. 哈希密码并创建会员
	hashedPassword, err := utils.SetPassword(data.Password)
	if err != nil {
		s.logger.Error("密码哈希失败", zap.String("operation", operation), zap.Error(err))
		return emptyResult, commonerrors.ErrSystemError
	}

	nickname := data.Nickname
	if nickname == "" {
		// 默认昵称使用脱敏手机号，避免泄露完整号码
		nickname = "会员" + data.Phone[7:]
	}

	now := time.Now()
	member := &entities.Member{
		Phone:         data.Phone,
		Password:      hashedPassword,
		Nickname:      nickname,
		RegisterType:  string(enums.LoginTypeRegister),
		RegisterTime:  now,
		AccountStatus: enums.StatusActive,
	}
	if err := s.memberRepo.CreateMember(ctx, member); err != nil {
		if errors.Is(err, errs.ErrPhoneAlreadyExists) {
			return emptyResult, errs.ErrPhoneAlreadyExists
		}
		s.logger.Error("创建会员失败",
			zap.String("operation", operation),
			zap.String("phone", utils.MaskPhone(data.Phone)),
			zap.Error(err),
		)
		return emptyResult, commonerrors.ErrSystemError
	}

	// 5. 注册即登录：签发令牌并缓存会话
	token, err := s.issueSession(ctx, member)
	if err != nil {
		s.logger.Error("注册后签发会话失败",
			zap.String("operation", operation),
			zap.Int64("memberID", member.ID),
			zap.Error(err),
		)
		return emptyResult, commonerrors.ErrSystemError
	}

	// 6. 异步记录注册事件
	s.producer.SendLoginLogAsync(dto.LoginLogEvent{
		MemberID:    member.ID,
		LoginType:   enums.LoginTypeRegister,
		LoginTime:   now,
		LoginIP:     client.IP,
		DeviceType:  client.DeviceType,
		DeviceID:    client.DeviceID,
		LoginStatus: enums.LoginStatusSuccess,
	})

	s.logger.Info("会员注册成功",
		zap.String("operation", operation),
		zap.Int64("memberID", member.ID),
		zap.String("phone", utils.MaskPhone(member.Phone)),
	)
	return vo.RegisterResult{
		MemberID:     member.ID,
		Phone:        utils.MaskPhone(member.Phone),
		Nickname:     member.Nickname,
		RegisterTime: member.RegisterTime.Format(timeLayout),
		Token:        token,
		ExpiresIn:    int64(s.jwtUtil.TokenTTL().Seconds()),
	}, nil
}

// PasswordLogin 实现接口方法，处理密码登录。
func (s *authService) PasswordLogin(ctx context.Context, data dto.PasswordLoginData, client dto.ClientInfo) (vo.LoginResult, error) {
	const operation = "AuthService.PasswordLogin"
	emptyResult := vo.LoginResult{}

	// 1. 校验手机号格式
	if err := validatePhone(data.Phone); err != nil {
		return emptyResult, err
	}

	// 2. 查找会员
	member, err := s.memberRepo.GetMemberByPhone(ctx, data.Phone)
	if err != nil {
		if errors.Is(err, commonerrors.ErrRepoNotFound) {
			return emptyResult, errs.ErrPhoneNotRegistered
		}
		s.logger.Error("查询会员失败",
			zap.String("operation", operation),
			zap.String("phone", utils.MaskPhone(data.Phone)),
			zap.Error(err),
		)
		return emptyResult, commonerrors.ErrSystemError
	}

	// 3. 检查账号状态
	if err := checkAccountStatus(member); err != nil {
		s.logger.Warn("账号状态不允许登录",
			zap.String("operation", operation),
			zap.Int64("memberID", member.ID),
			zap.Int("status", int(member.AccountStatus)),
		)
		return emptyResult, err
	}

	// 4. 校验密码，失败的尝试记入登录历史
	if err := utils.CheckPassword(member.Password, data.Password); err != nil {
		s.logger.Warn("密码校验失败",
			zap.String("operation", operation),
			zap.Int64("memberID", member.ID),
		)
		s.producer.SendLoginLogAsync(dto.LoginLogEvent{
			MemberID:    member.ID,
			LoginType:   enums.LoginTypePassword,
			LoginTime:   time.Now(),
			LoginIP:     client.IP,
			DeviceType:  client.DeviceType,
			DeviceID:    client.DeviceID,
			LoginStatus: enums.LoginStatusFailed,
			FailReason:  "密码错误",
		})
		return emptyResult, errs.ErrPasswordIncorrect
	}

	// 5. 完成登录
	return s.completeLogin(ctx, operation, member, enums.LoginTypePassword, client)
}

// SmsLogin 实现接口方法，处理短信验证码登录。
func (s *authService) SmsLogin(ctx context.Context, data dto.SmsLoginData, client dto.ClientInfo) (vo.LoginResult, error) {
	const operation = "AuthService.SmsLogin"
	emptyResult := vo.LoginResult{}

	// 1. 校验手机号格式
	if err := validatePhone(data.Phone); err != nil {
		return emptyResult, err
	}

	// 2. 查找会员（短信登录不自动注册，未注册直接报错）
	member, err := s.memberRepo.GetMemberByPhone(ctx, data.Phone)
	if err != nil {
		if errors.Is(err, commonerrors.ErrRepoNotFound) {
			return emptyResult, errs.ErrPhoneNotRegistered
		}
		s.logger.Error("查询会员失败",
			zap.String("operation", operation),
			zap.String("phone", utils.MaskPhone(data.Phone)),
			zap.Error(err),
		)
		return emptyResult, commonerrors.ErrSystemError
	}

	// 3. 检查账号状态
	if err := checkAccountStatus(member); err != nil {
		s.logger.Warn("账号状态不允许登录",
			zap.String("operation", operation),
			zap.Int64("memberID", member.ID),
			zap.Int("status", int(member.AccountStatus)),
		)
		return emptyResult, err
	}

	// 4. 校验登录验证码，失败的尝试记入登录历史
	if !s.captchaSvc.Verify(ctx, data.Phone, enums.PurposeLogin, data.VerificationCode) {
		s.producer.SendLoginLogAsync(dto.LoginLogEvent{
			MemberID:    member.ID,
			LoginType:   enums.LoginTypeSMS,
			LoginTime:   time.Now(),
			LoginIP:     client.IP,
			DeviceType:  client.DeviceType,
			DeviceID:    client.DeviceID,
			LoginStatus: enums.LoginStatusFailed,
			FailReason:  "验证码错误或已过期",
		})
		return emptyResult, errs.ErrCaptchaInvalid
	}

	// 5. 完成登录
	return s.completeLogin(ctx, operation, member, enums.LoginTypeSMS, client)
}

// completeLogin 执行登录收尾：更新最近登录信息、签发会话、投递登录事件。
// - 先落盘再签发：最近登录信息写入失败时不发放令牌，存储故障期间不产生新会话。
func (s *authService) completeLogin(ctx context.Context, operation string, member *entities.Member, loginType enums.LoginType, client dto.ClientInfo) (vo.LoginResult, error) {
	emptyResult := vo.LoginResult{}

	// 返回的"上次登录时间"取本次登录之前的值
	lastLoginTime := ""
	if member.LastLoginTime != nil {
		lastLoginTime = member.LastLoginTime.Format(timeLayout)
	}

	now := time.Now()
	if err := s.memberRepo.UpdateLastLogin(ctx, member.ID, now, client.IP); err != nil {
		s.logger.Error("更新最近登录信息失败",
			zap.String("operation", operation),
			zap.Int64("memberID", member.ID),
			zap.Error(err),
		)
		return emptyResult, commonerrors.ErrSystemError
	}

	token, err := s.issueSession(ctx, member)
	if err != nil {
		s.logger.Error("签发会话失败",
			zap.String("operation", operation),
			zap.Int64("memberID", member.ID),
			zap.Error(err),
		)
		return emptyResult, commonerrors.ErrSystemError
	}

	s.producer.SendLoginLogAsync(dto.LoginLogEvent{
		MemberID:    member.ID,
		LoginType:   loginType,
		LoginTime:   now,
		LoginIP:     client.IP,
		DeviceType:  client.DeviceType,
		DeviceID:    client.DeviceID,
		LoginStatus: enums.LoginStatusSuccess,
	})

	s.logger.Info("会员登录成功",
		zap.String("operation", operation),
		zap.Int64("memberID", member.ID),
		zap.String("loginType", string(loginType)),
	)
	return vo.LoginResult{
		MemberID:      member.ID,
		Phone:         utils.MaskPhone(member.Phone),
		Nickname:      member.Nickname,
		Avatar:        member.Avatar,
		AccountStatus: member.AccountStatus,
		LastLoginTime: lastLoginTime,
		Token:         token,
		ExpiresIn:     int64(s.jwtUtil.TokenTTL().Seconds()),
	}, nil
}

// issueSession 生成访问令牌并缓存为会员的唯一有效会话。
// - 新令牌覆盖旧缓存，实现单会话互踢。
func (s *authService) issueSession(ctx context.Context, member *entities.Member) (string, error) {
	token, err := s.jwtUtil.GenerateToken(member.ID, member.Phone)
	if err != nil {
		return "", err
	}
	if err := s.sessionRepo.CacheToken(ctx, member.ID, token, s.jwtUtil.TokenTTL()); err != nil {
		return "", err
	}
	return token, nil
}

// ResetPassword 实现接口方法，通过验证码重置密码。
func (s *authService) ResetPassword(ctx context.Context, data dto.ResetPasswordData) error {
	const operation = "AuthService.ResetPassword"

	// 1. 校验手机号格式与新密码强度
	if err := validatePhone(data.Phone); err != nil {
		return err
	}
	if err := validatePasswordStrength(data.NewPassword); err != nil {
		return err
	}

	// 2. 校验重置验证码
	if !s.captchaSvc.Verify(ctx, data.Phone, enums.PurposeResetPassword, data.VerificationCode) {
		return errs.ErrCaptchaInvalid
	}

	// 3. 查找会员
	member, err := s.memberRepo.GetMemberByPhone(ctx, data.Phone)
	if err != nil {
		if errors.Is(err, commonerrors.ErrRepoNotFound) {
			return errs.ErrPhoneNotRegistered
		}
		s.logger.Error("查询会员失败",
			zap.String("operation", operation),
			zap.String("phone", utils.MaskPhone(data.Phone)),
			zap.Error(err),
		)
		return commonerrors.ErrSystemError
	}

	// 4. 已注销的账号不允许重置密码
	if member.AccountStatus == enums.StatusCanceled {
		return errs.ErrAccountCanceled
	}

	// 5. 新密码不能与旧密码相同
	if utils.CheckPassword(member.Password, data.NewPassword) == nil {
		return errs.NewBadRequest("新密码不能与旧密码相同")
	}

	// 6. 更新密码哈希
	hashedPassword, err := utils.SetPassword(data.NewPassword)
	if err != nil {
		s.logger.Error("密码哈希失败", zap.String("operation", operation), zap.Error(err))
		return commonerrors.ErrSystemError
	}
	if err := s.memberRepo.UpdatePassword(ctx, member.ID, hashedPassword); err != nil {
		s.logger.Error("更新密码失败",
			zap.String("operation", operation),
			zap.Int64("memberID", member.ID),
			zap.Error(err),
		)
		return commonerrors.ErrSystemError
	}

	// 7. 吊销当前会话，强制所有端重新登录
	if err := s.sessionRepo.RemoveToken(ctx, member.ID); err != nil {
		// 密码已更新成功，吊销失败只记录日志，旧会话最迟在令牌过期后失效
		s.logger.Warn("吊销会话失败",
			zap.String("operation", operation),
			zap.Int64("memberID", member.ID),
			zap.Error(err),
		)
	}

	s.logger.Info("密码重置成功",
		zap.String("operation", operation),
		zap.Int64("memberID", member.ID),
	)
	return nil
}

// Logout 实现接口方法，登出会员。
func (s *authService) Logout(ctx context.Context, memberID int64) error {
	const operation = "AuthService.Logout"

	if err := s.sessionRepo.RemoveToken(ctx, memberID); err != nil {
		// 登出是幂等操作，缓存删除失败不向客户端暴露，令牌最迟在过期后失效
		s.logger.Warn("删除会话缓存失败",
			zap.String("operation", operation),
			zap.Int64("memberID", memberID),
			zap.Error(err),
		)
	}
	return nil
}
