package initialization

import (
	"github.com/Xushengqwer/member_hub/repository/mysql"
	"github.com/Xushengqwer/member_hub/repository/redis"
	"github.com/Xushengqwer/member_hub/service/address"
	"github.com/Xushengqwer/member_hub/service/auth"
	"github.com/Xushengqwer/member_hub/service/captcha"
	"github.com/Xushengqwer/member_hub/service/loginlog"
	"github.com/Xushengqwer/member_hub/service/member"
)

// AppServices 封装了应用所需的所有服务层实例。
type AppServices struct {
	AuthService      auth.AuthService       // 注册、登录、密码重置、登出
	CaptchaService   captcha.CaptchaService // 验证码发送与校验
	MemberService    member.MemberService   // 会员资料与登录历史
	AddressService   address.AddressService // 收货地址管理
	LoginLogConsumer *loginlog.Consumer     // 登录日志队列消费者
	SessionTokenRepo redis.SessionTokenRepo // 会话令牌缓存，供认证中间件使用
}

// SetupServices 初始化所有仓库层和服务层实例。
func SetupServices(deps *AppDependencies) *AppServices {
	// 1. 初始化 MySQL 仓库实例
	memberRepo := mysql.NewMemberRepository(deps.DB)
	addressRepo := mysql.NewAddressRepository(deps.DB)
	loginLogRepo := mysql.NewLoginLogRepository(deps.DB)

	// 2. 初始化 Redis 仓库实例
	codeRepo := redis.NewCodeRepo(deps.RedisClient)
	sessionTokenRepo := redis.NewSessionTokenRepo(deps.RedisClient)

	// 3. 初始化服务层实例

	// 验证码服务被认证服务依赖，先初始化
	captchaService := captcha.NewCaptchaService(
		codeRepo,
		deps.SMSClient,
		&deps.Config.SMSConfig,
		deps.Logger,
	)

	authService := auth.NewAuthService(
		memberRepo,
		sessionTokenRepo,
		captchaService,
		deps.JwtToken,
		deps.LoginLogProducer,
		deps.Logger,
	)

	memberService := member.NewMemberService(
		memberRepo,
		loginLogRepo,
		deps.Logger,
	)

	addressService := address.NewAddressService(
		addressRepo,
		deps.DB,
		deps.Logger,
	)

	// 登录日志消费者与生产者共用同一个 Redis 队列
	loginLogConsumer := loginlog.NewConsumer(
		deps.RedisClient,
		loginLogRepo,
		deps.Logger,
	)

	return &AppServices{
		AuthService:      authService,
		CaptchaService:   captchaService,
		MemberService:    memberService,
		AddressService:   addressService,
		LoginLogConsumer: loginLogConsumer,
		SessionTokenRepo: sessionTokenRepo,
	}
}
