package enums

// LoginType 登录方式枚举，写入登录日志的 login_type 字段
type LoginType string

const (
	LoginTypeRegister LoginType = "REGISTER" // 注册即登录
	LoginTypePassword LoginType = "PASSWORD" // 账号密码登录
	LoginTypeSMS      LoginType = "SMS"      // 短信验证码登录
)

// 登录日志的 login_status 字段取值
const (
	LoginStatusSuccess = 1 // 成功
	LoginStatusFailed  = 2 // 失败
)
