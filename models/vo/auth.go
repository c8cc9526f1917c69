package vo

import "github.com/Xushengqwer/member_hub/models/enums"

// RegisterResult 注册成功后的返回视图。
// - 注册即登录：直接携带访问令牌，客户端无需再次调用登录接口。
type RegisterResult struct {
	MemberID     int64  `json:"member_id"`     // 会员ID
	Phone        string `json:"phone"`         // 手机号（脱敏）
	Nickname     string `json:"nickname"`      // 昵称
	RegisterTime string `json:"register_time"` // 注册时间，格式 YYYY-MM-DD HH:mm:ss
	Token        string `json:"token"`         // 访问令牌
	ExpiresIn    int64  `json:"expires_in"`    // 令牌有效期（秒）
}

// LoginResult 登录成功后的返回视图。
type LoginResult struct {
	MemberID      int64               `json:"member_id"`       // 会员ID
	Phone         string              `json:"phone"`           // 手机号（脱敏）
	Nickname      string              `json:"nickname"`        // 昵称
	Avatar        string              `json:"avatar"`          // 头像地址
	AccountStatus enums.AccountStatus `json:"account_status"`  // 账号状态
	LastLoginTime string              `json:"last_login_time"` // 上次登录时间，首次登录为空
	Token         string              `json:"token"`           // 访问令牌
	ExpiresIn     int64               `json:"expires_in"`      // 令牌有效期（秒）
}
