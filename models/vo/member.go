package vo

import "github.com/Xushengqwer/member_hub/models/enums"

// MemberInfoVO 会员资料视图。
// - 手机号始终脱敏返回，密码等敏感字段永不外泄。
type MemberInfoVO struct {
	MemberID      int64               `json:"member_id"`      // 会员ID
	Phone         string              `json:"phone"`          // 手机号（脱敏）
	Nickname      string              `json:"nickname"`       // 昵称
	Avatar        string              `json:"avatar"`         // 头像地址
	Gender        enums.Gender        `json:"gender"`         // 性别
	Birthday      string              `json:"birthday"`       // 出生日期，格式 YYYY-MM-DD，未设置为空
	AccountStatus enums.AccountStatus `json:"account_status"` // 账号状态
	RegisterTime  string              `json:"register_time"`  // 注册时间
}
