package vo

import "github.com/Xushengqwer/member_hub/models/enums"

// LoginHistoryVO 登录历史视图。
// - IP 脱敏返回，失败原因仅在失败记录上填充。
type LoginHistoryVO struct {
	LoginType   enums.LoginType `json:"login_type"`   // 登录方式
	LoginTime   string          `json:"login_time"`   // 登录时间，格式 YYYY-MM-DD HH:mm:ss
	LoginIP     string          `json:"login_ip"`     // 登录IP（脱敏）
	DeviceType  string          `json:"device_type"`  // 设备类型
	LoginStatus int             `json:"login_status"` // 登录结果：1-成功 2-失败
	FailReason  string          `json:"fail_reason"`  // 失败原因
}

// CaptchaSendResult 验证码发送结果。
// - 仅在降级模式下回显验证码，供联调环境使用；生产模式该字段为空。
type CaptchaSendResult struct {
	Code string `json:"code,omitempty"` // 降级模式回显的验证码
}
