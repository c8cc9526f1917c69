package dto

// RegisterData 定义手机号注册的数据传输对象
type RegisterData struct {
	Phone            string `json:"phone" binding:"required,ChinesePhone"`       // 手机号，必填
	Password         string `json:"password" binding:"required,Password"`        // 密码，8-20位且同时包含字母和数字
	VerificationCode string `json:"verificationCode" binding:"required,Captcha"` // 6位数字验证码
	Nickname         string `json:"nickname" binding:"omitempty,max=64"`         // 昵称，可选，缺省使用脱敏手机号
}

// PasswordLoginData 定义账号密码登录的数据传输对象
type PasswordLoginData struct {
	Phone    string `json:"phone" binding:"required,ChinesePhone"` // 手机号，必填
	Password string `json:"password" binding:"required"`           // 密码，必填
}

// SmsLoginData 定义短信验证码登录的数据传输对象
type SmsLoginData struct {
	Phone            string `json:"phone" binding:"required,ChinesePhone"`       // 手机号，必填
	VerificationCode string `json:"verificationCode" binding:"required,Captcha"` // 6位数字验证码
}

// ResetPasswordData 定义重置密码的数据传输对象
type ResetPasswordData struct {
	Phone            string `json:"phone" binding:"required,ChinesePhone"`       // 手机号，必填
	VerificationCode string `json:"verificationCode" binding:"required,Captcha"` // 6位数字验证码
	NewPassword      string `json:"newPassword" binding:"required,Password"`     // 新密码
}

// ClientInfo 描述发起请求的客户端环境，由控制器从请求中提取后传给服务层。
// - 服务层不直接接触 HTTP 请求对象。
type ClientInfo struct {
	IP         string // 客户端真实IP
	DeviceType string // 设备类型（IOS/ANDROID/WEB/UNKNOWN）
	DeviceID   string // 设备唯一标识，可为空
}
