package dto

// SendCaptchaRequest 定义发送短信验证码的请求体
type SendCaptchaRequest struct {
	Phone   string `json:"phone" binding:"required,ChinesePhone"`                          // 目标手机号
	Purpose string `json:"purpose" binding:"required,oneof=REGISTER LOGIN RESET_PASSWORD"` // 验证码用途
}
