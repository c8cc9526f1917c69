package enums

import "fmt"

// CodePurpose 验证码用途枚举
// - 验证码以 (手机号, 用途) 为维度隔离，注册码不能用于登录或重置密码。
type CodePurpose string

const (
	PurposeRegister      CodePurpose = "REGISTER"       // 注册
	PurposeLogin         CodePurpose = "LOGIN"          // 短信登录
	PurposeResetPassword CodePurpose = "RESET_PASSWORD" // 重置密码
)

// CodePurposeFromString 将字符串转换为 CodePurpose 枚举。
// - 不认识的取值返回错误，由调用方决定如何响应（通常是参数错误）。
func CodePurposeFromString(s string) (CodePurpose, error) {
	switch CodePurpose(s) {
	case PurposeRegister, PurposeLogin, PurposeResetPassword:
		return CodePurpose(s), nil
	default:
		return "", fmt.Errorf("无效的验证码用途: %q", s)
	}
}
