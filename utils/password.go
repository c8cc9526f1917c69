package utils

import (
	"regexp"
	"unicode"

	"golang.org/x/crypto/bcrypt"
)

var (
	// phoneNumberRegex 预编译的中国大陆手机号正则表达式，用于提升校验性能。
	// 规则：以1开头，第二位是3到9之间的数字，后面跟9个数字。
	phoneNumberRegex = regexp.MustCompile(`^1[3-9]\d{9}$`)

	// verificationCodeRegex 预编译的短信验证码正则表达式（6位纯数字）。
	verificationCodeRegex = regexp.MustCompile(`^\d{6}$`)
)

// SetPassword 生成哈希密码（使用 bcrypt 哈希）
func SetPassword(password string) (string, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashedPassword), nil
}

// CheckPassword 校验用户输入的密码是否与存储的哈希密码匹配
func CheckPassword(hashedPassword, password string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
	return err
}

// IsValidPhone 校验是否为中国大陆手机号。
func IsValidPhone(phone string) bool {
	return phoneNumberRegex.MatchString(phone)
}

// IsValidVerificationCode 校验短信验证码格式（6位纯数字）。
func IsValidVerificationCode(code string) bool {
	return verificationCodeRegex.MatchString(code)
}

// IsStrongPassword 校验密码强度。
// 要求：长度在8到20位之间，并且必须同时包含至少一个字母和一个数字。
func IsStrongPassword(pwd string) bool {
	length := len(pwd)
	if length < 8 || length > 20 { // 检查长度是否符合要求
		return false
	}
	var hasLetter, hasDigit bool // 标记是否包含字母和数字
	for _, char := range pwd {   // 遍历密码中的每个字符
		if unicode.IsLetter(char) { // 判断是否为字母
			hasLetter = true
		} else if unicode.IsDigit(char) { // 判断是否为数字
			hasDigit = true
		}
		if hasLetter && hasDigit { // 如果同时包含字母和数字，则校验通过
			return true
		}
	}
	return false // 如果遍历完仍未同时满足，则校验失败
}
