package utils

import (
	"fmt"

	"github.com/Xushengqwer/member_hub/models/enums"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// ValidateChinesePhone 校验是否为中国大陆手机号。
// fl: validator.FieldLevel 包含了当前校验字段的级别信息和值。
func ValidateChinesePhone(fl validator.FieldLevel) bool {
	return IsValidPhone(fl.Field().String())
}

// ValidatePassword 校验密码格式。
// 要求：长度在8到20位之间，并且必须同时包含至少一个字母和一个数字。
func ValidatePassword(fl validator.FieldLevel) bool {
	return IsStrongPassword(fl.Field().String())
}

// ValidateCaptcha 校验短信验证码格式（6位纯数字）。
func ValidateCaptcha(fl validator.FieldLevel) bool {
	return IsValidVerificationCode(fl.Field().String())
}

// ValidGender 校验性别枚举值是否有效。
// 此校验器适用于指针类型的性别字段 (例如 *enums.Gender)。
// 1. 先检查字段是否为零值 (例如 nil 指针) 或字段接口是否为 nil。如果是，则认为是有效的（通常表示该字段是可选的且未提供）。
// 2. 尝试将字段值断言为 *enums.Gender 类型。如果断言失败，则无效。
// 3. 如果断言成功，解引用指针并检查其值是否为预定义的有效性别枚举值之一。
func ValidGender(fl validator.FieldLevel) bool {
	field := fl.Field()
	// 如果字段是可选的 (omitempty)，且未提供值 (即为 nil)，则视为有效
	if field.IsZero() || field.Interface() == nil {
		return true
	}
	val, ok := field.Interface().(*enums.Gender)
	if !ok { // 类型不匹配，校验失败
		return false
	}
	return *val == enums.Female || *val == enums.Male || *val == enums.Unknown
}

// RegisterCustomValidators 将所有自定义的校验函数注册到 Gin 的 validator 引擎中。
// 这样就可以在 DTO 的 struct tag 中使用这些自定义的校验标签了。
// 例如: `binding:"ChinesePhone"` 或 `binding:"Password"`
func RegisterCustomValidators() error {
	// 获取 Gin 使用的 validator 实例
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		// 定义校验标签名和对应的校验函数
		validations := map[string]validator.Func{
			"ChinesePhone": ValidateChinesePhone, // 手机号校验
			"Password":     ValidatePassword,     // 密码格式校验
			"Captcha":      ValidateCaptcha,      // 短信验证码格式校验
			"Gender":       ValidGender,          // 性别枚举校验
		}

		// 遍历并注册所有自定义校验器
		for tag, validation := range validations {
			if err := v.RegisterValidation(tag, validation); err != nil {
				// 如果注册失败，返回错误信息，这通常会导致应用启动失败
				return fmt.Errorf("注册验证器 '%s' 失败: %w", tag, err)
			}
		}
	}
	return nil // 所有校验器注册成功
}
