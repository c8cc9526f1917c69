// Package errs 定义业务错误类型与全套业务错误码。
// - 服务层返回 *BusinessError 表达可预期的业务失败，控制层据此映射响应码。
// - 基础设施错误（DB/Redis 故障等）不走本包，统一返回 commonerrors.ErrSystemError。
package errs

import "errors"

// BusinessError 表示可预期的业务失败。
// - Code 是对外暴露的字符串业务码，Message 是面向用户的提示文案。
type BusinessError struct {
	Code    string // 业务错误码，如 "5001"
	Message string // 用户可读的错误信息
}

// Error 实现 error 接口。
func (e *BusinessError) Error() string {
	return e.Message
}

// New 构造一个业务错误。
func New(code, message string) *BusinessError {
	return &BusinessError{Code: code, Message: message}
}

// 业务错误码常量。
const (
	CodeSuccess         = "0000" // 成功
	CodeBadRequest      = "4000" // 参数错误
	CodeUnauthorized    = "4001" // 未认证或令牌失效
	CodeForbidden       = "4003" // 无权访问
	CodeNotFound        = "4004" // 资源不存在
	CodePhoneExists     = "5001" // 手机号已注册
	CodePhoneNotFound   = "5002" // 手机号未注册
	CodePasswordWrong   = "5003" // 密码错误
	CodeCaptchaInvalid  = "5004" // 验证码错误或已过期
	CodeSendTooFrequent = "5005" // 验证码发送过于频繁
	CodeAccountLocked   = "5006" // 账号已锁定
	CodeAccountInactive = "5007" // 账号未激活
	CodeAccountCanceled = "5008" // 账号已注销
	CodeInternalError   = "9000" // 系统内部错误
	CodeSmsSendFailed   = "9003" // 短信发送失败
)

// 预定义的业务错误，服务层直接返回这些哨兵值。
var (
	ErrPhoneAlreadyExists = New(CodePhoneExists, "手机号已注册")
	ErrPhoneNotRegistered = New(CodePhoneNotFound, "手机号未注册")
	ErrPasswordIncorrect  = New(CodePasswordWrong, "密码错误")
	ErrCaptchaInvalid     = New(CodeCaptchaInvalid, "验证码错误或已过期")
	ErrSendTooFrequent    = New(CodeSendTooFrequent, "验证码发送过于频繁，请稍后再试")
	ErrAccountLocked      = New(CodeAccountLocked, "账号已被锁定")
	ErrAccountInactive    = New(CodeAccountInactive, "账号未激活")
	ErrAccountCanceled    = New(CodeAccountCanceled, "账号已注销")
	ErrUnauthorized       = New(CodeUnauthorized, "未登录或登录已失效")
	ErrSmsSendFailed      = New(CodeSmsSendFailed, "短信发送失败，请稍后重试")
)

// NewBadRequest 构造参数错误。
func NewBadRequest(message string) *BusinessError {
	return New(CodeBadRequest, message)
}

// NewNotFound 构造资源不存在错误。
func NewNotFound(message string) *BusinessError {
	return New(CodeNotFound, message)
}

// NewForbidden 构造无权访问错误。
func NewForbidden(message string) *BusinessError {
	return New(CodeForbidden, message)
}

// AsBusinessError 判断 err 是否为业务错误，是则返回具体类型。
func AsBusinessError(err error) (*BusinessError, bool) {
	var bizErr *BusinessError
	if errors.As(err, &bizErr) {
		return bizErr, true
	}
	return nil, false
}
