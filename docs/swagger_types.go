package docs

// 这个文件定义了专门用于 Swagger 文档注解的类型。
// 由于 swaggo/swag 工具目前不支持直接解析泛型类型（如 response.APIResponse[T]），
// 我们需要为每个在控制器注解中使用的具体泛型实例化类型定义一个非泛型的包装器。

import (
	"github.com/Xushengqwer/member_hub/models/vo"
	"github.com/Xushengqwer/member_hub/response"
)

// --- 成功响应包装类型 ---

// SwaggerAPIRegisterResponse 包装了 response.APIResponse[vo.RegisterResult]
// 用于 AuthController.RegisterHandler
type SwaggerAPIRegisterResponse struct {
	response.APIResponse[vo.RegisterResult]
}

// SwaggerAPILoginResponse 包装了 response.APIResponse[vo.LoginResult]
// 用于 AuthController.PasswordLoginHandler, AuthController.SmsLoginHandler
type SwaggerAPILoginResponse struct {
	response.APIResponse[vo.LoginResult]
}

// SwaggerAPIMemberInfoResponse 包装了 response.APIResponse[vo.MemberInfoVO]
// 用于 MemberController.GetMemberInfoHandler, MemberController.UpdateMemberInfoHandler
type SwaggerAPIMemberInfoResponse struct {
	response.APIResponse[vo.MemberInfoVO]
}

// SwaggerAPILoginHistoryResponse 包装了 response.APIResponse[[]vo.LoginHistoryVO]
// 用于 MemberController.GetLoginHistoryHandler
type SwaggerAPILoginHistoryResponse struct {
	response.APIResponse[[]vo.LoginHistoryVO]
}

// SwaggerAPIAddressResponse 包装了 response.APIResponse[vo.AddressVO]
// 用于 AddressController.AddAddressHandler, AddressController.UpdateAddressHandler
type SwaggerAPIAddressResponse struct {
	response.APIResponse[vo.AddressVO]
}

// SwaggerAPIAddressListResponse 包装了 response.APIResponse[[]vo.AddressVO]
// 用于 AddressController.ListAddressesHandler
type SwaggerAPIAddressListResponse struct {
	response.APIResponse[[]vo.AddressVO]
}

// SwaggerAPICaptchaSendResponse 包装了 response.APIResponse[vo.CaptchaSendResult]
// 用于 CaptchaController.SendCaptchaHandler
type SwaggerAPICaptchaSendResponse struct {
	response.APIResponse[vo.CaptchaSendResult]
}

// SwaggerAPIEmptyResponse 包装了 response.APIResponse[vo.Empty] (用于表示成功但无数据返回的情况)
// 用于登出、重置密码、设置默认地址、删除地址等接口
type SwaggerAPIEmptyResponse struct {
	response.APIResponse[vo.Empty]
}
