// Package response 定义统一的 API 响应结构和写出辅助函数。
// - 所有接口统一返回 {code, message, data, timestamp} 信封，code 为字符串业务码。
package response

import (
	"net/http"
	"time"

	"github.com/Xushengqwer/member_hub/errs"
	"github.com/gin-gonic/gin"
)

// APIResponse 是所有接口的统一响应信封。
type APIResponse[T any] struct {
	Code      string `json:"code"`           // 业务码，"0000" 表示成功
	Message   string `json:"message"`        // 提示信息
	Data      T      `json:"data,omitempty"` // 业务数据，失败时省略
	Timestamp int64  `json:"timestamp"`      // 服务端毫秒时间戳
}

// RespondSuccess 写出成功响应（HTTP 200 + 业务码 "0000"）。
func RespondSuccess[T any](c *gin.Context, data T, message string) {
	if message == "" {
		message = "success"
	}
	c.JSON(http.StatusOK, APIResponse[T]{
		Code:      errs.CodeSuccess,
		Message:   message,
		Data:      data,
		Timestamp: time.Now().UnixMilli(),
	})
}

// RespondError 写出失败响应，显式指定 HTTP 状态码与业务码。
func RespondError(c *gin.Context, httpStatus int, code, message string) {
	c.JSON(httpStatus, APIResponse[any]{
		Code:      code,
		Message:   message,
		Timestamp: time.Now().UnixMilli(),
	})
}

// RespondBusinessError 根据业务错误写出失败响应，HTTP 状态码由业务码推导。
// - 9xxx 映射 500，4001 映射 401，4003 映射 403，4004 映射 404，其余均为 400。
func RespondBusinessError(c *gin.Context, bizErr *errs.BusinessError) {
	RespondError(c, httpStatusOf(bizErr.Code), bizErr.Code, bizErr.Message)
}

func httpStatusOf(code string) int {
	switch code {
	case errs.CodeUnauthorized:
		return http.StatusUnauthorized
	case errs.CodeForbidden:
		return http.StatusForbidden
	case errs.CodeNotFound:
		return http.StatusNotFound
	case errs.CodeInternalError, errs.CodeSmsSendFailed:
		return http.StatusInternalServerError
	default:
		return http.StatusBadRequest
	}
}
