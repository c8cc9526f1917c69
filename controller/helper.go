package controller

import (
	"net/http"

	"github.com/Xushengqwer/go-common/commonerrors"
	"github.com/Xushengqwer/go-common/core"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Xushengqwer/member_hub/errs"
	"github.com/Xushengqwer/member_hub/middleware"
	"github.com/Xushengqwer/member_hub/response"
)

// respondServiceError 将服务层返回的错误统一写出为 API 响应。
// - 业务错误按错误码映射 HTTP 状态；其余错误（含 commonerrors.ErrSystemError）一律按系统内部错误处理。
func respondServiceError(c *gin.Context, logger *core.ZapLogger, operation string, err error) {
	if bizErr, ok := errs.AsBusinessError(err); ok {
		logger.Warn("服务返回业务错误",
			zap.String("operation", operation),
			zap.String("code", bizErr.Code),
			zap.String("message", bizErr.Message),
		)
		response.RespondBusinessError(c, bizErr)
		return
	}
	logger.Error("服务返回系统错误",
		zap.String("operation", operation),
		zap.Error(err),
	)
	response.RespondError(c, http.StatusInternalServerError, errs.CodeInternalError, commonerrors.ErrSystemError.Error())
}

// requireMemberID 从上下文取出认证会员 ID，取不到时写出 401 并返回 false。
func requireMemberID(c *gin.Context) (int64, bool) {
	memberID, ok := middleware.MemberIDFromContext(c)
	if !ok {
		response.RespondError(c, http.StatusUnauthorized, errs.CodeUnauthorized, errs.ErrUnauthorized.Message)
		return 0, false
	}
	return memberID, true
}
