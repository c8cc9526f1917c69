package controller

import (
	"net/http"

	"github.com/Xushengqwer/go-common/core"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Xushengqwer/member_hub/errs"
	"github.com/Xushengqwer/member_hub/models/dto"
	"github.com/Xushengqwer/member_hub/models/enums"
	"github.com/Xushengqwer/member_hub/response"
	"github.com/Xushengqwer/member_hub/service/captcha"
	"github.com/Xushengqwer/member_hub/utils"
)

// CaptchaController 处理与短信验证码发送相关的 HTTP 请求。
// 依赖于 captcha.CaptchaService 来执行核心业务逻辑。
type CaptchaController struct {
	captchaService captcha.CaptchaService // captchaService: 验证码服务的实例。
	logger         *core.ZapLogger        // logger: 日志记录器。
}

// NewCaptchaController 创建一个新的 CaptchaController 实例。
func NewCaptchaController(captchaService captcha.CaptchaService, logger *core.ZapLogger) *CaptchaController {
	return &CaptchaController{
		captchaService: captchaService,
		logger:         logger,
	}
}

// SendCaptchaHandler 处理发送短信验证码的请求。
// @Summary 发送短信验证码
// @Description 为指定手机号和用途发送6位验证码，同一手机号一小时内最多发送5次；降级模式下验证码随响应回显。
// @Tags 验证码
// @Accept json
// @Produce json
// @Param body body dto.SendCaptchaRequest true "发送信息 (手机号、用途 REGISTER/LOGIN/RESET_PASSWORD)"
// @Success 200 {object} docs.SwaggerAPICaptchaSendResponse "发送成功；降级模式下 data.code 为验证码"
// @Failure 400 {object} docs.SwaggerAPIEmptyResponse "请求参数无效或发送过于频繁 (5005)"
// @Failure 500 {object} docs.SwaggerAPIEmptyResponse "系统内部错误或短信发送失败 (9003)"
// @Router /api/v1/member-hub/captcha/send [post]
func (ctrl *CaptchaController) SendCaptchaHandler(c *gin.Context) {
	const operation = "CaptchaController.SendCaptchaHandler"

	var sendRequest dto.SendCaptchaRequest
	if err := c.ShouldBindJSON(&sendRequest); err != nil {
		ctrl.logger.Warn("发送验证码请求参数绑定失败",
			zap.String("operation", operation),
			zap.Error(err),
		)
		response.RespondError(c, http.StatusBadRequest, errs.CodeBadRequest, "输入参数无效")
		return
	}

	purpose, err := enums.CodePurposeFromString(sendRequest.Purpose)
	if err != nil {
		ctrl.logger.Warn("无效的验证码用途",
			zap.String("operation", operation),
			zap.String("purpose", sendRequest.Purpose),
		)
		response.RespondError(c, http.StatusBadRequest, errs.CodeBadRequest, "无效的验证码用途")
		return
	}

	result, err := ctrl.captchaService.Send(c.Request.Context(), sendRequest.Phone, purpose)
	if err != nil {
		respondServiceError(c, ctrl.logger, operation, err)
		return
	}

	ctrl.logger.Info("验证码发送请求处理完成",
		zap.String("operation", operation),
		zap.String("phone", utils.MaskPhone(sendRequest.Phone)),
		zap.String("purpose", string(purpose)),
	)
	response.RespondSuccess(c, result, "验证码发送成功")
}

// RegisterRoutes 注册验证码相关的路由。
func (ctrl *CaptchaController) RegisterRoutes(group *gin.RouterGroup) {
	captchaGroup := group.Group("/captcha")
	{
		captchaGroup.POST("/send", ctrl.SendCaptchaHandler)
	}
}
