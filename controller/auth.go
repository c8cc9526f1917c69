package controller

import (
	"net/http"

	"github.com/Xushengqwer/go-common/core"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Xushengqwer/member_hub/dependencies"
	"github.com/Xushengqwer/member_hub/errs"
	"github.com/Xushengqwer/member_hub/middleware"
	"github.com/Xushengqwer/member_hub/models/dto"
	"github.com/Xushengqwer/member_hub/repository/redis"
	"github.com/Xushengqwer/member_hub/response"
	"github.com/Xushengqwer/member_hub/service/auth"
	"github.com/Xushengqwer/member_hub/utils"
)

// AuthController 处理与会员注册、登录、密码重置和登出相关的 HTTP 请求。
// 依赖于 auth.AuthService 来执行核心业务逻辑。
type AuthController struct {
	authService auth.AuthService               // authService: 认证服务的实例。
	jwtUtil     dependencies.JWTTokenInterface // jwtUtil: JWT 工具，用于受保护路由的认证中间件。
	sessionRepo redis.SessionTokenRepo         // sessionRepo: 会话缓存，用于受保护路由的认证中间件。
	logger      *core.ZapLogger                // logger: 日志记录器。
}

// NewAuthController 创建一个新的 AuthController 实例。
func NewAuthController(
	authService auth.AuthService,
	jwtUtil dependencies.JWTTokenInterface,
	sessionRepo redis.SessionTokenRepo,
	logger *core.ZapLogger,
) *AuthController {
	return &AuthController{
		authService: authService,
		jwtUtil:     jwtUtil,
		sessionRepo: sessionRepo,
		logger:      logger,
	}
}

// RegisterHandler 处理会员注册请求。
// @Summary 会员注册
// @Description 通过手机号、密码和短信验证码注册新会员，注册成功即返回访问令牌。
// @Tags 认证
// @Accept json
// @Produce json
// @Param body body dto.RegisterData true "注册信息 (手机号、密码、验证码、可选昵称)"
// @Success 200 {object} docs.SwaggerAPIRegisterResponse "注册成功，返回会员信息与访问令牌"
// @Failure 400 {object} docs.SwaggerAPIEmptyResponse "请求参数无效或验证码错误 (5004)、手机号已注册 (5001)"
// @Failure 500 {object} docs.SwaggerAPIEmptyResponse "系统内部错误"
// @Router /api/v1/member-hub/auth/register [post]
func (ctrl *AuthController) RegisterHandler(c *gin.Context) {
	const operation = "AuthController.RegisterHandler"

	var registerData dto.RegisterData
	if err := c.ShouldBindJSON(&registerData); err != nil {
		ctrl.logger.Warn("注册请求参数绑定失败",
			zap.String("operation", operation),
			zap.Error(err),
		)
		response.RespondError(c, http.StatusBadRequest, errs.CodeBadRequest, "输入参数无效")
		return
	}

	client := utils.ExtractClientInfo(c)
	result, err := ctrl.authService.Register(c.Request.Context(), registerData, client)
	if err != nil {
		respondServiceError(c, ctrl.logger, operation, err)
		return
	}

	ctrl.logger.Info("会员注册成功",
		zap.String("operation", operation),
		zap.Int64("memberID", result.MemberID),
	)
	response.RespondSuccess(c, result, "注册成功")
}

// PasswordLoginHandler 处理账号密码登录请求。
// @Summary 密码登录
// @Description 会员通过手机号和密码登录，成功后返回访问令牌；新令牌会使同账号的旧会话失效。
// @Tags 认证
// @Accept json
// @Produce json
// @Param body body dto.PasswordLoginData true "登录信息 (手机号、密码)"
// @Success 200 {object} docs.SwaggerAPILoginResponse "登录成功，返回会员信息与访问令牌"
// @Failure 400 {object} docs.SwaggerAPIEmptyResponse "手机号未注册 (5002)、密码错误 (5003)、账号状态异常 (5006/5007/5008)"
// @Failure 500 {object} docs.SwaggerAPIEmptyResponse "系统内部错误"
// @Router /api/v1/member-hub/auth/login/password [post]
func (ctrl *AuthController) PasswordLoginHandler(c *gin.Context) {
	const operation = "AuthController.PasswordLoginHandler"

	var loginData dto.PasswordLoginData
	if err := c.ShouldBindJSON(&loginData); err != nil {
		ctrl.logger.Warn("密码登录请求参数绑定失败",
			zap.String("operation", operation),
			zap.Error(err),
		)
		response.RespondError(c, http.StatusBadRequest, errs.CodeBadRequest, "输入参数无效")
		return
	}

	client := utils.ExtractClientInfo(c)
	result, err := ctrl.authService.PasswordLogin(c.Request.Context(), loginData, client)
	if err != nil {
		respondServiceError(c, ctrl.logger, operation, err)
		return
	}

	ctrl.logger.Info("密码登录成功",
		zap.String("operation", operation),
		zap.Int64("memberID", result.MemberID),
	)
	response.RespondSuccess(c, result, "登录成功")
}

// SmsLoginHandler 处理短信验证码登录请求。
// @Summary 短信验证码登录
// @Description 会员通过手机号和短信验证码登录，验证码一次性使用；未注册的手机号不会自动注册。
// @Tags 认证
// @Accept json
// @Produce json
// @Param body body dto.SmsLoginData true "登录信息 (手机号、验证码)"
// @Success 200 {object} docs.SwaggerAPILoginResponse "登录成功，返回会员信息与访问令牌"
// @Failure 400 {object} docs.SwaggerAPIEmptyResponse "手机号未注册 (5002)、验证码错误或已过期 (5004)、账号状态异常 (5006/5007/5008)"
// @Failure 500 {object} docs.SwaggerAPIEmptyResponse "系统内部错误"
// @Router /api/v1/member-hub/auth/login/sms [post]
func (ctrl *AuthController) SmsLoginHandler(c *gin.Context) {
	const operation = "AuthController.SmsLoginHandler"

	var loginData dto.SmsLoginData
	if err := c.ShouldBindJSON(&loginData); err != nil {
		ctrl.logger.Warn("短信登录请求参数绑定失败",
			zap.String("operation", operation),
			zap.Error(err),
		)
		response.RespondError(c, http.StatusBadRequest, errs.CodeBadRequest, "输入参数无效")
		return
	}

	client := utils.ExtractClientInfo(c)
	result, err := ctrl.authService.SmsLogin(c.Request.Context(), loginData, client)
	if err != nil {
		respondServiceError(c, ctrl.logger, operation, err)
		return
	}

	ctrl.logger.Info("短信登录成功",
		zap.String("operation", operation),
		zap.Int64("memberID", result.MemberID),
	)
	response.RespondSuccess(c, result, "登录成功")
}

// ResetPasswordHandler 处理重置密码请求。
// @Summary 重置密码
// @Description 通过短信验证码重置密码，重置成功后当前会话立即失效，需重新登录。
// @Tags 认证
// @Accept json
// @Produce json
// @Param body body dto.ResetPasswordData true "重置信息 (手机号、验证码、新密码)"
// @Success 200 {object} docs.SwaggerAPIEmptyResponse "重置成功"
// @Failure 400 {object} docs.SwaggerAPIEmptyResponse "验证码错误 (5004)、手机号未注册 (5002)、新密码与旧密码相同 (4000)"
// @Failure 500 {object} docs.SwaggerAPIEmptyResponse "系统内部错误"
// @Router /api/v1/member-hub/auth/password/reset [post]
func (ctrl *AuthController) ResetPasswordHandler(c *gin.Context) {
	const operation = "AuthController.ResetPasswordHandler"

	var resetData dto.ResetPasswordData
	if err := c.ShouldBindJSON(&resetData); err != nil {
		ctrl.logger.Warn("重置密码请求参数绑定失败",
			zap.String("operation", operation),
			zap.Error(err),
		)
		response.RespondError(c, http.StatusBadRequest, errs.CodeBadRequest, "输入参数无效")
		return
	}

	if err := ctrl.authService.ResetPassword(c.Request.Context(), resetData); err != nil {
		respondServiceError(c, ctrl.logger, operation, err)
		return
	}

	response.RespondSuccess[any](c, nil, "密码重置成功，请重新登录")
}

// LogoutHandler 处理登出请求。
// @Summary 登出
// @Description 登出当前会员，删除服务端会话缓存；操作幂等。
// @Tags 认证
// @Produce json
// @Security BearerAuth
// @Success 200 {object} docs.SwaggerAPIEmptyResponse "登出成功"
// @Failure 401 {object} docs.SwaggerAPIEmptyResponse "未登录或登录已失效"
// @Router /api/v1/member-hub/auth/logout [post]
func (ctrl *AuthController) LogoutHandler(c *gin.Context) {
	const operation = "AuthController.LogoutHandler"

	memberID, ok := requireMemberID(c)
	if !ok {
		return
	}

	if err := ctrl.authService.Logout(c.Request.Context(), memberID); err != nil {
		respondServiceError(c, ctrl.logger, operation, err)
		return
	}

	ctrl.logger.Info("会员登出成功",
		zap.String("operation", operation),
		zap.Int64("memberID", memberID),
	)
	response.RespondSuccess[any](c, nil, "登出成功")
}

// RegisterRoutes 注册认证相关的路由。
func (ctrl *AuthController) RegisterRoutes(group *gin.RouterGroup) {
	authGroup := group.Group("/auth")
	{
		authGroup.POST("/register", ctrl.RegisterHandler)
		authGroup.POST("/login/password", ctrl.PasswordLoginHandler)
		authGroup.POST("/login/sms", ctrl.SmsLoginHandler)
		authGroup.POST("/password/reset", ctrl.ResetPasswordHandler)

		// 登出需要已登录
		authGroup.POST("/logout",
			middleware.AuthMiddleware(ctrl.jwtUtil, ctrl.sessionRepo, ctrl.logger),
			ctrl.LogoutHandler,
		)
	}
}
