package controller

import (
	"net/http"
	"strconv"

	"github.com/Xushengqwer/go-common/core"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Xushengqwer/member_hub/dependencies"
	"github.com/Xushengqwer/member_hub/errs"
	"github.com/Xushengqwer/member_hub/middleware"
	"github.com/Xushengqwer/member_hub/models/dto"
	"github.com/Xushengqwer/member_hub/repository/redis"
	"github.com/Xushengqwer/member_hub/response"
	"github.com/Xushengqwer/member_hub/service/member"
)

// MemberController 处理与会员资料和登录历史相关的 HTTP 请求。
// 依赖于 member.MemberService 来执行核心业务逻辑。
type MemberController struct {
	memberService member.MemberService           // memberService: 会员服务的实例。
	jwtUtil       dependencies.JWTTokenInterface // jwtUtil: JWT 工具，用于认证中间件。
	sessionRepo   redis.SessionTokenRepo         // sessionRepo: 会话缓存，用于认证中间件。
	logger        *core.ZapLogger                // logger: 日志记录器。
}

// NewMemberController 创建一个新的 MemberController 实例。
func NewMemberController(
	memberService member.MemberService,
	jwtUtil dependencies.JWTTokenInterface,
	sessionRepo redis.SessionTokenRepo,
	logger *core.ZapLogger,
) *MemberController {
	return &MemberController{
		memberService: memberService,
		jwtUtil:       jwtUtil,
		sessionRepo:   sessionRepo,
		logger:        logger,
	}
}

// GetMemberInfoHandler 查询当前会员的资料。
// @Summary 查询会员资料
// @Description 查询当前登录会员的资料，手机号脱敏返回。
// @Tags 会员
// @Produce json
// @Security BearerAuth
// @Success 200 {object} docs.SwaggerAPIMemberInfoResponse "查询成功"
// @Failure 401 {object} docs.SwaggerAPIEmptyResponse "未登录或登录已失效"
// @Failure 404 {object} docs.SwaggerAPIEmptyResponse "会员不存在"
// @Router /api/v1/member-hub/member/info [get]
func (ctrl *MemberController) GetMemberInfoHandler(c *gin.Context) {
	const operation = "MemberController.GetMemberInfoHandler"

	memberID, ok := requireMemberID(c)
	if !ok {
		return
	}

	result, err := ctrl.memberService.GetMemberInfo(c.Request.Context(), memberID)
	if err != nil {
		respondServiceError(c, ctrl.logger, operation, err)
		return
	}
	response.RespondSuccess(c, result, "")
}

// UpdateMemberInfoHandler 更新当前会员的资料。
// @Summary 更新会员资料
// @Description 更新当前登录会员的昵称、性别、出生日期，未提供的字段保持不变；手机号不可修改。
// @Tags 会员
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.UpdateMemberData true "待更新的资料字段"
// @Success 200 {object} docs.SwaggerAPIMemberInfoResponse "更新成功，返回最新资料"
// @Failure 400 {object} docs.SwaggerAPIEmptyResponse "请求参数无效"
// @Failure 401 {object} docs.SwaggerAPIEmptyResponse "未登录或登录已失效"
// @Router /api/v1/member-hub/member/info [put]
func (ctrl *MemberController) UpdateMemberInfoHandler(c *gin.Context) {
	const operation = "MemberController.UpdateMemberInfoHandler"

	memberID, ok := requireMemberID(c)
	if !ok {
		return
	}

	var updateData dto.UpdateMemberData
	if err := c.ShouldBindJSON(&updateData); err != nil {
		ctrl.logger.Warn("更新会员资料请求参数绑定失败",
			zap.String("operation", operation),
			zap.Error(err),
		)
		response.RespondError(c, http.StatusBadRequest, errs.CodeBadRequest, "输入参数无效")
		return
	}

	result, err := ctrl.memberService.UpdateMemberInfo(c.Request.Context(), memberID, updateData)
	if err != nil {
		respondServiceError(c, ctrl.logger, operation, err)
		return
	}

	ctrl.logger.Info("会员资料更新成功",
		zap.String("operation", operation),
		zap.Int64("memberID", memberID),
	)
	response.RespondSuccess(c, result, "资料更新成功")
}

// GetLoginHistoryHandler 查询当前会员最近的登录记录。
// @Summary 查询登录历史
// @Description 查询当前登录会员最近的登录记录，按登录时间倒序，IP 脱敏返回。
// @Tags 会员
// @Produce json
// @Security BearerAuth
// @Param limit query int false "返回条数，默认 10，最大 50" default(10)
// @Success 200 {object} docs.SwaggerAPILoginHistoryResponse "查询成功"
// @Failure 401 {object} docs.SwaggerAPIEmptyResponse "未登录或登录已失效"
// @Router /api/v1/member-hub/member/login-history [get]
func (ctrl *MemberController) GetLoginHistoryHandler(c *gin.Context) {
	const operation = "MemberController.GetLoginHistoryHandler"

	memberID, ok := requireMemberID(c)
	if !ok {
		return
	}

	limit, err := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if err != nil || limit <= 0 {
		limit = 10
	}
	if limit > 50 {
		limit = 50
	}

	result, err := ctrl.memberService.GetLoginHistory(c.Request.Context(), memberID, limit)
	if err != nil {
		respondServiceError(c, ctrl.logger, operation, err)
		return
	}
	response.RespondSuccess(c, result, "")
}

// RegisterRoutes 注册会员相关的路由，全部需要登录。
func (ctrl *MemberController) RegisterRoutes(group *gin.RouterGroup) {
	memberGroup := group.Group("/member")
	memberGroup.Use(middleware.AuthMiddleware(ctrl.jwtUtil, ctrl.sessionRepo, ctrl.logger))
	{
		memberGroup.GET("/info", ctrl.GetMemberInfoHandler)
		memberGroup.PUT("/info", ctrl.UpdateMemberInfoHandler)
		memberGroup.GET("/login-history", ctrl.GetLoginHistoryHandler)
	}
}
