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
	"github.com/Xushengqwer/member_hub/service/address"
)

// AddressController 处理与收货地址管理相关的 HTTP 请求。
// 依赖于 address.AddressService 来执行核心业务逻辑。
type AddressController struct {
	addressService address.AddressService         // addressService: 地址服务的实例。
	jwtUtil        dependencies.JWTTokenInterface // jwtUtil: JWT 工具，用于认证中间件。
	sessionRepo    redis.SessionTokenRepo         // sessionRepo: 会话缓存，用于认证中间件。
	logger         *core.ZapLogger                // logger: 日志记录器。
}

// NewAddressController 创建一个新的 AddressController 实例。
func NewAddressController(
	addressService address.AddressService,
	jwtUtil dependencies.JWTTokenInterface,
	sessionRepo redis.SessionTokenRepo,
	logger *core.ZapLogger,
) *AddressController {
	return &AddressController{
		addressService: addressService,
		jwtUtil:        jwtUtil,
		sessionRepo:    sessionRepo,
		logger:         logger,
	}
}

// addressIDFromPath 解析路径参数中的地址 ID，无效时写出 400 并返回 false。
func (ctrl *AddressController) addressIDFromPath(c *gin.Context) (int64, bool) {
	addressID, err := strconv.ParseInt(c.Param("addressID"), 10, 64)
	if err != nil || addressID <= 0 {
		response.RespondError(c, http.StatusBadRequest, errs.CodeBadRequest, "无效的地址ID")
		return 0, false
	}
	return addressID, true
}

// ListAddressesHandler 查询当前会员的收货地址列表。
// @Summary 查询地址列表
// @Description 查询当前登录会员的全部收货地址，默认地址在前，收货人手机号脱敏返回。
// @Tags 收货地址
// @Produce json
// @Security BearerAuth
// @Success 200 {object} docs.SwaggerAPIAddressListResponse "查询成功"
// @Failure 401 {object} docs.SwaggerAPIEmptyResponse "未登录或登录已失效"
// @Router /api/v1/member-hub/addresses [get]
func (ctrl *AddressController) ListAddressesHandler(c *gin.Context) {
	const operation = "AddressController.ListAddressesHandler"

	memberID, ok := requireMemberID(c)
	if !ok {
		return
	}

	result, err := ctrl.addressService.ListAddresses(c.Request.Context(), memberID)
	if err != nil {
		respondServiceError(c, ctrl.logger, operation, err)
		return
	}
	response.RespondSuccess(c, result, "")
}

// AddAddressHandler 新增收货地址。
// @Summary 新增收货地址
// @Description 为当前登录会员新增收货地址；第一条地址自动设为默认，设为默认时旧默认地址自动取消。
// @Tags 收货地址
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.AddAddressData true "地址信息"
// @Success 200 {object} docs.SwaggerAPIAddressResponse "新增成功，返回新地址"
// @Failure 400 {object} docs.SwaggerAPIEmptyResponse "请求参数无效或地址数量超限"
// @Failure 401 {object} docs.SwaggerAPIEmptyResponse "未登录或登录已失效"
// @Router /api/v1/member-hub/addresses [post]
func (ctrl *AddressController) AddAddressHandler(c *gin.Context) {
	const operation = "AddressController.AddAddressHandler"

	memberID, ok := requireMemberID(c)
	if !ok {
		return
	}

	var addData dto.AddAddressData
	if err := c.ShouldBindJSON(&addData); err != nil {
		ctrl.logger.Warn("新增地址请求参数绑定失败",
			zap.String("operation", operation),
			zap.Error(err),
		)
		response.RespondError(c, http.StatusBadRequest, errs.CodeBadRequest, "输入参数无效")
		return
	}

	result, err := ctrl.addressService.AddAddress(c.Request.Context(), memberID, addData)
	if err != nil {
		respondServiceError(c, ctrl.logger, operation, err)
		return
	}

	ctrl.logger.Info("新增地址成功",
		zap.String("operation", operation),
		zap.Int64("memberID", memberID),
		zap.Int64("addressID", result.AddressID),
	)
	response.RespondSuccess(c, result, "地址添加成功")
}

// UpdateAddressHandler 更新收货地址。
// @Summary 更新收货地址
// @Description 更新当前登录会员的收货地址，未提供的字段保持不变；只能操作本人的地址。
// @Tags 收货地址
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.UpdateAddressData true "待更新的地址字段"
// @Success 200 {object} docs.SwaggerAPIAddressResponse "更新成功，返回最新地址"
// @Failure 400 {object} docs.SwaggerAPIEmptyResponse "请求参数无效"
// @Failure 401 {object} docs.SwaggerAPIEmptyResponse "未登录或登录已失效"
// @Failure 403 {object} docs.SwaggerAPIEmptyResponse "无权操作该地址"
// @Failure 404 {object} docs.SwaggerAPIEmptyResponse "地址不存在"
// @Router /api/v1/member-hub/addresses [put]
func (ctrl *AddressController) UpdateAddressHandler(c *gin.Context) {
	const operation = "AddressController.UpdateAddressHandler"

	memberID, ok := requireMemberID(c)
	if !ok {
		return
	}

	var updateData dto.UpdateAddressData
	if err := c.ShouldBindJSON(&updateData); err != nil {
		ctrl.logger.Warn("更新地址请求参数绑定失败",
			zap.String("operation", operation),
			zap.Error(err),
		)
		response.RespondError(c, http.StatusBadRequest, errs.CodeBadRequest, "输入参数无效")
		return
	}

	result, err := ctrl.addressService.UpdateAddress(c.Request.Context(), memberID, updateData)
	if err != nil {
		respondServiceError(c, ctrl.logger, operation, err)
		return
	}

	ctrl.logger.Info("更新地址成功",
		zap.String("operation", operation),
		zap.Int64("memberID", memberID),
		zap.Int64("addressID", result.AddressID),
	)
	response.RespondSuccess(c, result, "地址更新成功")
}

// SetDefaultAddressHandler 设置默认收货地址。
// @Summary 设置默认地址
// @Description 将指定地址设为当前登录会员的默认地址，旧默认地址自动取消；操作幂等。
// @Tags 收货地址
// @Produce json
// @Security BearerAuth
// @Param addressID path int true "地址ID"
// @Success 200 {object} docs.SwaggerAPIEmptyResponse "设置成功"
// @Failure 401 {object} docs.SwaggerAPIEmptyResponse "未登录或登录已失效"
// @Failure 403 {object} docs.SwaggerAPIEmptyResponse "无权操作该地址"
// @Failure 404 {object} docs.SwaggerAPIEmptyResponse "地址不存在"
// @Router /api/v1/member-hub/addresses/{addressID}/default [put]
func (ctrl *AddressController) SetDefaultAddressHandler(c *gin.Context) {
	const operation = "AddressController.SetDefaultAddressHandler"

	memberID, ok := requireMemberID(c)
	if !ok {
		return
	}
	addressID, ok := ctrl.addressIDFromPath(c)
	if !ok {
		return
	}

	if err := ctrl.addressService.SetDefaultAddress(c.Request.Context(), memberID, addressID); err != nil {
		respondServiceError(c, ctrl.logger, operation, err)
		return
	}

	ctrl.logger.Info("设置默认地址成功",
		zap.String("operation", operation),
		zap.Int64("memberID", memberID),
		zap.Int64("addressID", addressID),
	)
	response.RespondSuccess[any](c, nil, "默认地址设置成功")
}

// DeleteAddressHandler 删除收货地址。
// @Summary 删除收货地址
// @Description 删除当前登录会员的指定收货地址；只能操作本人的地址。
// @Tags 收货地址
// @Produce json
// @Security BearerAuth
// @Param addressID path int true "地址ID"
// @Success 200 {object} docs.SwaggerAPIEmptyResponse "删除成功"
// @Failure 401 {object} docs.SwaggerAPIEmptyResponse "未登录或登录已失效"
// @Failure 403 {object} docs.SwaggerAPIEmptyResponse "无权操作该地址"
// @Failure 404 {object} docs.SwaggerAPIEmptyResponse "地址不存在"
// @Router /api/v1/member-hub/addresses/{addressID} [delete]
func (ctrl *AddressController) DeleteAddressHandler(c *gin.Context) {
	const operation = "AddressController.DeleteAddressHandler"

	memberID, ok := requireMemberID(c)
	if !ok {
		return
	}
	addressID, ok := ctrl.addressIDFromPath(c)
	if !ok {
		return
	}

	if err := ctrl.addressService.DeleteAddress(c.Request.Context(), memberID, addressID); err != nil {
		respondServiceError(c, ctrl.logger, operation, err)
		return
	}

	ctrl.logger.Info("删除地址成功",
		zap.String("operation", operation),
		zap.Int64("memberID", memberID),
		zap.Int64("addressID", addressID),
	)
	response.RespondSuccess[any](c, nil, "地址删除成功")
}

// RegisterRoutes 注册收货地址相关的路由，全部需要登录。
func (ctrl *AddressController) RegisterRoutes(group *gin.RouterGroup) {
	addressGroup := group.Group("/addresses")
	addressGroup.Use(middleware.AuthMiddleware(ctrl.jwtUtil, ctrl.sessionRepo, ctrl.logger))
	{
		addressGroup.GET("", ctrl.ListAddressesHandler)
		addressGroup.POST("", ctrl.AddAddressHandler)
		addressGroup.PUT("", ctrl.UpdateAddressHandler)
		addressGroup.PUT("/:addressID/default", ctrl.SetDefaultAddressHandler)
		addressGroup.DELETE("/:addressID", ctrl.DeleteAddressHandler)
	}
}
