package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/Xushengqwer/go-common/commonerrors"
	"github.com/Xushengqwer/go-common/core"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Xushengqwer/member_hub/dependencies"
	"github.com/Xushengqwer/member_hub/errs"
	"github.com/Xushengqwer/member_hub/repository/redis"
	"github.com/Xushengqwer/member_hub/response"
)

// ContextKeyMemberID 是认证通过后会员 ID 在 gin.Context 中的键名。
const ContextKeyMemberID = "memberID"

// MemberIDFromContext 从 gin.Context 中取出认证中间件写入的会员 ID。
// - 仅在挂载了 AuthMiddleware 的路由内调用，取不到说明中间件未生效。
func MemberIDFromContext(c *gin.Context) (int64, bool) {
	value, exists := c.Get(ContextKeyMemberID)
	if !exists {
		return 0, false
	}
	memberID, ok := value.(int64)
	return memberID, ok
}

// AuthMiddleware 构造会员认证中间件。
// - 解析 Authorization 头中的 Bearer 令牌，校验 JWT 签名与有效期。
// - 再与 Redis 中缓存的会话令牌比对：缓存缺失或不一致（已登出/被互踢/密码已重置）均拒绝。
// - 认证通过后将会员 ID 写入上下文，供后续 handler 使用。
func AuthMiddleware(
	jwtUtil dependencies.JWTTokenInterface,
	sessionRepo redis.SessionTokenRepo,
	logger *core.ZapLogger,
) gin.HandlerFunc {
	return func(c *gin.Context) {
		const operation = "AuthMiddleware"

		// 1. 提取 Bearer 令牌
		authHeader := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(authHeader, "Bearer ")
		if !ok || token == "" {
			response.RespondError(c, http.StatusUnauthorized, errs.CodeUnauthorized, errs.ErrUnauthorized.Message)
			c.Abort()
			return
		}

		// 2. 校验 JWT 自身的签名与有效期
		claims, err := jwtUtil.ParseToken(token)
		if err != nil {
			logger.Warn("令牌解析失败",
				zap.String("operation", operation),
				zap.Error(err),
			)
			response.RespondError(c, http.StatusUnauthorized, errs.CodeUnauthorized, errs.ErrUnauthorized.Message)
			c.Abort()
			return
		}

		// 3. 与会话缓存比对，缓存是会话有效性的唯一权威
		cachedToken, err := sessionRepo.GetToken(c.Request.Context(), claims.MemberID)
		if err != nil {
			if errors.Is(err, commonerrors.ErrRepoNotFound) {
				response.RespondError(c, http.StatusUnauthorized, errs.CodeUnauthorized, errs.ErrUnauthorized.Message)
				c.Abort()
				return
			}
			logger.Error("查询会话缓存失败",
				zap.String("operation", operation),
				zap.Int64("memberID", claims.MemberID),
				zap.Error(err),
			)
			response.RespondError(c, http.StatusInternalServerError, errs.CodeInternalError, commonerrors.ErrSystemError.Error())
			c.Abort()
			return
		}
		if cachedToken != token {
			// 令牌与缓存不一致，说明该会话已被新登录覆盖
			response.RespondError(c, http.StatusUnauthorized, errs.CodeUnauthorized, errs.ErrUnauthorized.Message)
			c.Abort()
			return
		}

		// 4. 认证通过，注入会员 ID
		c.Set(ContextKeyMemberID, claims.MemberID)
		c.Next()
	}
}
