package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"

	commonconfig "github.com/Xushengqwer/go-common/config"
	"github.com/Xushengqwer/go-common/core"

	"github.com/Xushengqwer/member_hub/config"
	"github.com/Xushengqwer/member_hub/dependencies"
	"github.com/Xushengqwer/member_hub/repository/redis"
)

// newAuthTestRouter 构造挂载了认证中间件的测试路由及其依赖。
func newAuthTestRouter(t *testing.T) (*gin.Engine, dependencies.JWTTokenInterface, redis.SessionTokenRepo) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("启动 miniredis 失败: %v", err)
	}
	t.Cleanup(mr.Close)

	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	logger, err := core.NewZapLogger(commonconfig.ZapConfig{Level: "error"})
	if err != nil {
		t.Fatalf("初始化测试日志器失败: %v", err)
	}

	jwtUtil := dependencies.NewJWTUtility(&config.JWTConfig{
		SecretKey:     "test-secret-key-for-auth-middleware",
		Issuer:        "member_hub_test",
		ExpireSeconds: 3600,
	})
	sessionRepo := redis.NewSessionTokenRepo(client)

	router := gin.New()
	router.GET("/protected", AuthMiddleware(jwtUtil, sessionRepo, logger), func(c *gin.Context) {
		memberID, ok := MemberIDFromContext(c)
		if !ok {
			c.String(http.StatusInternalServerError, "missing member id")
			return
		}
		c.JSON(http.StatusOK, gin.H{"memberID": memberID})
	})
	return router, jwtUtil, sessionRepo
}

func doRequest(router *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// issueToken 生成令牌并写入会话缓存，模拟一次完整登录。
func issueToken(t *testing.T, jwtUtil dependencies.JWTTokenInterface, sessionRepo redis.SessionTokenRepo, memberID int64) string {
	t.Helper()
	token, err := jwtUtil.GenerateToken(memberID, "13800001111")
	if err != nil {
		t.Fatalf("生成令牌失败: %v", err)
	}
	if err := sessionRepo.CacheToken(context.Background(), memberID, token, time.Hour); err != nil {
		t.Fatalf("缓存会话令牌失败: %v", err)
	}
	return token
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	router, jwtUtil, sessionRepo := newAuthTestRouter(t)
	token := issueToken(t, jwtUtil, sessionRepo, 10001)

	w := doRequest(router, "Bearer "+token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "10001")
}

func TestAuthMiddleware_MissingHeader(t *testing.T) {
	router, _, _ := newAuthTestRouter(t)

	w := doRequest(router, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddleware_MalformedHeader(t *testing.T) {
	router, jwtUtil, sessionRepo := newAuthTestRouter(t)
	token := issueToken(t, jwtUtil, sessionRepo, 10001)

	// 缺少 Bearer 前缀
	w := doRequest(router, token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddleware_InvalidToken(t *testing.T) {
	router, _, _ := newAuthTestRouter(t)

	w := doRequest(router, "Bearer not-a-valid-jwt")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddleware_RevokedSession(t *testing.T) {
	router, jwtUtil, sessionRepo := newAuthTestRouter(t)
	token := issueToken(t, jwtUtil, sessionRepo, 10001)

	// 登出后缓存被删除，JWT 本身仍然有效也应拒绝
	if err := sessionRepo.RemoveToken(context.Background(), 10001); err != nil {
		t.Fatalf("删除会话缓存失败: %v", err)
	}

	w := doRequest(router, "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddleware_KickedByNewLogin(t *testing.T) {
	router, jwtUtil, sessionRepo := newAuthTestRouter(t)
	oldToken := issueToken(t, jwtUtil, sessionRepo, 10001)

	// 同一会员再次登录，新令牌覆盖旧缓存，旧令牌被互踢
	// 每个令牌携带随机 jti，两次签发必然不同
	newToken := issueToken(t, jwtUtil, sessionRepo, 10001)
	if oldToken == newToken {
		t.Fatal("两次签发的令牌不应相同")
	}

	w := doRequest(router, "Bearer "+oldToken)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doRequest(router, "Bearer "+newToken)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuthMiddleware_SignatureMismatch(t *testing.T) {
	router, _, sessionRepo := newAuthTestRouter(t)

	// 用不同密钥签发的令牌无法通过签名校验
	otherUtil := dependencies.NewJWTUtility(&config.JWTConfig{
		SecretKey:     "another-secret-key",
		Issuer:        "member_hub_test",
		ExpireSeconds: 3600,
	})
	token, err := otherUtil.GenerateToken(10001, "13800001111")
	if err != nil {
		t.Fatalf("生成令牌失败: %v", err)
	}
	if err := sessionRepo.CacheToken(context.Background(), 10001, token, time.Hour); err != nil {
		t.Fatalf("缓存会话令牌失败: %v", err)
	}

	w := doRequest(router, "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
